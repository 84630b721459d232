package jxl

import "fmt"

// Options controls encoding parameters.
type Options struct {
	// Lossless selects the predictive integer path. When false (default),
	// the transform-domain lossy path is used.
	Lossless bool

	// Quality is the lossy quality scalar (1-100, default 90). Higher
	// means finer quantization and larger output. Not written to the
	// stream in lossless mode, though its range is still validated.
	Quality float32

	// Progressive emits lossy coefficients in the multi-pass schedule
	// (DC first, then four AC bands) instead of block by block.
	Progressive bool
}

// DefaultOptions returns encoding options with quality 90, lossy,
// single-pass.
func DefaultOptions() *Options {
	return &Options{Quality: 90}
}

// validateOptions checks option ranges, resolving the zero-value Quality
// sentinel to the default.
func validateOptions(opts *Options) (*Options, error) {
	if opts == nil {
		return DefaultOptions(), nil
	}
	resolved := *opts
	if resolved.Quality == 0 {
		resolved.Quality = 90
	}
	if resolved.Quality < 1 || resolved.Quality > 100 {
		return nil, fmt.Errorf("jxl: invalid Quality %.2f (must be 1-100)", resolved.Quality)
	}
	return &resolved, nil
}
