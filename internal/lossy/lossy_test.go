package lossy

import (
	"math"
	"math/rand"
	"testing"

	"github.com/lamco-admin/jxl/internal/dsp"
)

// planePSNR computes the peak signal-to-noise ratio between two planes in
// the 0..255 domain.
func planePSNR(a, b []float32) float64 {
	var mse float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		mse += d * d
	}
	mse /= float64(len(a))
	if mse == 0 {
		return math.Inf(1)
	}
	return 20*math.Log10(255) - 10*math.Log10(mse)
}

func flatMap(w, h int, level uint8) []uint8 {
	n := dsp.BlocksAcross(w) * dsp.BlocksAcross(h)
	m := make([]uint8, n)
	for i := range m {
		m[i] = level
	}
	return m
}

func TestPassScheduleCoversBlock(t *testing.T) {
	total := 0
	for _, c := range PassCoeffCounts {
		total += c
	}
	if total != dsp.BlockSamples {
		t.Fatalf("schedule covers %d coefficients, want %d", total, dsp.BlockSamples)
	}
	if PassCoeffCounts[0] != 1 {
		t.Fatalf("first pass carries %d coefficients, want DC only", PassCoeffCounts[0])
	}
	start, end := passBand(1)
	if start != 1 || end != 16 {
		t.Fatalf("pass 1 band = [%d, %d), want [1, 16)", start, end)
	}
	start, end = passBand(NumPasses - 1)
	if end != dsp.BlockSamples {
		t.Fatalf("last pass ends at %d, want %d", end, dsp.BlockSamples)
	}
}

func TestPlaneRoundTripFlat(t *testing.T) {
	w, h := 32, 32
	plane := make([]float32, w*h)
	for i := range plane {
		plane[i] = 200
	}
	levels := ComputeScaleMap(plane, w, h)
	symbols := EncodePlane(plane, w, h, 0, 90, levels, false)
	got, err := DecodePlane(symbols, w, h, 0, 90, levels, false)
	if err != nil {
		t.Fatalf("DecodePlane: %v", err)
	}
	if psnr := planePSNR(plane, got); psnr < 40 {
		t.Fatalf("flat plane PSNR = %.1f dB, want >= 40", psnr)
	}
	// A flat plane has no AC energy: everything but the first DC diff
	// quantizes to zero.
	for i, s := range symbols[1:] {
		if s != 0 {
			t.Fatalf("symbol %d = %d, want 0 on a flat plane", i+1, s)
		}
	}
}

func TestPlaneRoundTripGradient(t *testing.T) {
	w, h := 64, 64
	plane := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			plane[y*w+x] = float32(x * 4 % 256)
		}
	}
	levels := ComputeScaleMap(plane, w, h)
	for _, progressive := range []bool{false, true} {
		symbols := EncodePlane(plane, w, h, 0, 75, levels, progressive)
		got, err := DecodePlane(symbols, w, h, 0, 75, levels, progressive)
		if err != nil {
			t.Fatalf("DecodePlane(progressive=%v): %v", progressive, err)
		}
		if psnr := planePSNR(plane, got); psnr < 28 {
			t.Fatalf("gradient PSNR = %.1f dB (progressive=%v), want >= 28", psnr, progressive)
		}
	}
}

func TestProgressiveReordersOnly(t *testing.T) {
	// The two schedules carry the same multiset of coefficients, so the
	// reconstructions must be identical.
	w, h := 24, 16
	rng := rand.New(rand.NewSource(17))
	plane := make([]float32, w*h)
	for i := range plane {
		plane[i] = float32(rng.Intn(256))
	}
	levels := ComputeScaleMap(plane, w, h)
	single := EncodePlane(plane, w, h, 0, 75, levels, false)
	multi := EncodePlane(plane, w, h, 0, 75, levels, true)
	if len(single) != len(multi) {
		t.Fatalf("schedules emit %d vs %d symbols", len(single), len(multi))
	}
	a, err := DecodePlane(single, w, h, 0, 75, levels, false)
	if err != nil {
		t.Fatal(err)
	}
	b, err := DecodePlane(multi, w, h, 0, 75, levels, true)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs between schedules: %g vs %g", i, a[i], b[i])
		}
	}
}

func TestOddDimensions(t *testing.T) {
	for _, dim := range [][2]int{{1, 1}, {1, 17}, {17, 1}, {127, 127}, {97, 103}} {
		w, h := dim[0], dim[1]
		plane := make([]float32, w*h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				plane[y*w+x] = float32((x + y) * 3 % 256)
			}
		}
		levels := ComputeScaleMap(plane, w, h)
		symbols := EncodePlane(plane, w, h, 0, 75, levels, false)
		got, err := DecodePlane(symbols, w, h, 0, 75, levels, false)
		if err != nil {
			t.Fatalf("%dx%d: %v", w, h, err)
		}
		if psnr := planePSNR(plane, got); psnr < 22 {
			t.Fatalf("%dx%d PSNR = %.1f dB, want >= 22", w, h, psnr)
		}
	}
}

func TestDecodePlaneWrongCount(t *testing.T) {
	levels := flatMap(8, 8, 8)
	if _, err := DecodePlane(make([]uint32, 63), 8, 8, 0, 75, levels, false); err == nil {
		t.Fatal("short symbol stream decoded")
	}
}

func TestDecodePlaneHugeCoefficient(t *testing.T) {
	symbols := make([]uint32, 64)
	symbols[0] = 200000 // signed-mapped 100000, far past the int16 range
	if _, err := DecodePlane(symbols, 8, 8, 0, 75, flatMap(8, 8, 8), false); err == nil {
		t.Fatal("out-of-range coefficient decoded")
	}
}

func TestScaleMapFlatVsBusy(t *testing.T) {
	w, h := 32, 32
	flat := make([]float32, w*h)
	for i := range flat {
		flat[i] = 100
	}
	busy := make([]float32, w*h)
	rng := rand.New(rand.NewSource(23))
	for i := range busy {
		busy[i] = float32(rng.Intn(256))
	}
	mf := ComputeScaleMap(flat, w, h)
	mb := ComputeScaleMap(busy, w, h)
	if dsp.ScaleLevels[mf[0]] <= dsp.ScaleLevels[mb[0]] {
		t.Fatalf("flat scale %g should be coarser than busy scale %g",
			dsp.ScaleLevels[mf[0]], dsp.ScaleLevels[mb[0]])
	}
}

func TestScaleMapSymbolsRoundTrip(t *testing.T) {
	levels := []uint8{0, 3, 15, 7, 7, 1}
	got, err := ScaleMapFromSymbols(ScaleMapSymbols(levels), len(levels))
	if err != nil {
		t.Fatal(err)
	}
	for i := range levels {
		if got[i] != levels[i] {
			t.Fatalf("level %d = %d, want %d", i, got[i], levels[i])
		}
	}
	if _, err := ScaleMapFromSymbols([]uint32{16}, 1); err == nil {
		t.Fatal("out-of-alphabet level accepted")
	}
	if _, err := ScaleMapFromSymbols([]uint32{1, 2}, 3); err == nil {
		t.Fatal("wrong-length map accepted")
	}
}
