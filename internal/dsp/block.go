package dsp

// ExtractBlock copies the 8x8 tile at block coordinates (bx, by) out of a
// w-by-h plane. Samples past the right or bottom edge are filled by
// replicating the nearest in-image sample.
func ExtractBlock(plane []float32, w, h, bx, by int, out *Block) {
	x0 := bx * BlockSize
	y0 := by * BlockSize
	for y := 0; y < BlockSize; y++ {
		sy := y0 + y
		if sy >= h {
			sy = h - 1
		}
		row := plane[sy*w:]
		for x := 0; x < BlockSize; x++ {
			sx := x0 + x
			if sx >= w {
				sx = w - 1
			}
			out[y*BlockSize+x] = row[sx]
		}
	}
}

// StoreBlock writes the 8x8 tile back into the plane, dropping samples that
// fall outside the image.
func StoreBlock(plane []float32, w, h, bx, by int, in *Block) {
	x0 := bx * BlockSize
	y0 := by * BlockSize
	for y := 0; y < BlockSize; y++ {
		sy := y0 + y
		if sy >= h {
			return
		}
		row := plane[sy*w:]
		for x := 0; x < BlockSize; x++ {
			sx := x0 + x
			if sx >= w {
				break
			}
			row[sx] = in[y*BlockSize+x]
		}
	}
}

// BlocksAcross returns the number of 8x8 block columns or rows covering n
// samples.
func BlocksAcross(n int) int {
	return (n + BlockSize - 1) / BlockSize
}
