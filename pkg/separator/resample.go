package separator

// Resample maps mask onto n samples by nearest neighbour, output index i
// reading source index floor(i*len(mask)/n), and binarises the result to
// {0,1}. A band narrower than the downscale ratio survives only if one of
// the sampled source indices falls inside it.
func Resample(mask []uint8, n int) []uint8 {
	if n <= 0 {
		return []uint8{}
	}
	out := make([]uint8, n)
	if len(mask) == 0 {
		return out
	}

	for i := range out {
		src := i * len(mask) / n
		if src >= len(mask) {
			src = len(mask) - 1
		}
		if mask[src] > 0 {
			out[i] = 1
		}
	}
	return out
}
