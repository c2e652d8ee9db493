package filter

// SamplingBlocks splits the state index range [0, blocks*blockSize) into
// contiguous ascending groups of blockSize indices each: block i covers
// [i*blockSize, (i+1)*blockSize). The blocks partition the full range
// exactly once, with no gaps and no overlaps. Both arguments must be
// positive; non-positive input yields nil.
func SamplingBlocks(blocks, blockSize int) [][]int {
	if blocks <= 0 || blockSize <= 0 {
		return nil
	}
	out := make([][]int, blocks)
	for i := 0; i < blocks; i++ {
		block := make([]int, blockSize)
		for j := 0; j < blockSize; j++ {
			block[j] = i*blockSize + j
		}
		out[i] = block
	}
	return out
}
