package sketch

import "github.com/bits-and-blooms/bloom/v3"

// EstimateParameters wraps bloom.NewWithEstimates purely for its
// size/hash-count formula, the same call the teacher's sst writer
// makes when sizing its own embedded filter. The constructed filter is
// discarded; antman keeps a single bit-vector representation
// throughout (pkg/bitvector), so only the two scalars survive.
func EstimateParameters(expectedKmers int, fpRate float64) (numBits, numHashes int) {
	f := bloom.NewWithEstimates(uint(expectedKmers), fpRate)
	return int(f.Cap()), int(f.K())
}
