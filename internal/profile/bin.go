package profile

// Bin is a single price bucket in a volume profile histogram.
// Bins partition [rangeLow, rangeLow + numRows*rowSize) contiguously;
// once a Profile is returned its bins are never mutated.
type Bin struct {
	PriceStart  float64
	PriceEnd    float64
	PriceCenter float64
	UpVolume    float64
	DownVolume  float64
	TotalVolume float64
	DeltaVolume float64
}

// newBins allocates the contiguous bin ladder for a profile build.
func newBins(rangeLow, rowSize float64, numRows int) []Bin {
	bins := make([]Bin, numRows)
	for i := range bins {
		start := rangeLow + float64(i)*rowSize
		bins[i] = Bin{
			PriceStart:  start,
			PriceEnd:    start + rowSize,
			PriceCenter: start + rowSize/2,
		}
	}
	return bins
}
