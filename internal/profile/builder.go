package profile

import (
	"fmt"
	"math"

	"volumeProfiler/internal/domain"
	"volumeProfiler/internal/ports"
)

// RowsLayout controls how BuildConfig.NumRows is interpreted.
type RowsLayout string

const (
	// RowsLayoutNumberOfRows divides the bar range into NumRows rows,
	// then snaps the row size to a whole number of ticks.
	RowsLayoutNumberOfRows RowsLayout = "Number Of Rows"

	// RowsLayoutTicksPerRow treats NumRows as a fixed tick count per row.
	RowsLayoutTicksPerRow RowsLayout = "Ticks Per Row"
)

// BuildConfig holds the parameters for a profile build.
type BuildConfig struct {
	RowsLayout   RowsLayout
	NumRows      int
	ValueAreaPct float64 // Target value area share, e.g. 0.70
	TickSize     float64
}

// Profile is a complete volume profile histogram with its derived levels.
type Profile struct {
	Bins        []Bin
	RowSize     float64
	NumRows     int
	TotalVolume float64
	POCPrice    float64
	VAHPrice    float64
	VALPrice    float64
	LTFBarsUsed int
}

// Builder computes volume profiles from OHLCV bar arrays.
//
// Every build is a pure, full recomputation over the given bars: no state is
// carried between calls, so concurrent builds with different inputs are safe.
type Builder struct {
	cfg BuildConfig
}

// NewBuilder validates the configuration and creates a Builder.
func NewBuilder(cfg BuildConfig) (*Builder, error) {
	if cfg.NumRows <= 0 {
		return nil, fmt.Errorf("%w: numRows must be positive, got %d", ports.ErrInvalidArgument, cfg.NumRows)
	}
	if cfg.TickSize <= 0 {
		return nil, fmt.Errorf("%w: tickSize must be positive, got %v", ports.ErrInvalidArgument, cfg.TickSize)
	}
	if cfg.ValueAreaPct <= 0 || cfg.ValueAreaPct > 1 {
		return nil, fmt.Errorf("%w: valueAreaPct must be in (0,1], got %v", ports.ErrInvalidArgument, cfg.ValueAreaPct)
	}
	if cfg.RowsLayout == "" {
		cfg.RowsLayout = RowsLayoutNumberOfRows
	}
	return &Builder{cfg: cfg}, nil
}

// Build computes a full profile over the given bars.
//
// Empty input yields an empty Profile with no error so the renderer simply
// draws nothing. Bars with non-finite OHLCV fail fast with ErrInvalidBar;
// letting NaN into the min/max scan would corrupt every later comparison.
func (b *Builder) Build(bars []*domain.Bar) (*Profile, error) {
	if len(bars) == 0 {
		return &Profile{}, nil
	}

	rangeLow := math.Inf(1)
	rangeHigh := math.Inf(-1)
	totalVolume := 0.0
	for i, bar := range bars {
		if !bar.IsFinite() {
			return nil, fmt.Errorf("%w: bar %d", ports.ErrInvalidBar, i)
		}
		rangeLow = math.Min(rangeLow, bar.Low)
		rangeHigh = math.Max(rangeHigh, bar.High)
		totalVolume += bar.Volume
	}

	rowSize, err := b.rowSize(rangeHigh - rangeLow)
	if err != nil {
		return nil, err
	}

	numRows := int(math.Ceil((rangeHigh - rangeLow) / rowSize))
	if numRows < 1 {
		// Degenerate flat range: everything lands in a single row.
		numRows = 1
	}

	// The bins are a private working slice; nothing the caller owns is aliased.
	bins := newBins(rangeLow, rowSize, numRows)
	directions := ClassifyAllBars(bars)
	for i, bar := range bars {
		DistributeVolume(bar, directions[i], bins, rangeLow, rowSize, numRows)
	}

	pocIndex := 0
	for i := 1; i < len(bins); i++ {
		// Strict comparison keeps the lowest index on ties.
		if bins[i].TotalVolume > bins[pocIndex].TotalVolume {
			pocIndex = i
		}
	}

	va := CalculateValueArea(bins, pocIndex, totalVolume, b.cfg.ValueAreaPct)

	return &Profile{
		Bins:        bins,
		RowSize:     rowSize,
		NumRows:     numRows,
		TotalVolume: totalVolume,
		POCPrice:    bins[pocIndex].PriceCenter,
		VAHPrice:    bins[va.VAHIndex].PriceCenter,
		VALPrice:    bins[va.VALIndex].PriceCenter,
		LTFBarsUsed: len(bars),
	}, nil
}

func (b *Builder) rowSize(priceRange float64) (float64, error) {
	if b.cfg.RowsLayout == RowsLayoutTicksPerRow {
		// NumRows is a tick count here; no rounding needed.
		return float64(b.cfg.NumRows) * b.cfg.TickSize, nil
	}
	return RoundRowSize(priceRange/float64(b.cfg.NumRows), b.cfg.TickSize)
}
