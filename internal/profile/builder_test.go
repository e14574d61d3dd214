package profile

import (
	"errors"
	"math"
	"testing"
	"time"

	"volumeProfiler/internal/domain"
	"volumeProfiler/internal/ports"
)

func testBuilder(t *testing.T, cfg BuildConfig) *Builder {
	t.Helper()
	b, err := NewBuilder(cfg)
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	return b
}

func TestNewBuilder_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     BuildConfig
		wantErr bool
	}{
		{
			name: "valid config",
			cfg:  BuildConfig{NumRows: 24, ValueAreaPct: 0.7, TickSize: 0.01},
		},
		{
			name:    "zero rows",
			cfg:     BuildConfig{NumRows: 0, ValueAreaPct: 0.7, TickSize: 0.01},
			wantErr: true,
		},
		{
			name:    "non-positive tick",
			cfg:     BuildConfig{NumRows: 24, ValueAreaPct: 0.7, TickSize: 0},
			wantErr: true,
		},
		{
			name:    "value area percent above one",
			cfg:     BuildConfig{NumRows: 24, ValueAreaPct: 1.5, TickSize: 0.01},
			wantErr: true,
		},
		{
			name:    "zero value area percent",
			cfg:     BuildConfig{NumRows: 24, ValueAreaPct: 0, TickSize: 0.01},
			wantErr: true,
		},
		{
			name: "value area percent of exactly one",
			cfg:  BuildConfig{NumRows: 24, ValueAreaPct: 1.0, TickSize: 0.01},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuilder(tt.cfg)
			if tt.wantErr {
				if !errors.Is(err, ports.ErrInvalidArgument) {
					t.Errorf("Expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestBuild_EmptyBars(t *testing.T) {
	b := testBuilder(t, BuildConfig{NumRows: 24, ValueAreaPct: 0.7, TickSize: 0.01})

	p, err := b.Build(nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(p.Bins) != 0 || p.TotalVolume != 0 || p.NumRows != 0 {
		t.Errorf("Expected empty profile, got %+v", p)
	}
}

func TestBuild_SingleBar(t *testing.T) {
	b := testBuilder(t, BuildConfig{NumRows: 10, ValueAreaPct: 0.7, TickSize: 0.01})
	bars := []*domain.Bar{
		{Time: time.Unix(1700000000, 0), Open: 100, High: 101, Low: 100, Close: 101, Volume: 500},
	}

	p, err := b.Build(bars)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p.LTFBarsUsed != 1 {
		t.Errorf("Expected ltfBarsUsed 1, got %d", p.LTFBarsUsed)
	}
	if math.Abs(p.TotalVolume-500) > 1e-9 {
		t.Errorf("Expected totalVolume 500, got %v", p.TotalVolume)
	}
	// range 1.0 over 10 rows, tick 0.01 -> rowSize 0.1, 10 rows back.
	if math.Abs(p.RowSize-0.1) > 1e-9 {
		t.Errorf("Expected rowSize 0.1, got %v", p.RowSize)
	}
	if p.NumRows != 10 {
		t.Errorf("Expected 10 rows, got %d", p.NumRows)
	}
}

func TestBuild_VolumeConservationAndLevels(t *testing.T) {
	b := testBuilder(t, BuildConfig{NumRows: 20, ValueAreaPct: 0.7, TickSize: 0.5})
	base := time.Unix(1700000000, 0)
	bars := []*domain.Bar{
		{Time: base, Open: 100, High: 110, Low: 98, Close: 108, Volume: 1000},
		{Time: base.Add(time.Minute), Open: 108, High: 112, Low: 104, Close: 105, Volume: 800},
		{Time: base.Add(2 * time.Minute), Open: 105, High: 109, Low: 103, Close: 109, Volume: 1200},
		{Time: base.Add(3 * time.Minute), Open: 109, High: 115, Low: 107, Close: 107, Volume: 600},
	}

	p, err := b.Build(bars)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	binSum := 0.0
	for i, bin := range p.Bins {
		binSum += bin.TotalVolume
		if math.Abs(bin.TotalVolume-(bin.UpVolume+bin.DownVolume)) > 1e-9 {
			t.Errorf("Bin %d: totalVolume != upVolume + downVolume", i)
		}
	}
	if math.Abs(binSum-p.TotalVolume) > 1e-6 {
		t.Errorf("Bin volumes sum to %v, profile total is %v", binSum, p.TotalVolume)
	}

	if p.VAHPrice < p.POCPrice || p.POCPrice < p.VALPrice {
		t.Errorf("Expected VAH >= POC >= VAL, got %v/%v/%v", p.VAHPrice, p.POCPrice, p.VALPrice)
	}

	ticks := p.RowSize / 0.5
	if math.Abs(ticks-math.Round(ticks)) > 1e-9 {
		t.Errorf("Row size %v is not a tick multiple", p.RowSize)
	}
}

func TestBuild_POCTieTakesLowestIndex(t *testing.T) {
	b := testBuilder(t, BuildConfig{NumRows: 2, ValueAreaPct: 0.7, TickSize: 0.5})
	base := time.Unix(1700000000, 0)
	// Two flat bars with identical volume in two distinct rows.
	bars := []*domain.Bar{
		{Time: base, Open: 100.1, High: 100.1, Low: 100.1, Close: 100.1, Volume: 100},
		{Time: base.Add(time.Minute), Open: 100.9, High: 100.9, Low: 100.9, Close: 100.9, Volume: 100},
	}

	p, err := b.Build(bars)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p.POCPrice != p.Bins[0].PriceCenter {
		t.Errorf("Expected POC at lowest tied bin %v, got %v", p.Bins[0].PriceCenter, p.POCPrice)
	}
}

func TestBuild_FlatRange(t *testing.T) {
	b := testBuilder(t, BuildConfig{NumRows: 24, ValueAreaPct: 0.7, TickSize: 0.01})
	bars := []*domain.Bar{
		{Time: time.Unix(1700000000, 0), Open: 50, High: 50, Low: 50, Close: 50, Volume: 300},
	}

	p, err := b.Build(bars)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p.NumRows != 1 {
		t.Errorf("Expected single row for flat range, got %d", p.NumRows)
	}
	if math.Abs(p.Bins[0].TotalVolume-300) > 1e-9 {
		t.Errorf("Expected all volume in the single row, got %v", p.Bins[0].TotalVolume)
	}
}

func TestBuild_MalformedBar(t *testing.T) {
	b := testBuilder(t, BuildConfig{NumRows: 24, ValueAreaPct: 0.7, TickSize: 0.01})
	bars := []*domain.Bar{
		{Time: time.Unix(1700000000, 0), Open: 100, High: math.NaN(), Low: 99, Close: 100, Volume: 10},
	}

	if _, err := b.Build(bars); !errors.Is(err, ports.ErrInvalidBar) {
		t.Errorf("Expected ErrInvalidBar, got %v", err)
	}
}

func TestBuild_TicksPerRowLayout(t *testing.T) {
	b := testBuilder(t, BuildConfig{
		RowsLayout:   RowsLayoutTicksPerRow,
		NumRows:      4, // 4 ticks per row
		ValueAreaPct: 0.7,
		TickSize:     0.25,
	})
	bars := []*domain.Bar{
		{Time: time.Unix(1700000000, 0), Open: 100, High: 104, Low: 100, Close: 104, Volume: 100},
	}

	p, err := b.Build(bars)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(p.RowSize-1.0) > 1e-9 {
		t.Errorf("Expected rowSize 1.0 (4 ticks of 0.25), got %v", p.RowSize)
	}
	if p.NumRows != 4 {
		t.Errorf("Expected 4 rows over a 4.0 range, got %d", p.NumRows)
	}
}
