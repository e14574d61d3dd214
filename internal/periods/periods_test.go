package periods

import (
	"errors"
	"testing"
	"time"

	"volumeProfiler/internal/domain"
	"volumeProfiler/internal/ports"
)

func hourlyBars(start time.Time, count int) []*domain.Bar {
	bars := make([]*domain.Bar, count)
	for i := range bars {
		t := start.Add(time.Duration(i) * time.Hour)
		bars[i] = &domain.Bar{
			Time: t, Open: 100, High: 101, Low: 99, Close: 100.5, Volume: 10,
		}
	}
	return bars
}

func TestSplit_DailyBoundaries(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := hourlyBars(start, 72) // three full UTC days

	got, err := Split(bars, domain.AnchorSession, 1000, 24)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 periods, got %d", len(got))
	}
	for i, p := range got {
		if len(p.Bars) != 24 {
			t.Errorf("Period %d: expected 24 bars, got %d", i, len(p.Bars))
		}
		expectedAnchor := start.AddDate(0, 0, i)
		if !p.AnchorTime.Equal(expectedAnchor) {
			t.Errorf("Period %d: expected anchor %v, got %v", i, expectedAnchor, p.AnchorTime)
		}
	}
}

func TestSplit_RowBudgetDropsTrailingPeriods(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := hourlyBars(start, 72) // three daily periods

	got, err := Split(bars, domain.AnchorSession, 48, 24)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 periods under the 48-row budget, got %d", len(got))
	}
	// The earliest periods survive; the trailing one is dropped.
	if !got[0].AnchorTime.Equal(start) {
		t.Errorf("Expected first period anchored at %v, got %v", start, got[0].AnchorTime)
	}
}

func TestSplit_MonthAndQuarterAndYearBoundaries(t *testing.T) {
	bars := []*domain.Bar{
		{Time: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{Time: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)},
		{Time: time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)},
		{Time: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
	}

	tests := []struct {
		anchor   domain.AnchorPeriod
		expected int
	}{
		{anchor: domain.AnchorMonth, expected: 4},   // Jan, Feb, Apr, Jan'25
		{anchor: domain.AnchorQuarter, expected: 3}, // Q1'24, Q2'24, Q1'25
		{anchor: domain.AnchorYear, expected: 2},    // 2024, 2025
	}

	for _, tt := range tests {
		t.Run(string(tt.anchor), func(t *testing.T) {
			got, err := Split(bars, tt.anchor, 1000, 24)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(got) != tt.expected {
				t.Errorf("Expected %d periods, got %d", tt.expected, len(got))
			}
		})
	}
}

func TestSplit_EmptyAndInvalid(t *testing.T) {
	got, err := Split(nil, domain.AnchorSession, 48, 24)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no periods for empty input, got %d", len(got))
	}

	if _, err := Split(nil, domain.AnchorSession, 48, 0); !errors.Is(err, ports.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for zero rowsPerPeriod, got %v", err)
	}
}

func TestFilterVisibleRange(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := hourlyBars(start, 10)

	tests := []struct {
		name     string
		from     time.Time
		to       time.Time
		expected int
	}{
		{
			name:     "inclusive bounds",
			from:     start.Add(2 * time.Hour),
			to:       start.Add(5 * time.Hour),
			expected: 4,
		},
		{
			name:     "full range",
			from:     start,
			to:       start.Add(9 * time.Hour),
			expected: 10,
		},
		{
			name:     "disjoint range after data",
			from:     start.Add(24 * time.Hour),
			to:       start.Add(48 * time.Hour),
			expected: 0,
		},
		{
			name:     "disjoint range before data",
			from:     start.Add(-48 * time.Hour),
			to:       start.Add(-24 * time.Hour),
			expected: 0,
		},
		{
			name:     "inverted range",
			from:     start.Add(5 * time.Hour),
			to:       start.Add(2 * time.Hour),
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterVisibleRange(bars, tt.from, tt.to)
			if len(got) != tt.expected {
				t.Errorf("Expected %d bars, got %d", tt.expected, len(got))
			}
			for _, bar := range got {
				if bar.Time.Before(tt.from) || bar.Time.After(tt.to) {
					t.Errorf("Bar at %v outside [%v, %v]", bar.Time, tt.from, tt.to)
				}
			}
		})
	}
}

func TestFindHighLowAnchor(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := []*domain.Bar{
		{Time: start, High: 105, Low: 95},
		{Time: start.Add(time.Hour), High: 120, Low: 100},
		{Time: start.Add(2 * time.Hour), High: 110, Low: 90},
		{Time: start.Add(3 * time.Hour), High: 108, Low: 98},
	}

	tests := []struct {
		name          string
		lookback      int
		mode          AnchorMode
		expectedTime  time.Time
		expectedPrice float64
	}{
		{
			name:          "high over full window",
			lookback:      10,
			mode:          AnchorHigh,
			expectedTime:  start.Add(time.Hour),
			expectedPrice: 120,
		},
		{
			name:          "low over full window",
			lookback:      10,
			mode:          AnchorLow,
			expectedTime:  start.Add(2 * time.Hour),
			expectedPrice: 90,
		},
		{
			name:          "lookback excludes earlier extreme",
			lookback:      2,
			mode:          AnchorHigh,
			expectedTime:  start.Add(2 * time.Hour),
			expectedPrice: 110,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindHighLowAnchor(bars, tt.lookback, tt.mode)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !got.Time.Equal(tt.expectedTime) || got.Price != tt.expectedPrice {
				t.Errorf("Expected {%v %v}, got {%v %v}",
					tt.expectedTime, tt.expectedPrice, got.Time, got.Price)
			}
		})
	}
}

func TestFindHighLowAnchor_EmptyAndInvalid(t *testing.T) {
	got, err := FindHighLowAnchor(nil, 10, AnchorHigh)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !got.Time.IsZero() || got.Price != 0 {
		t.Errorf("Expected zero sentinel anchor, got %+v", got)
	}

	if _, err := FindHighLowAnchor(nil, 0, AnchorHigh); !errors.Is(err, ports.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}
