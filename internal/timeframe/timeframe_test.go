package timeframe

import (
	"testing"
	"time"

	"volumeProfiler/internal/domain"
)

func TestTimeframeMinutes(t *testing.T) {
	tests := []struct {
		tf       Timeframe
		expected int
		wantErr  bool
	}{
		{tf: "1", expected: 1},
		{tf: "15", expected: 15},
		{tf: "240", expected: 240},
		{tf: "1D", expected: 1440},
		{tf: "D", expected: 1440},
		{tf: "3D", expected: 3 * 1440},
		{tf: "1W", expected: 7 * 1440},
		{tf: "1M", expected: 30 * 1440},
		{tf: "", wantErr: true},
		{tf: "abc", wantErr: true},
		{tf: "-5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.tf), func(t *testing.T) {
			m, err := tt.tf.Minutes()
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if m != tt.expected {
				t.Errorf("Expected %d minutes, got %d", tt.expected, m)
			}
		})
	}
}

func TestSelectLTF(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		window    time.Duration
		chartTF   Timeframe
		isFutures bool
		expected  Timeframe
	}{
		{
			name:     "two hour window picks one minute",
			window:   2 * time.Hour,
			chartTF:  "1D",
			expected: "1", // 120 estimated bars
		},
		{
			name:     "one year window needs hourly bars",
			window:   365 * 24 * time.Hour,
			chartTF:  "1D",
			expected: "240", // 525600m: 60m -> 8760 bars, 240m -> 2190
		},
		{
			name:     "enormous window falls back to coarsest",
			window:   20 * 365 * 24 * time.Hour,
			chartTF:  "1W",
			expected: "1D", // even daily estimate exceeds the cap
		},
		{
			name:      "futures floors at one notch below chart timeframe",
			window:    2 * time.Hour,
			chartTF:   "60",
			isFutures: true,
			expected:  "15", // 1m would qualify, but futures stay near the chart resolution
		},
		{
			name:      "futures on one minute chart clamps at one minute",
			window:    time.Hour,
			chartTF:   "1",
			isFutures: true,
			expected:  "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectLTF(base, base.Add(tt.window), tt.chartTF, tt.isFutures)
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSelectLTF_WeekWindowUsesThreeMinutes(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	// 10080 estimated 1m bars exceed the cap; 3m gives 3360.
	got := SelectLTF(base, base.Add(7*24*time.Hour), "1D", false)
	if got != "3" {
		t.Errorf("Expected \"3\", got %q", got)
	}
}

func TestAutoAnchorPeriod(t *testing.T) {
	tests := []struct {
		tf       Timeframe
		expected domain.AnchorPeriod
	}{
		{tf: "1", expected: domain.AnchorSession},
		{tf: "60", expected: domain.AnchorSession},
		{tf: "240", expected: domain.AnchorSession},
		{tf: "1D", expected: domain.AnchorMonth},
		{tf: "3D", expected: domain.AnchorQuarter},
		{tf: "10D", expected: domain.AnchorQuarter},
		{tf: "1W", expected: domain.AnchorYear},
		{tf: "1M", expected: domain.AnchorYear},
	}

	for _, tt := range tests {
		t.Run(string(tt.tf), func(t *testing.T) {
			if got := AutoAnchorPeriod(tt.tf); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
