package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"sync"

	"volumeProfiler/config"
	"volumeProfiler/internal/adapters/logger"
	"volumeProfiler/internal/periods"
	"volumeProfiler/internal/profile"
	"volumeProfiler/internal/utils"
)

const histogramWidth = 40

type periodResult struct {
	period  periods.Period
	profile *profile.Profile
	err     error
}

func main() {
	csvPath := flag.String("csv", "", "CSV file of bars to profile (written by fetch_bars)")
	flag.Parse()
	if *csvPath == "" {
		log.Fatal("FATAL: -csv is required")
	}

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	appLogger := logger.NewStdLogger(cfg.LogLevel)

	// 2. Load bars from CSV
	bars, err := utils.ReadBarsFromCSV(*csvPath)
	if err != nil {
		appLogger.Error(context.Background(), err, "Error loading bars", map[string]interface{}{"file": *csvPath})
		log.Fatalf("Error loading bars: %v", err)
	}
	appLogger.Info(context.Background(), "Loaded bars", map[string]interface{}{"count": len(bars), "file": *csvPath})

	// 3. Split into anchor periods under the row budget
	split, err := periods.Split(bars, cfg.AnchorPeriod, cfg.MaxTotalRows, cfg.RowsPerPeriod)
	if err != nil {
		log.Fatalf("Error splitting periods: %v", err)
	}

	builder, err := profile.NewBuilder(profile.BuildConfig{
		RowsLayout:   profile.RowsLayout(cfg.RowsLayout),
		NumRows:      cfg.NumRows,
		ValueAreaPct: cfg.ValueAreaPct,
		TickSize:     cfg.TickSize,
	})
	if err != nil {
		log.Fatalf("Error creating builder: %v", err)
	}

	// 4. Build one profile per period. Builds are pure and stateless, so one
	// goroutine per period is safe; each writes only its own slot.
	results := make([]periodResult, len(split))
	var wg sync.WaitGroup
	for i, p := range split {
		wg.Add(1)
		go func(i int, p periods.Period) {
			defer wg.Done()
			prof, err := builder.Build(p.Bars)
			results[i] = periodResult{period: p, profile: prof, err: err}
		}(i, p)
	}
	wg.Wait()

	// 5. Print each period's histogram in time order
	for _, r := range results {
		if r.err != nil {
			appLogger.Error(context.Background(), r.err, "Profile build failed",
				map[string]interface{}{"period": r.period.AnchorTime})
			continue
		}
		printProfile(r)
	}
}

func printProfile(r periodResult) {
	p := r.profile
	fmt.Printf("\n=== Period %s | bars=%d rows=%d rowSize=%g totalVolume=%.2f ===\n",
		r.period.AnchorTime.Format("2006-01-02"), p.LTFBarsUsed, p.NumRows, p.RowSize, p.TotalVolume)
	fmt.Printf("POC=%.4f VAH=%.4f VAL=%.4f\n", p.POCPrice, p.VAHPrice, p.VALPrice)

	maxVol := 0.0
	for _, bin := range p.Bins {
		if bin.TotalVolume > maxVol {
			maxVol = bin.TotalVolume
		}
	}
	if maxVol == 0 {
		return
	}

	// Highest price row first, the way a chart draws it.
	for i := len(p.Bins) - 1; i >= 0; i-- {
		bin := p.Bins[i]
		width := int(bin.TotalVolume / maxVol * histogramWidth)
		marker := " "
		switch {
		case bin.PriceCenter == p.POCPrice:
			marker = "P"
		case bin.PriceCenter == p.VAHPrice || bin.PriceCenter == p.VALPrice:
			marker = "*"
		}
		fmt.Printf("%10.4f |%s%-*s| %12.2f (Δ %+.2f)\n",
			bin.PriceCenter, marker, histogramWidth, strings.Repeat("#", width),
			bin.TotalVolume, bin.DeltaVolume)
	}
}
