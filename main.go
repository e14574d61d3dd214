package main

import (
	"context"
	"fmt"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"time"

	"volumeProfiler/config"
	"volumeProfiler/internal/adapters/binanceclient"
	"volumeProfiler/internal/adapters/logger"
	"volumeProfiler/internal/adapters/sqlite"
	"volumeProfiler/internal/app"
	"volumeProfiler/internal/profile"
	"volumeProfiler/internal/timeframe"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(cfg.LogLevel)
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	// 3. Initialize Bar Cache (Database Adapter)
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize bar cache")
		log.Fatalf("FATAL: Failed to initialize bar cache: %v", err) // Also log to stderr
	}
	defer func() {
		if err := repo.Close(); err != nil {
			appLogger.Error(context.Background(), err, "Error closing bar cache")
		}
	}()

	// 4. Initialize Exchange Client (Binance Adapter)
	binanceClient, err := binanceclient.New(binanceclient.Config{
		APIKey:     cfg.APIKey,
		SecretKey:  cfg.SecretKey,
		UseTestnet: cfg.IsTestnet,
		Logger:     appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize Binance client")
		log.Fatalf("FATAL: Failed to initialize Binance client: %v", err)
	}
	appLogger.Info(context.Background(), "Binance client initialized")

	// 5. Initialize Profile Service
	service, err := app.NewProfileService(app.Config{
		Symbol:         cfg.Symbol,
		ChartTF:        timeframe.Timeframe(cfg.ChartTF),
		IsFutures:      cfg.IsFutures,
		RowsLayout:     profile.RowsLayout(cfg.RowsLayout),
		NumRows:        cfg.NumRows,
		ValueAreaPct:   cfg.ValueAreaPct,
		TickSize:       cfg.TickSize,
		AnchorPeriod:   cfg.AnchorPeriod,
		MaxTotalRows:   cfg.MaxTotalRows,
		RowsPerPeriod:  cfg.RowsPerPeriod,
		LookbackLength: cfg.LookbackLength,
	}, appLogger, binanceClient, repo)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize profile service")
		log.Fatalf("FATAL: Failed to initialize profile service: %v", err)
	}
	appLogger.Info(context.Background(), "Profile service initialized")

	// 6. Build profiles over the configured visible range
	from, to := cfg.VisibleRange(time.Now())
	result, err := service.BuildProfiles(context.Background(), from, to)
	if err != nil {
		appLogger.Error(context.Background(), err, "Profile computation failed")
		log.Fatalf("FATAL: Profile computation failed: %v", err)
	}

	fmt.Printf("%s %s | ltf=%s anchor=%s bars=%d periods=%d\n",
		cfg.Symbol, cfg.ChartTF, result.LTF, result.Anchor, result.BarCount, len(result.Periods))
	for _, pp := range result.Periods {
		p := pp.Profile
		fmt.Printf("  %s: POC=%.4f VAH=%.4f VAL=%.4f totalVolume=%.2f rows=%d\n",
			pp.AnchorTime.Format("2006-01-02"), p.POCPrice, p.VAHPrice, p.VALPrice, p.TotalVolume, p.NumRows)
	}
	fmt.Printf("  swing high %.4f @ %s | swing low %.4f @ %s\n",
		result.SwingHi.Price, result.SwingHi.Time.Format(time.RFC3339),
		result.SwingLo.Price, result.SwingLo.Time.Format(time.RFC3339))

	appLogger.Info(context.Background(), "Application finished gracefully.")
}
