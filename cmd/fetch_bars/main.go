package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"volumeProfiler/config"
	"volumeProfiler/internal/adapters/binanceclient"
	"volumeProfiler/internal/adapters/logger"
	"volumeProfiler/internal/adapters/sqlite"
	"volumeProfiler/internal/utils"
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

	// 3. Initialize Exchange Client (Binance Adapter)
	client, err := binanceclient.New(binanceclient.Config{
		APIKey:     cfg.APIKey,
		SecretKey:  cfg.SecretKey,
		UseTestnet: cfg.IsTestnet,
		Logger:     appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize Binance client")
		log.Fatalf("FATAL: Failed to initialize Binance client: %v", err)
	}

	// 4. Initialize Bar Cache
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize bar cache")
		log.Fatalf("FATAL: Failed to initialize bar cache: %v", err)
	}
	defer repo.Close()

	interval := "1" // one-minute bars give the finest intrabar volume
	end := time.Now().UTC()
	start := end.AddDate(0, -1, 0) // 1 month back

	fmt.Printf("Fetching %s %s bars from %s to %s...\n", cfg.Symbol, interval, start, end)
	bars, err := client.GetBarsRange(context.Background(), cfg.Symbol, interval, start, end)
	if err != nil {
		appLogger.Error(context.Background(), err, "Error fetching bars")
		log.Fatalf("Error fetching bars: %v", err)
	}
	appLogger.Info(context.Background(), "Fetched bars", map[string]interface{}{"count": len(bars)})

	if err := repo.UpsertBars(context.Background(), bars); err != nil {
		appLogger.Error(context.Background(), err, "Error caching bars")
		log.Fatalf("Error caching bars: %v", err)
	}

	filename := fmt.Sprintf("data/%s_%s_%s_to_%s.csv", cfg.Symbol, interval, start.Format("20060102"), end.Format("20060102"))
	if err := utils.WriteBarsToCSV(bars, filename); err != nil {
		appLogger.Error(context.Background(), err, "Error writing CSV")
		log.Fatalf("Error writing CSV: %v", err)
	}
	appLogger.Info(context.Background(), "Saved to", map[string]interface{}{"filename": filename})
}
