package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"volumeProfiler/internal/domain"
)

// WriteBarsToCSV saves bars to a CSV file for offline profile runs.
func WriteBarsToCSV(bars []*domain.Bar, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	writer.Write([]string{"time", "symbol", "interval", "open", "high", "low", "close", "volume"})

	for _, b := range bars {
		writer.Write([]string{
			b.Time.UTC().Format(time.RFC3339),
			b.Symbol,
			b.Interval,
			strconv.FormatFloat(b.Open, 'f', -1, 64),
			strconv.FormatFloat(b.High, 'f', -1, 64),
			strconv.FormatFloat(b.Low, 'f', -1, 64),
			strconv.FormatFloat(b.Close, 'f', -1, 64),
			strconv.FormatFloat(b.Volume, 'f', -1, 64),
		})
	}
	return writer.Error()
}

// ReadBarsFromCSV loads bars previously written by WriteBarsToCSV.
func ReadBarsFromCSV(filename string) ([]*domain.Bar, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV %s: %w", filename, err)
	}
	if len(records) < 2 {
		return nil, nil // header only or empty
	}

	bars := make([]*domain.Bar, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != 8 {
			return nil, fmt.Errorf("row %d of %s: expected 8 fields, got %d", i+2, filename, len(rec))
		}
		t, err := time.Parse(time.RFC3339, rec[0])
		if err != nil {
			return nil, fmt.Errorf("row %d of %s: parsing time: %w", i+2, filename, err)
		}
		bar := &domain.Bar{Time: t, Symbol: rec[1], Interval: rec[2]}
		for j, dst := range []*float64{&bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume} {
			v, err := strconv.ParseFloat(rec[3+j], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d of %s: parsing field %d: %w", i+2, filename, 3+j, err)
			}
			*dst = v
		}
		bars = append(bars, bar)
	}
	return bars, nil
}
