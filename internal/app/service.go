package app

import (
	"context"
	"fmt"
	"time"

	"volumeProfiler/internal/domain"
	"volumeProfiler/internal/periods"
	"volumeProfiler/internal/ports"
	"volumeProfiler/internal/profile"
	"volumeProfiler/internal/timeframe"
)

// Config holds the profile service parameters.
type Config struct {
	Symbol         string
	ChartTF        timeframe.Timeframe
	IsFutures      bool
	RowsLayout     profile.RowsLayout
	NumRows        int
	ValueAreaPct   float64
	TickSize       float64
	AnchorPeriod   domain.AnchorPeriod // Auto defers to the chart timeframe
	MaxTotalRows   int
	RowsPerPeriod  int
	LookbackLength int
}

// PeriodProfile pairs one anchor period with its computed profile.
type PeriodProfile struct {
	AnchorTime time.Time
	Profile    *profile.Profile
}

// Result is the full outcome of one profile computation over a visible range.
type Result struct {
	LTF      timeframe.Timeframe
	Anchor   domain.AnchorPeriod
	Periods  []PeriodProfile
	SwingHi  periods.Anchor
	SwingLo  periods.Anchor
	BarCount int
}

// ProfileService orchestrates the profile pipeline: lower-timeframe
// selection, bar loading through the cache, range filtering, period
// splitting and per-period profile builds. The engine packages stay pure;
// all I/O lives here.
type ProfileService struct {
	cfg      Config
	logger   ports.Logger
	provider ports.MarketDataProvider
	repo     ports.BarRepository
	builder  *profile.Builder
}

// NewProfileService validates dependencies and creates the service.
func NewProfileService(cfg Config, logger ports.Logger, provider ports.MarketDataProvider, repo ports.BarRepository) (*ProfileService, error) {
	if logger == nil {
		return nil, fmt.Errorf("%w: logger is required", ports.ErrConfigurationError)
	}
	if provider == nil {
		return nil, fmt.Errorf("%w: market data provider is required", ports.ErrConfigurationError)
	}
	if repo == nil {
		return nil, fmt.Errorf("%w: bar repository is required", ports.ErrConfigurationError)
	}
	if cfg.Symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", ports.ErrConfigurationError)
	}
	if cfg.LookbackLength <= 0 {
		return nil, fmt.Errorf("%w: lookbackLength must be positive, got %d", ports.ErrInvalidArgument, cfg.LookbackLength)
	}

	builder, err := profile.NewBuilder(profile.BuildConfig{
		RowsLayout:   cfg.RowsLayout,
		NumRows:      cfg.NumRows,
		ValueAreaPct: cfg.ValueAreaPct,
		TickSize:     cfg.TickSize,
	})
	if err != nil {
		return nil, err
	}

	return &ProfileService{
		cfg:      cfg,
		logger:   logger,
		provider: provider,
		repo:     repo,
		builder:  builder,
	}, nil
}

// BuildProfiles computes one profile per anchor period over the visible
// range [from, to]. Every call is a full recomputation; coalescing rapid
// parameter changes is the caller's concern.
func (s *ProfileService) BuildProfiles(ctx context.Context, from, to time.Time) (*Result, error) {
	anchor := s.cfg.AnchorPeriod
	if anchor == domain.AnchorAuto || anchor == "" {
		anchor = timeframe.AutoAnchorPeriod(s.cfg.ChartTF)
	}

	ltf := timeframe.SelectLTF(from, to, s.cfg.ChartTF, s.cfg.IsFutures)
	s.logger.Debug(ctx, "Selected lower timeframe", map[string]interface{}{
		"symbol": s.cfg.Symbol, "ltf": string(ltf), "anchor": string(anchor),
	})

	bars, err := s.loadBars(ctx, string(ltf), from, to)
	if err != nil {
		return nil, err
	}

	visible := periods.FilterVisibleRange(bars, from, to)
	split, err := periods.Split(visible, anchor, s.cfg.MaxTotalRows, s.cfg.RowsPerPeriod)
	if err != nil {
		return nil, err
	}

	result := &Result{
		LTF:      ltf,
		Anchor:   anchor,
		Periods:  make([]PeriodProfile, 0, len(split)),
		BarCount: len(visible),
	}

	for _, p := range split {
		prof, err := s.builder.Build(p.Bars)
		if err != nil {
			return nil, fmt.Errorf("building profile for period %v: %w", p.AnchorTime, err)
		}
		result.Periods = append(result.Periods, PeriodProfile{
			AnchorTime: p.AnchorTime,
			Profile:    prof,
		})
	}

	result.SwingHi, err = periods.FindHighLowAnchor(visible, s.cfg.LookbackLength, periods.AnchorHigh)
	if err != nil {
		return nil, err
	}
	result.SwingLo, err = periods.FindHighLowAnchor(visible, s.cfg.LookbackLength, periods.AnchorLow)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "Profiles built", map[string]interface{}{
		"symbol":  s.cfg.Symbol,
		"ltf":     string(ltf),
		"anchor":  string(anchor),
		"periods": len(result.Periods),
		"bars":    result.BarCount,
	})
	return result, nil
}

// loadBars serves bars from the local cache when it already covers the
// requested window, and falls back to the exchange (writing the fetch back
// into the cache) otherwise.
func (s *ProfileService) loadBars(ctx context.Context, interval string, from, to time.Time) ([]*domain.Bar, error) {
	tf := timeframe.Timeframe(interval)
	tfMinutes, err := tf.Minutes()
	if err != nil {
		return nil, err
	}
	expected := int(to.Sub(from).Minutes()) / tfMinutes

	cached, err := s.repo.CountBarsRange(ctx, s.cfg.Symbol, interval, from, to)
	if err != nil {
		return nil, err
	}
	// Weekends and exchange downtime leave gaps, so an exact match is not
	// expected; half coverage is the refetch threshold.
	if expected > 0 && cached*2 >= expected {
		s.logger.Debug(ctx, "Serving bars from cache", map[string]interface{}{
			"symbol": s.cfg.Symbol, "interval": interval, "cached": cached,
		})
		return s.repo.GetBarsRange(ctx, s.cfg.Symbol, interval, from, to)
	}

	bars, err := s.provider.GetBarsRange(ctx, s.cfg.Symbol, interval, from, to)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpsertBars(ctx, bars); err != nil {
		// Cache writes are best-effort; the profile build proceeds.
		s.logger.Warn(ctx, "Failed to cache fetched bars", map[string]interface{}{
			"symbol": s.cfg.Symbol, "interval": interval, "error": err.Error(),
		})
	}
	return bars, nil
}
