package usecase

import (
	"errors"
	"time"

	"github.com/piresc/antar/internal/pkg/config"
	"github.com/piresc/antar/internal/pkg/logger"
	"github.com/piresc/antar/internal/pkg/models"
	"github.com/piresc/antar/internal/pkg/retry"
	"github.com/piresc/antar/services/dispatch"
)

// DispatchUC implements the dispatch use case interface
type DispatchUC struct {
	cfg         models.DispatchConfig
	tz          *time.Location
	driverDir   dispatch.DriverDirectory
	orderRepo   dispatch.OrderRepo
	zoneCatalog dispatch.ZoneCatalog
	dispatchGW  dispatch.DispatchGW
	retrier     *retry.Retrier
	now         func() time.Time
}

// Option customizes a DispatchUC
type Option func(*DispatchUC)

// WithClock replaces the wall clock, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(uc *DispatchUC) {
		uc.now = now
	}
}

// WithLogger sets the logger used by the assignment retrier
func WithLogger(l *logger.ZapLogger) Option {
	return func(uc *DispatchUC) {
		uc.retrier = newAssignRetrier(uc.cfg.MaxAssignRetries, l)
	}
}

// NewDispatchUC creates a new dispatch use case
func NewDispatchUC(
	cfg *models.Config,
	driverDir dispatch.DriverDirectory,
	orderRepo dispatch.OrderRepo,
	zoneCatalog dispatch.ZoneCatalog,
	dispatchGW dispatch.DispatchGW,
	opts ...Option,
) *DispatchUC {
	dc := withDefaults(cfg.Dispatch)

	uc := &DispatchUC{
		cfg:         dc,
		tz:          config.LoadTimeZone(dc.TimeZone),
		driverDir:   driverDir,
		orderRepo:   orderRepo,
		zoneCatalog: zoneCatalog,
		dispatchGW:  dispatchGW,
		retrier:     newAssignRetrier(dc.MaxAssignRetries, nil),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func newAssignRetrier(maxRetries int, l *logger.ZapLogger) *retry.Retrier {
	return retry.New(retry.Config{
		MaxRetries: maxRetries,
		BaseDelay:  5 * time.Millisecond,
		MaxDelay:   50 * time.Millisecond,
		Multiplier: 2,
		Jitter:     true,
		RetryableFunc: func(err error) bool {
			return errors.Is(err, dispatch.ErrAssignmentConflict)
		},
	}, l)
}

// withDefaults fills zero values so a partially populated config still behaves sanely
func withDefaults(dc models.DispatchConfig) models.DispatchConfig {
	def := models.DefaultDispatchConfig()

	if dc.FreshnessWindow <= 0 {
		dc.FreshnessWindow = def.FreshnessWindow
	}
	if dc.MaxAssignRetries <= 0 {
		dc.MaxAssignRetries = def.MaxAssignRetries
	}
	if dc.AssignTimeout <= 0 {
		dc.AssignTimeout = def.AssignTimeout
	}
	if dc.BaselineSpeedKmh <= 0 {
		dc.BaselineSpeedKmh = def.BaselineSpeedKmh
	}
	if dc.RushFactor <= 0 {
		dc.RushFactor = def.RushFactor
	}
	if dc.RushWindows == nil {
		dc.RushWindows = def.RushWindows
	}
	if dc.DefaultMinutes <= 0 {
		dc.DefaultMinutes = def.DefaultMinutes
	}
	if dc.DefaultBaseFee == 0 && dc.DefaultPerKmFee == 0 {
		dc.DefaultBaseFee = def.DefaultBaseFee
		dc.DefaultPerKmFee = def.DefaultPerKmFee
	}
	if dc.GeohashPrecision == 0 {
		dc.GeohashPrecision = def.GeohashPrecision
	}
	if dc.Weights == (models.ScoringWeights{}) {
		dc.Weights = def.Weights
	}
	return dc
}
