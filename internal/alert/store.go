// Package alert maintains the durable list of price-threshold alerts.
// The full alert sequence lives in one JSON snapshot that is rewritten
// after every mutation; memory is re-synchronized from the snapshot on
// each access that needs current content. The store does no internal
// locking: one logical session at a time, callers serialize externally.
package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quantfolio/folio/internal/core"
	"github.com/quantfolio/folio/internal/storage/snapshot"
)

// Store persists alerts through a snapshot backend.
type Store struct {
	storage snapshot.Storage
	path    string
	logger  *zap.Logger
	alerts  []core.Alert
}

// NewStore creates a store persisting to path within storage. logger may
// be nil. Call Load before first use to pick up any existing snapshot.
func NewStore(storage snapshot.Storage, path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		storage: storage,
		path:    path,
		logger:  logger,
	}
}

// Load reads the snapshot and replaces the in-memory sequence wholesale.
// A missing snapshot yields an empty sequence and creates no file.
func (s *Store) Load(ctx context.Context) ([]core.Alert, error) {
	exists, err := s.storage.Exists(ctx, s.path)
	if err != nil {
		return nil, fmt.Errorf("checking alert snapshot: %w", err)
	}
	if !exists {
		s.alerts = nil
		s.logger.Debug("no alert snapshot found, starting fresh", zap.String("path", s.path))
		return nil, nil
	}

	data, err := s.storage.Read(ctx, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.alerts = nil
			return nil, nil
		}
		return nil, fmt.Errorf("reading alert snapshot: %w", err)
	}

	var alerts []core.Alert
	if err := json.Unmarshal(data, &alerts); err != nil {
		return nil, fmt.Errorf("decoding alert snapshot: %w", err)
	}

	s.alerts = alerts
	s.logger.Debug("loaded alerts", zap.Int("count", len(alerts)))
	return s.snapshotCopy(), nil
}

// Save serializes the full in-memory sequence, overwriting the snapshot.
func (s *Store) Save(ctx context.Context) error {
	data, err := json.MarshalIndent(s.alerts, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding alerts: %w", err)
	}
	if err := s.storage.Write(ctx, s.path, data); err != nil {
		return fmt.Errorf("writing alert snapshot: %w", err)
	}
	s.logger.Debug("saved alerts", zap.Int("count", len(s.alerts)))
	return nil
}

// Add appends a new alert and persists. The ticker is upper-cased;
// duplicates are permitted.
func (s *Store) Add(ctx context.Context, portfolioID int, ticker string, threshold decimal.Decimal, direction core.Direction) (core.Alert, error) {
	if _, err := s.Load(ctx); err != nil {
		return core.Alert{}, err
	}

	a := core.Alert{
		PortfolioID: portfolioID,
		Ticker:      strings.ToUpper(strings.TrimSpace(ticker)),
		Threshold:   threshold,
		Direction:   direction,
	}
	s.alerts = append(s.alerts, a)

	if err := s.Save(ctx); err != nil {
		return core.Alert{}, err
	}

	s.logger.Info("alert added",
		zap.String("ticker", a.Ticker),
		zap.String("direction", string(a.Direction)),
		zap.String("threshold", a.Threshold.String()),
	)
	return a, nil
}

// Remove deletes the alert at index, persists, and returns the removed
// alert. An out-of-range index fails without touching the snapshot.
func (s *Store) Remove(ctx context.Context, index int) (core.Alert, error) {
	if _, err := s.Load(ctx); err != nil {
		return core.Alert{}, err
	}

	if index < 0 || index >= len(s.alerts) {
		return core.Alert{}, core.WrapError(core.ErrIndexOutOfRange,
			fmt.Errorf("index %d, have %d alerts", index, len(s.alerts)))
	}

	removed := s.alerts[index]
	s.alerts = append(s.alerts[:index], s.alerts[index+1:]...)

	if err := s.Save(ctx); err != nil {
		return core.Alert{}, err
	}

	s.logger.Info("alert removed", zap.String("alert", removed.String()))
	return removed, nil
}

// List re-syncs from the snapshot and returns the current sequence.
func (s *Store) List(ctx context.Context) ([]core.Alert, error) {
	if _, err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s.snapshotCopy(), nil
}

func (s *Store) snapshotCopy() []core.Alert {
	out := make([]core.Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}
