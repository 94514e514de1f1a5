package strategy

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/quantfolio/folio/internal/core"
)

// Engine manages registered strategies and runs them by name.
type Engine struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
	logger     *zap.Logger
}

// NewEngine creates a strategy engine. logger may be nil.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		strategies: make(map[string]Strategy),
		logger:     logger,
	}
}

// Register adds a strategy to the engine.
func (e *Engine) Register(s Strategy) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.strategies[s.Name()] = s
}

// Get retrieves a strategy by name.
func (e *Engine) Get(name string) (Strategy, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, ok := e.strategies[name]
	return s, ok
}

// Names returns all registered strategy names, sorted.
func (e *Engine) Names() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.strategies))
	for name := range e.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run computes the named strategy's series over bars (newest first).
func (e *Engine) Run(name string, bars []core.Bar) (core.IndicatorSeries, error) {
	s, ok := e.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown strategy: %s", name)
	}

	series, err := s.Compute(bars)
	if err != nil {
		e.logger.Warn("strategy computation failed",
			zap.String("strategy", name),
			zap.Error(err),
		)
		return nil, err
	}
	return series, nil
}
