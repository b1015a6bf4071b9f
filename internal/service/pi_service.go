package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Sun-Circumference-Backend/internal/apperrors"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/bigdec"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/model"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/pi"
)

// StateStore is the durable key/value backing of the PiService.
// Get returns (nil, nil) when no record exists for key.
type StateStore interface {
	Get(ctx context.Context, key string) (*model.PersistedState, error)
	Set(ctx context.Context, key string, state model.PersistedState) error
}

// modeCell guards the cached state of a single mode.
type modeCell struct {
	mu    sync.Mutex
	state model.ConvergenceState
	// dirty is set while the last durable write failed; memory is then newer
	// than the durable store and wins on load.
	dirty bool
}

// PiService owns the convergence state of every mode.
//
// Each mode lives in its own mutex-guarded cell, so operations on one mode are
// serialized while the two modes proceed independently. The durable store is
// preferred on every load; when it fails the cached state is served and the
// failure is only logged.
type PiService struct {
	store      StateStore
	timeout    time.Duration
	instanceID string
	cells      map[model.Mode]*modeCell
	algorithms map[model.Mode]pi.Algorithm
	now        func() time.Time
}

// NewPiService creates a PiService backed by store. Every durable call is
// bounded by storeTimeout.
func NewPiService(store StateStore, storeTimeout time.Duration) *PiService {
	cells := make(map[model.Mode]*modeCell, len(model.Modes))
	algorithms := make(map[model.Mode]pi.Algorithm, len(model.Modes))
	for _, mode := range model.Modes {
		cells[mode] = &modeCell{state: model.InitialState()}
		algorithms[mode], _ = pi.ForMode(mode)
	}

	return &PiService{
		store:      store,
		timeout:    storeTimeout,
		instanceID: uuid.NewString(),
		cells:      cells,
		algorithms: algorithms,
		now:        time.Now,
	}
}

// InstanceID identifies this process in persisted records.
func (s *PiService) InstanceID() string {
	return s.instanceID
}

func (s *PiService) cell(mode model.Mode) (*modeCell, error) {
	c, ok := s.cells[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidMode, mode)
	}
	return c, nil
}

// Read returns the current state of mode without mutating it.
// Durable failures are never returned; the cached state is served instead.
func (s *PiService) Read(ctx context.Context, mode model.Mode) (model.ConvergenceState, error) {
	c, err := s.cell(mode)
	if err != nil {
		return model.ConvergenceState{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return s.load(ctx, mode, c), nil
}

// Increment advances mode by one iteration and recomputes its approximation
// from scratch. On a computation error the state is left untouched.
func (s *PiService) Increment(ctx context.Context, mode model.Mode) (model.ConvergenceState, error) {
	c, err := s.cell(mode)
	if err != nil {
		return model.ConvergenceState{}, err
	}
	algorithm := s.algorithms[mode]

	c.mu.Lock()
	defer c.mu.Unlock()

	current := s.load(ctx, mode, c)
	next := current.IterationCount + 1

	approximation, err := algorithm(next)
	if err != nil {
		return model.ConvergenceState{}, fmt.Errorf("%w: %s at %d: %w", apperrors.ErrComputation, mode, next, err)
	}

	state := model.ConvergenceState{Approximation: approximation, IterationCount: next}
	s.commit(ctx, mode, c, state)

	return state, nil
}

// Reset returns mode to the initial (3, 0) state.
func (s *PiService) Reset(ctx context.Context, mode model.Mode) (model.ConvergenceState, error) {
	c, err := s.cell(mode)
	if err != nil {
		return model.ConvergenceState{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	state := model.InitialState()
	s.commit(ctx, mode, c, state)

	return state, nil
}

// Dump reads the state of every mode concurrently without mutating any of them.
func (s *PiService) Dump(ctx context.Context) (map[model.Mode]model.ConvergenceState, error) {
	states := make([]model.ConvergenceState, len(model.Modes))

	g, gctx := errgroup.WithContext(ctx)
	for i, mode := range model.Modes {
		g.Go(func() error {
			state, err := s.Read(gctx, mode)
			if err != nil {
				return err
			}
			states[i] = state
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToDumpState, err)
	}

	dump := make(map[model.Mode]model.ConvergenceState, len(model.Modes))
	for i, mode := range model.Modes {
		dump[mode] = states[i]
	}
	return dump, nil
}

// PendingModes lists the modes whose latest state has not reached the durable store.
func (s *PiService) PendingModes() []model.Mode {
	var pending []model.Mode
	for _, mode := range model.Modes {
		c := s.cells[mode]
		c.mu.Lock()
		if c.dirty {
			pending = append(pending, mode)
		}
		c.mu.Unlock()
	}
	return pending
}

// FlushPending re-attempts the durable write of every mode whose last write
// failed and returns how many modes were brought back in sync.
func (s *PiService) FlushPending(ctx context.Context) int {
	flushed := 0
	for _, mode := range model.Modes {
		c := s.cells[mode]
		c.mu.Lock()
		if c.dirty {
			outcome := s.persist(ctx, mode, c.state)
			c.dirty = outcome.Degraded
			if outcome.Degraded {
				log.Printf("state: resync of %s still degraded: %s", mode, outcome.Reason)
			} else {
				flushed++
				log.Printf("state: resynced %s at iteration %d", mode, c.state.IterationCount)
			}
		}
		c.mu.Unlock()
	}
	return flushed
}

// load resolves the current state of mode. c.mu must be held.
func (s *PiService) load(ctx context.Context, mode model.Mode, c *modeCell) model.ConvergenceState {
	if c.dirty {
		return c.state
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	record, err := s.store.Get(ctx, mode.StoreKey())
	if err != nil {
		log.Printf("state: durable read of %s failed, serving cached state: %v", mode, err)
		return c.state
	}
	if record == nil {
		return c.state
	}

	state, err := decodeRecord(mode, record)
	if err != nil {
		log.Printf("state: ignoring durable record for %s: %v", mode, err)
		return c.state
	}

	c.state = state
	return state
}

// commit installs state in the cache unconditionally, then attempts the
// durable write. c.mu must be held, which keeps durable writes of one mode in
// commit order.
func (s *PiService) commit(ctx context.Context, mode model.Mode, c *modeCell, state model.ConvergenceState) model.PersistOutcome {
	c.state = state

	outcome := s.persist(ctx, mode, state)
	c.dirty = outcome.Degraded
	if outcome.Degraded {
		log.Printf("state: durable write of %s degraded, keeping in-memory state: %s", mode, outcome.Reason)
	}
	return outcome
}

func (s *PiService) persist(ctx context.Context, mode model.Mode, state model.ConvergenceState) model.PersistOutcome {
	// A client hanging up must not abort the write; the timeout still bounds it.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	record := model.PersistedState{
		Pi:             state.Approximation.String(),
		IterationCount: state.IterationCount,
		UpdatedAt:      s.now().UTC(),
		InstanceID:     s.instanceID,
	}
	if err := s.store.Set(ctx, mode.StoreKey(), record); err != nil {
		return model.PersistedDegraded(fmt.Errorf("%w: %w", apperrors.ErrPersistence, err))
	}
	return model.PersistedOK
}

func decodeRecord(mode model.Mode, record *model.PersistedState) (model.ConvergenceState, error) {
	if record.IterationCount < 0 {
		return model.ConvergenceState{}, fmt.Errorf("%w: negative iteration count %d", apperrors.ErrCorruptState, record.IterationCount)
	}
	approximation, err := bigdec.NewFromString(pi.WorkingContext(mode, record.IterationCount), record.Pi)
	if err != nil {
		return model.ConvergenceState{}, fmt.Errorf("%w: %w", apperrors.ErrCorruptState, err)
	}
	return model.ConvergenceState{Approximation: approximation, IterationCount: record.IterationCount}, nil
}
