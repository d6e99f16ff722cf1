package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/snapdex/internal/domain"
	"github.com/phrazzld/snapdex/internal/events"
	"github.com/phrazzld/snapdex/internal/generation"
	"github.com/phrazzld/snapdex/internal/repository"
	"github.com/phrazzld/snapdex/internal/task"
)

// Errors returned by Dispatch.
var (
	ErrNilAction            = errors.New("action cannot be nil")
	ErrStoreClosed          = errors.New("state store is closed")
	ErrGenerationInProgress = errors.New("card generation already in progress")
	ErrInvalidCard          = errors.New("card is invalid")
)

// EventTypeStateChanged is the event type published after every applied action.
const EventTypeStateChanged = "state.changed"

// Change is published to subscribers after an action has been applied.
type Change struct {
	Action string `json:"action"`
	State  State  `json:"state"`
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used by the store and its worker.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the source of card creation times.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDSource sets the generator of card IDs.
func WithIDSource(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithSampleCards shows the sample collection when the stored collection is
// empty. Sample cards are held in memory only until the next write.
func WithSampleCards(enabled bool) Option {
	return func(s *Store) {
		s.seedSamples = enabled
	}
}

// Store owns the application state. All mutation goes through Dispatch.
type Store struct {
	mu     sync.Mutex
	state  State
	closed bool

	repo    repository.CardRepository
	gen     generation.Service
	emitter *events.InMemoryEventEmitter
	queue   *task.TaskQueue
	pool    *task.WorkerPool

	logger      *slog.Logger
	now         func() time.Time
	newID       func() string
	seedSamples bool
}

// New creates a Store, loading the collection from repo. A load failure is
// not fatal: the store starts empty and the failure is reported in State.Error.
func New(ctx context.Context, repo repository.CardRepository, gen generation.Service, opts ...Option) (*Store, error) {
	if repo == nil {
		return nil, fmt.Errorf("card repository cannot be nil")
	}
	if gen == nil {
		return nil, fmt.Errorf("generation service cannot be nil")
	}

	s := &Store{
		repo:   repo,
		gen:    gen,
		logger: slog.Default(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "state_store")
	s.emitter = events.NewInMemoryEventEmitter(s.logger)

	cards, err := repo.LoadCards(ctx)
	if err != nil {
		s.logger.Error("failed to load card collection", "error", err)
		s.state.Error = newPersistenceFailure(StageLoadCards, err)
	}
	if cards == nil {
		cards = []domain.Card{}
	}
	if len(cards) == 0 && s.seedSamples {
		cards = domain.SampleCards()
		s.logger.Debug("seeded sample cards", "count", len(cards))
	}
	s.state.Cards = cards

	// One worker keeps generation requests in submission order.
	s.queue = task.NewTaskQueue(4, s.logger)
	s.pool = task.NewWorkerPool(s.queue, task.DefaultWorkerPoolConfig(), s.logger)
	s.pool.Start()

	s.logger.Info("state store ready", "card_count", len(cards))
	return s, nil
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers fn to receive every Change. Handlers run synchronously
// on the goroutine that applied the action, while the store is locked, so
// they must not call Dispatch, Snapshot or Close; the Change already carries
// the state. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	return s.emitter.RegisterHandler(events.HandlerFunc(func(ctx context.Context, event *events.Event) error {
		if event.Type != EventTypeStateChanged {
			return nil
		}
		var change Change
		if err := event.UnmarshalPayload(&change); err != nil {
			return fmt.Errorf("failed to decode state change: %w", err)
		}
		fn(change)
		return nil
	}))
}

// Dispatch applies action. Failures of the action's side effects (storage,
// generation) are reported through State.Error; the returned error is
// non-nil only when the action was not applied at all.
func (s *Store) Dispatch(ctx context.Context, action Action) error {
	if action == nil {
		return ErrNilAction
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	return s.apply(ctx, action)
}

// Close stops the generation worker, cancelling any run in progress.
// Dispatch fails with ErrStoreClosed afterwards.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.queue.Close()
	s.pool.Stop()
	s.logger.Info("state store closed")
	return nil
}

// apply runs one transition and publishes the resulting state. Callers hold s.mu.
func (s *Store) apply(ctx context.Context, action Action) error {
	log := s.logger.With("action", action.Name())

	switch a := action.(type) {
	case SelectCard:
		card := a.Card.Clone()
		s.state.SelectedCard = &card

	case DeselectCard:
		s.state.SelectedCard = nil

	case ShowCameraView:
		s.state.IsCameraPresented = true

	case DismissCameraView:
		s.state.IsCameraPresented = false

	case GenerateCard:
		if s.state.IsGeneratingCard {
			log.Warn("rejected card generation while another is pending")
			return ErrGenerationInProgress
		}
		s.state.IsGeneratingCard = true
		if err := s.queue.Enqueue(s.newGenerationTask(a.Image)); err != nil {
			s.state.IsGeneratingCard = false
			log.Error("failed to enqueue card generation", "error", err)
			return fmt.Errorf("failed to start card generation: %w", err)
		}

	case ShowNewCard:
		if err := a.Card.Validate(); err != nil {
			log.Warn("rejected invalid card", "error", err)
			return fmt.Errorf("%w: %w", ErrInvalidCard, err)
		}
		card := a.Card.Clone()
		s.state.SelectedCard = &card
		s.state.IsShowingNewCard = true

	case AddCard:
		if err := a.Card.Validate(); err != nil {
			log.Warn("rejected invalid card", "error", err, "card_id", a.Card.ID)
			return fmt.Errorf("%w: %w", ErrInvalidCard, err)
		}
		if indexOf(s.state.Cards, a.Card.ID) >= 0 {
			log.Debug("ignored duplicate card", "card_id", a.Card.ID)
			break
		}
		s.state.Cards = append(s.state.Cards, a.Card.Clone())
		s.persist(ctx, log)

	case RemoveCard:
		s.state.Cards = withoutID(s.state.Cards, a.Card.ID)
		s.persist(ctx, log)

	case DismissError:
		s.state.Error = nil

	case generationCompleted:
		return s.completeGeneration(ctx, a.result, log)

	case generationFailed:
		s.state.IsGeneratingCard = false
		s.state.Error = newGenerationFailure(a.err)
		log.Error("card generation failed", "error", a.err, "stage", s.state.Error.Stage)

	default:
		return fmt.Errorf("unsupported action %T", action)
	}

	log.Debug("action applied")
	s.publish(ctx, action)
	return nil
}

// persist writes the whole collection. A failed write keeps the in-memory
// change and is reported through State.Error.
func (s *Store) persist(ctx context.Context, log *slog.Logger) {
	if err := s.repo.SaveCards(ctx, s.state.Cards); err != nil {
		log.Error("failed to persist card collection", "error", err, "card_count", len(s.state.Cards))
		s.state.Error = newPersistenceFailure(StageSaveCards, err)
	}
}

func (s *Store) publish(ctx context.Context, action Action) {
	if s.emitter.HandlerCount() == 0 {
		return
	}
	event, err := events.NewEvent(EventTypeStateChanged, Change{
		Action: action.Name(),
		State:  s.state,
	})
	if err != nil {
		s.logger.Error("failed to encode state change", "error", err, "action", action.Name())
		return
	}
	// Handler errors are logged by the emitter.
	_ = s.emitter.EmitEvent(ctx, event)
}
