package state

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/snapdex/internal/domain"
	"github.com/phrazzld/snapdex/internal/generation"
	"github.com/phrazzld/snapdex/internal/task"
)

// generationResult is the output of one pipeline run.
type generationResult struct {
	analysis generation.Analysis
	data     generation.CardData
	imageURL string
}

func (s *Store) newGenerationTask(image generation.Image) task.Task {
	return task.NewFuncTask(task.TaskTypeCardGeneration, func(ctx context.Context) error {
		result, err := s.runPipeline(ctx, image)
		if err != nil {
			s.applyAsync(ctx, generationFailed{err: err})
			return err
		}
		s.applyAsync(ctx, generationCompleted{result: *result})
		return nil
	})
}

// runPipeline calls the three generation stages in order without holding the lock.
// A panicking stage is reported as that stage's failure.
func (s *Store) runPipeline(ctx context.Context, image generation.Image) (result *generationResult, err error) {
	stage := generation.StageAnalyzeImage
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("generation stage panicked", "stage", stage, "panic", r)
			result = nil
			err = generation.NewStageError(stage, fmt.Errorf("%w: stage panicked: %v", generation.ErrGenerationFailed, r))
		}
	}()

	analysis, err := s.gen.AnalyzeImage(ctx, image)
	if err == nil && analysis == nil {
		err = fmt.Errorf("%w: empty analysis", generation.ErrInvalidResponse)
	}
	if err != nil {
		return nil, generation.NewStageError(stage, err)
	}

	stage = generation.StageGenerateCardData
	data, err := s.gen.GenerateCardData(ctx, *analysis)
	if err == nil && data == nil {
		err = fmt.Errorf("%w: empty card data", generation.ErrInvalidResponse)
	}
	if err != nil {
		return nil, generation.NewStageError(stage, err)
	}

	stage = generation.StageGenerateImage
	imageURL, err := s.gen.GenerateImage(ctx, data.ArtPrompt)
	if err != nil {
		return nil, generation.NewStageError(stage, err)
	}

	return &generationResult{analysis: *analysis, data: *data, imageURL: imageURL}, nil
}

// applyAsync applies an internal action from the worker goroutine.
func (s *Store) applyAsync(ctx context.Context, action Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.logger.Debug("dropped generation result after close", "action", action.Name())
		return
	}
	if err := s.apply(ctx, action); err != nil {
		s.logger.Error("failed to apply generation result", "error", err, "action", action.Name())
	}
}

// completeGeneration issues a display ID, assembles the card and shows it.
// Callers hold s.mu.
func (s *Store) completeGeneration(ctx context.Context, result generationResult, log *slog.Logger) error {
	displayID, err := s.repo.NextCardID(ctx)
	if err != nil {
		log.Error("failed to issue display id", "error", err)
		s.state.IsGeneratingCard = false
		s.state.Error = newPersistenceFailure(StageNextCardID, err)
		s.publish(ctx, generationFailed{err: err})
		return nil
	}

	card := s.assembleCard(displayID, result)
	if err := card.Validate(); err != nil {
		log.Error("generated card is invalid", "error", err)
		s.state.IsGeneratingCard = false
		s.state.Error = &Failure{
			Kind:    FailureGeneration,
			Stage:   StageAssembleCard,
			Message: err.Error(),
			Err:     err,
		}
		s.publish(ctx, generationFailed{err: err})
		return nil
	}

	s.state.IsGeneratingCard = false
	log.Info("card generated", "card_id", card.ID, "display_id", card.DisplayID, "type", card.Type)
	s.publish(ctx, generationCompleted{result: result})

	return s.apply(ctx, ShowNewCard{Card: card})
}

func (s *Store) assembleCard(displayID int, result generationResult) domain.Card {
	cardType, err := domain.ParseCardType(result.analysis.Type)
	if err != nil {
		s.logger.Warn("unknown card type from analysis, using normal", "type", result.analysis.Type)
		cardType = domain.CardTypeNormal
	}

	stats := make([]domain.Stat, 0, len(result.data.Stats))
	for _, stat := range result.data.Stats {
		if stat.ID == uuid.Nil {
			stat.ID = uuid.New()
		}
		stats = append(stats, stat)
	}
	if len(stats) == 0 {
		stats = statsFromAnalysis(result.analysis.Stats)
	}

	title := strings.TrimSpace(result.data.Title)
	if title == "" {
		title = fmt.Sprintf("%s #%d", generation.PlaceholderTitle, displayID)
	}

	return domain.Card{
		ID:          s.newID(),
		DisplayID:   displayID,
		Title:       title,
		Description: result.data.Description,
		ImageURL:    result.imageURL,
		Stats:       stats,
		Type:        cardType,
		CreatedAt:   s.now().UTC(),
	}
}

// statsFromAnalysis turns the analysis stat map into stats ordered by name.
// Whole numbers become integer stats.
func statsFromAnalysis(raw map[string]string) []domain.Stat {
	names := make([]string, 0, len(raw))
	for name := range raw {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	stats := make([]domain.Stat, 0, len(names))
	for _, name := range names {
		value := domain.StringValue(raw[name])
		if n, err := strconv.Atoi(raw[name]); err == nil {
			value = domain.IntValue(n)
		}
		stats = append(stats, domain.NewStat(name, value))
	}
	return stats
}
