package state

import (
	"errors"

	"github.com/phrazzld/snapdex/internal/domain"
	"github.com/phrazzld/snapdex/internal/generation"
	"github.com/phrazzld/snapdex/internal/redact"
)

// State is a snapshot of the application state.
type State struct {
	Cards             []domain.Card `json:"cards"`
	SelectedCard      *domain.Card  `json:"selected_card,omitempty"`
	IsCameraPresented bool          `json:"is_camera_presented"`
	IsGeneratingCard  bool          `json:"is_generating_card"`
	IsShowingNewCard  bool          `json:"is_showing_new_card"`
	Error             *Failure      `json:"error,omitempty"`
}

// Failure kinds.
const (
	FailureGeneration  = "generation"
	FailurePersistence = "persistence"
)

// Persistence stages reported in Failure.Stage.
const (
	StageLoadCards  = "load_cards"
	StageSaveCards  = "save_cards"
	StageNextCardID = "next_card_id"
	// StageAssembleCard is reported when the pipeline output does not form a valid card.
	StageAssembleCard = "assemble_card"
)

// Failure is the last error shown to the user.
type Failure struct {
	Kind    string `json:"kind"`
	Stage   string `json:"stage,omitempty"`
	Message string `json:"message"`
	// Err is the underlying error. It is not carried in change notifications.
	Err error `json:"-"`
}

func newPersistenceFailure(stage string, err error) *Failure {
	return &Failure{
		Kind:    FailurePersistence,
		Stage:   stage,
		Message: redact.Error(err),
		Err:     err,
	}
}

func newGenerationFailure(err error) *Failure {
	stage := ""
	var stageErr *generation.StageError
	if errors.As(err, &stageErr) {
		stage = string(stageErr.Stage)
	}
	return &Failure{
		Kind:    FailureGeneration,
		Stage:   stage,
		Message: redact.Error(err),
		Err:     err,
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Cards = make([]domain.Card, len(s.Cards))
	for i, card := range s.Cards {
		out.Cards[i] = card.Clone()
	}
	if s.SelectedCard != nil {
		selected := s.SelectedCard.Clone()
		out.SelectedCard = &selected
	}
	if s.Error != nil {
		failure := *s.Error
		out.Error = &failure
	}
	return out
}

// indexOf returns the position of the first card with id, or -1.
func indexOf(cards []domain.Card, id string) int {
	for i, card := range cards {
		if card.ID == id {
			return i
		}
	}
	return -1
}

// withoutID returns cards minus every entry with id.
func withoutID(cards []domain.Card, id string) []domain.Card {
	kept := make([]domain.Card, 0, len(cards))
	for _, card := range cards {
		if card.ID != id {
			kept = append(kept, card)
		}
	}
	return kept
}
