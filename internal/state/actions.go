package state

import (
	"github.com/phrazzld/snapdex/internal/domain"
	"github.com/phrazzld/snapdex/internal/generation"
)

// Action is a request to change the application state. The set of actions
// is closed; only the types in this package implement it.
type Action interface {
	// Name identifies the action in logs and change notifications.
	Name() string
	action()
}

// Names of the actions the store applies when a generation run finishes.
// They appear in Change.Action.
const (
	ActionGenerationCompleted = "GenerationCompleted"
	ActionGenerationFailed    = "GenerationFailed"
)

// SelectCard makes Card the selected card.
type SelectCard struct {
	Card domain.Card
}

// DeselectCard clears the selection.
type DeselectCard struct{}

// ShowCameraView presents the camera.
type ShowCameraView struct{}

// DismissCameraView hides the camera.
type DismissCameraView struct{}

// GenerateCard starts turning Image into a new card in the background.
type GenerateCard struct {
	Image generation.Image
}

// ShowNewCard selects Card and shows it as a newly generated card.
type ShowNewCard struct {
	Card domain.Card
}

// AddCard appends Card to the collection and persists it. A card whose ID is
// already present is ignored.
type AddCard struct {
	Card domain.Card
}

// RemoveCard removes every card with Card's ID and persists the collection.
type RemoveCard struct {
	Card domain.Card
}

// DismissError clears the last failure.
type DismissError struct{}

// generationCompleted carries a finished pipeline run back into the store.
type generationCompleted struct {
	result generationResult
}

// generationFailed carries a failed pipeline run back into the store.
type generationFailed struct {
	err error
}

func (SelectCard) Name() string          { return "SelectCard" }
func (DeselectCard) Name() string        { return "DeselectCard" }
func (ShowCameraView) Name() string      { return "ShowCameraView" }
func (DismissCameraView) Name() string   { return "DismissCameraView" }
func (GenerateCard) Name() string        { return "GenerateCard" }
func (ShowNewCard) Name() string         { return "ShowNewCard" }
func (AddCard) Name() string             { return "AddCard" }
func (RemoveCard) Name() string          { return "RemoveCard" }
func (DismissError) Name() string        { return "DismissError" }
func (generationCompleted) Name() string { return ActionGenerationCompleted }
func (generationFailed) Name() string    { return ActionGenerationFailed }

func (SelectCard) action()          {}
func (DeselectCard) action()        {}
func (ShowCameraView) action()      {}
func (DismissCameraView) action()   {}
func (GenerateCard) action()        {}
func (ShowNewCard) action()         {}
func (AddCard) action()             {}
func (RemoveCard) action()          {}
func (DismissError) action()        {}
func (generationCompleted) action() {}
func (generationFailed) action()    {}
