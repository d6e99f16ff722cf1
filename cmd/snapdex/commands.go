package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/phrazzld/snapdex/internal/domain"
	"github.com/phrazzld/snapdex/internal/generation"
	"github.com/phrazzld/snapdex/internal/search"
	"github.com/phrazzld/snapdex/internal/state"
)

// command runs one subcommand against a wired application.
type command func(ctx context.Context, app *application, args []string, out io.Writer) error

var errCardNotFound = errors.New("card not found")

func runList(_ context.Context, app *application, args []string, out io.Writer) error {
	if len(args) != 0 {
		return errors.New("usage: snapdex list")
	}
	cards := app.store.Snapshot().Cards
	if len(cards) == 0 {
		fmt.Fprintln(out, "The collection is empty.")
		return nil
	}
	printCardTable(out, cards)
	return nil
}

func runShow(ctx context.Context, app *application, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: snapdex show <id|#number>")
	}
	card, err := findCard(app.store.Snapshot().Cards, args[0])
	if err != nil {
		return err
	}
	if err := app.store.Dispatch(ctx, state.SelectCard{Card: card}); err != nil {
		return err
	}
	printCard(out, card)
	return app.store.Dispatch(ctx, state.DeselectCard{})
}

func runRemove(ctx context.Context, app *application, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: snapdex remove <id|#number>")
	}
	card, err := findCard(app.store.Snapshot().Cards, args[0])
	if err != nil {
		return err
	}
	if err := app.store.Dispatch(ctx, state.RemoveCard{Card: card}); err != nil {
		return err
	}
	fmt.Fprintf(out, "Removed %s %s\n", card.FormattedID(), card.Title)
	return nil
}

func runSearch(_ context.Context, app *application, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(out)
	typeName := fs.String("type", "", "only match cards of this type")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := search.Filter{Query: strings.Join(fs.Args(), " ")}
	if *typeName != "" {
		cardType, err := domain.ParseCardType(*typeName)
		if err != nil {
			return err
		}
		filter.Type = cardType
	}

	results := search.Search(app.store.Snapshot().Cards, filter)
	if len(results) == 0 {
		fmt.Fprintln(out, "No matching cards.")
		return nil
	}
	cards := make([]domain.Card, len(results))
	for i, result := range results {
		cards[i] = result.Card
	}
	printCardTable(out, cards)
	return nil
}

// runCapture drives the capture flow: open the camera, submit the photo,
// wait for the generated card and optionally add it to the collection.
func runCapture(ctx context.Context, app *application, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("capture", flag.ContinueOnError)
	fs.SetOutput(out)
	accept := fs.Bool("accept", false, "add the generated card to the collection")
	timeout := fs.Duration("timeout", 2*time.Minute, "how long to wait for generation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: snapdex capture [-accept] [-timeout d] <image>")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}
	image := generation.Image{Data: data, MIMEType: http.DetectContentType(data)}

	// Handlers run under the store lock, so they only hand the change over.
	finished := make(chan state.Change, 1)
	unsubscribe := app.store.Subscribe(func(change state.Change) {
		switch change.Action {
		case state.ShowNewCard{}.Name(), state.ActionGenerationFailed:
			select {
			case finished <- change:
			default:
			}
		}
	})
	defer unsubscribe()

	if err := app.store.Dispatch(ctx, state.ShowCameraView{}); err != nil {
		return err
	}
	if err := app.store.Dispatch(ctx, state.GenerateCard{Image: image}); err != nil {
		return err
	}
	fmt.Fprintln(out, "Generating card...")

	waitCtx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	var change state.Change
	select {
	case change = <-finished:
	case <-waitCtx.Done():
		return fmt.Errorf("gave up waiting for card generation: %w", waitCtx.Err())
	}

	if change.Action == state.ActionGenerationFailed {
		if failure := change.State.Error; failure != nil {
			return fmt.Errorf("card generation failed: %s", failure.Message)
		}
		return errors.New("card generation failed")
	}
	if change.State.SelectedCard == nil {
		return errors.New("generated card missing from state")
	}
	card := *change.State.SelectedCard
	printCard(out, card)

	if err := app.store.Dispatch(ctx, state.DismissCameraView{}); err != nil {
		return err
	}
	if !*accept {
		fmt.Fprintln(out, "Card discarded. Run with -accept to keep it.")
		return nil
	}
	if err := app.store.Dispatch(ctx, state.AddCard{Card: card}); err != nil {
		return err
	}
	fmt.Fprintf(out, "Added %s to the collection.\n", card.FormattedID())
	return nil
}

// findCard resolves ref as a card ID, or as a display number with or
// without the leading '#'.
func findCard(cards []domain.Card, ref string) (domain.Card, error) {
	for _, card := range cards {
		if card.ID == ref {
			return card, nil
		}
	}
	if n, err := strconv.Atoi(strings.TrimPrefix(ref, "#")); err == nil {
		for _, card := range cards {
			if card.DisplayID == n {
				return card, nil
			}
		}
	}
	return domain.Card{}, fmt.Errorf("%w: %s", errCardNotFound, ref)
}

func printCardTable(out io.Writer, cards []domain.Card) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NUMBER\tTITLE\tTYPE\tID")
	for _, card := range cards {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", card.FormattedID(), card.Title, card.Type.DisplayName(), card.ID)
	}
	_ = w.Flush()
}

func printCard(out io.Writer, card domain.Card) {
	fmt.Fprintf(out, "%s %s (%s)\n", card.FormattedID(), card.Title, card.Type.DisplayName())
	if card.Description != "" {
		fmt.Fprintf(out, "  %s\n", card.Description)
	}
	for _, stat := range card.Stats {
		fmt.Fprintf(out, "  %-10s %s\n", stat.Category, stat.Value.DisplayString())
	}
	if card.HasImage() {
		fmt.Fprintf(out, "  art: %s\n", card.ImageURL)
	}
	fmt.Fprintf(out, "  id: %s\n", card.ID)
}

// reportFailure prints the failure left in the state by the last command.
func reportFailure(out io.Writer, failure *state.Failure) {
	if failure == nil {
		return
	}
	if failure.Stage != "" {
		fmt.Fprintf(out, "warning: %s failure during %s: %s\n", failure.Kind, failure.Stage, failure.Message)
		return
	}
	fmt.Fprintf(out, "warning: %s failure: %s\n", failure.Kind, failure.Message)
}
