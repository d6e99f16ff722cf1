package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/phrazzld/snapdex/internal/config"
	"github.com/phrazzld/snapdex/internal/domain"
	"github.com/phrazzld/snapdex/internal/generation"
	"github.com/phrazzld/snapdex/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// setEnv configures an in-process run with the mock generator.
func setEnv(t *testing.T, driver string, seedSamples bool) {
	t.Helper()
	t.Setenv("SNAPDEX_LOG_LEVEL", "error")
	t.Setenv("SNAPDEX_LOG_FORMAT", "text")
	t.Setenv("SNAPDEX_STORAGE_DRIVER", driver)
	t.Setenv("SNAPDEX_STORAGE_PATH", filepath.Join(t.TempDir(), "snapdex.db"))
	t.Setenv("SNAPDEX_STORAGE_URL", "")
	t.Setenv("SNAPDEX_STORAGE_CACHE_SIZE", "16")
	t.Setenv("SNAPDEX_LLM_PROVIDER", "mock")
	if seedSamples {
		t.Setenv("SNAPDEX_APP_SEED_SAMPLES", "true")
	} else {
		t.Setenv("SNAPDEX_APP_SEED_SAMPLES", "false")
	}
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), args, &out)
	return out.String(), err
}

func writeImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "photo.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o600))
	return path
}

func TestRun_VersionAndHelp(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "snapdex dev\n", out)

	out, err = runCommand(t, "help")
	require.NoError(t, err)
	assert.Contains(t, out, "capture [-accept] <image>")

	out, err = runCommand(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
}

func TestRun_UnknownCommand(t *testing.T) {
	_, err := runCommand(t, "explode")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "explode"`)
}

func TestRun_ListSampleCards(t *testing.T) {
	setEnv(t, "memory", true)

	out, err := runCommand(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "#042")
	assert.Contains(t, out, "Majestic Oak")
	assert.Contains(t, out, "Ruby Crystal")
	assert.Contains(t, out, "Aqua Serpent")
}

func TestRun_ListEmpty(t *testing.T) {
	setEnv(t, "memory", false)

	out, err := runCommand(t, "list")
	require.NoError(t, err)
	assert.Equal(t, "The collection is empty.\n", out)
}

func TestRun_ShowByDisplayNumber(t *testing.T) {
	setEnv(t, "memory", true)

	out, err := runCommand(t, "show", "#7")
	require.NoError(t, err)
	assert.Contains(t, out, "#007 Ruby Crystal (Fire)")

	_, err = runCommand(t, "show", "#999")
	require.ErrorIs(t, err, errCardNotFound)
}

func TestRun_SearchByType(t *testing.T) {
	setEnv(t, "memory", true)

	out, err := runCommand(t, "search", "-type", "water")
	require.NoError(t, err)
	assert.Contains(t, out, "Aqua Serpent")
	assert.NotContains(t, out, "Ruby Crystal")

	out, err = runCommand(t, "search", "zzzz")
	require.NoError(t, err)
	assert.Equal(t, "No matching cards.\n", out)

	_, err = runCommand(t, "search", "-type", "plasma")
	require.ErrorIs(t, err, domain.ErrInvalidCardType)
}

func TestRun_CaptureWithoutAccept(t *testing.T) {
	setEnv(t, "memory", false)

	out, err := runCommand(t, "capture", writeImage(t))
	require.NoError(t, err)
	assert.Contains(t, out, "#001 "+generation.MockTitle)
	assert.Contains(t, out, "Card discarded.")
}

func TestRun_CaptureMissingImage(t *testing.T) {
	setEnv(t, "memory", false)

	_, err := runCommand(t, "capture", filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read image")
}

// TestRun_SQLiteCollectionSurvivesRuns captures, lists and removes a card
// across separate invocations sharing one database file.
func TestRun_SQLiteCollectionSurvivesRuns(t *testing.T) {
	setEnv(t, "sqlite", false)
	image := writeImage(t)

	out, err := runCommand(t, "capture", "-accept", image)
	require.NoError(t, err)
	assert.Contains(t, out, "Added #001 to the collection.")

	out, err = runCommand(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "#001")
	assert.Contains(t, out, generation.MockTitle)

	out, err = runCommand(t, "capture", "-accept", image)
	require.NoError(t, err)
	assert.Contains(t, out, "Added #002 to the collection.")

	out, err = runCommand(t, "remove", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed #001")

	out, err = runCommand(t, "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "#001")
	assert.Contains(t, out, "#002")
}

func TestFindCard(t *testing.T) {
	cards := domain.SampleCards()

	byID, err := findCard(cards, cards[1].ID)
	require.NoError(t, err)
	assert.Equal(t, cards[1].ID, byID.ID)

	byNumber, err := findCard(cards, "42")
	require.NoError(t, err)
	assert.Equal(t, "Majestic Oak", byNumber.Title)

	_, err = findCard(cards, "nope")
	assert.ErrorIs(t, err, errCardNotFound)
}

func TestNewApplication_UsesContextLogger(t *testing.T) {
	lc := logger.NewLogCaptureContext(t)
	cfg := &config.Config{
		Log:     config.LogConfig{Level: "debug", Format: "json"},
		Storage: config.StorageConfig{Driver: config.StorageMemory, CacheSize: 8},
		LLM:     config.LLMConfig{Provider: config.ProviderMock},
		App:     config.AppConfig{SeedSamples: true},
	}

	app, err := newApplication(lc.Context, cfg)
	require.NoError(t, err)
	defer app.cleanup()

	assert.Len(t, app.store.Snapshot().Cards, 3)
	logger.AssertLogContains(t, lc.Buffer, "state store ready")
	logger.AssertLogField(t, lc.Buffer, "component", "state_store")
}

func TestNewApplication_UnknownBackends(t *testing.T) {
	ctx := logger.WithLogger(context.Background(), logger.Discard())

	_, err := newApplication(ctx, &config.Config{
		Storage: config.StorageConfig{Driver: "floppy"},
		LLM:     config.LLMConfig{Provider: config.ProviderMock},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown storage driver "floppy"`)

	_, err = newApplication(ctx, &config.Config{
		Storage: config.StorageConfig{Driver: config.StorageMemory},
		LLM:     config.LLMConfig{Provider: "oracle"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown llm provider "oracle"`)
}
