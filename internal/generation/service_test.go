package generation

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/phrazzld/snapdex/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockService(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewMockService()

	analysis, err := svc.AnalyzeImage(ctx, Image{Data: []byte{0xff}})
	require.NoError(t, err)
	assert.Equal(t, MockSubject, analysis.Subject)
	assert.Equal(t, MockVisualTraits, analysis.VisualTraits)
	assert.Equal(t, MockType, analysis.Type)
	assert.Empty(t, analysis.Stats)

	data, err := svc.GenerateCardData(ctx, *analysis)
	require.NoError(t, err)
	assert.Equal(t, MockTitle, data.Title)
	assert.Equal(t, MockDescription, data.Description)
	assert.Empty(t, data.Stats)
	assert.Equal(t, MockArtPrompt, data.ArtPrompt)

	url, err := svc.GenerateImage(ctx, data.ArtPrompt)
	require.NoError(t, err)
	assert.Equal(t, MockImageURL, url)
}

func TestMockService_CancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := NewMockService()

	_, err := svc.AnalyzeImage(ctx, Image{})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = svc.GenerateCardData(ctx, Analysis{})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = svc.GenerateImage(ctx, "prompt")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlaceholderService_Deterministic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	run := func(seed int64) (*Analysis, *CardData) {
		svc := NewPlaceholderService(rand.New(rand.NewSource(seed)), 0)
		analysis, err := svc.AnalyzeImage(ctx, Image{})
		require.NoError(t, err)
		data, err := svc.GenerateCardData(ctx, *analysis)
		require.NoError(t, err)
		return analysis, data
	}

	a1, d1 := run(42)
	a2, d2 := run(42)

	assert.Equal(t, a1.Type, a2.Type)
	require.Len(t, d1.Stats, 4)
	require.Len(t, d2.Stats, 4)
	for i := range d1.Stats {
		assert.Equal(t, d1.Stats[i].Category, d2.Stats[i].Category)
		assert.Equal(t, d1.Stats[i].Value, d2.Stats[i].Value)
	}
}

func TestPlaceholderService_Ranges(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewPlaceholderService(rand.New(rand.NewSource(7)), 0)

	ranges := map[string][2]int{
		"Power":   {50, 100},
		"Defense": {30, 80},
		"Special": {40, 90},
	}

	for i := 0; i < 200; i++ {
		analysis, err := svc.AnalyzeImage(ctx, Image{})
		require.NoError(t, err)
		_, err = domain.ParseCardType(analysis.Type)
		require.NoError(t, err)

		data, err := svc.GenerateCardData(ctx, *analysis)
		require.NoError(t, err)
		assert.Empty(t, data.Title, "titled once the display ID is known")
		assert.Equal(t, PlaceholderDescription, data.Description)

		for _, stat := range data.Stats {
			require.NoError(t, stat.Validate())
			if bounds, ok := ranges[stat.Category]; ok {
				n, isInt := stat.Value.Int()
				require.True(t, isInt, "%s should be an integer", stat.Category)
				assert.GreaterOrEqual(t, n, bounds[0])
				assert.LessOrEqual(t, n, bounds[1])
				continue
			}
			require.Equal(t, "Type", stat.Category)
			name, isText := stat.Value.Text()
			require.True(t, isText)
			_, err := domain.ParseCardType(name)
			assert.NoError(t, err)
		}
	}

	url, err := svc.GenerateImage(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestPlaceholderService_DelayHonoursContext(t *testing.T) {
	t.Parallel()
	svc := NewPlaceholderService(rand.New(rand.NewSource(1)), time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := svc.AnalyzeImage(ctx, Image{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStageError(t *testing.T) {
	t.Parallel()
	cause := errors.New("backend unavailable")
	err := NewStageError(StageGenerateImage, cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "generate_image stage failed: backend unavailable", err.Error())

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageGenerateImage, stageErr.Stage)
}
