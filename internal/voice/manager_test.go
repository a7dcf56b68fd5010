package voice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintakip/backend/internal/store"
)

func newTestManager(extractor *fakeExtractor) *Manager {
	recorder := store.NewMemoryStore()
	return NewManager(func() *Pipeline {
		return NewPipeline(PipelineConfig{
			Capture:   &fakeCapture{},
			Extractor: extractor,
			Recorder:  recorder,
		})
	})
}

func TestManager_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(&fakeExtractor{draft: validExtraction()})

	id, err := m.Start(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, m.Active())

	require.NoError(t, m.AddSegment(id, "marketten 500 lira harcadım", true))

	restart, err := m.RecognizerEnded(id)
	require.NoError(t, err)
	assert.True(t, restart)

	tx, err := m.Stop(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.Zero(t, m.Active(), "session removed on stop")

	// Stopping the same session twice reports an unknown session.
	_, err = m.Stop(ctx, id)
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestManager_UnknownSession(t *testing.T) {
	m := newTestManager(&fakeExtractor{})

	assert.ErrorIs(t, m.AddSegment("nope", "text", true), ErrUnknownSession)
	_, err := m.RecognizerEnded("nope")
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestManager_StartDeniedRegistersNothing(t *testing.T) {
	denied := errors.New("permission denied")
	m := NewManager(func() *Pipeline {
		return NewPipeline(PipelineConfig{
			Capture:   &fakeCapture{denied: denied},
			Extractor: &fakeExtractor{},
			Recorder:  store.NewMemoryStore(),
		})
	})

	_, err := m.Start(context.Background())
	assert.ErrorIs(t, err, denied)
	assert.Zero(t, m.Active())
}

func TestManager_IndependentSessions(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(&fakeExtractor{})

	first, err := m.Start(ctx)
	require.NoError(t, err)
	second, err := m.Start(ctx)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
	assert.Equal(t, 2, m.Active())

	require.NoError(t, m.AddSegment(first, "sadece ilk oturum", true))

	_, err = m.Stop(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Active())
}
