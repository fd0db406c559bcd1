package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/toolshelf/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockIntentExtractor_Default(t *testing.T) {
	m := NewMockIntentExtractor()

	intent, err := m.ExtractIntent(context.Background(), "  image   editor ")
	require.NoError(t, err)
	assert.Equal(t, &core.SearchIntent{Keywords: []string{"image", "editor"}}, intent)

	intent, err = m.ExtractIntent(context.Background(), "   ")
	require.NoError(t, err)
	assert.NotNil(t, intent.Keywords)
	assert.Empty(t, intent.Keywords)

	assert.Equal(t, 2, m.CallCount())
	assert.Equal(t, []string{"  image   editor ", "   "}, m.Queries())
}

func TestMockIntentExtractor_CustomAndReset(t *testing.T) {
	boom := errors.New("boom")
	m := NewFailingIntentExtractor(boom)

	_, err := m.ExtractIntent(context.Background(), "q")
	assert.ErrorIs(t, err, boom)

	m.Reset()
	assert.Zero(t, m.CallCount())
	assert.Empty(t, m.Queries())

	intent, err := m.ExtractIntent(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, []string{"q"}, intent.Keywords)
}

func TestMockProvider(t *testing.T) {
	p := NewMockProvider().(*MockProvider)
	assert.Same(t, p.GetMockExtractor(), p.IntentExtractor())
	require.NoError(t, p.Close())
	assert.True(t, p.Closed())
}
