package openai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/toolshelf/ai"
	"github.com/poiesic/toolshelf/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel is an llms.Model that records the request and replies from a function.
type fakeModel struct {
	calls    int
	messages []llms.MessageContent
	options  llms.CallOptions
	reply    func(ctx context.Context) (*llms.ContentResponse, error)
}

func (m *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.calls++
	m.messages = messages
	for _, opt := range options {
		opt(&m.options)
	}
	return m.reply(ctx)
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func replyWith(content string) func(context.Context) (*llms.ContentResponse, error) {
	return func(context.Context) (*llms.ContentResponse, error) {
		return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: content}}}, nil
	}
}

func TestExtractIntent_Success(t *testing.T) {
	model := &fakeModel{reply: replyWith(`{"keywords":["画像"," "],"category":"image","minRating":4,"dateRange":null}`)}
	extractor := newIntentExtractorWithModel(model, time.Second)

	intent, err := extractor.ExtractIntent(context.Background(), "  画像を作れるツール ")
	require.NoError(t, err)

	assert.Equal(t, &core.SearchIntent{
		Keywords:  []string{"画像"},
		Category:  core.CategoryImage,
		MinRating: 4,
	}, intent)

	assert.Equal(t, 1, model.calls)
	require.Len(t, model.messages, 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, model.messages[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[1].Role)
	assert.Equal(t, llms.TextPart("  画像を作れるツール "), model.messages[1].Parts[0], "query is sent as given")
	assert.True(t, model.options.JSONMode)
	assert.Zero(t, model.options.Temperature)
}

func TestExtractIntent_Failures(t *testing.T) {
	tests := []struct {
		name    string
		reply   func(context.Context) (*llms.ContentResponse, error)
		wantErr error
	}{
		{
			name: "transport error",
			reply: func(context.Context) (*llms.ContentResponse, error) {
				return nil, errors.New("API returned unexpected status code: 503")
			},
		},
		{
			name: "no choices",
			reply: func(context.Context) (*llms.ContentResponse, error) {
				return &llms.ContentResponse{}, nil
			},
			wantErr: ai.ErrEmptyResponse,
		},
		{
			name:  "unparsable body",
			reply: replyWith("I could not understand the request."),
		},
		{
			name:    "schema violation",
			reply:   replyWith(`{"keywords":"chat"}`),
			wantErr: ai.ErrSchemaViolation,
		},
		{
			name:    "unknown category",
			reply:   replyWith(`{"keywords":[],"category":"music"}`),
			wantErr: ai.ErrSchemaViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &fakeModel{reply: tt.reply}
			extractor := newIntentExtractorWithModel(model, time.Second)

			intent, err := extractor.ExtractIntent(context.Background(), "query")
			require.Error(t, err)
			assert.Nil(t, intent)
			assert.ErrorIs(t, err, ai.ErrExternalService)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, 1, model.calls, "must never retry")
		})
	}
}

func TestExtractIntent_Timeout(t *testing.T) {
	model := &fakeModel{reply: func(ctx context.Context) (*llms.ContentResponse, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	extractor := newIntentExtractorWithModel(model, 20*time.Millisecond)

	start := time.Now()
	_, err := extractor.ExtractIntent(context.Background(), "query")
	require.Error(t, err)
	assert.ErrorIs(t, err, ai.ErrExternalService)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestNewProvider(t *testing.T) {
	t.Run("plain extractor", func(t *testing.T) {
		provider, err := NewProvider(ai.NewConfig())
		require.NoError(t, err)
		defer provider.Close()

		_, ok := provider.IntentExtractor().(*IntentExtractor)
		assert.True(t, ok)
	})

	t.Run("cached extractor", func(t *testing.T) {
		provider, err := NewProvider(ai.NewConfig(ai.WithCacheSize(16)))
		require.NoError(t, err)
		defer provider.Close()

		_, ok := provider.IntentExtractor().(*ai.CachingExtractor)
		assert.True(t, ok)
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := NewProvider(ai.NewConfig(ai.WithClassifierModel("")))
		assert.Error(t, err)
	})
}

func TestBuildSystemPrompt(t *testing.T) {
	prompt := buildSystemPrompt()

	for _, name := range append(ai.CategoryNames(), ai.DateBucketNames()...) {
		assert.Contains(t, prompt, `"`+name+`"`)
	}
	assert.Contains(t, prompt, `"keywords"`)
	assert.Contains(t, prompt, `"minRating"`)
	assert.NotContains(t, prompt, "%!")
}
