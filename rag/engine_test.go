package rag

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/memoir/ai"
	"github.com/poiesic/memoir/ai/mock"
	"github.com/poiesic/memoir/core"
	"github.com/poiesic/memoir/storage"
	badgerstore "github.com/poiesic/memoir/storage/badger"
)

func setupEngine(t *testing.T) (*Engine, *mock.MockEmbedder, *mock.MockCompleter, storage.ChunkRepository) {
	t.Helper()

	repo, backend, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	embedder := mock.NewMockEmbedder()
	completer := mock.NewMockCompleter()

	engine, err := NewEngine(repo, embedder, completer)
	require.NoError(t, err)
	return engine, embedder, completer, repo
}

func seedChunks(t *testing.T, repo storage.ChunkRepository, embedder *mock.MockEmbedder, texts ...string) {
	t.Helper()
	ctx := context.Background()
	for _, text := range texts {
		vector, err := embedder.EmbedText(ctx, text)
		require.NoError(t, err)
		require.NoError(t, repo.AddChunks(ctx, &core.Chunk{
			Text:   text,
			Source: "whatsapp_chat",
			Vector: vector,
		}))
	}
}

func TestNewEngineValidation(t *testing.T) {
	repo, backend, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()

	embedder := mock.NewMockEmbedder()
	completer := mock.NewMockCompleter()

	_, err = NewEngine(nil, embedder, completer)
	assert.ErrorIs(t, err, ErrChunkRepositoryRequired)

	_, err = NewEngine(repo, nil, completer)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewEngine(repo, embedder, nil)
	assert.ErrorIs(t, err, ErrCompleterRequired)
}

func TestRetrieveEmptyHistorySkipsReformulation(t *testing.T) {
	engine, embedder, completer, repo := setupEngine(t)
	seedChunks(t, repo, embedder, "Fareed: I love you")

	results, err := engine.Retrieve(context.Background(), nil, "when did he say I love you?")
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, 0, completer.CallCount())
}

func TestRetrieveWithHistoryReformulatesOnce(t *testing.T) {
	engine, embedder, completer, repo := setupEngine(t)
	seedChunks(t, repo, embedder, "Ambreen: we reached Ooty at noon")

	history := []core.Turn{
		{Role: core.RoleHuman, Content: "when did we go to Ooty?"},
		{Role: core.RoleAI, Content: "You went in May 2023."},
	}
	_, err := engine.Retrieve(context.Background(), history, "and then?")
	require.NoError(t, err)

	require.Equal(t, 1, completer.CallCount())
	prompt := completer.LastPrompt()
	assert.Equal(t, contextualizeSystemPrompt, prompt.System)
	assert.Equal(t, history, prompt.History)
	assert.Equal(t, "and then?", prompt.Input)
}

// The reformulated text, not the original question, is what gets
// embedded and searched.
func TestRetrieveSearchesReformulatedText(t *testing.T) {
	engine, embedder, completer, repo := setupEngine(t)
	seedChunks(t, repo, embedder, "Fareed: we took the toy train next morning")

	completer.CompleteFunc = func(ctx context.Context, prompt ai.Prompt) (string, error) {
		return "what did the couple do after reaching Ooty?", nil
	}

	var embedded []string
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		embedded = append(embedded, text)
		return make([]float32, 4), nil
	}

	history := []core.Turn{{Role: core.RoleHuman, Content: "when did we reach Ooty?"}}
	_, err := engine.Retrieve(context.Background(), history, "and then?")
	require.NoError(t, err)

	require.Len(t, embedded, 1)
	assert.Equal(t, "what did the couple do after reaching Ooty?", embedded[0])
	assert.NotContains(t, embedded, "and then?")
}

func TestRetrieveBlankReformulationFallsBack(t *testing.T) {
	engine, embedder, completer, repo := setupEngine(t)
	seedChunks(t, repo, embedder, "Ambreen: good morning da")

	completer.CompleteFunc = func(ctx context.Context, prompt ai.Prompt) (string, error) {
		return "   ", nil
	}

	var embedded []string
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		embedded = append(embedded, text)
		return make([]float32, 4), nil
	}

	history := []core.Turn{{Role: core.RoleAI, Content: "hello"}}
	_, err := engine.Retrieve(context.Background(), history, "good morning messages?")
	require.NoError(t, err)

	require.Len(t, embedded, 1)
	assert.Equal(t, "good morning messages?", embedded[0])
}

func TestRetrieveLimitsToTopK(t *testing.T) {
	engine, embedder, _, repo := setupEngine(t)
	seedChunks(t, repo, embedder,
		"one", "two", "three", "four", "five", "six", "seven")

	results, err := engine.Retrieve(context.Background(), nil, "anything")
	require.NoError(t, err)
	assert.Len(t, results, DefaultTopK)
}

func TestRetrieveEmptyQuestion(t *testing.T) {
	engine, _, _, _ := setupEngine(t)

	_, err := engine.Retrieve(context.Background(), nil, "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestAnswerAssemblesContext(t *testing.T) {
	engine, _, completer, _ := setupEngine(t)

	results := []*core.SearchResult{
		{Chunk: &core.Chunk{Text: "Fareed: I miss you"}},
		{Chunk: &core.Chunk{Text: "Ambreen: naanum than"}},
	}
	history := []core.Turn{{Role: core.RoleAI, Content: "hi"}}

	answer, err := engine.Answer(context.Background(), history, "who missed whom?", results)
	require.NoError(t, err)
	assert.NotEmpty(t, answer)

	prompt := completer.LastPrompt()
	assert.True(t, strings.HasPrefix(prompt.System, answerSystemPrompt))
	assert.Contains(t, prompt.System, "Fareed: I miss you\n\nAmbreen: naanum than")
	assert.Equal(t, history, prompt.History)
	assert.Equal(t, "who missed whom?", prompt.Input)
}

func TestAskRunsFullTurn(t *testing.T) {
	engine, embedder, completer, repo := setupEngine(t)
	seedChunks(t, repo, embedder, "Fareed: happy birthday kanna")

	answer, err := engine.Ask(context.Background(), nil, "what did he say on my birthday?")
	require.NoError(t, err)
	assert.NotEmpty(t, answer)

	// Empty history: exactly one call, the answer synthesis.
	assert.Equal(t, 1, completer.CallCount())
}

func TestAskWithHistoryMakesTwoCalls(t *testing.T) {
	engine, embedder, completer, repo := setupEngine(t)
	seedChunks(t, repo, embedder, "Ambreen: vera enna da")

	history := []core.Turn{{Role: core.RoleHuman, Content: "what did she say?"}}
	_, err := engine.Ask(context.Background(), history, "and after that?")
	require.NoError(t, err)

	// One reformulation plus one synthesis.
	assert.Equal(t, 2, completer.CallCount())
}

func TestAskSurfacesCompleterFailure(t *testing.T) {
	engine, embedder, completer, repo := setupEngine(t)
	seedChunks(t, repo, embedder, "some chunk")

	completer.CompleteFunc = func(ctx context.Context, prompt ai.Prompt) (string, error) {
		return "", assert.AnError
	}

	_, err := engine.Ask(context.Background(), nil, "anything")
	assert.ErrorIs(t, err, assert.AnError)
}
