package qa

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgai/hr-assistant/server/ai"
)

type stubGenerator struct {
	reply string
	err   error
	calls int
	last  []ai.Message
}

func (s *stubGenerator) Chat(ctx context.Context, messages []ai.Message) (string, error) {
	s.calls++
	s.last = messages
	return s.reply, s.err
}

type stubDocuments struct{}

func (stubDocuments) Menu() string { return "document menu" }

func (stubDocuments) DocumentName(choice int) (string, bool) {
	names := map[int]string{5: "Relieving Letter"}
	name, ok := names[choice]
	return name, ok
}

func (stubDocuments) DetailsPrompt(documentName string) string {
	return "details for " + documentName
}

func (stubDocuments) DetailsAcknowledgment() string { return "details received" }

func (stubDocuments) SpecificGuidance(question string) (string, bool) {
	return "", false
}

func greetingCorpus() *Corpus {
	corpus := NewCorpus()
	corpus.Swap(NewSnapshot([]QAPair{
		{Question: "Hello", Answer: "Hello! How can I help you today?"},
		{Question: "How are you?", Answer: "I'm doing great, ready to help!"},
		{Question: "What can you do?", Answer: "I answer HR questions and handle document requests."},
		{Question: "What is the leave policy?", Answer: "20 days annual leave, submit requests in advance."},
	}, nil))
	return corpus
}

func TestAnswerEmptyQuestion(t *testing.T) {
	resolver := NewResolver(NewCorpus(), nil, nil, nil, nil, "Acme")
	assert.Equal(t, emptyQuestionReply, resolver.Answer(context.Background(), "   "))
}

func TestAnswerGreetingShortcut(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{1, 0}}
	generator := &stubGenerator{reply: "generated"}
	resolver := NewResolver(greetingCorpus(), NewRanker(embedder, DefaultWeights), nil, generator, nil, "Acme")

	got := resolver.Answer(context.Background(), "heyyy hello!")
	assert.Equal(t, "Hello! How can I help you today?", got)

	// The shortcut path must not touch the embedding or chat providers.
	assert.Zero(t, embedder.calls)
	assert.Zero(t, generator.calls)
}

func TestAnswerEmotionShortcut(t *testing.T) {
	resolver := NewResolver(greetingCorpus(), nil, nil, nil, nil, "Acme")
	got := resolver.Answer(context.Background(), "how are you doing")
	assert.Equal(t, "I'm doing great, ready to help!", got)
}

func TestAnswerCapabilityShortcut(t *testing.T) {
	resolver := NewResolver(greetingCorpus(), nil, nil, nil, nil, "Acme")
	got := resolver.Answer(context.Background(), "what can you do for me")
	assert.Equal(t, "I answer HR questions and handle document requests.", got)
}

func TestAnswerDocumentNumberSelection(t *testing.T) {
	resolver := NewResolver(NewCorpus(), nil, nil, nil, stubDocuments{}, "Acme")
	assert.Equal(t, "details for Relieving Letter", resolver.Answer(context.Background(), "5"))
}

func TestAnswerDocumentNumberOutOfRange(t *testing.T) {
	generator := &stubGenerator{reply: "generated"}
	resolver := NewResolver(NewCorpus(), nil, nil, generator, stubDocuments{}, "Acme")

	// 17 is not a menu choice; it flows through the QA pipeline instead.
	got := resolver.Answer(context.Background(), "17")
	assert.Equal(t, "generated", got)
}

func TestAnswerDocumentDetailsSubmission(t *testing.T) {
	resolver := NewResolver(NewCorpus(), nil, nil, nil, stubDocuments{}, "Acme")
	got := resolver.Answer(context.Background(), "Name: Asha Rao\nEmployee ID: EMP042\nPurpose: visa")
	assert.Equal(t, "details received", got)
}

func TestAnswerDocumentKeywordMenu(t *testing.T) {
	resolver := NewResolver(NewCorpus(), nil, nil, nil, stubDocuments{}, "Acme")
	assert.Equal(t, "document menu", resolver.Answer(context.Background(), "I need a document"))
}

func TestAnswerAcceptedLocalMatch(t *testing.T) {
	corpus := NewCorpus()
	corpus.Swap(NewSnapshot(
		[]QAPair{{Question: "What is the leave policy?", Answer: "20 days annual leave, submit requests in advance."}},
		[][]float32{{1, 0}},
	))

	embedder := &stubEmbedder{vector: []float32{1, 0}}
	generator := &stubGenerator{reply: "generated"}
	resolver := NewResolver(corpus, NewRanker(embedder, DefaultWeights), nil, generator, nil, "Acme")

	got := resolver.Answer(context.Background(), "what is the leave policy")
	assert.Equal(t, "20 days annual leave, submit requests in advance.", got)
	assert.Zero(t, generator.calls)
}

func TestAnswerGenerativeFallback(t *testing.T) {
	corpus := NewCorpus()
	corpus.Swap(NewSnapshot(
		[]QAPair{{Question: "What training workshops are available?", Answer: "See the catalog."}},
		[][]float32{{0, 1}},
	))

	generator := &stubGenerator{reply: "  generated answer \n"}
	resolver := NewResolver(corpus, NewRanker(&stubEmbedder{vector: []float32{1, 0}}, DefaultWeights), nil, generator, nil, "Acme")

	got := resolver.Answer(context.Background(), "what is the leave policy")
	assert.Equal(t, "generated answer", got)
	require.Equal(t, 1, generator.calls)

	// The verbatim question goes out as the user message.
	require.Len(t, generator.last, 2)
	assert.Equal(t, "what is the leave policy", generator.last[1].Content)
}

func TestAnswerGeneratorFailureFatalFallback(t *testing.T) {
	generator := &stubGenerator{err: errors.New("provider down")}
	resolver := NewResolver(NewCorpus(), nil, nil, generator, nil, "Acme")

	got := resolver.Answer(context.Background(), "something obscure")
	assert.NotEmpty(t, got)
	assert.Contains(t, got, "Acme")
}

func TestAnswerNoGeneratorFallback(t *testing.T) {
	resolver := NewResolver(NewCorpus(), nil, nil, nil, nil, "Acme")
	got := resolver.Answer(context.Background(), "something obscure")
	assert.NotEmpty(t, got)
}

func TestAnswerKeywordFallback(t *testing.T) {
	corpus := NewCorpus()
	// Unindexed snapshot: the ranked path yields nothing, the lexical
	// scan over the whole corpus still finds the match.
	corpus.Swap(NewSnapshot([]QAPair{
		{Question: "Tell me about vacation and holiday time", Answer: "Vacations are 20 days."},
	}, nil))

	generator := &stubGenerator{reply: "generated"}
	resolver := NewResolver(corpus, NewRanker(&stubEmbedder{err: errors.New("down")}, DefaultWeights), nil, generator, nil, "Acme")

	got := resolver.Answer(context.Background(), "vacation holiday time")
	assert.Equal(t, "Vacations are 20 days.", got)
	assert.Zero(t, generator.calls)
}

func TestAnswerEmptyIndexNeverPanics(t *testing.T) {
	corpus := NewCorpus()
	corpus.Swap(NewSnapshot([]QAPair{{Question: "q", Answer: "a"}}, nil))

	resolver := NewResolver(corpus, NewRanker(&stubEmbedder{err: errors.New("down")}, DefaultWeights), nil, nil, nil, "Acme")
	got := resolver.Answer(context.Background(), "what is the leave policy")
	assert.NotEmpty(t, got)
}

func TestAnswerDeterministic(t *testing.T) {
	corpus := NewCorpus()
	corpus.Swap(NewSnapshot(
		[]QAPair{
			{Question: "What is the leave policy?", Answer: "first"},
			{Question: "Describe the leave policy", Answer: "second"},
		},
		[][]float32{{1, 0}, {1, 0}},
	))
	resolver := NewResolver(corpus, NewRanker(&stubEmbedder{vector: []float32{1, 0}}, DefaultWeights), nil, nil, nil, "Acme")

	first := resolver.Answer(context.Background(), "what is the leave policy")
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, resolver.Answer(context.Background(), "what is the leave policy"))
	}
	assert.Equal(t, "first", first)
}

func TestStatus(t *testing.T) {
	corpus := NewCorpus()
	corpus.Swap(NewSnapshot(
		[]QAPair{{Question: "q", Answer: "a"}},
		[][]float32{{1, 0}},
	))
	resolver := NewResolver(corpus, nil, nil, &stubGenerator{}, stubDocuments{}, "Acme")

	status := resolver.Status()
	assert.True(t, status.DatasetLoaded)
	assert.True(t, status.EmbeddingsReady)
	assert.True(t, status.GeneratorReady)
	assert.True(t, status.DocumentsReady)
	assert.Equal(t, 1, status.TotalPairs)
}

func ExampleNormalize() {
	fmt.Println(Normalize("  What is the LEAVE pollicy?? "))
	// Output: what is the leave policy
}
