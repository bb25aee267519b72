package summary

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgai/hr-assistant/server/ai"
)

type scriptedGenerator struct {
	calls   int
	failQty int
}

func (s *scriptedGenerator) Chat(ctx context.Context, messages []ai.Message) (string, error) {
	s.calls++
	if s.calls <= s.failQty {
		return "", errors.New("model unavailable")
	}
	return fmt.Sprintf("summary %d", s.calls), nil
}

func TestSummarizeSingleChunk(t *testing.T) {
	generator := &scriptedGenerator{}
	service := NewService(generator)

	result, err := service.Summarize(context.Background(), "leave_policy.pdf", "Employees accrue 20 days of annual leave.")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Chunks)
	assert.Equal(t, "summary 1", result.Summary)
	assert.Equal(t, "leave_policy.pdf", result.Filename)
	assert.Equal(t, 1, generator.calls)
}

func TestSummarizeMapReduce(t *testing.T) {
	generator := &scriptedGenerator{}
	service := NewService(generator)

	// Force multiple chunks with paragraphs beyond one chunk size.
	paragraph := strings.Repeat("The policy describes accrual rules in detail. ", 60)
	text := paragraph + "\n\n" + paragraph + "\n\n" + paragraph

	result, err := service.Summarize(context.Background(), "handbook.pdf", text)
	require.NoError(t, err)
	assert.Greater(t, result.Chunks, 1)
	// One call per chunk plus the merge call.
	assert.Equal(t, result.Chunks+1, generator.calls)
	assert.NotEmpty(t, result.Summary)
}

func TestSummarizeEmptyText(t *testing.T) {
	service := NewService(&scriptedGenerator{})
	_, err := service.Summarize(context.Background(), "empty.pdf", "   \n ")
	assert.Error(t, err)
}

func TestSummarizeNoGenerator(t *testing.T) {
	service := NewService(nil)
	_, err := service.Summarize(context.Background(), "doc.pdf", "text")
	assert.Error(t, err)
}

func TestSummarizeChunkFailure(t *testing.T) {
	service := NewService(&scriptedGenerator{failQty: 1})
	_, err := service.Summarize(context.Background(), "doc.pdf", "short text")
	assert.Error(t, err)
}
