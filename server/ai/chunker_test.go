package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextEmpty(t *testing.T) {
	assert.Nil(t, ChunkText(""))
	assert.Nil(t, ChunkText("   \n\t "))
}

func TestChunkTextSmallSingleChunk(t *testing.T) {
	text := "Employees accrue 20 days of annual leave per year."
	chunks := ChunkText(text)
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestChunkTextSplitsOnParagraphs(t *testing.T) {
	paragraph := strings.Repeat("Accrual rules are described in this section. ", 60)
	text := paragraph + "\n\n" + paragraph + "\n\n" + paragraph

	chunks := ChunkText(text)
	require.Greater(t, len(chunks), 1)
	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), ChunkSize, "chunk %d", i)
		assert.NotEmpty(t, strings.TrimSpace(chunk))
	}
}

func TestChunkTextForceSplitsLongParagraph(t *testing.T) {
	// One paragraph larger than a whole chunk must still be split.
	text := strings.Repeat("word ", 2000)
	chunks := ChunkText(text)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), ChunkSize)
	}
}

func TestChunkTextOverlapCarriesContext(t *testing.T) {
	first := strings.Repeat("alpha ", 650)
	second := strings.Repeat("beta ", 650)
	chunks := ChunkText(strings.TrimSpace(first) + "\n\n" + strings.TrimSpace(second))

	require.GreaterOrEqual(t, len(chunks), 2)
	// The second chunk starts with the tail of the first.
	assert.Contains(t, chunks[1], "alpha")
}
