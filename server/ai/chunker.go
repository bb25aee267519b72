package ai

import "strings"

const (
	// ChunkSize is the maximum character count per summarization chunk.
	ChunkSize = 4000
	// ChunkOverlap is the character count carried over between chunks so
	// a policy clause split mid-chunk still appears whole in one of them.
	ChunkOverlap = 200
)

// ChunkText splits extracted document text into chunks small enough to
// send to the chat model, preferring paragraph boundaries.
func ChunkText(content string) []string {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	if len(content) <= ChunkSize {
		return []string{content}
	}

	paragraphs := strings.Split(content, "\n\n")

	var chunks []string
	var current strings.Builder
	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if current.Len() > 0 && current.Len()+len(para) > ChunkSize {
			chunks = append(chunks, current.String())
			tail := overlapTail(current.String(), ChunkOverlap)
			current.Reset()
			if tail != "" {
				current.WriteString(tail)
				current.WriteString("\n\n")
			}
		}

		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)

		// Force-split paragraphs longer than a whole chunk.
		for current.Len() > ChunkSize {
			text := current.String()
			cut := lastSpaceBefore(text, ChunkSize)
			chunks = append(chunks, strings.TrimSpace(text[:cut]))
			current.Reset()
			current.WriteString(strings.TrimSpace(text[cut:]))
		}
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// overlapTail returns the last n characters of text, snapped forward to
// a word boundary.
func overlapTail(text string, n int) string {
	if len(text) <= n {
		return text
	}
	tail := text[len(text)-n:]
	if idx := strings.IndexByte(tail, ' '); idx >= 0 {
		tail = tail[idx+1:]
	}
	return strings.TrimSpace(tail)
}

// lastSpaceBefore returns the index of the last space at or before
// limit, or limit itself when the text has no usable break point.
func lastSpaceBefore(text string, limit int) int {
	if limit >= len(text) {
		return len(text)
	}
	if idx := strings.LastIndexByte(text[:limit], ' '); idx > 0 {
		return idx
	}
	return limit
}
