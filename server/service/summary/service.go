// Package summary turns extracted policy-document text into a concise
// summary with a map-reduce pass over the chat model.
package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/orgai/hr-assistant/server/ai"
)

// Generator is the chat collaborator. *ai.Provider satisfies it.
type Generator interface {
	Chat(ctx context.Context, messages []ai.Message) (string, error)
}

// Result is one completed summarization.
type Result struct {
	Filename   string `json:"filename"`
	Summary    string `json:"summary"`
	Chunks     int    `json:"chunks"`
	DurationMs int64  `json:"durationMs"`
}

// Service summarizes document text. Large documents are split into
// chunks, each chunk summarized independently, and the partial
// summaries merged in a final pass.
type Service struct {
	generator Generator
}

// NewService builds the summarization service.
func NewService(generator Generator) *Service {
	return &Service{generator: generator}
}

const systemInstruction = `You summarize internal HR and policy documents for employees.
Produce a clear, structured summary: purpose of the document, the key rules or
entitlements, any deadlines or required actions, and who to contact. Preserve
exact figures (days, amounts, dates). Do not invent details.`

// Summarize produces a summary of the extracted text. Returns an error
// when the text is empty or the model is unavailable; the HTTP layer
// translates that into a user-facing message.
func (s *Service) Summarize(ctx context.Context, filename, text string) (*Result, error) {
	if s.generator == nil {
		return nil, errors.New("summarization model is not configured")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("document contains no extractable text")
	}

	start := time.Now()
	chunks := ai.ChunkText(text)

	var summaryText string
	var err error
	if len(chunks) == 1 {
		summaryText, err = s.summarizeChunk(ctx, chunks[0])
	} else {
		summaryText, err = s.summarizeChunks(ctx, chunks)
	}
	if err != nil {
		return nil, err
	}

	result := &Result{
		Filename:   filename,
		Summary:    strings.TrimSpace(summaryText),
		Chunks:     len(chunks),
		DurationMs: time.Since(start).Milliseconds(),
	}
	slog.InfoContext(ctx, "document summarized",
		"filename", filename, "chunks", result.Chunks, "duration_ms", result.DurationMs)
	return result, nil
}

func (s *Service) summarizeChunk(ctx context.Context, chunk string) (string, error) {
	answer, err := s.generator.Chat(ctx, []ai.Message{
		ai.SystemPrompt(systemInstruction),
		ai.UserMessage("Summarize the following document text:\n\n" + chunk),
	})
	if err != nil {
		return "", errors.Wrap(err, "summarize chunk")
	}
	return answer, nil
}

// summarizeChunks is the map-reduce path: per-chunk summaries first,
// then one merge call over the partials.
func (s *Service) summarizeChunks(ctx context.Context, chunks []string) (string, error) {
	partials := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		partial, err := s.summarizeChunk(ctx, chunk)
		if err != nil {
			return "", errors.Wrapf(err, "chunk %d of %d", i+1, len(chunks))
		}
		partials = append(partials, fmt.Sprintf("Part %d:\n%s", i+1, partial))
	}

	merged, err := s.generator.Chat(ctx, []ai.Message{
		ai.SystemPrompt(systemInstruction),
		ai.UserMessage("The following are partial summaries of consecutive parts of one document. Merge them into a single coherent summary without repeating yourself:\n\n" + strings.Join(partials, "\n\n")),
	})
	if err != nil {
		return "", errors.Wrap(err, "merge partial summaries")
	}
	return merged, nil
}
