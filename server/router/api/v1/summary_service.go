package v1

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/orgai/hr-assistant/plugin/textextract"
)

// maxSummaryTextLength bounds the extracted text accepted for
// summarization, roughly 500 pages of dense text.
const maxSummaryTextLength = 2_000_000

type SummarizeRequest struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

type SummarizeResponse struct {
	Filename   string `json:"filename"`
	Summary    string `json:"summary"`
	Chunks     int    `json:"chunks"`
	DurationMs int64  `json:"duration_ms"`
}

// Summarize condenses extracted document text into a structured
// summary. Large documents are summarized chunk by chunk and merged.
func (s *APIV1Service) Summarize(c echo.Context) error {
	request := &SummarizeRequest{}
	if err := c.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}
	if strings.TrimSpace(request.Text) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Text is required")
	}
	if len(request.Text) > maxSummaryTextLength {
		return echo.NewHTTPError(http.StatusBadRequest, "Text is too large to summarize")
	}

	result, err := s.Summaries.Summarize(c.Request().Context(), request.Filename, request.Text)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to summarize document").SetInternal(err)
	}
	if s.Stats != nil {
		s.Stats.RecordSummary()
	}
	return c.JSON(http.StatusOK, &SummarizeResponse{
		Filename:   result.Filename,
		Summary:    result.Summary,
		Chunks:     result.Chunks,
		DurationMs: result.DurationMs,
	})
}

// SummarizeUpload accepts a PDF upload, extracts its text, and
// summarizes it in one round trip.
func (s *APIV1Service) SummarizeUpload(c echo.Context) error {
	if s.Extractor == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Document extraction is not configured")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "A file upload named 'file' is required")
	}
	if fileHeader.Size > textextract.MaxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File exceeds the 50 MB upload limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read uploaded file").SetInternal(err)
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, textextract.MaxUploadBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read uploaded file").SetInternal(err)
	}

	extracted, err := s.Extractor.Extract(c.Request().Context(), data)
	if err != nil {
		switch {
		case errors.Is(err, textextract.ErrUnsupportedType):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, textextract.ErrEmptyDocument):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		default:
			return echo.NewHTTPError(http.StatusBadGateway, "Text extraction failed").SetInternal(err)
		}
	}

	result, err := s.Summaries.Summarize(c.Request().Context(), fileHeader.Filename, extracted.Text)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to summarize document").SetInternal(err)
	}
	if s.Stats != nil {
		s.Stats.RecordSummary()
	}
	return c.JSON(http.StatusOK, &SummarizeResponse{
		Filename:   result.Filename,
		Summary:    result.Summary,
		Chunks:     result.Chunks,
		DurationMs: result.DurationMs,
	})
}
