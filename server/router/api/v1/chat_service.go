package v1

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/orgai/hr-assistant/server/internal/observability"
	"github.com/orgai/hr-assistant/server/middleware"
)

const maxMessageLength = 10000

// harmfulPatterns reject messages carrying script injection payloads
// before they reach the resolver or the model provider.
var harmfulPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)data:text/html`),
	regexp.MustCompile(`(?i)vbscript:`),
	regexp.MustCompile(`(?i)<iframe[^>]*>`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Response  string `json:"response"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Chat answers a single chat message.
func (s *APIV1Service) Chat(c echo.Context) error {
	request := &ChatRequest{}
	if err := c.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}

	message := strings.TrimSpace(request.Message)
	if message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Message cannot be empty or contain only whitespace")
	}
	if len(request.Message) > maxMessageLength {
		return echo.NewHTTPError(http.StatusBadRequest, "Message is too long (maximum 10,000 characters)")
	}
	for _, pattern := range harmfulPatterns {
		if pattern.MatchString(request.Message) {
			return echo.NewHTTPError(http.StatusBadRequest, "Message contains potentially harmful content")
		}
	}

	employeeEmail := ""
	if claims := middleware.SessionClaims(c); claims != nil {
		employeeEmail = claims.Email
	}
	rc := observability.NewRequestContext(slog.Default(), employeeEmail)
	rc.Info("chat request received", slog.Int(observability.LogFieldMessageLen, len(message)))

	if s.Filter != nil && s.Filter.ContainsBadLanguage(message) {
		rc.Warn("inappropriate language detected")
		if s.Stats != nil {
			s.Stats.RecordBlockedMessage()
		}
		return c.JSON(http.StatusOK, &ChatResponse{
			Response:  "Please keep the conversation respectful and professional.",
			Success:   false,
			Error:     "Inappropriate language detected",
			Timestamp: time.Now().Format(time.RFC3339),
		})
	}

	answer := s.Resolver.Answer(c.Request().Context(), message)
	rc.Info("chat answered", slog.Int64(observability.LogFieldDuration, rc.DurationMs()))
	if s.Stats != nil {
		s.Stats.RecordChat()
	}

	return c.JSON(http.StatusOK, &ChatResponse{
		Response:  answer,
		Success:   true,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

type HealthResponse struct {
	Status    string          `json:"status"`
	Timestamp string          `json:"timestamp"`
	Services  map[string]bool `json:"services"`
	Warnings  []string        `json:"warnings,omitempty"`
}

// Health reports component readiness. Degraded means the server is up
// but answering from reduced capability.
func (s *APIV1Service) Health(c echo.Context) error {
	status := s.Resolver.Status()

	response := &HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Services: map[string]bool{
			"bad_language_filter": s.Filter != nil && s.Filter.Size() > 0,
			"qa_dataset":          status.DatasetLoaded,
			"embeddings":          status.EmbeddingsReady,
			"generator":           status.GeneratorReady,
			"document_requests":   status.DocumentsReady,
		},
	}

	var warnings []string
	if !status.DatasetLoaded {
		warnings = append(warnings, "QA dataset not loaded")
	}
	if !status.EmbeddingsReady {
		warnings = append(warnings, "Embeddings not available")
	}
	if !status.GeneratorReady {
		warnings = append(warnings, "Generative fallback not available")
	}
	if len(warnings) > 0 {
		response.Status = "degraded"
		response.Warnings = warnings
	}
	return c.JSON(http.StatusOK, response)
}
