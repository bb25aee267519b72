package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgai/hr-assistant/internal/profile"
	"github.com/orgai/hr-assistant/plugin/filter"
	"github.com/orgai/hr-assistant/server/qa"
)

func newTestAPIService(t *testing.T) *APIV1Service {
	t.Helper()

	corpus := qa.NewCorpus()
	corpus.Swap(qa.NewSnapshot([]qa.QAPair{
		{Question: "Hello", Answer: "Hello! How can I help you today?"},
		{Question: "What can you do", Answer: "I can answer HR questions and handle document requests."},
	}, nil))

	return &APIV1Service{
		Profile:  &profile.Profile{Mode: "dev", OrgName: "Acme", AuthDisabled: true},
		Resolver: qa.NewResolver(corpus, nil, nil, nil, nil, "Acme"),
		Filter:   filter.New([]string{"swearword"}),
	}
}

func postChat(t *testing.T, service *APIV1Service, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := service.Chat(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestChatAnswersGreeting(t *testing.T) {
	service := newTestAPIService(t)

	rec := postChat(t, service, `{"message": "hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	response := &ChatResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), response))
	assert.True(t, response.Success)
	assert.Equal(t, "Hello! How can I help you today?", response.Response)
	assert.NotEmpty(t, response.Timestamp)
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	service := newTestAPIService(t)

	rec := postChat(t, service, `{"message": "   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatRejectsOversizedMessage(t *testing.T) {
	service := newTestAPIService(t)

	message := strings.Repeat("a", maxMessageLength+1)
	rec := postChat(t, service, `{"message": "`+message+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatRejectsHarmfulContent(t *testing.T) {
	service := newTestAPIService(t)

	for _, message := range []string{
		`<script>alert(1)</script>`,
		`click javascript:void(0)`,
		`<iframe src=x>`,
		`img onerror = hack()`,
	} {
		rec := postChat(t, service, `{"message": "`+message+`"}`)
		assert.Equalf(t, http.StatusBadRequest, rec.Code, "message %q", message)
	}
}

func TestChatBlocksBadLanguage(t *testing.T) {
	service := newTestAPIService(t)

	rec := postChat(t, service, `{"message": "you swearword bot"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	response := &ChatResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), response))
	assert.False(t, response.Success)
	assert.Equal(t, "Please keep the conversation respectful and professional.", response.Response)
	assert.Equal(t, "Inappropriate language detected", response.Error)
}

func TestHealthReportsDegradedWithoutEmbeddings(t *testing.T) {
	service := newTestAPIService(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, service.Health(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	response := &HealthResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), response))
	assert.Equal(t, "degraded", response.Status)
	assert.True(t, response.Services["qa_dataset"])
	assert.False(t, response.Services["embeddings"])
	assert.Contains(t, response.Warnings, "Embeddings not available")
}
