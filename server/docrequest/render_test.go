package docrequest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgai/hr-assistant/store"
)

func TestTextRendererGeneratePDF(t *testing.T) {
	renderer := NewTextRenderer("Acme Corp")
	request := &store.DocumentRequest{
		ID:           "DOC_abc123",
		DocumentType: 1,
		DocumentName: "Salary Certificate",
		Details:      "Employee: Asha Rao\nDepartment: Platform",
		Requester:    "asha.rao@acme.example",
		CreatedTs:    time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC).Unix(),
	}

	pdf, err := renderer.GeneratePDF(context.Background(), request)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)

	text := string(pdf)
	assert.True(t, len(text) > 0 && text[:5] == "%PDF-")
	assert.Contains(t, text, "(Acme Corp) Tj")
	assert.Contains(t, text, "(Salary Certificate) Tj")
	assert.Contains(t, text, "(Requested by: asha.rao@acme.example) Tj")
	assert.Contains(t, text, "(Department: Platform) Tj")
	assert.Contains(t, text, "%%EOF")
}

func TestTextRendererEscapesDelimiters(t *testing.T) {
	renderer := NewTextRenderer("Acme (HQ)")
	request := &store.DocumentRequest{
		ID:           "DOC_x",
		DocumentName: "Bonafide (Passport)",
		Details:      `path\to\file`,
		Requester:    "someone",
		CreatedTs:    time.Now().Unix(),
	}

	pdf, err := renderer.GeneratePDF(context.Background(), request)
	require.NoError(t, err)
	text := string(pdf)
	assert.Contains(t, text, `(Acme \(HQ\)) Tj`)
	assert.Contains(t, text, `(Bonafide \(Passport\)) Tj`)
	assert.Contains(t, text, `(path\\to\\file) Tj`)
}

func TestTextRendererNilRequest(t *testing.T) {
	renderer := NewTextRenderer("Acme")
	_, err := renderer.GeneratePDF(context.Background(), nil)
	assert.Error(t, err)
}
