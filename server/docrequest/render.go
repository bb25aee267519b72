package docrequest

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/orgai/hr-assistant/store"
)

// TextRenderer produces a minimal single-page PDF for a document
// request: letterhead, document title, and the submitted details. It
// stands in until a full document service with official templates is
// attached.
type TextRenderer struct {
	orgName string
}

// NewTextRenderer creates a renderer using the organization name as
// the letterhead.
func NewTextRenderer(orgName string) *TextRenderer {
	return &TextRenderer{orgName: orgName}
}

// GeneratePDF renders the request as an uncompressed PDF 1.4 document.
func (r *TextRenderer) GeneratePDF(_ context.Context, request *store.DocumentRequest) ([]byte, error) {
	if request == nil {
		return nil, fmt.Errorf("nil document request")
	}

	lines := []string{
		r.orgName,
		"",
		request.DocumentName,
		"",
		"Request ID: " + request.ID,
		"Requested by: " + request.Requester,
		"Date: " + time.Unix(request.CreatedTs, 0).Format("2006-01-02"),
		"",
	}
	for _, line := range strings.Split(request.Details, "\n") {
		lines = append(lines, strings.TrimRight(line, "\r"))
	}
	lines = append(lines,
		"",
		"This document was generated automatically and is pending",
		"verification by the HR department.",
	)

	return buildPDF(lines), nil
}

// buildPDF assembles a one-page PDF with a Helvetica text stream.
func buildPDF(lines []string) []byte {
	var content bytes.Buffer
	content.WriteString("BT /F1 12 Tf 72 720 Td 16 TL\n")
	for i, line := range lines {
		if i > 0 {
			content.WriteString("T*\n")
		}
		fmt.Fprintf(&content, "(%s) Tj\n", escapePDFText(line))
	}
	content.WriteString("ET\n")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, object := range objects {
		offsets[i] = out.Len()
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", i+1, object)
	}

	xrefStart := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n", len(objects)+1)
	out.WriteString("0000000000 65535 f \n")
	for _, offset := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefStart)
	return out.Bytes()
}

// escapePDFText escapes the delimiters of a PDF literal string.
func escapePDFText(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return replacer.Replace(s)
}
