package docrequest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"

	"github.com/orgai/hr-assistant/store"
)

// Generator produces the official PDF for a completed request. The
// formatting subsystem lives behind this interface; the service only
// cares whether generation succeeded.
type Generator interface {
	GeneratePDF(ctx context.Context, request *store.DocumentRequest) ([]byte, error)
}

// Service owns the document-request lifecycle: validate, persist,
// generate, confirm. A nil generator leaves requests pending for
// manual HR processing instead of failing them.
type Service struct {
	Catalog

	store     *store.Store
	generator Generator
}

// NewService builds the document-request service.
func NewService(st *store.Store, generator Generator) *Service {
	return &Service{store: st, generator: generator}
}

// SubmitResult is the outcome of a request submission.
type SubmitResult struct {
	Request *store.DocumentRequest
	PDF     []byte
}

// Submit validates and persists a document request, then attempts PDF
// generation. Generation failures are recorded on the request rather
// than returned: the request survives for manual processing and the
// confirmation message tells the employee what happened.
func (s *Service) Submit(ctx context.Context, documentType int, details, requester string) (*SubmitResult, error) {
	name, ok := documentNames[documentType]
	if !ok {
		return nil, errors.Errorf("unknown document type %d", documentType)
	}
	if details == "" {
		return nil, errors.New("details are required")
	}
	if ok, message := ValidateDetails(details, documentType); !ok {
		return nil, errors.New(message)
	}

	request := &store.DocumentRequest{
		ID:           fmt.Sprintf("DOC_%s", shortuuid.New()),
		DocumentType: int32(documentType),
		DocumentName: name,
		Details:      details,
		Requester:    requester,
		Status:       store.DocumentRequestStatusPending,
		CreatedTs:    time.Now().Unix(),
	}
	request, err := s.store.CreateDocumentRequest(ctx, request)
	if err != nil {
		return nil, errors.Wrap(err, "create document request")
	}

	result := &SubmitResult{Request: request}
	if s.generator == nil {
		return result, nil
	}

	pdf, err := s.generator.GeneratePDF(ctx, request)
	if err != nil || len(pdf) == 0 {
		if err == nil {
			err = errors.New("generated document is empty")
		}
		slog.ErrorContext(ctx, "document generation failed",
			"request_id", request.ID, "document", name, "error", err)

		message := err.Error()
		request.Status = store.DocumentRequestStatusError
		request.Error = message
		if updateErr := s.store.UpdateDocumentRequestStatus(ctx, &store.UpdateDocumentRequestStatus{
			ID:     request.ID,
			Status: store.DocumentRequestStatusError,
			Error:  &message,
		}); updateErr != nil {
			slog.ErrorContext(ctx, "failed to record generation error", "request_id", request.ID, "error", updateErr)
		}
		return result, nil
	}

	request.Status = store.DocumentRequestStatusCompleted
	if err := s.store.UpdateDocumentRequestStatus(ctx, &store.UpdateDocumentRequestStatus{
		ID:     request.ID,
		Status: store.DocumentRequestStatusCompleted,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to mark request completed", "request_id", request.ID, "error", err)
	}
	result.PDF = pdf
	return result, nil
}

// ConfirmationMessage renders the employee-facing confirmation for a
// submitted request, varying with the generation outcome.
func (s *Service) ConfirmationMessage(request *store.DocumentRequest) string {
	timestamp := time.Unix(request.CreatedTs, 0).Format("2006-01-02 15:04:05")

	switch request.Status {
	case store.DocumentRequestStatusCompleted:
		return fmt.Sprintf(`Your %s has been generated successfully!

Document details:
- Document: %s
- Request ID: %s
- Status: Completed
- Generated: %s

Your PDF document is ready for download. A copy has been sent to HR for record-keeping.
For any issues, contact HR.`, request.DocumentName, request.DocumentName, request.ID, timestamp)

	case store.DocumentRequestStatusError:
		return fmt.Sprintf(`Document generation encountered an issue.

Request details:
- Document: %s
- Request ID: %s
- Status: Pending HR review
- Submitted: %s

Issue: %s

Your request has been sent to HR for manual processing. HR will review and generate
the document within 24-48 hours, and you'll receive an email confirmation when ready.`,
			request.DocumentName, request.ID, timestamp, request.Error)

	default:
		return fmt.Sprintf(`Your request for %s has been submitted to HR.

Request details:
- Request ID: %s
- Status: Pending
- Submitted: %s

HR will review your request within 24-48 hours and you'll receive an email confirmation.
For urgent requests, contact HR directly.`, request.DocumentName, request.ID, timestamp)
	}
}

// Request returns a document request by ID, or nil when not found.
func (s *Service) Request(ctx context.Context, id string) (*store.DocumentRequest, error) {
	return s.store.GetDocumentRequest(ctx, id)
}

// RequestsFor lists all requests submitted by an employee, newest
// first.
func (s *Service) RequestsFor(ctx context.Context, requester string) ([]*store.DocumentRequest, error) {
	return s.store.ListDocumentRequests(ctx, &store.FindDocumentRequest{Requester: &requester})
}

// PendingCount reports how many requests await manual HR processing.
func (s *Service) PendingCount(ctx context.Context) (int, error) {
	status := store.DocumentRequestStatusPending
	pending, err := s.store.ListDocumentRequests(ctx, &store.FindDocumentRequest{Status: &status})
	if err != nil {
		return 0, err
	}
	return len(pending), nil
}
