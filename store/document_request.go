package store

import "context"

// DocumentRequest status values.
const (
	DocumentRequestStatusPending   = "pending"
	DocumentRequestStatusCompleted = "completed"
	DocumentRequestStatusError     = "error"
)

// DocumentRequest is a persisted official-document request.
type DocumentRequest struct {
	ID           string
	DocumentType int32
	DocumentName string
	Details      string
	Requester    string
	Status       string
	Error        string
	CreatedTs    int64
}

// FindDocumentRequest is the find condition for document requests.
type FindDocumentRequest struct {
	ID        *string
	Requester *string
	Status    *string
	Limit     *int
}

// UpdateDocumentRequestStatus updates the status (and optional error
// message) of a document request.
type UpdateDocumentRequestStatus struct {
	ID     string
	Status string
	Error  *string
}

func (s *Store) CreateDocumentRequest(ctx context.Context, create *DocumentRequest) (*DocumentRequest, error) {
	return s.driver.CreateDocumentRequest(ctx, create)
}

func (s *Store) ListDocumentRequests(ctx context.Context, find *FindDocumentRequest) ([]*DocumentRequest, error) {
	return s.driver.ListDocumentRequests(ctx, find)
}

func (s *Store) GetDocumentRequest(ctx context.Context, id string) (*DocumentRequest, error) {
	list, err := s.driver.ListDocumentRequests(ctx, &FindDocumentRequest{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) UpdateDocumentRequestStatus(ctx context.Context, update *UpdateDocumentRequestStatus) error {
	return s.driver.UpdateDocumentRequestStatus(ctx, update)
}
