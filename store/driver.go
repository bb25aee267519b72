package store

import "context"

// Driver is an interface for database drivers.
type Driver interface {
	GetDB() any
	Close() error
	Migrate(ctx context.Context) error

	// Employee model related methods.
	UpsertEmployee(ctx context.Context, upsert *Employee) (*Employee, error)
	ListEmployees(ctx context.Context, find *FindEmployee) ([]*Employee, error)

	// DocumentRequest model related methods.
	CreateDocumentRequest(ctx context.Context, create *DocumentRequest) (*DocumentRequest, error)
	ListDocumentRequests(ctx context.Context, find *FindDocumentRequest) ([]*DocumentRequest, error)
	UpdateDocumentRequestStatus(ctx context.Context, update *UpdateDocumentRequestStatus) error

	// QAEmbedding model related methods.
	UpsertQAEmbedding(ctx context.Context, upsert *QAEmbedding) (*QAEmbedding, error)
	ListQAEmbeddings(ctx context.Context, find *FindQAEmbedding) ([]*QAEmbedding, error)
}
