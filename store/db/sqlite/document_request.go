package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/orgai/hr-assistant/store"
)

func (d *DB) CreateDocumentRequest(ctx context.Context, create *store.DocumentRequest) (*store.DocumentRequest, error) {
	stmt := `
		INSERT INTO document_request (id, document_type, document_name, details, requester, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING created_ts
	`
	err := d.db.QueryRowContext(ctx, stmt,
		create.ID,
		create.DocumentType,
		create.DocumentName,
		create.Details,
		create.Requester,
		create.Status,
		create.Error,
	).Scan(&create.CreatedTs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create document request")
	}
	return create, nil
}

func (d *DB) ListDocumentRequests(ctx context.Context, find *store.FindDocumentRequest) ([]*store.DocumentRequest, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = ?"), append(args, *find.ID)
	}
	if find.Requester != nil {
		where, args = append(where, "requester = ?"), append(args, *find.Requester)
	}
	if find.Status != nil {
		where, args = append(where, "status = ?"), append(args, *find.Status)
	}

	query := fmt.Sprintf(`
		SELECT id, document_type, document_name, details, requester, status, error, created_ts
		FROM document_request
		WHERE %s
		ORDER BY created_ts DESC
	`, strings.Join(where, " AND "))
	if find.Limit != nil {
		query += fmt.Sprintf(" LIMIT %d", *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list document requests")
	}
	defer rows.Close()

	list := []*store.DocumentRequest{}
	for rows.Next() {
		request := &store.DocumentRequest{}
		if err := rows.Scan(
			&request.ID,
			&request.DocumentType,
			&request.DocumentName,
			&request.Details,
			&request.Requester,
			&request.Status,
			&request.Error,
			&request.CreatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan document request")
		}
		list = append(list, request)
	}
	return list, rows.Err()
}

func (d *DB) UpdateDocumentRequestStatus(ctx context.Context, update *store.UpdateDocumentRequestStatus) error {
	set, args := []string{"status = ?"}, []any{update.Status}
	if update.Error != nil {
		set, args = append(set, "error = ?"), append(args, *update.Error)
	}
	args = append(args, update.ID)

	stmt := fmt.Sprintf("UPDATE document_request SET %s WHERE id = ?", strings.Join(set, ", "))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return errors.Wrap(err, "failed to update document request status")
	}
	return nil
}
