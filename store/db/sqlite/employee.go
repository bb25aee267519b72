package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/orgai/hr-assistant/store"
)

func (d *DB) UpsertEmployee(ctx context.Context, upsert *store.Employee) (*store.Employee, error) {
	stmt := `
		INSERT INTO employee (emp_id, employee_code, full_name, email, department, designation, joining_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (emp_id)
		DO UPDATE SET
			employee_code = excluded.employee_code,
			full_name = excluded.full_name,
			email = excluded.email,
			department = excluded.department,
			designation = excluded.designation,
			joining_date = excluded.joining_date
		RETURNING id, created_ts
	`
	err := d.db.QueryRowContext(ctx, stmt,
		upsert.EmpID,
		upsert.EmployeeCode,
		upsert.FullName,
		strings.ToLower(upsert.Email),
		upsert.Department,
		upsert.Designation,
		upsert.JoiningDate,
	).Scan(&upsert.ID, &upsert.CreatedTs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert employee")
	}
	return upsert, nil
}

func (d *DB) ListEmployees(ctx context.Context, find *store.FindEmployee) ([]*store.Employee, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = ?"), append(args, *find.ID)
	}
	if find.EmpID != nil {
		where, args = append(where, "emp_id = ?"), append(args, *find.EmpID)
	}
	if find.EmployeeCode != nil {
		where, args = append(where, "LOWER(employee_code) = ?"), append(args, strings.ToLower(*find.EmployeeCode))
	}
	if find.Email != nil {
		where, args = append(where, "email = ?"), append(args, strings.ToLower(*find.Email))
	}
	if find.Search != nil {
		pattern := "%" + strings.ToLower(*find.Search) + "%"
		where = append(where, "(LOWER(full_name) LIKE ? OR LOWER(employee_code) LIKE ? OR email LIKE ?)")
		args = append(args, pattern, pattern, pattern)
	}

	query := fmt.Sprintf(`
		SELECT id, emp_id, employee_code, full_name, email, department, designation, joining_date, created_ts
		FROM employee
		WHERE %s
		ORDER BY emp_id
	`, strings.Join(where, " AND "))
	if find.Limit != nil {
		query += fmt.Sprintf(" LIMIT %d", *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list employees")
	}
	defer rows.Close()

	list := []*store.Employee{}
	for rows.Next() {
		employee := &store.Employee{}
		if err := rows.Scan(
			&employee.ID,
			&employee.EmpID,
			&employee.EmployeeCode,
			&employee.FullName,
			&employee.Email,
			&employee.Department,
			&employee.Designation,
			&employee.JoiningDate,
			&employee.CreatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan employee")
		}
		list = append(list, employee)
	}
	return list, rows.Err()
}
