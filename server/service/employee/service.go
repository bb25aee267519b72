// Package employee provides directory lookup, search, and the strict
// record validation used by document generation.
package employee

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/orgai/hr-assistant/store"
)

// Service is the employee directory.
type Service struct {
	store *store.Store
}

// NewService builds the directory service.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// seedRecord is the on-disk employee record shape used by the HR data
// export.
type seedRecord struct {
	EmpID        int32  `json:"emp_id"`
	FullName     string `json:"full_name"`
	Designation  string `json:"designation"`
	Department   string `json:"department"`
	JoiningDate  string `json:"joining_date"`
	EmployeeCode string `json:"employee_code"`
	Email        string `json:"email"`
}

// SeedFromFile loads the employee directory export into the store.
// Records missing an employee code or name are skipped and counted.
// A missing file is not an error: the directory starts empty.
func (s *Service) SeedFromFile(ctx context.Context, path string) (loaded, skipped int, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.WarnContext(ctx, "employee data file not found, directory starts empty", "path", path)
			return 0, 0, nil
		}
		return 0, 0, errors.Wrap(err, "read employee data")
	}

	var records []seedRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return 0, 0, errors.Wrap(err, "parse employee data")
	}

	for i, record := range records {
		if record.EmployeeCode == "" || record.FullName == "" {
			slog.WarnContext(ctx, "skipping incomplete employee record", "index", i)
			skipped++
			continue
		}
		_, err := s.store.UpsertEmployee(ctx, &store.Employee{
			EmpID:        record.EmpID,
			EmployeeCode: record.EmployeeCode,
			FullName:     record.FullName,
			Email:        strings.ToLower(record.Email),
			Department:   record.Department,
			Designation:  record.Designation,
			JoiningDate:  record.JoiningDate,
		})
		if err != nil {
			return loaded, skipped, errors.Wrapf(err, "upsert employee %s", record.EmployeeCode)
		}
		loaded++
	}

	slog.InfoContext(ctx, "employee directory seeded", "loaded", loaded, "skipped", skipped)
	return loaded, skipped, nil
}

// Search finds employees by a free-form query matched against name,
// code, and email.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]*store.Employee, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("search query is required")
	}
	if limit <= 0 {
		limit = 20
	}
	return s.store.ListEmployees(ctx, &store.FindEmployee{Search: &query, Limit: &limit})
}

// GetByEmail looks up one employee by email, case-insensitive.
// Returns nil when not found.
func (s *Service) GetByEmail(ctx context.Context, email string) (*store.Employee, error) {
	return s.store.GetEmployeeByEmail(ctx, email)
}

// GetByCode looks up one employee by employee code, case-insensitive.
// Returns nil when not found.
func (s *Service) GetByCode(ctx context.Context, code string) (*store.Employee, error) {
	return s.store.GetEmployeeByCode(ctx, code)
}

// ValidationInput is the employee identity claimed on a document
// request form.
type ValidationInput struct {
	FullName     string
	EmployeeCode string
	Designation  string
	Department   string
	JoiningDate  string
}

// ValidationResult reports whether the claimed identity matches the
// directory record exactly.
type ValidationResult struct {
	Valid    bool            `json:"valid"`
	Found    bool            `json:"found"`
	Matched  *store.Employee `json:"matched,omitempty"`
	Errors   []string        `json:"errors,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`
}

// Validate checks a claimed identity against the directory. Every
// provided field must match the stored record exactly (case folded);
// documents are only generated for identities that fully check out.
func (s *Service) Validate(ctx context.Context, input *ValidationInput) (*ValidationResult, error) {
	result := &ValidationResult{}

	name := strings.TrimSpace(input.FullName)
	code := strings.TrimSpace(input.EmployeeCode)
	if name == "" && code == "" {
		result.Errors = append(result.Errors, "Either employee name or employee code is required")
		return result, nil
	}

	// Code is the most reliable key; fall back to exact name match.
	var matched *store.Employee
	if code != "" {
		employee, err := s.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		matched = employee
	}
	if matched == nil && name != "" {
		employees, err := s.store.ListEmployees(ctx, &store.FindEmployee{Search: &name})
		if err != nil {
			return nil, err
		}
		for _, employee := range employees {
			if strings.EqualFold(strings.TrimSpace(employee.FullName), name) {
				matched = employee
				if code != "" {
					result.Warnings = append(result.Warnings,
						fmt.Sprintf("Employee found by name but code does not match. Expected: %s", employee.EmployeeCode))
				}
				break
			}
		}
	}

	if matched == nil {
		result.Errors = append(result.Errors, "Employee not found in records. Please check the employee code or name.")
		return result, nil
	}
	result.Found = true
	result.Matched = matched

	checks := []struct {
		label    string
		provided string
		stored   string
	}{
		{"Employee name", name, matched.FullName},
		{"Employee code", code, matched.EmployeeCode},
		{"Designation", input.Designation, matched.Designation},
		{"Department", input.Department, matched.Department},
		{"Joining date", input.JoiningDate, matched.JoiningDate},
	}
	for _, check := range checks {
		provided := strings.TrimSpace(check.provided)
		if provided == "" {
			continue
		}
		if !strings.EqualFold(provided, strings.TrimSpace(check.stored)) {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s mismatch. Expected: %s, Provided: %s", check.label, check.stored, provided))
		}
	}

	result.Valid = len(result.Errors) == 0
	return result, nil
}
