package store

import (
	"context"
	"fmt"
	"strings"
)

// Employee is a directory record used for OTP authentication and
// document generation.
type Employee struct {
	ID           int32
	EmpID        int32
	EmployeeCode string
	FullName     string
	Email        string
	Department   string
	Designation  string
	JoiningDate  string
	CreatedTs    int64
}

// FindEmployee is the find condition for employees.
type FindEmployee struct {
	ID           *int32
	EmpID        *int32
	EmployeeCode *string
	Email        *string
	// Search matches full name, employee code, or email, case-insensitive.
	Search *string
	Limit  *int
}

func (s *Store) UpsertEmployee(ctx context.Context, upsert *Employee) (*Employee, error) {
	employee, err := s.driver.UpsertEmployee(ctx, upsert)
	if err != nil {
		return nil, err
	}
	s.employeeCache.Delete(ctx, employeeCacheKey(employee.Email))
	return employee, nil
}

func (s *Store) ListEmployees(ctx context.Context, find *FindEmployee) ([]*Employee, error) {
	return s.driver.ListEmployees(ctx, find)
}

// GetEmployeeByEmail returns the employee with the given email, or nil
// when no such employee exists. Lookups are cached.
func (s *Store) GetEmployeeByEmail(ctx context.Context, email string) (*Employee, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if cached, ok := s.employeeCache.Get(ctx, employeeCacheKey(email)); ok {
		if employee, ok := cached.(*Employee); ok {
			return employee, nil
		}
	}

	list, err := s.driver.ListEmployees(ctx, &FindEmployee{Email: &email})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	s.employeeCache.Set(ctx, employeeCacheKey(email), list[0])
	return list[0], nil
}

// GetEmployeeByEmpID returns the employee with the given employee ID,
// or nil when no such employee exists.
func (s *Store) GetEmployeeByEmpID(ctx context.Context, empID int32) (*Employee, error) {
	list, err := s.driver.ListEmployees(ctx, &FindEmployee{EmpID: &empID})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// GetEmployeeByCode returns the employee with the given employee code,
// case-insensitive, or nil when no such employee exists.
func (s *Store) GetEmployeeByCode(ctx context.Context, code string) (*Employee, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	list, err := s.driver.ListEmployees(ctx, &FindEmployee{EmployeeCode: &code})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func employeeCacheKey(email string) string {
	return fmt.Sprintf("employee:%s", strings.ToLower(email))
}
