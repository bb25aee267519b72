package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/orgai/hr-assistant/server/service/employee"
	"github.com/orgai/hr-assistant/store"
)

type EmployeeResponse struct {
	EmpID        int32  `json:"emp_id"`
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Department   string `json:"department"`
	Designation  string `json:"designation"`
	JoiningDate  string `json:"joining_date"`
}

// SearchEmployees matches the query against names, employee codes, and
// emails.
func (s *APIV1Service) SearchEmployees(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Query parameter q is required")
	}

	limit := 10
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be between 1 and 100")
		}
		limit = parsed
	}

	employees, err := s.Employees.Search(c.Request().Context(), query, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to search employees").SetInternal(err)
	}
	responses := make([]*EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, toEmployeeResponse(e))
	}
	return c.JSON(http.StatusOK, responses)
}

type ValidateEmployeeRequest struct {
	FullName     string `json:"full_name"`
	EmployeeCode string `json:"employee_code"`
	Designation  string `json:"designation"`
	Department   string `json:"department"`
	JoiningDate  string `json:"joining_date"`
}

// ValidateEmployee checks a claimed identity against the directory.
func (s *APIV1Service) ValidateEmployee(c echo.Context) error {
	request := &ValidateEmployeeRequest{}
	if err := c.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}
	if strings.TrimSpace(request.FullName) == "" && strings.TrimSpace(request.EmployeeCode) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Full name or employee code is required")
	}

	result, err := s.Employees.Validate(c.Request().Context(), &employee.ValidationInput{
		FullName:     request.FullName,
		EmployeeCode: request.EmployeeCode,
		Designation:  request.Designation,
		Department:   request.Department,
		JoiningDate:  request.JoiningDate,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to validate employee").SetInternal(err)
	}
	return c.JSON(http.StatusOK, result)
}

func toEmployeeResponse(e *store.Employee) *EmployeeResponse {
	return &EmployeeResponse{
		EmpID:        e.EmpID,
		EmployeeCode: e.EmployeeCode,
		FullName:     e.FullName,
		Email:        e.Email,
		Department:   e.Department,
		Designation:  e.Designation,
		JoiningDate:  e.JoiningDate,
	}
}
