package v1

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/orgai/hr-assistant/server/docrequest"
	"github.com/orgai/hr-assistant/server/middleware"
	"github.com/orgai/hr-assistant/server/service/employee"
	"github.com/orgai/hr-assistant/store"
)

type DocumentMenuResponse struct {
	Menu  string   `json:"menu"`
	Types []string `json:"types"`
}

// DocumentMenu lists the requestable document types.
func (s *APIV1Service) DocumentMenu(c echo.Context) error {
	types := make([]string, 0, docrequest.DocumentTypeCount)
	for i := 1; i <= docrequest.DocumentTypeCount; i++ {
		name, _ := s.Documents.DocumentName(i)
		types = append(types, name)
	}
	return c.JSON(http.StatusOK, &DocumentMenuResponse{
		Menu:  s.Documents.Menu(),
		Types: types,
	})
}

type ValidateDetailsRequest struct {
	DocumentType int    `json:"document_type"`
	Details      string `json:"details"`
}

type ValidateDetailsResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// ValidateDocumentDetails checks submitted details for completeness
// without creating a request.
func (s *APIV1Service) ValidateDocumentDetails(c echo.Context) error {
	request := &ValidateDetailsRequest{}
	if err := c.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}
	if _, ok := s.Documents.DocumentName(request.DocumentType); !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid document type. Choose a number between 1 and 16.")
	}
	ok, message := docrequest.ValidateDetails(request.Details, request.DocumentType)
	return c.JSON(http.StatusOK, &ValidateDetailsResponse{Valid: ok, Message: message})
}

type SubmitDocumentRequest struct {
	DocumentType int    `json:"document_type"`
	Details      string `json:"details"`
	Identity     *struct {
		FullName     string `json:"full_name"`
		EmployeeCode string `json:"employee_code"`
		Designation  string `json:"designation"`
		Department   string `json:"department"`
		JoiningDate  string `json:"joining_date"`
	} `json:"identity,omitempty"`
}

type DocumentRequestResponse struct {
	ID           string `json:"id"`
	DocumentType int32  `json:"document_type"`
	DocumentName string `json:"document_name"`
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
	CreatedTs    int64  `json:"created_ts"`
	PDF          string `json:"pdf,omitempty"`
}

// SubmitDocumentRequest validates the requester's identity against the
// directory and files a document request. Generation happens inline
// when a PDF generator is configured.
func (s *APIV1Service) SubmitDocumentRequest(c echo.Context) error {
	request := &SubmitDocumentRequest{}
	if err := c.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}

	requester := "anonymous"
	if claims := middleware.SessionClaims(c); claims != nil {
		requester = claims.Email
	}

	if request.Identity != nil {
		validation, err := s.Employees.Validate(c.Request().Context(), &employee.ValidationInput{
			FullName:     request.Identity.FullName,
			EmployeeCode: request.Identity.EmployeeCode,
			Designation:  request.Identity.Designation,
			Department:   request.Identity.Department,
			JoiningDate:  request.Identity.JoiningDate,
		})
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to validate employee details").SetInternal(err)
		}
		if !validation.Valid {
			return c.JSON(http.StatusUnprocessableEntity, validation)
		}
	}

	result, err := s.Documents.Submit(c.Request().Context(), request.DocumentType, request.Details, requester)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response := toDocumentRequestResponse(result.Request)
	response.Message = s.Documents.ConfirmationMessage(result.Request)
	if len(result.PDF) > 0 {
		response.PDF = base64.StdEncoding.EncodeToString(result.PDF)
	}
	return c.JSON(http.StatusOK, response)
}

// ListMyDocumentRequests returns the caller's request history.
func (s *APIV1Service) ListMyDocumentRequests(c echo.Context) error {
	claims := middleware.SessionClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	requests, err := s.Documents.RequestsFor(c.Request().Context(), claims.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list document requests").SetInternal(err)
	}
	responses := make([]*DocumentRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, toDocumentRequestResponse(request))
	}
	return c.JSON(http.StatusOK, responses)
}

// GetDocumentRequest returns the status of a single request. Callers
// can only see their own requests.
func (s *APIV1Service) GetDocumentRequest(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	request, err := s.Documents.Request(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get document request").SetInternal(err)
	}
	if request == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Document request not found")
	}
	if claims := middleware.SessionClaims(c); claims != nil && request.Requester != claims.Email {
		return echo.NewHTTPError(http.StatusNotFound, "Document request not found")
	}
	response := toDocumentRequestResponse(request)
	response.Message = s.Documents.ConfirmationMessage(request)
	return c.JSON(http.StatusOK, response)
}

func toDocumentRequestResponse(request *store.DocumentRequest) *DocumentRequestResponse {
	return &DocumentRequestResponse{
		ID:           request.ID,
		DocumentType: request.DocumentType,
		DocumentName: request.DocumentName,
		Status:       request.Status,
		CreatedTs:    request.CreatedTs,
	}
}
