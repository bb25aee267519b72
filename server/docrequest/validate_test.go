package docrequest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orgai/hr-assistant/store"
)

func TestValidateDetailsForm(t *testing.T) {
	complete := `{"employeeName":"Asha Rao","employeeId":"EMP042","designation":"Engineer","department":"Platform","joiningDate":"2021-04-01"}`
	ok, message := ValidateDetails(complete, 1)
	assert.True(t, ok)
	assert.Equal(t, "Details look good!", message)

	missingBase := `{"employeeName":"Asha Rao","employeeId":"EMP042"}`
	ok, message = ValidateDetails(missingBase, 1)
	assert.False(t, ok)
	assert.Contains(t, message, "Designation")
	assert.Contains(t, message, "Department")
	assert.Contains(t, message, "Joining Date")
}

func TestValidateDetailsDocumentSpecificFields(t *testing.T) {
	base := `{"employeeName":"Asha Rao","employeeId":"EMP042","designation":"Engineer","department":"Platform","joiningDate":"2021-04-01"}`

	// Experience certificates additionally need a relieving date.
	ok, message := ValidateDetails(base, 2)
	assert.False(t, ok)
	assert.Contains(t, message, "Relieving Date")

	withRelieving := `{"employeeName":"Asha Rao","employeeId":"EMP042","designation":"Engineer","department":"Platform","joiningDate":"2021-04-01","relievingDate":"2024-01-31"}`
	ok, _ = ValidateDetails(withRelieving, 2)
	assert.True(t, ok)

	// Visa support letters need travel fields.
	ok, message = ValidateDetails(base, 16)
	assert.False(t, ok)
	assert.Contains(t, message, "Destination")
	assert.Contains(t, message, "Purpose")
	assert.Contains(t, message, "Duration")
}

func TestValidateDetailsPlainText(t *testing.T) {
	ok, message := ValidateDetails("Name: Asha Rao, Employee ID: EMP042, Purpose: visa", 1)
	assert.True(t, ok)
	assert.Equal(t, "Details look good!", message)

	ok, message = ValidateDetails("please just send it", 1)
	assert.False(t, ok)
	assert.Contains(t, message, "name")
}

func TestConfirmationMessage(t *testing.T) {
	service := &Service{}

	completed := &store.DocumentRequest{
		ID:           "DOC_abc",
		DocumentName: "Experience Certificate",
		Status:       store.DocumentRequestStatusCompleted,
		CreatedTs:    1700000000,
	}
	message := service.ConfirmationMessage(completed)
	assert.Contains(t, message, "generated successfully")
	assert.Contains(t, message, "DOC_abc")

	failed := &store.DocumentRequest{
		ID:           "DOC_def",
		DocumentName: "Visa Support Letter",
		Status:       store.DocumentRequestStatusError,
		Error:        "template missing",
		CreatedTs:    1700000000,
	}
	message = service.ConfirmationMessage(failed)
	assert.Contains(t, message, "encountered an issue")
	assert.Contains(t, message, "template missing")

	pending := &store.DocumentRequest{
		ID:           "DOC_ghi",
		DocumentName: "Salary Slips",
		Status:       store.DocumentRequestStatusPending,
		CreatedTs:    1700000000,
	}
	message = service.ConfirmationMessage(pending)
	assert.Contains(t, message, "submitted to HR")
}
