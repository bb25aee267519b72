package docrequest

import (
	"encoding/json"
	"strings"
)

// FormDetails is the structured payload produced by the form-based
// request flow. Chat-based requests arrive as plain text instead.
type FormDetails struct {
	EmployeeName    string `json:"employeeName"`
	EmployeeID      string `json:"employeeId"`
	Designation     string `json:"designation"`
	Department      string `json:"department"`
	JoiningDate     string `json:"joiningDate"`
	RelievingDate   string `json:"relievingDate"`
	SalaryAmount    string `json:"salaryAmount"`
	AppointmentDate string `json:"appointmentDate"`
	PromotionDate   string `json:"promotionDate"`
	NewDesignation  string `json:"newDesignation"`
	Purpose         string `json:"purpose"`
	NOCPurpose      string `json:"nocPurpose"`
	EffectiveDate   string `json:"effectiveDate"`
	SigningDate     string `json:"signingDate"`
	Reason          string `json:"reason"`
	Destination     string `json:"destination"`
	Duration        string `json:"duration"`
	TravelDate      string `json:"travelDate"`
}

// extraFields lists the document-specific required form fields beyond
// the base employee fields. Keyed by document type number.
var extraFields = map[int][]requiredField{
	2:  {{"Relieving Date", func(d *FormDetails) string { return d.RelievingDate }}},
	3:  {{"Salary Amount", func(d *FormDetails) string { return d.SalaryAmount }}},
	4:  {{"Appointment Date", func(d *FormDetails) string { return d.AppointmentDate }}},
	5:  {{"Promotion Date", func(d *FormDetails) string { return d.PromotionDate }}, {"New Designation", func(d *FormDetails) string { return d.NewDesignation }}},
	6:  {{"Relieving Date", func(d *FormDetails) string { return d.RelievingDate }}},
	7:  {{"Salary Amount", func(d *FormDetails) string { return d.SalaryAmount }}},
	8:  {{"Salary Amount", func(d *FormDetails) string { return d.SalaryAmount }}},
	9:  {{"Salary Amount", func(d *FormDetails) string { return d.SalaryAmount }}, {"Purpose", func(d *FormDetails) string { return d.Purpose }}},
	11: {{"NOC Purpose", func(d *FormDetails) string { return d.NOCPurpose }}, {"Effective Date", func(d *FormDetails) string { return d.EffectiveDate }}},
	12: {{"Signing Date", func(d *FormDetails) string { return d.SigningDate }}},
	13: {{"Reason for Replacement", func(d *FormDetails) string { return d.Reason }}},
	15: {{"Destination", func(d *FormDetails) string { return d.Destination }}, {"Purpose", func(d *FormDetails) string { return d.Purpose }}, {"Duration", func(d *FormDetails) string { return d.Duration }}, {"Travel Date", func(d *FormDetails) string { return d.TravelDate }}},
	16: {{"Destination", func(d *FormDetails) string { return d.Destination }}, {"Purpose", func(d *FormDetails) string { return d.Purpose }}, {"Duration", func(d *FormDetails) string { return d.Duration }}},
}

type requiredField struct {
	label string
	get   func(*FormDetails) string
}

// ValidateDetails checks submitted details for a document type. JSON
// payloads are validated field by field; anything else is treated as a
// chat-typed text blob and only checked for the basic identifiers.
func ValidateDetails(details string, documentType int) (ok bool, message string) {
	var form FormDetails
	if err := json.Unmarshal([]byte(details), &form); err == nil && strings.HasPrefix(strings.TrimSpace(details), "{") {
		return validateForm(&form, documentType)
	}
	return validateText(details)
}

func validateForm(form *FormDetails, documentType int) (bool, string) {
	var missing []string

	base := []requiredField{
		{"Employee Name", func(d *FormDetails) string { return d.EmployeeName }},
		{"Employee ID", func(d *FormDetails) string { return d.EmployeeID }},
		{"Designation", func(d *FormDetails) string { return d.Designation }},
		{"Department", func(d *FormDetails) string { return d.Department }},
		{"Joining Date", func(d *FormDetails) string { return d.JoiningDate }},
	}
	for _, field := range append(base, extraFields[documentType]...) {
		if strings.TrimSpace(field.get(form)) == "" {
			missing = append(missing, field.label)
		}
	}

	if len(missing) > 0 {
		return false, "Please provide: " + strings.Join(missing, ", ")
	}
	return true, "Details look good!"
}

func validateText(details string) (bool, string) {
	lower := strings.ToLower(details)

	var missing []string
	for _, field := range []string{"name", "employee", "id"} {
		if !strings.Contains(lower, field) {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		return false, "Please provide: " + strings.Join(missing, ", ")
	}
	return true, "Details look good!"
}
