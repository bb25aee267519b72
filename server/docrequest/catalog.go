// Package docrequest implements the official-document request flow:
// the fixed catalog of requestable documents, the detail-collection
// prompts, detail validation, and request submission.
package docrequest

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DocumentTypeCount is the number of requestable document types.
const DocumentTypeCount = 16

// documentNames maps menu choices to document names. The numbering is
// user-facing: employees reply with a number to pick a document.
var documentNames = map[int]string{
	1:  "Bonafide / Employment Verification Letter",
	2:  "Experience Certificate",
	3:  "Offer Letter Copy",
	4:  "Appointment Letter Copy",
	5:  "Promotion Letter",
	6:  "Relieving Letter",
	7:  "Salary Slips",
	8:  "Form 16 / Tax Documents",
	9:  "Salary Certificate",
	10: "PF Statement / UAN details",
	11: "No Objection Certificate (NOC)",
	12: "Non-Disclosure Agreement Copy",
	13: "ID Card Replacement",
	14: "Medical Insurance Card Copy",
	15: "Business Travel Authorization Letter",
	16: "Visa Support Letter",
}

// Catalog exposes the fixed document-type catalog and its chat copy.
// The zero value is ready to use.
type Catalog struct{}

// Menu returns the numbered document list shown when an employee asks
// for a document without naming one.
func (Catalog) Menu() string {
	var b strings.Builder
	b.WriteString("Sure! Please choose the type of document you need:\n\n")

	choices := make([]int, 0, len(documentNames))
	for choice := range documentNames {
		choices = append(choices, choice)
	}
	sort.Ints(choices)
	for _, choice := range choices {
		fmt.Fprintf(&b, "%d. %s\n", choice, documentNames[choice])
	}

	fmt.Fprintf(&b, "\nPlease reply with the number (1-%d) of the document you need.", DocumentTypeCount)
	return b.String()
}

// DocumentName maps a menu choice to its document name.
func (Catalog) DocumentName(choice int) (string, bool) {
	name, ok := documentNames[choice]
	return name, ok
}

// ValidateChoice resolves free-form user input into a document type:
// either a number 1-16 or a (partial) document name.
func (c Catalog) ValidateChoice(input string) (choice int, name string, ok bool) {
	input = strings.TrimSpace(input)

	if n, err := strconv.Atoi(input); err == nil {
		if name, ok := documentNames[n]; ok {
			return n, name, true
		}
		return 0, "", false
	}

	lower := strings.ToLower(input)
	if lower == "" {
		return 0, "", false
	}
	for n, docName := range documentNames {
		if strings.Contains(strings.ToLower(docName), lower) {
			return n, docName, true
		}
	}
	return 0, "", false
}

// DetailsPrompt returns the detail-collection prompt for a document.
// The required fields vary by document type.
func (Catalog) DetailsPrompt(documentName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You selected %s. Please provide the following details:\n\n", documentName)
	b.WriteString("Note: you can provide these details in a simple text format, or use the form-based system for a better experience.\n\n")

	lower := strings.ToLower(documentName)
	switch {
	case strings.Contains(lower, "bonafide") || strings.Contains(lower, "employment verification"):
		b.WriteString("- Full Name\n- Employee ID\n- Purpose (e.g., bank loan, visa application)\n- Any specific requirements")
	case strings.Contains(lower, "experience"):
		b.WriteString("- Full Name\n- Employee ID\n- Date of joining\n- Date of leaving (if applicable)\n- Purpose")
	case strings.Contains(lower, "offer letter"):
		b.WriteString("- Full Name\n- Employee ID\n- Position/Designation\n- Department\n- Date of offer\n- Purpose of request")
	case strings.Contains(lower, "appointment letter"):
		b.WriteString("- Full Name\n- Employee ID\n- Position/Designation\n- Department\n- Date of appointment\n- Purpose of request")
	case strings.Contains(lower, "salary"):
		b.WriteString("- Full Name\n- Employee ID\n- Time period (e.g., last 3 months, specific month)\n- Purpose")
	case strings.Contains(lower, "form 16") || strings.Contains(lower, "tax"):
		b.WriteString("- Full Name\n- Employee ID\n- Financial year (e.g., 2023-24)\n- Purpose")
	case strings.Contains(lower, "pf") || strings.Contains(lower, "uan"):
		b.WriteString("- Full Name\n- Employee ID\n- UAN number (if known)\n- Purpose")
	case strings.Contains(lower, "noc") || strings.Contains(lower, "no objection"):
		b.WriteString("- Full Name\n- Employee ID\n- Purpose of NOC\n- Duration (if applicable)\n- Any specific conditions")
	case strings.Contains(lower, "id card"):
		b.WriteString("- Full Name\n- Employee ID\n- Reason for replacement (lost, damaged, etc.)\n- Date of incident (if applicable)")
	case strings.Contains(lower, "medical insurance"):
		b.WriteString("- Full Name\n- Employee ID\n- Policy number (if known)\n- Purpose of request")
	case strings.Contains(lower, "visa"):
		b.WriteString("- Full Name\n- Employee ID\n- Destination country\n- Purpose of travel\n- Travel dates\n- Type of visa")
	case strings.Contains(lower, "travel"):
		b.WriteString("- Full Name\n- Employee ID\n- Destination\n- Purpose of travel\n- Travel dates\n- Duration of trip")
	default:
		b.WriteString("- Full Name\n- Employee ID\n- Purpose\n- Any additional requirements")
	}
	return b.String()
}

// DetailsAcknowledgment confirms a chat-submitted details message.
func (Catalog) DetailsAcknowledgment() string {
	return `Document request details received.

Thank you for providing the details! I've received your document request information.

Next steps:
1. Your request has been logged in our system
2. HR will review and process your request
3. You'll receive a confirmation email with tracking details
4. The document will be generated and sent to you within 2-3 business days

If you need immediate assistance, please contact HR directly.`
}

// SpecificGuidance returns canned guidance when the question names one
// of the most commonly requested documents directly. The second return
// is false when the question should get the general menu instead.
func (Catalog) SpecificGuidance(question string) (string, bool) {
	lower := strings.ToLower(question)
	switch {
	case strings.Contains(lower, "experience letter") || strings.Contains(lower, "experience certificate"):
		return specificGuidance("Experience Certificate",
			"Full Name (as per employee records), Employee ID, date of joining, date of leaving (if applicable), and purpose",
			"3-5 business days", 2), true
	case strings.Contains(lower, "employment") && (strings.Contains(lower, "letter") || strings.Contains(lower, "verification")):
		return specificGuidance("Employment Verification Letter",
			"Full Name (as per employee records), Employee ID, and purpose (e.g., bank loan, visa application)",
			"2-3 business days", 1), true
	case strings.Contains(lower, "salary slip") || strings.Contains(lower, "payslip"):
		return specificGuidance("Salary Slips",
			"Full Name (as per employee records), Employee ID, time period, and purpose",
			"1-2 business days", 7), true
	case strings.Contains(lower, "form 16") || strings.Contains(lower, "tax"):
		return specificGuidance("Form 16 / Tax Documents",
			"Full Name (as per employee records), Employee ID, financial year, and purpose",
			"3-5 business days", 8), true
	}
	return "", false
}

func specificGuidance(documentName, requiredInfo, processingTime string, menuOption int) string {
	return fmt.Sprintf(`%s request

Required information: %s.

Processing time: %s.

You can also use the document request system by typing "I need a document" and selecting option %d for %s.`,
		documentName, requiredInfo, processingTime, menuOption, documentName)
}
