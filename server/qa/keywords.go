package qa

// DomainVocabulary is the fixed allow-list of HR terms that keyword
// scoring operates on. Tokens outside this set never contribute to a
// keyword score, which keeps two unrelated chit-chat strings from
// looking similar just because they share stop words.
var DomainVocabulary = newTermSet(
	// Policy areas
	"policy", "policies", "attendance", "leave", "work", "home", "wfh", "dress",
	"code", "conduct", "handbook", "onboarding", "performance", "reimbursement",
	"device", "password", "software", "helpdesk", "it", "support", "acceptable",
	"use", "sop", "procedure",

	// Benefits and compensation
	"benefits", "salary", "compensation", "bonus", "insurance", "health",
	"dental", "vision", "wellness",

	// Time and attendance
	"time", "hours", "tardiness", "late", "early", "overtime", "schedule",
	"flexible",

	// Leave and time off
	"vacation", "holiday", "sick", "emergency", "pto", "paid", "unpaid",
	"carry", "over",

	// Workplace behavior
	"respect", "dignity", "harassment", "discrimination", "ethics", "ethical",
	"unethical", "violation", "report", "retaliation",

	// Training and development
	"training", "development", "certification", "workshop", "conference",
	"career",

	// General HR terms
	"hr", "human", "resource", "employee", "employer", "company",
	"organization", "workplace", "manager", "supervisor",

	// Greetings and small talk
	"hello", "hi", "hey", "good", "morning", "afternoon", "evening", "how",
	"are", "you", "feel", "ok", "well", "going", "everything", "fine", "great",
	"thanks", "thank", "welcome", "bye", "goodbye",
)

// PolicyTerms is the subset of the vocabulary that marks a question as
// policy-sensitive. A query containing any of these must only match a
// corpus question that shares at least one of them.
var PolicyTerms = newTermSet(
	"policy", "policies", "attendance", "leave", "wfh", "dress", "conduct",
	"handbook", "onboarding", "performance", "reimbursement", "it", "device",
	"password", "software", "helpdesk",
)

// TermSet is an unordered set of vocabulary tokens.
type TermSet map[string]struct{}

func newTermSet(terms ...string) TermSet {
	set := make(TermSet, len(terms))
	for _, t := range terms {
		set[t] = struct{}{}
	}
	return set
}

// Contains reports whether term is in the set.
func (s TermSet) Contains(term string) bool {
	_, ok := s[term]
	return ok
}

// Intersect returns the terms present in both sets.
func (s TermSet) Intersect(other TermSet) TermSet {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(TermSet)
	for t := range small {
		if large.Contains(t) {
			out[t] = struct{}{}
		}
	}
	return out
}

// ExtractKeywords normalizes text and returns the subset of its tokens
// found in the DomainVocabulary. Empty input or no domain terms yields
// an empty set, never an error.
func ExtractKeywords(text string) TermSet {
	out := make(TermSet)
	for _, token := range tokenize(Normalize(text)) {
		if DomainVocabulary.Contains(token) {
			out[token] = struct{}{}
		}
	}
	return out
}

// extractPolicyTerms returns the PolicyTerms present in text.
func extractPolicyTerms(text string) TermSet {
	return ExtractKeywords(text).Intersect(PolicyTerms)
}
