package qa

import "strings"

// Decision reasons surfaced to callers so they can branch on why local
// resolution did or did not accept a candidate.
const (
	ReasonAccepted                 = "accepted"
	ReasonBelowThreshold           = "below_threshold"
	ReasonPolicyKeywordMismatch    = "policy_keyword_mismatch"
	ReasonShortQuestionLowKeywords = "short_question_low_keyword_overlap"
	ReasonNoCandidates             = "no_candidates"
)

// DefaultThresholdBase is the acceptance cutoff before per-query
// adjustments. One constant governs both the ranking pass and the
// final acceptance test.
const DefaultThresholdBase = 0.70

const (
	shortQuestionTokens  = 3
	longQuestionTokens   = 10
	shortQuestionFloor   = 0.4
	policyThresholdFloor = 0.75
)

// MatchDecision is the terminal output of local resolution.
type MatchDecision struct {
	Accepted      bool
	Matched       *QAPair
	CombinedScore float64
	Reason        string
}

// ThresholdPolicy decides whether the best surviving candidate clears
// an acceptance threshold that adapts to the query's shape. Short
// ambiguous queries get a slightly lower bar, long specific queries a
// higher one, and policy queries must both clear a floor and share a
// policy term with the matched question.
type ThresholdPolicy struct {
	Base float64
}

// NewThresholdPolicy returns a policy with the default base threshold.
func NewThresholdPolicy() *ThresholdPolicy {
	return &ThresholdPolicy{Base: DefaultThresholdBase}
}

// Decide walks the ranked shortlist in order, disqualifies candidates
// that fail the consistency rules, and accepts the best surviving
// combined score iff it clears the adaptive threshold.
func (p *ThresholdPolicy) Decide(normalizedQuery string, candidates []CandidateMatch, snapshot *Snapshot) MatchDecision {
	if len(candidates) == 0 {
		return MatchDecision{Reason: ReasonNoCandidates}
	}

	tokens := tokenCount(normalizedQuery)
	queryPolicyTerms := extractPolicyTerms(normalizedQuery)

	var best *CandidateMatch
	firstRejectReason := ""
	for i := range candidates {
		candidate := &candidates[i]

		// A policy-flavored query may only match a question that shares
		// at least one policy term with it.
		if len(queryPolicyTerms) > 0 {
			candidatePolicyTerms := extractPolicyTerms(candidate.Question)
			if len(queryPolicyTerms.Intersect(candidatePolicyTerms)) == 0 {
				if firstRejectReason == "" {
					firstRejectReason = ReasonPolicyKeywordMismatch
				}
				continue
			}
		}

		// Short queries carry little semantic signal, so demand real
		// keyword overlap before trusting the combined score.
		if tokens <= shortQuestionTokens && candidate.KeywordScore < shortQuestionFloor {
			if firstRejectReason == "" {
				firstRejectReason = ReasonShortQuestionLowKeywords
			}
			continue
		}

		if best == nil || candidate.CombinedScore > best.CombinedScore {
			best = candidate
		}
	}

	if best == nil {
		if firstRejectReason == "" {
			firstRejectReason = ReasonNoCandidates
		}
		return MatchDecision{Reason: firstRejectReason}
	}

	threshold := p.Base
	switch {
	case tokens <= shortQuestionTokens:
		threshold -= 0.05
	case tokens >= longQuestionTokens:
		threshold += 0.10
	}

	if strings.Contains(normalizedQuery, "policy") {
		if threshold < policyThresholdFloor {
			threshold = policyThresholdFloor
		}
		// Defense in depth: even a surviving candidate is rejected when
		// its question text carries no policy vocabulary at all.
		if len(extractPolicyTerms(best.Question)) == 0 {
			return MatchDecision{CombinedScore: best.CombinedScore, Reason: ReasonPolicyKeywordMismatch}
		}
	}

	if best.CombinedScore < threshold {
		return MatchDecision{CombinedScore: best.CombinedScore, Reason: ReasonBelowThreshold}
	}

	pair := snapshot.Pair(best.Index)
	return MatchDecision{
		Accepted:      true,
		Matched:       &pair,
		CombinedScore: best.CombinedScore,
		Reason:        ReasonAccepted,
	}
}
