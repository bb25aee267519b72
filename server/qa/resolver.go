package qa

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/orgai/hr-assistant/server/ai"
)

// Generator is the generative-model collaborator used when local
// resolution fails. *ai.Provider satisfies it.
type Generator interface {
	Chat(ctx context.Context, messages []ai.Message) (string, error)
}

// DocumentIntake is the document-request collaborator consumed by the
// intent shortcuts. It owns the fixed document-type catalog and all
// request-flow copy.
type DocumentIntake interface {
	// Menu returns the numbered list of requestable document types.
	Menu() string
	// DocumentName maps a menu choice to a document name.
	DocumentName(choice int) (string, bool)
	// DetailsPrompt returns the per-document detail-collection prompt.
	DetailsPrompt(documentName string) string
	// DetailsAcknowledgment confirms receipt of submitted details.
	DetailsAcknowledgment() string
	// SpecificGuidance returns canned guidance when the question names a
	// known document directly.
	SpecificGuidance(question string) (string, bool)
}

const (
	emptyQuestionReply = "Please provide a question so I can help you."

	documentChoiceMin = 1
	documentChoiceMax = 16
)

var greetingPhrases = []string{
	"hello", "hi", "hey", "good morning", "good afternoon", "good evening",
	"how are you",
}

var emotionPhrases = []string{
	"how are you", "how do you feel", "are you ok", "are you well",
	"how is it going", "how is everything",
}

var capabilityPhrases = []string{
	"what can you do", "help", "capabilities", "features",
}

var documentPhrases = []string{
	"document", "need document", "request document", "get document",
	"want document", "experience letter", "employment letter", "salary slip",
	"form 16", "bonafide", "certificate", "noc", "relieving letter",
	"offer letter", "appointment letter", "promotion letter", "pf statement",
	"uan details", "medical insurance", "id card", "visa support",
	"travel authorization",
}

var detailFieldMarkers = []string{
	"name:", "employee id:", "id:", "department:", "designation:",
	"joining date:", "purpose:",
}

// Resolver answers employee questions with a local-first pipeline:
// cheap deterministic shortcuts, then scored corpus lookup, then a
// whole-corpus keyword scan, and only then the generative model.
// Failures are converted into helpful text; no error crosses Answer.
type Resolver struct {
	corpus    *Corpus
	ranker    *Ranker
	policy    *ThresholdPolicy
	generator Generator
	documents DocumentIntake
	orgName   string

	// Fallback thresholds for the whole-corpus keyword scan.
	keywordScanFloor   float64
	keywordAcceptFloor float64
}

// NewResolver wires the pipeline. generator and documents may be nil,
// in which case the corresponding stages are skipped.
func NewResolver(corpus *Corpus, ranker *Ranker, policy *ThresholdPolicy, generator Generator, documents DocumentIntake, orgName string) *Resolver {
	if policy == nil {
		policy = NewThresholdPolicy()
	}
	return &Resolver{
		corpus:             corpus,
		ranker:             ranker,
		policy:             policy,
		generator:          generator,
		documents:          documents,
		orgName:            orgName,
		keywordScanFloor:   0.5,
		keywordAcceptFloor: 0.6,
	}
}

// Answer resolves one question. Always returns a non-empty reply.
func (r *Resolver) Answer(ctx context.Context, question string) string {
	question = strings.TrimSpace(question)
	if question == "" {
		return emptyQuestionReply
	}

	normalized := Normalize(question)
	snapshot := r.corpus.Snapshot()

	if answer, ok := r.shortcutAnswer(normalized, snapshot); ok {
		return answer
	}
	if answer, ok := r.documentIntent(question); ok {
		return answer
	}

	if r.ranker != nil {
		candidates := r.ranker.Rank(ctx, normalized, snapshot)
		decision := r.policy.Decide(normalized, candidates, snapshot)
		if decision.Accepted {
			return decision.Matched.Answer
		}
	}

	if answer, ok := r.keywordFallback(question, normalized, snapshot); ok {
		return answer
	}

	return r.generativeFallback(ctx, question)
}

// shortcutAnswer handles greetings, small talk, and capability
// questions with a literal corpus scan, bypassing scoring and
// embedding calls entirely.
func (r *Resolver) shortcutAnswer(normalized string, snapshot *Snapshot) (string, bool) {
	if containsAny(normalized, greetingPhrases) {
		for _, pair := range snapshot.Pairs() {
			corpusQuestion := strings.ToLower(pair.Question)
			if strings.Contains(normalized, corpusQuestion) || strings.Contains(corpusQuestion, normalized) {
				return pair.Answer, true
			}
		}
	}

	if containsAny(normalized, emotionPhrases) {
		for _, pair := range snapshot.Pairs() {
			if strings.Contains(strings.ToLower(pair.Question), "how are you") {
				return pair.Answer, true
			}
		}
	}

	if containsAny(normalized, capabilityPhrases) {
		for _, pair := range snapshot.Pairs() {
			corpusQuestion := strings.ToLower(pair.Question)
			if strings.Contains(corpusQuestion, "what can you do") || strings.Contains(corpusQuestion, "help") {
				return pair.Answer, true
			}
		}
	}

	return "", false
}

// documentIntent routes document-request turns: a bare menu number, a
// details submission, or a question naming a document type.
func (r *Resolver) documentIntent(question string) (string, bool) {
	if r.documents == nil {
		return "", false
	}

	if choice, err := strconv.Atoi(strings.TrimSpace(question)); err == nil {
		if choice < documentChoiceMin || choice > documentChoiceMax {
			return "", false
		}
		if name, ok := r.documents.DocumentName(choice); ok {
			return r.documents.DetailsPrompt(name), true
		}
		return "", false
	}

	lower := strings.ToLower(question)

	if containsAny(lower, detailFieldMarkers) {
		return r.documents.DetailsAcknowledgment(), true
	}

	if containsAny(lower, documentPhrases) {
		if guidance, ok := r.documents.SpecificGuidance(question); ok {
			return guidance, true
		}
		return r.documents.Menu(), true
	}

	return "", false
}

// keywordFallback scans the whole corpus lexically. It recovers strong
// overlap matches when the embedding path is unavailable or scored
// poorly, under stricter thresholds than the ranked path.
func (r *Resolver) keywordFallback(question, normalized string, snapshot *Snapshot) (string, bool) {
	if len(ExtractKeywords(question)) == 0 {
		return "", false
	}

	queryPolicyTerms := extractPolicyTerms(normalized)

	bestScore := 0.0
	bestIndex := -1
	for i, pair := range snapshot.Pairs() {
		score := KeywordSimilarity(question, pair.Question)
		if score <= bestScore || score <= r.keywordScanFloor {
			continue
		}
		if len(queryPolicyTerms) > 0 {
			candidateTerms := extractPolicyTerms(pair.Question)
			if len(queryPolicyTerms.Intersect(candidateTerms)) == 0 {
				continue
			}
		}
		bestScore = score
		bestIndex = i
	}

	if bestIndex < 0 || bestScore <= r.keywordAcceptFloor {
		return "", false
	}
	return snapshot.Pair(bestIndex).Answer, true
}

// generativeFallback forwards the verbatim question to the chat model.
// Retries live inside the provider; a terminal failure yields the
// static fallback so callers always get text.
func (r *Resolver) generativeFallback(ctx context.Context, question string) string {
	if r.generator == nil {
		return r.fatalFallback(question)
	}

	answer, err := r.generator.Chat(ctx, []ai.Message{
		ai.SystemPrompt(r.systemInstruction()),
		ai.UserMessage(question),
	})
	if err != nil || strings.TrimSpace(answer) == "" {
		return r.fatalFallback(question)
	}
	return strings.TrimSpace(answer)
}

func (r *Resolver) systemInstruction() string {
	return fmt.Sprintf(`You are an AI assistant for %s.
Answer questions about company policies, procedures, and general HR matters.
Be helpful, professional, and accurate. If you are not sure about something, say so.

Available policy topics:
- Attendance Policy (work hours, tardiness)
- Leave Policy (20 days annual leave, submission requirements)
- Work From Home Policy (3 days/week, manager approval)
- Dress Code Policy (business casual)
- Performance Review Policy (bi-annual reviews)
- Reimbursement Policy (30-day submission, receipts required)
- Code of Conduct (respect, zero tolerance for harassment)
- Employee Handbook (mission, values, policies)
- Onboarding (2-week program, mandatory training)
- IT Policies (device, password, software, helpdesk)

Guidelines:
- For general policy questions, provide an overview of the policy
- For specific scenarios, provide practical guidance
- Include contact information when relevant
- Be friendly and professional in tone
- If the question is unclear, ask for clarification
- For greetings, respond warmly and professionally`, r.orgName)
}

func (r *Resolver) fatalFallback(question string) string {
	return fmt.Sprintf("Hello! I'm your %s AI Assistant. I can help you with HR questions, document requests, and PDF processing. You asked: %q. How can I assist you today?", r.orgName, question)
}

// Status reports component readiness for the health endpoint.
type Status struct {
	DatasetLoaded   bool `json:"datasetLoaded"`
	EmbeddingsReady bool `json:"embeddingsReady"`
	GeneratorReady  bool `json:"generatorReady"`
	DocumentsReady  bool `json:"documentsReady"`
	TotalPairs      int  `json:"totalPairs"`
}

// Status returns the resolver's current readiness snapshot.
func (r *Resolver) Status() Status {
	snapshot := r.corpus.Snapshot()
	return Status{
		DatasetLoaded:   snapshot.Len() > 0,
		EmbeddingsReady: snapshot.Indexed(),
		GeneratorReady:  r.generator != nil,
		DocumentsReady:  r.documents != nil,
		TotalPairs:      snapshot.Len(),
	}
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
