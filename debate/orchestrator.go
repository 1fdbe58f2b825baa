// Package debate chains inference calls into the fixed multi-stage debate
// pipeline: two debater statements, a bias audit, and a moderator synthesis.
package debate

import (
	"context"
	"fmt"
	"log"
	"strings"

	"atlas/evidence"
)

// Completer runs one completion with token failover.
type Completer interface {
	Complete(ctx context.Context, modelID, systemPrompt, userPrompt string, maxTokens int) (string, error)
}

// ValidationError indicates a request rejected before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Result is the assembled output of a full debate run. It is produced as a
// unit; partial stage output is never returned or cached.
type Result struct {
	Transcript     map[string]string `json:"debate_transcript"`
	AuditReport    string            `json:"audit_report"`
	FinalSynthesis string            `json:"final_synthesis"`
}

// SupportedModels maps short model keys to fully-qualified model
// identifiers. The set is fixed at startup.
var SupportedModels = map[string]string{
	"llama3":  "meta-llama/Meta-Llama-3-8B-Instruct",
	"mistral": "mistralai/Mistral-7B-Instruct-v0.2",
	"gemma":   "google/gemma-2-9b-it",
	"phi3":    "microsoft/Phi-3-mini-4k-instruct",
}

// DefaultModel is used when a request does not name a model.
const DefaultModel = "llama3"

// Orchestrator runs the debate pipeline over a failover completer.
type Orchestrator struct {
	completer Completer
	evidence  evidence.Source
	cache     *Cache
	maxTokens int
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(completer Completer, source evidence.Source, cache *Cache, maxTokens int) *Orchestrator {
	return &Orchestrator{
		completer: completer,
		evidence:  source,
		cache:     cache,
		maxTokens: maxTokens,
	}
}

// resolveModel validates the request and resolves the model key to its
// fully-qualified identifier.
func resolveModel(topic, modelKey string) (string, string, error) {
	if strings.TrimSpace(topic) == "" {
		return "", "", &ValidationError{Message: "topic must not be empty"}
	}
	if modelKey == "" {
		modelKey = DefaultModel
	}
	modelID, ok := SupportedModels[modelKey]
	if !ok {
		return "", "", &ValidationError{Message: fmt.Sprintf("model %q not supported", modelKey)}
	}
	return modelKey, modelID, nil
}

// RunDebate executes the four-stage pipeline: opening statements from both
// debaters in fixed order, a bias audit over the transcript, a moderator
// synthesis, and assembly. Any stage failure aborts the run; nothing partial
// is returned or cached. A fresh cached result is returned without any
// inference call.
func (o *Orchestrator) RunDebate(ctx context.Context, topic, modelKey string) (*Result, error) {
	modelKey, modelID, err := resolveModel(topic, modelKey)
	if err != nil {
		return nil, err
	}

	if result, ok := o.cache.Get(topic, modelKey); ok {
		log.Printf("cache hit for debate on %q (model %s)", topic, modelKey)
		return result, nil
	}

	evidenceText := o.evidence.Gather(ctx, topic)

	// Stage 1: opening statements.
	transcript := make(map[string]string, len(debaterRoles))
	for _, role := range debaterRoles {
		userPrompt := fmt.Sprintf(
			"Based on your role as the %s, what is your opening statement on the topic of: '%s'?\n\nBackground evidence:\n%s",
			strings.ReplaceAll(role, "_", " "), topic, evidenceText)
		statement, err := o.completer.Complete(ctx, modelID, rolePrompts[role], userPrompt, o.maxTokens)
		if err != nil {
			return nil, fmt.Errorf("opening statement for %s failed: %w", role, err)
		}
		transcript[role] = statement
	}

	// Stage 2: bias audit over the role-headed transcript.
	transcriptText := formatTranscript(topic, transcript)
	auditReport, err := o.completer.Complete(ctx, modelID, rolePrompts[RoleBiasAuditor], transcriptText, o.maxTokens)
	if err != nil {
		return nil, fmt.Errorf("bias audit failed: %w", err)
	}

	// Stage 3: moderator synthesis.
	moderatorInput := fmt.Sprintf("DEBATE TRANSCRIPT:\n%s\n\nBIAS AUDIT REPORT:\n%s", transcriptText, auditReport)
	finalSynthesis, err := o.completer.Complete(ctx, modelID, rolePrompts[RoleModerator], moderatorInput, o.maxTokens)
	if err != nil {
		return nil, fmt.Errorf("moderator synthesis failed: %w", err)
	}

	// Stage 4: assembly. Only a complete result is cached.
	result := &Result{
		Transcript:     transcript,
		AuditReport:    auditReport,
		FinalSynthesis: finalSynthesis,
	}
	o.cache.Put(topic, modelKey, result)
	return result, nil
}

// AnalyzeTopic is the single-role variant: evidence gathering followed by
// one OSINT analyst completion. Analysis results are not cached.
func (o *Orchestrator) AnalyzeTopic(ctx context.Context, topic, modelKey string) (string, error) {
	_, modelID, err := resolveModel(topic, modelKey)
	if err != nil {
		return "", err
	}

	evidenceText := o.evidence.Gather(ctx, topic)
	userPrompt := fmt.Sprintf("Here is the topic for analysis: '%s'.\n\nSource material:\n%s", topic, evidenceText)
	return o.completer.Complete(ctx, modelID, rolePrompts[RoleOSINTAnalyst], userPrompt, o.maxTokens)
}

// formatTranscript renders the opening statements with role headers, in the
// fixed debater order.
func formatTranscript(topic string, transcript map[string]string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Debate Topic: '%s'.\n\n", topic)
	for _, role := range debaterRoles {
		fmt.Fprintf(&sb, "--- STATEMENT FROM: %s ---\n%s\n\n", roleTitle(role), transcript[role])
	}
	return sb.String()
}

// roleTitle renders a role key like "tech_optimist" as "Tech Optimist".
func roleTitle(role string) string {
	words := strings.Split(role, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
