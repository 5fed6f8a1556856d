package service

import (
	"encoding/json"
	"strings"

	"github.com/cloo-solutions/secubot/internal/domain"
)

const defaultSummary = "No summary provided."

// Interpreter parses raw model output into a typed verdict. It never
// fails outward: malformed output degrades to an UNKNOWN verdict carrying
// the raw text, so the pipeline always completes once a model response is
// obtained and a human reviewer still sees what the model said.
type Interpreter struct{}

// NewInterpreter creates a new Interpreter instance.
func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

type verdictPayload struct {
	RiskLevel string `json:"risk_level"`
	Summary   string `json:"summary"`
}

// Interpret extracts the JSON verdict from rawText. Models sometimes wrap
// structured output in a markdown fence despite instructions, so the
// fence is stripped before parsing.
func (i *Interpreter) Interpret(rawText, usedContext string) domain.ReviewVerdict {
	cleaned := stripCodeFence(rawText)

	// A verdict must be a JSON object. Bare values like `null` unmarshal
	// into the struct without error but carry nothing, and would silently
	// discard the raw text.
	if !strings.HasPrefix(cleaned, "{") {
		return unparsedVerdict(rawText, usedContext)
	}

	var payload verdictPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return unparsedVerdict(rawText, usedContext)
	}

	riskLevel := domain.RiskLevel(payload.RiskLevel)
	if payload.RiskLevel == "" {
		riskLevel = domain.RiskLevelUnknown
	}
	summary := payload.Summary
	if summary == "" {
		summary = defaultSummary
	}

	return domain.ReviewVerdict{
		RiskLevel:   riskLevel,
		Summary:     summary,
		UsedContext: usedContext,
	}
}

func unparsedVerdict(rawText, usedContext string) domain.ReviewVerdict {
	return domain.ReviewVerdict{
		RiskLevel:   domain.RiskLevelUnknown,
		Summary:     rawText,
		UsedContext: usedContext,
	}
}

// stripCodeFence removes a leading ```json or ``` marker and a trailing
// ``` marker, then trims surrounding whitespace.
func stripCodeFence(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[len("```json"):]
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = cleaned[len("```"):]
	}
	if strings.HasSuffix(strings.TrimSpace(cleaned), "```") {
		cleaned = strings.TrimSpace(cleaned)
		cleaned = cleaned[:len(cleaned)-len("```")]
	}
	return strings.TrimSpace(cleaned)
}
