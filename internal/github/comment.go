package github

import (
	"fmt"
	"strings"

	"github.com/cloo-solutions/secubot/internal/domain"
)

// FormatComment renders a verdict as the review comment body: a risk
// badge, the summary, and the referenced guidelines in a collapsible
// section. The comment always carries a risk level and a summary, even
// when the model output could not be parsed; internal errors are never
// shown here.
func FormatComment(verdict domain.ReviewVerdict) string {
	var sb strings.Builder

	sb.WriteString("### 🚨 SecuBot Security Review\n\n")
	sb.WriteString(fmt.Sprintf("**Risk Level**: `%s`\n\n", verdict.RiskLevel.Normalize()))
	sb.WriteString(fmt.Sprintf("**Summary**:\n%s\n\n", verdict.Summary))

	if verdict.UsedContext != "" {
		sb.WriteString("<details><summary> Referenced Security Guidelines </summary>\n\n")
		sb.WriteString(verdict.UsedContext)
		sb.WriteString("\n</details>")
	}

	return sb.String()
}
