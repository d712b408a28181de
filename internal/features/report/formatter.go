package report

import (
	"encoding/json"
	"fmt"
	"strings"
)

const solutionDivider = "---"

// FormatStructured parses the structured strategy's raw JSON payload and
// renders it as a markdown document. It never fails: a malformed or
// schema-violating payload produces an error-annotated but displayable
// result that echoes the raw payload for diagnosis.
func FormatStructured(raw string) string {
	var parsed StructuredReport
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return formatParseFailure(raw, err)
	}
	return renderStructured(&parsed)
}

func formatParseFailure(raw string, err error) string {
	var sb strings.Builder
	sb.WriteString("**Report formatting failed.** The model response could not be parsed.\n\n")
	sb.WriteString(fmt.Sprintf("Parse error: %v\n\n", err))
	sb.WriteString("Raw model output:\n\n```\n")
	sb.WriteString(raw)
	sb.WriteString("\n```\n")
	return sb.String()
}

func renderStructured(r *StructuredReport) string {
	var sb strings.Builder

	sb.WriteString("## Executive Summary\n\n")
	sb.WriteString(r.Summary)
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("**AI Readiness Score: %d/100** | **Points Earned: %d**\n\n", r.ReadinessScore, r.PointsEarned))

	sb.WriteString("### Severity Chart\n\n")
	sb.WriteString(fmt.Sprintf("- Manual Work:     %s\n", renderStars(r.SeverityChart.ManualWork)))
	sb.WriteString(fmt.Sprintf("- Communication:   %s\n", renderStars(r.SeverityChart.Communication)))
	sb.WriteString(fmt.Sprintf("- Knowledge Silos: %s\n", renderStars(r.SeverityChart.KnowledgeSilo)))
	sb.WriteString(fmt.Sprintf("- Workflow:        %s\n", renderStars(r.SeverityChart.Workflow)))

	for i, sol := range r.Solutions {
		sb.WriteString(fmt.Sprintf("\n### Proposal %d\n\n", i+1))
		sb.WriteString(fmt.Sprintf("**Title:** %s\n\n", sol.Title))
		sb.WriteString(fmt.Sprintf("**Pain Point & Cause:** %s\n\n", sol.PainPoint))
		sb.WriteString(fmt.Sprintf("**Technical Architecture:** %s\n\n", sol.SolutionArchitecture))
		sb.WriteString(fmt.Sprintf("**Projected ROI:** %s\n", sol.ROIProjection))

		if i < len(r.Solutions)-1 {
			sb.WriteString("\n" + solutionDivider + "\n")
		}
	}

	return sb.String()
}

// renderStars draws a fixed-width five-slot glyph scale. Values outside 1-5
// are clamped so a misbehaving model cannot distort the layout.
func renderStars(score int) string {
	if score < 1 {
		score = 1
	}
	if score > 5 {
		score = 5
	}
	return strings.Repeat("★", score) + strings.Repeat("☆", 5-score) + fmt.Sprintf(" (%d/5)", score)
}
