package report

import (
	"encoding/json"
	"fmt"

	"voicelens/internal/features/grievance"
)

// serializeGrievances renders the grievance set as JSON records for prompt
// embedding.
func serializeGrievances(grievances []grievance.Grievance) string {
	data, err := json.Marshal(grievances)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// buildPlainPrompt is the free-form strategy prompt: the model replies with
// markdown that is returned to the dashboard verbatim.
func buildPlainPrompt(title string, grievances []grievance.Grievance) string {
	return fmt.Sprintf(`You are a management consulting AI. Analyze the following employee grievance data (JSON records) and write a report for company leadership on the theme "%s".

Data: %s

Keep the report between 300 and 500 words and format it with markdown for readability.`,
		title, serializeGrievances(grievances))
}

// buildStructuredPrompt mandates the exact JSON schema the intro report is
// parsed into. The response is requested in JSON-only mode; any deviation is
// handled by the formatter's fallback path.
func buildStructuredPrompt(grievances []grievance.Grievance) string {
	return fmt.Sprintf(`You are a management consulting AI specializing in AI adoption. Analyze the following employee grievance data (JSON records) and respond with a single JSON object only, no surrounding prose, matching exactly this schema:

{
  "summary": string,              // executive summary, at least 200 characters
  "ai_readiness_score": integer,  // 0-100
  "severity_chart": {
    "manual_work": integer,       // 1-5
    "communication": integer,     // 1-5
    "knowledge_silo": integer,    // 1-5
    "workflow": integer           // 1-5
  },
  "ai_solutions": [               // exactly 3 proposals
    {
      "title": string,
      "pain_point": string,            // at least 150 characters
      "solution_architecture": string, // at least 150 characters
      "roi_projection": string         // at least 100 characters, quantitative
    }
  ],
  "points_earned": integer
}

Data: %s`,
		serializeGrievances(grievances))
}
