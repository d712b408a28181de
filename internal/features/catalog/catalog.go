package catalog

import "voicelens/internal/features/entitlement"

// Strategy selects how a report's content is produced. The set is closed and
// table-driven: adding an eleventh report is a one-line edit to definitions.
type Strategy string

const (
	// StrategyStructured demands a fixed JSON schema from the model and
	// renders the parsed document. Only the intro report uses it today.
	StrategyStructured Strategy = "structured"
	// StrategyPlain sends a free-text prompt and returns the reply verbatim.
	StrategyPlain Strategy = "plain"
	// StrategyDeferred short-circuits to an under-development placeholder
	// without calling the model, so unfinished report types never spend
	// generation budget.
	StrategyDeferred Strategy = "deferred"
)

// ReportIntro is the distinguished free report with the structured strategy.
const ReportIntro = "ai_intro"

// Definition is one static catalog entry. The catalog is fixed at compile
// time and its order is the display order.
type Definition struct {
	ID       string
	Title    string
	Free     bool
	Strategy Strategy
}

var definitions = []Definition{
	{ID: ReportIntro, Title: "[Free] AI Adoption Insight", Free: true, Strategy: StrategyStructured},
	{ID: "human_relations_analysis", Title: "1. Interpersonal & Communication Analysis", Free: false, Strategy: StrategyDeferred},
	{ID: "workload_analysis", Title: "2. Workload & Schedule Overload Analysis", Free: false, Strategy: StrategyDeferred},
	{ID: "environment_analysis", Title: "3. Workplace Environment & Rule Issues", Free: false, Strategy: StrategyDeferred},
	{ID: "equipment_analysis", Title: "4. Equipment & Tooling Bottlenecks", Free: false, Strategy: StrategyDeferred},
	{ID: "management_feedback", Title: "5. Direct Requests to Management", Free: false, Strategy: StrategyDeferred},
	{ID: "burnout_risk", Title: "6. Burnout Risk Assessment", Free: false, Strategy: StrategyDeferred},
	{ID: "productivity_bottlenecks", Title: "7. Productivity Drag Identification", Free: false, Strategy: StrategyDeferred},
	{ID: "employee_satisfaction", Title: "8. Employee Engagement Forecast", Free: false, Strategy: StrategyDeferred},
	{ID: "retention_strategy", Title: "9. Retention Strategy Proposal", Free: false, Strategy: StrategyDeferred},
}

// Definitions returns the catalog in display order. Callers receive a copy
// so the table cannot be mutated.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Find returns the definition for the given report id.
func Find(id string) (Definition, bool) {
	for _, def := range definitions {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}

// Unlocked is the access gate: a report renders in full when it is free, the
// company holds an active subscription, or the report was bought
// individually. The check is pure and evaluated independently per report.
func Unlocked(def Definition, ent entitlement.Entitlement) bool {
	return def.Free || ent.Subscribed || ent.HasPurchased(def.ID)
}
