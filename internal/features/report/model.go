package report

import "voicelens/internal/features/billing"

// StructuredReport is the parsed document demanded from the model by the
// structured strategy. Field names match the JSON schema the prompt mandates.
type StructuredReport struct {
	Summary        string        `json:"summary"`
	ReadinessScore int           `json:"ai_readiness_score"`
	SeverityChart  SeverityChart `json:"severity_chart"`
	Solutions      []Solution    `json:"ai_solutions"`
	PointsEarned   int           `json:"points_earned"`
}

// SeverityChart scores four problem dimensions from 1 (mild) to 5 (severe).
type SeverityChart struct {
	ManualWork    int `json:"manual_work"`
	Communication int `json:"communication"`
	KnowledgeSilo int `json:"knowledge_silo"`
	Workflow      int `json:"workflow"`
}

// Solution is one improvement proposal inside the structured report.
type Solution struct {
	Title                string `json:"title"`
	PainPoint            string `json:"pain_point"`
	SolutionArchitecture string `json:"solution_architecture"`
	ROIProjection        string `json:"roi_projection"`
}

// Block markers
const (
	MarkerFree   = "free"
	MarkerFull   = "full"
	MarkerLocked = "locked"
)

// RenderedReportBlock is the final per-report output unit of a dashboard
// render. Ephemeral: produced per render, never persisted.
type RenderedReportBlock struct {
	ReportID     string                      `json:"report_id"`
	Title        string                      `json:"title"`
	Marker       string                      `json:"marker"`
	Locked       bool                        `json:"locked"`
	Content      string                      `json:"content,omitempty"`
	Purchase     *billing.PurchaseIntent     `json:"purchase,omitempty"`
	Subscription *billing.SubscriptionIntent `json:"subscription,omitempty"`
}

// DashboardView is one full catalog pass for one company.
type DashboardView struct {
	CompanyID      string                `json:"company_id"`
	GrievanceCount int                   `json:"grievance_count"`
	Subscribed     bool                  `json:"subscribed"`
	Blocks         []RenderedReportBlock `json:"blocks"`
}

// Viewer identifies who requested the render; full access for super admins
// is decided from the role here, never from purchase records.
type Viewer struct {
	ID        string
	CompanyID string
	Role      string
}

func (v Viewer) IsSuperAdmin() bool {
	return v.Role == "super_admin"
}
