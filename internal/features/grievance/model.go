package grievance

import "time"

// Grievance is one employee-submitted complaint record. Immutable once
// created; the dashboard only ever reads collections of these per company.
type Grievance struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	UserID      string    `json:"user_id"`
	Category    string    `json:"category"`
	Details     string    `json:"details"`
	StressLevel int       `json:"stress_level"`
	CreatedAt   time.Time `json:"created_at"`
}

// SubmitRequest is the payload for the employee submission endpoint.
type SubmitRequest struct {
	Category    string `json:"category"`
	Details     string `json:"details"`
	StressLevel *int   `json:"stress_level"`
}
