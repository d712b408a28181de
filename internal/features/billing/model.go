package billing

// Fixed price points. Payment capture itself happens in the provider's
// client-side widget; the core only produces intent payloads.
const (
	SingleReportPrice     = "300.00"
	SubscriptionPrice     = "3000.00"
	Currency              = "JPY"
	SubscriptionIntervals = "MONTH"
)

// PurchaseIntent is the one-time unlock payload for a single locked report.
// CustomID carries the correlation payload the webhook needs to attribute
// the completed payment.
type PurchaseIntent struct {
	ReportID string `json:"report_id"`
	Title    string `json:"title"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	CustomID string `json:"custom_id"`
}

// SubscriptionIntent is the recurring monthly plan payload.
type SubscriptionIntent struct {
	PlanID   string `json:"plan_id"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Interval string `json:"interval"`
	CustomID string `json:"custom_id"`
}

// purchaseCustomPayload is embedded as JSON in PurchaseIntent.CustomID and
// echoed back by the provider webhook.
type purchaseCustomPayload struct {
	CompanyID  string `json:"company_id"`
	ManagerID  string `json:"manager_id"`
	ReportType string `json:"report_type"`
}

// WebhookEvent is the subset of the PayPal webhook body we consume.
type WebhookEvent struct {
	EventType string          `json:"event_type"`
	Resource  WebhookResource `json:"resource"`
}

type WebhookResource struct {
	ID       string         `json:"id"`
	CustomID string         `json:"custom_id"`
	Custom   string         `json:"custom"`
	Amount   *WebhookAmount `json:"amount"`
}

type WebhookAmount struct {
	Value string `json:"value"`
}

// CustomPayload returns whichever correlation field the provider populated.
func (r WebhookResource) CustomPayload() string {
	if r.CustomID != "" {
		return r.CustomID
	}
	return r.Custom
}
