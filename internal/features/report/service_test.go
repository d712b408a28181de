package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"voicelens/internal/features/billing"
	"voicelens/internal/features/catalog"
	"voicelens/internal/features/entitlement"
	"voicelens/internal/features/grievance"

	"go.uber.org/zap"
)

type fakeGrievanceService struct {
	grievances []grievance.Grievance
	err        error
}

func (f *fakeGrievanceService) FetchByCompany(ctx context.Context, companyID string) ([]grievance.Grievance, error) {
	return f.grievances, f.err
}

func (f *fakeGrievanceService) Submit(ctx context.Context, userID, companyID string, req *grievance.SubmitRequest) (*grievance.Grievance, int, error) {
	return nil, 0, errors.New("not used")
}

func (f *fakeGrievanceService) ExportToExcel(ctx context.Context, companyID string) ([]byte, string, error) {
	return nil, "", errors.New("not used")
}

func (f *fakeGrievanceService) SweepCache() {}

type fakeEntitlementService struct {
	ent entitlement.Entitlement
}

func (f *fakeEntitlementService) Resolve(ctx context.Context, companyID string) entitlement.Entitlement {
	return f.ent
}

type fakeBillingService struct{}

func (f *fakeBillingService) SinglePurchaseIntent(reportID, title, companyID, managerID string) billing.PurchaseIntent {
	return billing.PurchaseIntent{
		ReportID: reportID,
		Title:    title,
		Amount:   billing.SingleReportPrice,
		Currency: billing.Currency,
		CustomID: companyID + "|" + managerID + "|" + reportID,
	}
}

func (f *fakeBillingService) SubscriptionIntent(companyID string) billing.SubscriptionIntent {
	return billing.SubscriptionIntent{
		Amount:   billing.SubscriptionPrice,
		Currency: billing.Currency,
		Interval: billing.SubscriptionIntervals,
		CustomID: companyID,
	}
}

func (f *fakeBillingService) ProcessWebhookEvent(ctx context.Context, event *billing.WebhookEvent) error {
	return errors.New("not used")
}

type fakeGenerator struct {
	calls []string
}

func (f *fakeGenerator) Generate(ctx context.Context, def catalog.Definition, grievances []grievance.Grievance) string {
	f.calls = append(f.calls, def.ID)
	return "content for " + def.ID
}

func newTestService(gs grievance.GrievanceService, ent entitlement.Entitlement, gen Generator) ReportService {
	return NewReportService(
		gs,
		&fakeEntitlementService{ent: ent},
		&fakeBillingService{},
		gen,
		NewRenderHub(),
		zap.NewNop(),
	)
}

func TestRenderDashboardPartialEntitlement(t *testing.T) {
	gs := &fakeGrievanceService{grievances: []grievance.Grievance{
		{ID: "g1", Details: "a"}, {ID: "g2", Details: "b"}, {ID: "g3", Details: "c"},
	}}
	ent := entitlement.Entitlement{
		Subscribed:       false,
		PurchasedReports: map[string]bool{"workload_analysis": true},
	}
	gen := &fakeGenerator{}
	svc := newTestService(gs, ent, gen)

	viewer := Viewer{ID: "mgr-1", CompanyID: "co-1", Role: "manager"}
	view, err := svc.RenderDashboard(context.Background(), "co-1", viewer)
	if err != nil {
		t.Fatalf("RenderDashboard() error = %v", err)
	}

	if view.GrievanceCount != 3 {
		t.Errorf("GrievanceCount = %d, want 3", view.GrievanceCount)
	}
	if view.Subscribed {
		t.Error("Subscribed = true, want false")
	}
	if len(view.Blocks) != 10 {
		t.Fatalf("rendered %d blocks, want 10", len(view.Blocks))
	}

	// Block order matches catalog display order
	defs := catalog.Definitions()
	for i, block := range view.Blocks {
		if block.ReportID != defs[i].ID {
			t.Errorf("block %d = %q, want %q", i, block.ReportID, defs[i].ID)
		}
	}

	for _, block := range view.Blocks {
		switch block.ReportID {
		case catalog.ReportIntro:
			if block.Locked || block.Marker != MarkerFree {
				t.Errorf("intro block locked=%v marker=%q, want unlocked free", block.Locked, block.Marker)
			}
			if block.Content == "" {
				t.Error("intro block has no content")
			}
		case "workload_analysis":
			if block.Locked || block.Marker != MarkerFull {
				t.Errorf("purchased block locked=%v marker=%q, want unlocked full", block.Locked, block.Marker)
			}
		default:
			if !block.Locked || block.Marker != MarkerLocked {
				t.Errorf("block %q locked=%v marker=%q, want locked", block.ReportID, block.Locked, block.Marker)
			}
			if block.Content != "" {
				t.Errorf("locked block %q leaked content %q", block.ReportID, block.Content)
			}
			if block.Purchase == nil || block.Subscription == nil {
				t.Fatalf("locked block %q missing purchase intents", block.ReportID)
			}
			if block.Purchase.ReportID != block.ReportID {
				t.Errorf("purchase intent names report %q, want %q", block.Purchase.ReportID, block.ReportID)
			}
			if !strings.Contains(block.Purchase.CustomID, block.ReportID) {
				t.Errorf("purchase correlation payload %q missing report id", block.Purchase.CustomID)
			}
		}
	}

	// Only unlocked reports reach the generator
	if len(gen.calls) != 2 {
		t.Errorf("generator called for %v, want intro and workload only", gen.calls)
	}
}

func TestRenderDashboardSuperAdminUnlocksEverything(t *testing.T) {
	gs := &fakeGrievanceService{grievances: []grievance.Grievance{{ID: "g1"}}}
	// Resolver would deny everything; the role must win without consulting it.
	svc := newTestService(gs, entitlement.NoEntitlement(), &fakeGenerator{})

	viewer := Viewer{ID: "root-1", CompanyID: "co-master", Role: "super_admin"}
	view, err := svc.RenderDashboard(context.Background(), "co-2", viewer)
	if err != nil {
		t.Fatalf("RenderDashboard() error = %v", err)
	}

	for _, block := range view.Blocks {
		if block.Locked {
			t.Errorf("block %q locked for super admin", block.ReportID)
		}
	}
}

func TestRenderDashboardGrievanceFetchFailure(t *testing.T) {
	gs := &fakeGrievanceService{err: errors.New("store down")}
	ent := entitlement.Entitlement{Subscribed: true, PurchasedReports: map[string]bool{}}
	gen := &fakeGenerator{}
	svc := newTestService(gs, ent, gen)

	viewer := Viewer{ID: "mgr-1", CompanyID: "co-1", Role: "manager"}
	view, err := svc.RenderDashboard(context.Background(), "co-1", viewer)
	if err != nil {
		t.Fatalf("render must survive a grievance fetch failure, got %v", err)
	}

	if view.GrievanceCount != 0 {
		t.Errorf("GrievanceCount = %d, want 0", view.GrievanceCount)
	}
	if len(view.Blocks) != 10 {
		t.Errorf("rendered %d blocks, want the full catalog", len(view.Blocks))
	}
}

func TestRenderHubDeliversEvents(t *testing.T) {
	hub := NewRenderHub()
	events, cancel := hub.Subscribe()
	defer cancel()

	want := RenderEvent{CompanyID: "co-1", ReportID: "ai_intro", Status: StatusGenerating}
	hub.Publish(want)

	select {
	case got := <-events:
		if got != want {
			t.Errorf("received %+v, want %+v", got, want)
		}
	default:
		t.Fatal("no event delivered")
	}
}

func TestRenderHubPublishNeverBlocks(t *testing.T) {
	hub := NewRenderHub()
	_, cancel := hub.Subscribe()
	defer cancel()

	// Far more events than any subscriber buffer; must not deadlock.
	for i := 0; i < 1000; i++ {
		hub.Publish(RenderEvent{ReportID: "ai_intro", Status: StatusGenerating})
	}
}
