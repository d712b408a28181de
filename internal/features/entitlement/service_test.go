package entitlement

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeRepo struct {
	subscribed    bool
	subErr        error
	purchases     []string
	purchasesErr  error
	recorded      []*ReportPurchase
	existingTxIDs map[string]bool
}

func (f *fakeRepo) HasActiveSubscription(ctx context.Context, companyID string) (bool, error) {
	return f.subscribed, f.subErr
}

func (f *fakeRepo) PurchasedReportTypes(ctx context.Context, companyID string) ([]string, error) {
	return f.purchases, f.purchasesErr
}

func (f *fakeRepo) RecordPurchase(ctx context.Context, p *ReportPurchase) error {
	f.recorded = append(f.recorded, p)
	return nil
}

func (f *fakeRepo) PurchaseExists(ctx context.Context, transactionID string) (bool, error) {
	return f.existingTxIDs[transactionID], nil
}

func (f *fakeRepo) UpsertActiveSubscription(ctx context.Context, companyID, providerSubscriptionID string) error {
	return nil
}

func (f *fakeRepo) CancelSubscriptionByProviderID(ctx context.Context, providerSubscriptionID string) error {
	return nil
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name          string
		repo          *fakeRepo
		wantSub       bool
		wantPurchased []string
	}{
		{
			name:          "subscribed with purchases",
			repo:          &fakeRepo{subscribed: true, purchases: []string{"workload_analysis", "burnout_risk"}},
			wantSub:       true,
			wantPurchased: []string{"workload_analysis", "burnout_risk"},
		},
		{
			name:    "nothing",
			repo:    &fakeRepo{},
			wantSub: false,
		},
		{
			name:    "subscription query fails locks everything",
			repo:    &fakeRepo{subscribed: true, subErr: errors.New("connection refused"), purchases: []string{"workload_analysis"}},
			wantSub: false,
		},
		{
			name:    "purchase query fails keeps subscription",
			repo:    &fakeRepo{subscribed: true, purchasesErr: errors.New("timeout")},
			wantSub: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewEntitlementService(tt.repo, zap.NewNop())
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			ent := svc.Resolve(ctx, "company-1")

			if ent.Subscribed != tt.wantSub {
				t.Errorf("Subscribed = %v, want %v", ent.Subscribed, tt.wantSub)
			}
			if len(ent.PurchasedReports) != len(tt.wantPurchased) {
				t.Fatalf("PurchasedReports has %d entries, want %d", len(ent.PurchasedReports), len(tt.wantPurchased))
			}
			for _, id := range tt.wantPurchased {
				if !ent.HasPurchased(id) {
					t.Errorf("HasPurchased(%q) = false, want true", id)
				}
			}
		})
	}
}

func TestResolveFailSafeNeverPanicsOnLookup(t *testing.T) {
	repo := &fakeRepo{subErr: errors.New("down")}
	svc := NewEntitlementService(repo, zap.NewNop())

	ent := svc.Resolve(context.Background(), "company-1")

	// The fail-safe snapshot must still answer membership queries.
	if ent.HasPurchased("workload_analysis") {
		t.Error("fail-safe snapshot must not report purchases")
	}
}

func TestSuperAdminEntitlement(t *testing.T) {
	ent := SuperAdminEntitlement()
	if !ent.Subscribed {
		t.Error("super admin snapshot must pass the subscription leg of the gate")
	}
}

func TestNoEntitlement(t *testing.T) {
	ent := NoEntitlement()
	if ent.Subscribed || ent.HasPurchased("ai_intro") {
		t.Error("NoEntitlement() must grant nothing")
	}
}
