package report

import (
	"context"

	"voicelens/internal/features/billing"
	"voicelens/internal/features/catalog"
	"voicelens/internal/features/entitlement"
	"voicelens/internal/features/grievance"

	"go.uber.org/zap"
)

type ReportService interface {
	// RenderDashboard walks the report catalog in display order for one
	// company and produces one block per report: full content when the
	// access gate unlocks it, a locked placeholder with purchase intents
	// otherwise. One report's failure never stops the walk.
	RenderDashboard(ctx context.Context, companyID string, viewer Viewer) (*DashboardView, error)
}

type ReportServiceImpl struct {
	GrievanceService   grievance.GrievanceService
	EntitlementService entitlement.EntitlementService
	BillingService     billing.BillingService
	Generator          Generator
	Hub                *RenderHub
	Logger             *zap.Logger
}

func NewReportService(
	grievanceService grievance.GrievanceService,
	entitlementService entitlement.EntitlementService,
	billingService billing.BillingService,
	generator Generator,
	hub *RenderHub,
	logger *zap.Logger,
) ReportService {
	return &ReportServiceImpl{
		GrievanceService:   grievanceService,
		EntitlementService: entitlementService,
		BillingService:     billingService,
		Generator:          generator,
		Hub:                hub,
		Logger:             logger,
	}
}

func (s *ReportServiceImpl) RenderDashboard(ctx context.Context, companyID string, viewer Viewer) (*DashboardView, error) {
	grievances, err := s.GrievanceService.FetchByCompany(ctx, companyID)
	if err != nil {
		// The render must still complete; every unlocked report will show
		// the insufficient-data message.
		s.Logger.Error("grievance fetch failed, rendering with empty set",
			zap.String("company_id", companyID), zap.Error(err))
		grievances = nil
	}

	// Entitlement is resolved fresh per render. Super admins bypass the
	// store entirely: full access is a role property.
	var ent entitlement.Entitlement
	if viewer.IsSuperAdmin() {
		ent = entitlement.SuperAdminEntitlement()
	} else {
		ent = s.EntitlementService.Resolve(ctx, companyID)
	}

	view := &DashboardView{
		CompanyID:      companyID,
		GrievanceCount: len(grievances),
		Subscribed:     ent.Subscribed,
		Blocks:         make([]RenderedReportBlock, 0, len(catalog.Definitions())),
	}

	for _, def := range catalog.Definitions() {
		if catalog.Unlocked(def, ent) {
			view.Blocks = append(view.Blocks, s.renderUnlocked(ctx, def, companyID, grievances))
		} else {
			view.Blocks = append(view.Blocks, s.renderLocked(def, companyID, viewer))
		}
	}

	return view, nil
}

func (s *ReportServiceImpl) renderUnlocked(ctx context.Context, def catalog.Definition, companyID string, grievances []grievance.Grievance) RenderedReportBlock {
	s.Hub.Publish(RenderEvent{CompanyID: companyID, ReportID: def.ID, Title: def.Title, Status: StatusGenerating})

	marker := MarkerFull
	if def.Free {
		marker = MarkerFree
	}

	block := RenderedReportBlock{
		ReportID: def.ID,
		Title:    def.Title,
		Marker:   marker,
		Content:  s.Generator.Generate(ctx, def, grievances),
	}

	s.Hub.Publish(RenderEvent{CompanyID: companyID, ReportID: def.ID, Title: def.Title, Status: StatusRendered})
	return block
}

func (s *ReportServiceImpl) renderLocked(def catalog.Definition, companyID string, viewer Viewer) RenderedReportBlock {
	s.Hub.Publish(RenderEvent{CompanyID: companyID, ReportID: def.ID, Title: def.Title, Status: StatusLocked})

	purchase := s.BillingService.SinglePurchaseIntent(def.ID, def.Title, companyID, viewer.ID)
	subscription := s.BillingService.SubscriptionIntent(companyID)

	return RenderedReportBlock{
		ReportID:     def.ID,
		Title:        def.Title,
		Marker:       MarkerLocked,
		Locked:       true,
		Purchase:     &purchase,
		Subscription: &subscription,
	}
}
