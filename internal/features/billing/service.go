package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"voicelens/internal/config"
	"voicelens/internal/features/audit"
	"voicelens/internal/features/entitlement"

	"go.uber.org/zap"
)

// BillingService is the locked-report presenter boundary: it builds purchase
// intent payloads for locked reports and applies provider webhook events to
// the entitlement store. It never captures payments itself.
type BillingService interface {
	SinglePurchaseIntent(reportID, title, companyID, managerID string) PurchaseIntent
	SubscriptionIntent(companyID string) SubscriptionIntent
	ProcessWebhookEvent(ctx context.Context, event *WebhookEvent) error
}

type BillingServiceImpl struct {
	EntitlementRepo entitlement.EntitlementRepository
	AuditService    audit.AuditService
	Config          *config.Config
	Logger          *zap.Logger
}

func NewBillingService(entitlementRepo entitlement.EntitlementRepository, auditService audit.AuditService, cfg *config.Config, logger *zap.Logger) BillingService {
	return &BillingServiceImpl{
		EntitlementRepo: entitlementRepo,
		AuditService:    auditService,
		Config:          cfg,
		Logger:          logger,
	}
}

func (s *BillingServiceImpl) SinglePurchaseIntent(reportID, title, companyID, managerID string) PurchaseIntent {
	payload, _ := json.Marshal(purchaseCustomPayload{
		CompanyID:  companyID,
		ManagerID:  managerID,
		ReportType: reportID,
	})

	return PurchaseIntent{
		ReportID: reportID,
		Title:    title,
		Amount:   SingleReportPrice,
		Currency: Currency,
		CustomID: string(payload),
	}
}

func (s *BillingServiceImpl) SubscriptionIntent(companyID string) SubscriptionIntent {
	return SubscriptionIntent{
		PlanID:   s.Config.PayPalPlanID,
		Amount:   SubscriptionPrice,
		Currency: Currency,
		Interval: SubscriptionIntervals,
		CustomID: companyID,
	}
}

func (s *BillingServiceImpl) ProcessWebhookEvent(ctx context.Context, event *WebhookEvent) error {
	s.Logger.Info("received payment webhook", zap.String("event_type", event.EventType))

	switch event.EventType {
	case "PAYMENT.CAPTURE.COMPLETED":
		return s.applyCapture(ctx, event)

	case "BILLING.SUBSCRIPTION.ACTIVATED", "BILLING.SUBSCRIPTION.UPDATED":
		return s.applyActivation(ctx, event)

	case "BILLING.SUBSCRIPTION.CANCELLED", "BILLING.SUBSCRIPTION.SUSPENDED":
		if err := s.EntitlementRepo.CancelSubscriptionByProviderID(ctx, event.Resource.ID); err != nil {
			return err
		}
		s.AuditService.LogChange(ctx, audit.ActionSubscriptionCanceled, "", "", map[string]interface{}{
			"subscription_id": event.Resource.ID,
		})
		return nil

	default:
		// Unknown event types are acknowledged without action
		s.Logger.Debug("ignoring webhook event", zap.String("event_type", event.EventType))
		return nil
	}
}

func (s *BillingServiceImpl) applyCapture(ctx context.Context, event *WebhookEvent) error {
	raw := event.Resource.CustomPayload()
	if raw == "" {
		return nil
	}

	var meta purchaseCustomPayload
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return fmt.Errorf("invalid custom payload: %w", err)
	}

	// Dedupe on the provider transaction id; webhooks may be redelivered
	exists, err := s.EntitlementRepo.PurchaseExists(ctx, event.Resource.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	amount := 0.0
	if event.Resource.Amount != nil {
		amount, _ = strconv.ParseFloat(event.Resource.Amount.Value, 64)
	}

	purchase := &entitlement.ReportPurchase{
		CompanyID:     meta.CompanyID,
		ManagerID:     meta.ManagerID,
		ReportType:    meta.ReportType,
		TransactionID: event.Resource.ID,
		Amount:        amount,
	}
	if err := s.EntitlementRepo.RecordPurchase(ctx, purchase); err != nil {
		return err
	}

	s.AuditService.LogChange(ctx, audit.ActionPurchaseRecorded, meta.CompanyID, meta.ManagerID, map[string]interface{}{
		"report_type":    meta.ReportType,
		"transaction_id": event.Resource.ID,
	})
	s.Logger.Info("report purchase unlocked",
		zap.String("company_id", meta.CompanyID), zap.String("report_type", meta.ReportType))
	return nil
}

func (s *BillingServiceImpl) applyActivation(ctx context.Context, event *WebhookEvent) error {
	companyID := event.Resource.CustomPayload()
	if strings.HasPrefix(companyID, "{") {
		var meta purchaseCustomPayload
		if err := json.Unmarshal([]byte(companyID), &meta); err == nil {
			companyID = meta.CompanyID
		}
	}
	if companyID == "" {
		return nil
	}

	if err := s.EntitlementRepo.UpsertActiveSubscription(ctx, companyID, event.Resource.ID); err != nil {
		return err
	}

	s.AuditService.LogChange(ctx, audit.ActionSubscriptionActivated, companyID, "", map[string]interface{}{
		"subscription_id": event.Resource.ID,
	})
	s.Logger.Info("subscription activated", zap.String("company_id", companyID))
	return nil
}
