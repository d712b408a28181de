package entitlement

import (
	"context"

	"go.uber.org/zap"
)

type EntitlementService interface {
	// Resolve builds the entitlement snapshot for one company. Store
	// failures degrade to the most restrictive snapshot instead of
	// propagating; a broken entitlement query must lock reports, not crash
	// the render.
	Resolve(ctx context.Context, companyID string) Entitlement
}

type EntitlementServiceImpl struct {
	Repo   EntitlementRepository
	Logger *zap.Logger
}

func NewEntitlementService(repo EntitlementRepository, logger *zap.Logger) EntitlementService {
	return &EntitlementServiceImpl{
		Repo:   repo,
		Logger: logger,
	}
}

func (s *EntitlementServiceImpl) Resolve(ctx context.Context, companyID string) Entitlement {
	subscribed, err := s.Repo.HasActiveSubscription(ctx, companyID)
	if err != nil {
		s.Logger.Warn("subscription lookup failed, treating as not subscribed",
			zap.String("company_id", companyID), zap.Error(err))
		return NoEntitlement()
	}

	purchased, err := s.Repo.PurchasedReportTypes(ctx, companyID)
	if err != nil {
		s.Logger.Warn("purchase lookup failed, treating as nothing purchased",
			zap.String("company_id", companyID), zap.Error(err))
		purchased = nil
	}

	ent := Entitlement{
		Subscribed:       subscribed,
		PurchasedReports: make(map[string]bool, len(purchased)),
	}
	for _, t := range purchased {
		ent.PurchasedReports[t] = true
	}
	return ent
}
