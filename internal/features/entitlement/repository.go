package entitlement

import (
	"context"
	"database/sql"
	"fmt"

	"voicelens/internal/database"
)

type EntitlementRepository interface {
	HasActiveSubscription(ctx context.Context, companyID string) (bool, error)
	PurchasedReportTypes(ctx context.Context, companyID string) ([]string, error)

	// Mutations arrive out-of-band: from the payment provider webhook, or
	// from the dev-only debug override.
	RecordPurchase(ctx context.Context, p *ReportPurchase) error
	PurchaseExists(ctx context.Context, transactionID string) (bool, error)
	UpsertActiveSubscription(ctx context.Context, companyID, providerSubscriptionID string) error
	CancelSubscriptionByProviderID(ctx context.Context, providerSubscriptionID string) error
}

// ReportPurchase mirrors one completed single-report payment.
type ReportPurchase struct {
	CompanyID     string
	ManagerID     string
	ReportType    string
	TransactionID string
	Amount        float64
}

type EntitlementRepositoryImpl struct {
	db *sql.DB
}

func NewEntitlementRepository(pg *database.PostgresDB) EntitlementRepository {
	return &EntitlementRepositoryImpl{db: pg.DB}
}

func (r *EntitlementRepositoryImpl) HasActiveSubscription(ctx context.Context, companyID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM subscriptions WHERE company_id = $1 AND status = 'active'`,
		companyID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	return count > 0, nil
}

func (r *EntitlementRepositoryImpl) PurchasedReportTypes(ctx context.Context, companyID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT report_type FROM report_purchases WHERE company_id = $1`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query report purchases: %w", err)
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *EntitlementRepositoryImpl) RecordPurchase(ctx context.Context, p *ReportPurchase) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO report_purchases (company_id, manager_id, report_type, paypal_transaction_id, amount)
		 VALUES ($1, $2, $3, $4, $5)`,
		p.CompanyID, p.ManagerID, p.ReportType, p.TransactionID, p.Amount,
	)
	if err != nil {
		return fmt.Errorf("failed to record purchase: %w", err)
	}
	return nil
}

func (r *EntitlementRepositoryImpl) PurchaseExists(ctx context.Context, transactionID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM report_purchases WHERE paypal_transaction_id = $1`,
		transactionID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *EntitlementRepositoryImpl) UpsertActiveSubscription(ctx context.Context, companyID, providerSubscriptionID string) error {
	var id string
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM subscriptions WHERE company_id = $1`,
		companyID,
	).Scan(&id)

	switch err {
	case nil:
		_, err = r.db.ExecContext(ctx,
			`UPDATE subscriptions SET paypal_subscription_id = $1, status = 'active', updated_at = NOW() WHERE id = $2`,
			providerSubscriptionID, id,
		)
	case sql.ErrNoRows:
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO subscriptions (company_id, paypal_subscription_id, status) VALUES ($1, $2, 'active')`,
			companyID, providerSubscriptionID,
		)
	}

	if err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}
	return nil
}

func (r *EntitlementRepositoryImpl) CancelSubscriptionByProviderID(ctx context.Context, providerSubscriptionID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE subscriptions SET status = 'canceled', updated_at = NOW() WHERE paypal_subscription_id = $1`,
		providerSubscriptionID,
	)
	if err != nil {
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}
	return nil
}
