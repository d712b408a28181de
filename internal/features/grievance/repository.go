package grievance

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"voicelens/internal/database"
)

type GrievanceRepository interface {
	ListByCompany(ctx context.Context, companyID string) ([]Grievance, error)
	Insert(ctx context.Context, g *Grievance) error
	CountByUserSince(ctx context.Context, userID string, since time.Time) (int, error)
	AddPointTransaction(ctx context.Context, companyID, userID string, points int, reason string) error
}

type GrievanceRepositoryImpl struct {
	db *sql.DB
}

func NewGrievanceRepository(pg *database.PostgresDB) GrievanceRepository {
	return &GrievanceRepositoryImpl{db: pg.DB}
}

func (r *GrievanceRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]Grievance, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, company_id, user_id, category, details, stress_level, created_at
		 FROM grievances WHERE company_id = $1 ORDER BY created_at`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query grievances: %w", err)
	}
	defer rows.Close()

	var list []Grievance
	for rows.Next() {
		var g Grievance
		if err := rows.Scan(&g.ID, &g.CompanyID, &g.UserID, &g.Category, &g.Details, &g.StressLevel, &g.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

func (r *GrievanceRepositoryImpl) Insert(ctx context.Context, g *Grievance) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO grievances (company_id, user_id, category, details, stress_level)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		g.CompanyID, g.UserID, g.Category, g.Details, g.StressLevel,
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert grievance: %w", err)
	}
	return nil
}

func (r *GrievanceRepositoryImpl) CountByUserSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM grievances WHERE user_id = $1 AND created_at >= $2`,
		userID, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count recent grievances: %w", err)
	}
	return count, nil
}

func (r *GrievanceRepositoryImpl) AddPointTransaction(ctx context.Context, companyID, userID string, points int, reason string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO point_transactions (company_id, user_id, points, reason) VALUES ($1, $2, $3, $4)`,
		companyID, userID, points, reason,
	)
	if err != nil {
		return fmt.Errorf("failed to insert point transaction: %w", err)
	}
	return nil
}
