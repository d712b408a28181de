package company

import (
	"context"
	"database/sql"
	"fmt"

	"voicelens/internal/database"
)

type CompanyRepository interface {
	List(ctx context.Context) ([]Company, error)
}

type CompanyRepositoryImpl struct {
	db *sql.DB
}

func NewCompanyRepository(pg *database.PostgresDB) CompanyRepository {
	return &CompanyRepositoryImpl{db: pg.DB}
}

func (r *CompanyRepositoryImpl) List(ctx context.Context) ([]Company, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM companies ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	var companies []Company
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}
