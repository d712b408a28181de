package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"voicelens/internal/database"
)

var ErrProfileNotFound = errors.New("profile not found")

// Profile is one account row in the hosted store; role is one of employee,
// manager, super_admin.
type Profile struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	CompanyID    string
	DisplayName  string
}

type ProfileRepository interface {
	FindByEmail(ctx context.Context, email string) (*Profile, error)
}

type ProfileRepositoryImpl struct {
	db *sql.DB
}

func NewProfileRepository(pg *database.PostgresDB) ProfileRepository {
	return &ProfileRepositoryImpl{db: pg.DB}
}

func (r *ProfileRepositoryImpl) FindByEmail(ctx context.Context, email string) (*Profile, error) {
	var p Profile
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, role, company_id, COALESCE(display_name, '')
		 FROM profiles WHERE email = $1`,
		email,
	).Scan(&p.ID, &p.Email, &p.PasswordHash, &p.Role, &p.CompanyID, &p.DisplayName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}
	return &p, nil
}
