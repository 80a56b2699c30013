package store

import (
	"context"

	users "github.com/AdamBeresnev/pbvsi-sulut/internal/user"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type StaffStore struct {
	db *sqlx.DB
}

const (
	getStaffQuery           = "SELECT * FROM staff WHERE id = ?"
	getStaffByProviderQuery = `
		SELECT * FROM staff
		WHERE provider = ?
		AND provider_id = ?
	`
	listStaffQuery   = "SELECT * FROM staff ORDER BY created_at"
	createStaffQuery = `
		INSERT INTO staff (id, email, username, provider, provider_id, avatar_url) VALUES
		(:id, :email, :username, :provider, :provider_id, :avatar_url)
	`
	updateStaffProfileQuery = `
		UPDATE staff SET
		username = :username,
		avatar_url = :avatar_url
		WHERE id = :id
	`
	touchStaffLoginQuery = "UPDATE staff SET last_login_at = CURRENT_TIMESTAMP WHERE id = ?"
)

func NewStaffStore(db *sqlx.DB) *StaffStore {
	return &StaffStore{db: db}
}

func (s *StaffStore) GetStaffByProvider(ctx context.Context, provider string, providerID string) (*users.Staff, error) {
	var staff users.Staff
	err := s.db.GetContext(ctx, &staff, getStaffByProviderQuery, provider, providerID)
	if err != nil {
		return nil, err
	}

	return &staff, nil
}

func (s *StaffStore) GetStaff(ctx context.Context, id uuid.UUID) (*users.Staff, error) {
	var staff users.Staff
	err := s.db.GetContext(ctx, &staff, getStaffQuery, id)
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (s *StaffStore) ListStaff(ctx context.Context) ([]users.Staff, error) {
	staff := []users.Staff{}
	if err := s.db.SelectContext(ctx, &staff, listStaffQuery); err != nil {
		return nil, err
	}
	return staff, nil
}

func (s *StaffStore) CreateStaff(ctx context.Context, staff *users.Staff) error {
	_, err := s.db.NamedExecContext(ctx, createStaffQuery, staff)
	return err
}

func (s *StaffStore) UpdateStaffProfile(ctx context.Context, staff *users.Staff) error {
	_, err := s.db.NamedExecContext(ctx, updateStaffProfileQuery, staff)
	return err
}

func (s *StaffStore) TouchLogin(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, touchStaffLoginQuery, id)
	return err
}
