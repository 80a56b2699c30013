package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/store"
	users "github.com/AdamBeresnev/pbvsi-sulut/internal/user"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/utils"
	"github.com/google/uuid"
	"github.com/markbates/goth"
)

var ErrNotAllowed = errors.New("account is not on the staff allow-list")

type StaffService struct {
	store   *store.StaffStore
	allowed map[string]bool
}

// NewStaffService only admits OAuth accounts whose email is in allowedEmails.
// An empty list admits nobody through OAuth.
func NewStaffService(store *store.StaffStore, allowedEmails []string) *StaffService {
	allowed := make(map[string]bool, len(allowedEmails))
	for _, e := range allowedEmails {
		allowed[strings.ToLower(strings.TrimSpace(e))] = true
	}
	return &StaffService{store: store, allowed: allowed}
}

// Members lists every staff account in sign-up order.
func (s *StaffService) Members(ctx context.Context) ([]users.Staff, error) {
	return s.store.ListStaff(ctx)
}

func (s *StaffService) Allowed(email string) bool {
	return email != "" && s.allowed[strings.ToLower(strings.TrimSpace(email))]
}

func (s *StaffService) FindOrCreateStaffByProvider(ctx context.Context, gothUser goth.User) (*users.Staff, error) {
	if !s.Allowed(gothUser.Email) {
		return nil, fmt.Errorf("%w: %s", ErrNotAllowed, gothUser.Email)
	}

	staff, err := s.store.GetStaffByProvider(ctx, gothUser.Provider, gothUser.UserID)
	if err == nil {
		name := displayName(gothUser)
		if utils.OrZero(staff.AvatarURL) != gothUser.AvatarURL || staff.Username != name {
			staff.AvatarURL = utils.StringOrNil(gothUser.AvatarURL)
			staff.Username = name
			if err := s.store.UpdateStaffProfile(ctx, staff); err != nil {
				return nil, err
			}
		}
		return staff, s.store.TouchLogin(ctx, staff.ID)
	}

	if errors.Is(err, sql.ErrNoRows) {
		newStaff := &users.Staff{
			ID:         uuid.New(),
			Email:      gothUser.Email,
			Username:   displayName(gothUser),
			Provider:   utils.Ptr(gothUser.Provider),
			ProviderID: utils.Ptr(gothUser.UserID),
			AvatarURL:  utils.StringOrNil(gothUser.AvatarURL),
		}
		if err := s.store.CreateStaff(ctx, newStaff); err != nil {
			return nil, err
		}
		return newStaff, s.store.TouchLogin(ctx, newStaff.ID)
	}

	return nil, err
}

// EnsureLocalAdmin returns the account behind the configured credential pair,
// creating it on first login.
func (s *StaffService) EnsureLocalAdmin(ctx context.Context, username string) (*users.Staff, error) {
	staff, err := s.store.GetStaff(ctx, users.LocalAdminID)
	if err == nil {
		return staff, s.store.TouchLogin(ctx, staff.ID)
	}

	if errors.Is(err, sql.ErrNoRows) {
		admin := &users.Staff{
			ID:       users.LocalAdminID,
			Username: username,
		}
		if err := s.store.CreateStaff(ctx, admin); err != nil {
			return nil, err
		}
		return admin, s.store.TouchLogin(ctx, admin.ID)
	}
	return nil, err
}

func displayName(u goth.User) string {
	for _, n := range []string{u.Name, u.NickName, u.Email} {
		if n != "" {
			return n
		}
	}
	return u.UserID
}
