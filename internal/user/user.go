package users

import (
	"time"

	"github.com/google/uuid"
)

type ContextKey string

const StaffKey ContextKey = "staff"

// LocalAdminID identifies the account behind the configured username and
// password.
var LocalAdminID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// Staff is someone allowed into the admin console, either through the
// configured credential pair or through an allow-listed OAuth sign-in.
type Staff struct {
	ID          uuid.UUID  `db:"id"`
	Email       string     `db:"email"`
	Username    string     `db:"username"`
	CreatedAt   time.Time  `db:"created_at"`
	Provider    *string    `db:"provider"`
	ProviderID  *string    `db:"provider_id"`
	AvatarURL   *string    `db:"avatar_url"`
	LastLoginAt *time.Time `db:"last_login_at"`
}

func (s *Staff) IsLocal() bool {
	return s.Provider == nil
}
