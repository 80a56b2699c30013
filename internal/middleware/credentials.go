package middleware

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/config"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Credentials checks the configured admin username and password.
type Credentials struct {
	username string
	hash     []byte
}

// NewCredentials uses cfg.PasswordHash when set, otherwise it hashes
// cfg.Password once so plaintext is never compared directly.
func NewCredentials(cfg config.AdminConfig) (*Credentials, error) {
	if cfg.Username == "" {
		return nil, errors.New("admin username is empty")
	}
	if cfg.PasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(cfg.PasswordHash)); err != nil {
			return nil, fmt.Errorf("invalid admin password hash: %w", err)
		}
		return &Credentials{username: cfg.Username, hash: []byte(cfg.PasswordHash)}, nil
	}
	if cfg.Password == "" {
		return nil, errors.New("admin password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &Credentials{username: cfg.Username, hash: hash}, nil
}

func (c *Credentials) Username() string { return c.username }

func (c *Credentials) Verify(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(c.hash, []byte(password))
	if !userOK || passErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}
