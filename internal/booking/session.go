package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pawsuite/grooming-booking/internal/storage"
)

// Sessions tracks the single current user. There is at most one session at
// a time; absence of the key means nobody is logged in.
type Sessions struct {
	store storage.Store
}

func NewSessions(store storage.Store) *Sessions {
	return &Sessions{store: store}
}

// CurrentUser returns the logged-in user, or nil when there is none.
// Malformed session data reads as nil rather than erroring out.
func (s *Sessions) CurrentUser(ctx context.Context) (*User, error) {
	raw, err := s.store.Get(ctx, keyCurrentUser)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, nil
	}
	if u.Name == "" && u.Email == "" {
		return nil, nil
	}
	return &u, nil
}

func (s *Sessions) IsLoggedIn(ctx context.Context) (bool, error) {
	u, err := s.CurrentUser(ctx)
	if err != nil {
		return false, err
	}
	return u != nil, nil
}

func (s *Sessions) Login(ctx context.Context, u User) error {
	if u.Name == "" && u.Email == "" {
		return ErrMissingFields
	}
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.store.Set(ctx, keyCurrentUser, data); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *Sessions) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, keyCurrentUser); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// RememberRedirect stores where the customer was headed before being sent
// to log in, so the login flow can send them back.
func (s *Sessions) RememberRedirect(ctx context.Context, target string) error {
	data, err := json.Marshal(target)
	if err != nil {
		return fmt.Errorf("encode redirect: %w", err)
	}
	if err := s.store.Set(ctx, keyAfterLogin, data); err != nil {
		return fmt.Errorf("write redirect: %w", err)
	}
	return nil
}

// ConsumeRedirect returns the remembered redirect target and clears it.
// Empty string when none was remembered.
func (s *Sessions) ConsumeRedirect(ctx context.Context) (string, error) {
	raw, err := s.store.Get(ctx, keyAfterLogin)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read redirect: %w", err)
	}

	var target string
	if err := json.Unmarshal(raw, &target); err != nil {
		target = ""
	}
	if err := s.store.Delete(ctx, keyAfterLogin); err != nil {
		return "", fmt.Errorf("clear redirect: %w", err)
	}
	return target, nil
}
