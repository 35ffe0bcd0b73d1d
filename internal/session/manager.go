package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const CookieName = "newsboard_session"

// Manager binds a Store to the signed session cookie.
type Manager struct {
	store  Store
	signer *Signer
	ttl    time.Duration
}

func NewManager(store Store, signer *Signer, ttl time.Duration) *Manager {
	return &Manager{store: store, signer: signer, ttl: ttl}
}

// Load decodes the session named by the request cookie into v.
// A missing, forged or expired cookie yields a fresh session id and leaves v untouched.
func (m *Manager) Load(ctx context.Context, r *http.Request, v interface{}) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return uuid.NewString(), nil
	}

	id, err := m.signer.Verify(cookie.Value)
	if err != nil {
		return uuid.NewString(), nil
	}

	data, err := m.store.Load(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return id, nil
	}
	if err != nil {
		return id, err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return id, fmt.Errorf("failed to decode session: %w", err)
	}
	return id, nil
}

// Save stores v under id and refreshes the cookie.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, id string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := m.store.Save(ctx, id, data); err != nil {
		return err
	}

	token, err := m.signer.Issue(id)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
