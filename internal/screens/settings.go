package screens

import (
	"github.com/voisa/voictl/internal/api"
	"github.com/voisa/voictl/internal/session"
)

// SettingsScreen is read-only: the backend exposes no settings endpoints, so
// this view just shows the account identity and where the client keeps its
// state.
type SettingsScreen struct {
	store     *session.Store
	ui        *UI
	baseURL   string
	statePath string
}

func NewSettingsScreen(store *session.Store, ui *UI, baseURL, statePath string) *SettingsScreen {
	return &SettingsScreen{store: store, ui: ui, baseURL: baseURL, statePath: statePath}
}

func (s *SettingsScreen) Show() {
	user, ok := s.store.User()
	if !ok {
		user = api.User{}
	}

	s.ui.Printf("Account\n")
	s.ui.Printf("  Name:   %s\n", orDash(user.Name))
	s.ui.Printf("  Email:  %s\n", orDash(user.Email))
	s.ui.Printf("  Status: %s\n", s.store.Status())

	if info, err := s.store.TokenInfo(); err == nil {
		s.ui.Printf("\nSession token\n")
		if !info.IssuedAt.IsZero() {
			s.ui.Printf("  Issued:  %s\n", formatTimestamp(info.IssuedAt))
		}
		if !info.ExpiresAt.IsZero() {
			s.ui.Printf("  Expires: %s\n", formatTimestamp(info.ExpiresAt))
		}
	}

	s.ui.Printf("\nClient\n")
	s.ui.Printf("  API:   %s\n", s.baseURL)
	s.ui.Printf("  State: %s\n", s.statePath)
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
