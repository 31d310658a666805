package screens

import (
	"context"
	"strings"

	"github.com/voisa/voictl/internal/api"
)

// ContactsAPI is the slice of the client the contacts screen uses.
type ContactsAPI interface {
	Contacts(ctx context.Context) ([]api.Contact, error)
	AddContact(ctx context.Context, name, number string) (api.Contact, error)
	UpdateContact(ctx context.Context, contactID, name, number string) (api.Contact, error)
	DeleteContact(ctx context.Context, contactID string) error
}

type ContactsScreen struct {
	api ContactsAPI
	ui  *UI

	// last successful fetch; kept through failed refreshes
	contacts []api.Contact
}

func NewContactsScreen(c ContactsAPI, ui *UI) *ContactsScreen {
	return &ContactsScreen{api: c, ui: ui}
}

// List fetches and renders contacts, optionally narrowed by a search query.
func (s *ContactsScreen) List(ctx context.Context, query string) error {
	if err := s.refresh(ctx); err != nil {
		s.ui.NotifyError("failed to load contacts: %v", err)
		return err
	}

	visible := FilterContacts(s.contacts, query)
	if len(visible) == 0 {
		s.ui.Printf("No contacts found.\n")
		return nil
	}

	rows := make([][]string, 0, len(visible))
	for _, c := range visible {
		rows = append(rows, []string{c.ID, c.Name, c.Number})
	}
	s.ui.table([]string{"ID", "NAME", "NUMBER"}, rows)
	return nil
}

func (s *ContactsScreen) Add(ctx context.Context, name, number string) error {
	contact, err := s.api.AddContact(ctx, name, number)
	if err != nil {
		s.ui.NotifyError("failed to add contact: %v", err)
		return err
	}
	s.ui.Notify("Contact %q added.", contact.Name)
	return nil
}

func (s *ContactsScreen) Update(ctx context.Context, contactID, name, number string) error {
	contact, err := s.api.UpdateContact(ctx, contactID, name, number)
	if err != nil {
		s.ui.NotifyError("failed to update contact: %v", err)
		return err
	}
	s.ui.Notify("Contact %q updated.", contact.Name)
	return nil
}

// Delete removes a contact and patches the local list on success rather than
// re-fetching.
func (s *ContactsScreen) Delete(ctx context.Context, contactID string) error {
	if err := s.api.DeleteContact(ctx, contactID); err != nil {
		s.ui.NotifyError("failed to delete contact: %v", err)
		return err
	}

	kept := s.contacts[:0]
	for _, c := range s.contacts {
		if c.ID != contactID {
			kept = append(kept, c)
		}
	}
	s.contacts = kept
	s.ui.Notify("Contact deleted.")
	return nil
}

func (s *ContactsScreen) refresh(ctx context.Context) error {
	contacts, err := s.api.Contacts(ctx)
	if err != nil {
		return err
	}
	s.contacts = contacts
	return nil
}

// FilterContacts matches case-insensitively on name and by exact substring
// on number. An empty query returns the list unchanged.
func FilterContacts(contacts []api.Contact, query string) []api.Contact {
	if query == "" {
		return contacts
	}
	lower := strings.ToLower(query)
	var out []api.Contact
	for _, c := range contacts {
		if strings.Contains(strings.ToLower(c.Name), lower) || strings.Contains(c.Number, query) {
			out = append(out, c)
		}
	}
	return out
}
