package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/voisa/voictl/internal/api"
)

type NumbersAPI interface {
	PhoneNumbers(ctx context.Context) ([]api.PhoneNumber, error)
	ActivePhoneNumbers(ctx context.Context) ([]api.PhoneNumber, error)
	PurchaseNumber(ctx context.Context, availableNumberID string) (api.PhoneNumber, error)
	RenewNumber(ctx context.Context, phoneNumberID string) (api.PhoneNumber, error)
	DeactivateNumber(ctx context.Context, phoneNumberID string) (api.PhoneNumber, error)
	SearchAvailableNumbers(ctx context.Context, country, areaCode string, limit int) ([]api.AvailableNumber, error)
	AvailableNumbersByCountry(ctx context.Context, country string) ([]api.AvailableNumber, error)
	SearchAvailableNumbersByPattern(ctx context.Context, country, pattern string) ([]api.AvailableNumber, error)
}

// NumbersScreen implements the search-then-list flow: a search produces
// ephemeral candidates, each separately purchasable by id.
type NumbersScreen struct {
	api NumbersAPI
	ui  *UI

	// candidates from the last search; reset to empty on a failed search
	candidates []api.AvailableNumber
}

func NewNumbersScreen(c NumbersAPI, ui *UI) *NumbersScreen {
	return &NumbersScreen{api: c, ui: ui}
}

// List renders the account's numbers; active only by default.
func (s *NumbersScreen) List(ctx context.Context, includeInactive bool) error {
	var (
		numbers []api.PhoneNumber
		err     error
	)
	if includeInactive {
		numbers, err = s.api.PhoneNumbers(ctx)
	} else {
		numbers, err = s.api.ActivePhoneNumbers(ctx)
	}
	if err != nil {
		s.ui.NotifyError("failed to load phone numbers: %v", err)
		return err
	}
	if len(numbers) == 0 {
		s.ui.Printf("No phone numbers.\n")
		return nil
	}

	rows := make([][]string, 0, len(numbers))
	for _, n := range numbers {
		rows = append(rows, []string{
			n.ID, n.Number, n.Country, n.Status,
			formatDate(n.ExpiresAt), strings.Join(n.Features, ","),
		})
	}
	s.ui.table([]string{"ID", "NUMBER", "COUNTRY", "STATUS", "EXPIRES", "FEATURES"}, rows)
	return nil
}

// Search fetches purchasable candidates. An empty area code browses the
// whole country. Failure resets the candidate list to empty.
func (s *NumbersScreen) Search(ctx context.Context, country, areaCode string, limit int) error {
	candidates, err := s.api.SearchAvailableNumbers(ctx, country, areaCode, limit)
	if err != nil {
		s.candidates = nil
		s.ui.NotifyError("failed to search for available numbers: %v", err)
		return err
	}
	s.candidates = candidates
	s.renderCandidates()
	return nil
}

// SearchPattern fetches candidates whose digits contain the given pattern.
func (s *NumbersScreen) SearchPattern(ctx context.Context, country, pattern string) error {
	candidates, err := s.api.SearchAvailableNumbersByPattern(ctx, country, pattern)
	if err != nil {
		s.candidates = nil
		s.ui.NotifyError("failed to search for available numbers: %v", err)
		return err
	}
	s.candidates = candidates
	s.renderCandidates()
	return nil
}

// Browse lists candidates for a whole country without a search filter.
func (s *NumbersScreen) Browse(ctx context.Context, country string) error {
	candidates, err := s.api.AvailableNumbersByCountry(ctx, country)
	if err != nil {
		s.candidates = nil
		s.ui.NotifyError("failed to browse available numbers: %v", err)
		return err
	}
	s.candidates = candidates
	s.renderCandidates()
	return nil
}

func (s *NumbersScreen) renderCandidates() {
	if len(s.candidates) == 0 {
		s.ui.Printf("No available numbers matched.\n")
		return
	}
	rows := make([][]string, 0, len(s.candidates))
	for _, n := range s.candidates {
		rows = append(rows, []string{
			n.ID, n.Number, n.Country, n.Type,
			fmt.Sprintf("$%.2f", n.Price), strings.Join(n.Features, ","),
		})
	}
	s.ui.table([]string{"ID", "NUMBER", "COUNTRY", "TYPE", "PRICE", "FEATURES"}, rows)
}

func (s *NumbersScreen) Purchase(ctx context.Context, availableNumberID string) error {
	number, err := s.api.PurchaseNumber(ctx, availableNumberID)
	if err != nil {
		s.ui.NotifyError("failed to purchase number: %v", err)
		return err
	}
	s.ui.Notify("Number %s purchased.", number.Number)
	return nil
}

func (s *NumbersScreen) Renew(ctx context.Context, phoneNumberID string) error {
	number, err := s.api.RenewNumber(ctx, phoneNumberID)
	if err != nil {
		s.ui.NotifyError("failed to renew number: %v", err)
		return err
	}
	s.ui.Notify("Number %s renewed until %s.", number.Number, formatDate(number.ExpiresAt))
	return nil
}

func (s *NumbersScreen) Deactivate(ctx context.Context, phoneNumberID string) error {
	if _, err := s.api.DeactivateNumber(ctx, phoneNumberID); err != nil {
		s.ui.NotifyError("failed to deactivate number: %v", err)
		return err
	}
	s.ui.Notify("Number deactivated.")
	return nil
}
