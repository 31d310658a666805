package screens

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/voisa/voictl/internal/api"
)

// Client-side validation failures; reported before any network call.
var (
	ErrMissingFromNumber = errors.New("a source number is required")
	ErrNoRecipients      = errors.New("at least one destination number is required")
	ErrEmptyMessage      = errors.New("message must not be empty")
)

type SMSAPI interface {
	ActivePhoneNumbers(ctx context.Context) ([]api.PhoneNumber, error)
	SMSHistory(ctx context.Context) ([]api.SMSRecord, error)
	SentSMSHistory(ctx context.Context) ([]api.SMSRecord, error)
	ReceivedSMSHistory(ctx context.Context) ([]api.SMSRecord, error)
	SMSHistoryByDateRange(ctx context.Context, start, end time.Time) ([]api.SMSRecord, error)
	SendSMS(ctx context.Context, fromNumberID string, toNumbers []string, message string) ([]api.SMSRecord, error)
}

// RecipientList accumulates destination numbers as an ordered set:
// duplicates by exact string match collapse to the first occurrence.
type RecipientList struct {
	numbers []string
}

// Add appends a trimmed number and reports whether it was new. Blank input
// is ignored.
func (r *RecipientList) Add(number string) bool {
	number = strings.TrimSpace(number)
	if number == "" {
		return false
	}
	for _, existing := range r.numbers {
		if existing == number {
			return false
		}
	}
	r.numbers = append(r.numbers, number)
	return true
}

func (r *RecipientList) Remove(number string) {
	kept := r.numbers[:0]
	for _, n := range r.numbers {
		if n != number {
			kept = append(kept, n)
		}
	}
	r.numbers = kept
}

func (r *RecipientList) Numbers() []string { return r.numbers }

func (r *RecipientList) Len() int { return len(r.numbers) }

type SMSScreen struct {
	api SMSAPI
	ui  *UI
}

func NewSMSScreen(c SMSAPI, ui *UI) *SMSScreen {
	return &SMSScreen{api: c, ui: ui}
}

// Send validates all three fields locally and then issues exactly one send
// request carrying every accumulated destination number.
func (s *SMSScreen) Send(ctx context.Context, fromNumberID string, to *RecipientList, message string) error {
	if err := validateSend(fromNumberID, to, message); err != nil {
		s.ui.NotifyError("%v", err)
		return err
	}

	if _, err := s.api.SendSMS(ctx, fromNumberID, to.Numbers(), message); err != nil {
		s.ui.NotifyError("failed to send SMS: %v", err)
		return err
	}
	s.ui.Notify("Message sent to %d recipient(s).", to.Len())
	return nil
}

func validateSend(fromNumberID string, to *RecipientList, message string) error {
	if fromNumberID == "" {
		return ErrMissingFromNumber
	}
	if to == nil || to.Len() == 0 {
		return ErrNoRecipients
	}
	if strings.TrimSpace(message) == "" {
		return ErrEmptyMessage
	}
	return nil
}

// History renders the message log. filter selects the backend view:
// "all" (default), "sent", or "received".
func (s *SMSScreen) History(ctx context.Context, filter string) error {
	var (
		messages []api.SMSRecord
		err      error
	)
	switch filter {
	case "sent":
		messages, err = s.api.SentSMSHistory(ctx)
	case "received":
		messages, err = s.api.ReceivedSMSHistory(ctx)
	default:
		messages, err = s.api.SMSHistory(ctx)
	}
	if err != nil {
		s.ui.NotifyError("failed to load SMS history: %v", err)
		return err
	}
	s.renderHistory(messages)
	return nil
}

// HistoryRange renders messages inside a time window.
func (s *SMSScreen) HistoryRange(ctx context.Context, start, end time.Time) error {
	messages, err := s.api.SMSHistoryByDateRange(ctx, start, end)
	if err != nil {
		s.ui.NotifyError("failed to load SMS history: %v", err)
		return err
	}
	s.renderHistory(messages)
	return nil
}

func (s *SMSScreen) renderHistory(messages []api.SMSRecord) {
	if len(messages) == 0 {
		s.ui.Printf("No messages.\n")
		return
	}
	rows := make([][]string, 0, len(messages))
	for _, m := range messages {
		rows = append(rows, []string{
			formatTimestamp(m.CreatedAt), m.Direction, m.FromNumber, m.ToNumber,
			m.Status, truncate(m.Message, 40),
		})
	}
	s.ui.table([]string{"DATE", "DIRECTION", "FROM", "TO", "STATUS", "MESSAGE"}, rows)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// FromNumbers lists the active numbers a message can be sent from.
func (s *SMSScreen) FromNumbers(ctx context.Context) ([]api.PhoneNumber, error) {
	numbers, err := s.api.ActivePhoneNumbers(ctx)
	if err != nil {
		s.ui.NotifyError("failed to fetch your phone numbers: %v", err)
		return nil, err
	}
	return numbers, nil
}
