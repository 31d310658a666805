package screens

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/voisa/voictl/internal/api"
)

type DashboardAPI interface {
	CreditBalance(ctx context.Context) (float64, error)
	ActivePhoneNumbers(ctx context.Context) ([]api.PhoneNumber, error)
	CallHistory(ctx context.Context) ([]api.CallRecord, error)
	SMSHistory(ctx context.Context) ([]api.SMSRecord, error)
	CreditHistory(ctx context.Context) ([]api.CreditTransaction, error)
}

// activityItem is one row of the merged recent-activity feed.
type activityItem struct {
	At          time.Time
	Kind        string
	Description string
}

const recentActivityLimit = 8

type DashboardScreen struct {
	api DashboardAPI
	ui  *UI
}

func NewDashboardScreen(c DashboardAPI, ui *UI) *DashboardScreen {
	return &DashboardScreen{api: c, ui: ui}
}

// Show fires the dashboard's reads in parallel and joins them only so the
// overview and activity feed render together; the fetches carry no ordering
// requirement relative to each other.
func (s *DashboardScreen) Show(ctx context.Context) error {
	var (
		balance float64
		numbers []api.PhoneNumber
		calls   []api.CallRecord
		sms     []api.SMSRecord
		credits []api.CreditTransaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		balance, err = s.api.CreditBalance(gctx)
		return err
	})
	g.Go(func() (err error) {
		numbers, err = s.api.ActivePhoneNumbers(gctx)
		return err
	})
	g.Go(func() (err error) {
		calls, err = s.api.CallHistory(gctx)
		return err
	})
	g.Go(func() (err error) {
		sms, err = s.api.SMSHistory(gctx)
		return err
	})
	g.Go(func() (err error) {
		credits, err = s.api.CreditHistory(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.ui.NotifyError("failed to load dashboard: %v", err)
		return err
	}

	smsSent := 0
	for _, m := range sms {
		if m.Direction == api.DirectionOutbound {
			smsSent++
		}
	}
	callSeconds := 0
	for _, c := range calls {
		callSeconds += c.Duration
	}

	s.ui.Printf("Available credits: %.0f\n", balance)
	s.ui.Printf("Active numbers:    %d\n", len(numbers))
	s.ui.Printf("SMS sent:          %d\n", smsSent)
	s.ui.Printf("Call minutes:      %d\n", callSeconds/60)

	feed := mergeActivity(calls, sms, credits)
	if len(feed) == 0 {
		return nil
	}
	s.ui.Printf("\nRecent activity\n")
	rows := make([][]string, 0, len(feed))
	for _, item := range feed {
		rows = append(rows, []string{formatTimestamp(item.At), item.Kind, item.Description})
	}
	s.ui.table([]string{"DATE", "TYPE", "ACTIVITY"}, rows)
	return nil
}

// mergeActivity folds the three histories into one feed, newest first,
// capped at recentActivityLimit.
func mergeActivity(calls []api.CallRecord, sms []api.SMSRecord, credits []api.CreditTransaction) []activityItem {
	items := make([]activityItem, 0, len(calls)+len(sms)+len(credits))
	for _, c := range calls {
		items = append(items, activityItem{
			At:   c.CreatedAt,
			Kind: "call",
			Description: fmt.Sprintf("%s call %s -> %s (%s)",
				c.Direction, c.FromNumber, c.ToNumber, formatClock(c.Duration)),
		})
	}
	for _, m := range sms {
		items = append(items, activityItem{
			At:          m.CreatedAt,
			Kind:        "sms",
			Description: fmt.Sprintf("%s SMS %s -> %s", m.Direction, m.FromNumber, m.ToNumber),
		})
	}
	for _, tx := range credits {
		items = append(items, activityItem{
			At:          tx.CreatedAt,
			Kind:        "credit",
			Description: fmt.Sprintf("%s %+.0f: %s", tx.TransactionType, tx.Amount, tx.Description),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].At.After(items[j].At)
	})
	if len(items) > recentActivityLimit {
		items = items[:recentActivityLimit]
	}
	return items
}
