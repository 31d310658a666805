package screens

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/voisa/voictl/internal/api"
)

type CreditsAPI interface {
	CreditBalance(ctx context.Context) (float64, error)
	CreditHistory(ctx context.Context) ([]api.CreditTransaction, error)
	PurchaseCredits(ctx context.Context, packageID string, amount int) (api.CreditTransaction, error)
}

// CreditPackage is a purchasable bundle. The catalog is a fixed client-side
// list; the backend exposes no package listing yet.
type CreditPackage struct {
	ID      string
	Name    string
	Credits int
	Price   float64
}

var CreditPackages = []CreditPackage{
	{ID: "basic", Name: "Basic", Credits: 100, Price: 10},
	{ID: "standard", Name: "Standard", Credits: 500, Price: 45},
	{ID: "premium", Name: "Premium", Credits: 1000, Price: 80},
}

// MonthlyUsage is the client-side aggregation of USAGE transactions for the
// current and previous calendar month.
type MonthlyUsage struct {
	ThisMonth float64
	LastMonth float64
}

// DeriveUsage filters the flat transaction history by type and calendar
// month/year of createdAt. Amounts are summed as absolute values; January
// compares against December of the previous year.
func DeriveUsage(history []api.CreditTransaction, now time.Time) MonthlyUsage {
	thisMonth, thisYear := now.Month(), now.Year()
	lastMonth := thisMonth - 1
	lastYear := thisYear
	if thisMonth == time.January {
		lastMonth = time.December
		lastYear = thisYear - 1
	}

	var usage MonthlyUsage
	for _, tx := range history {
		if tx.TransactionType != api.TransactionUsage {
			continue
		}
		created := tx.CreatedAt
		switch {
		case created.Month() == thisMonth && created.Year() == thisYear:
			usage.ThisMonth += math.Abs(tx.Amount)
		case created.Month() == lastMonth && created.Year() == lastYear:
			usage.LastMonth += math.Abs(tx.Amount)
		}
	}
	return usage
}

// ChangePercent reports month-over-month usage change as a signed
// one-decimal percentage. A zero previous month has no meaningful ratio and
// reports "N/A".
func (u MonthlyUsage) ChangePercent() string {
	if u.LastMonth == 0 {
		return "N/A"
	}
	change := (u.ThisMonth - u.LastMonth) / u.LastMonth * 100
	return fmt.Sprintf("%+.1f%%", change)
}

// LastPurchase returns the most recent PURCHASE transaction, or nil when the
// ledger holds none.
func LastPurchase(history []api.CreditTransaction) *api.CreditTransaction {
	var last *api.CreditTransaction
	for i := range history {
		tx := &history[i]
		if tx.TransactionType != api.TransactionPurchase {
			continue
		}
		if last == nil || tx.CreatedAt.After(last.CreatedAt) {
			last = tx
		}
	}
	return last
}

type CreditsScreen struct {
	api CreditsAPI
	ui  *UI
	now func() time.Time
}

func NewCreditsScreen(c CreditsAPI, ui *UI) *CreditsScreen {
	return &CreditsScreen{api: c, ui: ui, now: time.Now}
}

// Overview renders balance, last purchase, and this-vs-last-month usage.
// Balance and history load independently so either can render without the
// other.
func (s *CreditsScreen) Overview(ctx context.Context) error {
	balance, err := s.api.CreditBalance(ctx)
	if err != nil {
		s.ui.NotifyError("failed to load credit balance: %v", err)
		return err
	}

	history, err := s.api.CreditHistory(ctx)
	if err != nil {
		s.ui.NotifyError("failed to load credit history: %v", err)
		s.ui.Printf("Credit balance: %.0f\n", balance)
		return err
	}

	s.ui.Printf("Credit balance: %.0f\n", balance)
	if last := LastPurchase(history); last != nil {
		s.ui.Printf("Last purchase:  %.0f credits on %s\n", last.Amount, formatDate(last.CreatedAt))
	}

	usage := DeriveUsage(history, s.now())
	s.ui.Printf("Usage this month: %.0f (%s from last month)\n", usage.ThisMonth, usage.ChangePercent())
	return nil
}

// History renders the full transaction ledger, newest first.
func (s *CreditsScreen) History(ctx context.Context) error {
	history, err := s.api.CreditHistory(ctx)
	if err != nil {
		s.ui.NotifyError("failed to load credit history: %v", err)
		return err
	}
	if len(history) == 0 {
		s.ui.Printf("No transactions.\n")
		return nil
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].CreatedAt.After(history[j].CreatedAt)
	})

	rows := make([][]string, 0, len(history))
	for _, tx := range history {
		rows = append(rows, []string{
			formatTimestamp(tx.CreatedAt), tx.TransactionType,
			fmt.Sprintf("%+.0f", tx.Amount), tx.Description,
		})
	}
	s.ui.table([]string{"DATE", "TYPE", "AMOUNT", "DESCRIPTION"}, rows)
	return nil
}

// Packages renders the purchasable catalog.
func (s *CreditsScreen) Packages() {
	rows := make([][]string, 0, len(CreditPackages))
	for _, p := range CreditPackages {
		rows = append(rows, []string{p.ID, p.Name, fmt.Sprintf("%d", p.Credits), fmt.Sprintf("$%.0f", p.Price)})
	}
	s.ui.table([]string{"ID", "NAME", "CREDITS", "PRICE"}, rows)
}

// Buy purchases one unit of a catalog package.
func (s *CreditsScreen) Buy(ctx context.Context, packageID string) error {
	if !knownPackage(packageID) {
		s.ui.NotifyError("unknown package %q; see 'voictl credits packages'", packageID)
		return fmt.Errorf("unknown package %q", packageID)
	}
	if _, err := s.api.PurchaseCredits(ctx, packageID, 1); err != nil {
		s.ui.NotifyError("failed to purchase credits: %v", err)
		return err
	}
	s.ui.Notify("Credits purchased.")
	return nil
}

func knownPackage(id string) bool {
	for _, p := range CreditPackages {
		if p.ID == id {
			return true
		}
	}
	return false
}
