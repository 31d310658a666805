package screens

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voisa/voictl/internal/api"
)

func tx(txType string, amount float64, at time.Time) api.CreditTransaction {
	return api.CreditTransaction{TransactionType: txType, Amount: amount, CreatedAt: at}
}

func TestDeriveUsageSplitsByCalendarMonth(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	history := []api.CreditTransaction{
		tx(api.TransactionUsage, -3, time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC)),
		tx(api.TransactionUsage, -7, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)),
		tx(api.TransactionUsage, -5, time.Date(2025, time.February, 20, 0, 0, 0, 0, time.UTC)),
		// purchases never count as usage
		tx(api.TransactionPurchase, 100, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)),
		// outside both windows
		tx(api.TransactionUsage, -9, time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)),
	}

	usage := DeriveUsage(history, now)
	assert.Equal(t, 10.0, usage.ThisMonth)
	assert.Equal(t, 5.0, usage.LastMonth)
}

func TestDeriveUsageJanuaryComparesDecemberOfPriorYear(t *testing.T) {
	now := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	history := []api.CreditTransaction{
		tx(api.TransactionUsage, -4, time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC)),
		tx(api.TransactionUsage, -6, time.Date(2024, time.December, 28, 0, 0, 0, 0, time.UTC)),
		// December of the current year must not count
		tx(api.TransactionUsage, -8, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)),
	}

	usage := DeriveUsage(history, now)
	assert.Equal(t, 4.0, usage.ThisMonth)
	assert.Equal(t, 6.0, usage.LastMonth)
}

func TestChangePercent(t *testing.T) {
	cases := []struct {
		name  string
		usage MonthlyUsage
		want  string
	}{
		{name: "both zero", usage: MonthlyUsage{ThisMonth: 0, LastMonth: 0}, want: "N/A"},
		{name: "no prior month", usage: MonthlyUsage{ThisMonth: 50, LastMonth: 0}, want: "N/A"},
		{name: "increase", usage: MonthlyUsage{ThisMonth: 150, LastMonth: 100}, want: "+50.0%"},
		{name: "decrease", usage: MonthlyUsage{ThisMonth: 75, LastMonth: 100}, want: "-25.0%"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.usage.ChangePercent())
		})
	}
}

func TestLastPurchasePicksNewest(t *testing.T) {
	history := []api.CreditTransaction{
		tx(api.TransactionPurchase, 100, time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)),
		tx(api.TransactionUsage, -10, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)),
		tx(api.TransactionPurchase, 500, time.Date(2025, time.May, 20, 0, 0, 0, 0, time.UTC)),
	}

	last := LastPurchase(history)
	require.NotNil(t, last)
	assert.Equal(t, 500.0, last.Amount)

	assert.Nil(t, LastPurchase(nil))
	assert.Nil(t, LastPurchase([]api.CreditTransaction{
		tx(api.TransactionUsage, -1, time.Now()),
	}))
}

func TestBuyRejectsUnknownPackage(t *testing.T) {
	fake := &fakeCreditsAPI{}
	ui, _, _ := testUI()
	screen := NewCreditsScreen(fake, ui)

	err := screen.Buy(context.Background(), "mega")
	require.Error(t, err)
	assert.Empty(t, fake.purchases)
}

func TestBuyPurchasesOneUnitOfCatalogPackage(t *testing.T) {
	fake := &fakeCreditsAPI{}
	ui, _, _ := testUI()
	screen := NewCreditsScreen(fake, ui)

	require.NoError(t, screen.Buy(context.Background(), "standard"))
	assert.Equal(t, []string{"standard"}, fake.purchases)
}

func TestOverviewReportsUsageChange(t *testing.T) {
	now := time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC)
	fake := &fakeCreditsAPI{
		balance: 240,
		history: []api.CreditTransaction{
			tx(api.TransactionUsage, -20, now.AddDate(0, 0, -1)),
			tx(api.TransactionUsage, -10, now.AddDate(0, -1, 0)),
		},
	}
	ui, out, _ := testUI()
	screen := NewCreditsScreen(fake, ui)
	screen.now = func() time.Time { return now }

	require.NoError(t, screen.Overview(context.Background()))
	assert.Contains(t, out.String(), "Credit balance: 240")
	assert.Contains(t, out.String(), "+100.0%")
}
