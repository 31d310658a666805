package api

import "context"

// CreditBalance returns the current balance; the payload is a bare number
// inside the usual envelope.
func (c *Client) CreditBalance(ctx context.Context) (float64, error) {
	return get[float64](ctx, c, "/credits/balance", nil)
}

// CreditHistory returns the append-only transaction ledger, newest first as
// ordered by the backend.
func (c *Client) CreditHistory(ctx context.Context) ([]CreditTransaction, error) {
	return get[[]CreditTransaction](ctx, c, "/credits/history", nil)
}

type purchaseCreditsRequest struct {
	PackageID string `json:"packageId"`
	Amount    int    `json:"amount"`
}

func (c *Client) PurchaseCredits(ctx context.Context, packageID string, amount int) (CreditTransaction, error) {
	return post[CreditTransaction](ctx, c, "/credits/purchase", purchaseCreditsRequest{PackageID: packageID, Amount: amount})
}
