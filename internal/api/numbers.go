package api

import (
	"context"
	"net/url"
	"strconv"
)

// PhoneNumbers returns every number on the account, regardless of status.
func (c *Client) PhoneNumbers(ctx context.Context) ([]PhoneNumber, error) {
	return get[[]PhoneNumber](ctx, c, "/phone-numbers", nil)
}

// ActivePhoneNumbers returns the numbers currently usable for calls and SMS.
func (c *Client) ActivePhoneNumbers(ctx context.Context) ([]PhoneNumber, error) {
	return get[[]PhoneNumber](ctx, c, "/phone-numbers/active", nil)
}

type purchaseNumberRequest struct {
	AvailableNumberID string `json:"availableNumberId"`
}

// PurchaseNumber buys one of the candidates returned by a search.
func (c *Client) PurchaseNumber(ctx context.Context, availableNumberID string) (PhoneNumber, error) {
	return post[PhoneNumber](ctx, c, "/phone-numbers/purchase", purchaseNumberRequest{AvailableNumberID: availableNumberID})
}

func (c *Client) RenewNumber(ctx context.Context, phoneNumberID string) (PhoneNumber, error) {
	return post[PhoneNumber](ctx, c, "/phone-numbers/"+phoneNumberID+"/renew", nil)
}

func (c *Client) DeactivateNumber(ctx context.Context, phoneNumberID string) (PhoneNumber, error) {
	return post[PhoneNumber](ctx, c, "/phone-numbers/"+phoneNumberID+"/deactivate", nil)
}

// SearchAvailableNumbers looks up purchasable candidates. The results are
// ephemeral: they are never persisted and only make sense for the purchase
// that immediately follows. A non-positive limit falls back to 10.
func (c *Client) SearchAvailableNumbers(ctx context.Context, country, areaCode string, limit int) ([]AvailableNumber, error) {
	if limit <= 0 {
		limit = 10
	}
	query := url.Values{}
	query.Set("country", country)
	if areaCode != "" {
		query.Set("areaCode", areaCode)
	}
	query.Set("limit", strconv.Itoa(limit))
	return get[[]AvailableNumber](ctx, c, "/available-numbers/search", query)
}

func (c *Client) AvailableNumbersByCountry(ctx context.Context, country string) ([]AvailableNumber, error) {
	return get[[]AvailableNumber](ctx, c, "/available-numbers/country/"+country, nil)
}

func (c *Client) SearchAvailableNumbersByPattern(ctx context.Context, country, pattern string) ([]AvailableNumber, error) {
	return get[[]AvailableNumber](ctx, c, "/available-numbers/search/"+country+"/"+pattern, nil)
}
