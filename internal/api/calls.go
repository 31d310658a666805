package api

import (
	"context"
	"net/url"
	"time"
)

func (c *Client) CallHistory(ctx context.Context) ([]CallRecord, error) {
	return get[[]CallRecord](ctx, c, "/calls/history", nil)
}

func (c *Client) OutgoingCallHistory(ctx context.Context) ([]CallRecord, error) {
	return get[[]CallRecord](ctx, c, "/calls/history/outgoing", nil)
}

func (c *Client) IncomingCallHistory(ctx context.Context) ([]CallRecord, error) {
	return get[[]CallRecord](ctx, c, "/calls/history/incoming", nil)
}

func (c *Client) CallHistoryByDateRange(ctx context.Context, start, end time.Time) ([]CallRecord, error) {
	query := url.Values{}
	query.Set("start", start.Format(time.RFC3339))
	query.Set("end", end.Format(time.RFC3339))
	return get[[]CallRecord](ctx, c, "/calls/history/date-range", query)
}

type makeCallRequest struct {
	FromNumberID string `json:"fromNumberId"`
	ToNumber     string `json:"toNumber"`
}

// MakeCall asks the backend to place a call. Connection state after this
// point is client-local; historical records are fetched, not derived.
func (c *Client) MakeCall(ctx context.Context, fromNumberID, toNumber string) (CallRecord, error) {
	return post[CallRecord](ctx, c, "/calls/make", makeCallRequest{FromNumberID: fromNumberID, ToNumber: toNumber})
}
