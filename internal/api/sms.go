package api

import (
	"context"
	"net/url"
	"time"
)

func (c *Client) SMSHistory(ctx context.Context) ([]SMSRecord, error) {
	return get[[]SMSRecord](ctx, c, "/sms/history", nil)
}

func (c *Client) SentSMSHistory(ctx context.Context) ([]SMSRecord, error) {
	return get[[]SMSRecord](ctx, c, "/sms/history/sent", nil)
}

func (c *Client) ReceivedSMSHistory(ctx context.Context) ([]SMSRecord, error) {
	return get[[]SMSRecord](ctx, c, "/sms/history/received", nil)
}

func (c *Client) SMSHistoryByDateRange(ctx context.Context, start, end time.Time) ([]SMSRecord, error) {
	query := url.Values{}
	query.Set("start", start.Format(time.RFC3339))
	query.Set("end", end.Format(time.RFC3339))
	return get[[]SMSRecord](ctx, c, "/sms/history/date-range", query)
}

type sendSMSRequest struct {
	FromNumberID string   `json:"fromNumberId"`
	ToNumbers    []string `json:"toNumbers"`
	Message      string   `json:"message"`
}

// SendSMS dispatches one message to every destination number in a single
// request. Input validation is the screen's job; the client sends what it is
// given.
func (c *Client) SendSMS(ctx context.Context, fromNumberID string, toNumbers []string, message string) ([]SMSRecord, error) {
	return post[[]SMSRecord](ctx, c, "/sms/send", sendSMSRequest{
		FromNumberID: fromNumberID,
		ToNumbers:    toNumbers,
		Message:      message,
	})
}
