package api

import (
	"context"
	"net/http"
)

func (c *Client) Contacts(ctx context.Context) ([]Contact, error) {
	return get[[]Contact](ctx, c, "/contacts", nil)
}

type contactRequest struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

func (c *Client) AddContact(ctx context.Context, name, number string) (Contact, error) {
	return post[Contact](ctx, c, "/contacts", contactRequest{Name: name, Number: number})
}

func (c *Client) UpdateContact(ctx context.Context, contactID, name, number string) (Contact, error) {
	raw, err := c.do(ctx, http.MethodPut, "/contacts/"+contactID, nil, contactRequest{Name: name, Number: number})
	if err != nil {
		return Contact{}, err
	}
	return unwrap[Contact](raw)
}

func (c *Client) DeleteContact(ctx context.Context, contactID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/contacts/"+contactID, nil, nil)
	return err
}
