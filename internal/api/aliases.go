package api

import (
	"context"
	"net/http"
	"net/url"
)

// Aliases returns the date -> label mapping.
func (c *Client) Aliases(ctx context.Context) (map[string]string, error) {
	aliases := map[string]string{}
	if err := c.call(ctx, http.MethodGet, aliasesPath, nil, nil, &aliases); err != nil {
		return nil, err
	}
	return aliases, nil
}

// SetAlias creates or replaces the label of date. Callers reject blank
// aliases before calling.
func (c *Client) SetAlias(ctx context.Context, date, alias string) (Result, error) {
	var r Result
	err := c.call(ctx, http.MethodPost, aliasesPath, nil, aliasRequest{Date: date, Alias: alias}, &r)
	return r, err
}

// DeleteAlias removes the label of date.
func (c *Client) DeleteAlias(ctx context.Context, date string) (Result, error) {
	var r Result
	err := c.call(ctx, http.MethodDelete, aliasesPath+"/"+url.PathEscape(date), nil, nil, &r)
	return r, err
}
