package pokerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/holdemhub/pokerclient/clients"
)

// Client is the typed client for the poker backend REST API. All game rules,
// persistence and authoritative state live on the backend; this client only
// shapes requests and decodes responses.
type Client struct {
	*clients.BaseClient
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseClient: clients.NewBaseClient(baseURL),
	}
}

// SetToken installs (or, with an empty string, clears) the bearer credential
// sent with every request.
func (c *Client) SetToken(token string) {
	if token == "" {
		c.RemoveHeader(AuthorizationHeader)
		return
	}
	c.SetHeader(AuthorizationHeader, "Bearer "+token)
}

// postJSON marshals payload, issues a POST and decodes the response into out
// when out is non-nil.
func (c *Client) postJSON(ctx context.Context, endpoint string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	resp, err := c.Post(ctx, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func (c *Client) putJSON(ctx context.Context, endpoint string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	resp, err := c.Put(ctx, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	resp, err := c.Get(ctx, endpoint)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func decode(raw []byte, out any) error {
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(raw))
	}
	return nil
}
