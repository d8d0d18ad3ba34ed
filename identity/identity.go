// Package identity wraps the external authentication SaaS used to
// register end-users.
package identity

import (
	"context"
	"crowdfund/errs"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// NewUser is the registration payload sent to the identity provider.
type NewUser struct {
	EmailAddress string `json:"email_address"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
}

// User is the provider's view of a registered user.
type User struct {
	ID string `json:"id"`
}

// Client talks to the identity provider's REST API.
type Client struct {
	http   *resty.Client
	apiKey string
}

// NewClient builds an identity provider client.
func NewClient(apiURL, apiKey string) *Client {
	return &Client{
		http:   resty.New().SetBaseURL(apiURL),
		apiKey: apiKey,
	}
}

// RegisterUser creates the user with the identity provider and returns
// the provider-assigned identifier.
func (c *Client) RegisterUser(ctx context.Context, user NewUser) (*User, error) {
	if c.apiKey == "" {
		return nil, errs.New(errs.KindConfig, "identity provider API key is not configured")
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/users")
	if err != nil {
		return nil, errs.Wrap(errs.KindUpstream, "identity provider request failed", err)
	}
	if resp.StatusCode() != 200 && resp.StatusCode() != 201 {
		return nil, errs.New(errs.KindUpstream, fmt.Sprintf("identity provider returned status %d", resp.StatusCode()))
	}

	var created User
	if err := json.Unmarshal(resp.Body(), &created); err != nil {
		return nil, errs.Wrap(errs.KindUpstream, "invalid identity provider response", err)
	}
	return &created, nil
}
