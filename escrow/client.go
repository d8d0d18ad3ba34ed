package escrow

import (
	"context"
	"crowdfund/errs"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// Client talks to the escrow provider's GraphQL API. It authenticates via
// an OAuth client-credentials exchange and sends queries as JSON POSTs.
// Construct one in main and pass it to the services that need it.
type Client struct {
	http     *resty.Client
	authURL  string
	clientID string
	secret   string

	mu          sync.Mutex
	accessToken string
}

// NewClient builds an escrow provider client for the given endpoints.
func NewClient(apiURL, authURL, clientID, secret string) *Client {
	return &Client{
		http:     resty.New().SetBaseURL(apiURL),
		authURL:  authURL,
		clientID: clientID,
		secret:   secret,
	}
}

type authResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Authenticate exchanges the client credentials for an access token.
// Must succeed before any provider call.
func (c *Client) Authenticate(ctx context.Context) error {
	if c.clientID == "" || c.secret == "" {
		return errs.New(errs.KindConfig, "escrow provider credentials are not configured")
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "client_credentials",
			"client_id":     c.clientID,
			"client_secret": c.secret,
		}).
		Post(c.authURL)
	if err != nil {
		return errs.Wrap(errs.KindUpstream, "escrow authentication request failed", err)
	}
	if resp.StatusCode() != 200 {
		return errs.New(errs.KindUpstream, fmt.Sprintf("escrow authentication failed with status %d", resp.StatusCode()))
	}

	var auth authResponse
	if err := json.Unmarshal(resp.Body(), &auth); err != nil {
		return errs.Wrap(errs.KindUpstream, "invalid escrow authentication response", err)
	}
	if auth.AccessToken == "" {
		return errs.New(errs.KindUpstream, "escrow authentication returned no access token")
	}

	c.mu.Lock()
	c.accessToken = auth.AccessToken
	c.mu.Unlock()
	return nil
}

func (c *Client) token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// do posts a GraphQL document and decodes the data payload into out.
func (c *Client) do(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	token := c.token()
	if token == "" {
		return errs.New(errs.KindUpstream, "escrow client is not authenticated")
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Request-ID", uuid.NewString()).
		SetBody(graphqlRequest{Query: query, Variables: variables}).
		Post("")
	if err != nil {
		return errs.Wrap(errs.KindUpstream, "escrow request failed", err)
	}
	if resp.StatusCode() != 200 {
		return errs.New(errs.KindUpstream, fmt.Sprintf("escrow request failed with status %d", resp.StatusCode()))
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return errs.Wrap(errs.KindUpstream, "invalid escrow response body", err)
	}
	if len(envelope.Errors) > 0 {
		return errs.New(errs.KindUpstream, "escrow request rejected: "+envelope.Errors[0].Message)
	}
	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return errs.Wrap(errs.KindUpstream, "invalid escrow response data", err)
		}
	}
	return nil
}
