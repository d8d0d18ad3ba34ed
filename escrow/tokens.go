package escrow

import "context"

const tokenCreateQuery = `mutation tokenCreate($input: TokenInput!) {
  tokenCreate(input: $input) {
    id
  }
}`

// CreatePaymentToken registers a party with the provider and returns the
// payment token required to take part in escrow transactions.
func (c *Client) CreatePaymentToken(ctx context.Context, input TokenInput) (*Token, error) {
	var data struct {
		TokenCreate *Token `json:"tokenCreate"`
	}
	if err := c.do(ctx, tokenCreateQuery, map[string]interface{}{"input": input}, &data); err != nil {
		return nil, err
	}
	return data.TokenCreate, nil
}
