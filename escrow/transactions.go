package escrow

import "context"

const transactionCreateQuery = `mutation transactionCreate($input: TransactionCreateInput!) {
  transactionCreate(input: $input) {
    id
  }
}`

const checkoutLinkCreateQuery = `mutation checkoutLinkCreate($transactionId: ID!) {
  checkoutLinkCreate(transactionId: $transactionId)
}`

// CreateTransaction creates an escrow transaction with the provider.
// A nil result with a nil error means the provider acknowledged the call
// but returned no transaction payload; callers treat that as a failure.
func (c *Client) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*Transaction, error) {
	var data struct {
		TransactionCreate *Transaction `json:"transactionCreate"`
	}
	if err := c.do(ctx, transactionCreateQuery, map[string]interface{}{"input": input}, &data); err != nil {
		return nil, err
	}
	return data.TransactionCreate, nil
}

// CreateCheckoutLink requests a provider-hosted checkout URL for an
// existing escrow transaction.
func (c *Client) CreateCheckoutLink(ctx context.Context, transactionID string) (string, error) {
	var data struct {
		CheckoutLinkCreate string `json:"checkoutLinkCreate"`
	}
	if err := c.do(ctx, checkoutLinkCreateQuery, map[string]interface{}{"transactionId": transactionID}, &data); err != nil {
		return "", err
	}
	return data.CheckoutLinkCreate, nil
}
