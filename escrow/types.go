package escrow

// Fixed policy values used when creating provider transactions.
const (
	IndustryGeneralGoods = "GENERAL_GOODS_SERVICES"
	CurrencyZAR          = "ZAR"
	FeeAllocationSeller  = "SELLER"

	RoleBuyer  = "BUYER"
	RoleSeller = "SELLER"
)

// Transaction is the provider-side escrow transaction.
type Transaction struct {
	ID string `json:"id"`
}

// Token is a provider-issued payment token identifying a verified party.
type Token struct {
	ID string `json:"id"`
}

// Allocation is a single line of value within a transaction.
type Allocation struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Value         int64  `json:"value"`
	DaysToDeliver int    `json:"daysToDeliver"`
	DaysToInspect int    `json:"daysToInspect"`
}

// Party names one side of the escrow transaction by payment token.
type Party struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// CreateTransactionInput is the payload for transactionCreate.
type CreateTransactionInput struct {
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Industry      string       `json:"industry"`
	Currency      string       `json:"currency"`
	FeeAllocation string       `json:"feeAllocation"`
	Allocations   []Allocation `json:"allocations"`
	Parties       []Party      `json:"parties"`
}

// TokenInput is the payload for tokenCreate.
type TokenInput struct {
	GivenName  string `json:"givenName"`
	FamilyName string `json:"familyName"`
	Email      string `json:"email"`
	Mobile     string `json:"mobile,omitempty"`
}
