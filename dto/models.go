package dto

// CurrencyHint is a best-effort guess at the document's currency,
// derived from keyword/symbol presence in the OCR text.
type CurrencyHint string

const (
	CurrencyINR     CurrencyHint = "INR"
	CurrencyUSD     CurrencyHint = "USD"
	CurrencyEUR     CurrencyHint = "EUR"
	CurrencyUnknown CurrencyHint = "UNKNOWN"
)

// AmountType is the semantic role assigned to an amount found on a bill.
type AmountType string

const (
	AmountSubtotal  AmountType = "subtotal"
	AmountTax       AmountType = "tax"
	AmountTotalBill AmountType = "total_bill"
	AmountPaid      AmountType = "paid"
	AmountDue       AmountType = "due"
	AmountDiscount  AmountType = "discount"
)

// NormalizedAmount is a raw OCR token repaired into a numeric value.
// Raw always holds the original token exactly as it appeared in the text.
type NormalizedAmount struct {
	Value     float64 `json:"value"`
	IsPercent bool    `json:"isPercent"`
	Raw       string  `json:"raw"`
}

// RoleAssignment ties a numeric value to a semantic role. Source names
// the bill line the value was taken from.
type RoleAssignment struct {
	Type      AmountType `json:"type"`
	Value     float64    `json:"value"`
	IsPercent bool       `json:"isPercent"`
	Source    string     `json:"source"`
}

// UPIPayment holds the payment fields of a upi://pay QR code printed
// on a bill, when one was found and decoded.
type UPIPayment struct {
	PayeeAddress string `json:"payee_address,omitempty"`
	PayeeName    string `json:"payee_name,omitempty"`
	Amount       string `json:"amount,omitempty"`
	Currency     string `json:"currency,omitempty"`
}
