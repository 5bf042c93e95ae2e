package dto

// Response statuses
const (
	StatusOK        = "ok"
	StatusNoAmounts = "no_amounts_found"
	StatusError     = "error"
)

// Reasons attached to a no_amounts_found response
const (
	ReasonTooNoisy = "document too noisy"
	ReasonNoTokens = "no numeric tokens found"
)

// ErrorResponse represents an internal failure envelope
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NoAmountsResponse is the terminal response when no text could be
// obtained or no numeric-looking tokens were present.
type NoAmountsResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// StepOne reports raw token extraction
type StepOne struct {
	RawTokens    []string     `json:"raw_tokens"`
	CurrencyHint CurrencyHint `json:"currency_hint"`
	Confidence   float64      `json:"confidence"`
}

// StepTwo reports normalization; only the repaired values are exposed
type StepTwo struct {
	NormalizedAmounts       []float64 `json:"normalized_amounts"`
	NormalizationConfidence float64   `json:"normalization_confidence"`
}

// StepThree reports role classification
type StepThree struct {
	Amounts    []RoleAssignment `json:"amounts"`
	Confidence float64          `json:"confidence"`
}

// Pipeline collects the per-stage breakdown
type Pipeline struct {
	Step1 StepOne   `json:"step1"`
	Step2 StepTwo   `json:"step2"`
	Step3 StepThree `json:"step3"`
}

// FinalResult is the final currency + amounts envelope. UPI is only
// set when the uploaded bill carried a decodable payment QR.
type FinalResult struct {
	Currency CurrencyHint     `json:"currency"`
	Amounts  []RoleAssignment `json:"amounts"`
	Status   string           `json:"status"`
	UPI      *UPIPayment      `json:"upi,omitempty"`
}

// ExtractResponse is the full successful response structure
type ExtractResponse struct {
	Pipeline Pipeline    `json:"pipeline"`
	Final    FinalResult `json:"final"`
}
