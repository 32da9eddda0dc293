package paymentrequest

import (
	"moneroreq/internal/domain/request"
	"moneroreq/internal/models"
)

// IssueRequest asks for a new code. Empty PaymentID and StartDate are
// generated; an empty Version means the configured default.
type IssueRequest struct {
	Request    request.PaymentRequest
	Version    string
	MerchantID string
}

// IssueResult carries the code and the request as it was encoded,
// defaults included.
type IssueResult struct {
	Code     string                 `json:"code"`
	Request  request.PaymentRequest `json:"payment_request"`
	RecordID string                 `json:"record_id"`
}

// WalletPage is one page of ledger rows for a wallet.
type WalletPage struct {
	Items  []models.IssuedPaymentRequest `json:"items"`
	Total  int64                         `json:"total"`
	Limit  int                           `json:"limit"`
	Offset int                           `json:"offset"`
}

// ScheduleResult lists the due dates of a decoded request.
type ScheduleResult struct {
	Request  request.PaymentRequest `json:"payment_request"`
	DueDates []string               `json:"due_dates"`
}
