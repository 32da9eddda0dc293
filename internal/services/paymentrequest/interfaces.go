package paymentrequest

import (
	"context"

	"moneroreq/internal/domain/request"
	"moneroreq/internal/models"
)

// Service issues payment request codes, decodes them and serves the ledger
// of issued codes.
type Service interface {
	// NewRequest returns a request pre-filled with the configured defaults.
	NewRequest() *request.PaymentRequest

	Issue(ctx context.Context, req IssueRequest) (*IssueResult, error)
	// Decode accepts any well-formed code, issued here or not.
	Decode(ctx context.Context, code string) (*request.PaymentRequest, error)
	Lookup(ctx context.Context, paymentID string) (*models.IssuedPaymentRequest, error)
	ListByWallet(ctx context.Context, wallet string, limit, offset int) (*WalletPage, error)
	Schedule(ctx context.Context, code string, count int) (*ScheduleResult, error)
}

// Cache stores decoded requests keyed by code.
type Cache interface {
	GetPaymentRequest(ctx context.Context, code string) (*request.PaymentRequest, bool, error)
	CachePaymentRequest(ctx context.Context, code string, req *request.PaymentRequest) error
}
