package repositories

import (
	"context"

	"moneroreq/internal/models"
)

// PaymentRequestRepository stores the ledger of issued payment requests.
type PaymentRequestRepository interface {
	Create(ctx context.Context, rec *models.IssuedPaymentRequest) error
	// FindByPaymentID returns the most recent row for paymentID.
	FindByPaymentID(ctx context.Context, paymentID string) (*models.IssuedPaymentRequest, error)
	// ListByWallet pages through rows for a wallet, newest first, and
	// returns the total row count for that wallet.
	ListByWallet(ctx context.Context, wallet string, limit, offset int) ([]models.IssuedPaymentRequest, int64, error)
}
