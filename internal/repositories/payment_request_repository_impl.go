package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domainErrors "moneroreq/internal/errors"
	"moneroreq/internal/models"
)

type paymentRequestRepository struct {
	db *gorm.DB
}

func NewPaymentRequestRepository(db *gorm.DB) PaymentRequestRepository {
	return &paymentRequestRepository{
		db: db,
	}
}

func (r *paymentRequestRepository) Create(ctx context.Context, rec *models.IssuedPaymentRequest) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to create payment request record: %w", err)
	}
	return nil
}

func (r *paymentRequestRepository) FindByPaymentID(ctx context.Context, paymentID string) (*models.IssuedPaymentRequest, error) {
	var rec models.IssuedPaymentRequest
	err := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Order("created_at DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get payment request: %w", err)
	}
	return &rec, nil
}

func (r *paymentRequestRepository) ListByWallet(ctx context.Context, wallet string, limit, offset int) ([]models.IssuedPaymentRequest, int64, error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&models.IssuedPaymentRequest{}).Where("sellers_wallet = ?", wallet)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payment requests: %w", err)
	}

	var recs []models.IssuedPaymentRequest
	err := r.db.WithContext(ctx).
		Where("sellers_wallet = ?", wallet).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&recs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payment requests: %w", err)
	}
	return recs, total, nil
}
