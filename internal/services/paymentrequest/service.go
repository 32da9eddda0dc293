package paymentrequest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"moneroreq/internal/domain/request"
	domainErrors "moneroreq/internal/errors"
	"moneroreq/internal/models"
	"moneroreq/internal/paymentcode"
	"moneroreq/internal/repositories"
	"moneroreq/internal/validation"
)

type service struct {
	codec   *paymentcode.Codec
	repo    repositories.PaymentRequestRepository
	cache   Cache
	metrics MetricsCollector
	logger  *zap.Logger
}

// NewService creates a new payment request service
func NewService(
	codec *paymentcode.Codec,
	repo repositories.PaymentRequestRepository,
	cache Cache,
	metrics MetricsCollector,
	logger *zap.Logger,
) Service {
	if codec == nil {
		panic("codec is required")
	}
	if repo == nil {
		panic("repo is required")
	}
	if cache == nil {
		panic("cache is required")
	}

	// Metrics and logger are optional
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		codec:   codec,
		repo:    repo,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

func (s *service) NewRequest() *request.PaymentRequest {
	return s.codec.NewRequest()
}

func (s *service) Issue(ctx context.Context, in IssueRequest) (res *IssueResult, err error) {
	defer s.observe(OpIssue, time.Now(), &err)

	req := in.Request
	version := in.Version
	if version == "" {
		version = s.codec.Config().DefaultVersion
	}

	code, err := s.codec.Build(&req, version)
	if err != nil {
		s.logger.Warn("payment request rejected",
			zap.String("field", domainErrors.FieldOf(err)),
			zap.Error(err),
		)
		return nil, err
	}

	rec, err := newRecord(code, version, in.MerchantID, &req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to record payment request: %w", err)
	}

	if err := s.cache.CachePaymentRequest(ctx, code, &req); err != nil {
		s.logger.Warn("failed to cache issued payment request", zap.Error(err))
	}

	s.logger.Info("payment request issued",
		zap.String("record_id", rec.ID),
		zap.String("payment_id", req.PaymentID),
		zap.String("version", version),
		zap.String("currency", req.Currency),
		zap.String("amount", req.Amount),
	)

	return &IssueResult{Code: code, Request: req, RecordID: rec.ID}, nil
}

func (s *service) Decode(ctx context.Context, code string) (req *request.PaymentRequest, err error) {
	defer s.observe(OpDecode, time.Now(), &err)
	return s.decode(ctx, OpDecode, code)
}

func (s *service) decode(ctx context.Context, op, code string) (*request.PaymentRequest, error) {
	// Try cache first
	cached, found, err := s.cache.GetPaymentRequest(ctx, code)
	if err != nil {
		s.logger.Warn("payment request cache read failed", zap.Error(err))
	}
	if found {
		s.metrics.RecordCacheHit(op)
		return cached, nil
	}
	s.metrics.RecordCacheMiss(op)

	req, err := s.codec.Parse(code)
	if err != nil {
		s.logger.Debug("payment request code rejected", zap.Error(err))
		return nil, err
	}

	if err := s.cache.CachePaymentRequest(ctx, code, req); err != nil {
		s.logger.Warn("failed to cache decoded payment request", zap.Error(err))
	}
	s.logger.Debug("payment request decoded", zap.String("payment_id", req.PaymentID))
	return req, nil
}

func (s *service) Lookup(ctx context.Context, paymentID string) (rec *models.IssuedPaymentRequest, err error) {
	defer s.observe(OpLookup, time.Now(), &err)

	if !validation.ValidPaymentID(paymentID) {
		return nil, domainErrors.InvalidArgument(request.FieldPaymentID, "must be 16 lowercase hex characters")
	}
	rec, err = s.repo.FindByPaymentID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get payment request: %w", err)
	}
	return rec, nil
}

func (s *service) ListByWallet(ctx context.Context, wallet string, limit, offset int) (page *WalletPage, err error) {
	defer s.observe(OpList, time.Now(), &err)

	if wallet == "" {
		return nil, domainErrors.InvalidArgument(request.FieldSellersWallet, "must not be empty")
	}
	limit, offset = normalizePage(limit, offset)

	items, total, err := s.repo.ListByWallet(ctx, wallet, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment requests: %w", err)
	}
	if items == nil {
		items = []models.IssuedPaymentRequest{}
	}
	return &WalletPage{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *service) Schedule(ctx context.Context, code string, count int) (res *ScheduleResult, err error) {
	defer s.observe(OpSchedule, time.Now(), &err)

	if count <= 0 || count > MaxScheduleEntries {
		return nil, domainErrors.InvalidArgument("count", fmt.Sprintf("must be between 1 and %d", MaxScheduleEntries))
	}
	req, err := s.decode(ctx, OpSchedule, code)
	if err != nil {
		return nil, err
	}
	due, err := req.Schedule(count)
	if err != nil {
		return nil, domainErrors.InvalidArgument(request.FieldStartDate, "is not a valid date")
	}

	dates := make([]string, len(due))
	for i, d := range due {
		dates[i] = request.FormatStartDate(d)
	}
	return &ScheduleResult{Request: *req, DueDates: dates}, nil
}

// observe records duration, result and, on failure, the error code.
func (s *service) observe(op string, start time.Time, errp *error) {
	s.metrics.RecordOperationDuration(op, time.Since(start))
	if *errp == nil {
		s.metrics.RecordOperationResult(op, "success")
		return
	}
	s.metrics.RecordOperationResult(op, "failure")
	code := domainErrors.CodeOf(*errp)
	if code == "" {
		code = "internal"
	}
	s.metrics.RecordError(op, code)
}

func newRecord(code, version, merchantID string, req *request.PaymentRequest) (*models.IssuedPaymentRequest, error) {
	start, err := request.ParseStartDate(req.StartDate)
	if err != nil {
		return nil, domainErrors.InvalidArgument(request.FieldStartDate, "is not a valid date")
	}

	var amount decimal.NullDecimal
	if d, err := req.AmountDecimal(); err == nil {
		amount = models.LedgerAmount(d)
	}

	return &models.IssuedPaymentRequest{
		ID:                  uuid.NewString(),
		Code:                code,
		Version:             version,
		MerchantID:          merchantID,
		PaymentID:           req.PaymentID,
		CustomLabel:         req.CustomLabel,
		SellersWallet:       req.SellersWallet,
		Currency:            req.Currency,
		Amount:              req.Amount,
		AmountValue:         amount,
		StartDate:           start,
		DaysPerBillingCycle: req.DaysPerBillingCycle,
		NumberOfPayments:    req.NumberOfPayments,
		ChangeIndicatorURL:  req.ChangeIndicatorURL,
	}, nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
