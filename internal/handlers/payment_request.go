package handlers

import (
	"github.com/gofiber/fiber/v2"

	"moneroreq/internal/domain/request"
	domainErrors "moneroreq/internal/errors"
	"moneroreq/internal/middleware"
	"moneroreq/internal/services/paymentrequest"
	"moneroreq/internal/utils/pagination"
	"moneroreq/internal/utils/response"
)

// DefaultScheduleCount is used when the schedule query has no count.
const DefaultScheduleCount = 12

type PaymentRequestHandler struct {
	service paymentrequest.Service
}

func NewPaymentRequestHandler(service paymentrequest.Service) *PaymentRequestHandler {
	return &PaymentRequestHandler{
		service: service,
	}
}

// issueBody is a payment request plus the wire version. Keys missing from
// the JSON keep the configured defaults.
type issueBody struct {
	request.PaymentRequest
	Version string `json:"version"`
}

type decodeBody struct {
	Code string `json:"code"`
}

// Issue builds a new code and records it in the ledger.
func (h *PaymentRequestHandler) Issue(c *fiber.Ctx) error {
	body := issueBody{PaymentRequest: *h.service.NewRequest()}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	res, err := h.service.Issue(c.UserContext(), paymentrequest.IssueRequest{
		Request:    body.PaymentRequest,
		Version:    body.Version,
		MerchantID: middleware.MerchantID(c),
	})
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Created(c, "Payment request issued", res)
}

// Decode returns the request carried by a code.
func (h *PaymentRequestHandler) Decode(c *fiber.Ctx) error {
	var body decodeBody
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if body.Code == "" {
		return response.DomainError(c, domainErrors.InvalidArgument("code", "must not be empty"))
	}

	req, err := h.service.Decode(c.UserContext(), body.Code)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Payment request decoded", req)
}

// Lookup returns the ledger row for a payment id.
func (h *PaymentRequestHandler) Lookup(c *fiber.Ctx) error {
	rec, err := h.service.Lookup(c.UserContext(), c.Params("payment_id"))
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Payment request retrieved", rec)
}

// ListByWallet pages through the ledger rows of one wallet.
func (h *PaymentRequestHandler) ListByWallet(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c, paymentrequest.DefaultPageLimit)

	page, err := h.service.ListByWallet(c.UserContext(), c.Params("wallet"), p.Limit, p.Offset)
	if err != nil {
		return response.DomainError(c, err)
	}

	return c.JSON(pagination.Response(pagination.FromOffset(page.Limit, page.Offset, page.Total), page.Items))
}

// Schedule lists the due dates of a code.
func (h *PaymentRequestHandler) Schedule(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return response.DomainError(c, domainErrors.InvalidArgument("code", "must not be empty"))
	}

	res, err := h.service.Schedule(c.UserContext(), code, c.QueryInt("count", DefaultScheduleCount))
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Payment schedule computed", res)
}
