// Package paymentcode builds payment request codes from payment requests
// and parses them back.
//
// A Codec holds no per-call state; one instance can serve any number of
// goroutines.
package paymentcode

import (
	"fmt"

	"moneroreq/internal/codec/envelope"
	"moneroreq/internal/codec/flat"
	"moneroreq/internal/domain/request"
	domainErrors "moneroreq/internal/errors"
	"moneroreq/internal/validation"
)

// Codec is the encode/decode entry point.
type Codec struct {
	cfg      Config
	registry *envelope.Registry
}

// New returns a Codec using cfg. Zero-valued collaborators are replaced by
// SystemClock and CryptoRandom, an empty DefaultVersion by version 1.
func New(cfg Config) *Codec {
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.Random == nil {
		cfg.Random = CryptoRandom{}
	}
	if cfg.DefaultVersion == "" {
		cfg.DefaultVersion = envelope.VersionV1
	}
	return &Codec{
		cfg:      cfg,
		registry: envelope.NewDefaultRegistry(cfg.MaxPayloadBytes),
	}
}

// Config returns the effective configuration.
func (c *Codec) Config() Config {
	return c.cfg
}

// Versions lists the wire versions this codec can build and parse.
func (c *Codec) Versions() []string {
	return c.registry.Versions()
}

// NewRequest returns a request pre-filled with the configured defaults.
func (c *Codec) NewRequest() *request.PaymentRequest {
	return &request.PaymentRequest{
		CustomLabel:         c.cfg.DefaultLabel,
		DaysPerBillingCycle: c.cfg.DefaultDaysPerBillingCycle,
		NumberOfPayments:    c.cfg.DefaultNumberOfPayments,
	}
}

// ApplyDefaults fills an empty PaymentID with a random one and an empty
// StartDate with the current time. Explicit values are left untouched.
func (c *Codec) ApplyDefaults(req *request.PaymentRequest) error {
	if req.PaymentID == "" {
		id, err := NewPaymentID(c.cfg.Random)
		if err != nil {
			return fmt.Errorf("generate payment id: %w", err)
		}
		req.PaymentID = id
	}
	if req.StartDate == "" {
		req.StartDate = request.FormatStartDate(c.cfg.Clock.Now())
	}
	return nil
}

// Build applies defaults to req in place, validates it and returns the
// code for version ("" means the configured default version).
func (c *Codec) Build(req *request.PaymentRequest, version string) (string, error) {
	if version == "" {
		version = c.cfg.DefaultVersion
	}
	if err := c.ApplyDefaults(req); err != nil {
		return "", err
	}
	if err := validation.ValidatePaymentRequest(req, c.cfg.WalletPolicy); err != nil {
		return "", err
	}
	return c.registry.Encode(flat.Marshal(req.ToObject()), version)
}

// ParseObject decodes code into its flat mapping with both count fields
// coerced to non-negative ints. Other fields are returned as decoded and
// are not validated.
func (c *Codec) ParseObject(code string) (flat.Object, error) {
	_, payload, err := c.registry.Decode(code)
	if err != nil {
		return nil, err
	}
	obj, err := flat.Unmarshal(payload)
	if err != nil {
		return nil, domainErrors.MalformedPayload("payload parse", err)
	}
	request.CoerceCounts(obj)
	return obj, nil
}

// Parse decodes code into a PaymentRequest.
func (c *Codec) Parse(code string) (*request.PaymentRequest, error) {
	obj, err := c.ParseObject(code)
	if err != nil {
		return nil, err
	}
	return request.FromObject(obj), nil
}
