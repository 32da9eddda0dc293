package paymentcode

import (
	"moneroreq/internal/codec/envelope"
	"moneroreq/internal/domain/request"
	"moneroreq/internal/validation"
)

// Config holds the defaults a Codec applies and the collaborators it reads.
type Config struct {
	// DefaultLabel pre-fills CustomLabel in NewRequest.
	DefaultLabel string
	// DefaultVersion is used when Build is given an empty version.
	DefaultVersion string
	// DefaultDaysPerBillingCycle and DefaultNumberOfPayments pre-fill
	// the schedule in NewRequest.
	DefaultDaysPerBillingCycle int
	DefaultNumberOfPayments    int
	// WalletPolicy selects the accepted address kinds.
	WalletPolicy validation.WalletPolicy
	// MaxPayloadBytes caps decompressed payloads on decode.
	MaxPayloadBytes int64

	// Clock supplies the default start date. Nil means SystemClock.
	Clock Clock
	// Random supplies default payment ids. Nil means CryptoRandom.
	Random RandomSource
}

// DefaultConfig returns the documented defaults: the placeholder label,
// version 1, a 30 day cycle, one payment, standard and integrated
// addresses, and a 64 KiB payload ceiling.
func DefaultConfig() Config {
	return Config{
		DefaultLabel:               request.DefaultLabel,
		DefaultVersion:             envelope.VersionV1,
		DefaultDaysPerBillingCycle: request.DefaultDaysPerBillingCycle,
		DefaultNumberOfPayments:    request.DefaultNumberOfPayments,
		WalletPolicy:               validation.DefaultWalletPolicy(),
		MaxPayloadBytes:            envelope.DefaultMaxPayloadBytes,
	}
}
