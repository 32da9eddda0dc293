package validation

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"moneroreq/internal/domain/request"
)

var (
	amountRegex    = regexp.MustCompile(`^[0-9,.]+$`)
	startDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{1,3}Z$`)
)

// WalletPolicy selects which address kinds ValidWallet accepts.
type WalletPolicy struct {
	AllowStandard   bool
	AllowIntegrated bool
	AllowSubaddress bool
}

// DefaultWalletPolicy accepts standard and integrated addresses.
func DefaultWalletPolicy() WalletPolicy {
	return WalletPolicy{
		AllowStandard:   true,
		AllowIntegrated: true,
		AllowSubaddress: false,
	}
}

// ValidLabel accepts any well-formed UTF-8 text.
func ValidLabel(label string) bool {
	return utf8.ValidString(label)
}

// ValidWallet checks prefix, length and alphabet of a Monero address.
// Each policy flag independently admits its first character and its length:
// standard admits 4 and 95, subaddress admits 8 and 95, integrated admits 106.
func ValidWallet(address string, policy WalletPolicy) bool {
	if address == "" {
		return false
	}

	first := address[0]
	prefixOK := (policy.AllowStandard && first == StandardAddressPrefix) ||
		(policy.AllowSubaddress && first == SubaddressPrefix)
	if !prefixOK {
		return false
	}

	n := len(address)
	lengthOK := (policy.AllowStandard && n == StandardAddressLength) ||
		(policy.AllowSubaddress && n == SubaddressLength) ||
		(policy.AllowIntegrated && n == IntegratedAddressLength)
	if !lengthOK {
		return false
	}

	for i := 0; i < n; i++ {
		if strings.IndexByte(WalletAlphabet, address[i]) < 0 {
			return false
		}
	}
	return true
}

// ValidCurrency reports exact membership in the supported currencies.
func ValidCurrency(currency string) bool {
	for _, c := range request.SupportedCurrencies {
		if currency == c {
			return true
		}
	}
	return false
}

// ValidAmount accepts a non-empty run of digits, commas and periods.
func ValidAmount(amount string) bool {
	return amountRegex.MatchString(amount)
}

// ValidPaymentID accepts exactly 16 lowercase hex characters.
func ValidPaymentID(id string) bool {
	if len(id) != PaymentIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(PaymentIDAlphabet, id[i]) < 0 {
			return false
		}
	}
	return true
}

// ValidStartDate accepts "" (use the default) or a UTC timestamp shaped
// yyyy-MM-ddTHH:mm:ss.SSSZ naming a real calendar instant. One to three
// fraction digits are accepted.
func ValidStartDate(date string) bool {
	if date == "" {
		return true
	}
	if !startDateRegex.MatchString(date) {
		return false
	}
	_, err := request.ParseStartDate(date)
	return err == nil
}

// ValidDaysPerBillingCycle requires a non-negative count.
func ValidDaysPerBillingCycle(days int) bool {
	return days >= 0
}

// ValidNumberOfPayments requires a non-negative count.
func ValidNumberOfPayments(n int) bool {
	return n >= 0
}

// ValidChangeIndicatorURL accepts "" or an absolute URL with scheme and host.
func ValidChangeIndicatorURL(raw string) bool {
	if raw == "" {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// CheckPaymentRequest runs every field rule and collects all failures.
func CheckPaymentRequest(req *request.PaymentRequest, policy WalletPolicy) *Validator {
	v := New()
	v.Check(ValidLabel(req.CustomLabel), request.FieldCustomLabel,
		"is not valid UTF-8 text")
	v.Check(ValidWallet(req.SellersWallet, policy), request.FieldSellersWallet,
		"is not a valid address for the allowed address kinds")
	v.Check(ValidCurrency(req.Currency), request.FieldCurrency,
		"is not a supported currency")
	v.Check(ValidAmount(req.Amount), request.FieldAmount,
		"must be non-empty and contain only digits, ',' and '.'")
	v.Check(ValidPaymentID(req.PaymentID), request.FieldPaymentID,
		"must be exactly 16 lowercase hex characters")
	v.Check(ValidStartDate(req.StartDate), request.FieldStartDate,
		"must look like 2006-01-02T15:04:05.000Z")
	v.Check(ValidDaysPerBillingCycle(req.DaysPerBillingCycle), request.FieldDaysPerBillingCycle,
		"must not be negative")
	v.Check(ValidNumberOfPayments(req.NumberOfPayments), request.FieldNumberOfPayments,
		"must not be negative")
	v.Check(ValidChangeIndicatorURL(req.ChangeIndicatorURL), request.FieldChangeIndicatorURL,
		"must be empty or an absolute URL")
	return v
}

// ValidatePaymentRequest returns an invalid-argument error naming the
// first field that fails, in Fields order.
func ValidatePaymentRequest(req *request.PaymentRequest, policy WalletPolicy) error {
	return CheckPaymentRequest(req, policy).Err()
}
