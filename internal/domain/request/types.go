// Package request defines the payment request entity carried inside a
// payment request code.
package request

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"moneroreq/internal/codec/flat"
)

// Field names. They are also the keys of the serialized payload.
const (
	FieldCustomLabel         = "custom_label"
	FieldSellersWallet       = "sellers_wallet"
	FieldCurrency            = "currency"
	FieldAmount              = "amount"
	FieldPaymentID           = "payment_id"
	FieldStartDate           = "start_date"
	FieldDaysPerBillingCycle = "days_per_billing_cycle"
	FieldNumberOfPayments    = "number_of_payments"
	FieldChangeIndicatorURL  = "change_indicator_url"
)

// Fields lists every field in validation order.
var Fields = []string{
	FieldCustomLabel,
	FieldSellersWallet,
	FieldCurrency,
	FieldAmount,
	FieldPaymentID,
	FieldStartDate,
	FieldDaysPerBillingCycle,
	FieldNumberOfPayments,
	FieldChangeIndicatorURL,
}

// Supported currencies.
const (
	CurrencyXMR = "XMR"
	CurrencyUSD = "USD"
)

var SupportedCurrencies = []string{CurrencyXMR, CurrencyUSD}

const (
	// DefaultLabel is used when the issuer gives no label.
	DefaultLabel = "Unlabeled Monero Payment Request"

	DefaultDaysPerBillingCycle = 30
	DefaultNumberOfPayments    = 1

	// StartDateLayout formats start dates: UTC, millisecond precision,
	// literal Z.
	StartDateLayout = "2006-01-02T15:04:05.000Z"

	// startDateParseLayout accepts any fractional second after the seconds.
	startDateParseLayout = "2006-01-02T15:04:05Z"
)

// PaymentRequest holds the recurring-payment parameters of one code.
type PaymentRequest struct {
	CustomLabel         string `json:"custom_label"`
	SellersWallet       string `json:"sellers_wallet"`
	Currency            string `json:"currency"`
	Amount              string `json:"amount"`
	PaymentID           string `json:"payment_id"`
	StartDate           string `json:"start_date"`
	DaysPerBillingCycle int    `json:"days_per_billing_cycle"`
	NumberOfPayments    int    `json:"number_of_payments"`
	ChangeIndicatorURL  string `json:"change_indicator_url"`
}

// ToObject returns the nine-field flat mapping that gets serialized.
func (r *PaymentRequest) ToObject() flat.Object {
	return flat.Object{
		FieldCustomLabel:         flat.Text(r.CustomLabel),
		FieldSellersWallet:       flat.Text(r.SellersWallet),
		FieldCurrency:            flat.Text(r.Currency),
		FieldAmount:              flat.Text(r.Amount),
		FieldPaymentID:           flat.Text(r.PaymentID),
		FieldStartDate:           flat.Text(r.StartDate),
		FieldDaysPerBillingCycle: flat.Int(int64(r.DaysPerBillingCycle)),
		FieldNumberOfPayments:    flat.Int(int64(r.NumberOfPayments)),
		FieldChangeIndicatorURL:  flat.Text(r.ChangeIndicatorURL),
	}
}

// FromObject builds a PaymentRequest from a decoded mapping. Text fields
// take the plain-text rendering of whatever scalar was decoded; missing
// keys stay empty. The count fields go through CountValue.
func FromObject(obj flat.Object) *PaymentRequest {
	return &PaymentRequest{
		CustomLabel:         obj.Text(FieldCustomLabel),
		SellersWallet:       obj.Text(FieldSellersWallet),
		Currency:            obj.Text(FieldCurrency),
		Amount:              obj.Text(FieldAmount),
		PaymentID:           obj.Text(FieldPaymentID),
		StartDate:           obj.Text(FieldStartDate),
		DaysPerBillingCycle: int(CountValue(obj[FieldDaysPerBillingCycle])),
		NumberOfPayments:    int(CountValue(obj[FieldNumberOfPayments])),
		ChangeIndicatorURL:  obj.Text(FieldChangeIndicatorURL),
	}
}

// CountValue coerces a decoded count to a non-negative integer. Anything
// that is not a non-negative integer, including a missing key, yields 0.
func CountValue(v flat.Value) int64 {
	n, ok := v.Int()
	if !ok || n < 0 || n > maxCount {
		return 0
	}
	return n
}

// maxCount keeps counts inside a 32-bit int.
const maxCount = 1<<31 - 1

// CoerceCounts rewrites both count fields of obj as ints, in place.
func CoerceCounts(obj flat.Object) {
	obj[FieldDaysPerBillingCycle] = flat.Int(CountValue(obj[FieldDaysPerBillingCycle]))
	obj[FieldNumberOfPayments] = flat.Int(CountValue(obj[FieldNumberOfPayments]))
}

// FormatStartDate renders t in UTC, truncated to milliseconds.
func FormatStartDate(t time.Time) string {
	return t.UTC().Truncate(time.Millisecond).Format(StartDateLayout)
}

// ParseStartDate parses a start date. Callers wanting the exact wire shape
// check it separately; see validation.ValidStartDate.
func ParseStartDate(s string) (time.Time, error) {
	return time.Parse(startDateParseLayout, s)
}

// AmountDecimal interprets Amount as a number. Commas are read as thousands
// separators and only in the integer part, in groups of three after the
// first; any other comma placement, such as "1.000,50", has no numeric
// reading. The wire value itself is never rewritten.
func (r *PaymentRequest) AmountDecimal() (decimal.Decimal, error) {
	whole, frac, hasFrac := strings.Cut(r.Amount, ".")
	if strings.Contains(frac, ",") {
		return decimal.Decimal{}, fmt.Errorf("amount %q: comma after decimal point", r.Amount)
	}
	if strings.Contains(whole, ",") {
		groups := strings.Split(whole, ",")
		for i, g := range groups {
			if g == "" || len(g) > 3 || (i > 0 && len(g) != 3) {
				return decimal.Decimal{}, fmt.Errorf("amount %q: irregular digit grouping", r.Amount)
			}
		}
		whole = strings.Join(groups, "")
	}
	if hasFrac {
		return decimal.NewFromString(whole + "." + frac)
	}
	return decimal.NewFromString(whole)
}

// Schedule returns up to limit due dates: the start date, then one per
// billing cycle. NumberOfPayments bounds the list when positive; a zero
// billing cycle yields only the start date.
func (r *PaymentRequest) Schedule(limit int) ([]time.Time, error) {
	start, err := ParseStartDate(r.StartDate)
	if err != nil {
		return nil, err
	}

	n := limit
	if r.NumberOfPayments > 0 && r.NumberOfPayments < n {
		n = r.NumberOfPayments
	}
	if r.DaysPerBillingCycle == 0 && n > 1 {
		n = 1
	}
	if n <= 0 {
		return []time.Time{}, nil
	}

	due := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		due = append(due, start.AddDate(0, 0, i*r.DaysPerBillingCycle))
	}
	return due, nil
}
