package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// IssuedPaymentRequest is the ledger row written for every code the
// service issues. Amount keeps the verbatim wire value; AmountValue is its
// numeric reading when one exists.
type IssuedPaymentRequest struct {
	ID                  string              `gorm:"type:uuid;primaryKey" json:"id"`
	Code                string              `gorm:"type:text;not null" json:"code"`
	Version             string              `gorm:"size:8;not null" json:"version"`
	MerchantID          string              `gorm:"size:64;index" json:"merchant_id,omitempty"`
	PaymentID           string              `gorm:"size:16;not null;index" json:"payment_id"`
	CustomLabel         string              `gorm:"type:text" json:"custom_label"`
	SellersWallet       string              `gorm:"size:106;not null;index" json:"sellers_wallet"`
	Currency            string              `gorm:"size:3;not null" json:"currency"`
	Amount              string              `gorm:"type:text;not null" json:"amount"`
	AmountValue         decimal.NullDecimal `gorm:"type:numeric(36,12)" json:"amount_value"`
	StartDate           time.Time           `gorm:"not null" json:"start_date"`
	DaysPerBillingCycle int                 `gorm:"not null" json:"days_per_billing_cycle"`
	NumberOfPayments    int                 `gorm:"not null" json:"number_of_payments"`
	ChangeIndicatorURL  string              `gorm:"type:text" json:"change_indicator_url"`
	CreatedAt           time.Time           `gorm:"index" json:"created_at"`
}

// amount_value column limits: numeric(36,12) leaves 24 integer digits.
const (
	AmountValueScale         = 12
	AmountValueIntegerDigits = 24
)

var amountValueLimit = decimal.New(1, AmountValueIntegerDigits)

// LedgerAmount returns d as an amount_value, or null when the column could
// not hold it exactly: magnitudes of 10^24 and above overflow it, and more
// than 12 significant fraction digits would be rounded.
func LedgerAmount(d decimal.Decimal) decimal.NullDecimal {
	if d.Abs().Cmp(amountValueLimit) >= 0 {
		return decimal.NullDecimal{}
	}
	if !d.Equal(d.Truncate(AmountValueScale)) {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// TableName pins the table name.
func (IssuedPaymentRequest) TableName() string {
	return "issued_payment_requests"
}
