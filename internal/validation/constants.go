package validation

const (
	// Wallet address shapes
	StandardAddressLength   = 95
	SubaddressLength        = 95
	IntegratedAddressLength = 106

	StandardAddressPrefix = '4'
	SubaddressPrefix      = '8'

	// Base58 without 0, I, O and l
	WalletAlphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

	PaymentIDLength   = 16
	PaymentIDAlphabet = "0123456789abcdef"
)
