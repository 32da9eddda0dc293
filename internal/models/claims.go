package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	PermissionPaymentRequestIssue = "payment_request:issue"
	PermissionPaymentRequestRead  = "payment_request:read"
)

// MerchantClaims identify the merchant issuing payment request codes.
type MerchantClaims struct {
	jwt.RegisteredClaims
	MerchantID  string   `json:"merchant_id"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// HasPermission checks if the claims include a specific permission
func (c *MerchantClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case "admin", "merchant":
		return []string{
			PermissionPaymentRequestIssue,
			PermissionPaymentRequestRead,
		}
	case "viewer":
		return []string{
			PermissionPaymentRequestRead,
		}
	default:
		return []string{}
	}
}
