// Command merchant_token mints a bearer token for the issuing endpoints.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"moneroreq/internal/config"
	"moneroreq/internal/middleware"
	"moneroreq/internal/models"
)

func main() {
	config.LoadEnv()

	secret := os.Getenv("JWT_SECRET")
	merchantID := os.Getenv("MERCHANT_ID")
	if secret == "" || merchantID == "" {
		log.Fatal("JWT_SECRET and MERCHANT_ID must be set in environment")
	}
	role := config.GetEnv("MERCHANT_ROLE", "merchant")
	ttl := config.GetDurationEnv("TOKEN_TTL", 30*24*time.Hour)

	now := time.Now()
	token, err := middleware.SignMerchantToken(secret, &models.MerchantClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   merchantID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		MerchantID:  merchantID,
		Role:        role,
		Permissions: models.GetDefaultPermissions(role),
	})
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Println(token)
}
