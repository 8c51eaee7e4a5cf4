package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the custom JWT claims issued by the auth service
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
