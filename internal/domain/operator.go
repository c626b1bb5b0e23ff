package domain

import "github.com/golang-jwt/jwt/v5"

// Claims são as claims JWT do operador autenticado na API administrativa.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

const RoleAdmin = "admin"
