package middleware

import (
	"strconv"
	"strings"

	"kanban/internal/config"
	"kanban/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// Token issuer and audience baked into every token this service mints.
const (
	TokenIssuer   = "kanban-api"
	TokenAudience = "kanban-client"
)

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

func unauthorized(c *fiber.Ctx, reason, message string) error {
	observability.AuthFailures.WithLabelValues(reason).Inc()
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
	})
}

// AuthRequired is a middleware that enforces authentication for protected routes.
// It accepts access tokens only; refresh tokens are rejected here.
func AuthRequired(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return unauthorized(c, "missing_header", "Authorization header required")
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return unauthorized(c, "malformed_header", "Invalid authorization header format")
	}

	tokenString := parts[1]

	// Parse and validate token
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithIssuer(TokenIssuer), jwt.WithAudience(TokenAudience), jwt.WithExpirationRequired())

	if err != nil || !token.Valid {
		return unauthorized(c, "invalid_token", "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return unauthorized(c, "invalid_claims", "Invalid token claims")
	}

	// Refresh tokens carry typ=refresh and must not grant API access.
	if typ, _ := claims["typ"].(string); typ != "access" {
		return unauthorized(c, "wrong_token_type", "Invalid token type")
	}

	// Extract user ID from "sub" claim (subject claim per RFC 7519)
	subClaim, ok := claims["sub"]
	if !ok {
		return unauthorized(c, "missing_subject", "Invalid token structure - missing subject")
	}

	subStr, ok := subClaim.(string)
	if !ok {
		return unauthorized(c, "invalid_subject", "Invalid token subject type")
	}

	userIDVal, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return unauthorized(c, "invalid_subject", "Invalid user ID in token")
	}

	// Store user ID in context
	c.Locals("userID", uint(userIDVal))

	return c.Next()
}
