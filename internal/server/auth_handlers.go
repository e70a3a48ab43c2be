package server

import (
	"fmt"
	"strconv"
	"time"

	"kanban/internal/models"
	"kanban/internal/observability"
	"kanban/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer      = "kanban-api"
	tokenAudience    = "kanban-client"
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

// Register handles POST /api/auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username, email, and password are required"))
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError("username", err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError("email", err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError("password", err.Error()))
	}

	// Check if user already exists
	existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewFieldValidationError("email", "User already exists"))
	}
	existing, err = s.userRepo.GetByUsername(c.Context(), req.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewFieldValidationError("username", "Username is already taken"))
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, createErr)
	}

	access, refresh, err := s.generateTokenPair(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":         access,
		"refresh_token": refresh,
		"user":          user,
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		observability.AuthFailures.WithLabelValues("unknown_user").Inc()
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		observability.AuthFailures.WithLabelValues("bad_password").Inc()
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	access, refresh, err := s.generateTokenPair(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token":         access,
		"refresh_token": refresh,
		"user":          user,
	})
}

// Refresh handles POST /api/auth/refresh. A valid refresh token is rotated:
// the presented token's jti is denylisted for its remaining lifetime and a
// fresh access/refresh pair is issued.
func (s *Server) Refresh(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("refresh_token is required"))
	}

	claims, err := s.parseRefreshToken(req.RefreshToken)
	if err != nil {
		observability.AuthFailures.WithLabelValues("invalid_refresh").Inc()
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid or expired refresh token"))
	}

	jti, _ := claims["jti"].(string)
	if jti != "" {
		revoked, err := s.denylist.IsRevoked(c.Context(), jti)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		if revoked {
			observability.AuthFailures.WithLabelValues("revoked_refresh").Inc()
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Refresh token has been revoked"))
		}
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid user ID in token"))
	}

	// The subject must still exist; deleted accounts cannot refresh.
	user, err := s.userRepo.GetByID(c.Context(), uint(userID))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid or expired refresh token"))
	}

	// Rotate: the presented token is single-use.
	if jti != "" {
		if err := s.denylist.Revoke(c.Context(), jti, remainingTTL(claims)); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
	}

	access, refresh, err := s.generateTokenPair(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	observability.TokenRefreshes.Inc()

	return c.JSON(fiber.Map{
		"token":         access,
		"refresh_token": refresh,
	})
}

// Logout handles POST /api/auth/logout. The presented refresh token is
// denylisted so it cannot mint further access tokens.
func (s *Server) Logout(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("refresh_token is required"))
	}

	claims, err := s.parseRefreshToken(req.RefreshToken)
	if err != nil {
		// An invalid token is already unusable; report success.
		return c.JSON(fiber.Map{"message": "Logged out"})
	}

	if jti, _ := claims["jti"].(string); jti != "" {
		if err := s.denylist.Revoke(c.Context(), jti, remainingTTL(claims)); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// generateTokenPair creates a short-lived access token and a long-lived
// refresh token for the given user.
func (s *Server) generateTokenPair(userID uint, username string) (string, string, error) {
	access, err := s.generateToken(userID, username, tokenTypeAccess, accessTokenTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.generateToken(userID, username, tokenTypeRefresh, refreshTokenTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// generateToken creates a JWT token for the given user ID and username
func (s *Server) generateToken(userID uint, username, typ string, ttl time.Duration) (string, error) {
	// Validate secret exists
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10), // Subject (user ID as string)
		"username": username,                               // Username (cached in token)
		"typ":      typ,                                    // Token type (access or refresh)
		"iss":      tokenIssuer,                            // Issuer
		"aud":      tokenAudience,                          // Audience
		"exp":      now.Add(ttl).Unix(),                    // Expiration
		"iat":      now.Unix(),                             // Issued at
		"nbf":      now.Unix(),                             // Not before
		"jti":      generateJTI(),                          // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// parseRefreshToken validates a refresh token's signature, registered claims
// and type, returning its claims.
func (s *Server) parseRefreshToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithAudience(tokenAudience), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	if typ, _ := claims["typ"].(string); typ != tokenTypeRefresh {
		return nil, fmt.Errorf("not a refresh token")
	}
	return claims, nil
}

// remainingTTL computes how long the token's exp claim is still in the future.
func remainingTTL(claims jwt.MapClaims) time.Duration {
	exp, ok := claims["exp"].(float64)
	if !ok {
		return refreshTokenTTL
	}
	return time.Until(time.Unix(int64(exp), 0))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
