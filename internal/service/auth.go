package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/fintrack/fintrack-go/internal/domain"
	"github.com/fintrack/fintrack-go/internal/port"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var authTracer = otel.Tracer("service/auth")

// Auth handles registration, login, token refresh and validation.
// Access tokens are HS256 JWTs; refresh tokens are opaque and stored hashed.
type Auth struct {
	store      port.AuthStore
	categories *Categories
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *zap.Logger
}

// NewAuth creates the auth service.
func NewAuth(store port.AuthStore, categories *Categories, jwtSecret string, accessTTL, refreshTTL time.Duration, logger *zap.Logger) *Auth {
	return &Auth{
		store:      store,
		categories: categories,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

// Register creates a user with a bcrypt password hash and seeds the default
// categories.
func (s *Auth) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.LoginResponse, error) {
	ctx, span := authTracer.Start(ctx, "Auth.Register")
	defer span.End()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, &domain.ErrValidation{Field: "email", Message: "required"}
	}
	if len(req.Password) < 8 {
		return nil, &domain.ErrValidation{Field: "password", Message: "must be at least 8 characters"}
	}

	existing, err := s.store.GetUserByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, &domain.ErrConflict{Message: "email already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         req.Name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.categories.SeedDefaults(ctx, user.ID)
	s.logger.Info("user registered", zap.String("user_id", user.ID))

	return s.issueTokens(ctx, user)
}

// Login verifies credentials and issues a token pair.
func (s *Auth) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	ctx, span := authTracer.Start(ctx, "Auth.Login")
	defer span.End()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, &domain.ErrUnauthorized{Message: "invalid credentials"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login: wrong password", zap.String("user_id", user.ID))
		return nil, &domain.ErrUnauthorized{Message: "invalid credentials"}
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates a refresh token and issues a new pair.
func (s *Auth) Refresh(ctx context.Context, req *domain.RefreshRequest) (*domain.LoginResponse, error) {
	ctx, span := authTracer.Start(ctx, "Auth.Refresh")
	defer span.End()

	tokenHash := hashToken(req.RefreshToken)
	stored, err := s.store.GetRefreshToken(ctx, tokenHash)
	if err != nil || stored == nil || stored.Revoked {
		return nil, &domain.ErrUnauthorized{Message: "invalid refresh token"}
	}
	if stored.ExpiresAt.Before(time.Now()) {
		// Cleanup only; the expiry check already rejects this token.
		if err := s.store.RevokeRefreshToken(ctx, tokenHash); err != nil {
			s.logger.Warn("refresh: failed to revoke expired token", zap.Error(err))
		}
		return nil, &domain.ErrUnauthorized{Message: "refresh token expired"}
	}

	// Rotation: the old token must die with this exchange. If the revoke
	// fails the old token would stay valid, so no new pair is issued.
	if err := s.store.RevokeRefreshToken(ctx, tokenHash); err != nil {
		return nil, fmt.Errorf("revoke rotated token: %w", err)
	}

	user, err := s.store.GetUserByID(ctx, stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes every refresh token the user holds.
func (s *Auth) Logout(ctx context.Context, userID string) error {
	ctx, span := authTracer.Start(ctx, "Auth.Logout")
	defer span.End()

	if err := s.store.RevokeAllRefreshTokens(ctx, userID); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	s.logger.Info("user logged out", zap.String("user_id", userID))
	return nil
}

// JWTClaims are the custom claims carried in access tokens.
type JWTClaims struct {
	Sub  string `json:"sub"`
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// ValidateAccessToken parses and verifies an access token, returning its claims.
func (s *Auth) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, &domain.ErrUnauthorized{Message: "invalid or expired token"}
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid || claims.Type != "access" {
		return nil, &domain.ErrUnauthorized{Message: "invalid token claims"}
	}
	return claims, nil
}

func (s *Auth) issueTokens(ctx context.Context, user *domain.User) (*domain.LoginResponse, error) {
	accessToken, err := s.signAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken, refreshHash, err := generateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.store.StoreRefreshToken(ctx, user.ID, refreshHash, time.Now().Add(s.refreshTTL)); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &domain.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.accessTTL.Seconds()),
		UserID:       user.ID,
		Name:         user.Name,
	}, nil
}

func (s *Auth) signAccessToken(userID string) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		Sub:  userID,
		Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "fintrack",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// generateRefreshToken returns the opaque token given to the client and the
// sha256 hash stored server-side.
func generateRefreshToken() (token, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	token = hex.EncodeToString(buf)
	return token, hashToken(token), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
