package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"bac_exam_platform/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidRefreshToken = errors.New("Jeton de rafraîchissement invalide ou expiré")

const (
	DefaultAccessTTL  = 24 * time.Hour
	DefaultRefreshTTL = 365 * 24 * time.Hour
)

// TokenService issues visitor identities and their token pairs.
type TokenService struct {
	Store      RefreshStore
	JWTSecret  []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	now        func() time.Time
}

func NewTokenService(store RefreshStore, jwtSecret []byte) *TokenService {
	return &TokenService{
		Store:      store,
		JWTSecret:  jwtSecret,
		AccessTTL:  DefaultAccessTTL,
		RefreshTTL: DefaultRefreshTTL,
		now:        time.Now,
	}
}

// IssueVisitor registers a new visitor and returns its first token pair.
func (s *TokenService) IssueVisitor(ctx context.Context) (*models.VisitorTokens, error) {
	visitorID := uuid.NewString()
	if err := s.Store.CreateVisitor(ctx, visitorID); err != nil {
		return nil, fmt.Errorf("creating visitor: %w", err)
	}
	return s.GenerateTokens(ctx, visitorID)
}

// GenerateTokens creates an access token and a refresh token. The refresh
// token is "selector.verifier"; only a bcrypt hash of the verifier is kept.
func (s *TokenService) GenerateTokens(ctx context.Context, visitorID string) (*models.VisitorTokens, error) {
	now := s.now()
	access := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.VisitorClaims{
		VisitorID: visitorID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	accessToken, err := access.SignedString(s.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}

	selector, err := randomHex(8)
	if err != nil {
		return nil, err
	}
	verifier, err := randomHex(16)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(verifier), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing refresh token: %w", err)
	}
	if err := s.Store.SaveRefresh(ctx, RefreshRecord{
		Selector:  selector,
		VisitorID: visitorID,
		Hash:      string(hash),
		ExpiresAt: now.Add(s.RefreshTTL),
	}); err != nil {
		return nil, fmt.Errorf("storing refresh token: %w", err)
	}

	return &models.VisitorTokens{
		VisitorID:    visitorID,
		AccessToken:  accessToken,
		RefreshToken: selector + "." + verifier,
	}, nil
}

// Refresh exchanges a refresh token for a new pair. The used refresh
// token is consumed before it is checked, so concurrent calls with the
// same token yield at most one new pair.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (*models.VisitorTokens, error) {
	selector, verifier, ok := strings.Cut(refreshToken, ".")
	if !ok || selector == "" || verifier == "" {
		return nil, ErrInvalidRefreshToken
	}

	rec, err := s.Store.ConsumeRefresh(ctx, selector)
	if errors.Is(err, ErrRefreshNotFound) {
		return nil, ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, fmt.Errorf("consuming refresh token: %w", err)
	}
	if !rec.ExpiresAt.After(s.now()) {
		return nil, ErrInvalidRefreshToken
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.Hash), []byte(verifier)) != nil {
		return nil, ErrInvalidRefreshToken
	}
	return s.GenerateTokens(ctx, rec.VisitorID)
}

// ParseAccessToken validates a visitor access token.
func (s *TokenService) ParseAccessToken(tokenString string) (*models.VisitorClaims, error) {
	claims := &models.VisitorClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.JWTSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.VisitorID == "" {
		return nil, errors.New("invalid visitor token")
	}
	return claims, nil
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
