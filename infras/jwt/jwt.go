package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ymjo140/rendezvous-merchant-sub000/config"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/timezone"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
	// CheckInToken is handed to a guest and redeemed once at the door.
	CheckInToken TokenType = "checkin"
)

const bearerPrefix = "Bearer "

// Identity is who a token pair is issued to.
type Identity struct {
	UserID  string
	StoreID string
	Email   string
	Role    string
}

type Claims struct {
	UserID        string    `json:"user_id,omitempty"`
	StoreID       string    `json:"store_id"`
	Email         string    `json:"email,omitempty"`
	Role          string    `json:"role,omitempty"`
	ReservationID string    `json:"reservation_id,omitempty"`
	Type          TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type JWT interface {
	GenerateTokenPair(identity Identity) (*TokenPair, error)
	GenerateCheckInToken(reservationID, storeID string, expiresAt time.Time) (string, error)
	ValidateToken(tokenString string, tokenType TokenType) (*Claims, error)
	RefreshTokens(refreshToken string) (*TokenPair, error)
}

type Service struct {
	config *config.Config
}

func New(cfg *config.Config) JWT {
	return &Service{
		config: cfg,
	}
}

func (s *Service) secret(tokenType TokenType) ([]byte, error) {
	switch tokenType {
	case AccessToken:
		return []byte(s.config.JWT.AccessSecret), nil
	case RefreshToken:
		return []byte(s.config.JWT.RefreshSecret), nil
	case CheckInToken:
		return []byte(s.config.JWT.CheckInSecret), nil
	default:
		return nil, fmt.Errorf("unknown token type: %s", tokenType)
	}
}

func (s *Service) GenerateTokenPair(identity Identity) (*TokenPair, error) {
	now := timezone.Now()

	access, err := s.sign(s.claims(identity, AccessToken, now, now.Add(time.Duration(s.config.JWT.AccessExpireMin)*time.Minute)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := s.sign(s.claims(identity, RefreshToken, now, now.Add(time.Duration(s.config.JWT.RefreshExpireMin)*time.Minute)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    strings.TrimSpace(bearerPrefix),
		ExpiresIn:    int64(s.config.JWT.AccessExpireMin * 60),
	}, nil
}

// GenerateCheckInToken signs a token scoped to one reservation that expires
// when the reservation does.
func (s *Service) GenerateCheckInToken(reservationID, storeID string, expiresAt time.Time) (string, error) {
	now := timezone.Now()
	if !expiresAt.After(now) {
		return "", fmt.Errorf("check-in token would already be expired at %s", expiresAt.Format(time.RFC3339))
	}

	claims := s.claims(Identity{StoreID: storeID}, CheckInToken, now, expiresAt)
	claims.ReservationID = reservationID
	claims.Subject = reservationID

	token, err := s.sign(claims)
	if err != nil {
		return "", fmt.Errorf("failed to generate check-in token: %w", err)
	}

	return token, nil
}

func (s *Service) claims(identity Identity, tokenType TokenType, issuedAt, expiresAt time.Time) Claims {
	tokenID := uuid.NewString()

	return Claims{
		UserID:  identity.UserID,
		StoreID: identity.StoreID,
		Email:   identity.Email,
		Role:    identity.Role,
		Type:    tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			Issuer:    s.config.App.Name,
			Subject:   identity.UserID,
			ID:        tokenID,
		},
	}
}

func (s *Service) sign(claims Claims) (string, error) {
	secret, err := s.secret(claims.Type)
	if err != nil {
		return "", err
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (s *Service) ValidateToken(tokenString string, tokenType TokenType) (*Claims, error) {
	secret, err := s.secret(tokenType)
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Type != tokenType {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

func (s *Service) RefreshTokens(refreshToken string) (*TokenPair, error) {
	claims, err := s.ValidateToken(refreshToken, RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	return s.GenerateTokenPair(Identity{
		UserID:  claims.UserID,
		StoreID: claims.StoreID,
		Email:   claims.Email,
		Role:    claims.Role,
	})
}

func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is required")
	}

	token, ok := strings.CutPrefix(authHeader, bearerPrefix)
	if !ok || token == "" {
		return "", errors.New("authorization header must start with 'Bearer '")
	}

	return token, nil
}
