package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"context"
	"errors"
	"fixmycondo/config"
	"fixmycondo/shared"
	"fixmycondo/shared/cache"
	"fixmycondo/shared/timezone"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")
	ErrRevokedToken = errors.New("token has been revoked")
	ErrReusedToken  = errors.New("refresh token has already been used")
)

const (
	bearerPrefix       = "Bearer "
	cacheRevokedBefore = "jwt:revoked"
	cacheUsedRefresh   = "jwt:used"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

type Claims struct {
	UserID   string    `json:"user_id"`
	Email    string    `json:"email"`
	Role     string    `json:"role,omitempty"`
	TokenID  string    `json:"token_id"`
	Type     TokenType `json:"type"`
	IssuedAt time.Time `json:"iat"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type JWT interface {
	GenerateTokenPair(ctx context.Context, userID, email, role string) (*TokenPair, error)
	ValidateToken(ctx context.Context, tokenString string, tokenType TokenType) (*Claims, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error)
	// RevokeUser invalidates every token issued to the user up to now.
	RevokeUser(ctx context.Context, userID string) error
}

type Service struct {
	config *config.Config
	cache  cache.RedisCache
}

func New(cfg *config.Config, cache cache.RedisCache) JWT {
	return &Service{
		config: cfg,
		cache:  cache,
	}
}

func (s *Service) GenerateTokenPair(_ context.Context, userID, email, role string) (*TokenPair, error) {
	now := timezone.Now()

	accessToken, err := s.generateToken(userID, email, role, AccessToken, now, s.config.JWT.AccessExpireMin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.generateToken(userID, email, role, RefreshToken, now, s.config.JWT.RefreshExpireMin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    strings.TrimSpace(bearerPrefix),
		ExpiresIn:    int64(s.config.JWT.AccessExpireMin * 60),
	}, nil
}

func (s *Service) generateToken(userID, email, role string, tokenType TokenType, issuedAt time.Time, expireMin int) (string, error) {
	secret, err := s.secret(tokenType)
	if err != nil {
		return "", err
	}

	tokenID := uuid.NewString()

	claims := Claims{
		UserID:   userID,
		Email:    email,
		Role:     role,
		TokenID:  tokenID,
		Type:     tokenType,
		IssuedAt: issuedAt,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Duration(expireMin) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			Issuer:    s.config.App.Name,
			Subject:   userID,
			ID:        tokenID,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (s *Service) secret(tokenType TokenType) (string, error) {
	switch tokenType {
	case AccessToken:
		return s.config.JWT.AccessSecret, nil
	case RefreshToken:
		return s.config.JWT.RefreshSecret, nil
	default:
		return "", fmt.Errorf("unknown token type: %s", tokenType)
	}
}

func (s *Service) ValidateToken(ctx context.Context, tokenString string, tokenType TokenType) (*Claims, error) {
	secret, err := s.secret(tokenType)
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(secret), nil
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

	if s.revoked(ctx, claims) {
		return nil, ErrRevokedToken
	}

	return claims, nil
}

// revoked fails open when the cache is unreachable.
func (s *Service) revoked(ctx context.Context, claims *Claims) bool {
	if s.cache == nil {
		return false
	}

	var revokedBefore int64

	err := s.cache.Get(ctx, shared.BuildCacheKey(cacheRevokedBefore, claims.UserID), &revokedBefore)
	if err != nil {
		if !errors.Is(err, cache.Nil) {
			log.Warn().Err(err).Str("userID", claims.UserID).Msg("failed to read token revocation")
		}

		return false
	}

	return !claims.IssuedAt.After(time.Unix(0, revokedBefore))
}

func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.ValidateToken(ctx, refreshToken, RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	if err := s.spend(ctx, claims); err != nil {
		return nil, err
	}

	return s.GenerateTokenPair(ctx, claims.UserID, claims.Email, claims.Role)
}

// spend makes a refresh token single use. Like revocation it fails open when the cache is down.
func (s *Service) spend(ctx context.Context, claims *Claims) error {
	if s.cache == nil || claims.ExpiresAt == nil {
		return nil
	}

	ttl := int(time.Until(claims.ExpiresAt.Time).Seconds()) + 1

	first, err := s.cache.Claim(ctx, shared.BuildCacheKey(cacheUsedRefresh, claims.TokenID), ttl)
	if err != nil {
		log.Warn().Err(err).Str("userID", claims.UserID).Msg("failed to mark refresh token as used")

		return nil
	}

	if !first {
		log.Warn().Str("userID", claims.UserID).Str("tokenID", claims.TokenID).Msg("refresh token replayed")

		return ErrReusedToken
	}

	return nil
}

func (s *Service) RevokeUser(ctx context.Context, userID string) error {
	ttl := s.config.JWT.RefreshExpireMin * 60

	err := s.cache.Save(ctx, shared.BuildCacheKey(cacheRevokedBefore, userID), timezone.Now().UnixNano(), ttl)
	if err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}

	return nil
}

// ExtractTokenFromHeader returns the token of a "Bearer <token>" header.
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
