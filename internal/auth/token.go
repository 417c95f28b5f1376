package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/procureflow/procureflow/internal/config"
	"github.com/procureflow/procureflow/internal/middleware"
)

// TokenPair access/refresh token pair
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// issueTokenPair signs an access/refresh pair whose claims carry the caller's
// role flags and vendor ID, so pipeline handlers can authorize without a
// second lookup.
func issueTokenPair(cfg config.JWTConfig, user *User) (*TokenPair, error) {
	now := time.Now()

	claims := middleware.JWTClaims{
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Manager: user.Role == RoleManager,
		Vendor:  user.Role == RoleVendor,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessTokenExpire)),
			ID:        uuid.New().String(),
		},
	}
	if user.VendorID != nil {
		claims.VendorID = *user.VendorID
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return nil, err
	}

	refreshClaims := claims
	refreshClaims.ExpiresAt = jwt.NewNumericDate(now.Add(cfg.RefreshTokenExpire))
	refreshClaims.ID = uuid.New().String()

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(cfg.AccessTokenExpire.Seconds()),
	}, nil
}

// parseToken verifies a signed token and returns its claims.
func parseToken(cfg config.JWTConfig, tokenString string) (*middleware.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &middleware.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*middleware.JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
