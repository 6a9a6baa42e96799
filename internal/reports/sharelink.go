package reports

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonathan/feedback-engine/internal/config"
)

// ShareClaims are the claims of a signed report share link.
type ShareClaims struct {
	AccessToken string `json:"access_token"`
	jwt.RegisteredClaims
}

// ShareLinks signs and verifies expiring links to a report.
type ShareLinks struct {
	config *config.ShareLinkConfig
	now    func() time.Time
}

// NewShareLinks creates a share link signer with the given configuration.
func NewShareLinks(cfg *config.ShareLinkConfig) *ShareLinks {
	return &ShareLinks{
		config: cfg,
		now:    time.Now,
	}
}

// Sign returns a signed token for the report's access token.
func (s *ShareLinks) Sign(accessToken string) (string, error) {
	if accessToken == "" {
		return "", fmt.Errorf("access token is empty")
	}

	now := s.now()
	expiresAt := now.Add(time.Duration(s.config.ExpirationHours) * time.Hour)

	claims := &ShareClaims{
		AccessToken: accessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign share link: %w", err)
	}

	return tokenString, nil
}

// URL returns baseURL with the signed token appended as the "token" query parameter.
func (s *ShareLinks) URL(baseURL, accessToken string) (string, error) {
	token, err := s.Sign(accessToken)
	if err != nil {
		return "", err
	}
	if baseURL == "" {
		return token, nil
	}

	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}
	return baseURL + sep + "token=" + url.QueryEscape(token), nil
}

// Verify validates a signed token and returns the access token it carries.
// Every failure wraps ErrInvalidShareLink.
func (s *ShareLinks) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", fmt.Errorf("%w: token string is empty", ErrInvalidShareLink)
	}

	claims := &ShareClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", fmt.Errorf("%w: invalid signature: %v", ErrInvalidShareLink, err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", fmt.Errorf("%w: link expired: %v", ErrInvalidShareLink, err)
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", fmt.Errorf("%w: malformed token: %v", ErrInvalidShareLink, err)
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidShareLink, err)
	}

	if !token.Valid || claims.AccessToken == "" {
		return "", fmt.Errorf("%w: token is not valid", ErrInvalidShareLink)
	}

	return claims.AccessToken, nil
}
