package tenant

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaimConfig configures NewTokenClaimStrategy.
type TokenClaimConfig struct {
	// Claim is the JWT claim holding the tenant identifier. Defaults to "tid".
	Claim string
	// Header is the header carrying the bearer token. Defaults to "Authorization".
	Header string
	// SigningKey enables HMAC signature verification. When empty the claims
	// are decoded without verification; the surrounding auth layer is then
	// expected to have validated the token already.
	SigningKey []byte
}

// NewTokenClaimStrategy extracts the tenant identifier from a JWT claim in a
// bearer token. A missing or non-bearer header is "not found"; a token that
// cannot be parsed (or fails verification) is malformed input and reported as
// an error so the chain can log it and fall through.
func NewTokenClaimStrategy(cfg TokenClaimConfig) Strategy {
	if cfg.Claim == "" {
		cfg.Claim = "tid"
	}
	if cfg.Header == "" {
		cfg.Header = "Authorization"
	}

	return StrategyFunc(func(req *http.Request) (*Match, error) {
		raw := bearerToken(req.Header.Get(cfg.Header))
		if raw == "" {
			return nil, nil
		}

		claims := jwt.MapClaims{}
		if len(cfg.SigningKey) > 0 {
			_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				return cfg.SigningKey, nil
			}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
			}
		} else {
			if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
			}
		}

		value, ok := claims[cfg.Claim]
		if !ok {
			return nil, nil
		}

		id, err := claimToIdentifier(value)
		if err != nil {
			return nil, err
		}
		if id == "" {
			return nil, nil
		}

		return &Match{
			Identifier: id,
			Meta:       map[string]string{MetaRaw: cfg.Claim},
		}, nil
	})
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// claimToIdentifier converts the common JSON claim value shapes to a string
// identifier. JSON numbers decode as float64.
func claimToIdentifier(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	default:
		return "", fmt.Errorf("%w: unsupported claim type %T", ErrInvalidToken, v)
	}
}
