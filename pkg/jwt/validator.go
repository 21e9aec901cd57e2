package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Validator checks HS256 bearer tokens on the live-view endpoints. An
// empty secret disables auth and every token (or none) passes as "anon".
type Validator struct {
	secret string
	skew   time.Duration
}

func New(secret string, skew time.Duration) *Validator {
	return &Validator{secret: secret, skew: skew}
}

// Validate returns the token subject, or an error for a bad token.
func (v *Validator) Validate(token string) (string, error) {
	if v.secret == "" {
		return "anon", nil
	}
	if token == "" {
		return "", errors.New("no token")
	}

	parser := jwtv5.NewParser(
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
		jwtv5.WithLeeway(v.skew),
	)
	tok, err := parser.Parse(token, func(t *jwtv5.Token) (any, error) {
		return []byte(v.secret), nil
	})
	if err != nil || !tok.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := tok.Claims.(jwtv5.MapClaims)
	if !ok {
		return "", errors.New("bad claims")
	}
	sub, _ := claims["sub"].(string)
	return sub, nil
}
