package utils // package utils provides helper functions for token creation and hashing

import (
	"errors" // sentinel error for verification failures
	"time"   // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// ErrInvalidToken is returned by ParseAccessToken whenever a token fails
// verification: a bad signature, a malformed payload, a wrong signing
// algorithm or an expired token all collapse into this one error so that
// callers never leak which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string. Exp stores the expiration
// timestamp as a time.Time. Access tokens are short‑lived and presented
// in the Authorization header when calling protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// Claims carries the identity embedded in a verified access token.
type Claims struct {
	Username string // the token subject
	UserID   uint64 // the uid claim
}

// NewAccessToken builds and signs an HS256 JWT for a user. The username
// becomes the subject and the user ID travels in the uid claim together
// with issued-at and expiry timestamps. Expiry is fixed at now + ttl; it
// is checked lazily at verification time, never swept proactively.
func NewAccessToken(secret string, userID uint64, username string, ttl time.Duration) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub": username,
		"uid": userID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken cryptographically validates a raw token string and
// returns the identity claims it carries. The signing method must be
// HMAC; anything else is rejected to prevent algorithm confusion. The
// jwt library validates the exp claim as part of parsing.
func ParseAccessToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	sub, ok := mc["sub"].(string)
	if !ok || sub == "" {
		return Claims{}, ErrInvalidToken
	}
	c := Claims{Username: sub}
	// JWT numbers decode as float64.
	if uid, ok := mc["uid"].(float64); ok {
		c.UserID = uint64(uid)
	}
	return c, nil
}
