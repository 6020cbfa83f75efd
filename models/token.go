package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps the session JWT issued by the external auth collaborator.
//
// It embeds [jwt.Token] for low-level token operations and
// [jwt.RegisteredClaims] for standard claim access. The engine never
// issues tokens; it only verifies them and extracts the account identity.
//
// AccountID is a cached copy of the "sub" (subject) claim: the opaque
// account identifier that scopes all sync state.
type Token struct {
	// Token is the underlying JWT used for signature verification and
	// claim inspection. Excluded from JSON serialization.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// AccountID is the account identifier extracted from the "sub" claim.
	AccountID string `json:"-"`
}

// GetAccountID extracts the account identifier from the token's "sub"
// (subject) claim. Returns an error if the claim is missing or empty.
func (t *Token) GetAccountID() (string, error) {
	accountID, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting account ID from token: %w", err)
	}
	if accountID == "" {
		return "", fmt.Errorf("token subject claim is empty")
	}

	return accountID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
