package prescription

import (
	"crypto/sha256"
	"encoding/base32"
	"strings"
)

const tokenLength = 16

var tokenEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Token derives the printed verification token from a visit identity.
// Deterministic so a reprint carries the same token as the original.
func Token(visitID string) string {
	sum := sha256.Sum256([]byte(visitID))
	return tokenEncoding.EncodeToString(sum[:])[:tokenLength]
}

// VerifyURL joins the public base URL with the verify path for a token.
func VerifyURL(base, token string) string {
	return strings.TrimSuffix(base, "/") + "/verify/" + token
}
