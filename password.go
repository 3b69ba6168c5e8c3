package sheetpos

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashScheme identifies how a stored password value is compared.
type HashScheme int

const (
	// HashBcrypt is a bcrypt hash with a "$2a$" or "$2b$" prefix.
	HashBcrypt HashScheme = iota
	// HashPlaintext is a legacy unhashed value. Supported only for rows
	// that predate hashing; callers should flag it so the remaining rows
	// get migrated.
	HashPlaintext
)

// String returns a human-readable name for the HashScheme.
func (h HashScheme) String() string {
	switch h {
	case HashBcrypt:
		return "bcrypt"
	case HashPlaintext:
		return "plaintext"
	default:
		return "unknown"
	}
}

// SchemeOf sniffs the hash scheme from the stored value's prefix.
func SchemeOf(stored string) HashScheme {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") {
		return HashBcrypt
	}
	return HashPlaintext
}

// CheckPassword verifies a supplied password against the user's stored
// value and reports which scheme was used, so callers can flag logins that
// still ride on legacy plaintext rows.
func (u User) CheckPassword(password string) (ok bool, scheme HashScheme) {
	scheme = SchemeOf(u.PasswordHash)
	switch scheme {
	case HashBcrypt:
		ok = bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
	case HashPlaintext:
		ok = subtle.ConstantTimeCompare([]byte(u.PasswordHash), []byte(password)) == 1
	}
	return ok, scheme
}
