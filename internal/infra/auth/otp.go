package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"strconv"

	"frishta/internal/errors"
)

const (
	otpMin  = 100000
	otpSpan = 900000
)

// NewOtpCode mints a uniform six-digit verification code. The range is
// [100000, 999999] so the code never carries a leading zero.
func NewOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpSpan))
	if err != nil {
		return "", errors.Wrap(err, "failed to generate otp")
	}

	return strconv.FormatInt(otpMin+n.Int64(), 10), nil
}

// HashOtpCode returns the peppered hex SHA-256 digest under which a code is
// stored. Only the digest ever reaches persistence.
func HashOtpCode(code, pepper string) string {
	sum := sha256.Sum256([]byte(code + ":" + pepper))

	return hex.EncodeToString(sum[:])
}
