// Package code mints session codes and derives the rotating verification
// tokens bound to them.
package code

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/dtroode/attendance-server/internal/model"
)

const (
	// Alphabet is the set of characters a session code is drawn from.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// Length is the number of characters in a session code.
	Length = 6

	separator = ":"
)

var alphabetSize = big.NewInt(int64(len(Alphabet)))

// NewSessionCode returns a uniformly random code with no relation to the
// course or the clock.
func NewSessionCode() (string, error) {
	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < Length; i++ {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		b.WriteByte(Alphabet[n.Int64()])
	}
	return b.String(), nil
}

// IsValid reports whether s has the shape of a session code.
func IsValid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(Alphabet, rune(s[i])) {
			return false
		}
	}
	return true
}

// Bucket returns the index of the fixed-width time slice containing t.
func Bucket(t time.Time, width time.Duration) int64 {
	return t.Unix() / int64(width/time.Second)
}

// BucketEnd returns the first instant after bucket.
func BucketEnd(bucket int64, width time.Duration) time.Time {
	return time.Unix((bucket+1)*int64(width/time.Second), 0).UTC()
}

// DeriveToken computes the token for code in bucket. It is deterministic and
// carries no secret.
func DeriveToken(code string, bucket int64) string {
	return code + separator + strconv.FormatInt(bucket, 10)
}

// ParseToken splits a token into the code and bucket it claims.
func ParseToken(token string) (string, int64, error) {
	codePart, bucketPart, ok := strings.Cut(token, separator)
	if !ok || codePart == "" || bucketPart == "" {
		return "", 0, model.ErrMalformedToken
	}

	bucket, err := strconv.ParseInt(bucketPart, 10, 64)
	if err != nil || bucket < 0 {
		return "", 0, model.ErrMalformedToken
	}

	return codePart, bucket, nil
}
