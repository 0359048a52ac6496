package checksum

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
)

// Calculator is an interface for computing content checksums.
type Calculator interface {
	// Calculate returns the hex digest of content, unmodified.
	Calculate(content []byte) string
}

// SHA256 implements checksum calculation using SHA-256.
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// Calculate computes SHA-256 of content.
func (c SHA256) Calculate(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// MD5 implements checksum calculation using MD5.
// It yields the 32-character hex names used as statement identities.
type MD5 struct{}

// NewMD5 creates a new MD5 based calculator.
func NewMD5() MD5 {
	return MD5{}
}

// Calculate computes MD5 of content.
func (c MD5) Calculate(content []byte) string {
	hash := md5.Sum(content)
	return hex.EncodeToString(hash[:])
}

var (
	_ Calculator = SHA256{}
	_ Calculator = MD5{}
)
