package retry

import (
	"errors"
	"io/fs"
)

// ErrorClassifier separates errors worth retrying from final ones.
type ErrorClassifier interface {
	IsTransient(err error) bool
}

// VanishedFileClassifier treats a file that disappeared between listing
// and reading as transient. Everything else, including SQL errors in the
// files themselves, is final.
type VanishedFileClassifier struct{}

// NewVanishedFileClassifier creates a VanishedFileClassifier.
func NewVanishedFileClassifier() *VanishedFileClassifier {
	return &VanishedFileClassifier{}
}

// IsTransient implements ErrorClassifier.
func (c *VanishedFileClassifier) IsTransient(err error) bool {
	return err != nil && errors.Is(err, fs.ErrNotExist)
}
