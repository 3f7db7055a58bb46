package service

import (
	"errors"

	"github.com/saurabh-xd/kana-dojo/admission"
	"github.com/saurabh-xd/kana-dojo/apierr"
)

var (
	// ErrNoStore indicates New was called without a cache store.
	ErrNoStore = errors.New("service: no cache store")

	// ErrNoAdmitter indicates New was called without an admission controller.
	ErrNoAdmitter = errors.New("service: no admission controller")

	// ErrNoProvider indicates New was called without a translation provider.
	ErrNoProvider = errors.New("service: no translation provider")

	// ErrNoAnalyzer indicates New was called without an analyzer.
	ErrNoAnalyzer = errors.New("service: no analyzer")
)

// DenialError carries the admission decision behind a RATE_LIMITED
// taxonomy error so the HTTP layer can emit the rate-limit headers.
type DenialError struct {
	Decision admission.Decision

	err *apierr.Error
}

func (e *DenialError) Error() string { return e.err.Error() }

// Unwrap exposes the taxonomy error to errors.As and apierr.FromError.
func (e *DenialError) Unwrap() error { return e.err }
