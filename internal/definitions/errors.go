package definitions

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is classification.
var (
	ErrUnsupportedVersion = errors.New("unsupported GICS version")
	ErrMalformedData      = errors.New("malformed GICS definition data")
)

// UnsupportedVersionError is returned when a table is requested for a version
// that no dataset exists for. It carries the full known set for diagnostics.
type UnsupportedVersionError struct {
	Requested string
	Known     []string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported GICS version: %q. Available versions are %v", e.Requested, e.Known)
}

// Is lets errors.Is(err, ErrUnsupportedVersion) match.
func (e *UnsupportedVersionError) Is(target error) bool {
	return target == ErrUnsupportedVersion
}

// DataError describes a rejected entry in a definition dataset.
type DataError struct {
	Version string
	Code    string
	Reason  string
}

func (e *DataError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("gics %s: %s", e.Version, e.Reason)
	}
	return fmt.Sprintf("gics %s: code %q: %s", e.Version, e.Code, e.Reason)
}

func (e *DataError) Unwrap() error {
	return ErrMalformedData
}
