package util

import (
	"errors"
	"strings"
)

// ErrPublic is an error whose message can be shown as-is to the end user,
// eg. an invalid query parameter.
type ErrPublic string

func (e ErrPublic) Error() string {
	return string(e)
}

// IsPublic returns true if err wraps an ErrPublic.
func IsPublic(err error) bool {
	var public ErrPublic
	return errors.As(err, &public)
}

// ConcatErrors flattens a list of errors into a single one, nil errors are
// ignored.
func ConcatErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	filtered := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err.Error())
		}
	}

	if len(filtered) == 0 {
		return nil
	}

	return errors.New(strings.Join(filtered, "; "))
}
