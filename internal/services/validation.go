package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dimitrije/frame-nest/internal/models"
)

// Field bounds mirror the string types of the on-chain contract:
// names and descriptions are string-ascii, url and metadata string-utf8.
const (
	MaxNameLength        = 64
	MaxDescriptionLength = 256
	MaxURLLength         = 256
	MaxMetadataLength    = 1024
	MaxPrincipalLength   = 150
)

func validateASCII(field, value string, minLen, maxLen int) error {
	if len(value) < minLen {
		return fmt.Errorf("%w: %s is required", ErrInvalidArgument, field)
	}
	if len(value) > maxLen {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidArgument, field, maxLen)
	}
	for i := 0; i < len(value); i++ {
		if value[i] > 0x7e || (value[i] < 0x20 && value[i] != '\t' && value[i] != '\n' && value[i] != '\r') {
			return fmt.Errorf("%w: %s must be printable ascii", ErrInvalidArgument, field)
		}
	}
	return nil
}

func validateUTF8(field, value string, minLen, maxLen int) error {
	if !utf8.ValidString(value) {
		return fmt.Errorf("%w: %s must be valid utf-8", ErrInvalidArgument, field)
	}
	// Postgres text cannot hold NUL.
	if strings.IndexByte(value, 0) >= 0 {
		return fmt.Errorf("%w: %s must not contain NUL", ErrInvalidArgument, field)
	}
	n := utf8.RuneCountInString(value)
	if n < minLen {
		return fmt.Errorf("%w: %s is required", ErrInvalidArgument, field)
	}
	if n > maxLen {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidArgument, field, maxLen)
	}
	return nil
}

// ValidatePrincipal checks that p looks like a standard or contract principal.
func ValidatePrincipal(p models.Principal) error {
	s := string(p)
	if s == "" {
		return fmt.Errorf("%w: principal is required", ErrInvalidArgument)
	}
	if len(s) > MaxPrincipalLength {
		return fmt.Errorf("%w: principal exceeds %d characters", ErrInvalidArgument, MaxPrincipalLength)
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.', c == '-', c == '_':
		default:
			return fmt.Errorf("%w: principal contains invalid character %q", ErrInvalidArgument, c)
		}
	}
	return nil
}

// checkCollectionID rejects ids the sequence can never have produced.
func checkCollectionID(id int64) error {
	if id < 1 {
		return ErrCollectionNotFound
	}
	return nil
}
