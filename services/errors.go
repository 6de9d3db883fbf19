package services

import (
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// FieldErrors maps an input field to a human-readable message. It is returned
// by validation so forms can attach messages to the offending inputs; the
// cross-field rules live under the "form" key.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

var (
	ErrSessionFinished = errors.New("play session already finished")
	ErrPaidOrderDelete = errors.New("paid orders cannot be deleted")
)

// IsDuplicateKey reports whether err is a unique-constraint violation, on
// either the mysql runtime driver or the sqlite test driver.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
