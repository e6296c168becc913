package repositories

import (
	"errors"
	"gorm.io/gorm"
	"strings"
)

var (
	ErrDuplicate = errors.New("record already exists")
	// ErrStale is returned when a conditional update found the row already changed.
	ErrStale = errors.New("record was modified concurrently")
)

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
