package services

import (
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notifier receives moderation events. A nil Notifier is allowed.
type Notifier interface {
	Notify(eventType string, data interface{})
}

func notify(n Notifier, eventType string, data interface{}) {
	if n != nil {
		n.Notify(eventType, data)
	}
}

func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// clamp bounds a page or limit parameter; zero or negative values become def.
func clamp(value, def, min, max int) int {
	if value <= 0 {
		value = def
	}
	if value < min {
		value = min
	}
	if max > 0 && value > max {
		value = max
	}
	return value
}

// maxOffset bounds the row offset so (page-1)*limit never overflows.
const maxOffset = math.MaxInt32

// paging bounds page and limit and returns the row offset for them.
func paging(page, limit, defLimit, maxLimit int) (int, int, int) {
	limit = clamp(limit, defLimit, 1, maxLimit)
	page = clamp(page, 1, 1, maxOffset/limit+1)
	return page, limit, (page - 1) * limit
}

// likePattern builds a case-insensitive LIKE pattern that matches value
// literally anywhere in the column.
func likePattern(value string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(value)) + "%"
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
