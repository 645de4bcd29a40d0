// Package ticket mints department-prefixed complaint ticket numbers.
package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/civic-kit/complaint-service/internal/domain"
)

const timestampLayout = "20060102150405"

// Number builds a ticket number of the form PREFIX-YYYYMMDDHHMMSS-XXXXXXXX.
// The timestamp keys the number to creation time; the uuid-derived suffix
// keeps simultaneous submissions to the same department collision free.
func Number(dept domain.Department, now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%s", dept.TicketPrefix(), now.UTC().Format(timestampLayout), suffix)
}

// NewNumber mints a ticket number for the current time.
func NewNumber(dept domain.Department) string {
	return Number(dept, time.Now())
}
