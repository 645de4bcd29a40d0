package ticket_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civic-kit/complaint-service/internal/domain"
	"github.com/civic-kit/complaint-service/internal/ticket"
)

var ticketPattern = regexp.MustCompile(`^[A-Z]{3}-\d{14}-[0-9A-F]{8}$`)

func TestNumberFormat(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	no := ticket.Number(domain.DepartmentWaste, at)
	require.Regexp(t, ticketPattern, no)
	assert.Equal(t, "WST-20260314092653", no[:18])
}

func TestNumberUsesUTCTimestamp(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, loc)

	no := ticket.Number(domain.DepartmentWater, at)
	assert.Equal(t, "WAT-20260314035653", no[:18])
}

func TestNumberUniqueness(t *testing.T) {
	at := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		no := ticket.Number(domain.DepartmentRoads, at)
		assert.False(t, seen[no], "duplicate ticket number %s", no)
		seen[no] = true
	}
}

func TestNewNumberPrefixes(t *testing.T) {
	for _, dept := range domain.Departments() {
		no := ticket.NewNumber(dept)
		require.Regexp(t, ticketPattern, no)
		assert.Equal(t, dept.TicketPrefix(), no[:3])
	}

	assert.Equal(t, "OTH", ticket.NewNumber(domain.DepartmentUnknown)[:3])
}
