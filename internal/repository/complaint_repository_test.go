package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/civic-kit/complaint-service/internal/domain"
)

func TestBuildListQueryUnpaged(t *testing.T) {
	userID := "user-1"
	query, args := buildListQuery(ComplaintFilter{
		UserID:  &userID,
		OrderBy: OrderCreatedDesc,
	})

	assert.NotContains(t, query, "LIMIT")
	assert.NotContains(t, query, "OFFSET")
	assert.Contains(t, query, "user_id=$1")
	assert.Contains(t, query, "ORDER BY created_at DESC")
	assert.Equal(t, []any{"user-1"}, args)
}

func TestBuildListQueryPaged(t *testing.T) {
	query, _ := buildListQuery(ComplaintFilter{
		OrderBy: OrderUpdatedDesc,
		Limit:   20,
		Offset:  40,
	})

	assert.Contains(t, query, "ORDER BY updated_at DESC")
	assert.Contains(t, query, "LIMIT 20 OFFSET 40")
}

func TestBuildListQueryNegativeOffsetClamped(t *testing.T) {
	query, _ := buildListQuery(ComplaintFilter{Limit: 10, Offset: -3})
	assert.Contains(t, query, "LIMIT 10 OFFSET 0")
}

func TestBuildListQueryFilters(t *testing.T) {
	dept := domain.DepartmentWater
	query, args := buildListQuery(ComplaintFilter{
		Department: &dept,
		Statuses:   []domain.ComplaintStatus{domain.StatusPending, domain.StatusInProgress},
	})

	assert.Contains(t, query, "department=$1")
	assert.Contains(t, query, "status IN ($2,$3)")
	assert.Equal(t, []any{dept, domain.StatusPending, domain.StatusInProgress}, args)
}
