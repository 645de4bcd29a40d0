package classifier_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/civic-kit/complaint-service/internal/classifier"
	"github.com/civic-kit/complaint-service/internal/domain"
)

func TestKeywordClassifier(t *testing.T) {
	model := classifier.NewKeywordClassifier()
	ctx := context.Background()

	cases := []struct {
		text string
		want string
	}{
		{"garbage overflow near market", "garbage disposal"},
		{"no water in my tap since morning", "water supply"},
		{"streetlight broken on 5th avenue", "electrical fault"},
		{"huge pothole on the main road", "road damage"},
		{"clinic is understaffed and dirty", "public health"},
		{"stray dogs in the neighbourhood", "general"},
	}

	for _, tc := range cases {
		got, err := model.Classify(ctx, tc.text)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "text %q", tc.text)
	}
}

func TestMapCategoryToDepartment(t *testing.T) {
	cases := map[string]domain.Department{
		"water supply":     domain.DepartmentWater,
		"electrical fault": domain.DepartmentElectricity,
		"road damage":      domain.DepartmentRoads,
		"garbage disposal": domain.DepartmentWaste,
		"public health":    domain.DepartmentHealthcare,
		"general":          domain.DepartmentUnknown,
		"":                 domain.DepartmentUnknown,
	}
	for category, want := range cases {
		assert.Equal(t, want, classifier.MapCategoryToDepartment(category), "category %q", category)
	}
}

func TestGarbageComplaintRoutesToWaste(t *testing.T) {
	model := classifier.NewKeywordClassifier()

	category, err := model.Classify(context.Background(), "garbage overflow near market")
	require.NoError(t, err)

	dept := classifier.MapCategoryToDepartment(category)
	assert.Equal(t, domain.DepartmentWaste, dept)
	assert.Equal(t, "WST", dept.TicketPrefix())
}

func TestCachedClassifierWithoutClientDelegates(t *testing.T) {
	cached := classifier.NewCachedClassifier(classifier.NewKeywordClassifier(), nil, time.Minute, zap.NewNop())

	got, err := cached.Classify(context.Background(), "water leak in basement")
	require.NoError(t, err)
	assert.Equal(t, "water supply", got)
}
