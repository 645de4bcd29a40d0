// Package classifier provides the category prediction capability consumed by
// complaint creation. The model is injected as a Classifier value so tests
// can substitute a fake and no package-level state is involved.
package classifier

import (
	"context"
	"strings"

	"github.com/civic-kit/complaint-service/internal/domain"
)

// Classifier predicts a category label for free-form complaint text.
type Classifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

// categoryRule pairs a category label with the keywords that trigger it.
type categoryRule struct {
	category string
	keywords []string
}

var categoryRules = []categoryRule{
	{"water supply", []string{"water", "tap", "pipeline", "leak"}},
	{"electrical fault", []string{"electric", "light", "power", "streetlight"}},
	{"road damage", []string{"road", "pothole", "pavement", "traffic"}},
	{"garbage disposal", []string{"garbage", "waste", "dump", "trash"}},
	{"public health", []string{"hospital", "doctor", "clinic", "health", "medical"}},
}

// KeywordClassifier is a deterministic keyword model. It stands in for the
// trained text classifier behind the same contract: any non-empty text yields
// some category, with "general" as the fallback label.
type KeywordClassifier struct{}

// NewKeywordClassifier constructs the model.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

// Classify returns the category label for the first rule whose keyword
// appears in the text.
func (k *KeywordClassifier) Classify(_ context.Context, text string) (string, error) {
	lowered := strings.ToLower(text)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.category, nil
			}
		}
	}
	return "general", nil
}

// MapCategoryToDepartment derives the routing department from a predicted
// category via a fixed keyword mapping, falling back to unknown.
func MapCategoryToDepartment(category string) domain.Department {
	cat := strings.ToLower(category)
	switch {
	case containsAny(cat, "water", "tap", "pipeline", "leak"):
		return domain.DepartmentWater
	case containsAny(cat, "electric", "light", "power", "streetlight", "electrical"):
		return domain.DepartmentElectricity
	case containsAny(cat, "road", "pothole", "pavement", "traffic"):
		return domain.DepartmentRoads
	case containsAny(cat, "garbage", "waste", "dump", "trash"):
		return domain.DepartmentWaste
	case containsAny(cat, "hospital", "doctor", "clinic", "health", "medical"):
		return domain.DepartmentHealthcare
	default:
		return domain.DepartmentUnknown
	}
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
