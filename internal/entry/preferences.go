package entry

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jgoulah/wakerefresh/pkg/models"
)

// ErrInvalidPreferences is returned when a survey answer is not one of the offered options
var ErrInvalidPreferences = errors.New("invalid pilot survey answer")

func registerSurveyTags(v *validator.Validate) {
	oneOf := func(options []string) validator.Func {
		return func(fl validator.FieldLevel) bool {
			return slices.Contains(options, fl.Field().String())
		}
	}
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("campus", oneOf(models.CampusLocations))
	_ = v.RegisterValidation("wearable", oneOf(models.Wearables))
	_ = v.RegisterValidation("cause", oneOf(models.Causes))
}

// NormalizePreferences validates survey answers and returns them with
// causes de-duplicated and sorted.
func (n *Normalizer) NormalizePreferences(p models.PilotPreferences) (models.PilotPreferences, error) {
	p.CampusLocation = strings.TrimSpace(p.CampusLocation)
	p.Wearable = strings.TrimSpace(p.Wearable)

	checks := []struct {
		name  string
		value any
		tag   string
	}{
		{"campusLocation", p.CampusLocation, "campus"},
		{"wearable", p.Wearable, "wearable"},
		{"causes", p.Causes, "dive,cause"},
	}
	for _, c := range checks {
		if err := n.validate.Var(c.value, c.tag); err != nil {
			return models.PilotPreferences{}, fmt.Errorf("%w: %s", ErrInvalidPreferences, c.name)
		}
	}

	causes := make([]string, 0, len(p.Causes))
	for _, c := range p.Causes {
		if !slices.Contains(causes, c) {
			causes = append(causes, c)
		}
	}
	sort.Strings(causes)
	p.Causes = causes

	return p, nil
}

// NormalizePreferences validates survey answers with the default normalizer
func NormalizePreferences(p models.PilotPreferences) (models.PilotPreferences, error) {
	return defaultNormalizer.NormalizePreferences(p)
}
