// Package entry turns user-submitted check-ins into normalized journal
// entries. It validates shape only: out-of-range numbers are stored as given
// and absorbed later by the score function.
package entry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jgoulah/wakerefresh/pkg/models"
)

var (
	// ErrInvalidDate is returned when a candidate has no usable date
	ErrInvalidDate = errors.New("entry date must be a YYYY-MM-DD calendar date")
	// ErrInvalidTime is returned when a wake or bed time is not HH:MM
	ErrInvalidTime = errors.New("entry times must be HH:MM")
)

// Candidate is a check-in as submitted by the form, before normalization
type Candidate struct {
	ID            string `json:"id"`
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	WakeTime      string `json:"wakeTime" validate:"omitempty,datetime=15:04"`
	Bedtime       string `json:"bedtime" validate:"omitempty,datetime=15:04"`
	Snooze        int    `json:"snooze"`
	Energy        int    `json:"energy"`
	CaffeineMg    int    `json:"caffeineMg"`
	HydrationPack bool   `json:"hydrationPack"`
	Notes         string `json:"notes"`
}

// DefaultCandidate returns the check-in form defaults for the given day
func DefaultCandidate(today time.Time) Candidate {
	return Candidate{
		Date:       today.Format(models.DateLayout),
		WakeTime:   "07:15",
		Energy:     3,
		CaffeineMg: 120,
	}
}

// Normalizer validates candidates and assigns identifiers
type Normalizer struct {
	validate *validator.Validate
	newID    func() string
}

// NewNormalizer builds a normalizer. A nil validate or newID falls back to
// validator.New and random UUIDs.
func NewNormalizer(validate *validator.Validate, newID func() string) *Normalizer {
	if validate == nil {
		validate = validator.New()
	}
	if newID == nil {
		newID = func() string { return uuid.New().String() }
	}
	registerSurveyTags(validate)
	return &Normalizer{validate: validate, newID: newID}
}

var defaultNormalizer = NewNormalizer(nil, nil)

// Normalize validates a candidate with the default normalizer
func Normalize(c Candidate) (models.Entry, error) {
	return defaultNormalizer.Normalize(c)
}

// Normalize validates the candidate and returns the entry to store. Any id
// on the candidate is discarded and a fresh one assigned.
func (n *Normalizer) Normalize(c Candidate) (models.Entry, error) {
	c.Date = strings.TrimSpace(c.Date)
	c.WakeTime = strings.TrimSpace(c.WakeTime)
	c.Bedtime = strings.TrimSpace(c.Bedtime)

	if err := n.validate.Struct(c); err != nil {
		return models.Entry{}, translate(err)
	}

	return models.Entry{
		ID:            n.newID(),
		Date:          c.Date,
		WakeTime:      c.WakeTime,
		Bedtime:       c.Bedtime,
		Snooze:        c.Snooze,
		Energy:        c.Energy,
		CaffeineMg:    c.CaffeineMg,
		HydrationPack: c.HydrationPack,
		Notes:         strings.TrimSpace(c.Notes),
	}, nil
}

func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validating entry: %w", err)
	}
	fe := verrs[0]
	if fe.StructField() == "Date" {
		return fmt.Errorf("%w: %q", ErrInvalidDate, fe.Value())
	}
	return fmt.Errorf("%w: %s=%q", ErrInvalidTime, strings.ToLower(fe.StructField()), fe.Value())
}
