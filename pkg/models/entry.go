package models

import "time"

// DateLayout is the calendar date format used for Entry.Date
const DateLayout = "2006-01-02"

// ClockLayout is the local clock format used for wake and bed times
const ClockLayout = "15:04"

// Entry represents a single day's wake-up record
type Entry struct {
	ID            string `json:"id"`
	Date          string `json:"date"` // "2025-02-20", unique across history
	WakeTime      string `json:"wakeTime"`
	Bedtime       string `json:"bedtime,omitempty"` // empty means not recorded
	Snooze        int    `json:"snooze"`
	Energy        int    `json:"energy"` // self-reported, 1-5
	CaffeineMg    int    `json:"caffeineMg"`
	HydrationPack bool   `json:"hydrationPack"`
	Notes         string `json:"notes,omitempty"`
}

// Day parses the entry date. The second return value is false when the
// stored date is not a valid calendar date.
func (e Entry) Day() (time.Time, bool) {
	d, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// PilotPreferences holds the answers to the local pilot survey
type PilotPreferences struct {
	CampusLocation string   `json:"campusLocation"`
	Causes         []string `json:"causes"`
	Wearable       string   `json:"wearable"`
	ConsentShare   bool     `json:"consentShare"`
}

// Competitor is one row of the campus challenge leaderboard
type Competitor struct {
	Name   string `json:"name" yaml:"name"`
	Emoji  string `json:"emoji" yaml:"emoji"`
	Points int    `json:"points" yaml:"points"`
	Streak int    `json:"streak" yaml:"streak"`
	Self   bool   `json:"self,omitempty" yaml:"-"`
}
