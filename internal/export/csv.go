// Package export renders journal history for download.
package export

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jgoulah/wakerefresh/internal/score"
	"github.com/jgoulah/wakerefresh/pkg/models"
)

// Header is the fixed CSV header row
var Header = []string{
	"id",
	"date",
	"wakeTime",
	"bedtime",
	"snooze",
	"energy",
	"caffeineMg",
	"hydrationPack",
	"notes",
	"refreshScore",
}

// field is one CSV cell; only text cells are ever quoted
type field struct {
	value string
	text  bool
}

func text(s string) field { return field{value: s, text: true} }
func number(n int) field  { return field{value: strconv.Itoa(n)} }

// Sorted returns a copy of history ordered by date, ties kept in input order
func Sorted(history []models.Entry) []models.Entry {
	rows := append([]models.Entry(nil), history...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows
}

// row returns the CSV cells for one entry, with the score computed now
func row(e models.Entry) []field {
	return []field{
		text(e.ID),
		text(e.Date),
		text(e.WakeTime),
		text(e.Bedtime),
		number(e.Snooze),
		number(e.Energy),
		number(e.CaffeineMg),
		{value: strconv.FormatBool(e.HydrationPack)},
		text(e.Notes),
		number(score.Score(e)),
	}
}

// ToCSV renders the whole history, sorted by date, one line per entry after
// the header. Lines are separated by "\n" with no trailing newline.
//
// A comma-only quoting rule would break rows whose notes hold quotes or line
// breaks, so string fields containing a double quote, CR or LF are quoted too.
// Standard readers such as encoding/csv turn a quoted CRLF into LF, so notes
// with CRLF line endings come back with LF.
func ToCSV(history []models.Entry) string {
	var b strings.Builder
	b.WriteString(strings.Join(Header, ","))

	for _, e := range Sorted(history) {
		b.WriteByte('\n')
		for i, f := range row(e) {
			if i > 0 {
				b.WriteByte(',')
			}
			if f.text {
				b.WriteString(escape(f.value))
			} else {
				b.WriteString(f.value)
			}
		}
	}

	return b.String()
}

// escape quotes s when it contains a comma, a double quote or a line break,
// doubling any inner quotes
func escape(s string) string {
	if !strings.ContainsAny(s, ",\"\r\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Filename returns the download name for an export made on today
func Filename(today time.Time, ext string) string {
	return "wake-up-refresh_" + today.Format(models.DateLayout) + "." + ext
}
