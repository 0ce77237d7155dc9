package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/jgoulah/wakerefresh/internal/analytics"
	"github.com/jgoulah/wakerefresh/internal/score"
	"github.com/jgoulah/wakerefresh/pkg/models"
)

// pdfColumns lists the report columns and their widths in mm (landscape A4)
var pdfColumns = []struct {
	title string
	width float64
}{
	{"Date", 26},
	{"Wake", 16},
	{"Bed", 16},
	{"Snooze", 16},
	{"Energy", 16},
	{"Caffeine", 20},
	{"Hydration", 20},
	{"Refresh", 18},
	{"Notes", 129},
}

// ToPDF renders history, sorted by date, as a one-table PDF report with a
// summary line underneath
func ToPDF(history []models.Entry, title string) ([]byte, error) {
	rows := Sorted(history)

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 10)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, e := range rows {
		hydration := "-"
		if e.HydrationPack {
			hydration = "yes"
		}
		cells := []string{
			e.Date,
			e.WakeTime,
			e.Bedtime,
			strconv.Itoa(e.Snooze),
			strconv.Itoa(e.Energy),
			fmt.Sprintf("%d mg", e.CaffeineMg),
			hydration,
			strconv.Itoa(score.Score(e)),
			truncate(strings.ReplaceAll(e.Notes, "\n", " "), 80),
		}
		for i, col := range pdfColumns {
			align := "C"
			if i == len(pdfColumns)-1 {
				align = "L"
			}
			pdf.CellFormat(col.width, 7, tr(cells[i]), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	summary := analytics.Summarize(rows)
	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("%d mornings, avg energy %.1f, avg caffeine %.0f mg, avg refresh %.0f",
		summary.Count, summary.AvgEnergy, summary.AvgCaffeine, summary.AvgScore), "", 1, "L", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
