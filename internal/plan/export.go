package plan

import (
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const (
	// SheetPlan holds the plan header as label/value rows.
	SheetPlan = "Plan"
	// SheetSessions holds one row per scheduled session.
	SheetSessions = "Sessions"
)

var whitespace = regexp.MustCompile(`\s+`)

// ExportFilename derives a file name from the plan title, e.g.
// "ExpertMaker-Plan-—-Jan-2,-2024.json" for ext ".json".
func ExportFilename(p *ExpertPlan, ext string) string {
	return whitespace.ReplaceAllString(p.Title, "-") + ext
}

// WriteJSON writes the indented plan document to w.
func WriteJSON(w io.Writer, p *ExpertPlan) error {
	data, err := MarshalIndent(p)
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	return nil
}

var sessionHeader = []any{"Week", "Theme", "Topic", "Focus", "Minutes", "Questions", "Completed"}

// WriteWorkbook writes the plan as an xlsx workbook with a header sheet and
// a session schedule sheet.
func WriteWorkbook(w io.Writer, p *ExpertPlan) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetPlan); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header := [][]any{
		{"Title", p.Title},
		{"Created", p.CreatedAt},
		{"Topics", len(p.Topics)},
		{"Weeks", p.Weeks},
		{"Hours per week", p.HoursPerWeek},
		{"Pace", string(p.Pace)},
		{"Auto-complete on pass", strconv.FormatBool(p.AutoCompleteOnPass)},
		{"Completed sessions", fmt.Sprintf("%d/%d", p.CompletedCount(), p.SessionCount())},
		{"Note", p.PersonalNote},
	}
	for i, row := range header {
		if err := setRow(f, SheetPlan, i+1, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(SheetSessions); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := setRow(f, SheetSessions, 1, sessionHeader); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	if err := f.SetCellStyle(SheetSessions, "A1", "G1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	row := 2
	for _, wk := range p.WeeksData {
		for _, s := range wk.Sessions {
			done := "no"
			if p.IsCompleted(s.ID) {
				done = "yes"
			}
			values := []any{wk.WeekNumber, wk.Theme, s.TopicTitle, s.Focus.Title, s.DurationMinutes, len(s.Quiz), done}
			if err := setRow(f, SheetSessions, row, values); err != nil {
				return err
			}
			row++
		}
	}

	if err := f.SetColWidth(SheetSessions, "B", "B", 48); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
