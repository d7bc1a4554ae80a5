package plan

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportFilename(t *testing.T) {
	p := &ExpertPlan{Title: "ExpertMaker Plan — Jan 2, 2024"}
	assert.Equal(t, "ExpertMaker-Plan-—-Jan-2,-2024.json", ExportFilename(p, ".json"))
	assert.Equal(t, "ExpertMaker-Plan-—-Jan-2,-2024.xlsx", ExportFilename(p, ".xlsx"))
}

func TestWriteJSON_ReadsBack(t *testing.T) {
	p := generate(t, Request{Topics: []string{"rag"}, Weeks: 2, HoursPerWeek: 3, Pace: PaceBalanced})

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, p))

	got, err := Unmarshal(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestWriteWorkbook(t *testing.T) {
	p := generate(t, Request{Topics: []string{"oauth", "rag"}, Weeks: 2, HoursPerWeek: 4, Pace: PaceBalanced})
	p = p.WithCompletion(p.WeeksData[0].Sessions[1].ID, true)

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, p))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetPlan, SheetSessions}, f.GetSheetList())

	header, err := f.GetRows(SheetPlan)
	require.NoError(t, err)
	assert.Equal(t, []string{"Title", p.Title}, header[0])
	assert.Equal(t, []string{"Completed sessions", "1/4"}, header[7])

	rows, err := f.GetRows(SheetSessions)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Week", "Theme", "Topic", "Focus", "Minutes", "Questions", "Completed"}, rows[0])
	assert.Equal(t, []string{"1", p.WeeksData[0].Theme, "AI Engineering (RAG)", "Pipeline Orchestration", "90", "4", "yes"}, rows[2])
	assert.Equal(t, "no", rows[4][6])
}
