package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timetableDataset() Dataset {
	return Dataset{
		Headers: []string{"Class", "Day", "Start"},
		Rows: []map[string]string{
			{"Class": "CMPUT 174", "Day": "MWF", "Start": "09:00 AM"},
			{"Class": "CMPUT 175", "Day": "TR", "Start": "11:00 AM"},
		},
	}
}

func TestCSVRender(t *testing.T) {
	payload, err := NewCSVExporter().Render(timetableDataset())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Class,Day,Start", lines[0])
	assert.Equal(t, "CMPUT 174,MWF,09:00 AM", lines[1])
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestCSVRenderSections(t *testing.T) {
	sections := []Section{
		{Title: "Schedule 1", Data: timetableDataset()},
		{Title: "Schedule 2", Data: timetableDataset()},
	}
	payload, err := NewCSVExporter().RenderSections(sections)
	require.NoError(t, err)

	out := string(payload)
	assert.Contains(t, out, "Schedule 1")
	assert.Contains(t, out, "Schedule 2")
	// Blank line separates the sections.
	assert.Contains(t, out, "\n\nSchedule 2")
}

func TestPDFRender(t *testing.T) {
	payload, err := NewPDFExporter().Render(timetableDataset(), "Generated Schedules")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestPDFRenderSections(t *testing.T) {
	sections := []Section{{Title: "Schedule 1", Data: timetableDataset()}}
	payload, err := NewPDFExporter().RenderSections(sections, "Generated Schedules")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestPDFRenderRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(Dataset{}, "")
	assert.Error(t, err)
}
