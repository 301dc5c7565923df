package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFExporterRender(t *testing.T) {
	exporter := NewPDFExporter()
	data := Dataset{
		Headers: []string{"Date", "Class", "Amount"},
		Rows: []map[string]string{
			{"Date": "2026-07-01T10:00:00Z", "Class": "Archery", "Amount": "49.99"},
			{"Date": "2026-07-02T11:00:00Z", "Class": "Kayaking", "Amount": "30.00"},
		},
	}

	pdf, err := exporter.Render(data, "Payment history")
	require.NoError(t, err)
	assert.True(t, len(pdf) > 0)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestPDFExporterRenderEmptyRows(t *testing.T) {
	exporter := NewPDFExporter()
	pdf, err := exporter.Render(Dataset{Headers: []string{"Date"}}, "")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}

func TestPDFExporterRequiresHeaders(t *testing.T) {
	exporter := NewPDFExporter()
	_, err := exporter.Render(Dataset{}, "Nothing")
	require.Error(t, err)
}
