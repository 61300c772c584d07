package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseCSV(t *testing.T) {
	csv := "Name, Email ,company\n Alice , alice@x.com ,Acme\nBob,bob@x.com\n"

	rows, err := Parse([]byte(csv), "leads.csv")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Headers are lowercased and trimmed; fields are trimmed.
	assert.Equal(t, "Alice", rows[0]["name"])
	assert.Equal(t, "alice@x.com", rows[0]["email"])
	assert.Equal(t, "Acme", rows[0]["company"])

	// Short rows are backfilled with empty strings.
	assert.Equal(t, "Bob", rows[1]["name"])
	assert.Equal(t, "", rows[1]["company"])
}

func TestParseCSVSkipsBlankRows(t *testing.T) {
	csv := "name,email\nAlice,alice@x.com\n,\nBob,bob@x.com\n"

	rows, err := Parse([]byte(csv), "leads.csv")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alice", rows[0]["name"])
	assert.Equal(t, "Bob", rows[1]["name"])
}

func TestParseCSVHeaderOnly(t *testing.T) {
	rows, err := Parse([]byte("name,email\n"), "leads.csv")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseUnsupportedExtension(t *testing.T) {
	_, err := Parse([]byte("name,email\nAlice,alice@x.com\n"), "leads.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Name", "Email"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Alice", "alice@x.com"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"Bob"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := Parse(buf.Bytes(), "leads.xlsx")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alice", rows[0]["name"])
	assert.Equal(t, "alice@x.com", rows[0]["email"])
	assert.Equal(t, "Bob", rows[1]["name"])
	assert.Equal(t, "", rows[1]["email"])
}

func TestParseXLSXRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("this is not a zip archive"), "leads.xlsx")
	assert.Error(t, err)
}

func TestTemplate(t *testing.T) {
	data, err := Template()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	records, err := f.GetRows(f.GetSheetList()[0])
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, TemplateColumns, records[0])

	// The template parses through the same pipeline users will hit.
	rows, err := Parse(data, "leads_template.xlsx")
	require.NoError(t, err)
	assert.NotEmpty(t, rows)
}
