package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// TemplateColumns is the column order of the import template.
var TemplateColumns = []string{
	"name", "email", "phone", "company", "status", "source", "deal_value", "notes",
}

// Template builds the leads-template.xlsx workbook offered for download:
// the header row plus two example leads.
func Template() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Leads Template"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	rows := [][]interface{}{
		{"John Doe", "john@example.com", "+1234567890", "Acme Corp", "new", "website", 5000, "Interested in premium plan"},
		{"Jane Smith", "jane@company.com", "+0987654321", "Tech Solutions", "contacted", "referral", 10000, "Follow up next week"},
	}

	header := make([]interface{}, len(TemplateColumns))
	for i, col := range TemplateColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
