// Package export renders tabular documents (statements, record slips) to PDF
// and XLSX.
package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	sheetName = "Sheet1"
)

// Document is a title, a block of label/value lines, a table and a closing
// summary block. Any part may be empty.
type Document struct {
	Title   string
	Header  []Field
	Columns []string
	Rows    [][]string
	Summary []Field
}

type Field struct {
	Label string
	Value string
}

// PDF lays the document out on A4 portrait pages.
func PDF(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, doc.Title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	for _, f := range doc.Header {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %s", f.Label, f.Value))
		pdf.Ln(7)
	}

	if len(doc.Columns) > 0 {
		pdf.Ln(3)
		pageWidth, _ := pdf.GetPageSize()
		left, _, right, _ := pdf.GetMargins()
		colWidth := (pageWidth - left - right) / float64(len(doc.Columns))

		pdf.SetFont("Helvetica", "B", 9)
		for _, c := range doc.Columns {
			pdf.CellFormat(colWidth, 7, c, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		for _, row := range doc.Rows {
			for i := range doc.Columns {
				value := ""
				if i < len(row) {
					value = row[i]
				}
				align := "L"
				if i > 0 {
					align = "R"
				}
				pdf.CellFormat(colWidth, 6, value, "1", 0, align, false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if len(doc.Summary) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 11)
		for _, f := range doc.Summary {
			pdf.Cell(0, 7, fmt.Sprintf("%s: %s", f.Label, f.Value))
			pdf.Ln(7)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// XLSX writes the document to a single sheet: title, header fields, a blank
// line, the table, a blank line and the summary.
func XLSX(doc Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	rowNo := 1
	set := func(col int, value interface{}) error {
		cell, err := excelize.CoordinatesToCellName(col, rowNo)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheetName, cell, value)
	}

	if doc.Title != "" {
		if err := set(1, doc.Title); err != nil {
			return nil, err
		}
		rowNo += 2
	}
	for _, field := range doc.Header {
		if err := set(1, field.Label); err != nil {
			return nil, err
		}
		if err := set(2, field.Value); err != nil {
			return nil, err
		}
		rowNo++
	}
	if len(doc.Header) > 0 {
		rowNo++
	}

	for i, c := range doc.Columns {
		if err := set(i+1, c); err != nil {
			return nil, err
		}
	}
	if len(doc.Columns) > 0 {
		rowNo++
	}
	for _, row := range doc.Rows {
		for i, value := range row {
			if err := set(i+1, value); err != nil {
				return nil, err
			}
		}
		rowNo++
	}

	if len(doc.Summary) > 0 {
		rowNo++
		for _, field := range doc.Summary {
			if err := set(1, field.Label); err != nil {
				return nil, err
			}
			if err := set(2, field.Value); err != nil {
				return nil, err
			}
			rowNo++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
