package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"regwatch/internal/models"
)

const sheetName = "Sheet1"

// headers of the comparison report, one column each. The similar-documents
// column carries every neighbor link and comparison as a cell comment.
var headers = []string{"Directorate", "Keyword", "Date", "Source", "Key Differences", "Similar Documents"}

// BuildWorkbook renders one comparison report into a styled workbook:
// a colored header row, a clickable link to the original document, the
// combined comparison as a comment on the Key Differences cell, and one
// comment listing each neighbor's link and comparison.
func BuildWorkbook(report models.ComparisonReport, directorate string) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"1E90FF"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 12, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	grayStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D3D3D3"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorder(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cell style: %w", err)
	}
	whiteStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorder(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cell style: %w", err)
	}
	linkStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Color: "0000FF", Underline: "single", Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorder(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create link style: %w", err)
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	values := []string{directorate, report.Keyword, report.Date}
	for i, value := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			return nil, err
		}
		// alternating gray and white columns
		style := grayStyle
		if (i+1)%2 == 0 {
			style = whiteStyle
		}
		if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
			return nil, err
		}
	}

	if err := f.SetCellValue(sheetName, "D2", "Original Document"); err != nil {
		return nil, err
	}
	if err := f.SetCellHyperLink(sheetName, "D2", report.URL, "External"); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, "D2", "D2", linkStyle); err != nil {
		return nil, err
	}

	if err := f.SetCellValue(sheetName, "E2", "..."); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, "E2", "E2", grayStyle); err != nil {
		return nil, err
	}
	if err := f.AddComment(sheetName, excelize.Comment{
		Cell:   "E2",
		Author: "Key Differences",
		Text:   report.CombinedComparison,
	}); err != nil {
		return nil, err
	}

	if err := f.SetCellValue(sheetName, "F2", "Similar Documents"); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, "F2", "F2", linkStyle); err != nil {
		return nil, err
	}
	if err := f.AddComment(sheetName, excelize.Comment{
		Cell:   "F2",
		Author: "Comparison",
		Text:   neighborCommentText(report),
	}); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(sheetName, "A", "E", 20); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "F", "F", 30); err != nil {
		return nil, err
	}
	return f, nil
}

// neighborCommentText lists every neighbor's link and comparison, in the
// neighbor order of the report.
func neighborCommentText(report models.ComparisonReport) string {
	text := "Similar documents:\n\n"
	for i, url := range report.NeighborURLs {
		comparison := models.FieldAbsent
		if i < len(report.IndividualComparisons) {
			comparison = report.IndividualComparisons[i]
		}
		text += fmt.Sprintf("Similar document %d: %s\nComparison: %s\n\n", i+1, url, comparison)
	}
	return text
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Style: 1},
		{Type: "right", Style: 1},
		{Type: "top", Style: 1},
		{Type: "bottom", Style: 1},
	}
}
