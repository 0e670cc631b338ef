// Package export writes cleaned region tables and share comparisons to an
// XLSX workbook.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/popstat/engine"
	"github.com/spektr-org/popstat/schema"
)

// ContentType of the workbook written by WriteWorkbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const maxSheetName = 31

// Sheet is one worksheet: a header row followed by data rows.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]interface{}
}

// RegionSheet lists a cleaned table, largest population first.
func RegionSheet(year int, t engine.RegionTable) Sheet {
	s := Sheet{
		Name: fmt.Sprintf("Regions %d", year),
		Header: []string{
			schema.FieldYear, schema.FieldRegionCode, schema.FieldRegion, schema.FieldPopulation,
		},
	}
	for _, r := range engine.SortByPopulationDesc(t) {
		s.Rows = append(s.Rows, []interface{}{r.Year, r.RegionCode, r.RegionName, r.Population})
	}
	return s
}

// ShareSheet lists a share comparison in share-table order. An absent
// table yields a sheet with the header only.
func ShareSheet(yearA, yearB int, s *engine.ShareTable) Sheet {
	sheet := Sheet{
		Name:   fmt.Sprintf("Share %d-%d", yearA, yearB),
		Header: []string{"Region", fmt.Sprintf("share_%d", yearA), fmt.Sprintf("share_%d", yearB), "pp_change"},
	}
	if s == nil {
		return sheet
	}
	for _, r := range s.Records {
		sheet.Rows = append(sheet.Rows, []interface{}{
			r.Region, engine.RoundTo2(r.ShareA), engine.RoundTo2(r.ShareB), engine.RoundTo2(r.PointChange),
		})
	}
	return sheet
}

// WriteWorkbook writes the sheets in order to w.
func WriteWorkbook(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("no sheets to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	used := make(map[string]bool, len(sheets))
	for i, s := range sheets {
		name := uniqueName(SheetName(s.Name), used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", name, err)
		}
		if err := writeSheet(f, name, s, headerStyle); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, s Sheet, headerStyle int) error {
	header := make([]interface{}, len(s.Header))
	for i, h := range s.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %q: %w", name, err)
	}

	if len(s.Header) > 0 {
		last, err := excelize.CoordinatesToCellName(len(s.Header), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("failed to style header of %q: %w", name, err)
		}
		lastCol := strings.TrimRight(last, "0123456789")
		if err := f.SetColWidth(name, "A", lastCol, 22); err != nil {
			return fmt.Errorf("failed to size columns of %q: %w", name, err)
		}
	}

	for i, row := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(name, cell, &r); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", i+2, name, err)
		}
	}
	return nil
}

// SheetName makes name acceptable to Excel: no []:*?/\ and at most 31
// characters.
func SheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		name = "Sheet"
	}
	if runes := []rune(name); len(runes) > maxSheetName {
		name = string(runes[:maxSheetName])
	}
	return name
}

func uniqueName(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		runes := []rune(name)
		if len(runes)+len(suffix) > maxSheetName {
			runes = runes[:maxSheetName-len(suffix)]
		}
		candidate = string(runes) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
