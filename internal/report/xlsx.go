// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet the XLSX sink writes to.
const SheetName = "Papers"

// XLSXSink writes a single-sheet workbook with the header in row 1.
type XLSXSink struct {
	w io.Writer
}

func (s *XLSXSink) Write(rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	if err := setRow(f, 1, Header); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setRow(f, i+2, r.Record()); err != nil {
			return err
		}
	}

	if err := f.Write(s.w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func (s *XLSXSink) Close() error { return nil }

func setRow(f *excelize.File, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", rowNum, err)
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("writing row %d: %w", rowNum, err)
	}
	return nil
}
