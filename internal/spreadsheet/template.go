package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExampleFileName is the download name of the example workbook.
const ExampleFileName = "gangnam_flood_example.xlsx"

// exampleHeader uses the Korean column names of the original dashboard.
var exampleHeader = []any{"날짜", "작성자 ID", "내용", "감성결과", "위도", "경도"}

var exampleRows = [][]any{
	{"2022-08-08", "user1", "강남역 물이 너무 많이 찼어요", "부정", 37.4979, 127.0276},
	{"2022-08-08", "user2", "도로가 침수돼서 차가 못 지나감", "부정", 37.4985, 127.0268},
}

// ExampleWorkbook renders the downloadable template: the expected header row
// and two sample posts near Gangnam Station.
func ExampleWorkbook() ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &exampleHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i := range exampleRows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cellRef, &exampleRows[i]); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(sheet, "C", "C", 40); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	return buf.Bytes(), nil
}
