package report_test

import (
	"fmt"

	"github.com/statboard/statboard/pkg/report"
)

func ExampleParseRatio() {
	r, err := report.ParseRatio("16:9")
	if err != nil {
		panic(err)
	}
	fmt.Println(r)
	fmt.Println(r.HeightFor(800))
	// Output:
	// 16:9
	// 450
}

func ExampleBlock_TotalWidthUnits() {
	block := report.Block{
		ID: "breakdown",
		Cells: []report.Cell{
			{ChartID: "channels", Width: 1, BodyType: report.BodyPie},
			{ChartID: "daily", Width: 2, BodyType: report.BodyBar},
		},
	}
	fmt.Println(block.TotalWidthUnits())
	// Output: 3
}
