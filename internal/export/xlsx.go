// Package export writes feasible builds to a spreadsheet.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"build-optimizer/internal/build"
)

const sheet = "Builds"

var header = []any{
	"URL", "Weapon",
	"Helmet", "Chestplate", "Leggings", "Boots", "Ring 1", "Ring 2", "Bracelet", "Necklace",
	"Assigned", "Str", "Dex", "Int", "Def", "Agi",
	"HP", "EHP", "HPR",
	"Earth Def", "Thunder Def", "Water Def", "Fire Def", "Air Def",
	"MR", "LS", "MS", "Spd", "SD Raw", "SD %",
}

// XLSXSink buffers builds and writes them as one sheet on Close.
type XLSXSink struct {
	Path string
	rows [][]any
}

// NewXLSXSink returns a sink that will write to path.
func NewXLSXSink(path string) *XLSXSink {
	return &XLSXSink{Path: path}
}

// SaveBuild buffers r.
func (x *XLSXSink) SaveBuild(_ context.Context, r build.Result) error {
	x.rows = append(x.rows, row(r))
	return nil
}

// Len is the number of buffered builds.
func (x *XLSXSink) Len() int { return len(x.rows) }

func row(r build.Result) []any {
	st := r.Status
	sp := st.SkillPoint
	out := []any{r.URL, r.Weapon,
		r.Items[build.SlotHelmet], r.Items[build.SlotChestplate], r.Items[build.SlotLeggings], r.Items[build.SlotBoots],
		r.Items[build.SlotRing0], r.Items[build.SlotRing1], r.Items[build.SlotBracelet], r.Items[build.SlotNecklace],
		sp.Assigned.Sum(),
	}
	for _, v := range sp.Original {
		out = append(out, v)
	}
	out = append(out, st.MaxHP, st.MaxEHP, st.MaxHPR)
	for _, v := range st.MaxDef {
		out = append(out, v)
	}
	ms := st.MaxStat
	return append(out, ms[2], ms[3], ms[4], ms[5], ms[6], ms[7])
}

// Close writes the workbook.
func (x *XLSXSink) Close() error {
	if dir := filepath.Dir(x.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, r := range x.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 60); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "J", 18); err != nil {
		return err
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}
	if err := f.SaveAs(x.Path); err != nil {
		return fmt.Errorf("save %s: %w", x.Path, err)
	}
	return nil
}
