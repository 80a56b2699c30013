// Package export writes the player and club databases as a spreadsheet.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
)

const (
	SheetMen   = "Pemain Putra"
	SheetWomen = "Pemain Putri"
	SheetClubs = "Klub"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	playerHeader = []any{"ID", "Nama", "Klub", "Posisi", "Usia", "Tinggi (cm)", "Berat (kg)", "Spike (cm)", "Block (cm)", "Tangan"}
	clubHeader   = []any{"ID", "Nama", "Kota", "Status", "Pelatih", "Berdiri", "Alamat", "Jumlah Pemain", "Prestasi"}
)

// Directory writes one sheet per player gender and one for clubs.
func Directory(w io.Writer, men, women []federation.Player, clubs []federation.Club) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetMen); err != nil {
		return err
	}
	for _, name := range []string{SheetWomen, SheetClubs} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := writeSheet(f, SheetMen, header, playerHeader, playerRows(men)); err != nil {
		return err
	}
	if err := writeSheet(f, SheetWomen, header, playerHeader, playerRows(women)); err != nil {
		return err
	}
	if err := writeSheet(f, SheetClubs, header, clubHeader, clubRows(clubs)); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headerStyle int, header []any, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

// optional leaves the cell empty for a missing stat.
func optional(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}

func playerRows(players []federation.Player) [][]any {
	rows := make([][]any, 0, len(players))
	for _, p := range players {
		rows = append(rows, []any{
			p.ID, p.Name, p.Club, p.Position,
			optional(p.Age), optional(p.Height), optional(p.Weight), optional(p.Spike), optional(p.Block),
			p.Hand,
		})
	}
	return rows
}

func clubRows(clubs []federation.Club) [][]any {
	rows := make([][]any, 0, len(clubs))
	for _, c := range clubs {
		rows = append(rows, []any{
			c.ID, c.Name, c.City, c.Status, c.Coach, c.Founded, c.Address,
			len(c.Squad), strings.Join(c.Achievements, "; "),
		})
	}
	return rows
}
