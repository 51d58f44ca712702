package export

import (
	"fmt"
	"io"

	"github.com/stemsi/rekamsehat-backend/internal/model"
	"github.com/xuri/excelize/v2"
)

// MateriSheet is the worksheet name of the fitness test export.
const MateriSheet = "Data Materi"

// MateriHeaders are the column titles, in order.
var MateriHeaders = []string{
	"No",
	"Nama Peserta",
	"Tanggal Pengujian",
	"Tinggi Badan (cm)",
	"Berat Badan (kg)",
	"IMT",
	"VO2Max",
	"Lari 12 Menit (m)",
	"Push Up / mnt",
	"Sit Up / mnt",
	"Pull Up / mnt",
	"Shuttle Run (dtk)",
}

// WriteMateriWorkbook renders records as an xlsx workbook into w. names maps
// peserta ids to display names; unknown ids fall back to the id itself.
func WriteMateriWorkbook(w io.Writer, records []model.DataMateri, names map[string]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", MateriSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DCE6F1"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	if err := f.SetSheetRow(MateriSheet, "A1", &MateriHeaders); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(MateriHeaders), 1)
	if err := f.SetCellStyle(MateriSheet, "A1", last, header); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, r := range records {
		name := names[r.PesertaID]
		if name == "" {
			name = r.PesertaID
		}
		row := []interface{}{
			i + 1,
			name,
			r.TanggalPengujian,
			r.TinggiBadan,
			r.BeratBadan,
			r.IndexMasaTubuh,
			r.VO2Max,
			r.Lari12Menit,
			r.PushUpMnt,
			r.SitUpMnt,
			r.PullUpMnt,
			r.ShuttleRun,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(MateriSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(MateriSheet, "B", "C", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(MateriSheet, "D", "L", 16); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
