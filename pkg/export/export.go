package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/nichsedge/lhkpn/pkg/models"
)

// scalarHeaders is the CSV column order for the announcement fields. The
// category columns follow in their canonical order.
var scalarHeaders = []string{
	"name", "lembaga", "unit_kerja", "jabatan",
	"tanggal_lapor", "jenis_laporan", "total_harta",
}

// WriteJSON writes the records as an indented JSON array.
func WriteJSON(path string, records []models.Pengumuman) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}

// WriteCSV writes one row per record, scalar columns first. Each category
// column holds the JSON encoding of its items, so the flat file still
// carries the full asset breakdown.
func WriteCSV(path string, records []models.Pengumuman) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	headers := append([]string{}, scalarHeaders...)
	for _, k := range models.Kategoris {
		headers = append(headers, k.Key)
	}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.Nama, rec.Lembaga, rec.UnitKerja, rec.Jabatan,
			rec.TanggalLapor, rec.JenisLaporan, rec.TotalHarta,
		}
		for _, k := range models.Kategoris {
			encoded, err := json.Marshal(rec.Harta(k.Key))
			if err != nil {
				return fmt.Errorf("error encoding %s items: %w", k.Key, err)
			}
			row = append(row, string(encoded))
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("error writing CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("error flushing %s: %w", path, err)
	}
	return nil
}
