package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/nichsedge/lhkpn/pkg/models"
	"github.com/nichsedge/lhkpn/pkg/utils"
)

type DatabaseService struct {
	db *sql.DB
}

func NewDatabaseService(connectionString string) (*DatabaseService, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	return &DatabaseService{db: db}, nil
}

func (ds *DatabaseService) Close() error {
	return ds.db.Close()
}

// EnsureSchema creates the tables on first use. The raw portal strings are
// kept next to their numeric mirrors so nothing is lost to parsing.
func (ds *DatabaseService) EnsureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pengumuman (
		id SERIAL PRIMARY KEY,
		nama TEXT NOT NULL,
		lembaga TEXT,
		unit_kerja TEXT,
		jabatan TEXT,
		tanggal_lapor DATE,
		jenis_laporan TEXT,
		total_harta TEXT,
		total_harta_nilai NUMERIC(20, 2),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (nama, tanggal_lapor, jenis_laporan)
	);

	CREATE TABLE IF NOT EXISTS harta_item (
		id SERIAL PRIMARY KEY,
		pengumuman_id INTEGER NOT NULL REFERENCES pengumuman(id) ON DELETE CASCADE,
		kategori TEXT NOT NULL,
		urutan INTEGER NOT NULL,
		deskripsi TEXT,
		nilai TEXT,
		nilai_angka NUMERIC(20, 2)
	);

	CREATE INDEX IF NOT EXISTS idx_harta_item_pengumuman ON harta_item (pengumuman_id);
	CREATE INDEX IF NOT EXISTS idx_pengumuman_nama ON pengumuman (nama);
	`

	if _, err := ds.db.Exec(schema); err != nil {
		return fmt.Errorf("error creating schema: %w", err)
	}
	return nil
}

// InsertPengumuman upserts one record and replaces its asset lines inside a
// single transaction.
func (ds *DatabaseService) InsertPengumuman(p *models.Pengumuman) error {
	tx, err := ds.db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	// 1. Upsert the announcement row
	pengumumanID, err := ds.insertPengumumanRow(tx, p)
	if err != nil {
		return fmt.Errorf("error inserting pengumuman: %w", err)
	}

	// 2. Replace its asset lines
	if err := ds.insertHartaItems(tx, pengumumanID, p); err != nil {
		return fmt.Errorf("error inserting harta items: %w", err)
	}

	return tx.Commit()
}

func (ds *DatabaseService) insertPengumumanRow(tx *sql.Tx, p *models.Pengumuman) (int64, error) {
	query := `
	INSERT INTO pengumuman (
		nama, lembaga, unit_kerja, jabatan, tanggal_lapor,
		jenis_laporan, total_harta, total_harta_nilai
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8
	)
	ON CONFLICT (nama, tanggal_lapor, jenis_laporan) DO UPDATE SET
		lembaga = EXCLUDED.lembaga,
		unit_kerja = EXCLUDED.unit_kerja,
		jabatan = EXCLUDED.jabatan,
		total_harta = EXCLUDED.total_harta,
		total_harta_nilai = EXCLUDED.total_harta_nilai,
		updated_at = CURRENT_TIMESTAMP
	RETURNING id`

	var pengumumanID int64
	err := tx.QueryRow(query,
		p.Nama,
		ds.nullString(p.Lembaga),
		ds.nullString(p.UnitKerja),
		ds.nullString(p.Jabatan),
		ds.parseDate(utils.ParseTanggal(p.TanggalLapor)),
		ds.nullString(p.JenisLaporan),
		ds.nullString(p.TotalHarta),
		ds.nullRupiah(p.TotalHarta),
	).Scan(&pengumumanID)

	return pengumumanID, err
}

func (ds *DatabaseService) insertHartaItems(tx *sql.Tx, pengumumanID int64, p *models.Pengumuman) error {
	if _, err := tx.Exec("DELETE FROM harta_item WHERE pengumuman_id = $1", pengumumanID); err != nil {
		return err
	}

	for _, k := range models.Kategoris {
		for idx, item := range p.Harta(k.Key) {
			_, err := tx.Exec(`
				INSERT INTO harta_item (pengumuman_id, kategori, urutan, deskripsi, nilai, nilai_angka)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				pengumumanID, k.Key, idx+1,
				ds.nullString(item.Deskripsi),
				ds.nullString(item.Nilai),
				ds.nullRupiah(item.Nilai))
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Helper functions
func (ds *DatabaseService) nullString(s string) interface{} {
	if s == "" || s == "-" {
		return nil
	}
	return s
}

func (ds *DatabaseService) nullRupiah(s string) interface{} {
	if s == "" || s == "-" {
		return nil
	}
	return utils.ParseRupiah(s)
}

func (ds *DatabaseService) parseDate(dateStr string) interface{} {
	if dateStr == "" || dateStr == "-" {
		return nil
	}

	formats := []string{
		"2006-01-02",
		"02/01/2006",
		"02-01-2006",
	}

	for _, format := range formats {
		if date, err := time.Parse(format, dateStr); err == nil {
			return date
		}
	}

	return nil
}
