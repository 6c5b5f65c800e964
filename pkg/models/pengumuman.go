package models

// Pengumuman holds one published LHKPN declaration: the announcement table row
// plus the asset breakdown extracted from the comparison modal.
type Pengumuman struct {
	Nama         string `json:"name"`
	Lembaga      string `json:"lembaga"`
	UnitKerja    string `json:"unit_kerja"`
	Jabatan      string `json:"jabatan"`
	TanggalLapor string `json:"tanggal_lapor"`
	JenisLaporan string `json:"jenis_laporan"`
	TotalHarta   string `json:"total_harta"`

	TanahBangunan   []HartaItem `json:"tanah_bangunan"`
	Transportasi    []HartaItem `json:"transportasi"`
	BergerakLainnya []HartaItem `json:"bergerak_lainnya"`
	SuratBerharga   []HartaItem `json:"surat_berharga"`
	Kas             []HartaItem `json:"kas"`
	HartaLainnya    []HartaItem `json:"harta_lainnya"`
	Hutang          []HartaItem `json:"hutang"`
}

// HartaItem is a single asset line inside one category bucket. Nilai keeps the
// portal's raw text, grouping dots and currency prefix included.
type HartaItem struct {
	Deskripsi string `json:"description"`
	Nilai     string `json:"value"`
}

// Kategori pairs a category's canonical header name with its bucket key.
type Kategori struct {
	Nama string
	Key  string
}

// Kategoris lists the seven asset categories in the order the comparison
// modal presents them. Bucket keys double as JSON keys and CSV columns.
var Kategoris = []Kategori{
	{Nama: "TANAH DAN BANGUNAN", Key: "tanah_bangunan"},
	{Nama: "ALAT TRANSPORTASI DAN MESIN", Key: "transportasi"},
	{Nama: "HARTA BERGERAK LAINNYA", Key: "bergerak_lainnya"},
	{Nama: "SURAT BERHARGA", Key: "surat_berharga"},
	{Nama: "KAS DAN SETARA KAS", Key: "kas"},
	{Nama: "HARTA LAINNYA", Key: "harta_lainnya"},
	{Nama: "HUTANG", Key: "hutang"},
}

// NewPengumuman returns a record with every bucket present but empty, so an
// unparsed record still serializes with all category keys.
func NewPengumuman() Pengumuman {
	return Pengumuman{
		TanahBangunan:   []HartaItem{},
		Transportasi:    []HartaItem{},
		BergerakLainnya: []HartaItem{},
		SuratBerharga:   []HartaItem{},
		Kas:             []HartaItem{},
		HartaLainnya:    []HartaItem{},
		Hutang:          []HartaItem{},
	}
}

// Harta returns the bucket for a category key, nil for unknown keys.
func (p *Pengumuman) Harta(key string) []HartaItem {
	switch key {
	case "tanah_bangunan":
		return p.TanahBangunan
	case "transportasi":
		return p.Transportasi
	case "bergerak_lainnya":
		return p.BergerakLainnya
	case "surat_berharga":
		return p.SuratBerharga
	case "kas":
		return p.Kas
	case "harta_lainnya":
		return p.HartaLainnya
	case "hutang":
		return p.Hutang
	}
	return nil
}

// SetHarta replaces the bucket for a category key. Unknown keys are ignored.
func (p *Pengumuman) SetHarta(key string, items []HartaItem) {
	switch key {
	case "tanah_bangunan":
		p.TanahBangunan = items
	case "transportasi":
		p.Transportasi = items
	case "bergerak_lainnya":
		p.BergerakLainnya = items
	case "surat_berharga":
		p.SuratBerharga = items
	case "kas":
		p.Kas = items
	case "harta_lainnya":
		p.HartaLainnya = items
	case "hutang":
		p.Hutang = items
	}
}

// TotalItems counts the asset lines across all buckets.
func (p *Pengumuman) TotalItems() int {
	n := 0
	for _, k := range Kategoris {
		n += len(p.Harta(k.Key))
	}
	return n
}
