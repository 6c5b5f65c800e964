package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nichsedge/lhkpn/pkg/models"
)

const itemizedPanelHTML = `
<div id="modal-perbandingan-announcement-lhkpn">
  <table class="table">
    <tbody class="data_perbandingan_lhkpn">
      <tr><th>NO</th><th>URAIAN</th><th>NILAI</th></tr>
      <tr><td>A.</td><td></td><td>TANAH DAN BANGUNAN</td><td></td><td>1.500.000.000</td></tr>
      <tr><td></td><td>1.</td><td>Tanah Seluas 250 m2 di Kab. Bogor</td><td></td><td>900.000.000</td></tr>
      <tr><td></td><td>2.</td><td>Tanah dan Bangunan Seluas 120 m2 / 80 m2 di Jakarta Timur</td><td></td><td>600.000.000</td></tr>
      <tr><td>B.</td><td></td><td>ALAT TRANSPORTASI DAN MESIN</td><td></td><td>210.000.000</td></tr>
      <tr><td></td><td>1.</td><td>MOBIL, TOYOTA KIJANG INNOVA Tahun 2019</td><td></td><td>210.000.000</td></tr>
      <tr><td>C.</td><td></td><td>HARTA BERGERAK LAINNYA</td><td></td><td>35.000.000</td></tr>
      <tr><td></td><td>1.</td><td>Perhiasan Logam Mulia</td><td></td><td>35.000.000</td></tr>
      <tr><td>D.</td><td></td><td>SURAT BERHARGA</td><td></td><td>----</td></tr>
      <tr><td>E.</td><td></td><td>KAS DAN SETARA KAS</td><td></td><td>161.500.000</td></tr>
      <tr><td></td><td>1.</td><td>Deposito</td><td></td><td>100.000.000</td></tr>
      <tr><td></td><td>2.</td><td>Tabungan</td><td></td><td>61.500.000</td></tr>
      <tr><td>F.</td><td></td><td>HARTA LAINNYA</td><td></td><td>75.000.000</td></tr>
      <tr><td>II.</td><td></td><td>HUTANG</td><td></td><td>120.000.000</td></tr>
      <tr><td>III.</td><td></td><td>TOTAL HARTA KEKAYAAN (II-I)</td><td></td><td>1.861.500.000</td></tr>
    </tbody>
  </table>
</div>`

const aggregatePanelHTML = `
<div id="modal-perbandingan-announcement-lhkpn">
  <table class="table">
    <tbody class="data_perbandingan_lhkpn">
      <tr><td>A.</td><td>TANAH DAN BANGUNAN</td><td>850.000.000</td></tr>
      <tr><td>B.</td><td>ALAT TRANSPORTASI DAN MESIN</td><td>95.000.000</td></tr>
      <tr><td>C.</td><td>HARTA BERGERAK LAINNYA</td><td>15.000.000</td></tr>
      <tr><td>D.</td><td>SURAT BERHARGA</td><td>0</td></tr>
      <tr><td>E.</td><td>KAS DAN SETARA KAS</td><td>45.500.000</td></tr>
      <tr><td></td><td>Rincian</td><td>KAS DAN SETARA KAS lainnya</td><td>99.000.000</td></tr>
      <tr><td>F.</td><td>HARTA LAINNYA</td><td>5.000.000</td></tr>
      <tr><td>II.</td><td>HUTANG</td><td>25.000.000</td></tr>
      <tr><td>III.</td><td>TOTAL HARTA KEKAYAAN</td><td>986.500.000</td></tr>
    </tbody>
  </table>
</div>`

const orphanRowPanelHTML = `
<div id="modal-perbandingan-announcement-lhkpn">
  <table>
    <tbody class="data_perbandingan_lhkpn">
      <tr><td>1.</td><td>Orphan asset line</td><td>500.000</td></tr>
      <tr><td>A.</td><td></td><td>TANAH DAN BANGUNAN</td><td></td><td>900.000.000</td></tr>
      <tr><td></td><td>1.</td><td>Tanah di Depok</td><td></td><td>900.000.000</td></tr>
    </tbody>
  </table>
</div>`

func TestParseDetailClassifiesSectionsInOrder(t *testing.T) {
	buckets, err := ParseDetail(itemizedPanelHTML)
	require.NoError(t, err)

	require.Len(t, buckets["tanah_bangunan"], 2)
	assert.Equal(t, "Tanah Seluas 250 m2 di Kab. Bogor", buckets["tanah_bangunan"][0].Deskripsi)
	assert.Equal(t, "900.000.000", buckets["tanah_bangunan"][0].Nilai)
	assert.Equal(t, "600.000.000", buckets["tanah_bangunan"][1].Nilai)

	require.Len(t, buckets["transportasi"], 1)
	assert.Equal(t, "MOBIL, TOYOTA KIJANG INNOVA Tahun 2019", buckets["transportasi"][0].Deskripsi)

	require.Len(t, buckets["bergerak_lainnya"], 1)
	assert.Equal(t, "Perhiasan Logam Mulia", buckets["bergerak_lainnya"][0].Deskripsi)

	require.Len(t, buckets["kas"], 2)
	assert.Equal(t, "Deposito", buckets["kas"][0].Deskripsi)
	assert.Equal(t, "Tabungan", buckets["kas"][1].Deskripsi)
}

func TestParseDetailCategoryNameInDescriptionIsNotHeader(t *testing.T) {
	buckets, err := ParseDetail(itemizedPanelHTML)
	require.NoError(t, err)

	// The second tanah line names its own category; without a section marker
	// it must stay an item instead of resetting the cursor.
	require.Len(t, buckets["tanah_bangunan"], 2)
	assert.Contains(t, buckets["tanah_bangunan"][1].Deskripsi, "Tanah dan Bangunan Seluas")
}

func TestParseDetailSalvagesSingleTotalForAggregateSections(t *testing.T) {
	buckets, err := ParseDetail(itemizedPanelHTML)
	require.NoError(t, err)

	require.Len(t, buckets["harta_lainnya"], 1)
	assert.Equal(t, models.HartaItem{Deskripsi: "Total", Nilai: "75.000.000"}, buckets["harta_lainnya"][0])

	require.Len(t, buckets["hutang"], 1)
	assert.Equal(t, models.HartaItem{Deskripsi: "Total", Nilai: "120.000.000"}, buckets["hutang"][0])
}

func TestParseDetailSectionWithoutNumbersStaysEmpty(t *testing.T) {
	buckets, err := ParseDetail(itemizedPanelHTML)
	require.NoError(t, err)

	// SURAT BERHARGA carries neither numbered lines nor a numeric total.
	assert.Empty(t, buckets["surat_berharga"])
}

func TestParseDetailAggregateOnlyTable(t *testing.T) {
	buckets, err := ParseDetail(aggregatePanelHTML)
	require.NoError(t, err)

	expected := map[string]string{
		"tanah_bangunan":   "850.000.000",
		"transportasi":     "95.000.000",
		"bergerak_lainnya": "15.000.000",
		"surat_berharga":   "0",
		"harta_lainnya":    "5.000.000",
		"hutang":           "25.000.000",
	}
	for key, nilai := range expected {
		require.Len(t, buckets[key], 1, "bucket %s", key)
		assert.Equal(t, "Total", buckets[key][0].Deskripsi, "bucket %s", key)
		assert.Equal(t, nilai, buckets[key][0].Nilai, "bucket %s", key)
	}

	// Two rows name KAS DAN SETARA KAS; only the first may contribute.
	require.Len(t, buckets["kas"], 1)
	assert.Equal(t, "45.500.000", buckets["kas"][0].Nilai)
}

func TestParseDetailMissingTable(t *testing.T) {
	buckets, err := ParseDetail(`<div id="modal-perbandingan-announcement-lhkpn"><p>memuat...</p></div>`)
	require.NoError(t, err)

	require.Len(t, buckets, len(models.Kategoris))
	for _, k := range models.Kategoris {
		items, ok := buckets[k.Key]
		require.True(t, ok, "bucket %s missing", k.Key)
		assert.Empty(t, items)
	}
}

func TestParseDetailRowsBeforeFirstHeaderIgnored(t *testing.T) {
	buckets, err := ParseDetail(orphanRowPanelHTML)
	require.NoError(t, err)

	require.Len(t, buckets["tanah_bangunan"], 1)
	assert.Equal(t, "Tanah di Depok", buckets["tanah_bangunan"][0].Deskripsi)

	for _, k := range models.Kategoris {
		if k.Key == "tanah_bangunan" {
			continue
		}
		assert.Empty(t, buckets[k.Key], "bucket %s", k.Key)
	}
}

func TestHeaderCategoryNeedsBothSignals(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
		key   string
		ok    bool
	}{
		{
			name:  "marker and name in third cell",
			cells: []string{"A.", "", "TANAH DAN BANGUNAN"},
			key:   "tanah_bangunan",
			ok:    true,
		},
		{
			name:  "marker in second cell, name in row prefix",
			cells: []string{"", "II.", "", "HUTANG"},
			key:   "hutang",
			ok:    true,
		},
		{
			name:  "name without marker",
			cells: []string{"", "", "KAS DAN SETARA KAS"},
			ok:    false,
		},
		{
			name:  "marker without name",
			cells: []string{"B.", "", "apapun"},
			ok:    false,
		},
		{
			name:  "roman marker with debt section",
			cells: []string{"II.", "", "HUTANG"},
			key:   "hutang",
			ok:    true,
		},
		{
			name:  "too few cells",
			cells: []string{"A.", "TANAH DAN BANGUNAN"},
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := headerCategory(tt.cells)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.key, key)
			}
		})
	}
}

func TestItemFromCells(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		item models.HartaItem
		ok   bool
	}{
		{
			name: "index in second cell",
			in:   []string{"", "3.", "Sepeda Motor Honda", "", "21.000.000"},
			item: models.HartaItem{Deskripsi: "Sepeda Motor Honda", Nilai: "21.000.000"},
			ok:   true,
		},
		{
			name: "index in first cell",
			in:   []string{"12.", "Logam Mulia", "8.500.000"},
			item: models.HartaItem{Deskripsi: "Logam Mulia", Nilai: "8.500.000"},
			ok:   true,
		},
		{
			name: "no numeric value after description",
			in:   []string{"1.", "Tanah Warisan", "belum dinilai"},
			ok:   false,
		},
		{
			name: "index beyond the fourth cell",
			in:   []string{"", "", "", "", "1.", "Deposito", "5.000.000"},
			ok:   false,
		},
		{
			name: "plain text row",
			in:   []string{"Catatan", "nilai berdasarkan NJOP"},
			ok:   false,
		},
		{
			name: "digit cell without trailing dot",
			in:   []string{"2019", "Pajak", "1.000.000"},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, ok := itemFromCells(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.item, item)
			}
		})
	}
}
