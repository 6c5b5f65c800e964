package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nichsedge/lhkpn/pkg/models"
	"github.com/nichsedge/lhkpn/pkg/utils"
)

// sectionMarkers flag category header rows in the comparison table: letters
// for the asset sections, roman numerals for the debt and total sections.
var sectionMarkers = []string{"A.", "B.", "C.", "D.", "E.", "F.", "II.", "III."}

// ParseDetail classifies the comparison table of a detail modal into the
// seven category buckets. Every bucket key is present in the result; a
// category the table never names stays empty.
func ParseDetail(html string) (map[string][]models.HartaItem, error) {
	buckets := make(map[string][]models.HartaItem, len(models.Kategoris))
	for _, k := range models.Kategoris {
		buckets[k.Key] = []models.HartaItem{}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return buckets, fmt.Errorf("parsing detail panel: %w", err)
	}

	tbody := doc.Find("tbody.data_perbandingan_lhkpn").First()
	if tbody.Length() == 0 {
		return buckets, nil
	}

	rows := tbody.Find("tr")

	currentKey := ""
	rows.Each(func(_ int, row *goquery.Selection) {
		cells := cellTexts(row)

		if key, ok := headerCategory(cells); ok {
			currentKey = key
			return
		}
		if currentKey == "" {
			return
		}
		if item, ok := itemFromCells(cells); ok {
			buckets[currentKey] = append(buckets[currentKey], item)
		}
	})

	// Aggregate-only tables carry no numbered lines. Salvage one total per
	// empty category so those records are not silently empty.
	for _, k := range models.Kategoris {
		if len(buckets[k.Key]) > 0 {
			continue
		}
		if total, ok := totalFromRows(rows, k.Nama); ok {
			buckets[k.Key] = append(buckets[k.Key], total)
		}
	}

	return buckets, nil
}

// cellTexts returns the trimmed text of every td and th in the row.
func cellTexts(row *goquery.Selection) []string {
	var cells []string
	row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(cell.Text()))
	})
	return cells
}

// joinedRowText joins the non-empty cells with single spaces, approximating
// the row as rendered.
func joinedRowText(cells []string) string {
	parts := make([]string, 0, len(cells))
	for _, c := range cells {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}

// headerCategory reports whether a row opens a category section. Two signals
// must agree: the canonical category name in the third cell or within the
// first 50 characters of the row text, and a section marker in one of the
// first two cells. The marker requirement keeps item descriptions that
// mention a category name from hijacking the cursor.
func headerCategory(cells []string) (string, bool) {
	if len(cells) < 3 {
		return "", false
	}

	c0 := strings.ToUpper(cells[0])
	c1 := strings.ToUpper(cells[1])
	c2 := strings.ToUpper(cells[2])

	prefix := strings.ToUpper(joinedRowText(cells))
	if len(prefix) > 50 {
		prefix = prefix[:50]
	}

	for _, k := range models.Kategoris {
		if !strings.Contains(c2, k.Nama) && !strings.Contains(prefix, k.Nama) {
			continue
		}
		for _, marker := range sectionMarkers {
			if strings.Contains(c1, marker) || strings.Contains(c0, marker) {
				return k.Key, true
			}
		}
	}
	return "", false
}

// itemFromCells reads a numbered asset line: an index cell like "12." in the
// first four cells, the description right after it, then the first later
// cell starting with a digit as the value. Rows missing either part are not
// items.
func itemFromCells(cells []string) (models.HartaItem, bool) {
	limit := len(cells)
	if limit > 4 {
		limit = 4
	}

	for j := 0; j < limit; j++ {
		text := cells[j]
		if text == "" || !isDigitByte(text[0]) || !strings.HasSuffix(text, ".") {
			continue
		}

		var item models.HartaItem
		if j+1 < len(cells) {
			item.Deskripsi = cells[j+1]
			for k := j + 2; k < len(cells); k++ {
				if cells[k] != "" && isDigitByte(cells[k][0]) {
					item.Nilai = cells[k]
					break
				}
			}
		}

		if item.Deskripsi != "" && item.Nilai != "" {
			return item, true
		}
		return models.HartaItem{}, false
	}
	return models.HartaItem{}, false
}

// totalFromRows salvages an aggregate value for a category without numbered
// lines: the first row naming the category that carries a purely numeric
// cell yields a single synthetic "Total" item.
func totalFromRows(rows *goquery.Selection, nama string) (models.HartaItem, bool) {
	var item models.HartaItem
	found := false

	rows.EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := cellTexts(row)
		if !strings.Contains(strings.ToUpper(joinedRowText(cells)), nama) {
			return true
		}
		for _, cell := range cells {
			if cell != "" && utils.IsNumericValue(cell) {
				item = models.HartaItem{Deskripsi: "Total", Nilai: cell}
				found = true
				return false
			}
		}
		return true
	})

	return item, found
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}
