package scraper

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/nichsedge/lhkpn/pkg/models"
)

// rowSnapshot is one result row lifted out of the page HTML: its cell texts
// plus whether the row advertises a detail control.
type rowSnapshot struct {
	cells     []string
	hasDetail bool
}

// CollectAnnouncements walks the result pages in order and returns up to
// maxResults records. maxResults <= 0 collects every page. Fatal navigation
// errors surface; everything else degrades to fewer or thinner records.
func (s *LHKPNScraper) CollectAnnouncements(maxResults int) ([]models.Pengumuman, error) {
	results := []models.Pengumuman{}
	pageNum := 1

	for {
		log.Printf("📄 Processing page %d...", pageNum)

		if _, err := s.page.Timeout(10 * time.Second).Element(resultRowSelector); err != nil {
			log.Printf("⚠️ No result rows on page %d: %v", pageNum, err)
			break
		}

		snaps, err := s.snapshotResultRows()
		if err != nil {
			return results, err
		}

		// A lone placeholder row ("loading", "no data") has too few cells to
		// be a record and means pagination ran past the last page.
		if len(snaps) > 0 && len(snaps[0].cells) < 5 {
			log.Println("⚠️ Placeholder page, stopping pagination.")
			break
		}

		log.Printf("🔍 Found %d rows on page %d.", len(snaps), pageNum)

		liveRows, err := s.page.Elements(resultRowSelector)
		if err != nil {
			log.Printf("⚠️ Could not get live rows: %v", err)
			liveRows = nil
		}

		for i, snap := range snaps {
			if maxResults > 0 && len(results) >= maxResults {
				break
			}

			rec, err := pengumumanFromCells(snap.cells)
			if err != nil {
				log.Printf("⚠️ Skipping row %d on page %d: %v", i, pageNum, err)
				continue
			}

			if snap.hasDetail && i < len(liveRows) {
				if err := s.collectDetail(liveRows[i], &rec); err != nil {
					log.Printf("⚠️ Keeping basic data for %s (%s): %v", rec.Nama, rec.TanggalLapor, err)
				}
			} else if !snap.hasDetail {
				log.Printf("📋 No detail link for %s (%s), keeping basic data.", rec.Nama, rec.TanggalLapor)
			}

			results = append(results, rec)
		}

		// Never advance once the cap is met, even when it lands on the last
		// row of a page.
		if maxResults > 0 && len(results) >= maxResults {
			log.Printf("✅ Reached requested maximum of %d records.", maxResults)
			break
		}

		if !s.nextPage() {
			break
		}
		pageNum++
	}

	log.Printf("✅ Collected %d records.", len(results))
	return results, nil
}

// snapshotResultRows parses the current page HTML into row snapshots.
func (s *LHKPNScraper) snapshotResultRows() ([]rowSnapshot, error) {
	html, err := s.page.HTML()
	if err != nil {
		return nil, fmt.Errorf("%w: reading results page: %v", ErrNavigation, err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing results page: %v", ErrNavigation, err)
	}
	return snapshotRows(doc), nil
}

func snapshotRows(doc *goquery.Document) []rowSnapshot {
	var snaps []rowSnapshot
	doc.Find(resultRowSelector).Each(func(_ int, row *goquery.Selection) {
		snap := rowSnapshot{
			hasDetail: row.Find(detailAffordanceSelector).Length() > 0,
		}
		row.Find("td").Each(func(_ int, cell *goquery.Selection) {
			snap.cells = append(snap.cells, cell.Text())
		})
		snaps = append(snaps, snap)
	})
	return snaps
}

// pengumumanFromCells maps one result row's cell texts onto a record. The
// portal renders two layouts: the announcement table starts the name at cell
// 6, the compact table at cell 1. A blank name or a total without the rupiah
// marker flips to the compact offsets.
func pengumumanFromCells(cells []string) (models.Pengumuman, error) {
	cell := func(i int) string {
		if i >= 0 && i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}

	rec := models.NewPengumuman()
	rec.Nama = cell(6)
	rec.Lembaga = cell(7)
	rec.UnitKerja = cell(8)
	rec.Jabatan = cell(9)
	rec.TanggalLapor = cell(10)
	rec.JenisLaporan = cell(11)
	rec.TotalHarta = cell(12)

	if rec.Nama == "" || !strings.Contains(rec.TotalHarta, "Rp.") {
		rec.Nama = cell(1)
		rec.Lembaga = cell(2)
		rec.UnitKerja = cell(3)
		rec.Jabatan = cell(4)
		rec.TanggalLapor = cell(5)
		rec.JenisLaporan = cell(6)
		rec.TotalHarta = cell(7)
	}

	if rec.Nama == "" {
		return rec, fmt.Errorf("%w: no name in any known cell layout", ErrRowExtraction)
	}

	return rec, nil
}

// nextPage advances the results table. It reports false when the pager is
// missing, hidden, or disabled.
func (s *LHKPNScraper) nextPage() bool {
	next, ok := s.findFirstPresent(nextControlSelectors...)
	if !ok {
		log.Println("📋 No next page control found.")
		return false
	}

	visible, err := next.Visible()
	if err != nil || !visible || s.nextDisabled(next) {
		log.Println("✅ Reached last page.")
		return false
	}

	log.Println("📄 Clicking next page...")
	if err := next.ScrollIntoView(); err != nil {
		log.Printf("⚠️ Could not scroll to next control: %v", err)
	}
	if err := next.Timeout(10 * time.Second).Click(proto.InputMouseButtonLeft, 1); err != nil {
		log.Printf("⚠️ Could not click next control: %v", err)
		return false
	}
	time.Sleep(5 * time.Second)
	return true
}

func (s *LHKPNScraper) nextDisabled(el *rod.Element) bool {
	parentClass := ""
	if parent, err := el.Parent(); err == nil && parent != nil {
		parentClass = attrValue(parent, "class")
	}
	return pagerDisabled(attrValue(el, "class"), parentClass, attrValue(el, "aria-disabled"), hasAttr(el, "disabled"))
}

// pagerDisabled decides whether a pagination control is disabled from its
// class tokens, its parent's class tokens, and the disabled attributes.
// Visibility alone is not trusted: DataTables keeps disabled pagers visible.
func pagerDisabled(class, parentClass, ariaDisabled string, disabledAttr bool) bool {
	return hasClassToken(class, "disabled") ||
		hasClassToken(parentClass, "disabled") ||
		ariaDisabled == "true" ||
		disabledAttr
}

func hasClassToken(class, token string) bool {
	for _, field := range strings.Fields(class) {
		if field == token {
			return true
		}
	}
	return false
}

func attrValue(el *rod.Element, name string) string {
	val, err := el.Attribute(name)
	if err != nil || val == nil {
		return ""
	}
	return *val
}

func hasAttr(el *rod.Element, name string) bool {
	val, err := el.Attribute(name)
	return err == nil && val != nil
}
