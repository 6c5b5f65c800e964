package scraper

import (
	"strings"

	"github.com/go-rod/rod"
)

// Portal selectors live together here because the markup drifts and this is
// the one file to touch when it does. Every lookup site tries its selectors
// in the order listed.
const (
	announcementTabSelector = "a.page-scroll[href='#announ'], a.anchor-eannoun"
	searchInputSelector     = "#CARI_NAMA, input[name='CARI_NAMA']"
	searchSubmitSelector    = "button[type='submit'].btn-success"
	resultRowSelector       = "#table-pengumuman tbody tr, table.table-striped tbody tr"
	noResultText            = "Data Tidak Ditemukan"

	detailAffordanceSelector = ".perbandingan-announcement, i.fa-history, i.fa-file-text-o"
	detailButtonSelector     = "a.perbandingan-announcement, a[data-toggle='modal'][data-target='#modal-perbandingan-announcement-lhkpn']"
	modalSelector            = "#modal-perbandingan-announcement-lhkpn"
	modalCloseSelector       = modalSelector + " .remodal-close, " + modalSelector + " .btn-danger, button[data-dismiss='modal']"

	activeOverlaySelector = ".remodal-is-opened, .modal.in, .modal.show"
)

// nextControlSelectors cover DataTables pagers and plain next links. The
// text-matched entries need XPath since CSS cannot match on label text.
var nextControlSelectors = []string{
	"#table-pengumuman_next",
	"li.next a",
	".paginate_button.next a",
	"//a[contains(normalize-space(.), 'Next')]",
	"//a[contains(., '>>')]",
}

// findFirstPresent returns the first selector that matches right now,
// without waiting. Selectors starting with // are evaluated as XPath.
func (s *LHKPNScraper) findFirstPresent(selectors ...string) (*rod.Element, bool) {
	for _, selector := range selectors {
		var (
			ok   bool
			elem *rod.Element
			err  error
		)
		if strings.HasPrefix(selector, "//") {
			ok, elem, err = s.page.HasX(selector)
		} else {
			ok, elem, err = s.page.Has(selector)
		}
		if err == nil && ok {
			return elem, true
		}
	}
	return nil, false
}
