package scraper

import (
	"fmt"
	"log"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"

	"github.com/nichsedge/lhkpn/pkg/models"
)

// collectDetail opens the comparison modal behind one result row, parses the
// asset breakdown, and merges it into rec. The modal is dismissed whatever
// happened in between, so the next row starts from a clean page.
func (s *LHKPNScraper) collectDetail(row *rod.Element, rec *models.Pengumuman) error {
	btn, err := row.Timeout(2 * time.Second).Element(detailButtonSelector)
	if err != nil {
		return fmt.Errorf("%w: no clickable detail control: %v", ErrPanel, err)
	}
	visible, err := btn.Visible()
	if err != nil || !visible {
		return fmt.Errorf("%w: detail control not visible", ErrPanel)
	}

	log.Printf("🔍 Opening details for %s (%s)...", rec.Nama, rec.TanggalLapor)
	if err := btn.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("%w: clicking detail control: %v", ErrPanel, err)
	}
	defer s.closeDetail()

	panelHTML, err := s.readDetailPanel()
	if err != nil {
		return err
	}

	buckets, err := ParseDetail(panelHTML)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPanel, err)
	}
	for key, items := range buckets {
		rec.SetHarta(key, items)
	}
	return nil
}

// readDetailPanel waits for the modal's inner table and returns the modal
// HTML. The extra pause lets the async row population finish before the
// snapshot.
func (s *LHKPNScraper) readDetailPanel() (string, error) {
	if _, err := s.page.Timeout(15 * time.Second).Element(modalSelector + " table"); err != nil {
		return "", fmt.Errorf("%w: detail table never appeared: %v", ErrPanel, err)
	}
	time.Sleep(1500 * time.Millisecond)

	modal, err := s.page.Timeout(5 * time.Second).Element(modalSelector)
	if err != nil {
		return "", fmt.Errorf("%w: modal vanished: %v", ErrPanel, err)
	}
	html, err := modal.HTML()
	if err != nil {
		return "", fmt.Errorf("%w: reading modal: %v", ErrPanel, err)
	}
	return html, nil
}

// closeDetail dismisses the modal: close button first, Escape as fallback.
// Best effort only; if the overlay survives, the next row's click fails
// loudly instead.
func (s *LHKPNScraper) closeDetail() {
	if ok, btn, err := s.page.Has(modalCloseSelector); err == nil && ok {
		if visible, err := btn.Visible(); err == nil && visible {
			if err := btn.Timeout(5*time.Second).Click(proto.InputMouseButtonLeft, 1); err == nil {
				modal, err := s.page.Timeout(5 * time.Second).Element(modalSelector)
				if err != nil {
					return // already gone from the DOM
				}
				if err := modal.WaitInvisible(); err == nil {
					return
				}
			}
		}
	}

	if err := s.page.Keyboard.Type(input.Escape); err != nil {
		log.Printf("⚠️ Escape fallback failed: %v", err)
	}
	time.Sleep(time.Second)
}
