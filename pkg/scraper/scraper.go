package scraper

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/nichsedge/lhkpn/pkg/models"
)

const (
	baseURL       = "https://elhkpn.kpk.go.id"
	searchPageURL = baseURL + "/portal/user/login#announ"
)

const popupCleanupJS = `() => {
	const closeButtons = document.querySelectorAll('.remodal-close');
	closeButtons.forEach(btn => btn.click());

	const wrappers = document.querySelectorAll('.remodal-wrapper.remodal-is-opened');
	wrappers.forEach(w => w.style.display = 'none');

	const backdrop = document.querySelector('.remodal-overlay');
	if (backdrop) backdrop.remove();

	document.body.classList.remove('remodal-is-active');

	const bootstrapModals = document.querySelectorAll('.modal.in, .modal.show');
	bootstrapModals.forEach(m => {
		const close = m.querySelector('button.close, .btn-close');
		if (close) close.click();
		else m.style.display = 'none';
	});
}`

const announcementHashJS = `() => { window.location.hash = '#announ' }`

// LHKPNScraper drives the KPK announcement portal through one Chromium page.
type LHKPNScraper struct {
	browser *rod.Browser
	page    *rod.Page
	baseURL string
}

// NewLHKPNScraper launches Chromium and prepares a stealth page. Visible mode
// slows interactions down so a run can be followed on screen.
func NewLHKPNScraper(headless bool) (*LHKPNScraper, error) {
	l := launcher.New().
		Headless(headless).
		Devtools(false)

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("error launching browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if !headless {
		browser = browser.SlowMotion(300 * time.Millisecond)
	}
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("error connecting to browser: %w", err)
	}

	page, err := stealth.Page(browser)
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("error preparing stealth page: %w", err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             1280,
		Height:            800,
		DeviceScaleFactor: 1,
	}); err != nil {
		browser.Close()
		return nil, fmt.Errorf("error setting viewport: %w", err)
	}

	return &LHKPNScraper{
		browser: browser,
		page:    page,
		baseURL: searchPageURL,
	}, nil
}

// Close releases the page and the browser. Safe to call more than once.
func (s *LHKPNScraper) Close() {
	if s.page != nil {
		s.page.Close()
		s.page = nil
	}
	if s.browser != nil {
		s.browser.Close()
		s.browser = nil
	}
}

// Run performs one complete session: search, walk the result pages, release
// the browser. maxResults <= 0 removes the cap.
func (s *LHKPNScraper) Run(query string, maxResults int) ([]models.Pengumuman, error) {
	defer s.Close()

	found, err := s.Search(query)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.Pengumuman{}, nil
	}

	return s.CollectAnnouncements(maxResults)
}

// Search opens the portal, works past the welcome popups, and submits a name
// query. It returns false when the portal answers with its no-data message.
// Every fatal failure leaves a diagnostic screenshot behind.
func (s *LHKPNScraper) Search(name string) (bool, error) {
	found, err := s.search(name)
	if err != nil {
		s.saveScreenshot("search_failure.png")
	}
	return found, err
}

func (s *LHKPNScraper) search(name string) (bool, error) {
	log.Printf("🔍 Searching for %q...", name)

	if err := s.navigate(); err != nil {
		return false, err
	}

	s.dismissPopups()
	s.openAnnouncementTab()

	searchInput, err := s.findSearchInput()
	if err != nil {
		return false, err
	}
	if err := s.fillSearchInput(searchInput, name); err != nil {
		return false, err
	}

	submit, err := s.page.Timeout(10 * time.Second).Element(searchSubmitSelector)
	if err != nil {
		return false, fmt.Errorf("%w: submit button %q: %v", ErrControlNotFound, searchSubmitSelector, err)
	}
	if err := submit.ScrollIntoView(); err != nil {
		log.Printf("⚠️ Could not scroll to submit button: %v", err)
	}
	if err := submit.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return false, fmt.Errorf("%w: submitting search: %v", ErrControlNotFound, err)
	}

	log.Println("🔍 Waiting for search results...")
	if _, err := s.page.Timeout(30 * time.Second).Element(resultRowSelector); err != nil {
		if s.hasNoResultMessage() {
			log.Println("⚠️ Search returned no results.")
			return false, nil
		}
		return false, fmt.Errorf("%w: results table never appeared: %v", ErrNavigation, err)
	}

	log.Println("✅ Search results loaded.")
	time.Sleep(2 * time.Second)
	return true, nil
}

// navigate loads the search page with a full load wait, then retries once
// settling for DOM stability when the portal's slow assets stall the load
// event.
func (s *LHKPNScraper) navigate() error {
	if err := s.tryNavigate(true); err != nil {
		log.Printf("⚠️ Initial navigation failed: %v. Retrying with relaxed wait...", err)
		if err := s.tryNavigate(false); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrNavigation, s.baseURL, err)
		}
	}
	return nil
}

func (s *LHKPNScraper) tryNavigate(strict bool) error {
	page := s.page.Timeout(60 * time.Second)
	if err := page.Navigate(s.baseURL); err != nil {
		return err
	}
	if strict {
		return page.WaitLoad()
	}
	return page.WaitDOMStable(time.Second, 0)
}

// dismissPopups clears the welcome modals the portal stacks on first load.
// It never fails the session; a surviving overlay surfaces later as a
// missing control.
func (s *LHKPNScraper) dismissPopups() {
	log.Println("🔍 Handling initial popups...")
	for i := 0; i < 5; i++ {
		if _, err := s.page.Eval(popupCleanupJS); err != nil {
			log.Printf("⚠️ Popup cleanup failed: %v", err)
			return
		}
		time.Sleep(time.Second)

		active, _, err := s.page.Has(activeOverlaySelector)
		if err != nil || !active {
			return
		}
	}
}

// openAnnouncementTab brings the announcement search into view. The tab is a
// same-page anchor, so setting the location hash is an equivalent fallback.
func (s *LHKPNScraper) openAnnouncementTab() {
	tab, err := s.page.Timeout(10 * time.Second).Element(announcementTabSelector)
	if err == nil {
		if err = tab.ScrollIntoView(); err == nil {
			err = tab.Click(proto.InputMouseButtonLeft, 1)
		}
	}
	if err != nil {
		log.Printf("⚠️ Could not click announcement tab: %v", err)
		if _, err := s.page.Eval(announcementHashJS); err != nil {
			log.Printf("⚠️ Hash fallback failed: %v", err)
		}
		time.Sleep(time.Second)
		return
	}
	time.Sleep(2 * time.Second)
}

func (s *LHKPNScraper) findSearchInput() (*rod.Element, error) {
	searchInput, err := s.page.Timeout(20 * time.Second).Element(searchInputSelector)
	if err != nil {
		log.Println("⚠️ Search input not found, refreshing hash and retrying...")
		if _, evalErr := s.page.Eval(announcementHashJS); evalErr != nil {
			log.Printf("⚠️ Hash refresh failed: %v", evalErr)
		}
		searchInput, err = s.page.Timeout(20 * time.Second).Element(searchInputSelector)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: search input %q: %v", ErrControlNotFound, searchInputSelector, err)
	}
	return searchInput, nil
}

func (s *LHKPNScraper) fillSearchInput(el *rod.Element, name string) error {
	if err := el.ScrollIntoView(); err != nil {
		return fmt.Errorf("%w: search input out of reach: %v", ErrControlNotFound, err)
	}
	// Replace whatever a previous query left behind
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("%w: clearing search input: %v", ErrControlNotFound, err)
	}
	if err := el.Input(name); err != nil {
		return fmt.Errorf("%w: typing query: %v", ErrControlNotFound, err)
	}
	return nil
}

func (s *LHKPNScraper) hasNoResultMessage() bool {
	el, err := s.page.Timeout(2 * time.Second).ElementR("td, div, span, p, h3, h4", noResultText)
	if err != nil {
		return false
	}
	visible, err := el.Visible()
	return err == nil && visible
}

func (s *LHKPNScraper) saveScreenshot(path string) {
	bin, err := s.page.Screenshot(true, nil)
	if err != nil {
		log.Printf("⚠️ Could not capture screenshot: %v", err)
		return
	}
	if err := os.WriteFile(path, bin, 0644); err != nil {
		log.Printf("⚠️ Could not save screenshot to %s: %v", path, err)
		return
	}
	log.Printf("📋 Saved diagnostic screenshot to %s", path)
}
