package scraper

import "errors"

// The first two errors are fatal and abort the run. The other two stay local:
// the walker logs them and keeps whatever data it already has.
var (
	// ErrNavigation means the portal could not be reached or never produced a
	// usable results state.
	ErrNavigation = errors.New("navigation failed")

	// ErrControlNotFound means a control the search flow depends on is gone,
	// which usually signals a portal redesign.
	ErrControlNotFound = errors.New("required control not found")

	// ErrPanel marks a detail modal failure; the record keeps its basic fields.
	ErrPanel = errors.New("detail panel failed")

	// ErrRowExtraction marks a single result row that could not be read.
	ErrRowExtraction = errors.New("row extraction failed")
)
