package barcode

import (
	"sync"
	"time"
)

// DefaultDetectWindow is the quiet period after the last keystroke
// before buffered input is treated as a complete barcode. Hardware
// scanners type far faster than this, so a full scan always lands
// inside a single window.
const DefaultDetectWindow = 400 * time.Millisecond

// minBarcodeLen is the shortest input considered a candidate barcode.
const minBarcodeLen = 8

// AutoDetector buffers typed search input and fires a callback once the
// input has been quiet for the configured window and looks like a
// barcode. Every keystroke restarts the window, so a fast scanner burst
// produces exactly one callback.
type AutoDetector struct {
	mu      sync.Mutex
	window  time.Duration
	buffer  string
	timer   *time.Timer
	onScan  func(code string)
	stopped bool
}

// NewAutoDetector creates an AutoDetector that invokes onScan with the
// buffered input when it settles. A non-positive window falls back to
// DefaultDetectWindow.
func NewAutoDetector(window time.Duration, onScan func(code string)) *AutoDetector {
	if window <= 0 {
		window = DefaultDetectWindow
	}
	return &AutoDetector{
		window: window,
		onScan: onScan,
	}
}

// Input replaces the buffered text with the current search box contents
// and restarts the quiet-window timer. Input that cannot be a barcode
// (too short, non-alphanumeric) clears any pending detection instead.
func (a *AutoDetector) Input(text string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return
	}

	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}

	a.buffer = text
	if !looksLikeBarcode(text) {
		return
	}

	a.timer = time.AfterFunc(a.window, a.fire)
}

// Flush cancels any pending detection and returns the buffered text,
// used when the operator presses Enter before the window elapses.
func (a *AutoDetector) Flush() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	text := a.buffer
	a.buffer = ""
	return text
}

// Stop disables the detector and cancels any pending callback.
func (a *AutoDetector) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopped = true
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

func (a *AutoDetector) fire() {
	a.mu.Lock()
	code := a.buffer
	a.buffer = ""
	a.timer = nil
	stopped := a.stopped
	a.mu.Unlock()

	if stopped || !looksLikeBarcode(code) {
		return
	}
	a.onScan(code)
}

// looksLikeBarcode reports whether text could plausibly have come from
// a scanner: at least minBarcodeLen alphanumeric characters.
func looksLikeBarcode(text string) bool {
	if len(text) < minBarcodeLen {
		return false
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		default:
			return false
		}
	}
	return true
}
