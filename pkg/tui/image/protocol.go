// ABOUTME: Sixel capability detection from terminal environment variables
// ABOUTME: Recognizes foot, mlterm, WezTerm, Konsole, iTerm2, Contour and *-sixel TERM values; cached via sync.Once

package image

import (
	"os"
	"strings"
	"sync"
)

// Capability describes what the environment says about sixel support.
type Capability struct {
	Sixel    bool
	Terminal string // Which hint matched; empty when none did
}

var (
	detectOnce sync.Once
	cachedCap  Capability
)

// Detect probes environment variables and returns the terminal's sixel
// capability. The result is cached after the first call. A negative answer
// only means no known hint matched; the terminal may still support sixel.
func Detect() Capability {
	detectOnce.Do(func() {
		cachedCap = detect(os.Getenv)
	})
	return cachedCap
}

// resetDetectCache clears the cached result so the next Detect call re-probes.
// Used only in tests.
func resetDetectCache() {
	detectOnce = sync.Once{}
	cachedCap = Capability{}
}

func detect(getenv func(string) string) Capability {
	termName := strings.ToLower(getenv("TERM"))
	program := strings.ToLower(getenv("TERM_PROGRAM"))

	switch {
	case strings.Contains(termName, "sixel"):
		return Capability{Sixel: true, Terminal: termName}
	case strings.HasPrefix(termName, "foot"):
		return Capability{Sixel: true, Terminal: "foot"}
	case strings.HasPrefix(termName, "mlterm"):
		return Capability{Sixel: true, Terminal: "mlterm"}
	case strings.HasPrefix(termName, "contour") || program == "contour":
		return Capability{Sixel: true, Terminal: "contour"}
	case getenv("WEZTERM_PANE") != "" || program == "wezterm":
		return Capability{Sixel: true, Terminal: "wezterm"}
	case getenv("KONSOLE_VERSION") != "":
		return Capability{Sixel: true, Terminal: "konsole"}
	case getenv("ITERM_SESSION_ID") != "" || program == "iterm.app":
		return Capability{Sixel: true, Terminal: "iterm2"}
	}
	return Capability{}
}
