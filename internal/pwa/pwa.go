// Package pwa detects the visitor's platform and browser and serves the
// matching install instructions.
package pwa

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformDesktop Platform = "desktop"
	PlatformUnknown Platform = "unknown"
)

// Client is what Detect learns from a User-Agent.
type Client struct {
	Platform Platform `json:"platform"`
	Browser  string   `json:"browser"`
}

var (
	iosRe     = regexp.MustCompile(`iphone|ipad|ipod`)
	androidRe = regexp.MustCompile(`android`)
	desktopRe = regexp.MustCompile(`win|mac|linux`)
)

// Detect classifies a User-Agent. Browser checks run in a fixed order, so
// Edge (whose UA also says chrome) reports as Chrome.
func Detect(userAgent string) Client {
	ua := strings.ToLower(userAgent)

	var browser string
	switch {
	case strings.Contains(ua, "chrome"):
		browser = "Chrome"
	case strings.Contains(ua, "safari"):
		browser = "Safari"
	case strings.Contains(ua, "firefox"):
		browser = "Firefox"
	case strings.Contains(ua, "edg"):
		browser = "Edge"
	default:
		browser = "Outro"
	}

	platform := PlatformUnknown
	switch {
	case iosRe.MatchString(ua):
		platform = PlatformIOS
	case androidRe.MatchString(ua):
		platform = PlatformAndroid
	case desktopRe.MatchString(ua):
		platform = PlatformDesktop
	}
	return Client{Platform: platform, Browser: browser}
}

// Instructions are the manual install steps for one platform tab.
type Instructions struct {
	Label   string   `yaml:"label" json:"label"`
	Note    string   `yaml:"note" json:"note"`
	Warning bool     `yaml:"warning" json:"warning"`
	Steps   []string `yaml:"steps" json:"steps"`
}

//go:embed install.yaml
var installYAML []byte

var (
	loadOnce sync.Once
	guides   map[Platform]Instructions
	loadErr  error
)

// Guides returns the instructions for every platform.
func Guides() (map[Platform]Instructions, error) {
	loadOnce.Do(func() {
		loadErr = yaml.Unmarshal(installYAML, &guides)
		if loadErr != nil {
			loadErr = fmt.Errorf("parse install instructions: %w", loadErr)
		}
	})
	return guides, loadErr
}

// DefaultTab picks the tab shown first: ios and android map to themselves,
// everything else to desktop.
func DefaultTab(p Platform) Platform {
	if p == PlatformIOS || p == PlatformAndroid {
		return p
	}
	return PlatformDesktop
}
