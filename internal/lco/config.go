package lco

import (
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL    = "https://observe.lco.global/api"
	DefaultArchiveURL = "https://archive-api.lco.global"
	DefaultTimeout    = 10 * time.Second
)

// Config is the immutable client configuration shared by every component
// that talks to the telescope-network API.
type Config struct {
	BaseURL    string
	ArchiveURL string

	// Token is optional; an empty token means public-only access.
	Token   string
	Timeout time.Duration
}

// DefaultConfig returns the public endpoints with the default timeout.
func DefaultConfig() Config {
	return Config{
		BaseURL:    DefaultBaseURL,
		ArchiveURL: DefaultArchiveURL,
		Timeout:    DefaultTimeout,
	}
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

func (c Config) base() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(c.BaseURL, "/")
}

func (c Config) archive() string {
	if c.ArchiveURL == "" {
		return DefaultArchiveURL
	}
	return strings.TrimRight(c.ArchiveURL, "/")
}

func (c Config) SitesURL() string   { return c.base() + "/sites/" }
func (c Config) SiteURL() string    { return c.base() + "/site/" }
func (c Config) ProfileURL() string { return c.base() + "/profile/" }
func (c Config) FramesURL() string  { return c.archive() + "/frames/" }

// InstrumentsURL returns the instruments endpoint, filtered server-side by
// site when siteCode is non-empty.
func (c Config) InstrumentsURL(siteCode string) string {
	u := c.base() + "/instruments/"
	if siteCode != "" {
		u += "?site=" + url.QueryEscape(siteCode)
	}
	return u
}

// ProbeURLs lists the candidate endpoints tried, in order, when checking
// connectivity.
func (c Config) ProbeURLs() []string {
	return []string{
		c.SitesURL(),
		c.SiteURL(),
		c.ProfileURL(),
		c.FramesURL(),
	}
}
