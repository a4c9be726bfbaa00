package cvparser

import (
	"net/url"
	"strings"

	"mvdan.cc/xurls/v2"
)

// urlRe recognizes URL-like substrings with or without a scheme.
var urlRe = xurls.Relaxed()

// extractLinks scans the whole text for URLs and classifies them by
// domain. Each category keeps only its first match; scheme-less URLs get a
// default https scheme.
func extractLinks(text string) LinkSet {
	var links LinkSet
	for _, raw := range urlRe.FindAllString(text, -1) {
		if strings.Contains(raw, "@") && !strings.Contains(raw, "/") {
			continue // bare e-mail address, not a link
		}
		normalized := raw
		if !strings.Contains(normalized, "://") {
			normalized = "https://" + normalized
		}
		u, err := url.Parse(normalized)
		if err != nil || u.Host == "" {
			continue
		}
		host := strings.ToLower(strings.TrimPrefix(u.Host, "www."))

		switch {
		case hostMatches(host, "github.com"):
			if links.GitHubURL == "" {
				links.GitHubURL = normalized
			}
		case hostMatches(host, "linkedin.com"):
			if links.LinkedInURL == "" {
				links.LinkedInURL = normalized
			}
		case isPortfolioHost(host):
			if links.PortfolioURL == "" {
				links.PortfolioURL = normalized
			}
		}
	}
	return links
}

func hostMatches(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// isPortfolioHost accepts the named portfolio platforms plus short
// personal domains on generic TLDs.
func isPortfolioHost(host string) bool {
	for _, h := range portfolioHosts {
		if hostMatches(host, h) {
			return true
		}
	}
	return personalSiteRe.MatchString(host)
}
