package cvparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractLinksClassification(t *testing.T) {
	text := `
Sangeeth Perera
github.com/sangeeth
https://www.linkedin.com/in/sangeeth-perera
https://sangeeth.dev
`
	links := extractLinks(text)
	assert.Equal(t, "https://github.com/sangeeth", links.GitHubURL)
	assert.Equal(t, "https://www.linkedin.com/in/sangeeth-perera", links.LinkedInURL)
	assert.Equal(t, "https://sangeeth.dev", links.PortfolioURL)
}

func TestExtractLinksFirstMatchPerCategory(t *testing.T) {
	text := "github.com/first github.com/second"
	links := extractLinks(text)
	assert.Equal(t, "https://github.com/first", links.GitHubURL)
}

func TestExtractLinksIgnoresBareEmails(t *testing.T) {
	links := extractLinks("john.perera@gmail.com")
	assert.Equal(t, LinkSet{}, links)
}

func TestExtractLinksPortfolioPlatforms(t *testing.T) {
	links := extractLinks("see behance.net/sangeeth for my design work")
	assert.Equal(t, "https://behance.net/sangeeth", links.PortfolioURL)
}

func TestExtractLinksNone(t *testing.T) {
	assert.Equal(t, LinkSet{}, extractLinks("no links in this text"))
}

func TestIsPortfolioHost(t *testing.T) {
	assert.True(t, isPortfolioHost("behance.net"))
	assert.True(t, isPortfolioHost("sangeeth.github.io"))
	assert.True(t, isPortfolioHost("sangeeth.dev"))
	assert.False(t, isPortfolioHost("example.com"))
}
