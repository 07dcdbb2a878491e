package search

import (
	"errors"

	"github.com/dealdesk/dealdesk/pkg/config"
	"github.com/dealdesk/dealdesk/pkg/research"
)

// FromConfig picks a search client from the configured API keys, preferring
// Tavily when both are present.
func FromConfig(cfg *config.Config) (research.SearchClient, error) {
	switch {
	case cfg.TavilyAPIKey != "":
		return NewTavily(cfg.TavilyAPIKey), nil
	case cfg.BraveAPIKey != "":
		return NewBrave(cfg.BraveAPIKey), nil
	default:
		return nil, errors.New("no search provider configured: set TAVILY_API_KEY or BRAVE_API_KEY")
	}
}
