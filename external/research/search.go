package research

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	researchpkg "github.com/foxseedlab/ronpakun/internal/research"
)

const (
	searchTimeout     = 15 * time.Second
	searchResultCount = 5
)

// BraveSearcher queries a Brave-compatible web search API.
type BraveSearcher struct {
	apiURL string
	apiKey string
	client *http.Client
}

func NewBraveSearcher(apiURL, apiKey string) researchpkg.Searcher {
	return &BraveSearcher{
		apiURL: apiURL,
		apiKey: apiKey,
		client: &http.Client{Timeout: searchTimeout},
	}
}

type braveSearchResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

func (s *BraveSearcher) Search(ctx context.Context, query string) ([]researchpkg.SearchHit, error) {
	if s.apiURL == "" {
		return nil, fmt.Errorf("search backend is not configured")
	}

	reqURL := fmt.Sprintf("%s?q=%s&count=%d", s.apiURL, url.QueryEscape(query), searchResultCount)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("X-Subscription-Token", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var parsed braveSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	hits := make([]researchpkg.SearchHit, 0, len(parsed.Web.Results))
	for _, r := range parsed.Web.Results {
		if r.URL == "" {
			continue
		}
		hits = append(hits, researchpkg.SearchHit{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Description,
		})
	}
	return hits, nil
}
