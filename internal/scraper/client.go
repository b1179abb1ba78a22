package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"currency-data-sync/internal/common"
	"currency-data-sync/internal/models"
)

// maxPageBytes bounds how much of a page is read into memory
const maxPageBytes = 8 << 20

// StatusError is a non-success HTTP status from the info site
type StatusError struct {
	Code       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("info page for %s returned HTTP %d", e.Code, e.StatusCode)
}

// PageClient downloads currency info pages
type PageClient struct {
	httpClient *http.Client
	baseUrl    string
	userAgent  string
}

func NewPageClient(cfg models.ScraperConfig) (*PageClient, error) {
	httpClient, err := common.NewHttpClient(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("unable to create custom http client: %w", err)
	}
	return NewPageClientWithHttp(cfg, httpClient), nil
}

func NewPageClientWithHttp(cfg models.ScraperConfig, httpClient *http.Client) *PageClient {
	return &PageClient{
		httpClient: httpClient,
		baseUrl:    cfg.BaseUrl,
		userAgent:  cfg.UserAgent,
	}
}

// FetchPage returns the raw HTML of the info page for code
func (c *PageClient) FetchPage(ctx context.Context, code string) (string, error) {
	code = strings.ToUpper(code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseUrl+"/"+code, nil)
	if err != nil {
		return "", fmt.Errorf("unable to build request: %w", err)
	}
	// the site renders differently for non-browser clients
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{Code: code, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("unable to read page: %w", err)
	}
	return string(body), nil
}
