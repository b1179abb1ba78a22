package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"currency-data-sync/internal/models"
)

func TestFetchPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/EUR" {
			t.Errorf("Expected path /EUR, got %s", r.URL.Path)
		}
		if ua := r.Header.Get("User-Agent"); ua != "test-browser/1.0" {
			t.Errorf("Expected browser user agent, got %q", ua)
		}
		w.Write([]byte("<html>euro</html>"))
	}))
	defer srv.Close()

	client := NewPageClientWithHttp(models.ScraperConfig{BaseUrl: srv.URL, UserAgent: "test-browser/1.0"}, srv.Client())

	body, err := client.FetchPage(context.Background(), "eur")
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	if body != "<html>euro</html>" {
		t.Errorf("Unexpected body %q", body)
	}
}

func TestFetchPageStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewPageClientWithHttp(models.ScraperConfig{BaseUrl: srv.URL}, srv.Client())

	_, err := client.FetchPage(context.Background(), "XYZ")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusForbidden || statusErr.Code != "XYZ" {
		t.Errorf("Unexpected status error %+v", statusErr)
	}
}
