/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"currency-data-sync/internal/common"
	"currency-data-sync/internal/models"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// ErrNoRates is returned when a successful response carries no rate table
var ErrNoRates = errors.New("response has no conversion rates")

// Client fetches USD-based daily rate tables from the history endpoint
type Client struct {
	httpClient *http.Client
	baseUrl    string
	apiKey     string
}

func NewClient(cfg models.ProviderConfig) (*Client, error) {
	httpClient, err := common.NewHttpClient(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("unable to create custom http client: %w", err)
	}
	return NewClientWithHttp(cfg, httpClient), nil
}

// NewClientWithHttp builds a client on a caller-supplied http.Client
func NewClientWithHttp(cfg models.ProviderConfig, httpClient *http.Client) *Client {
	return &Client{
		httpClient: httpClient,
		baseUrl:    cfg.BaseUrl,
		apiKey:     cfg.ApiKey,
	}
}

// GetHistory fetches the full rate table for one day.
// Provider-reported failures come back as *ProviderError.
func (c *Client) GetHistory(ctx context.Context, day time.Time) (map[string]decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s/history/USD/%d/%d/%d", c.baseUrl, c.apiKey, day.Year(), int(day.Month()), day.Day())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read response: %w", err)
	}

	var payload models.HistoryResponse
	decodeErr := json.Unmarshal(body, &payload)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reason := ""
		if decodeErr == nil {
			reason = payload.Reason()
		}
		return nil, &ProviderError{StatusCode: resp.StatusCode, Reason: reason}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("unable to decode response: %w", decodeErr)
	}
	if payload.Result != "success" {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Reason: payload.Reason()}
	}
	if len(payload.ConversionRates) == 0 {
		return nil, ErrNoRates
	}

	return payload.ConversionRates, nil
}
