package data

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"autoswing/market"
)

// AlpacaDataURL is the default Alpaca market-data host.
const AlpacaDataURL = "https://data.alpaca.markets"

// AlpacaSource fetches daily stock bars from the Alpaca data API.
type AlpacaSource struct {
	baseURL    string
	keyID      string
	secretKey  string
	httpClient *http.Client
}

// NewAlpacaSource builds a source for the given credentials. baseURL may be
// empty for the production host.
func NewAlpacaSource(keyID, secretKey, baseURL string) *AlpacaSource {
	if baseURL == "" {
		baseURL = AlpacaDataURL
	}
	return &AlpacaSource{
		baseURL:   baseURL,
		keyID:     keyID,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *AlpacaSource) Name() string { return "alpaca" }

// alpacaBar mirrors one bar object in the /v2/stocks/{symbol}/bars payload.
type alpacaBar struct {
	T time.Time `json:"t"`
	O float64   `json:"o"`
	H float64   `json:"h"`
	L float64   `json:"l"`
	C float64   `json:"c"`
	V float64   `json:"v"`
}

type alpacaBarsResponse struct {
	Bars          []alpacaBar `json:"bars"`
	Symbol        string      `json:"symbol"`
	NextPageToken string      `json:"next_page_token"`
}

// FetchDaily pulls up to a lookback span of daily bars, following pagination
// until the API is exhausted.
func (s *AlpacaSource) FetchDaily(ctx context.Context, symbol, lookback string) (market.Series, error) {
	days, err := lookbackDays(lookback)
	if err != nil {
		return nil, err
	}
	start := time.Now().UTC().AddDate(0, 0, -days)

	var series market.Series
	pageToken := ""
	for {
		page, next, err := s.fetchPage(ctx, symbol, start, pageToken)
		if err != nil {
			return nil, err
		}
		series = append(series, page...)
		if next == "" {
			break
		}
		pageToken = next
	}

	series.Sort()
	return series, nil
}

func (s *AlpacaSource) fetchPage(ctx context.Context, symbol string, start time.Time, pageToken string) (market.Series, string, error) {
	q := url.Values{}
	q.Set("timeframe", "1Day")
	q.Set("start", start.Format(time.RFC3339))
	q.Set("limit", strconv.Itoa(10000))
	q.Set("adjustment", "split")
	if pageToken != "" {
		q.Set("page_token", pageToken)
	}

	endpoint := fmt.Sprintf("%s/v2/stocks/%s/bars?%s", s.baseURL, url.PathEscape(symbol), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("APCA-API-KEY-ID", s.keyID)
	req.Header.Set("APCA-API-SECRET-KEY", s.secretKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("alpaca request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, "", fmt.Errorf("alpaca bars %s: status %d: %s", symbol, resp.StatusCode, body)
	}

	var parsed alpacaBarsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, "", fmt.Errorf("decode alpaca bars: %w", err)
	}

	series := make(market.Series, 0, len(parsed.Bars))
	for _, b := range parsed.Bars {
		series = append(series, market.Bar{
			Date:   market.Day(b.T),
			Open:   b.O,
			High:   b.H,
			Low:    b.L,
			Close:  b.C,
			Volume: b.V,
		})
	}
	return series, parsed.NextPageToken, nil
}
