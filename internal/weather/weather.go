// Package weather fetches and caches current weather conditions for the HUD
// info panel.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultBaseURL is the OpenWeatherMap current-weather endpoint.
const DefaultBaseURL = "http://api.openweathermap.org/data/2.5/weather"

// FetchTimeout bounds a single weather request.
const FetchTimeout = 5 * time.Second

// State describes the lifecycle of a Snapshot.
type State string

const (
	// StateLoading means no fetch has completed yet.
	StateLoading State = "loading"
	// StateReady means the snapshot holds a successful reading.
	StateReady State = "ready"
	// StateError means the last fetch failed; Err holds the display string.
	StateError State = "error"
)

// Snapshot is the latest whole weather reading, or an error marker. It is
// always replaced wholesale, never partially updated. The zero value is the
// "not yet available" snapshot.
type Snapshot struct {
	State       State     `json:"state"`
	TempC       float64   `json:"temp"`
	Humidity    float64   `json:"humidity"`
	WindSpeed   float64   `json:"wind_speed"`
	Description string    `json:"description"`
	Condition   string    `json:"condition"`
	Err         string    `json:"error,omitempty"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// errorSnapshot builds an error-marker snapshot with the given display string.
func errorSnapshot(msg string, at time.Time) Snapshot {
	return Snapshot{
		State:     StateError,
		Err:       msg,
		FetchedAt: at,
	}
}

// Client fetches current weather for a city from OpenWeatherMap.
type Client struct {
	// BaseURL defaults to DefaultBaseURL; tests point it at a local server.
	BaseURL string

	APIKey string
	City   string
	Units  string

	httpClient *http.Client
}

// NewClient creates a weather client for the given city and unit system.
func NewClient(apiKey, city, units string) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		APIKey:     apiKey,
		City:       city,
		Units:      units,
		httpClient: &http.Client{Timeout: FetchTimeout},
	}
}

// owmResponse mirrors the fields consumed from the OpenWeatherMap JSON body.
type owmResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

var titleCaser = cases.Title(language.English)

// Fetch retrieves the current weather reading. Any transport, HTTP status, or
// decoding problem is returned as an error; the caller decides how to record
// it.
func (c *Client) Fetch(ctx context.Context) (Snapshot, error) {
	q := url.Values{}
	q.Set("q", c.City)
	q.Set("appid", c.APIKey)
	q.Set("units", c.Units)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetch weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Snapshot{}, fmt.Errorf("weather API status %d", resp.StatusCode)
	}

	var body owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Snapshot{}, fmt.Errorf("decode weather response: %w", err)
	}
	if len(body.Weather) == 0 {
		return Snapshot{}, fmt.Errorf("weather response has no conditions")
	}

	return Snapshot{
		State:       StateReady,
		TempC:       body.Main.Temp,
		Humidity:    body.Main.Humidity,
		WindSpeed:   body.Wind.Speed,
		Description: titleCaser.String(body.Weather[0].Description),
		Condition:   body.Weather[0].Main,
		FetchedAt:   time.Now(),
	}, nil
}
