package geocoder

//go:generate go run go.uber.org/mock/mockgen -source=./geocoder.go -destination=./mocks/geocoder_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"cadence/config"
	"cadence/infras/otel"
	"cadence/shared/constant"
)

const (
	defaultTimeoutSeconds = 5
)

var (
	ErrNoResult = errors.New("no geocoding result for address")
)

// Result is a resolved location. PostalCode, City and Address are best-effort
// normalizations and may be empty.
type Result struct {
	Latitude   float64
	Longitude  float64
	PostalCode string
	City       string
	Address    string
}

// Geocoder resolves a free-text address to coordinates. Implementations are
// expected to be slow and flaky; callers must treat failures as non-fatal.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Result, error)
}

type nominatimResponse struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		Postcode string `json:"postcode"`
		City     string `json:"city"`
		Town     string `json:"town"`
		Village  string `json:"village"`
	} `json:"address"`
}

type geocoderImpl struct {
	cfg    *config.Config
	client *http.Client
	otel   otel.Otel
}

// New builds a Geocoder against a Nominatim-compatible search endpoint.
// Every lookup is bounded by the configured timeout so a hanging provider
// cannot stall booking creation.
func New(cfg *config.Config, ot otel.Otel) Geocoder {
	timeout := cfg.External.Geocoder.TimeoutSeconds
	if timeout <= 0 {
		timeout = defaultTimeoutSeconds
	}

	return &geocoderImpl{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		otel: ot,
	}
}

func (g *geocoderImpl) Geocode(ctx context.Context, address string) (res Result, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".Geocode")
	defer scope.End()
	defer scope.TraceIfError(err)

	endpoint, err := url.Parse(g.cfg.External.Geocoder.BaseURL + "/search")
	if err != nil {
		return res, fmt.Errorf("invalid geocoder base URL: %w", err)
	}

	query := endpoint.Query()
	query.Set("q", address)
	query.Set("format", "jsonv2")
	query.Set("addressdetails", "1")
	query.Set("limit", "1")

	if g.cfg.External.Geocoder.Email != "" {
		query.Set("email", g.cfg.External.Geocoder.Email)
	}

	endpoint.RawQuery = query.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return res, fmt.Errorf("failed to build geocoding request: %w", err)
	}

	request.Header.Set(constant.RequestHeaderUserAgent, g.cfg.App.Name)

	response, err := g.client.Do(request)
	if err != nil {
		return res, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return res, fmt.Errorf("geocoding request returned status %d", response.StatusCode)
	}

	var results []nominatimResponse
	if err = json.NewDecoder(response.Body).Decode(&results); err != nil {
		return res, fmt.Errorf("failed to decode geocoding response: %w", err)
	}

	if len(results) == 0 {
		return res, ErrNoResult
	}

	first := results[0]

	lat, err := strconv.ParseFloat(first.Lat, 64)
	if err != nil {
		return res, fmt.Errorf("failed to parse geocoding latitude: %w", err)
	}

	lng, err := strconv.ParseFloat(first.Lon, 64)
	if err != nil {
		return res, fmt.Errorf("failed to parse geocoding longitude: %w", err)
	}

	city := first.Address.City
	if city == "" {
		city = first.Address.Town
	}

	if city == "" {
		city = first.Address.Village
	}

	log.Debug().
		Str("address", address).
		Float64("lat", lat).
		Float64("lng", lng).
		Msg("address geocoded")

	return Result{
		Latitude:   lat,
		Longitude:  lng,
		PostalCode: first.Address.Postcode,
		City:       city,
		Address:    first.DisplayName,
	}, nil
}
