package geocode

//go:generate go run go.uber.org/mock/mockgen -source=./geocode.go -destination=./mocks/geocode_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/Suya678/Surf/config"
	"github.com/Suya678/Surf/infras/otel"
	"github.com/Suya678/Surf/shared/constant"

	"github.com/rs/zerolog/log"
)

var (
	// ErrUnverifiable means the geocoder answered but the address could not
	// be confirmed as a real, street-level Canadian address.
	ErrUnverifiable = errors.New("address could not be verified")

	// ErrUnavailable means the geocoding service could not be reached.
	ErrUnavailable = errors.New("geocoding service unavailable")
)

const (
	locationTypeApproximate = "APPROXIMATE"
	statusOK                = "OK"

	componentCountry      = "country"
	componentProvince     = "administrative_area_level_1"
	componentPostalCode   = "postal_code"
	componentLocality     = "locality"
	componentSublocality  = "sublocality"
	componentAdminLevel3  = "administrative_area_level_3"
	componentStreetNumber = "street_number"

	otelAttrAddress = "geocode.address"
	otelAttrStatus  = "geocode.status"
)

// provinceAbbrev maps full Canadian province and territory names to their
// two-letter codes, so "Ontario" and "ON" both verify against the geocoder.
var provinceAbbrev = map[string]string{
	"Alberta":                   "AB",
	"British Columbia":          "BC",
	"Manitoba":                  "MB",
	"New Brunswick":             "NB",
	"Newfoundland and Labrador": "NL",
	"Northwest Territories":     "NT",
	"Nova Scotia":               "NS",
	"Nunavut":                   "NU",
	"Ontario":                   "ON",
	"Prince Edward Island":      "PE",
	"Quebec":                    "QC",
	"Saskatchewan":              "SK",
	"Yukon":                     "YT",
}

// Result is a verified, street-level geocoding match.
type Result struct {
	Latitude         float64
	Longitude        float64
	FormattedAddress string
	LocationType     string
}

type Geocoder interface {
	Resolve(ctx context.Context, address, city, province, postalCode string) (*Result, error)
}

type apiResponse struct {
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message"`
	Results      []apiResult `json:"results"`
}

type apiResult struct {
	FormattedAddress  string         `json:"formatted_address"`
	AddressComponents []apiComponent `json:"address_components"`
	Geometry          struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
		LocationType string `json:"location_type"`
	} `json:"geometry"`
}

type apiComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

type geocoderImpl struct {
	client *http.Client
	config *config.Config
	otel   otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Geocoder {
	return &geocoderImpl{
		client: &http.Client{
			Timeout: time.Duration(cfg.External.Geocoding.TimeoutSeconds) * time.Second,
		},
		config: cfg,
		otel:   otl,
	}
}

// Resolve geocodes a Canadian street address and verifies the match against
// the submitted city, province, and postal code. A mismatch on any of them,
// or a match that is only city/region level, returns ErrUnverifiable.
func (g *geocoderImpl) Resolve(ctx context.Context, address, city, province, postalCode string) (result *Result, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGeocodeScopeName, constant.OtelGeocodeScopeName+".Resolve")
	defer scope.End()
	defer scope.TraceIfError(err)

	fullAddress := fmt.Sprintf("%s, %s, %s, %s, Canada", address, city, province, postalCode)
	scope.SetAttribute(otelAttrAddress, fullAddress)

	resp, err := g.fetch(ctx, fullAddress)
	if err != nil {
		return nil, err
	}

	scope.SetAttribute(otelAttrStatus, resp.Status)

	if resp.Status != statusOK || len(resp.Results) == 0 {
		log.Warn().
			Str("status", resp.Status).
			Str("message", resp.ErrorMessage).
			Msg("Geocoding returned no usable match")

		return nil, ErrUnverifiable
	}

	match := resp.Results[0]

	if err = verify(match, city, province, postalCode); err != nil {
		return nil, err
	}

	return &Result{
		Latitude:         match.Geometry.Location.Lat,
		Longitude:        match.Geometry.Location.Lng,
		FormattedAddress: match.FormattedAddress,
		LocationType:     match.Geometry.LocationType,
	}, nil
}

func (g *geocoderImpl) fetch(ctx context.Context, fullAddress string) (*apiResponse, error) {
	params := url.Values{}
	params.Set("address", fullAddress)
	params.Set("key", g.config.External.Geocoding.APIKey)
	params.Set("region", g.config.External.Geocoding.Region)
	params.Set("components", "country:CA")

	endpoint := g.config.External.Geocoding.BaseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocoding request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("Failed calling geocoding API")

		return nil, ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Msg("Geocoding API returned non-OK status")

		return nil, ErrUnavailable
	}

	var decoded apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		log.Error().Err(err).Msg("Failed decoding geocoding response")

		return nil, ErrUnavailable
	}

	return &decoded, nil
}

func verify(match apiResult, city, province, postalCode string) error {
	if match.Geometry.LocationType == locationTypeApproximate {
		log.Warn().Msg("Address too vague, only city or region level match")

		return ErrUnverifiable
	}

	country := findComponent(match.AddressComponents, componentCountry)
	if country == nil || country.ShortName != "CA" {
		log.Warn().Msg("Address is not in Canada")

		return ErrUnverifiable
	}

	if err := verifyProvince(match, province); err != nil {
		return err
	}

	if err := verifyPostalCode(match, postalCode); err != nil {
		return err
	}

	if err := verifyCity(match, city); err != nil {
		return err
	}

	if findComponent(match.AddressComponents, componentStreetNumber) == nil {
		log.Warn().Msg("Address missing street number")

		return ErrUnverifiable
	}

	return nil
}

func verifyProvince(match apiResult, province string) error {
	returned := findComponent(match.AddressComponents, componentProvince)
	if returned == nil {
		return nil
	}

	normalized := provinceAbbrev[province]
	if normalized == "" {
		normalized = strings.ToUpper(province)
	}

	if returned.ShortName != normalized && !strings.EqualFold(returned.LongName, province) {
		log.Warn().
			Str("expected", province).
			Str("got", returned.LongName).
			Msg("Province mismatch")

		return ErrUnverifiable
	}

	return nil
}

// verifyPostalCode compares forward sortation areas, the first three
// characters of the postal code.
func verifyPostalCode(match apiResult, postalCode string) error {
	returned := findComponent(match.AddressComponents, componentPostalCode)
	if returned == nil {
		return nil
	}

	inputFSA := forwardSortationArea(postalCode)
	returnedFSA := forwardSortationArea(returned.ShortName)

	if inputFSA != returnedFSA {
		log.Warn().
			Str("expected", inputFSA).
			Str("got", returnedFSA).
			Msg("Postal code mismatch")

		return ErrUnverifiable
	}

	return nil
}

func verifyCity(match apiResult, city string) error {
	var returned *apiComponent

	for _, componentType := range []string{componentLocality, componentSublocality, componentAdminLevel3} {
		if returned = findComponent(match.AddressComponents, componentType); returned != nil {
			break
		}
	}

	if returned == nil || strings.EqualFold(returned.LongName, city) {
		return nil
	}

	returnedLower := strings.ToLower(returned.LongName)
	cityLower := strings.ToLower(city)

	if strings.Contains(returnedLower, cityLower) || strings.Contains(cityLower, returnedLower) {
		return nil
	}

	log.Warn().
		Str("expected", city).
		Str("got", returned.LongName).
		Msg("City mismatch")

	return ErrUnverifiable
}

func findComponent(components []apiComponent, componentType string) *apiComponent {
	for i := range components {
		if slices.Contains(components[i].Types, componentType) {
			return &components[i]
		}
	}

	return nil
}

func forwardSortationArea(postalCode string) string {
	cleaned := strings.ToUpper(strings.ReplaceAll(postalCode, " ", ""))
	if len(cleaned) > 3 {
		cleaned = cleaned[:3]
	}

	return cleaned
}
