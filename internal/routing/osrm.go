package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/jask/audioguide/internal/catalog"
)

// OSRM queries an OSRM route service for full-overview GeoJSON geometries.
type OSRM struct {
	BaseURL string
	// Profile used for ModePedestrian, "foot" on most deployments.
	Profile string
	Client  *http.Client
}

// NewOSRM returns a client for baseURL, e.g. https://router.project-osrm.org.
func NewOSRM(baseURL, profile string) *OSRM {
	if profile == "" {
		profile = "foot"
	}
	return &OSRM{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Profile: profile,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type osrmResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Geometry geojson.Geometry `json:"geometry"`
		Distance float64          `json:"distance"`
	} `json:"routes"`
}

func (o *OSRM) Route(ctx context.Context, waypoints []catalog.Coordinate, mode TravelMode) (Path, error) {
	if len(waypoints) < 2 {
		return nil, ErrNoRoute
	}
	profile := o.Profile
	if mode != ModePedestrian {
		return nil, fmt.Errorf("osrm: unsupported travel mode %q", mode)
	}

	coords := make([]string, 0, len(waypoints))
	for _, w := range waypoints {
		coords = append(coords, formatCoord(w.Lon)+","+formatCoord(w.Lat))
	}
	url := fmt.Sprintf("%s/route/v1/%s/%s?overview=full&geometries=geojson", o.BaseURL, profile, strings.Join(coords, ";"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := o.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("osrm: %w", err)
	}
	defer resp.Body.Close()

	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("osrm: decode (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || body.Code != "Ok" {
		return nil, fmt.Errorf("osrm: %s %s: %w", body.Code, body.Message, ErrNoRoute)
	}
	if len(body.Routes) == 0 {
		return nil, ErrNoRoute
	}
	line, ok := body.Routes[0].Geometry.Geometry().(orb.LineString)
	if !ok || len(line) < 2 {
		return nil, fmt.Errorf("osrm: geometry %q: %w", body.Routes[0].Geometry.Type, ErrNoRoute)
	}
	return FromLineString(line), nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
