// Package routing resolves driving distance and duration between two points.
// It calls the public OSRM routing API and falls back to a flat-earth
// estimate when the API is unreachable or returns no route.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"
)

const osrmBase = "https://router.project-osrm.org/route/v1/driving"

// Roughly one degree of latitude in kilometers, for the fallback estimate.
const fallbackKmPerDegree = 111

// ServiceInterface defines the contract for the routing service.
type ServiceInterface interface {
	Route(ctx context.Context, from, to Point) (RouteInfo, error)
	EstimateRoute(from, to Point) RouteInfo
}

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RouteInfo is a resolved driving route.
type RouteInfo struct {
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes int     `json:"duration_minutes"`
	Estimated       bool    `json:"estimated"` // true when the fallback was used
}

// Service implements ServiceInterface against OSRM.
type Service struct {
	httpClient *http.Client
	baseURL    string
}

// NewService creates a routing service with a bounded request timeout.
func NewService() *Service {
	return &Service{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    osrmBase,
	}
}

// Route fetches the driving route from OSRM. Any failure degrades to the
// flat-earth estimate rather than surfacing an error to the booking flow.
func (s *Service) Route(ctx context.Context, from, to Point) (RouteInfo, error) {
	url := fmt.Sprintf("%s/%f,%f;%f,%f?overview=false", s.baseURL, from.Lng, from.Lat, to.Lng, to.Lat)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return s.EstimateRoute(from, to), nil
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return s.EstimateRoute(from, to), nil
	}
	defer resp.Body.Close()

	var out struct {
		Code   string `json:"code"`
		Routes []struct {
			Distance float64 `json:"distance"` // meters
			Duration float64 `json:"duration"` // seconds
		} `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return s.EstimateRoute(from, to), nil
	}
	if out.Code != "Ok" || len(out.Routes) == 0 {
		return s.EstimateRoute(from, to), nil
	}

	route := out.Routes[0]
	return RouteInfo{
		DistanceKm:      roundKm(route.Distance / 1000),
		DurationMinutes: clampDuration(int(math.Ceil(route.Duration/60)) + 15),
	}, nil
}

// EstimateRoute approximates distance from raw coordinates when no routing
// backend is available: 60 km/h average plus a 15-minute buffer, floored at
// 30 minutes.
func (s *Service) EstimateRoute(from, to Point) RouteInfo {
	dLat := (to.Lat - from.Lat) * math.Pi / 180
	dLng := (to.Lng - from.Lng) * math.Pi / 180 * math.Cos(from.Lat*math.Pi/180)
	km := math.Sqrt(dLat*dLat+dLng*dLng) * fallbackKmPerDegree * 180 / math.Pi

	return RouteInfo{
		DistanceKm:      roundKm(km),
		DurationMinutes: clampDuration(int(math.Ceil(km/60*60)) + 15),
		Estimated:       true,
	}
}

func roundKm(km float64) float64 {
	return math.Round(km*10) / 10
}

func clampDuration(minutes int) int {
	if minutes < 30 {
		return 30
	}
	return minutes
}
