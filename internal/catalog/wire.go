package catalog

import (
	"fmt"
)

// Wire shapes of the audio-guide API and its JSON data files.

type wireCoordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type wireAttraction struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Address     string          `json:"address"`
	Coordinates wireCoordinates `json:"coordinates"`
	Image       string          `json:"image"`
	AudioURL    string          `json:"audio_url"`
	Order       int             `json:"order"`
}

type wireRoute struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	AttractionIDs []string    `json:"attraction_ids"`
	Polyline      [][]float64 `json:"polyline"`
}

type attractionList struct {
	Attractions []wireAttraction `json:"attractions"`
}

type routeList struct {
	Routes []wireRoute `json:"routes"`
}

func (w wireAttraction) toStop() (Stop, error) {
	c := Coordinate{Lat: w.Coordinates.Lat, Lon: w.Coordinates.Lon}
	if err := c.Validate(); err != nil {
		return Stop{}, fmt.Errorf("attraction %s: %w", w.ID, err)
	}
	return Stop{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Address:     w.Address,
		Coordinate:  c,
		Image:       w.Image,
		AudioURL:    w.AudioURL,
		Order:       w.Order,
	}, nil
}

func (w wireRoute) toTour() (Tour, error) {
	path := make([]Coordinate, 0, len(w.Polyline))
	for i, pt := range w.Polyline {
		if len(pt) != 2 {
			return Tour{}, fmt.Errorf("route %s: polyline point %d has %d values, want 2", w.ID, i, len(pt))
		}
		c := Coordinate{Lat: pt[0], Lon: pt[1]}
		if err := c.Validate(); err != nil {
			return Tour{}, fmt.Errorf("route %s: polyline point %d: %w", w.ID, i, err)
		}
		path = append(path, c)
	}
	return Tour{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		StopIDs:     append([]string(nil), w.AttractionIDs...),
		Fallback:    path,
	}, nil
}

func decodeAttractions(list attractionList) ([]Stop, error) {
	out := make([]Stop, 0, len(list.Attractions))
	for _, a := range list.Attractions {
		st, err := a.toStop()
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func decodeRoutes(list routeList) ([]Tour, error) {
	out := make([]Tour, 0, len(list.Routes))
	for _, r := range list.Routes {
		t, err := r.toTour()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
