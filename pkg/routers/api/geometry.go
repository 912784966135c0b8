package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/tombee/routekit/pkg/polyline"
)

// DecodeGeometry decodes a route geometry that is either an encoded
// polyline string or a GeoJSON LineString object. Coordinates come back
// as [lon, lat] (or [lon, lat, elevation] for polylines with elevation).
// JSON null decodes to nil.
func DecodeGeometry(raw json.RawMessage, precision int, elevation bool) ([][]float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	switch raw[0] {
	case '"':
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, err
		}
		return polyline.Decode(encoded, polyline.Options{
			Precision: precision,
			Elevation: elevation,
			Order:     polyline.LonLat,
		})
	case '{':
		g, err := geojson.UnmarshalGeometry(raw)
		if err != nil {
			return nil, fmt.Errorf("decode geojson geometry: %w", err)
		}
		return LineCoords(g.Geometry())
	default:
		return nil, fmt.Errorf("unsupported geometry encoding: %.20s", raw)
	}
}

// LineCoords flattens a LineString or MultiLineString into [lon, lat]
// pairs.
func LineCoords(g orb.Geometry) ([][]float64, error) {
	if g == nil {
		return nil, nil
	}
	switch geom := g.(type) {
	case orb.LineString:
		return pointsToCoords(geom), nil
	case orb.MultiLineString:
		var coords [][]float64
		for _, ls := range geom {
			coords = append(coords, pointsToCoords(ls)...)
		}
		return coords, nil
	default:
		return nil, fmt.Errorf("expected a line geometry, got %s", g.GeoJSONType())
	}
}

// RingCoords returns the outer ring of a Polygon, or the ring itself for
// LineString contours, as [lon, lat] pairs. ok is false for other
// geometries.
func RingCoords(g orb.Geometry) ([][]float64, bool) {
	switch geom := g.(type) {
	case orb.Polygon:
		if len(geom) == 0 {
			return [][]float64{}, true
		}
		return pointsToCoords(geom[0]), true
	case orb.MultiPolygon:
		if len(geom) == 0 || len(geom[0]) == 0 {
			return [][]float64{}, true
		}
		return pointsToCoords(geom[0][0]), true
	case orb.LineString:
		return pointsToCoords(geom), true
	default:
		return nil, false
	}
}

// DecodeFeatureCollection parses a GeoJSON FeatureCollection.
func DecodeFeatureCollection(raw json.RawMessage) (*geojson.FeatureCollection, error) {
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("decode feature collection: %w", err)
	}
	return fc, nil
}

// PointCoords returns a [lon, lat] pair.
func PointCoords(p orb.Point) []float64 {
	return []float64{p.Lon(), p.Lat()}
}

func pointsToCoords[T ~[]orb.Point](points T) [][]float64 {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p.Lon(), p.Lat()}
	}
	return coords
}
