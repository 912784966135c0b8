package polyline

import (
	"errors"
	"fmt"
	"math"
)

// Order selects the axis order of decoded tuples and of Encode input.
type Order int

const (
	// LonLat emits [lon, lat(, elevation)] tuples, the GeoJSON order.
	LonLat Order = iota
	// LatLon emits [lat, lon(, elevation)] tuples.
	LatLon
)

// elevationFactor is fixed regardless of precision.
const elevationFactor = 100.0

var (
	// ErrPrecision is returned for precisions other than 5 and 6.
	ErrPrecision = errors.New("polyline: precision must be 5 or 6")

	// ErrMalformed is returned when the input ends in the middle of a value
	// or a point.
	ErrMalformed = errors.New("polyline: malformed input")
)

// Options configures Decode and Encode.
type Options struct {
	// Precision is the number of decimal places, 5 or 6.
	Precision int

	// Elevation indicates a third value per point.
	Elevation bool

	// Order is the axis order of coordinate tuples.
	Order Order
}

func (o Options) factor() (float64, error) {
	switch o.Precision {
	case 5:
		return 1e5, nil
	case 6:
		return 1e6, nil
	default:
		return 0, fmt.Errorf("%w, got %d", ErrPrecision, o.Precision)
	}
}

func (o Options) dims() int {
	if o.Elevation {
		return 3
	}
	return 2
}

// Decode turns an encoded polyline into coordinate tuples.
// An empty string yields an empty, non-nil slice.
func Decode(encoded string, opts Options) ([][]float64, error) {
	factor, err := opts.factor()
	if err != nil {
		return nil, err
	}

	dims := opts.dims()
	coords := make([][]float64, 0, len(encoded)/(2*dims))

	// running totals: lat, lon, elevation
	var totals [3]int64

	for i := 0; i < len(encoded); {
		for d := 0; d < dims; d++ {
			if i >= len(encoded) {
				return nil, fmt.Errorf("%w: point %d is missing axis %d", ErrMalformed, len(coords), d)
			}
			delta, next, err := decodeValue(encoded, i)
			if err != nil {
				return nil, err
			}
			totals[d] += delta
			i = next
		}

		lat := float64(totals[0]) / factor
		lon := float64(totals[1]) / factor

		var point []float64
		if opts.Order == LatLon {
			point = []float64{lat, lon}
		} else {
			point = []float64{lon, lat}
		}
		if opts.Elevation {
			point = append(point, float64(totals[2])/elevationFactor)
		}
		coords = append(coords, point)
	}

	return coords, nil
}

// Decode5 decodes a precision 5 polyline into [lon, lat] pairs.
func Decode5(encoded string) ([][]float64, error) {
	return Decode(encoded, Options{Precision: 5, Order: LonLat})
}

// Decode6 decodes a precision 6 polyline into [lon, lat] pairs.
func Decode6(encoded string) ([][]float64, error) {
	return Decode(encoded, Options{Precision: 6, Order: LonLat})
}

// decodeValue reads one varint starting at encoded[start] and returns the
// signed delta and the index just past it.
func decodeValue(encoded string, start int) (int64, int, error) {
	var result int64
	var shift uint

	for i := start; i < len(encoded); i++ {
		b := int64(encoded[i]) - 63
		if b < 0 || b > 63 {
			return 0, 0, fmt.Errorf("%w: invalid character %q at offset %d", ErrMalformed, encoded[i], i)
		}
		if shift > 60 {
			return 0, 0, fmt.Errorf("%w: value at offset %d overflows", ErrMalformed, start)
		}

		result |= (b & 0x1f) << shift
		shift += 5

		if b < 0x20 {
			if result&1 != 0 {
				return ^(result >> 1), i + 1, nil
			}
			return result >> 1, i + 1, nil
		}
	}

	return 0, 0, fmt.Errorf("%w: truncated value at offset %d", ErrMalformed, start)
}

func round(v float64) int64 {
	return int64(math.Round(v))
}
