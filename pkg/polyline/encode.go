package polyline

import (
	"fmt"
	"strings"
)

// Encode is the inverse of Decode. Every tuple must have 2 values, or 3
// when opts.Elevation is set; values are read in opts.Order.
func Encode(coords [][]float64, opts Options) (string, error) {
	factor, err := opts.factor()
	if err != nil {
		return "", err
	}

	dims := opts.dims()
	var sb strings.Builder
	sb.Grow(len(coords) * dims * 4)

	var prev [3]int64
	for i, c := range coords {
		if len(c) != dims {
			return "", fmt.Errorf("polyline: coordinate %d has %d values, want %d", i, len(c), dims)
		}

		lat, lon := c[1], c[0]
		if opts.Order == LatLon {
			lat, lon = c[0], c[1]
		}

		scaled := [3]int64{round(lat * factor), round(lon * factor)}
		if opts.Elevation {
			scaled[2] = round(c[2] * elevationFactor)
		}

		for d := 0; d < dims; d++ {
			encodeValue(&sb, scaled[d]-prev[d])
			prev[d] = scaled[d]
		}
	}

	return sb.String(), nil
}

func encodeValue(sb *strings.Builder, v int64) {
	u := uint64(v) << 1
	if v < 0 {
		u = ^u
	}
	for u >= 0x20 {
		sb.WriteByte(byte((0x20 | (u & 0x1f)) + 63))
		u >>= 5
	}
	sb.WriteByte(byte(u + 63))
}
