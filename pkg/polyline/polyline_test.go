package polyline

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// googleExample is the reference polyline from the format documentation.
const googleExample = "_p~iF~ps|U_ulLnnqC_mqNvxq`@"

func TestDecode6_Fixture(t *testing.T) {
	coords, err := Decode6("aqkg}Aa_iqO`kHxaN")
	require.NoError(t, err)

	want := [][]float64{{8.688641, 49.420577}, {8.680916, 49.415776}}
	assertCoordsInDelta(t, want, coords, 1e-9)
}

func TestDecode_GoogleExample(t *testing.T) {
	tests := []struct {
		name  string
		order Order
		want  [][]float64
	}{
		{
			name:  "lat lon",
			order: LatLon,
			want:  [][]float64{{38.5, -120.2}, {40.7, -120.95}, {43.252, -126.453}},
		},
		{
			name:  "lon lat",
			order: LonLat,
			want:  [][]float64{{-120.2, 38.5}, {-120.95, 40.7}, {-126.453, 43.252}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coords, err := Decode(googleExample, Options{Precision: 5, Order: tt.order})
			require.NoError(t, err)
			assertCoordsInDelta(t, tt.want, coords, 1e-9)
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	coords, err := Decode("", Options{Precision: 5})
	require.NoError(t, err)
	assert.NotNil(t, coords)
	assert.Empty(t, coords)
}

func TestDecode_Elevation(t *testing.T) {
	in := [][]float64{{8.68864, 49.42058, 112.5}, {8.68092, 49.41578, 118.25}, {8.6701, 49.4, 97}}
	opts := Options{Precision: 5, Elevation: true, Order: LonLat}

	encoded, err := Encode(in, opts)
	require.NoError(t, err)

	coords, err := Decode(encoded, opts)
	require.NoError(t, err)
	require.Len(t, coords, 3)
	for i := range in {
		require.Len(t, coords[i], 3)
		assert.InDelta(t, in[i][2], coords[i][2], 1e-2)
	}
	assertCoordsInDelta(t, in, coords, 1e-2)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		opts    Options
		wantErr error
	}{
		{name: "precision 7", input: googleExample, opts: Options{Precision: 7}, wantErr: ErrPrecision},
		{name: "precision zero", input: "", opts: Options{}, wantErr: ErrPrecision},
		{name: "truncated value", input: "_p~i", opts: Options{Precision: 5}, wantErr: ErrMalformed},
		{name: "missing longitude", input: "_p~iF", opts: Options{Precision: 5}, wantErr: ErrMalformed},
		{name: "missing elevation", input: googleExample[:10], opts: Options{Precision: 5, Elevation: true}, wantErr: ErrMalformed},
		{name: "control character", input: "_p~iF\n", opts: Options{Precision: 5}, wantErr: ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.input, tt.opts)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEncode_GoogleExample(t *testing.T) {
	encoded, err := Encode([][]float64{{38.5, -120.2}, {40.7, -120.95}, {43.252, -126.453}}, Options{Precision: 5, Order: LatLon})
	require.NoError(t, err)
	assert.Equal(t, googleExample, encoded)
}

func TestEncode_WrongDimensions(t *testing.T) {
	_, err := Encode([][]float64{{1, 2, 3}}, Options{Precision: 5})
	assert.Error(t, err)

	_, err = Encode([][]float64{{1, 2}}, Options{Precision: 6, Elevation: true})
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, precision := range []int{5, 6} {
		tolerance := math.Pow10(-precision)
		opts := Options{Precision: precision, Order: LonLat}

		for n := 0; n < 200; n++ {
			in := make([][]float64, 1+rng.Intn(30))
			for i := range in {
				in[i] = []float64{rng.Float64()*360 - 180, rng.Float64()*180 - 90}
			}

			encoded, err := Encode(in, opts)
			require.NoError(t, err)

			out, err := Decode(encoded, opts)
			require.NoError(t, err)
			assertCoordsInDelta(t, in, out, tolerance)
		}
	}
}

func assertCoordsInDelta(t *testing.T, want, got [][]float64, delta float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.Len(t, got[i], len(want[i]), "point %d", i)
		for j := range want[i] {
			assert.InDelta(t, want[i][j], got[i][j], delta, "point %d axis %d", i, j)
		}
	}
}
