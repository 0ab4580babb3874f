package availability

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
)

func raw(start, end interface{}) RawRange {
	return RawRange{StartMinute: start, EndMinute: end}
}

func TestNormalizeRanges(t *testing.T) {
	tests := []struct {
		name    string
		in      []RawRange
		want    []domain.TimeRange
		wantErr bool
	}{
		{
			name: "sorted disjoint ranges are kept as is",
			in:   []RawRange{raw(60, 120), raw(180, 240)},
			want: []domain.TimeRange{{StartMinute: 60, EndMinute: 120}, {StartMinute: 180, EndMinute: 240}},
		},
		{
			name: "unordered input is sorted",
			in:   []RawRange{raw(600, 720), raw(0, 60), raw(300, 360)},
			want: []domain.TimeRange{{StartMinute: 0, EndMinute: 60}, {StartMinute: 300, EndMinute: 360}, {StartMinute: 600, EndMinute: 720}},
		},
		{
			name: "touching ranges stay separate",
			in:   []RawRange{raw(120, 180), raw(60, 120)},
			want: []domain.TimeRange{{StartMinute: 60, EndMinute: 120}, {StartMinute: 120, EndMinute: 180}},
		},
		{
			name: "full day",
			in:   []RawRange{raw(0, 1440)},
			want: []domain.TimeRange{{StartMinute: 0, EndMinute: 1440}},
		},
		{
			name: "loosely typed values",
			in:   []RawRange{raw("60", json.Number("120")), raw(int64(180), float32(240))},
			want: []domain.TimeRange{{StartMinute: 60, EndMinute: 120}, {StartMinute: 180, EndMinute: 240}},
		},
		{
			name: "empty input",
			in:   []RawRange{},
			want: []domain.TimeRange{},
		},
		{name: "overlap", in: []RawRange{raw(60, 200), raw(180, 240)}, wantErr: true},
		{name: "zero length", in: []RawRange{raw(120, 120)}, wantErr: true},
		{name: "reversed", in: []RawRange{raw(240, 120)}, wantErr: true},
		{name: "negative", in: []RawRange{raw(-1, 60)}, wantErr: true},
		{name: "past end of day", in: []RawRange{raw(60, 1441)}, wantErr: true},
		{name: "fractional", in: []RawRange{raw(60.5, 120)}, wantErr: true},
		{name: "nan", in: []RawRange{raw(math.NaN(), 120)}, wantErr: true},
		{name: "infinite", in: []RawRange{raw(0, math.Inf(1))}, wantErr: true},
		{name: "not a number", in: []RawRange{raw("noon", 720)}, wantErr: true},
		{name: "missing value", in: []RawRange{raw(nil, 720)}, wantErr: true},
		{name: "unsupported type", in: []RawRange{raw(true, 720)}, wantErr: true},
		{name: "one bad range fails the whole set", in: []RawRange{raw(0, 60), raw(120, 60)}, wantErr: true},
		{name: "duplicate", in: []RawRange{raw(60, 120), raw(60, 120)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeRanges(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRanges)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeRanges_Deterministic(t *testing.T) {
	a, err := NormalizeRanges([]RawRange{raw(300, 400), raw(0, 100), raw(100, 200)})
	require.NoError(t, err)
	b, err := NormalizeRanges([]RawRange{raw(100, 200), raw(300, 400), raw(0, 100)})
	require.NoError(t, err)
	assert.Equal(t, a, b)

	for i := 1; i < len(a); i++ {
		assert.LessOrEqual(t, a[i-1].EndMinute, a[i].StartMinute)
	}
}

func TestValidateRanges_DoesNotMutateInput(t *testing.T) {
	in := []domain.TimeRange{{StartMinute: 600, EndMinute: 660}, {StartMinute: 0, EndMinute: 60}}
	out, err := ValidateRanges(in)
	require.NoError(t, err)
	assert.Equal(t, 600, in[0].StartMinute)
	assert.Equal(t, 0, out[0].StartMinute)
}
