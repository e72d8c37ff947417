package daterange_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Suya678/Surf/shared/daterange"

	"github.com/stretchr/testify/assert"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}

	return t
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr error
	}{
		{
			name:  "valid range",
			start: "2024-01-10",
			end:   "2024-01-15",
		},
		{
			name:    "end before start",
			start:   "2024-01-15",
			end:     "2024-01-10",
			wantErr: daterange.ErrInvalidOrder,
		},
		{
			name:    "end equals start",
			start:   "2024-01-10",
			end:     "2024-01-10",
			wantErr: daterange.ErrInvalidOrder,
		},
		{
			name:    "malformed start",
			start:   "10-01-2024",
			end:     "2024-01-15",
			wantErr: daterange.ErrInvalidFormat,
		},
		{
			name:    "malformed end",
			start:   "2024-01-10",
			end:     "tomorrow",
			wantErr: daterange.ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := daterange.Parse(tt.start, tt.end)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, date(tt.start), r.Start)
			assert.Equal(t, date(tt.end), r.End)
		})
	}
}

func TestRangeOverlaps(t *testing.T) {
	tests := []struct {
		name  string
		first daterange.Range
		other daterange.Range
		want  bool
	}{
		{
			name:  "back to back does not conflict",
			first: daterange.Range{Start: date("2024-01-10"), End: date("2024-01-15")},
			other: daterange.Range{Start: date("2024-01-15"), End: date("2024-01-20")},
			want:  false,
		},
		{
			name:  "partial overlap conflicts",
			first: daterange.Range{Start: date("2024-01-10"), End: date("2024-01-15")},
			other: daterange.Range{Start: date("2024-01-12"), End: date("2024-01-18")},
			want:  true,
		},
		{
			name:  "contained range conflicts",
			first: daterange.Range{Start: date("2024-01-01"), End: date("2024-01-31")},
			other: daterange.Range{Start: date("2024-01-10"), End: date("2024-01-12")},
			want:  true,
		},
		{
			name:  "identical ranges conflict",
			first: daterange.Range{Start: date("2024-01-10"), End: date("2024-01-15")},
			other: daterange.Range{Start: date("2024-01-10"), End: date("2024-01-15")},
			want:  true,
		},
		{
			name:  "disjoint ranges do not conflict",
			first: daterange.Range{Start: date("2024-01-10"), End: date("2024-01-15")},
			other: daterange.Range{Start: date("2024-02-01"), End: date("2024-02-05")},
			want:  false,
		},
		{
			name:  "back to back in reverse order does not conflict",
			first: daterange.Range{Start: date("2024-01-15"), End: date("2024-01-20")},
			other: daterange.Range{Start: date("2024-01-10"), End: date("2024-01-15")},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.first.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(tt.first))
		})
	}
}

func TestWindowCovers(t *testing.T) {
	from := date("2024-01-01")
	to := date("2024-02-01")
	request := daterange.Range{Start: date("2024-01-10"), End: date("2024-01-15")}

	tests := []struct {
		name   string
		window daterange.Window
		want   bool
	}{
		{
			name:   "unset window covers everything",
			window: daterange.Window{},
			want:   true,
		},
		{
			name:   "request inside window",
			window: daterange.Window{From: &from, To: &to},
			want:   true,
		},
		{
			name: "request starts before window",
			window: func() daterange.Window {
				late := date("2024-01-12")

				return daterange.Window{From: &late, To: &to}
			}(),
			want: false,
		},
		{
			name: "request ends after window",
			window: func() daterange.Window {
				early := date("2024-01-12")

				return daterange.Window{From: &from, To: &early}
			}(),
			want: false,
		},
		{
			name: "window end equal to departure date covers",
			window: func() daterange.Window {
				edge := date("2024-01-15")

				return daterange.Window{From: &from, To: &edge}
			}(),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.window.Covers(request))
		})
	}
}

func TestWindowValidate(t *testing.T) {
	from := date("2024-01-01")
	to := date("2024-02-01")

	assert.NoError(t, daterange.Window{}.Validate())
	assert.NoError(t, daterange.Window{From: &from}.Validate())
	assert.NoError(t, daterange.Window{From: &from, To: &to}.Validate())

	err := daterange.Window{From: &to, To: &from}.Validate()
	assert.True(t, errors.Is(err, daterange.ErrInvalidOrder))

	err = daterange.Window{From: &from, To: &from}.Validate()
	assert.True(t, errors.Is(err, daterange.ErrInvalidOrder))
}
