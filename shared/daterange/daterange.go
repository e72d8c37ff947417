package daterange

import (
	"errors"
	"time"

	"github.com/Suya678/Surf/shared/constant"
)

var (
	ErrInvalidFormat = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrInvalidOrder  = errors.New("end date must be after start date")
)

// Range is a half-open date interval: Start is the first occupied night,
// End is the departure date and is not occupied.
type Range struct {
	Start time.Time
	End   time.Time
}

// New builds a Range and enforces End > Start.
func New(start, end time.Time) (Range, error) {
	if !end.After(start) {
		return Range{}, ErrInvalidOrder
	}

	return Range{Start: start, End: end}, nil
}

// Parse builds a Range from two YYYY-MM-DD strings.
func Parse(start, end string) (Range, error) {
	startDate, err := time.Parse(constant.DateOnlyFormat, start)
	if err != nil {
		return Range{}, ErrInvalidFormat
	}

	endDate, err := time.Parse(constant.DateOnlyFormat, end)
	if err != nil {
		return Range{}, ErrInvalidFormat
	}

	return New(startDate, endDate)
}

// Overlaps reports whether two half-open ranges share at least one night.
// Back-to-back ranges (one's End equals the other's Start) do not overlap.
func (r Range) Overlaps(other Range) bool {
	return r.Start.Before(other.End) && r.End.After(other.Start)
}

// Window is a listing's optional availability window. A nil bound means
// the listing is open on that side; both nil means always available.
type Window struct {
	From *time.Time
	To   *time.Time
}

// Covers reports whether the requested range falls entirely inside the window.
// An unset window covers everything.
func (w Window) Covers(r Range) bool {
	if w.From == nil && w.To == nil {
		return true
	}

	if w.From != nil && w.From.After(r.Start) {
		return false
	}

	if w.To != nil && w.To.Before(r.End) {
		return false
	}

	return true
}

// Validate enforces From < To when both bounds are set.
func (w Window) Validate() error {
	if w.From == nil || w.To == nil {
		return nil
	}

	if !w.From.Before(*w.To) {
		return ErrInvalidOrder
	}

	return nil
}
