package pack

import (
	"time"

	"fortio.org/safecast"
	"github.com/arthur-debert/tmplfs/pkg/errors"
)

// MS-DOS dates count years from 1980 in seven bits.
const (
	dosEpochYear = 1980
	dosMaxYear   = dosEpochYear + 127
)

// dosTimestamp converts t, in UTC, to zip's MS-DOS date and time fields.
// Times outside 1980..2107 cannot be represented and are an error.
func dosTimestamp(t time.Time) (date, clock uint16, err error) {
	t = t.UTC()

	year, err := safecast.Conv[uint16](t.Year() - dosEpochYear)
	if err != nil || t.Year() > dosMaxYear {
		return 0, 0, errors.Newf(errors.ErrTimestampRange, "modification time %s is outside the zip timestamp range", t.Format(time.RFC3339)).
			WithDetail("year", t.Year())
	}

	// the remaining components are bounded by time.Time itself
	month := uint16(t.Month())
	day := uint16(t.Day())
	hour := uint16(t.Hour())
	minute := uint16(t.Minute())
	second := uint16(t.Second())

	date = year<<9 | month<<5 | day
	clock = hour<<11 | minute<<5 | second/2
	return date, clock, nil
}
