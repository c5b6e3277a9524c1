package timezone

import (
	"fmt"
	"sync/atomic"
	"time"

	"fixmycondo/config"

	"github.com/rs/zerolog/log"
)

var appLocation atomic.Pointer[time.Location]

func init() {
	name := config.Get().App.Timezone
	if name == "" {
		log.Warn().Msg("no timezone configured, using UTC")

		name = "UTC"
	}

	if err := Load(name); err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("falling back to UTC")
	}
}

// Load switches the application timezone. On error the previous location is kept.
func Load(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	appLocation.Store(loc)

	return nil
}

func GetLocation() *time.Location {
	if loc := appLocation.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

func Now() time.Time {
	return time.Now().In(GetLocation())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// Date returns the local calendar day of t as midnight UTC, matching how DATE columns scan.
func Date(t time.Time) time.Time {
	year, month, day := ToAppTime(t).Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
