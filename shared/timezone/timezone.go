package timezone

import (
	"fmt"
	"time"

	"github.com/ymjo140/rendezvous-merchant-sub000/config"

	"github.com/rs/zerolog/log"
)

const (
	dateLayout  = time.DateOnly
	clockLayout = "15:04"
	endOfDay    = "24:00"
)

var (
	appLocation = time.UTC
)

func init() {
	name := config.Get().App.Timezone
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		return
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", name).
			Msg("Failed to load timezone, falling back to UTC. Use IANA names like 'Asia/Seoul' or 'America/New_York'")

		return
	}

	appLocation = loc

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")
}

// Now returns the current time in the store's timezone.
func Now() time.Time {
	return time.Now().In(appLocation)
}

func ToAppTime(t time.Time) time.Time {
	return t.In(appLocation)
}

func GetLocation() *time.Location {
	return appLocation
}

// Parse interprets value in the application timezone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, appLocation)
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// Combine places a wall clock "HH:MM" on date in the application timezone.
// "24:00" resolves to midnight of the following day.
func Combine(date time.Time, clock string) (time.Time, error) {
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, appLocation)

	if clock == endOfDay {
		return day.AddDate(0, 0, 1), nil
	}

	parsed, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock %q: %w", clock, err)
	}

	return day.Add(time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute), nil
}

// ParseDate reads a "YYYY-MM-DD" calendar date in the application timezone.
func ParseDate(value string) (time.Time, error) {
	return Parse(dateLayout, value)
}
