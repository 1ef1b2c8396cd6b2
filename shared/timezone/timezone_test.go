package timezone_test

import (
	"testing"
	"time"

	"github.com/ymjo140/rendezvous-merchant-sub000/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationAndNow(t *testing.T) {
	loc := timezone.GetLocation()
	require.NotNil(t, loc)

	assert.Equal(t, loc, timezone.Now().Location())
	assert.Equal(t, loc, timezone.ToAppTime(time.Now().UTC()).Location())
}

func TestCombine(t *testing.T) {
	date, err := timezone.ParseDate("2025-03-14")
	require.NoError(t, err)

	start, err := timezone.Combine(date, "18:30")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14 18:30", start.Format("2006-01-02 15:04"))

	end, err := timezone.Combine(date, "24:00")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-15 00:00", end.Format("2006-01-02 15:04"))
	assert.Equal(t, timezone.GetLocation(), end.Location())

	_, err = timezone.Combine(date, "7pm")
	assert.Error(t, err)
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := timezone.ParseDate("14/03/2025")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	instant := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, instant.In(timezone.GetLocation()).Format(time.RFC3339), timezone.Format(instant, time.RFC3339))
}
