package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const (
	dateLayout  = time.DateOnly
	clockLength = len("15:04")
)

// Date is a calendar day held as YYYY-MM-DD and stored in a DATE column.
type Date string

func (d *Date) Scan(src any) error {
	switch value := src.(type) {
	case time.Time:
		*d = Date(value.Format(dateLayout))
	case []byte:
		return d.Scan(string(value))
	case string:
		if len(value) < len(dateLayout) {
			return fmt.Errorf("invalid date %q", value)
		}

		*d = Date(value[:len(dateLayout)])
	case nil:
		*d = ""
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}

	return nil
}

func (d Date) Value() (driver.Value, error) {
	return string(d), nil
}

func (d Date) String() string {
	return string(d)
}

// Clock is a time of day held as HH:MM and stored in a TIME column.
// Postgres keeps 24:00 as end of day, so it survives a round trip.
type Clock string

func (c *Clock) Scan(src any) error {
	switch value := src.(type) {
	case []byte:
		return c.Scan(string(value))
	case string:
		if len(value) < clockLength {
			return fmt.Errorf("invalid time of day %q", value)
		}

		*c = Clock(value[:clockLength])
	case time.Time:
		*c = Clock(value.Format("15:04"))
	case nil:
		*c = ""
	default:
		return fmt.Errorf("cannot scan %T into Clock", src)
	}

	return nil
}

func (c Clock) Value() (driver.Value, error) {
	return string(c), nil
}

func (c Clock) String() string {
	return string(c)
}
