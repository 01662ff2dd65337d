// Package dateconv converts a calendar date between its textual, native
// (civil.Date) and database (pgtype.Date) representations.
//
//	c, err := dateconv.FromString("2018-04-05")
//	c, err := dateconv.FromPattern("2018/04/05", "uuuu/MM/dd")
//	s, err := c.FormatPattern("uuuu年MM月dd日")
//	d := c.Date()
//	sd := c.SQLDate()
//
// A Converter always holds a valid calendar date and never changes after
// construction, so separate values can be used freely across goroutines.
package dateconv

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pkg/errors"
)

// Converter holds a single validated calendar date. It is created through
// the From* functions only; the zero value is not meaningful.
type Converter struct {
	date civil.Date
}

// FromString builds a Converter from an ISO-8601 date string (2006-01-02).
// Malformed text and impossible dates are reported as a *ParseError.
func FromString(s string) (Converter, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return Converter{}, &ParseError{Input: s, Err: err}
	}
	return Converter{date: d}, nil
}

// FromPattern builds a Converter from text in the given pattern. It returns
// a *PatternError for a malformed pattern and a *ParseError when the text
// does not match it or names an impossible date. Callers converting many
// strings with one pattern should compile it once and use FromFormat.
func FromPattern(s, pattern string) (Converter, error) {
	f, err := CompilePattern(pattern)
	if err != nil {
		return Converter{}, err
	}
	return FromFormat(s, f)
}

// FromFormat builds a Converter from text in a pre-compiled format.
func FromFormat(s string, f *Formatter) (Converter, error) {
	d, err := f.Parse(s)
	if err != nil {
		return Converter{}, err
	}
	return Converter{date: d}, nil
}

// FromDate builds a Converter holding the given date.
func FromDate(d civil.Date) Converter {
	return Converter{date: d}
}

// FromTime builds a Converter holding the calendar date of t in t's
// location. The time of day is dropped.
func FromTime(t time.Time) Converter {
	return Converter{date: civil.DateOf(t)}
}

// FromSQLDate builds a Converter from a database date value. NULL and
// infinite dates carry no calendar date to hold and are rejected.
func FromSQLDate(d pgtype.Date) (Converter, error) {
	c, err := civilOf(d)
	if err != nil {
		return Converter{}, err
	}
	return Converter{date: c}, nil
}

// String returns the date as an ISO-8601 string (2006-01-02).
func (c Converter) String() string {
	return c.date.String()
}

// FormatPattern returns the date rendered with the given pattern. It
// returns a *PatternError for a malformed pattern and a *FormatError when
// the pattern requests a field a date-only value cannot supply.
func (c Converter) FormatPattern(pattern string) (string, error) {
	f, err := CompilePattern(pattern)
	if err != nil {
		return "", err
	}
	return f.Format(c.date)
}

// Format returns the date rendered with a pre-compiled format.
func (c Converter) Format(f *Formatter) (string, error) {
	return f.Format(c.date)
}

// Date returns the held calendar date.
func (c Converter) Date() civil.Date {
	return c.date
}

// Time returns the held date as a time.Time at UTC midnight.
func (c Converter) Time() time.Time {
	return c.date.In(time.UTC)
}

// SQLDate returns the held date as a database date value.
func (c Converter) SQLDate() pgtype.Date {
	return SQLDateOf(c.date)
}

// Equal reports whether two Converters hold the same calendar date.
func (c Converter) Equal(o Converter) bool {
	return c.date == o.date
}

// Value implements driver.Valuer so a Converter can be bound directly as a
// query parameter. The date travels as its ISO-8601 string, which every
// driver accepts for a DATE column.
func (c Converter) Value() (driver.Value, error) {
	return c.date.String(), nil
}

// Scan implements sql.Scanner so a DATE column can be read directly into a
// Converter. NULL is rejected rather than defaulted, since a Converter
// must hold a valid date.
func (c *Converter) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		c.date = civil.DateOf(v)
	case string:
		d, err := civil.ParseDate(v)
		if err != nil {
			return errors.Wrapf(err, "dateconv: scanning %q", v)
		}
		c.date = d
	case []byte:
		d, err := civil.ParseDate(string(v))
		if err != nil {
			return errors.Wrapf(err, "dateconv: scanning %q", v)
		}
		c.date = d
	case nil:
		return errors.New("dateconv: cannot scan NULL into a Converter")
	default:
		return errors.Errorf("dateconv: cannot scan %T into a Converter", value)
	}
	return nil
}

// MarshalJSON encodes the date as an ISO-8601 JSON string.
func (c Converter) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.date.String())
}

// UnmarshalJSON decodes an ISO-8601 JSON string.
func (c *Converter) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		return &ParseError{Input: s, Err: err}
	}
	c.date = d
	return nil
}
