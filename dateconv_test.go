package dateconv

import (
	"encoding/json"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ConverterTestSuite struct {
	suite.Suite
}

func TestConverterTestSuite(t *testing.T) {
	suite.Run(t, new(ConverterTestSuite))
}

func (s *ConverterTestSuite) TestFromString() {
	c, err := FromString("2018-04-05")
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), c.String(), "2018-04-05")
	assert.Equal(s.T(), c.Date(), civil.Date{Year: 2018, Month: time.April, Day: 5})

	// not a date at all
	_, err = FromString("yesterday")
	var perr *ParseError
	assert.ErrorAs(s.T(), err, &perr)
	assert.Equal(s.T(), perr.Input, "yesterday")

	// syntactically fine but no such day
	_, err = FromString("2018-02-30")
	assert.ErrorAs(s.T(), err, &perr)
}

func (s *ConverterTestSuite) TestFromPattern() {
	c, err := FromPattern("2018/04/05", "yyyy/MM/dd")
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), c.Date(), civil.Date{Year: 2018, Month: time.April, Day: 5})

	// malformed pattern
	_, err = FromPattern("05-04-2018", "notapattern!!")
	var paterr *PatternError
	assert.ErrorAs(s.T(), err, &paterr)

	// valid pattern, mismatched text
	_, err = FromPattern("2018-04-05", "yyyy/MM/dd")
	var perr *ParseError
	assert.ErrorAs(s.T(), err, &perr)

	// valid pattern, impossible date
	_, err = FromPattern("2018/02/30", "yyyy/MM/dd")
	assert.ErrorAs(s.T(), err, &perr)
}

func (s *ConverterTestSuite) TestFromFormat() {
	f, err := CompilePattern("uuuu.MM.dd")
	assert.Nil(s.T(), err)

	c, err := FromFormat("2018.06.03", f)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), c.String(), "2018-06-03")

	_, err = FromFormat("2018-06-03", f)
	var perr *ParseError
	assert.ErrorAs(s.T(), err, &perr)
}

func (s *ConverterTestSuite) TestFormatPattern() {
	c, err := FromString("2018-04-05")
	assert.Nil(s.T(), err)

	out, err := c.FormatPattern("yyyy年MM月dd日")
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), out, "2018年04月05日")

	out, err = c.FormatPattern("MMM d, uuuu")
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), out, "Apr 5, 2018")

	_, err = c.FormatPattern("gibberish")
	var paterr *PatternError
	assert.ErrorAs(s.T(), err, &paterr)

	// time-of-day fields are unavailable on a date
	_, err = c.FormatPattern("uuuu-MM-dd HH:mm")
	var ferr *FormatError
	assert.ErrorAs(s.T(), err, &ferr)
	assert.Equal(s.T(), ferr.Letter, 'H')
}

func (s *ConverterTestSuite) TestFromDate() {
	d := civil.Date{Year: 2018, Month: time.June, Day: 3}
	c := FromDate(d)
	assert.Equal(s.T(), c.Date(), d)
	assert.Equal(s.T(), c.String(), "2018-06-03")
}

func (s *ConverterTestSuite) TestFromTime() {
	c := FromTime(time.Date(2018, 6, 3, 23, 59, 59, 0, time.UTC))
	assert.Equal(s.T(), c.String(), "2018-06-03")
}

func (s *ConverterTestSuite) TestSQLDate() {
	sd := pgtype.Date{Time: time.Date(2018, 6, 3, 0, 0, 0, 0, time.UTC), Valid: true}
	c, err := FromSQLDate(sd)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), c.String(), "2018-06-03")

	out := c.SQLDate()
	assert.True(s.T(), out.Valid)
	assert.Equal(s.T(), out.Time, time.Date(2018, 6, 3, 0, 0, 0, 0, time.UTC))

	_, err = FromSQLDate(pgtype.Date{})
	assert.NotNil(s.T(), err)

	_, err = FromSQLDate(pgtype.Date{InfinityModifier: pgtype.Infinity, Valid: true})
	assert.NotNil(s.T(), err)
}

func (s *ConverterTestSuite) TestRoundTrips() {
	f, err := CompilePattern("d MMMM uuuu (EEEE)")
	assert.Nil(s.T(), err)

	d := civil.Date{Year: 2016, Month: time.January, Day: 1}
	for d.Year < 2017 {
		c := FromDate(d)
		assert.Equal(s.T(), c.Date(), d)

		viaString, err := FromString(c.String())
		assert.Nil(s.T(), err)
		assert.True(s.T(), viaString.Equal(c))

		text, err := c.Format(f)
		assert.Nil(s.T(), err)
		viaPattern, err := FromFormat(text, f)
		assert.Nil(s.T(), err)
		assert.True(s.T(), viaPattern.Equal(c))

		viaSQL, err := FromSQLDate(c.SQLDate())
		assert.Nil(s.T(), err)
		assert.Equal(s.T(), viaSQL.Date(), d)

		d = d.AddDays(1)
	}
}

func (s *ConverterTestSuite) TestLeapDay() {
	c, err := FromString("2016-02-29")
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), c.String(), "2016-02-29")

	_, err = FromString("2018-02-29")
	assert.NotNil(s.T(), err)
}

func (s *ConverterTestSuite) TestValueScan() {
	c, err := FromString("2018-06-03")
	assert.Nil(s.T(), err)

	v, err := c.Value()
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), v, "2018-06-03")

	var fromTime Converter
	assert.Nil(s.T(), fromTime.Scan(time.Date(2018, 6, 3, 15, 4, 5, 0, time.UTC)))
	assert.True(s.T(), fromTime.Equal(c))

	var fromString Converter
	assert.Nil(s.T(), fromString.Scan("2018-06-03"))
	assert.True(s.T(), fromString.Equal(c))

	var fromBytes Converter
	assert.Nil(s.T(), fromBytes.Scan([]byte("2018-06-03")))
	assert.True(s.T(), fromBytes.Equal(c))

	var bad Converter
	assert.NotNil(s.T(), bad.Scan(nil))
	assert.NotNil(s.T(), bad.Scan(42))
	assert.NotNil(s.T(), bad.Scan("02/03/2018"))
}

func (s *ConverterTestSuite) TestJSON() {
	c, err := FromString("2018-04-05")
	assert.Nil(s.T(), err)

	b, err := json.Marshal(c)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), string(b), `"2018-04-05"`)

	var out Converter
	assert.Nil(s.T(), json.Unmarshal(b, &out))
	assert.True(s.T(), out.Equal(c))

	assert.NotNil(s.T(), json.Unmarshal([]byte(`"2018-02-30"`), &out))
	assert.NotNil(s.T(), json.Unmarshal([]byte(`20180405`), &out))
}
