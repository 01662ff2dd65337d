package dateconv

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/pkg/errors"
)

// Formatter is a compiled date pattern. Compiling is the expensive part, so
// callers converting many dates with the same pattern should compile once
// and reuse the Formatter; it is immutable and safe for concurrent use.
//
// The pattern language is the date-only subset of the java.time style:
//
//	u, y    year        uuuu zero-padded to 4 digits, uu the 2000-2099 window
//	M, L    month       M numeric, MM zero-padded, MMM abbreviated, MMMM full
//	d       day         d numeric, dd zero-padded
//	E       weekday     E/EE/EEE abbreviated, EEEE full
//	G       era         AD/BC, formatting only
//	'...'   quoted literal text, '' is a literal single quote
//
// Any non-letter rune is literal. Letters for time-of-day or timezone
// fields (H, m, s, a, z, ...) compile but fail when used, since a calendar
// date has nothing to fill them with. Any other letter is rejected at
// compile time.
type Formatter struct {
	pattern   string
	tokens    []token
	timeField rune // first time-of-day/zone letter in the pattern, 0 if none

	hasYear  bool
	hasMonth bool
	hasDay   bool
}

type tokenKind int

const (
	tokLiteral tokenKind = iota
	tokYear              // count 2 is the reduced 2000-2099 window
	tokMonthNum
	tokMonthAbbr
	tokMonthFull
	tokDayNum
	tokWeekdayAbbr
	tokWeekdayFull
	tokEra
)

type token struct {
	kind  tokenKind
	count int    // pattern letter repetition, drives padding and digit width
	lit   string // tokLiteral only
}

// Letters java.time assigns to time-of-day or timezone fields. They form a
// valid pattern but can never be satisfied by a date-only value.
const timeFieldLetters = "aABhHkKmsSnNOvVxXzZ"

// CompilePattern compiles a pattern string into a reusable Formatter. A
// malformed pattern is reported as a *PatternError.
func CompilePattern(pattern string) (*Formatter, error) {
	if pattern == "" {
		return nil, patternErr(pattern, 0, "empty pattern")
	}
	f := &Formatter{pattern: pattern}
	rs := []rune(pattern)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case r == '\'':
			if i+1 < len(rs) && rs[i+1] == '\'' {
				f.literal("'")
				i += 2
				continue
			}
			j := i + 1
			var lit strings.Builder
			closed := false
			for j < len(rs) {
				if rs[j] == '\'' {
					if j+1 < len(rs) && rs[j+1] == '\'' {
						lit.WriteRune('\'')
						j += 2
						continue
					}
					closed = true
					j++
					break
				}
				lit.WriteRune(rs[j])
				j++
			}
			if !closed {
				return nil, patternErr(pattern, i, "unterminated quoted literal")
			}
			f.literal(lit.String())
			i = j
		case isPatternLetter(r):
			count := 1
			for i+count < len(rs) && rs[i+count] == r {
				count++
			}
			if strings.ContainsRune(timeFieldLetters, r) {
				if f.timeField == 0 {
					f.timeField = r
				}
			} else if err := f.field(r, count, i); err != nil {
				return nil, err
			}
			i += count
		default:
			f.literal(string(r))
			i++
		}
	}
	return f, nil
}

func isPatternLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func (f *Formatter) literal(s string) {
	if s == "" {
		return
	}
	if n := len(f.tokens); n > 0 && f.tokens[n-1].kind == tokLiteral {
		f.tokens[n-1].lit += s
		return
	}
	f.tokens = append(f.tokens, token{kind: tokLiteral, lit: s})
}

func (f *Formatter) field(letter rune, count, pos int) error {
	bad := func() error {
		return patternErr(f.pattern, pos, "too many pattern letters: %s", strings.Repeat(string(letter), count))
	}
	switch letter {
	case 'u', 'y':
		if count > 4 {
			return bad()
		}
		f.tokens = append(f.tokens, token{kind: tokYear, count: count})
		f.hasYear = true
	case 'M', 'L':
		switch count {
		case 1, 2:
			f.tokens = append(f.tokens, token{kind: tokMonthNum, count: count})
		case 3:
			f.tokens = append(f.tokens, token{kind: tokMonthAbbr, count: count})
		case 4:
			f.tokens = append(f.tokens, token{kind: tokMonthFull, count: count})
		default:
			return bad()
		}
		f.hasMonth = true
	case 'd':
		if count > 2 {
			return bad()
		}
		f.tokens = append(f.tokens, token{kind: tokDayNum, count: count})
		f.hasDay = true
	case 'E':
		switch {
		case count <= 3:
			f.tokens = append(f.tokens, token{kind: tokWeekdayAbbr, count: count})
		case count == 4:
			f.tokens = append(f.tokens, token{kind: tokWeekdayFull, count: count})
		default:
			return bad()
		}
	case 'G':
		if count > 3 {
			return bad()
		}
		f.tokens = append(f.tokens, token{kind: tokEra, count: count})
	default:
		return patternErr(f.pattern, pos, "unknown pattern letter %q", letter)
	}
	return nil
}

// Pattern returns the pattern string the Formatter was compiled from.
func (f *Formatter) Pattern() string { return f.pattern }

// Format renders a calendar date with the compiled pattern. A pattern that
// requests a time-of-day or timezone field yields a *FormatError.
func (f *Formatter) Format(d civil.Date) (string, error) {
	if f.timeField != 0 {
		return "", &FormatError{Pattern: f.pattern, Letter: f.timeField}
	}
	var b strings.Builder
	for _, t := range f.tokens {
		switch t.kind {
		case tokLiteral:
			b.WriteString(t.lit)
		case tokYear:
			if t.count == 2 {
				fmt.Fprintf(&b, "%02d", ((d.Year%100)+100)%100)
			} else {
				fmt.Fprintf(&b, "%0*d", t.count, d.Year)
			}
		case tokMonthNum:
			fmt.Fprintf(&b, "%0*d", t.count, int(d.Month))
		case tokMonthAbbr:
			b.WriteString(d.Month.String()[:3])
		case tokMonthFull:
			b.WriteString(d.Month.String())
		case tokDayNum:
			fmt.Fprintf(&b, "%0*d", t.count, d.Day)
		case tokWeekdayAbbr:
			b.WriteString(weekdayOf(d).String()[:3])
		case tokWeekdayFull:
			b.WriteString(weekdayOf(d).String())
		case tokEra:
			if d.Year <= 0 {
				b.WriteString("BC")
			} else {
				b.WriteString("AD")
			}
		}
	}
	return b.String(), nil
}

// Parse interprets text according to the compiled pattern and returns the
// calendar date it encodes. Failures are reported as a *ParseError. The
// pattern must capture a year, a month and a day; a weekday in the text is
// cross-checked against the resolved date.
func (f *Formatter) Parse(s string) (civil.Date, error) {
	fail := func(format string, args ...interface{}) (civil.Date, error) {
		return civil.Date{}, &ParseError{Input: s, Pattern: f.pattern, Err: errors.Errorf(format, args...)}
	}
	if f.timeField != 0 || !f.hasYear || !f.hasMonth || !f.hasDay {
		return fail("pattern does not describe a complete calendar date")
	}

	rest := s
	var (
		year, month, day int
		weekday          = time.Weekday(-1)
		eraBC            bool
		ok               bool
	)
	for _, t := range f.tokens {
		switch t.kind {
		case tokLiteral:
			if !strings.HasPrefix(rest, t.lit) {
				return fail("expected %q at %q", t.lit, rest)
			}
			rest = rest[len(t.lit):]
		case tokYear:
			width := 4
			if t.count == 2 {
				width = 2
			}
			if year, rest, ok = takeDigits(rest, t.count, width); !ok {
				return fail("expected a year at %q", rest)
			}
			if t.count == 2 {
				year += 2000
			}
		case tokMonthNum:
			if month, rest, ok = takeDigits(rest, t.count, 2); !ok {
				return fail("expected a month at %q", rest)
			}
		case tokMonthAbbr, tokMonthFull:
			var m time.Month
			if m, rest, ok = takeMonthName(rest, t.kind == tokMonthFull); !ok {
				return fail("expected a month name at %q", rest)
			}
			month = int(m)
		case tokDayNum:
			if day, rest, ok = takeDigits(rest, t.count, 2); !ok {
				return fail("expected a day at %q", rest)
			}
		case tokWeekdayAbbr, tokWeekdayFull:
			if weekday, rest, ok = takeWeekdayName(rest, t.kind == tokWeekdayFull); !ok {
				return fail("expected a weekday name at %q", rest)
			}
		case tokEra:
			switch {
			case hasFold(rest, "AD"):
				rest = rest[2:]
			case hasFold(rest, "BC"):
				eraBC = true
				rest = rest[2:]
			default:
				return fail("expected an era at %q", rest)
			}
		}
	}
	if rest != "" {
		return fail("unexpected trailing text %q", rest)
	}
	if eraBC {
		year = 1 - year
	}

	d := civil.Date{Year: year, Month: time.Month(month), Day: day}
	if !d.IsValid() {
		return fail("%04d-%02d-%02d is not a calendar date", year, month, day)
	}
	if weekday >= 0 && weekdayOf(d) != weekday {
		return fail("%s falls on a %s, not a %s", d, weekdayOf(d), weekday)
	}
	return d, nil
}

func weekdayOf(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

// takeDigits consumes between lo and hi leading digits.
func takeDigits(s string, lo, hi int) (int, string, bool) {
	n := 0
	v := 0
	for n < len(s) && n < hi && s[n] >= '0' && s[n] <= '9' {
		v = v*10 + int(s[n]-'0')
		n++
	}
	if n < lo {
		return 0, s, false
	}
	return v, s[n:], true
}

func takeMonthName(s string, full bool) (time.Month, string, bool) {
	for m := time.January; m <= time.December; m++ {
		name := m.String()
		if !full {
			name = name[:3]
		}
		if hasFold(s, name) {
			return m, s[len(name):], true
		}
	}
	return 0, s, false
}

func takeWeekdayName(s string, full bool) (time.Weekday, string, bool) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := wd.String()
		if !full {
			name = name[:3]
		}
		if hasFold(s, name) {
			return wd, s[len(name):], true
		}
	}
	return -1, s, false
}

func hasFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
