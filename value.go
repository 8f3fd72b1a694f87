package facet

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the concrete shape of a Value.
type Kind string

const (
	KindText  Kind = "TEXT"
	KindRange Kind = "RANGE"
	KindSet   Kind = "SET"
	KindDate  Kind = "DATE"
)

// Value is the normalized value of one active filter.
// The concrete type is decided by the option's FilterType:
//
//	search, select, radio, unknown -> Text
//	range, number                  -> Range
//	checkbox, multiselect          -> Set
//	date                           -> Date
type Value interface {
	Kind() Kind
	String() string
	equal(other Value) bool
}

// Text is a scalar string value.
type Text string

func (v Text) Kind() Kind     { return KindText }
func (v Text) String() string { return string(v) }

func (v Text) equal(other Value) bool {
	o, ok := other.(Text)
	return ok && o == v
}

// Range is an inclusive numeric interval with Min <= Max.
// An undeclared bound is open and represented by an infinity.
type Range struct {
	Min float64
	Max float64
}

func (v Range) Kind() Kind { return KindRange }

func (v Range) String() string {
	return formatBound(v.Min) + "," + formatBound(v.Max)
}

func (v Range) equal(other Value) bool {
	o, ok := other.(Range)
	return ok && o.Min == v.Min && o.Max == v.Max
}

// Contains reports whether n lies within the range, bounds included.
func (v Range) Contains(n float64) bool {
	return v.Min <= n && n <= v.Max
}

func (v Range) HasMin() bool { return !math.IsInf(v.Min, -1) }
func (v Range) HasMax() bool { return !math.IsInf(v.Max, 1) }

func formatBound(f float64) string {
	if math.IsInf(f, 0) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Set is a deduplicated, sorted list of chosen values.
type Set []string

func (v Set) Kind() Kind     { return KindSet }
func (v Set) String() string { return strings.Join(v, ",") }

func (v Set) equal(other Value) bool {
	o, ok := other.(Set)
	return ok && slices.Equal(o, v)
}

// Has reports whether s is a member of the set, ignoring case.
func (v Set) Has(s string) bool {
	return slices.ContainsFunc(v, func(item string) bool {
		return equalFold(item, s)
	})
}

// DateLayout is the wire and comparison format of dates.
const DateLayout = "2006-01-02"

// Date is a calendar day (From == To) or an inclusive span of days.
// Both ends are midnight UTC.
type Date struct {
	From time.Time
	To   time.Time
}

// Day returns a single-day Date.
func Day(t time.Time) Date {
	d := truncateDay(t)
	return Date{From: d, To: d}
}

// DateSpan returns an inclusive Date span, swapping the ends when needed.
func DateSpan(from, to time.Time) Date {
	f, t := truncateDay(from), truncateDay(to)
	if t.Before(f) {
		f, t = t, f
	}
	return Date{From: f, To: t}
}

func (v Date) Kind() Kind { return KindDate }

func (v Date) IsSpan() bool { return !v.From.Equal(v.To) }

func (v Date) String() string {
	if v.IsSpan() {
		return v.From.Format(DateLayout) + "," + v.To.Format(DateLayout)
	}
	return v.From.Format(DateLayout)
}

func (v Date) equal(other Value) bool {
	o, ok := other.(Date)
	return ok && o.From.Equal(v.From) && o.To.Equal(v.To)
}

// Contains reports whether t falls on one of the days of v.
func (v Date) Contains(t time.Time) bool {
	d := truncateDay(t)
	return !d.Before(v.From) && !d.After(v.To)
}

// truncateDay keeps the calendar day of t in its own location.
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EqualValue compares two values structurally.
func EqualValue(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.equal(b)
}
