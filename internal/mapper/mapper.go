// Package mapper converts between raw storage shapes and domain objects.
//
// File formats hand mappers a Source: a Row for CSV lines or a Record for
// JSON objects and XML rows. Mappers type-check every field before building
// the domain object, so a malformed input never produces a partial value.
package mapper

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/faults"
)

// Mapper converts raw values of type R to domain values of type T and back.
type Mapper[R, T any] interface {
	Map(raw R) (T, error)
	ReverseMap(v T) (R, error)
}

// Source is a raw file representation: either a Row or a Record.
type Source interface {
	source()
}

// Row is a positional record. Position 0 holds the record id.
type Row []string

// Record is a keyed record.
type Record map[string]any

func (Row) source()    {}
func (Record) source() {}

// Layout selects the key and value conventions of a file format.
type Layout int

const (
	// LayoutCSV produces Rows.
	LayoutCSV Layout = iota
	// LayoutJSON produces Records keyed by headers with native values.
	LayoutJSON
	// LayoutXML produces Records keyed by space-free headers with string values.
	LayoutXML
)

func (l Layout) String() string {
	switch l {
	case LayoutCSV:
		return "csv"
	case LayoutJSON:
		return "json"
	case LayoutXML:
		return "xml"
	default:
		return "layout(" + strconv.Itoa(int(l)) + ")"
	}
}

// key returns the record key for header under layout l.
func (l Layout) key(header string) string {
	if l == LayoutXML {
		return xmlName(header)
	}
	return header
}

func xmlName(header string) string {
	return strings.ReplaceAll(header, " ", "")
}

// lookup finds header in r, accepting both the spaced and space-free spelling.
func (r Record) lookup(header string) (any, error) {
	if v, ok := r[header]; ok {
		return v, nil
	}
	if v, ok := r[xmlName(header)]; ok {
		return v, nil
	}
	return nil, &faults.MissingFieldError{Field: header}
}

func asString(field string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &faults.InvalidFieldTypeError{Field: field, Value: v}
	}
	return s, nil
}

func asInt(field string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		if n >= math.MinInt && n <= math.MaxInt {
			return int(n), nil
		}
	case float64:
		if n == math.Trunc(n) && n >= math.MinInt && n < math.MaxInt {
			return int(n), nil
		}
	case decimal.Decimal:
		if n.IsInteger() {
			if b := n.BigInt(); b.IsInt64() && b.Int64() >= math.MinInt && b.Int64() <= math.MaxInt {
				return int(b.Int64()), nil
			}
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, nil
		}
	}
	return 0, &faults.InvalidFieldTypeError{Field: field, Value: v}
}

func asBool(field string, v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes":
			return true, nil
		case "false", "no":
			return false, nil
		}
	}
	return false, &faults.InvalidFieldTypeError{Field: field, Value: v}
}

func asDecimal(field string, v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case float64:
		return decimal.NewFromFloat(n), nil
	case string:
		if d, err := decimal.NewFromString(strings.TrimSpace(n)); err == nil {
			return d, nil
		}
	}
	return decimal.Zero, &faults.InvalidFieldTypeError{Field: field, Value: v}
}

// asID accepts a string or an integral number.
func asID(field string, v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	i, err := asInt(field, v)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(i), nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
