package mapper

import (
	"fmt"
	"maps"
	"slices"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// DecodeRequest decodes a JSON request body into a Record.
func DecodeRequest(data []byte) (Record, error) {
	return DecodeRecord(jx.DecodeBytes(data))
}

// DecodeRecord reads one JSON object. Numbers decode to decimal.Decimal so
// no precision is lost before the mapper checks them.
func DecodeRecord(d *jx.Decoder) (Record, error) {
	rec := Record{}
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		v, err := decodeValue(d)
		if err != nil {
			return errors.Wrapf(err, "decode %q", key)
		}
		rec[key] = v
		return nil
	}); err != nil {
		return nil, err
	}
	return rec, nil
}

// DecodeRecords reads a JSON array of objects.
func DecodeRecords(d *jx.Decoder) ([]Record, error) {
	var out []Record
	if err := d.Arr(func(d *jx.Decoder) error {
		rec, err := DecodeRecord(d)
		if err != nil {
			return errors.Wrapf(err, "element %d", len(out))
		}
		out = append(out, rec)
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeValue(d *jx.Decoder) (any, error) {
	switch d.Next() {
	case jx.String:
		return d.Str()
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return nil, err
		}
		return decimal.NewFromString(n.String())
	case jx.Bool:
		return d.Bool()
	case jx.Null:
		return nil, d.Null()
	case jx.Object:
		return DecodeRecord(d)
	case jx.Array:
		var out []any
		err := d.Arr(func(d *jx.Decoder) error {
			v, err := decodeValue(d)
			out = append(out, v)
			return err
		})
		return out, err
	default:
		return nil, errors.New("unexpected json value")
	}
}

// EncodeRecord writes rec as a JSON object. Keys listed in order come first,
// the rest follow sorted.
func EncodeRecord(e *jx.Encoder, rec Record, order []string) {
	e.ObjStart()
	seen := make(map[string]struct{}, len(order))
	for _, k := range order {
		v, ok := rec[k]
		if !ok {
			continue
		}
		seen[k] = struct{}{}
		e.FieldStart(k)
		encodeValue(e, v)
	}
	for _, k := range slices.Sorted(maps.Keys(rec)) {
		if _, ok := seen[k]; ok {
			continue
		}
		e.FieldStart(k)
		encodeValue(e, rec[k])
	}
	e.ObjEnd()
}

func encodeValue(e *jx.Encoder, v any) {
	switch t := v.(type) {
	case nil:
		e.Null()
	case string:
		e.Str(t)
	case bool:
		e.Bool(t)
	case int:
		e.Int(t)
	case int64:
		e.Int64(t)
	case float64:
		e.Float64(t)
	case decimal.Decimal:
		e.Num(jx.Num(t.String()))
	case Record:
		EncodeRecord(e, t, nil)
	case map[string]any:
		EncodeRecord(e, t, nil)
	case []any:
		e.ArrStart()
		for _, el := range t {
			encodeValue(e, el)
		}
		e.ArrEnd()
	default:
		e.Str(fmt.Sprint(t))
	}
}
