package file

import (
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/mapper"
)

// codec reads and writes a whole file of order sources.
type codec interface {
	decode(r io.Reader) ([]mapper.Source, error)
	encode(w io.Writer, src []mapper.Source) error
}

type csvCodec struct {
	headers []string
}

func (c csvCodec) decode(r io.Reader) ([]mapper.Source, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	if len(records) == 0 {
		return nil, nil
	}
	out := make([]mapper.Source, 0, len(records)-1)
	for _, rec := range records[1:] {
		out = append(out, mapper.Row(rec))
	}
	return out, nil
}

func (c csvCodec) encode(w io.Writer, src []mapper.Source) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(c.headers); err != nil {
		return errors.Wrap(err, "write header")
	}
	for _, s := range src {
		row, ok := s.(mapper.Row)
		if !ok {
			return errors.Errorf("csv: unexpected source %T", s)
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "write row")
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonCodec struct {
	keys []string
}

func (c jsonCodec) decode(r io.Reader) ([]mapper.Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read json")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	records, err := mapper.DecodeRecords(jx.DecodeBytes(data))
	if err != nil {
		return nil, errors.Wrap(err, "decode json")
	}
	out := make([]mapper.Source, len(records))
	for i, rec := range records {
		out[i] = rec
	}
	return out, nil
}

func (c jsonCodec) encode(w io.Writer, src []mapper.Source) error {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	e.ArrStart()
	for _, s := range src {
		rec, ok := s.(mapper.Record)
		if !ok {
			return errors.Errorf("json: unexpected source %T", s)
		}
		mapper.EncodeRecord(e, rec, c.keys)
	}
	e.ArrEnd()
	_, err := e.WriteTo(w)
	return err
}

type xmlField struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type xmlRow struct {
	Fields []xmlField `xml:",any"`
}

type xmlDocument struct {
	XMLName xml.Name `xml:"data"`
	Rows    []xmlRow `xml:"row"`
}

type xmlCodec struct {
	keys []string
}

func (c xmlCodec) decode(r io.Reader) ([]mapper.Source, error) {
	var doc xmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "decode xml")
	}
	out := make([]mapper.Source, len(doc.Rows))
	for i, row := range doc.Rows {
		rec := make(mapper.Record, len(row.Fields))
		for _, f := range row.Fields {
			rec[f.XMLName.Local] = f.Value
		}
		out[i] = rec
	}
	return out, nil
}

func (c xmlCodec) encode(w io.Writer, src []mapper.Source) error {
	doc := xmlDocument{Rows: make([]xmlRow, 0, len(src))}
	for _, s := range src {
		rec, ok := s.(mapper.Record)
		if !ok {
			return errors.Errorf("xml: unexpected source %T", s)
		}
		row := xmlRow{Fields: make([]xmlField, 0, len(c.keys))}
		for _, k := range c.keys {
			v, ok := rec[k]
			if !ok {
				continue
			}
			row.Fields = append(row.Fields, xmlField{XMLName: xml.Name{Local: k}, Value: fmt.Sprint(v)})
		}
		doc.Rows = append(doc.Rows, row)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "encode xml")
	}
	return enc.Close()
}
