// Package export writes record sets to CSV, JSON, XML and YAML files. Field
// order follows the record catalog so every format lists columns the same
// way.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pable/go-lol-matches/internal/descriptor"
	"github.com/pable/go-lol-matches/internal/model"
)

var (
	// ErrNoRecords is returned by the CSV, XML and YAML writers for an empty set.
	ErrNoRecords = errors.New("no records to export")
	// ErrUnknownFormat is returned for an unsupported format name.
	ErrUnknownFormat = errors.New("unknown export format")
)

// Format is an output file format.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	XML  Format = "xml"
	YAML Format = "yaml"
)

// Formats lists the supported formats in menu order.
var Formats = []Format{CSV, JSON, XML, YAML}

// ParseFormat resolves a format name case-insensitively. "yml" is accepted.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, JSON, XML, YAML:
		return f, nil
	case "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// AllDataName is the base file name used when no filter is active.
const AllDataName = "all_data"

// FileName builds the output file name from the active filter history.
func FileName(history []string, f Format) string {
	base := AllDataName
	if len(history) > 0 {
		base = strings.Join(history, "_")
	}
	base = strings.NewReplacer("/", "-", `\`, "-").Replace(base)
	return base + "." + string(f)
}

// Save writes records into dir under the name derived from history and
// returns the written path. dir is created on demand.
func Save(dir string, history []string, f Format, records []model.Record) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, records); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, FileName(history, f))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", f, err)
	}
	return path, nil
}

// Write encodes records to w in format f.
func Write(w io.Writer, f Format, records []model.Record) error {
	switch f {
	case CSV:
		return WriteCSV(w, records)
	case JSON:
		return WriteJSON(w, records)
	case XML:
		return WriteXML(w, records)
	case YAML:
		return WriteYAML(w, records)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// WriteCSV writes a header row from the first record's keys and one row per
// record. List values are JSON-encoded; missing fields are empty cells.
func WriteCSV(w io.Writer, records []model.Record) error {
	if len(records) == 0 {
		return ErrNoRecords
	}
	header := records[0].Keys()
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		row := make([]string, len(header))
		for i, k := range header {
			v, ok := r[k]
			if !ok {
				continue
			}
			cell, err := csvCell(v)
			if err != nil {
				return fmt.Errorf("encode %s: %w", k, err)
			}
			row[i] = cell
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvCell(v any) (string, error) {
	if _, isList := model.ListLen(v); isList {
		b, err := marshalNoEscape(v)
		return string(b), err
	}
	if v == nil {
		return "", nil
	}
	return descriptor.FormatValue(v), nil
}

// orderedRecord marshals a record with catalog-ordered keys.
type orderedRecord model.Record

func (r orderedRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range model.Record(r).Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(k)
		if err != nil {
			return nil, err
		}
		val, err := marshalNoEscape(r[k])
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WriteJSON writes records as a JSON array with 4-space indentation. An empty
// set is written as [].
func WriteJSON(w io.Writer, records []model.Record) error {
	out := make([]orderedRecord, len(records))
	for i, r := range records {
		out[i] = orderedRecord(r)
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteXML writes <games><game><field>value</field>...</game></games>. List
// values become <item> children; pair lists nest a second <item> level.
func WriteXML(w io.Writer, records []model.Record) error {
	if len(records) == 0 {
		return ErrNoRecords
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	games := xml.StartElement{Name: xml.Name{Local: "games"}}
	game := xml.StartElement{Name: xml.Name{Local: "game"}}
	if err := enc.EncodeToken(games); err != nil {
		return err
	}
	for _, r := range records {
		if err := enc.EncodeToken(game); err != nil {
			return err
		}
		for _, k := range r.Keys() {
			if err := encodeXMLValue(enc, k, r[k]); err != nil {
				return fmt.Errorf("encode %s: %w", k, err)
			}
		}
		if err := enc.EncodeToken(game.End()); err != nil {
			return err
		}
	}
	if err := enc.EncodeToken(games.End()); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func encodeXMLValue(enc *xml.Encoder, name string, v any) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if items, ok := listItems(v); ok {
		for _, it := range items {
			if err := encodeXMLValue(enc, "item", it); err != nil {
				return err
			}
		}
	} else if v != nil {
		if err := enc.EncodeToken(xml.CharData(descriptor.FormatValue(v))); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// listItems flattens one level of a list value into its elements.
func listItems(v any) ([]any, bool) {
	switch x := v.(type) {
	case []int:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out, true
	case []string:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out, true
	case [][]int:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out, true
	case [][]string:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out, true
	case []any:
		return x, true
	}
	return nil, false
}

// WriteYAML writes a document with a single "games" key holding a sequence of
// mappings in catalog order.
func WriteYAML(w io.Writer, records []model.Record) error {
	if len(records) == 0 {
		return ErrNoRecords
	}
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, r := range records {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range r.Keys() {
			m.Content = append(m.Content, scalarNode("!!str", k), yamlValue(r[k]))
		}
		seq.Content = append(seq.Content, m)
	}
	doc := &yaml.Node{
		Kind: yaml.DocumentNode,
		Content: []*yaml.Node{{
			Kind:    yaml.MappingNode,
			Content: []*yaml.Node{scalarNode("!!str", "games"), seq},
		}},
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func yamlValue(v any) *yaml.Node {
	if items, ok := listItems(v); ok {
		n := &yaml.Node{Kind: yaml.SequenceNode}
		if len(items) == 0 {
			n.Style = yaml.FlowStyle
		}
		for _, it := range items {
			n.Content = append(n.Content, yamlValue(it))
		}
		return n
	}
	switch x := v.(type) {
	case nil:
		return scalarNode("!!null", "null")
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(x))
	case int:
		return scalarNode("!!int", strconv.Itoa(x))
	case float64:
		return scalarNode("!!float", strconv.FormatFloat(x, 'g', -1, 64))
	case string:
		return scalarNode("!!str", x)
	}
	return scalarNode("!!str", fmt.Sprint(v))
}
