package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/iancoleman/orderedmap"

	"github.com/ajxudir/versioncheck/pkg/constants"
	"github.com/ajxudir/versioncheck/pkg/report"
)

// jsonIndent is the indentation of the machine report.
const jsonIndent = "    "

// WriteMachine writes the report as a JSON object keyed by package name.
//
// Packages keep report order. Each package object has the keys state,
// versions and (when not empty) required_by, in that order.
//
// Parameters:
//   - w: Destination for the JSON document
//   - stderr: Destination for the "Report for machines" header
//   - r: The report to render
//
// Returns:
//   - error: When encoding or a write fails
func WriteMachine(w, stderr io.Writer, r *report.Report) error {
	if _, err := fmt.Fprintf(stderr, "\n%s\n\n", constants.HeaderMachine); err != nil {
		return err
	}

	data, err := marshalJSON(reportMap(r))
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// reportMap converts a report into nested ordered maps.
func reportMap(r *report.Report) *orderedmap.OrderedMap {
	root := orderedmap.New()
	for _, e := range r.Entries() {
		pkg := orderedmap.New()
		pkg.Set("state", e.Record.State.String())

		versions := make([]interface{}, 0, len(e.Record.Versions))
		for _, v := range e.Record.Versions {
			version := orderedmap.New()
			version.Set("version", v.Version)
			version.Set("state", v.State.String())
			version.Set("description", v.Description)
			versions = append(versions, version)
		}
		pkg.Set("versions", versions)

		if len(e.Record.RequiredBy) > 0 {
			pkg.Set("required_by", append([]string(nil), e.Record.RequiredBy...))
		}
		root.Set(e.Name, pkg)
	}
	return root
}

// marshalJSON marshals data as indented JSON without HTML escaping.
//
// Parameters:
//   - data: The data to marshal, typically an *orderedmap.OrderedMap
//
// Returns:
//   - []byte: JSON bytes without the trailing newline
//   - error: Returns error if encoding fails
func marshalJSON(data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if ordered, ok := data.(*orderedmap.OrderedMap); ok {
		disableOrderedMapEscape(ordered)
	}
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", jsonIndent)
	if err := encoder.Encode(data); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// disableOrderedMapEscape recursively disables HTML escaping for an ordered map
// and all nested maps.
func disableOrderedMapEscape(m *orderedmap.OrderedMap) {
	m.SetEscapeHTML(false)
	for _, key := range m.Keys() {
		val, _ := m.Get(key)
		m.Set(key, normalizeOrderedMapEscaping(val))
	}
}

// normalizeOrderedMapEscaping disables HTML escaping on every ordered map
// reachable from val.
func normalizeOrderedMapEscaping(val interface{}) interface{} {
	switch v := val.(type) {
	case *orderedmap.OrderedMap:
		disableOrderedMapEscape(v)
		return v
	case []interface{}:
		for i, item := range v {
			v[i] = normalizeOrderedMapEscaping(item)
		}
		return v
	default:
		return val
	}
}
