package recipe

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Placeholders returned when a field yields nothing usable.
const (
	PlaceholderIngredients  = "Ingredients not specified"
	PlaceholderInstructions = "No instructions available"
)

// instructionBreaks splits free-text method blocks on "1." style numbering,
// dash or bullet lines and "1)" lines.
var instructionBreaks = regexp.MustCompile(`\d+\.|\n-|\n•|\n\d+\)`)

// maxDepth bounds how many times a JSON string may unwrap into another
// JSON string.
const maxDepth = 4

// NormalizeIngredients turns a raw ingredients field of unknown shape into an
// ordered, non-empty list of strings. It never fails.
func NormalizeIngredients(raw any) []string {
	return normalizeField(raw, splitIngredients, PlaceholderIngredients)
}

// NormalizeInstructions turns a raw instructions field of unknown shape into
// an ordered, non-empty list of steps. It never fails.
func NormalizeInstructions(raw any) []string {
	return normalizeField(raw, splitInstructions, PlaceholderInstructions)
}

type splitFunc func(string) []string

func normalizeField(raw any, split splitFunc, placeholder string) []string {
	out := flatten(raw, split, 0)
	if len(out) == 0 {
		return []string{placeholder}
	}
	return out
}

func flatten(raw any, split splitFunc, depth int) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		return fromText(v, split, depth)
	case json.RawMessage:
		return fromJSON(v, split, depth)
	case []byte:
		return fromText(string(v), split, depth)
	case []string:
		return clean(v)
	case []any:
		return listValues(v)
	case object:
		return listValues(v.values())
	case map[string]any:
		return listValues(mapValues(v))
	default:
		return fromText(fmt.Sprint(v), split, depth)
	}
}

// fromJSON handles a field that was left undecoded inside a larger document.
func fromJSON(data json.RawMessage, split splitFunc, depth int) []string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil
		}
		return fromText(s, split, depth)
	}
	return fromText(string(trimmed), split, depth)
}

func fromText(s string, split splitFunc, depth int) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if depth >= maxDepth {
		return split(s)
	}

	parsed, err := decodeOrdered(s)
	if err != nil {
		return split(s)
	}
	switch v := parsed.(type) {
	case []any:
		return listValues(v)
	case object:
		return listValues(v.values())
	case string:
		// Double-encoded field.
		return fromText(v, split, depth+1)
	case nil:
		return nil
	default:
		return split(s)
	}
}

func splitIngredients(s string) []string {
	return clean(strings.Split(s, ","))
}

func splitInstructions(s string) []string {
	return clean(instructionBreaks.Split(s, -1))
}

func clean(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// listValues stringifies each element. Nulls are dropped, nested
// structures render as compact JSON.
func listValues(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := stringify(item)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func stringify(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	case []any, object, map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return "", false
		}
		return string(b), true
	default:
		return fmt.Sprint(t), true
	}
}

// mapValues enumerates a Go map the way a JSON object literal would be
// enumerated: integer-like keys ascending, then the rest in key order.
func mapValues(m map[string]any) []any {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, errI := strconv.ParseUint(keys[i], 10, 32)
		nj, errJ := strconv.ParseUint(keys[j], 10, 32)
		switch {
		case errI == nil && errJ == nil:
			return ni < nj
		case errI == nil:
			return true
		case errJ == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = m[k]
	}
	return out
}

// ── Ordered JSON ─────────────────────────────────────────────────

type member struct {
	Key   string
	Value any
}

// object is a decoded JSON object that remembers member order.
type object []member

func (o object) values() []any {
	out := make([]any, len(o))
	for i, m := range o {
		out[i] = m.Value
	}
	return out
}

// MarshalJSON implements json.Marshaler, keeping member order.
func (o object) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

var errTrailingData = errors.New("trailing data after JSON value")

// decodeOrdered parses a complete JSON document, preserving object member
// order. Numbers decode as json.Number.
func decodeOrdered(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errTrailingData
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '[':
		arr := []any{}
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	case '{':
		obj := object{}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("object key is %T", kt)
			}
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj = append(obj, member{Key: key, Value: v})
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}
