package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ═══════════════════════════════════════════════════════════
// Characteristic values
// ═══════════════════════════════════════════════════════════

// ValueKind tags what a characteristic value holds
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
)

// CharacteristicValue is a tagged string | number. Null is kept so a stored
// `"grade": null` round-trips, but it never contributes to facets or filters.
type CharacteristicValue struct {
	Kind ValueKind
	Str  string
	Num  float64
}

func StringValue(s string) CharacteristicValue {
	return CharacteristicValue{Kind: KindString, Str: s}
}

func NumberValue(n float64) CharacteristicValue {
	return CharacteristicValue{Kind: KindNumber, Num: n}
}

// IsEmpty reports whether the value is null or an empty string
func (v CharacteristicValue) IsEmpty() bool {
	switch v.Kind {
	case KindString:
		return v.Str == ""
	case KindNumber:
		return false
	default:
		return true
	}
}

// String renders the value the way it is compared against filter selections.
// Numbers use the shortest representation (24 → "24", 2.5 → "2.5").
func (v CharacteristicValue) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return formatNumber(v.Num)
	default:
		return ""
	}
}

func formatNumber(n float64) string {
	if math.IsNaN(n) {
		return "NaN"
	}
	if math.IsInf(n, 0) {
		if n > 0 {
			return "Infinity"
		}
		return "-Infinity"
	}
	abs := math.Abs(n)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func (v CharacteristicValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindNumber:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return []byte("null"), nil
		}
		return []byte(formatNumber(v.Num)), nil
	default:
		return []byte("null"), nil
	}
}

func (v *CharacteristicValue) UnmarshalJSON(data []byte) error {
	val, err := parseValue(data)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

// parseValue converts one raw JSON value. Booleans and nested structures are
// kept as their compact JSON text.
func parseValue(raw []byte) (CharacteristicValue, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return CharacteristicValue{}, errors.New("empty characteristic value")
	}
	switch raw[0] {
	case 'n':
		return CharacteristicValue{}, nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return CharacteristicValue{}, err
		}
		return StringValue(s), nil
	case 't', 'f':
		return StringValue(string(raw)), nil
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return CharacteristicValue{}, err
		}
		return StringValue(buf.String()), nil
	default:
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return CharacteristicValue{}, fmt.Errorf("invalid characteristic number %s", raw)
		}
		return NumberValue(f), nil
	}
}

// ═══════════════════════════════════════════════════════════
// Characteristics (ordered key → value bag)
// ═══════════════════════════════════════════════════════════

type Characteristic struct {
	Key   string
	Value CharacteristicValue
}

// Characteristics is an open-ended attribute bag. Keys are data, not fields,
// and keep the order they were written in.
type Characteristics []Characteristic

// Get returns the value stored under key
func (c Characteristics) Get(key string) (CharacteristicValue, bool) {
	for _, ch := range c {
		if ch.Key == key {
			return ch.Value, true
		}
	}
	return CharacteristicValue{}, false
}

// Set replaces the value for key in place, or appends it
func (c *Characteristics) Set(key string, value CharacteristicValue) {
	for i := range *c {
		if (*c)[i].Key == key {
			(*c)[i].Value = value
			return
		}
	}
	*c = append(*c, Characteristic{Key: key, Value: value})
}

func (c Characteristics) Keys() []string {
	keys := make([]string, 0, len(c))
	for _, ch := range c {
		keys = append(keys, ch.Key)
	}
	return keys
}

func (c Characteristics) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ch := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(ch.Key)
		if err != nil {
			return nil, err
		}
		val, err := ch.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *Characteristics) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*c = Characteristics{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("characteristics must be a JSON object")
	}

	out := Characteristics{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected characteristic key %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		val, err := parseValue(raw)
		if err != nil {
			return fmt.Errorf("characteristic %q: %w", key, err)
		}
		out.Set(key, val)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*c = out
	return nil
}

// Scan implements sql.Scanner for the jsonb column
func (c *Characteristics) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = Characteristics{}
		return nil
	case []byte:
		if len(v) == 0 {
			*c = Characteristics{}
			return nil
		}
		return c.UnmarshalJSON(v)
	case string:
		if v == "" {
			*c = Characteristics{}
			return nil
		}
		return c.UnmarshalJSON([]byte(v))
	default:
		return errors.New("failed to scan Characteristics")
	}
}

// Value implements driver.Valuer; stored as a string so both the postgres
// jsonb and sqlite text columns accept it.
func (c Characteristics) Value() (driver.Value, error) {
	if c == nil {
		return "{}", nil
	}
	b, err := c.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
