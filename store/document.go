package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ErrNotObject is returned when a request body is not a JSON object.
var ErrNotObject = errors.New("document must be a JSON object")

// Document is a schema-less record. Field order is kept from the request
// body through the database and back out to the response.
type Document bson.D

// MarshalBSON implements bson.Marshaler.
func (d Document) MarshalBSON() ([]byte, error) {
	if d == nil {
		return bson.Marshal(bson.D{})
	}
	return bson.Marshal(bson.D(d))
}

// UnmarshalBSON implements bson.Unmarshaler.
func (d *Document) UnmarshalBSON(data []byte) error {
	var raw bson.D
	if err := bson.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = Document(raw)
	return nil
}

// UnmarshalJSON parses relaxed extended JSON, so integers keep an integer
// type in the database instead of becoming doubles.
func (d *Document) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ErrNotObject
	}
	var raw bson.D
	if err := bson.UnmarshalExtJSON(trimmed, false, &raw); err != nil {
		return fmt.Errorf("parse document: %w", err)
	}
	*d = Document(raw)
	return nil
}

// MarshalJSON renders the document as a plain JSON object in field order.
// ObjectIDs become hex strings and datetimes RFC 3339 strings.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDocument(&buf, bson.D(d)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ID returns the hex form of the document's _id, or "" when it has none.
func (d Document) ID() string {
	v, ok := d.Lookup("_id")
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case bson.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}

// Lookup walks embedded documents along path.
func (d Document) Lookup(path ...string) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}
	var cur any = bson.D(d)
	for _, key := range path {
		next, ok := field(cur, key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// String returns the string at path, or "" when it is missing or not a string.
func (d Document) String(path ...string) string {
	v, ok := d.Lookup(path...)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Without returns a copy of d with every top-level key in keys removed.
func (d Document) Without(keys ...string) Document {
	out := make(Document, 0, len(d))
	for _, e := range d {
		drop := false
		for _, k := range keys {
			if e.Key == k {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, e)
		}
	}
	return out
}

func field(container any, key string) (any, bool) {
	switch c := container.(type) {
	case bson.D:
		for _, e := range c {
			if e.Key == key {
				return e.Value, true
			}
		}
	case Document:
		return field(bson.D(c), key)
	case bson.M:
		v, ok := c[key]
		return v, ok
	case map[string]any:
		v, ok := c[key]
		return v, ok
	}
	return nil, false
}

func writeDocument(buf *bytes.Buffer, d bson.D) error {
	buf.WriteByte('{')
	for i, e := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKeyValue(buf, e.Key, e.Value); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeMap(buf *bytes.Buffer, m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKeyValue(buf, k, m[k]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeKeyValue(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	return writeValue(buf, value)
}

func writeArray(buf *bytes.Buffer, a []any) error {
	buf.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeValue(buf, v); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func writeValue(buf *bytes.Buffer, value any) error {
	switch v := value.(type) {
	case bson.D:
		return writeDocument(buf, v)
	case Document:
		return writeDocument(buf, bson.D(v))
	case bson.M:
		return writeMap(buf, v)
	case map[string]any:
		return writeMap(buf, v)
	case bson.A:
		return writeArray(buf, v)
	case []any:
		return writeArray(buf, v)
	case bson.ObjectID:
		value = v.Hex()
	case bson.DateTime:
		value = v.Time().UTC().Format(time.RFC3339Nano)
	case bson.Decimal128:
		value = v.String()
	}
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %T: %w", value, err)
	}
	buf.Write(b)
	return nil
}
