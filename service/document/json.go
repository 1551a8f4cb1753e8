package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const indent = "  "

var utf8BOM = []byte("\xef\xbb\xbf")

// jsonObject keeps keys in the order they first appeared. A repeated key keeps
// its first position and takes the last value.
type jsonObject struct {
	keys   []string
	values map[string]any
}

func newJSONObject() *jsonObject {
	return &jsonObject{values: map[string]any{}}
}

func (o *jsonObject) get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *jsonObject) set(key string, v any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

type jsonDocument struct {
	root         *jsonObject
	finalNewline bool
}

func parseJSON(data []byte, opts Options) (*jsonDocument, error) {
	dec := json.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected %v after top-level value", tok)
	}

	root, ok := v.(*jsonObject)
	if !ok {
		return nil, fmt.Errorf("%w: top-level value is %s", ErrNotMapping, jsonKind(v))
	}
	return &jsonDocument{root: root, finalNewline: opts.FinalNewline}, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := newJSONObject()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("invalid object key %v", keyTok)
			}
			val, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}
			obj.set(key, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			val, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", rune(delim))
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case *jsonObject:
		return "an object"
	case []any:
		return "an array"
	case string:
		return "a string"
	case json.Number:
		return "a number"
	case bool:
		return "a boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func (d *jsonDocument) Lookup(path []string) (any, bool) {
	var cur any = d.root
	for _, key := range path {
		obj, ok := cur.(*jsonObject)
		if !ok {
			return nil, false
		}
		if cur, ok = obj.get(key); !ok {
			return nil, false
		}
	}
	return cur, true
}

func (d *jsonDocument) SetString(path []string, value string) error {
	if len(path) == 0 {
		return errors.New("empty field path")
	}
	obj := d.root
	for i, key := range path[:len(path)-1] {
		next, ok := obj.get(key)
		if !ok {
			child := newJSONObject()
			obj.set(key, child)
			obj = child
			continue
		}
		child, ok := next.(*jsonObject)
		if !ok {
			return fmt.Errorf("%w: %q is %s", ErrNotMapping, joinPath(path[:i+1]), jsonKind(next))
		}
		obj = child
	}
	obj.set(path[len(path)-1], value)
	return nil
}

// Encode writes the layout JSON.stringify(value, null, 2) produces.
func (d *jsonDocument) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSONValue(&buf, d.root, 0); err != nil {
		return nil, err
	}
	if d.finalNewline {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func writeJSONValue(buf *bytes.Buffer, v any, depth int) error {
	switch t := v.(type) {
	case *jsonObject:
		if len(t.keys) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		for i, key := range t.keys {
			buf.WriteString(strings.Repeat(indent, depth+1))
			if err := writeJSONString(buf, key); err != nil {
				return err
			}
			buf.WriteString(": ")
			if err := writeJSONValue(buf, t.values[key], depth+1); err != nil {
				return err
			}
			if i < len(t.keys)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.Repeat(indent, depth))
		buf.WriteByte('}')
	case []any:
		if len(t) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, item := range t {
			buf.WriteString(strings.Repeat(indent, depth+1))
			if err := writeJSONValue(buf, item, depth+1); err != nil {
				return err
			}
			if i < len(t)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.Repeat(indent, depth))
		buf.WriteByte(']')
	case string:
		return writeJSONString(buf, t)
	case json.Number:
		buf.WriteString(t.String())
	case bool:
		buf.WriteString(strconv.FormatBool(t))
	case nil:
		buf.WriteString("null")
	default:
		return fmt.Errorf("unsupported JSON value %T", v)
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
