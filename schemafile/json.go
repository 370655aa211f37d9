package schemafile

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// readJSON decodes a single JSON document. Numbers are decoded exactly and
// then normalized to int64 when integral, float64 otherwise, so JSON and YAML
// documents yield the same values.
func readJSON(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	if err := checkJSONDuplicates(data); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("schemafile: trailing data after JSON document")
	}
	return normalizeJSON(v)
}

type jsonFrame struct {
	object       bool
	expectingKey bool
	keys         map[string][2]int
}

// checkJSONDuplicates walks the token stream and fails on the first key
// repeated within one object. Syntax errors are left to the decoder.
func checkJSONDuplicates(data []byte) error {
	dec := stdjson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var stack []jsonFrame

	// valueDone marks the value of the enclosing object's current key as read.
	valueDone := func() {
		if n := len(stack); n > 0 && stack[n-1].object {
			stack[n-1].expectingKey = true
		}
	}

	for {
		start := dec.InputOffset()
		tok, err := dec.Token()
		if err != nil {
			return nil
		}
		switch v := tok.(type) {
		case stdjson.Delim:
			switch v {
			case '{':
				stack = append(stack, jsonFrame{object: true, expectingKey: true, keys: map[string][2]int{}})
			case '[':
				stack = append(stack, jsonFrame{})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				valueDone()
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].expectingKey {
				top := &stack[n-1]
				line, col := position(data, keyOffset(data, start))
				if first, dup := top.keys[v]; dup {
					return &DuplicateKeyError{Key: v, FirstLine: first[0], FirstCol: first[1], Line: line, Col: col}
				}
				top.keys[v] = [2]int{line, col}
				top.expectingKey = false
				continue
			}
			valueDone()
		default:
			valueDone()
		}
	}
}

// keyOffset skips the separator and whitespace the decoder has not consumed
// yet when a key token starts at off.
func keyOffset(data []byte, off int64) int {
	i := int(off)
	for i < len(data) && bytes.IndexByte([]byte(" \t\r\n,{"), data[i]) >= 0 {
		i++
	}
	return i
}

func position(data []byte, off int) (line, col int) {
	if off > len(data) {
		off = len(data)
	}
	prefix := data[:off]
	line = bytes.Count(prefix, []byte{'\n'}) + 1
	col = off - bytes.LastIndexByte(prefix, '\n')
	return line, col
}

func normalizeJSON(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			n, err := normalizeJSON(e)
			if err != nil {
				return nil, err
			}
			t[k] = n
		}
		return t, nil
	case []any:
		for i, e := range t {
			n, err := normalizeJSON(e)
			if err != nil {
				return nil, err
			}
			t[i] = n
		}
		return t, nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("schemafile: number %s: %w", t, err)
		}
		return f, nil
	}
	return v, nil
}
