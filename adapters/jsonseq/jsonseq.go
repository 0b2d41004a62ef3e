// Package jsonseq converts between JSON arrays and sequences of raw JSON
// values, so that any element type can be shuffled without decoding it.
package jsonseq

import (
	"bytes"
	"strings"

	"goshuffle/internal/errors"

	"github.com/tidwall/gjson"
)

// Parse returns the raw JSON of each element of the array in data.
func Parse(data []byte) ([]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.InvalidInput("items must be valid JSON")
	}
	res := gjson.ParseBytes(data)
	if !res.IsArray() {
		return nil, errors.InvalidInput("items must be a JSON array")
	}
	return Raw(res), nil
}

// Field returns the raw elements of the array at path in data.
func Field(data []byte, path string) ([]string, error) {
	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return nil, errors.InvalidInput(path + " is required")
	}
	if !res.IsArray() {
		return nil, errors.InvalidInput(path + " must be a JSON array")
	}
	return Raw(res), nil
}

// Raw returns the raw JSON of each element of an array result.
func Raw(res gjson.Result) []string {
	arr := res.Array()
	out := make([]string, len(arr))
	for i, v := range arr {
		out[i] = v.Raw
	}
	return out
}

// Encode joins raw JSON values into an array.
func Encode(items []string) []byte {
	var b bytes.Buffer
	b.WriteByte('[')
	b.WriteString(strings.Join(items, ","))
	b.WriteByte(']')
	return b.Bytes()
}

// Tokens splits plain text on commas and whitespace, for command line input
// that is not JSON.
func Tokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}
