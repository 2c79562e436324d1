package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexString accepts a JSON string, number, boolean or null. Completion
// output is loose about scalar types ("year": 2021 vs "year": "2021").
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexString(scalarString(v))
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// StringList accepts a JSON array or a single string. Array items that are
// objects contribute their "name" or "title" member.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = StringList{}
		return nil
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	out := StringList{}
	switch t := v.(type) {
	case []interface{}:
		for _, item := range t {
			if s := strings.TrimSpace(itemString(item)); s != "" {
				out = append(out, s)
			}
		}
	default:
		if s := strings.TrimSpace(itemString(t)); s != "" {
			out = append(out, s)
		}
	}

	*l = out
	return nil
}

func itemString(v interface{}) string {
	if m, ok := v.(map[string]interface{}); ok {
		for _, key := range []string{"name", "title", "language", "skill"} {
			if s, ok := m[key].(string); ok {
				return s
			}
		}
		return ""
	}
	return scalarString(v)
}

func scalarString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// Dedupe keeps the first occurrence of every case-insensitive value.
func (l StringList) Dedupe() StringList {
	seen := make(map[string]struct{}, len(l))
	out := make(StringList, 0, len(l))
	for _, s := range l {
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
