package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Raw is a loosely shaped record as decoded from JSON or YAML.
type Raw = map[string]any

// present reports whether v carries a usable value. Nil and empty strings do not.
func present(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	}
	return true
}

// pick returns the first present value among keys, canonical name first.
func pick(r Raw, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && present(v) {
			return v, true
		}
	}
	return nil, false
}

// str returns the first present value among keys rendered as text, or fallback.
func str(r Raw, fallback string, keys ...string) string {
	v, ok := pick(r, keys...)
	if !ok {
		return fallback
	}
	if s := text(v); s != "" {
		return s
	}
	return fallback
}

// text renders a scalar the way a user would have typed it.
func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return x.String()
	}
	return ""
}

// truthy follows loose boolean rules: non-zero numbers and non-empty strings are true.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != "" && x != "false"
	case float64:
		return x != 0 && !math.IsNaN(x)
	case int:
		return x != 0
	}
	return true
}

func record(v any) Raw {
	if r, ok := v.(map[string]any); ok {
		return r
	}
	return nil
}

func list(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

// timestamp reads the first parsable timestamp among keys.
func timestamp(r Raw, keys ...string) (time.Time, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok {
			continue
		}
		switch x := v.(type) {
		case string:
			if t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(x)); err == nil {
				return t.UTC(), true
			}
		case time.Time:
			if !x.IsZero() {
				return x.UTC(), true
			}
		}
	}
	return time.Time{}, false
}

// ToRaw converts a typed value to its loose form.
func ToRaw(v any) Raw {
	data, err := json.Marshal(v)
	if err != nil {
		return Raw{}
	}
	var r Raw
	if err := json.Unmarshal(data, &r); err != nil {
		return Raw{}
	}
	return r
}
