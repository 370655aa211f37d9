package parseopt

import (
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

var (
	errIllegalBool    = errors.New("illegal boolean value")
	errIllegalNumber  = errors.New("illegal number")
	errOutOfRange     = errors.New("value out of range")
	errNotANumber     = errors.New("NaN not allowed")
	errTrailingData   = errors.New("trailing data after JSON value")
	errUnknownLabel   = errors.New("unknown enum label")
	errRecordArgCount = errors.New("wrong number of record arguments")
)

var (
	trueWords  = map[string]struct{}{"true": {}, "on": {}, "1": {}, "yes": {}}
	falseWords = map[string]struct{}{"false": {}, "off": {}, "0": {}, "no": {}}
)

// ParseBool accepts true/on/1/yes and false/off/0/no, ignoring case and
// surrounding whitespace.
func ParseBool(s string) (bool, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if _, ok := trueWords[s]; ok {
		return true, nil
	}
	if _, ok := falseWords[s]; ok {
		return false, nil
	}
	return false, fmt.Errorf("%w: %s", errIllegalBool, s)
}

func parseBoolArgs(args ...string) (any, error) {
	if len(args) != 1 {
		return nil, errRecordArgCount
	}
	return ParseBool(args[0])
}

func parseStringArgs(args ...string) (any, error) {
	if len(args) != 1 {
		return nil, errRecordArgCount
	}
	return args[0], nil
}

// parseObject decodes a single JSON value and rejects anything after it.
func parseObject(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return v, nil
}

func parseObjectArgs(args ...string) (any, error) {
	if len(args) != 1 {
		return nil, errRecordArgCount
	}
	return parseObject(args[0])
}

// parseInteger parses s in base (0 = decimal). Bases 16 and 0 accept an
// optional 0x prefix after the sign.
func parseInteger(s string, base int) (int64, error) {
	if strings.Contains(s, ".") {
		return 0, errIllegalNumber
	}
	t := strings.TrimSpace(s)
	sign := ""
	if strings.HasPrefix(t, "-") || strings.HasPrefix(t, "+") {
		sign, t = t[:1], t[1:]
	}
	if base == 0 || base == 16 {
		if len(t) > 2 && (t[:2] == "0x" || t[:2] == "0X") {
			t = t[2:]
			base = 16
		}
	}
	if base == 0 {
		base = 10
	}
	n, err := strconv.ParseInt(sign+t, base, 64)
	if err != nil {
		return 0, errIllegalNumber
	}
	return n, nil
}

// formatInteger is the canonical formatter: octal as 0..., hex as 0x...,
// other bases without prefix.
func formatInteger(n int64, base int) string {
	sign := ""
	u := n
	if n < 0 && (base == 8 || base == 16) {
		sign = "-"
		u = -n
	}
	switch base {
	case 0, 10:
		return strconv.FormatInt(n, 10)
	case 8:
		return sign + "0" + strconv.FormatUint(uint64(u), 8)
	case 16:
		return sign + "0x" + strconv.FormatUint(uint64(u), 16)
	default:
		return strconv.FormatInt(n, base)
	}
}

// parseFloat parses s. With allowNaN, unparsable input yields NaN instead of
// an error.
func parseFloat(s string, allowNaN bool) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f, nil
		}
		if allowNaN {
			return math.NaN(), nil
		}
		return 0, errIllegalNumber
	}
	return f, nil
}

func formatFloat(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		return toInt64(float64(n))
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	if i, ok := toInt64(v); ok {
		return float64(i), true
	}
	return 0, false
}

var needsQuoting = regexp.MustCompile(`[\s'"\\<>,]`)

// stringifyString quotes s as a JSON string when it contains whitespace or
// characters that are ambiguous in usage output.
func stringifyString(v any) string {
	s, ok := v.(string)
	if !ok {
		return stringifyAny(v)
	}
	if needsQuoting.MatchString(s) {
		b, err := json.MarshalNoEscape(s)
		if err == nil {
			return string(b)
		}
		return strconv.Quote(s)
	}
	return s
}

func stringifyPrimitive(v any) string {
	switch t := v.(type) {
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return formatFloat(t)
	case float32:
		return formatFloat(float64(t))
	case nil:
		return "null"
	}
	return fmt.Sprint(v)
}

func stringifyObject(v any) string {
	b, err := json.MarshalNoEscape(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// stringifyAny renders sequences space-joined and quotes strings that need
// it.
func stringifyAny(v any) string {
	switch t := v.(type) {
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = stringifyAny(e)
		}
		return strings.Join(parts, " ")
	case []string:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = stringifyString(e)
		}
		return strings.Join(parts, " ")
	case string:
		return stringifyString(t)
	}
	return stringifyPrimitive(v)
}
