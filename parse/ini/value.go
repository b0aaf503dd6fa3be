package ini

import (
	"strconv"
	"strings"
)

// Value is the text to the right of `=` together with the comment attached
// to its entry.
type Value struct {
	// Text is the trimmed value as it appears in the file.
	Text string
	// Comment is free text, one entry per line, without comment markers.
	Comment string
}

// NewValue returns a Value holding text and no comment.
func NewValue(text string) Value {
	return Value{Text: text}
}

func (v Value) String() string { return v.Text }

// Int reads the value as an int. See Read for the parsing rules.
func (v Value) Int() int { return Read[int](v) }

// Float reads the value as a float64. See Read for the parsing rules.
func (v Value) Float() float64 { return Read[float64](v) }

// Bool reads the value as a bool. See Read for the parsing rules.
func (v Value) Bool() bool { return Read[bool](v) }

// Number is the set of types Read and Write convert directly.
type Number interface {
	int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 | uintptr |
		float32 | float64 | bool
}

// Read converts the value text to T.
//
// Conversion is best effort and never fails: the longest leading part of the
// text that forms a number of the requested kind is used, integers saturate
// at the bounds of T, and text with no usable prefix yields the zero value.
// Callers that need to reject bad input should use ReadWith with a checking
// conversion.
func Read[T Number](v Value) T {
	var out T
	s := Trim(v.Text)
	switch p := any(&out).(type) {
	case *int:
		*p = int(readInt(s, strconv.IntSize))
	case *int8:
		*p = int8(readInt(s, 8))
	case *int16:
		*p = int16(readInt(s, 16))
	case *int32:
		*p = int32(readInt(s, 32))
	case *int64:
		*p = readInt(s, 64)
	case *uint:
		*p = uint(readUint(s, strconv.IntSize))
	case *uint8:
		*p = uint8(readUint(s, 8))
	case *uint16:
		*p = uint16(readUint(s, 16))
	case *uint32:
		*p = uint32(readUint(s, 32))
	case *uint64:
		*p = readUint(s, 64)
	case *uintptr:
		*p = uintptr(readUint(s, strconv.IntSize))
	case *float32:
		*p = float32(readFloat(s, 32))
	case *float64:
		*p = readFloat(s, 64)
	case *bool:
		*p = readBool(s)
	}
	return out
}

// Write replaces the value text with x formatted so that Read gives x back.
// Floats use the shortest representation that round-trips. The comment is
// kept.
func Write[T Number](v *Value, x T) {
	var s string
	switch x := any(x).(type) {
	case int:
		s = strconv.FormatInt(int64(x), 10)
	case int8:
		s = strconv.FormatInt(int64(x), 10)
	case int16:
		s = strconv.FormatInt(int64(x), 10)
	case int32:
		s = strconv.FormatInt(int64(x), 10)
	case int64:
		s = strconv.FormatInt(x, 10)
	case uint:
		s = strconv.FormatUint(uint64(x), 10)
	case uint8:
		s = strconv.FormatUint(uint64(x), 10)
	case uint16:
		s = strconv.FormatUint(uint64(x), 10)
	case uint32:
		s = strconv.FormatUint(uint64(x), 10)
	case uint64:
		s = strconv.FormatUint(x, 10)
	case uintptr:
		s = strconv.FormatUint(uint64(x), 10)
	case float32:
		s = strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		s = strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		s = strconv.FormatBool(x)
	}
	v.Text = s
}

// ReadWith converts the value with fn.
func ReadWith[T any](v Value, fn func(Value) T) T {
	return fn(v)
}

// WriteWith replaces the value text with fn(x). The comment is kept.
func WriteWith[T any](v *Value, x T, fn func(T) string) {
	v.Text = fn(x)
}

func readInt(s string, bits int) int64 {
	n, err := strconv.ParseInt(intPrefix(s, true), 10, bits)
	if err != nil && !isRange(err) {
		return 0
	}
	return n
}

func readUint(s string, bits int) uint64 {
	n, err := strconv.ParseUint(strings.TrimPrefix(intPrefix(s, false), "+"), 10, bits)
	if err != nil && !isRange(err) {
		return 0
	}
	return n
}

func readFloat(s string, bits int) float64 {
	f, err := strconv.ParseFloat(s, bits)
	if err == nil || isRange(err) {
		return f
	}
	f, err = strconv.ParseFloat(floatPrefix(s), bits)
	if err != nil && !isRange(err) {
		return 0
	}
	return f
}

func readBool(s string) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	switch strings.ToLower(s) {
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	return readInt(s, 64) != 0
}

func isRange(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

// intPrefix returns the optional sign and the run of digits at the start of s.
func intPrefix(s string, signed bool) string {
	i := 0
	if i < len(s) && (s[i] == '+' || (signed && s[i] == '-')) {
		i++
	}
	j := i
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	if j == i {
		return ""
	}
	return s[:j]
}

// floatPrefix returns the longest leading decimal float literal of s.
func floatPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return ""
	}
	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		j := i
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > i {
			end = j
		}
	}
	return s[:end]
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
