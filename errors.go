package ringbuffer

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidCapacity is returned when a buffer is created or resized
	// with a capacity that is not a positive integer.
	ErrInvalidCapacity = errors.New("ringbuffer: capacity must be greater than zero")

	// ErrInvalidArgumentType is returned by ParseCapacity and ParseCount
	// when the value does not hold an integer.
	ErrInvalidArgumentType = errors.New("ringbuffer: value must be an integer")

	// ErrInvalidCount is returned by ParseCount for negative counts.
	ErrInvalidCount = errors.New("ringbuffer: count must not be negative")
)

func invalidCapacity(capacity int) error {
	return errors.Wrapf(ErrInvalidCapacity, "got %d", capacity)
}

// ParseCapacity converts an untyped capacity value, as read from a config
// file, environment variable or flag, into a validated capacity.
//
// Integers of any width and decimal strings are accepted. Floats are accepted
// only when they hold a whole number, since JSON decoders produce float64 for
// every number. Anything else fails with ErrInvalidArgumentType. A value that
// parses but is not positive fails with ErrInvalidCapacity.
func ParseCapacity(v any) (int, error) {
	n, err := parseInteger(v, ErrInvalidCapacity)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, invalidCapacity(n)
	}
	return n, nil
}

// ParseCount is ParseCapacity for element counts, where zero is allowed. A
// negative value fails with ErrInvalidCount.
func ParseCount(v any) (int, error) {
	n, err := parseInteger(v, ErrInvalidCount)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.Wrapf(ErrInvalidCount, "got %d", n)
	}
	return n, nil
}

// parseInteger accepts the same values as ParseCapacity without a range
// check. Values that do not fit an int fail with rangeErr.
func parseInteger(v any, rangeErr error) (int, error) {
	var n int64
	switch c := v.(type) {
	case int:
		n = int64(c)
	case int8:
		n = int64(c)
	case int16:
		n = int64(c)
	case int32:
		n = int64(c)
	case int64:
		n = c
	case uint:
		if uint64(c) > math.MaxInt64 {
			return 0, errors.Wrapf(rangeErr, "%d overflows int", c)
		}
		n = int64(c)
	case uint8:
		n = int64(c)
	case uint16:
		n = int64(c)
	case uint32:
		n = int64(c)
	case uint64:
		if c > math.MaxInt64 {
			return 0, errors.Wrapf(rangeErr, "%d overflows int", c)
		}
		n = int64(c)
	case float32:
		return parseFloat(float64(c), rangeErr)
	case float64:
		return parseFloat(c, rangeErr)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(c), 10, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrInvalidArgumentType, "%q: %v", c, err)
		}
		n = parsed
	default:
		return 0, errors.Wrapf(ErrInvalidArgumentType, "unsupported type %T", v)
	}
	if n > math.MaxInt || n < math.MinInt {
		return 0, errors.Wrapf(rangeErr, "%d overflows int", n)
	}
	return int(n), nil
}

func parseFloat(f float64, rangeErr error) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, errors.Wrapf(ErrInvalidArgumentType, "%v is not a whole number", f)
	}
	if f > 1<<53 || f < -(1<<53) {
		return 0, errors.Wrapf(rangeErr, "%v is too large", f)
	}
	return int(f), nil
}
