// Package parse turns raw input lines into records.
package parse

import (
	"errors"
	"fmt"
)

const valueSep = ';'

var (
	ErrSeparatorNotFound = errors.New("separator not found")
	ErrBadValue          = errors.New("malformed value")
)

// Record is a single parsed line. Key aliases the line's backing memory
// and stays valid only as long as that buffer does. Value is in tenths,
// see Value.
type Record struct {
	Key   []byte
	Value int64
}

func Line(line []byte) (Record, error) {
	key, value, err := Split(line)
	if err != nil {
		return Record{}, err
	}
	v, err := Value(value)
	if err != nil {
		return Record{}, err
	}
	return Record{Key: key, Value: v}, nil
}

// Split cuts a line at its last separator. It scans backward because the
// value side is at most a handful of bytes while keys can be long and may
// themselves contain the separator.
func Split(line []byte) (key, value []byte, err error) {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i] == valueSep {
			return line[:i], line[i+1:], nil
		}
	}
	return nil, nil, ErrSeparatorNotFound
}

const (
	maxIntegerDigits = 3
	maxDigits        = 18
)

var pow10 = [...]int64{
	1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000,
	1000000000, 10000000000, 100000000000, 1000000000000, 10000000000000,
	100000000000000, 1000000000000000, 10000000000000000, 100000000000000000,
}

// after profiling, strconv.ParseFloat was taking too much time and accepts
// far more than this format allows, so values are parsed by hand.
//
// Value parses an optional minus sign, up to three integer digits and at
// least one fractional digit. The result is in tenths of the decimal
// value; inputs with extra fractional digits are normalized to one digit,
// rounding toward positive infinity.
func Value(b []byte) (int64, error) {
	s := b
	neg := false
	if len(b) > 0 && b[0] == '-' {
		neg = true
		b = b[1:]
	}

	mant := int64(0)
	digits := 0
	dot := -1
	for i := 0; i < len(b); i++ {
		switch c := b[i]; {
		case c >= '0' && c <= '9':
			if digits == maxDigits {
				return 0, fmt.Errorf("%w %q", ErrBadValue, s)
			}
			mant = mant*10 + int64(c-'0')
			digits++
		case c == '.' && dot == -1:
			dot = i
		default:
			return 0, fmt.Errorf("%w %q", ErrBadValue, s)
		}
	}
	if dot < 1 || dot > maxIntegerDigits || dot == len(b)-1 {
		return 0, fmt.Errorf("%w %q", ErrBadValue, s)
	}

	// ceiling in integer space: bump positive remainders, truncate
	// negative ones
	if frac := len(b) - dot - 1; frac > 1 {
		scale := pow10[frac-1]
		rem := mant % scale
		mant /= scale
		if rem > 0 && !neg {
			mant++
		}
	}
	if neg {
		mant = -mant
	}
	return mant, nil
}
