// Package vector decodes flat integer command vectors into typed
// intervention commands.
//
// A command vector is the output of an external policy-search process: an
// ordered sequence of non-negative integers whose length is a whole number
// of fixed-width records. Each record selects a command by upcode, carries
// an embedded condition subrecord, and references population entities by ID.
//
// Decoding is a pure transform. Given the same vector, the same upcode
// registry, the same population and the same clock, it produces the same
// commands; nothing is mutated and nothing is read from the environment.
package vector

// RecordWidth is the number of integers in one command record.
const RecordWidth = 30

// ConditionWidth is the number of integers in one condition subrecord.
const ConditionWidth = 8

// Record layout. The final element of each record is reserved and ignored.
const (
	conditionStart = 1
	conditionEnd   = conditionStart + ConditionWidth
	dataStart      = conditionEnd
	dataEnd        = dataStart + 20
)

// Slice splits vec into consecutive records of width elements, in input
// order. The vector length must be a whole multiple of width; otherwise
// Slice fails with InvalidLengthError and produces no records. Records
// share the caller's backing array and must be treated as read-only.
func Slice(vec []int, width int) ([][]int, error) {
	if width <= 0 || len(vec)%width != 0 {
		return nil, &InvalidLengthError{Length: len(vec), Width: width}
	}

	records := make([][]int, 0, len(vec)/width)
	for i := 0; i < len(vec); i += width {
		records = append(records, vec[i:i+width:i+width])
	}
	return records, nil
}
