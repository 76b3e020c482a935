package binary

import "errors"

var (
	// ErrHeader reports a missing or corrupt binary sentinel.
	ErrHeader = errors.New("malformed header")
	// ErrTruncated reports a buffer exhausted in the middle of a field.
	ErrTruncated = errors.New("truncated input")
	// ErrUnknownTag reports an unrecognized type tag byte.
	ErrUnknownTag = errors.New("unknown type tag")
	// ErrTerminator reports a missing or mismatched composite terminator.
	ErrTerminator = errors.New("unterminated composite")
	// ErrUTF8 reports invalid UTF-8 in a string or URI payload.
	ErrUTF8 = errors.New("invalid utf-8")
	// ErrTrailing reports unconsumed bytes after a complete value.
	ErrTrailing = errors.New("trailing data")
	// ErrMaxDepth reports input nested beyond the recursion guard.
	ErrMaxDepth = errors.New("maximum nesting depth exceeded")
	// ErrTooLong reports a value too large for 4-byte length framing.
	ErrTooLong = errors.New("value exceeds wire length limit")
)
