package xml

import "errors"

var (
	// ErrSyntax wraps malformed markup reported by the underlying
	// event reader.
	ErrSyntax = errors.New("markup syntax error")
	// ErrUnknownElement reports an element name outside the LLSD set,
	// or an element where the grammar requires a different one.
	ErrUnknownElement = errors.New("unknown element")
	// ErrTagMismatch reports a closing tag that does not match the
	// currently open element.
	ErrTagMismatch = errors.New("mismatched tags")
	// ErrEncoding reports an unrecognized encoding attribute or a
	// payload malformed for the named encoding.
	ErrEncoding = errors.New("invalid binary encoding")
	// ErrLiteral reports an integer, real, uuid or date literal that
	// does not parse.
	ErrLiteral = errors.New("invalid literal")
	// ErrUnexpectedEOF reports end of input while an element is open.
	ErrUnexpectedEOF = errors.New("unexpected end of document")
	// ErrRoot reports a malformed document root: a missing or empty
	// <llsd> wrapper, or more than one root value.
	ErrRoot = errors.New("malformed document root")
	// ErrMaxDepth reports input nested beyond the recursion guard.
	ErrMaxDepth = errors.New("maximum nesting depth exceeded")
)
