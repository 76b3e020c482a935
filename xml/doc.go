// Package xml implements the LLSD XML text codec.
//
// A document is one <llsd> wrapper containing exactly one typed
// element. Element names map 1:1 to the LLSD variants: undef, boolean,
// integer, real, uuid, string, uri, binary, date, map and array. A map
// holds repeated <key>text</key> VALUE pairs; an array holds a sequence
// of typed elements.
//
// The decoder consumes pull events from the underlying markup reader
// and tracks the currently open tag itself: a closing tag that does not
// match is an ErrTagMismatch naming both tags and the stream offset.
// Binary payloads accept base64 (the default), base16 and base85 via
// the encoding attribute; the encoder only ever emits base64. Dates are
// RFC-3339 truncated to whole seconds and emitted in UTC.
//
// # Usage
//
//	node, err := xml.Decode(doc)
//
//	var buf bytes.Buffer
//	err = xml.Encode(node, &buf, xml.Indent(2))
package xml
