// Package gomap provides conversion between Go values and LLSD trees.
//
// # Usage
//
//	type Agent struct {
//	    Name     string    `llsd:"name"`
//	    ID       uuid.UUID `llsd:"agent_id"`
//	    Internal int       `llsd:"-"`
//	}
//	node, err := gomap.ToIR(agent)
//
//	var out Agent
//	err = gomap.FromIR(node, &out)
//
// uuid.UUID, time.Time and []byte map to the UUID, Date and Binary
// variants; other types follow the natural structural mapping. Integer
// conversions are range checked against the 32-bit LLSD integer.
//
// # Related Packages
//
//   - github.com/llsd-format/go-llsd/ir - the value tree
package gomap
