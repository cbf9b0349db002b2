package dtb

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/arloliu/fdt/binio"
	"github.com/arloliu/fdt/errs"
)

// NewNode returns a node with the given name and no properties or children.
func NewNode(name string) *Node {
	return &Node{Name: name}
}

// AddChild appends child and returns it, so builders can chain into it.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// AddProp appends a property with a raw value and returns n.
func (n *Node) AddProp(name string, value []byte) *Node {
	n.Props = append(n.Props, Property{Name: name, Value: value})
	return n
}

// AddPropString appends a NUL-terminated string property and returns n.
func (n *Node) AddPropString(name, value string) *Node {
	v := make([]byte, 0, len(value)+1)
	v = append(v, value...)
	v = append(v, 0)

	return n.AddProp(name, v)
}

// AddPropStrings appends a string list property, such as "compatible", and returns n.
func (n *Node) AddPropStrings(name string, values ...string) *Node {
	var v []byte
	for _, s := range values {
		v = append(v, s...)
		v = append(v, 0)
	}

	return n.AddProp(name, v)
}

// AddPropU32 appends a single big-endian cell and returns n.
func (n *Node) AddPropU32(name string, value uint32) *Node {
	return n.AddProp(name, engine.AppendUint32(nil, value))
}

// AddPropU64 appends a big-endian 64-bit value and returns n.
func (n *Node) AddPropU64(name string, value uint64) *Node {
	return n.AddProp(name, engine.AppendUint64(nil, value))
}

// Child returns the first direct child named name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c != nil && c.Name == name {
			return c
		}
	}

	return nil
}

// Find resolves a '/'-separated path relative to n.
//
// The empty path is n itself and a trailing '/' is ignored. Each component
// selects the first child with that exact name; a later sibling with the same
// name is never tried.
func (n *Node) Find(path string) *Node {
	cur := n
	for path != "" {
		var name string
		name, path, _ = strings.Cut(path, "/")

		cur = cur.Child(name)
		if cur == nil {
			return nil
		}
	}

	return cur
}

// Prop returns the value of the first property named name.
func (n *Node) Prop(name string) ([]byte, bool) {
	for i := range n.Props {
		if n.Props[i].Name == name {
			return n.Props[i].Value, true
		}
	}

	return nil, false
}

// HasProp reports whether n has a property named name.
func (n *Node) HasProp(name string) bool {
	_, ok := n.Prop(name)
	return ok
}

// PropStr returns a string property without its terminating NUL.
//
// The last byte of the value must be NUL. Earlier NUL bytes, as found in
// string lists, are kept; use PropStrList to split those.
func (n *Node) PropStr(name string) (string, error) {
	value, err := n.requireProp(name)
	if err != nil {
		return "", err
	}

	if len(value) == 0 || value[len(value)-1] != 0 {
		return "", &errs.PropError{Name: name, Err: errs.ErrPropMissingNul}
	}
	if !utf8.Valid(value[:len(value)-1]) {
		return "", &errs.PropError{Name: name, Err: errs.ErrInvalidUTF8}
	}

	return string(value[:len(value)-1]), nil
}

// PropStrList returns every string of a NUL-separated list property.
func (n *Node) PropStrList(name string) ([]string, error) {
	value, err := n.requireProp(name)
	if err != nil {
		return nil, err
	}
	if len(value) == 0 || value[len(value)-1] != 0 {
		return nil, &errs.PropError{Name: name, Err: errs.ErrPropMissingNul}
	}

	parts := bytes.Split(value[:len(value)-1], []byte{0})
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if !utf8.Valid(p) {
			return nil, &errs.PropError{Name: name, Err: errs.ErrInvalidUTF8}
		}
		list = append(list, string(p))
	}

	return list, nil
}

// PropU32 reads the first big-endian cell of a property. Trailing bytes are ignored.
func (n *Node) PropU32(name string) (uint32, error) {
	value, err := n.requireProp(name)
	if err != nil {
		return 0, err
	}

	v, err := binio.ReadU32(value, 0)
	if err != nil {
		return 0, &errs.PropError{Name: name, Err: err}
	}

	return v, nil
}

// PropU64 reads a big-endian 64-bit value at the start of a property.
func (n *Node) PropU64(name string) (uint64, error) {
	value, err := n.requireProp(name)
	if err != nil {
		return 0, err
	}

	v, err := binio.ReadU64(value, 0)
	if err != nil {
		return 0, &errs.PropError{Name: name, Err: err}
	}

	return v, nil
}

func (n *Node) requireProp(name string) ([]byte, error) {
	value, ok := n.Prop(name)
	if !ok {
		return nil, &errs.PropError{Name: name, Err: errs.ErrPropNotFound}
	}

	return value, nil
}

// String returns the node name, or "/" for the root.
func (n *Node) String() string {
	if n.Name == "" {
		return "/"
	}

	return n.Name
}

func (p Property) String() string {
	return fmt.Sprintf("%s (%d bytes)", p.Name, len(p.Value))
}
