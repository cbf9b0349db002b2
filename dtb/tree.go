package dtb

import (
	"bytes"

	"github.com/arloliu/fdt/internal/hash"
	"github.com/arloliu/fdt/section"
)

// Reservation is one entry of the memory reservation block.
type Reservation = section.ReserveEntry

// DeviceTree is a decoded flattened device tree.
//
// A DeviceTree produced by Decode owns all of its nodes and property values;
// none of them alias the input buffer.
type DeviceTree struct {
	// Version is the header version the tree was read from. Encoders always write 17.
	Version uint32
	// BootCPUIDPhys is the physical id of the CPU the system boots from.
	BootCPUIDPhys uint32
	// Reserved lists the reserved memory regions, without the terminating entry.
	Reserved []Reservation
	// Root is the root node. Its name is the empty string.
	Root *Node
}

// Property is a named raw value attached to a node.
type Property struct {
	Name  string
	Value []byte
}

// Node is a device tree node.
//
// Props keep their order from the blob and names may repeat; lookups return
// the first match.
type Node struct {
	Name     string
	Props    []Property
	Children []*Node
}

// New returns an empty tree with version 17 and an unnamed root node.
func New() *DeviceTree {
	return &DeviceTree{
		Version: section.Version,
		Root:    NewNode(""),
	}
}

// Find returns the node at the absolute path, or nil.
//
// The path must start with '/'. "/" is the root node, "/soc/serial@7e201000"
// descends through the first child named "soc".
func (t *DeviceTree) Find(path string) *Node {
	if t.Root == nil || len(path) == 0 || path[0] != '/' {
		return nil
	}

	return t.Root.Find(path[1:])
}

// Walk visits every node depth-first, parents before children, passing the
// absolute path of each node. Walk stops at the first error fn returns.
func (t *DeviceTree) Walk(fn func(path string, n *Node) error) error {
	if t.Root == nil {
		return nil
	}

	return walk("/", t.Root, fn)
}

func walk(path string, n *Node, fn func(string, *Node) error) error {
	if err := fn(path, n); err != nil {
		return err
	}

	for _, c := range n.Children {
		if c == nil {
			continue
		}
		if err := walk(joinPath(path, c.Name), c, fn); err != nil {
			return err
		}
	}

	return nil
}

func joinPath(parent, name string) string {
	if parent == "/" {
		return parent + name
	}

	return parent + "/" + name
}

// Equal reports whether t and other describe the same tree.
//
// Header offsets and string table layout are not part of the comparison, so
// blobs that differ only in string deduplication decode to equal trees.
func (t *DeviceTree) Equal(other *DeviceTree) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Version != other.Version || t.BootCPUIDPhys != other.BootCPUIDPhys {
		return false
	}
	if len(t.Reserved) != len(other.Reserved) {
		return false
	}
	for i := range t.Reserved {
		if t.Reserved[i] != other.Reserved[i] {
			return false
		}
	}

	return t.Root.Equal(other.Root)
}

// Equal reports whether n and other have the same name, properties and
// children, recursively and in order.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Name != other.Name || len(n.Props) != len(other.Props) || len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Props {
		if n.Props[i].Name != other.Props[i].Name || !bytes.Equal(n.Props[i].Value, other.Props[i].Value) {
			return false
		}
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}

	return true
}

// Fingerprint returns an xxHash64 of the tree's structural content. Trees
// that are Equal have the same fingerprint.
func (t *DeviceTree) Fingerprint() uint64 {
	f := fingerprinter{d: hash.NewDigest(), scratch: make([]byte, 0, 16)}

	f.u32(t.Version)
	f.u32(t.BootCPUIDPhys)
	f.u32(uint32(len(t.Reserved))) //nolint:gosec
	for _, r := range t.Reserved {
		f.u64(r.Address)
		f.u64(r.Size)
	}
	f.node(t.Root)

	return f.d.Sum64()
}

type fingerprinter struct {
	d       *hash.Digest
	scratch []byte
}

func (f *fingerprinter) u32(v uint32) {
	f.scratch = engine.AppendUint32(f.scratch[:0], v)
	_, _ = f.d.Write(f.scratch)
}

func (f *fingerprinter) u64(v uint64) {
	f.scratch = engine.AppendUint64(f.scratch[:0], v)
	_, _ = f.d.Write(f.scratch)
}

// bytes writes a length prefix so adjacent fields cannot run together.
func (f *fingerprinter) bytes(b []byte) {
	f.u32(uint32(len(b))) //nolint:gosec
	_, _ = f.d.Write(b)
}

func (f *fingerprinter) node(n *Node) {
	if n == nil {
		f.u32(^uint32(0))
		return
	}

	f.bytes([]byte(n.Name))
	f.u32(uint32(len(n.Props))) //nolint:gosec
	for _, p := range n.Props {
		f.bytes([]byte(p.Name))
		f.bytes(p.Value)
	}
	f.u32(uint32(len(n.Children))) //nolint:gosec
	for _, c := range n.Children {
		f.node(c)
	}
}
