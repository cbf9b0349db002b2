// Package dtb decodes and encodes flattened device tree blobs (DTB).
//
// A DTB describes hardware to an operating system as a tree of named nodes
// carrying (name, raw bytes) properties. This package converts between the
// binary form, as produced by dtc and consumed by bootloaders and kernels,
// and an in-memory DeviceTree that callers can inspect and edit.
//
// # Core Types
//
//   - DeviceTree: header version, boot CPU id, memory reservations and the root node
//   - Node: a name, ordered properties and ordered children
//   - Property: a name and a raw big-endian value
//   - Decoder: validates a DTB header and decodes the tree
//   - Encoder: writes a version 17 DTB with configurable string table layout
//
// # Decoding
//
//	decoder, err := dtb.NewDecoder(data)
//	if err != nil {
//	    return err // bad magic, size or version
//	}
//	tree, err := decoder.Decode()
//
//	cpu := tree.Find("/cpus/cpu@0")
//	reg, err := cpu.PropU32("reg")
//
// # Encoding
//
//	tree := dtb.New()
//	tree.Root.AddPropU32("#address-cells", 2)
//	tree.Root.AddChild(dtb.NewNode("chosen")).AddPropString("bootargs", "console=ttyS0")
//
//	encoder, err := dtb.NewEncoder(dtb.WithStringDedup(true))
//	data, err := encoder.Encode(tree)
//
// # Errors
//
// All errors can be matched against the sentinels in package errs. Structure
// block errors are *errs.ParseError values carrying the offending offset, and
// property accessor errors are *errs.PropError values carrying the property
// name.
package dtb
