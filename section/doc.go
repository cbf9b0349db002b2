// Package section defines the low-level binary structures and constants of the
// flattened device tree format.
//
// # Blob Structure
//
// A DTB is a header followed by three blocks. This package writes them in the
// order below; readers must only rely on the offsets in the header.
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (40 bytes, fixed)                                │
//	├─────────────────────────────────────────────────────────┤
//	│ Padding (0-7 bytes, for 8-byte alignment)               │
//	├─────────────────────────────────────────────────────────┤
//	│ Memory Reservation Block (N × 16 bytes)                 │
//	│  - (address u64, size u64) pairs                        │
//	│  - terminated by an entry with size 0                   │
//	├─────────────────────────────────────────────────────────┤
//	│ Structure Block (variable, 4-byte aligned records)      │
//	│  - FDT_BEGIN_NODE name\0 [pad]                          │
//	│  - FDT_PROP len nameoff value [pad]                     │
//	│  - FDT_END_NODE                                         │
//	│  - FDT_END                                              │
//	├─────────────────────────────────────────────────────────┤
//	│ Strings Block (variable)                                │
//	│  - NUL-terminated property names                        │
//	└─────────────────────────────────────────────────────────┘
//
// # Header Format
//
//	Bytes  | Field             | Description
//	-------|-------------------|----------------------------------------
//	0-3    | magic             | 0xd00dfeed
//	4-7    | totalsize         | size of the whole blob
//	8-11   | off_dt_struct     | offset of the structure block
//	12-15  | off_dt_strings    | offset of the strings block
//	16-19  | off_mem_rsvmap    | offset of the memory reservation block
//	20-23  | version           | 17
//	24-27  | last_comp_version | 16
//	28-31  | boot_cpuid_phys   | physical id of the boot CPU
//	32-35  | size_dt_strings   | size of the strings block
//	36-39  | size_dt_struct    | size of the structure block
//
// # Byte Order
//
// Every multi-byte integer is big-endian; see endian.FDT.
package section
