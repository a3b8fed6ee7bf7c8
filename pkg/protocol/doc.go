// Package protocol implements the binary wire format used to stream host
// mutation logs out of a render session.
//
// Every message is a frame with a 4-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (2 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// # Frame Types
//
//   - FrameStep (0x01): a render step finished; carries its index, name
//     and resulting HTML
//   - FrameMutations (0x02): a chunk of the step's host mutations
//   - FrameError (0x03): the step failed
//
// A step's mutations may span several FrameMutations frames; the last one
// carries FlagFinal.
//
// # Encoding
//
//   - Varint: compact encoding for small integers (protobuf-style)
//   - ZigZag: node IDs are signed varints
//   - Length-prefixed: strings carry a varint length
//   - Big-endian: fixed-width integers
//
// Example SetAttr mutation:
//
//	[Op: 0x05][Node: svarint][Name: len-prefixed][Value: len-prefixed]
package protocol
