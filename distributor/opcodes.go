package distributor

import "hash/crc32"

// Operation tags are CRC-32 (IEEE) checksums of the operation names, the
// same values FunC produces for "op::..."c literals.
const (
	OpUpdateData uint32 = 0xfa2a76a0 // op::update_data
	OpUpdateCode uint32 = 0x20ccb55b // op::update_code
	OpTopup      uint32 = 0x59da2019 // op::topup
)

// Opcode returns the 32-bit operation tag for name.
func Opcode(name string) uint32 {
	return crc32.ChecksumIEEE([]byte(name))
}
