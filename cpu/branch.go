package cpu

// CR_SIGN is the sign bit of the condition result.
const CR_SIGN = 0b1000_0000

// Compare returns the condition result of comparing a against b.
func Compare(a, b uint8) (cr uint8) {
	return a - b
}

// Taken returns true if the branch operation is taken for the condition
// result. Operations outside of the branch family are never taken.
//
// bg is taken when the sign bit is clear, which includes equality; bl is
// taken when the sign bit is set.
func (op CodeOp) Taken(cr uint8) bool {
	switch op {
	case OP_BR:
		return true
	case OP_BE:
		return cr == 0
	case OP_BNE:
		return cr != 0
	case OP_BG:
		return (cr & CR_SIGN) == 0
	case OP_BL:
		return (cr & CR_SIGN) != 0
	}

	return false
}
