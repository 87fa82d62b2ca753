package cpu

// SHIFT_LIMIT is the shift amount at which all bits are shifted out.
const SHIFT_LIMIT = 8

// Alu performs the requested ALU operation and returns the output value.
// All operations wrap modulo 256.
func Alu(op CodeOp, input uint8, value uint8) (output uint8) {
	switch op {
	case OP_ADD:
		output = input + value
	case OP_SUB:
		output = input - value
	case OP_LSH:
		if value < SHIFT_LIMIT {
			output = input << value
		}
	case OP_RSH:
		if value < SHIFT_LIMIT {
			output = input >> value
		}
	case OP_AND:
		output = input & value
	case OP_OR:
		output = input | value
	case OP_XOR:
		output = input ^ value
	}

	return
}
