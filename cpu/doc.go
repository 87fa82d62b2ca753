// Package cpu implements the TGS 8-bit register machine and its assembler.
//
// The machine has a single register address space holding eight
// general-purpose registers (r0-r7), two button input registers (bt0-bt1),
// four display output registers (dp0-dp3), the program counter (pc) and the
// condition result register (cr). Every instruction is three bytes: an
// opcode, a left operand and a right operand. The left operand is both the
// source and the destination of arithmetic; the least significant opcode bit
// selects whether the right operand is a register address or an immediate.
//
// All arithmetic is 8-bit and wraps. The engine keeps no timing or I/O state;
// a caller fetches instructions by the PC that Step returns.
//
// The assembler provides a small assembly language for the TGS instruction
// set, supporting macros, labels, equates, and compile-time expression
// evaluation.
package cpu
