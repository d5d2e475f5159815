package internal

import (
	"errors"
	"fmt"
)

// Fatal conditions. None of them can be recovered from inside the VM; the
// host either stops or resets.
var (
	ErrUnknownOpcode   = errors.New("unknown opcode")
	ErrStackOverflow   = errors.New("stack overflow")
	ErrStackUnderflow  = errors.New("stack underflow")
	ErrPCOutOfRange    = errors.New("program counter out of range")
	ErrProgramTooLarge = errors.New("program size exceeds the maximum size")
)

// OpcodeError is returned by Cycle when an instruction cannot be executed
type OpcodeError struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("%v: %04X at %03X", e.Err, e.Opcode, e.PC)
}

func (e *OpcodeError) Unwrap() error {
	return e.Err
}
