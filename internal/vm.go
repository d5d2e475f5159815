package internal

// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/mnafees/chopper/v2/internal/logger"
)

// CHIP-8 VM constants
const (
	totalMemory    = 0x1000
	pcStartAddr    = 0x200
	maxProgramSize = totalMemory - pcStartAddr
	stackDepth     = 16
	flagReg        = 0xF
)

// C8VM is an emulated CHIP-8 VM. It is not safe for concurrent use; a single
// host loop owns it.
type C8VM struct {
	opcode uint16             // 16-bit opcode of the current instruction
	regV   [16]uint8          // 16 general purpose 8-bit registers
	regI   uint16             // 16-bit register that is generally used to store memory addresses
	pc     uint16             // Program counter
	sp     uint8              // Stack pointer
	stack  [stackDepth]uint16 // A stack of 16 16-bit values
	memory [totalMemory]uint8 // 4 KB global memory

	timers Timers
	pixels Framebuffer

	drawFlag    bool // Set whenever the framebuffer changed, cleared by the renderer
	waitingKey  bool // FX0A is holding the program counter
	programSize int

	random func() uint8
	tracer func(pc, opcode uint16)
}

// NewC8VM creates a new instance of an emulated CHIP-8 VM
func NewC8VM() (*C8VM, error) {
	vm := &C8VM{}
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	vm.random = func() uint8 {
		return uint8(src.Intn(256))
	}
	vm.reset()
	return vm, nil
}

func (vm *C8VM) reset() {
	vm.opcode = 0
	vm.regV = [16]uint8{}
	vm.regI = 0
	vm.pc = pcStartAddr
	vm.sp = 0
	vm.stack = [stackDepth]uint16{}
	vm.memory = [totalMemory]uint8{}
	vm.timers = Timers{}
	vm.pixels.Clear()
	vm.drawFlag = false
	vm.waitingKey = false
	vm.programSize = 0

	copy(vm.memory[:], fontset[:])
	logger.Log("chip8", "font loaded")
}

// Reset returns the VM to its power-on state. The loaded program is erased.
func (vm *C8VM) Reset() {
	vm.reset()
	vm.drawFlag = true
}

// Load copies a program image into memory at 0x200. The bytes are not
// validated in any way.
func (vm *C8VM) Load(program []byte) error {
	size := len(program)
	if size > maxProgramSize {
		return fmt.Errorf("%w: %d bytes", ErrProgramTooLarge, size)
	}
	copy(vm.memory[pcStartAddr:], program)
	// clear the remains of a previously loaded, larger program
	for i := pcStartAddr + size; i < pcStartAddr+vm.programSize; i++ {
		vm.memory[i] = 0
	}
	vm.programSize = size
	logger.Logf("chip8", "program loaded (%d bytes)", size)
	return nil
}

// LoadProgram loads a given CHIP-8 program file into the VM's memory
func (vm *C8VM) LoadProgram(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	return vm.Load(data)
}

// SetTracer installs a function called with the address and opcode of every
// instruction before it executes. A nil function disables tracing.
func (vm *C8VM) SetTracer(fn func(pc, opcode uint16)) {
	vm.tracer = fn
}

// SetRandom replaces the byte source used by CXNN.
func (vm *C8VM) SetRandom(fn func() uint8) {
	if fn != nil {
		vm.random = fn
	}
}

// Pixels returns a copy of the framebuffer
func (vm *C8VM) Pixels() Framebuffer {
	return vm.pixels
}

// DrawFlag returns whether the framebuffer changed since the last UnsetDrawFlag
func (vm *C8VM) DrawFlag() bool {
	return vm.drawFlag
}

// UnsetDrawFlag acknowledges a render
func (vm *C8VM) UnsetDrawFlag() {
	vm.drawFlag = false
}

// DelayTimer returns the value of DT
func (vm *C8VM) DelayTimer() uint8 {
	return vm.timers.Delay
}

// SoundTimer returns the value of ST
func (vm *C8VM) SoundTimer() uint8 {
	return vm.timers.Sound
}

// Audible reports whether the tone should currently be playing
func (vm *C8VM) Audible() bool {
	return vm.timers.Audible()
}

// WaitingForKey reports whether the last cycle was held by FX0A
func (vm *C8VM) WaitingForKey() bool {
	return vm.waitingKey
}

// Opcode returns the most recently fetched instruction
func (vm *C8VM) Opcode() uint16 {
	return vm.opcode
}

// PC returns the program counter
func (vm *C8VM) PC() uint16 {
	return vm.pc
}

// I returns the index register
func (vm *C8VM) I() uint16 {
	return vm.regI
}

// SP returns the stack pointer
func (vm *C8VM) SP() uint8 {
	return vm.sp
}

// V returns general purpose register x. Only the low nibble of x is used.
func (vm *C8VM) V(x uint8) uint8 {
	return vm.regV[x&0xF]
}

// Peek returns the byte at addr, wrapped into the 4 KB address space
func (vm *C8VM) Peek(addr uint16) uint8 {
	return vm.memory[addr&(totalMemory-1)]
}

// String summarises the register file
func (vm *C8VM) String() string {
	s := fmt.Sprintf("PC=%03X I=%04X SP=%X DT=%02X ST=%02X\n",
		vm.pc, vm.regI, vm.sp, vm.timers.Delay, vm.timers.Sound)
	for x := 0; x < len(vm.regV); x++ {
		s += fmt.Sprintf("V%X=%02X", x, vm.regV[x])
		if x%8 == 7 {
			s += "\n"
		} else {
			s += " "
		}
	}
	return s
}
