package internal

// Cycle runs one fetch-decode-execute step followed by one timer tick. An
// error means the program cannot continue; the returned error is always an
// *OpcodeError.
func (vm *C8VM) Cycle(in Input) error {
	pc := vm.pc
	if pc > totalMemory-2 {
		return &OpcodeError{PC: pc, Err: ErrPCOutOfRange}
	}
	vm.opcode = uint16(vm.memory[pc])<<8 | uint16(vm.memory[pc+1]) // 16-bit instruction opcode

	if vm.tracer != nil {
		vm.tracer(pc, vm.opcode)
	}

	if err := vm.execute(in); err != nil {
		return &OpcodeError{PC: pc, Opcode: vm.opcode, Err: err}
	}
	vm.timers.Tick()
	return nil
}

// addr returns the address k bytes past I, wrapped into the 4 KB address space
func (vm *C8VM) addr(k uint16) uint16 {
	return (vm.regI + k) & (totalMemory - 1)
}

func (vm *C8VM) push(addr uint16) error {
	if vm.sp >= stackDepth {
		return ErrStackOverflow
	}
	vm.stack[vm.sp] = addr
	vm.sp++
	return nil
}

func (vm *C8VM) pop() (uint16, error) {
	if vm.sp == 0 {
		return 0, ErrStackUnderflow
	}
	vm.sp--
	return vm.stack[vm.sp], nil
}

func (vm *C8VM) drawSprite(x uint8, y uint8, n uint8) {
	vm.regV[flagReg] = 0
	for row := uint16(0); row < uint16(n); row++ {
		if vm.pixels.blitRow(int(x), int(y)+int(row), vm.memory[vm.addr(row)]) {
			vm.regV[flagReg] = 1
		}
	}
	vm.drawFlag = true
}

func flag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func (vm *C8VM) execute(in Input) error {
	x := uint8((vm.opcode >> 8) & 0x000F) // the lower 4 bits of the high byte of the instruction
	y := uint8((vm.opcode >> 4) & 0x000F) // the upper 4 bits of the low byte of the instruction
	n := uint8(vm.opcode & 0x000F)        // the lowest 4 bits of the instruction
	kk := uint8(vm.opcode & 0x00FF)       // the lowest 8 bits of the instruction
	nnn := vm.opcode & 0x0FFF             // the lowest 12 bits of the instruction

	vm.waitingKey = false

	switch vm.opcode & 0xF000 { // Compare against the first 4 bits of the instruction only
	case 0x0000:
		switch vm.opcode {
		case 0x00E0: // CLS
			vm.pixels.Clear()
			vm.drawFlag = true
			vm.pc += 2
		case 0x00EE: // RET
			addr, err := vm.pop()
			if err != nil {
				return err
			}
			vm.pc = addr
		default:
			return ErrUnknownOpcode
		}
	case 0x1000: // JP nnn
		vm.pc = nnn
	case 0x2000: // CALL nnn
		if err := vm.push(vm.pc + 2); err != nil {
			return err
		}
		vm.pc = nnn
	case 0x3000: // SE Vx, kk
		vm.skipIf(vm.regV[x] == kk)
	case 0x4000: // SNE Vx, kk
		vm.skipIf(vm.regV[x] != kk)
	case 0x5000: // SE Vx, Vy
		if n != 0 {
			return ErrUnknownOpcode
		}
		vm.skipIf(vm.regV[x] == vm.regV[y])
	case 0x6000: // LD Vx, kk
		vm.regV[x] = kk
		vm.pc += 2
	case 0x7000: // ADD Vx, kk
		vm.regV[x] += kk
		vm.pc += 2
	case 0x8000:
		if err := vm.alu(x, y, n); err != nil {
			return err
		}
		vm.pc += 2
	case 0x9000: // SNE Vx, Vy
		if n != 0 {
			return ErrUnknownOpcode
		}
		vm.skipIf(vm.regV[x] != vm.regV[y])
	case 0xA000: // LD I, nnn
		vm.regI = nnn
		vm.pc += 2
	case 0xB000: // JP V0, nnn
		vm.pc = nnn + uint16(vm.regV[0])
	case 0xC000: // RND Vx, kk
		vm.regV[x] = vm.random() & kk
		vm.pc += 2
	case 0xD000: // DRW Vx, Vy, n
		vm.drawSprite(vm.regV[x], vm.regV[y], n)
		vm.pc += 2
	case 0xE000:
		switch kk {
		case 0x9E: // SKP Vx
			vm.skipIf(in.Keys.Held(vm.regV[x]))
		case 0xA1: // SKNP Vx
			vm.skipIf(!in.Keys.Held(vm.regV[x]))
		default:
			return ErrUnknownOpcode
		}
	case 0xF000:
		return vm.misc(x, kk, in)
	default:
		return ErrUnknownOpcode
	}
	return nil
}

// skipIf advances past the next instruction when cond holds
func (vm *C8VM) skipIf(cond bool) {
	if cond {
		vm.pc += 2
	}
	vm.pc += 2
}

// alu executes the 8XYN register-register family. The flag register is
// written before Vx, so with x == 0xF the result wins.
func (vm *C8VM) alu(x, y, n uint8) error {
	vx, vy := vm.regV[x], vm.regV[y]
	switch n {
	case 0x0: // LD Vx, Vy
		vm.regV[x] = vy
	case 0x1: // OR Vx, Vy
		vm.regV[x] = vx | vy
	case 0x2: // AND Vx, Vy
		vm.regV[x] = vx & vy
	case 0x3: // XOR Vx, Vy
		vm.regV[x] = vx ^ vy
	case 0x4: // ADD Vx, Vy
		sum := uint16(vx) + uint16(vy)
		vm.regV[flagReg] = flag(sum > 0xFF)
		vm.regV[x] = uint8(sum)
	case 0x5: // SUB Vx, Vy
		vm.regV[flagReg] = flag(vx > vy)
		vm.regV[x] = vx - vy
	case 0x6: // SHR Vx {, Vy}
		vm.regV[flagReg] = vx & 0x01
		vm.regV[x] = vx >> 1
	case 0x7: // SUBN Vx, Vy
		vm.regV[flagReg] = flag(vy > vx)
		vm.regV[x] = vy - vx
	case 0xE: // SHL Vx {, Vy}
		vm.regV[flagReg] = vx >> 7
		vm.regV[x] = vx << 1
	default:
		return ErrUnknownOpcode
	}
	return nil
}

// misc executes the FXkk family
func (vm *C8VM) misc(x, kk uint8, in Input) error {
	switch kk {
	case 0x07: // LD Vx, DT
		vm.regV[x] = vm.timers.Delay
	case 0x0A: // LD Vx, K
		key, held := in.Keys.Lowest()
		if !in.Edge || !held {
			// leave pc on this instruction so that it runs again next cycle
			vm.waitingKey = true
			return nil
		}
		vm.regV[x] = key
	case 0x15: // LD DT, Vx
		vm.timers.Delay = vm.regV[x]
	case 0x18: // LD ST, Vx
		vm.timers.Sound = vm.regV[x]
	case 0x1E: // ADD I, Vx
		vm.regI += uint16(vm.regV[x])
	case 0x29: // LD F, Vx
		vm.regI = uint16(vm.regV[x]) * glyphSize
	case 0x33: // LD B, Vx
		vx := vm.regV[x]
		vm.memory[vm.addr(0)] = vx / 100
		vm.memory[vm.addr(1)] = (vx / 10) % 10
		vm.memory[vm.addr(2)] = vx % 10
	case 0x55: // LD [I], Vx
		for i := uint16(0); i <= uint16(x); i++ {
			vm.memory[vm.addr(i)] = vm.regV[i]
		}
	case 0x65: // LD Vx, [I]
		for i := uint16(0); i <= uint16(x); i++ {
			vm.regV[i] = vm.memory[vm.addr(i)]
		}
	default:
		return ErrUnknownOpcode
	}
	vm.pc += 2
	return nil
}
