package internal

// NumKeys is the size of the hexadecimal keypad
const NumKeys = 16

// Keys holds the state of the 16 logical keys, indexed 0x0-0xF
type Keys [NumKeys]bool

// Held reports whether key k is down. Only the low nibble of k is used.
func (k Keys) Held(key uint8) bool {
	return k[key&0xF]
}

// Lowest returns the lowest numbered key that is down
func (k Keys) Lowest() (uint8, bool) {
	for i, down := range k {
		if down {
			return uint8(i), true
		}
	}
	return 0, false
}

// Input is the snapshot of the keypad handed to the VM every cycle. Edge is
// set when any key changed state since the previous snapshot.
type Input struct {
	Keys Keys
	Edge bool
}

// Keypad accumulates key events from a frontend between cycles
type Keypad struct {
	// A 16-bit integer to hold the current key values in the form of individual bits.
	// So when 0 is pushed in the keypad, the 0'th bit will be set and so on.
	key  uint16
	edge bool
}

// Press sets the respective bit in the key
func (kp *Keypad) Press(code uint8) {
	mask := uint16(1) << (code & 0xF)
	if kp.key&mask == 0 {
		kp.key |= mask
		kp.edge = true
	}
}

// Release unsets the respective bit in the key
func (kp *Keypad) Release(code uint8) {
	mask := uint16(1) << (code & 0xF)
	if kp.key&mask != 0 {
		kp.key &^= mask
		kp.edge = true
	}
}

// Snapshot returns the current key state and clears the edge flag
func (kp *Keypad) Snapshot() Input {
	var in Input
	for i := range in.Keys {
		in.Keys[i] = kp.key&(1<<i) != 0
	}
	in.Edge = kp.edge
	kp.edge = false
	return in
}

// qwertyLayout lists, for each logical key 0x0-0xF, the QWERTY key mapped to it.
// Below we have a mapping QWERTY keyboard to the CHIP-8 keypad
// +--------+--------+--------+--------+
// | 1 -> 1 | 2 -> 2 | 3 -> 3 | 4 -> C |
// +--------+--------+--------+--------+
// | Q -> 4 | W -> 5 | E -> 6 | R -> D |
// +--------+--------+--------+--------+
// | A -> 7 | S -> 8 | D -> 9 | F -> E |
// +--------+--------+--------+--------+
// | Z -> A | X -> 0 | C -> B | V -> F |
// +--------+--------+--------+--------+
const qwertyLayout = "x123qweasdzc4rfv"

// KeyForRune maps a QWERTY character to its logical key. Case is ignored.
func KeyForRune(r rune) (uint8, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	for i, c := range qwertyLayout {
		if c == r {
			return uint8(i), true
		}
	}
	return 0, false
}

// RuneForKey is the inverse of KeyForRune
func RuneForKey(code uint8) rune {
	return rune(qwertyLayout[code&0xF])
}
