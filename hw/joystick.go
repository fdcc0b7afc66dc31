package hw

// JoyKeys is a set of pressed joystick keys.
type JoyKeys uint8

const (
	JoyFire1 JoyKeys = 1 << iota
	JoyFire2
	JoyFire3
	JoyUp
	JoyDown
	JoyLeft
	JoyRight
)

// Joystick lines on VIA 0 port A in ASCII keyboard mode, or keypad position
// in hex keypad mode.
var joyLines = [...]struct {
	bit      uint8
	row, col int
}{
	{bit: 1, row: 0, col: 2}, // fire 1
	{bit: 2, row: 4, col: 0}, // fire 2
	{bit: 3, row: 2, col: 0}, // fire 3
	{bit: 5, row: 1, col: 2}, // up
	{bit: 7, row: 1, col: 0}, // down
	{bit: 4, row: 2, col: 1}, // left
	{bit: 6, row: 0, col: 1}, // right
}

// Joystick routes joystick keys to the VIA input port or to the hex keypad,
// depending on the keyboard mode. Lines are active low on the VIA.
type Joystick struct {
	vias *VIAs
	kbd  *Keyboard
	prev JoyKeys
}

func NewJoystick(vias *VIAs, kbd *Keyboard) *Joystick {
	return &Joystick{vias: vias, kbd: kbd}
}

// Set updates the state of all joystick keys at once.
func (j *Joystick) Set(keys JoyKeys) {
	if keys == j.prev {
		return
	}
	j.prev = keys

	for i, line := range joyLines {
		down := keys&(1<<i) != 0
		if j.kbd.UsingHexKeypad() {
			j.kbd.KeypadKey(line.row, line.col, down)
			continue
		}
		if j.vias.Len() == 0 {
			continue
		}
		op := PortSet
		if down {
			op = PortClear
		}
		j.vias.SetInputPort(0, PortA, op, 1<<line.bit)
	}
}
