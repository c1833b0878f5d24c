package lwp

import "strconv"

// Movement is a named motion constant. Direction constants multiply a
// magnitude into the signed wire value; Coast/Hold/Brake are the reserved
// power bytes; the remaining constants are profile and condition flags.
type Movement int

const (
	MoveForward          Movement = 1
	MoveReverse          Movement = -1
	MoveRight            Movement = 1
	MoveLeft             Movement = -1
	MoveClockwise        Movement = 1
	MoveCounterclockwise Movement = -1

	MoveCoast Movement = 0
	MoveHold  Movement = 126
	MoveBrake Movement = 127

	ProfileNone   Movement = 0x00
	ProfileUseAcc Movement = 0x01
	ProfileUseDec Movement = 0x02

	// Start condition occupies the upper nibble of the condition byte,
	// completion condition the lower nibble.
	OnStartBufferIfNeeded    Movement = 0x00
	OnStartExecImmediately   Movement = 0x10
	OnCompletionNoAction     Movement = 0x00
	OnCompletionUpdateStatus Movement = 0x01
)

// Direction labels a DirectionalValue. Directions come in opposite pairs
// sharing an axis; the first member of each pair carries the positive
// sign convention.
type Direction uint8

const (
	Right Direction = iota
	Left
	Clockwise
	Counterclockwise
)

func (d Direction) String() string {
	switch d {
	case Right:
		return "RIGHT"
	case Left:
		return "LEFT"
	case Clockwise:
		return "CW"
	case Counterclockwise:
		return "CCW"
	}
	return "DIRECTION(?)"
}

// Opposite returns the paired direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Right:
		return Left
	case Left:
		return Right
	case Clockwise:
		return Counterclockwise
	default:
		return Clockwise
	}
}

func (d Direction) sign() int {
	if d == Left || d == Counterclockwise {
		return -1
	}
	return 1
}

func (d Direction) axis() int {
	if d == Clockwise || d == Counterclockwise {
		return 1
	}
	return 0
}

func (d Direction) positive() Direction {
	if d.sign() < 0 {
		return d.Opposite()
	}
	return d
}

// DirectionalValue is a non-negative magnitude paired with a direction
// label. The label, not a sign bit, carries directionality: arithmetic
// that crosses zero re-expresses the result with the opposite label.
type DirectionalValue struct {
	Dir       Direction
	Magnitude int
}

// Rightward returns a RIGHT-labeled value of magnitude n.
func Rightward(n int) DirectionalValue { return directional(Right, n) }

// Leftward returns a LEFT-labeled value of magnitude n.
func Leftward(n int) DirectionalValue { return directional(Left, n) }

// ClockwiseTurn returns a CW-labeled value of magnitude n.
func ClockwiseTurn(n int) DirectionalValue { return directional(Clockwise, n) }

// CounterclockwiseTurn returns a CCW-labeled value of magnitude n.
func CounterclockwiseTurn(n int) DirectionalValue { return directional(Counterclockwise, n) }

// directional normalizes a signed magnitude onto the axis of d.
func directional(d Direction, n int) DirectionalValue {
	signed := d.sign() * n
	if signed < 0 {
		return DirectionalValue{Dir: d.positive().Opposite(), Magnitude: -signed}
	}
	return DirectionalValue{Dir: d.positive(), Magnitude: signed}
}

// Signed returns the magnitude with the direction sign applied, the form
// the wire encoders consume.
func (v DirectionalValue) Signed() int { return v.Dir.sign() * v.Magnitude }

// Neg flips the direction label, keeping the magnitude.
func (v DirectionalValue) Neg() DirectionalValue {
	return directional(v.Dir, -v.Magnitude)
}

// Add combines two values on the same axis. The result direction is
// re-derived from the combined signed magnitude.
func (v DirectionalValue) Add(o DirectionalValue) (DirectionalValue, error) {
	if v.Dir.axis() != o.Dir.axis() {
		return DirectionalValue{}, ErrAxisMismatch
	}
	return directional(v.Dir, v.Dir.sign()*(v.Signed()+o.Signed())), nil
}

// Sub subtracts o from v on the same axis.
func (v DirectionalValue) Sub(o DirectionalValue) (DirectionalValue, error) {
	return v.Add(o.Neg())
}

// Mul scales the signed magnitude by k.
func (v DirectionalValue) Mul(k int) DirectionalValue {
	return directional(v.Dir, v.Dir.sign()*v.Signed()*k)
}

// Div divides the signed magnitude by k, rounding half away from zero.
func (v DirectionalValue) Div(k int) (DirectionalValue, error) {
	if k == 0 {
		return DirectionalValue{}, ErrDivideByZero
	}
	return directional(v.Dir, v.Dir.sign()*divRoundHalfAway(v.Signed(), k)), nil
}

// Cmp orders two values on the same axis by signed magnitude.
func (v DirectionalValue) Cmp(o DirectionalValue) (int, error) {
	if v.Dir.axis() != o.Dir.axis() {
		return 0, ErrAxisMismatch
	}
	a, b := v.Signed(), o.Signed()
	switch {
	case a < b:
		return -1, nil
	case a > b:
		return 1, nil
	default:
		return 0, nil
	}
}

// Equal reports axis-wise equality of signed magnitudes.
func (v DirectionalValue) Equal(o DirectionalValue) bool {
	c, err := v.Cmp(o)
	return err == nil && c == 0
}

func (v DirectionalValue) String() string {
	return v.Dir.String() + "(" + strconv.Itoa(v.Magnitude) + ")"
}

func divRoundHalfAway(a, b int) int {
	q := a / b
	r := a % b
	if r == 0 {
		return q
	}
	if 2*abs(r) >= abs(b) {
		if (a < 0) != (b < 0) {
			return q - 1
		}
		return q + 1
	}
	return q
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
