// Package downstream owns assembly of hub-bound LWP commands.
//
// Every builder produces one complete wire message via Build; the
// common header comes from the frame package, multi-byte arguments are
// little-endian as the protocol dictates.
package downstream

import (
	"encoding/binary"
	"errors"

	"github.com/programmingLego/lwpctl/internal/lwp"
	"github.com/programmingLego/lwpctl/internal/lwp/frame"
)

var (
	ErrTimeRange      = errors.New("downstream: time to full speed outside [0..10000]")
	ErrSpeedRange     = errors.New("downstream: speed outside [-100..100]")
	ErrPowerRange     = errors.New("downstream: power outside [-100..100]")
	ErrProfileSubCmd  = errors.New("downstream: profile sub-command must be SET_ACC_PROFILE or SET_DECC_PROFILE")
	ErrEndState       = errors.New("downstream: end state must be COAST, HOLD or BREAK")
	ErrAlertOperation = errors.New("downstream: alert operation is upstream-only")
	ErrWriteMode      = errors.New("downstream: unsupported write direct mode")
	ErrConnState      = errors.New("downstream: connection state must be CONNECT or DISCONNECT")
)

// Command is one assembled downstream message.
type Command interface {
	Build() ([]byte, error)
}

// condByte packs start condition (upper nibble) and completion
// condition (lower nibble) into the single wire byte.
func condByte(start, completion lwp.Movement) byte {
	return byte(start) | byte(completion)
}

// profileByte packs the profile number with the acc/dec use flags.
func profileByte(no uint8, useAcc, useDec bool) byte {
	b := lwp.Movement(no)
	if useAcc {
		b |= lwp.ProfileUseAcc
	}
	if useDec {
		b |= lwp.ProfileUseDec
	}
	return byte(b)
}

// signedSpeed folds a magnitude and a direction constant into the
// signed wire byte.
func signedSpeed(speed int, direction lwp.Movement) (byte, error) {
	v := speed * int(direction)
	if v < -100 || v > 100 {
		return 0, ErrSpeedRange
	}
	return byte(int8(v)), nil
}

func endStateByte(state lwp.Movement) (byte, error) {
	switch state {
	case lwp.MoveCoast, lwp.MoveHold, lwp.MoveBrake:
		return byte(int8(state)), nil
	}
	return 0, ErrEndState
}

// SetAccDecProfile sets the time allowed to reach (or leave) full speed.
// The longer the time, the smoother the ramp.
type SetAccDecProfile struct {
	Port            lwp.Port
	Profile         lwp.SubCommand // SubSetAccProfile or SubSetDecProfile
	StartCond       lwp.Movement
	CompletionCond  lwp.Movement
	TimeToFullSpeed int // ms, [0..10000]
	ProfileNo       uint8
}

func (c SetAccDecProfile) Build() ([]byte, error) {
	if c.Profile != lwp.SubSetAccProfile && c.Profile != lwp.SubSetDecProfile {
		return nil, ErrProfileSubCmd
	}
	if c.TimeToFullSpeed < 0 || c.TimeToFullSpeed > 10000 {
		return nil, ErrTimeRange
	}
	payload := []byte{byte(c.Port), condByte(c.StartCond, c.CompletionCond), byte(c.Profile)}
	payload = binary.LittleEndian.AppendUint16(payload, uint16(c.TimeToFullSpeed))
	payload = append(payload, c.ProfileNo)
	return frame.Encode(lwp.MsgPortCommand, payload)
}

// PortNotificationRequest enables or disables value updates for a port.
type PortNotificationRequest struct {
	Port          lwp.Port
	Mode          byte
	DeltaInterval uint32 // 0 means the protocol default of 1
	Enabled       bool
}

func (c PortNotificationRequest) Build() ([]byte, error) {
	delta := c.DeltaInterval
	if delta == 0 {
		delta = 1
	}
	status := lwp.StatusDisabled
	if c.Enabled {
		status = lwp.StatusEnabled
	}
	payload := []byte{byte(c.Port), c.Mode}
	payload = binary.LittleEndian.AppendUint32(payload, delta)
	payload = append(payload, byte(status))
	return frame.Encode(lwp.MsgPortNotificationReq, payload)
}

// HubActionCommand requests a hub-level action.
type HubActionCommand struct {
	Action lwp.HubAction
}

func (c HubActionCommand) Build() ([]byte, error) {
	return frame.Encode(lwp.MsgHubAction, []byte{byte(c.Action)})
}

// HubAlertCommand subscribes, unsubscribes or polls a hub alert.
type HubAlertCommand struct {
	Alert lwp.HubAlertType
	Op    lwp.HubAlertOperation
}

func (c HubAlertCommand) Build() ([]byte, error) {
	if c.Op == lwp.AlertOpUpdate {
		return nil, ErrAlertOperation
	}
	return frame.Encode(lwp.MsgHubAlert, []byte{byte(c.Alert), byte(c.Op)})
}

// StartPower turns a single motor with unregulated power until stopped.
// Hold, Brake and Coast directions map to the reserved power bytes and
// route through the write-direct encoding.
type StartPower struct {
	Port           lwp.Port
	StartCond      lwp.Movement
	CompletionCond lwp.Movement
	Power          int
	Direction      lwp.Movement
}

func (c StartPower) Build() ([]byte, error) {
	power := c.Power * int(c.Direction)
	switch c.Direction {
	case lwp.MoveHold, lwp.MoveBrake:
		power = int(c.Direction)
	case lwp.MoveCoast:
		power = 0
	}
	wd := WriteDirect{
		Port:           c.Port,
		StartCond:      c.StartCond,
		CompletionCond: c.CompletionCond,
		Mode:           lwp.WDSetMotorPower,
		Power:          power,
	}
	return wd.Build()
}

// StartPowerSync turns two synchronized motors with unregulated power.
type StartPowerSync struct {
	Port           lwp.Port
	StartCond      lwp.Movement
	CompletionCond lwp.Movement
	PowerA         int
	DirectionA     lwp.Movement
	PowerB         int
	DirectionB     lwp.Movement
	AbsMaxPower    uint8
	ProfileNo      uint8
	UseAccProfile  bool
	UseDecProfile  bool
}

func (c StartPowerSync) Build() ([]byte, error) {
	a, err := signedSpeed(c.PowerA, c.DirectionA)
	if err != nil {
		return nil, ErrPowerRange
	}
	b, err := signedSpeed(c.PowerB, c.DirectionB)
	if err != nil {
		return nil, ErrPowerRange
	}
	payload := []byte{
		byte(c.Port),
		condByte(c.StartCond, c.CompletionCond),
		byte(lwp.SubStartPowerSync),
		a, b,
		c.AbsMaxPower,
		profileByte(c.ProfileNo, c.UseAccProfile, c.UseDecProfile),
	}
	return frame.Encode(lwp.MsgPortCommand, payload)
}

// StartSpeed turns a motor at a regulated speed, not exceeding
// AbsMaxPower. Speed 0 holds the current position.
type StartSpeed struct {
	Port           lwp.Port
	StartCond      lwp.Movement
	CompletionCond lwp.Movement
	Speed          int
	Direction      lwp.Movement
	AbsMaxPower    uint8
	ProfileNo      uint8
	UseAccProfile  bool
	UseDecProfile  bool
}

func (c StartSpeed) Build() ([]byte, error) {
	speed, err := signedSpeed(c.Speed, c.Direction)
	if err != nil {
		return nil, err
	}
	payload := []byte{
		byte(c.Port),
		condByte(c.StartCond, c.CompletionCond),
		byte(lwp.SubStartSpeed),
		speed,
		c.AbsMaxPower,
		profileByte(c.ProfileNo, c.UseAccProfile, c.UseDecProfile),
	}
	return frame.Encode(lwp.MsgPortCommand, payload)
}

// StartSpeedSync is the two-motor synchronized variant of StartSpeed.
type StartSpeedSync struct {
	Port           lwp.Port
	StartCond      lwp.Movement
	CompletionCond lwp.Movement
	SpeedA         int
	DirectionA     lwp.Movement
	SpeedB         int
	DirectionB     lwp.Movement
	AbsMaxPower    uint8
	ProfileNo      uint8
	UseAccProfile  bool
	UseDecProfile  bool
}

func (c StartSpeedSync) Build() ([]byte, error) {
	a, err := signedSpeed(c.SpeedA, c.DirectionA)
	if err != nil {
		return nil, err
	}
	b, err := signedSpeed(c.SpeedB, c.DirectionB)
	if err != nil {
		return nil, err
	}
	payload := []byte{
		byte(c.Port),
		condByte(c.StartCond, c.CompletionCond),
		byte(lwp.SubStartSpeedSync),
		a, b,
		c.AbsMaxPower,
		profileByte(c.ProfileNo, c.UseAccProfile, c.UseDecProfile),
	}
	return frame.Encode(lwp.MsgPortCommand, payload)
}

// TurnForTime runs a motor for a duration in ms, then applies OnCompletion.
type TurnForTime struct {
	Port           lwp.Port
	StartCond      lwp.Movement
	CompletionCond lwp.Movement
	Time           uint16 // ms
	Speed          int
	Direction      lwp.Movement
	Power          uint8
	OnCompletion   lwp.Movement
	ProfileNo      uint8
	UseAccProfile  bool
	UseDecProfile  bool
}

func (c TurnForTime) Build() ([]byte, error) {
	speed, err := signedSpeed(c.Speed, c.Direction)
	if err != nil {
		return nil, err
	}
	end, err := endStateByte(c.OnCompletion)
	if err != nil {
		return nil, err
	}
	payload := []byte{
		byte(c.Port),
		condByte(c.StartCond, c.CompletionCond),
		byte(lwp.SubTurnForTime),
	}
	payload = binary.LittleEndian.AppendUint16(payload, c.Time)
	payload = append(payload, speed, c.Power, end,
		profileByte(c.ProfileNo, c.UseAccProfile, c.UseDecProfile))
	return frame.Encode(lwp.MsgPortCommand, payload)
}

// TurnForTimeSync is the two-motor synchronized variant of TurnForTime.
type TurnForTimeSync struct {
	Port           lwp.Port
	StartCond      lwp.Movement
	CompletionCond lwp.Movement
	Time           uint16 // ms
	SpeedA         int
	DirectionA     lwp.Movement
	SpeedB         int
	DirectionB     lwp.Movement
	Power          uint8
	OnCompletion   lwp.Movement
	ProfileNo      uint8
	UseAccProfile  bool
	UseDecProfile  bool
}

func (c TurnForTimeSync) Build() ([]byte, error) {
	a, err := signedSpeed(c.SpeedA, c.DirectionA)
	if err != nil {
		return nil, err
	}
	b, err := signedSpeed(c.SpeedB, c.DirectionB)
	if err != nil {
		return nil, err
	}
	end, err := endStateByte(c.OnCompletion)
	if err != nil {
		return nil, err
	}
	payload := []byte{
		byte(c.Port),
		condByte(c.StartCond, c.CompletionCond),
		byte(lwp.SubTurnForTimeSync),
	}
	payload = binary.LittleEndian.AppendUint16(payload, c.Time)
	payload = append(payload, a, b, c.Power, end,
		profileByte(c.ProfileNo, c.UseAccProfile, c.UseDecProfile))
	return frame.Encode(lwp.MsgPortCommand, payload)
}

// TurnForDegrees runs a motor through an angle, then applies OnCompletion.
type TurnForDegrees struct {
	Port           lwp.Port
	StartCond      lwp.Movement
	CompletionCond lwp.Movement
	Degrees        uint32
	Speed          int
	Direction      lwp.Movement
	AbsMaxPower    uint8
	OnCompletion   lwp.Movement
	ProfileNo      uint8
	UseAccProfile  bool
	UseDecProfile  bool
}

func (c TurnForDegrees) Build() ([]byte, error) {
	speed, err := signedSpeed(c.Speed, c.Direction)
	if err != nil {
		return nil, err
	}
	end, err := endStateByte(c.OnCompletion)
	if err != nil {
		return nil, err
	}
	payload := []byte{
		byte(c.Port),
		condByte(c.StartCond, c.CompletionCond),
		byte(lwp.SubTurnForDegrees),
	}
	payload = binary.LittleEndian.AppendUint32(payload, c.Degrees)
	payload = append(payload, speed, c.AbsMaxPower, end,
		profileByte(c.ProfileNo, c.UseAccProfile, c.UseDecProfile))
	return frame.Encode(lwp.MsgPortCommand, payload)
}

// TurnForDegreesSync is the two-motor synchronized variant of TurnForDegrees.
type TurnForDegreesSync struct {
	Port           lwp.Port
	StartCond      lwp.Movement
	CompletionCond lwp.Movement
	Degrees        uint32
	SpeedA         int
	SpeedB         int
	AbsMaxPower    uint8
	OnCompletion   lwp.Movement
	ProfileNo      uint8
	UseAccProfile  bool
	UseDecProfile  bool
}

func (c TurnForDegreesSync) Build() ([]byte, error) {
	a, err := signedSpeed(c.SpeedA, lwp.MoveForward)
	if err != nil {
		return nil, err
	}
	b, err := signedSpeed(c.SpeedB, lwp.MoveForward)
	if err != nil {
		return nil, err
	}
	end, err := endStateByte(c.OnCompletion)
	if err != nil {
		return nil, err
	}
	payload := []byte{
		byte(c.Port),
		condByte(c.StartCond, c.CompletionCond),
		byte(lwp.SubTurnForDegreesSync),
	}
	payload = binary.LittleEndian.AppendUint32(payload, c.Degrees)
	payload = append(payload, a, b, c.AbsMaxPower, end,
		profileByte(c.ProfileNo, c.UseAccProfile, c.UseDecProfile))
	return frame.Encode(lwp.MsgPortCommand, payload)
}

// GotoAbsolutePosition drives straight to an absolute position; turning
// left or right follows the sign of Speed.
type GotoAbsolutePosition struct {
	Port           lwp.Port
	StartCond      lwp.Movement
	CompletionCond lwp.Movement
	AbsPos         int32
	Speed          int
	AbsMaxPower    uint8
	OnCompletion   lwp.Movement
	ProfileNo      uint8
	UseAccProfile  bool
	UseDecProfile  bool
}

func (c GotoAbsolutePosition) Build() ([]byte, error) {
	speed, err := signedSpeed(c.Speed, lwp.MoveForward)
	if err != nil {
		return nil, err
	}
	end, err := endStateByte(c.OnCompletion)
	if err != nil {
		return nil, err
	}
	payload := []byte{
		byte(c.Port),
		condByte(c.StartCond, c.CompletionCond),
		byte(lwp.SubGotoAbsolutePos),
	}
	payload = binary.LittleEndian.AppendUint32(payload, uint32(c.AbsPos))
	payload = append(payload, speed, c.AbsMaxPower, end,
		profileByte(c.ProfileNo, c.UseAccProfile, c.UseDecProfile))
	return frame.Encode(lwp.MsgPortCommand, payload)
}

// GotoAbsolutePositionSync sets separate target positions for the two
// motors behind a virtual port.
type GotoAbsolutePositionSync struct {
	Port           lwp.Port
	StartCond      lwp.Movement
	CompletionCond lwp.Movement
	AbsPosA        int32
	AbsPosB        int32
	Speed          int
	AbsMaxPower    uint8
	OnCompletion   lwp.Movement
	ProfileNo      uint8
	UseAccProfile  bool
	UseDecProfile  bool
}

func (c GotoAbsolutePositionSync) Build() ([]byte, error) {
	speed, err := signedSpeed(c.Speed, lwp.MoveForward)
	if err != nil {
		return nil, err
	}
	end, err := endStateByte(c.OnCompletion)
	if err != nil {
		return nil, err
	}
	payload := []byte{
		byte(c.Port),
		condByte(c.StartCond, c.CompletionCond),
		byte(lwp.SubGotoAbsolutePosSyn),
	}
	payload = binary.LittleEndian.AppendUint32(payload, uint32(c.AbsPosA))
	payload = binary.LittleEndian.AppendUint32(payload, uint32(c.AbsPosB))
	payload = append(payload, speed, c.AbsMaxPower, end,
		profileByte(c.ProfileNo, c.UseAccProfile, c.UseDecProfile))
	return frame.Encode(lwp.MsgPortCommand, payload)
}

// PresetEncoder zeroes or presets the encoder values of the left and
// right motor behind a virtual port.
type PresetEncoder struct {
	Port   lwp.Port
	ValueA int32
	ValueB int32
}

func (c PresetEncoder) Build() ([]byte, error) {
	payload := []byte{
		byte(c.Port),
		condByte(lwp.OnStartExecImmediately, lwp.OnCompletionUpdateStatus),
		byte(lwp.SubPresetEncoder),
	}
	payload = binary.LittleEndian.AppendUint32(payload, uint32(c.ValueA))
	payload = binary.LittleEndian.AppendUint32(payload, uint32(c.ValueB))
	return frame.Encode(lwp.MsgPortCommand, payload)
}

// VirtualPortSetup combines two ports into a virtual port, or tears a
// virtual port down.
type VirtualPortSetup struct {
	State lwp.ConnectionState
	PortA lwp.Port // connect
	PortB lwp.Port // connect
	Port  lwp.Port // disconnect
}

func (c VirtualPortSetup) Build() ([]byte, error) {
	switch c.State {
	case lwp.StateConnect:
		return frame.Encode(lwp.MsgVirtualPortSetup,
			[]byte{byte(c.State), byte(c.PortA), byte(c.PortB)})
	case lwp.StateDisconnect:
		return frame.Encode(lwp.MsgVirtualPortSetup,
			[]byte{byte(c.State), byte(c.Port)})
	}
	return nil, ErrConnState
}

// WriteDirect encodes the write-direct command family: LED color, LED
// RGB, encoder position preset and raw motor power.
type WriteDirect struct {
	Port           lwp.Port
	StartCond      lwp.Movement
	CompletionCond lwp.Movement
	Mode           lwp.WriteDirectMode
	Color          lwp.HubColor
	Red            uint8
	Green          uint8
	Blue           uint8
	Position       int32
	Power          int
}

func (c WriteDirect) Build() ([]byte, error) {
	payload := []byte{
		byte(c.Port),
		condByte(c.StartCond, c.CompletionCond),
		byte(lwp.SubWriteDirect),
		byte(c.Mode),
	}
	switch c.Mode {
	case lwp.WDSetLEDColor:
		payload = append(payload, byte(c.Color))
	case lwp.WDSetLEDRGB:
		payload = append(payload, c.Red, c.Green, c.Blue)
	case lwp.WDSetPosition:
		payload = binary.LittleEndian.AppendUint32(payload, uint32(c.Position))
	case lwp.WDSetMotorPower:
		if (c.Power < -100 || c.Power > 100) && c.Power != int(lwp.MoveHold) && c.Power != int(lwp.MoveBrake) {
			return nil, ErrPowerRange
		}
		payload = append(payload, byte(int8(c.Power)))
	default:
		return nil, ErrWriteMode
	}
	return frame.Encode(lwp.MsgPortCommand, payload)
}

// ExternalServerConnect registers a device port with the bridge server.
type ExternalServerConnect struct {
	Port lwp.Port
}

func (c ExternalServerConnect) Build() ([]byte, error) {
	return frame.Encode(lwp.MsgExternalServerCmd,
		[]byte{byte(c.Port), byte(lwp.ServerRegister)})
}

// ExternalServerDisconnect deregisters a device port from the bridge server.
type ExternalServerDisconnect struct {
	Port lwp.Port
}

func (c ExternalServerDisconnect) Build() ([]byte, error) {
	return frame.Encode(lwp.MsgExternalServerCmd,
		[]byte{byte(c.Port), byte(lwp.ServerDisconnect)})
}
