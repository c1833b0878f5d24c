package lwp

// UPS == upstream (from hub), DNS == downstream (to hub).

// MessageType is the wire message category carried in the common header.
type MessageType byte

const (
	MsgGeneralHubNotification MessageType = 0x01
	MsgHubAction              MessageType = 0x02
	MsgHubAlert               MessageType = 0x03
	MsgHubAttachedIO          MessageType = 0x04
	MsgHubGenericError        MessageType = 0x05
	MsgPortNotificationReq    MessageType = 0x41
	MsgPortValue              MessageType = 0x45
	MsgPortNotification       MessageType = 0x47
	MsgExternalServerCmd      MessageType = 0x5c
	MsgVirtualPortSetup       MessageType = 0x61
	MsgPortCommand            MessageType = 0x81
	MsgPortCommandFeedback    MessageType = 0x82
)

// DeviceType identifies the kind of peripheral attached to a hub port.
type DeviceType byte

const (
	DeviceInternalMotor          DeviceType = 0x00
	DeviceSystemTrainMotor       DeviceType = 0x01
	DeviceButton                 DeviceType = 0x05
	DeviceLED                    DeviceType = 0x08
	DeviceVoltage                DeviceType = 0x14
	DeviceCurrent                DeviceType = 0x15
	DevicePiezoTone              DeviceType = 0x16
	DeviceRGBLight               DeviceType = 0x17
	DeviceExternalTiltSensor     DeviceType = 0x22
	DeviceMotionSensor           DeviceType = 0x23
	DeviceVisionSensor           DeviceType = 0x25
	DeviceExternalMotorWithTacho DeviceType = 0x26
	DeviceInternalMotorWithTacho DeviceType = 0x27
	DeviceInternalTilt           DeviceType = 0x28
	DeviceExternalMotor          DeviceType = 0x2e
)

// HubAlertType is an alert condition the hub can report.
type HubAlertType byte

const (
	AlertLowVoltage   HubAlertType = 0x01
	AlertHighCurrent  HubAlertType = 0x02
	AlertLowSignal    HubAlertType = 0x03
	AlertOverPowerCnd HubAlertType = 0x04
)

// HubAlertOperation selects how an alert is (un)subscribed or reported.
type HubAlertOperation byte

const (
	AlertOpUpdateEnable  HubAlertOperation = 0x01
	AlertOpUpdateDisable HubAlertOperation = 0x02
	AlertOpUpdateRequest HubAlertOperation = 0x03
	AlertOpUpdate        HubAlertOperation = 0x04
)

// HubAction is a hub-level action, downstream request or upstream notice.
type HubAction byte

const (
	ActionSwitchOff      HubAction = 0x01
	ActionDisconnect     HubAction = 0x02
	ActionVCCPortOn      HubAction = 0x03
	ActionVCCPortOff     HubAction = 0x04
	ActionBusyOn         HubAction = 0x05
	ActionBusyOff        HubAction = 0x06
	ActionFastShutdown   HubAction = 0x2f
	ActionWillSwitchOff  HubAction = 0x30
	ActionWillDisconnect HubAction = 0x31
	ActionWillBoot       HubAction = 0x32
)

// SubCommand is a port output sub-operation nested under MsgPortCommand.
type SubCommand byte

const (
	SubStartPower         SubCommand = 0x01
	SubStartPowerSync     SubCommand = 0x02
	SubSetAccProfile      SubCommand = 0x05
	SubSetDecProfile      SubCommand = 0x06
	SubStartSpeed         SubCommand = 0x07
	SubStartSpeedSync     SubCommand = 0x08
	SubTurnForTime        SubCommand = 0x09
	SubTurnForTimeSync    SubCommand = 0x0a
	SubTurnForDegrees     SubCommand = 0x0b
	SubTurnForDegreesSync SubCommand = 0x0c
	SubGotoAbsolutePos    SubCommand = 0x0d
	SubGotoAbsolutePosSyn SubCommand = 0x0e
	SubPresetEncoder      SubCommand = 0x14
	SubWriteDirect        SubCommand = 0x51
)

// ServerSubCommand is an external-server bridge sub-operation.
type ServerSubCommand byte

const (
	ServerRegister   ServerSubCommand = 0x00
	ServerDisconnect ServerSubCommand = 0xdd
)

// ReturnCode is the outcome status of an issued command.
type ReturnCode byte

const (
	RetACK               ReturnCode = 0x01
	RetMACK              ReturnCode = 0x02
	RetBufferOverflow    ReturnCode = 0x03
	RetTimeout           ReturnCode = 0x04
	RetCmdNotRecognized  ReturnCode = 0x05
	RetInvalidUse        ReturnCode = 0x06
	RetOvercurrent       ReturnCode = 0x07
	RetInternalError     ReturnCode = 0x08
	RetExecutionFinished ReturnCode = 0x0a
)

// WriteDirectMode selects the direct-write target under SubWriteDirect.
type WriteDirectMode byte

const (
	WDSetLEDColor   WriteDirectMode = 0x00
	WDSetLEDRGB     WriteDirectMode = 0x01
	WDSetPosition   WriteDirectMode = 0x02
	WDSetMotorPower WriteDirectMode = 0x03
)

// HubColor is a hub LED color index.
type HubColor byte

const (
	ColorBlack     HubColor = 0x00
	ColorPink      HubColor = 0x01
	ColorPurple    HubColor = 0x02
	ColorBlue      HubColor = 0x03
	ColorLightBlue HubColor = 0x04
	ColorTeal      HubColor = 0x05
	ColorGreen     HubColor = 0x06
	ColorYellow    HubColor = 0x07
	ColorOrange    HubColor = 0x08
	ColorRed       HubColor = 0x09
	ColorWhite     HubColor = 0x0a
)

// PeripheralEvent describes an attachment state change on a port.
type PeripheralEvent byte

const (
	EventIODetached        PeripheralEvent = 0x00
	EventIOAttached        PeripheralEvent = 0x01
	EventVirtualIOAttached PeripheralEvent = 0x02
	EventSrvConnected      PeripheralEvent = 0x03
	EventSrvDisconnected   PeripheralEvent = 0x04
)

// ConnectionState is the virtual port setup connect/disconnect selector.
type ConnectionState byte

const (
	StateDisconnect ConnectionState = 0x00
	StateConnect    ConnectionState = 0x01
)

// CommandStatus enables or disables a port value notification stream.
type CommandStatus byte

const (
	StatusDisabled CommandStatus = 0x00
	StatusEnabled  CommandStatus = 0x01
)

// Port is a hub port id.
type Port byte

const (
	PortA   Port = 0x00
	PortB   Port = 0x01
	PortC   Port = 0x02
	PortD   Port = 0x03
	PortLED Port = 0x32
)
