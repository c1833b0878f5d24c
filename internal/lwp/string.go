package lwp

import "fmt"

func catalogString(c *Catalog, code byte) string {
	if name, err := c.NameOf(code); err == nil {
		return name
	}
	return fmt.Sprintf("%s(0x%02x)", c.name, code)
}

func (t MessageType) String() string       { return catalogString(messageTypes, byte(t)) }
func (t DeviceType) String() string        { return catalogString(deviceTypes, byte(t)) }
func (t HubAlertType) String() string      { return catalogString(hubAlertTypes, byte(t)) }
func (t HubAlertOperation) String() string { return catalogString(hubAlertOperations, byte(t)) }
func (t HubAction) String() string         { return catalogString(hubActions, byte(t)) }
func (t SubCommand) String() string        { return catalogString(subCommands, byte(t)) }
func (t ServerSubCommand) String() string  { return catalogString(serverSubCommands, byte(t)) }
func (t ReturnCode) String() string        { return catalogString(returnCodes, byte(t)) }
func (t WriteDirectMode) String() string   { return catalogString(writeDirectModes, byte(t)) }
func (t HubColor) String() string          { return catalogString(hubColors, byte(t)) }
func (t PeripheralEvent) String() string   { return catalogString(peripheralEvents, byte(t)) }
func (t ConnectionState) String() string   { return catalogString(connectionStates, byte(t)) }
func (t CommandStatus) String() string     { return catalogString(commandStatuses, byte(t)) }
func (t Port) String() string              { return catalogString(ports, byte(t)) }

// Valid reports whether the code is defined in its catalog.
func (t MessageType) Valid() bool     { _, err := messageTypes.NameOf(byte(t)); return err == nil }
func (t DeviceType) Valid() bool      { _, err := deviceTypes.NameOf(byte(t)); return err == nil }
func (t ReturnCode) Valid() bool      { _, err := returnCodes.NameOf(byte(t)); return err == nil }
func (t PeripheralEvent) Valid() bool { _, err := peripheralEvents.NameOf(byte(t)); return err == nil }

// MessageTypeOf validates a raw byte against the MessageType catalog.
func MessageTypeOf(code byte) (MessageType, error) {
	if _, err := messageTypes.NameOf(code); err != nil {
		return 0, err
	}
	return MessageType(code), nil
}

// DeviceTypeOf validates a raw byte against the DeviceType catalog.
func DeviceTypeOf(code byte) (DeviceType, error) {
	if _, err := deviceTypes.NameOf(code); err != nil {
		return 0, err
	}
	return DeviceType(code), nil
}

// ReturnCodeOf validates a raw byte against the ReturnCode catalog.
func ReturnCodeOf(code byte) (ReturnCode, error) {
	if _, err := returnCodes.NameOf(code); err != nil {
		return 0, err
	}
	return ReturnCode(code), nil
}
