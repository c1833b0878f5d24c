package lwp

import "sort"

// Catalog is a closed name<->code table for one protocol enumeration.
// Catalogs are populated once at package init and read-only afterwards;
// they are safe for unsynchronized concurrent readers.
type Catalog struct {
	name   string
	byCode map[byte]string
	byName map[string]byte
}

func newCatalog(name string, entries map[byte]string) *Catalog {
	c := &Catalog{
		name:   name,
		byCode: entries,
		byName: make(map[string]byte, len(entries)),
	}
	for code, constant := range entries {
		c.byName[constant] = code
	}
	return c
}

// Name returns the catalog name as used by CodeOf/NameOf.
func (c *Catalog) Name() string { return c.name }

// CodeOf returns the fixed byte code for a named constant.
func (c *Catalog) CodeOf(name string) (byte, error) {
	code, ok := c.byName[name]
	if !ok {
		return 0, UnknownConstantError{Catalog: c.name, Name: name}
	}
	return code, nil
}

// NameOf is the exact inverse of CodeOf for every defined pair.
func (c *Catalog) NameOf(code byte) (string, error) {
	name, ok := c.byCode[code]
	if !ok {
		return "", UnknownCodeError{Catalog: c.name, Code: code}
	}
	return name, nil
}

// Names returns the defined constant names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of defined constants.
func (c *Catalog) Len() int { return len(c.byCode) }

// Constant names follow the wireless protocol nomenclature of the
// reference documentation, not Go identifier style.

var messageTypes = newCatalog("MessageType", map[byte]string{
	0x01: "UPS_DNS_GENERAL_HUB_NOTIFICATIONS",
	0x02: "UPS_DNS_HUB_ACTION",
	0x03: "UPS_DNS_HUB_ALERT",
	0x04: "UPS_HUB_ATTACHED_IO",
	0x05: "UPS_HUB_GENERIC_ERROR",
	0x41: "DNS_PORT_NOTIFICATION",
	0x45: "UPS_PORT_VALUE",
	0x47: "UPS_PORT_NOTIFICATION",
	0x5c: "UPS_DNS_EXT_SERVER_CMD",
	0x61: "DNS_VIRTUAL_PORT_SETUP",
	0x81: "DNS_PORT_CMD",
	0x82: "UPS_PORT_CMD_FEEDBACK",
})

var deviceTypes = newCatalog("DeviceType", map[byte]string{
	0x00: "INTERNAL_MOTOR",
	0x01: "SYSTEM_TRAIN_MOTOR",
	0x05: "BUTTON",
	0x08: "LED",
	0x14: "VOLTAGE",
	0x15: "CURRENT",
	0x16: "PIEZO_TONE",
	0x17: "RGB_LIGHT",
	0x22: "EXTERNAL_TILT_SENSOR",
	0x23: "MOTION_SENSOR",
	0x25: "VISION_SENSOR",
	0x26: "EXTERNAL_MOTOR_WITH_TACHO",
	0x27: "INTERNAL_MOTOR_WITH_TACHO",
	0x28: "INTERNAL_TILT",
	0x2e: "EXTERNAL_MOTOR",
})

var hubAlertTypes = newCatalog("HubAlertType", map[byte]string{
	0x01: "LOW_V",
	0x02: "HIGH_CURRENT",
	0x03: "LOW_SIGNAL",
	0x04: "OVER_PWR_COND",
})

var hubAlertOperations = newCatalog("HubAlertOperation", map[byte]string{
	0x01: "DNS_UPDATE_ENABLE",
	0x02: "DNS_UPDATE_DISABLE",
	0x03: "DNS_UPDATE_REQUEST",
	0x04: "UPS_UPDATE",
})

var hubActions = newCatalog("HubAction", map[byte]string{
	0x01: "DNS_HUB_SWITCH_OFF",
	0x02: "DNS_HUB_DISCONNECT",
	0x03: "DNS_HUB_VCC_PORT_CTRL_ON",
	0x04: "DNS_HUB_VCC_PORT_CTRL_OFF",
	0x05: "DNS_HUB_INDICATE_BUSY_ON",
	0x06: "DNS_HUB_INDICATE_BUSY_OFF",
	0x2f: "DNS_HUB_FAST_SHUTDOWN",
	0x30: "UPS_HUB_WILL_SWITCH_OFF",
	0x31: "UPS_HUB_WILL_DISCONNECT",
	0x32: "UPS_HUB_WILL_BOOT",
})

var subCommands = newCatalog("SubCommand", map[byte]string{
	0x01: "TURN_PWR_UNREGULATED",
	0x02: "TURN_PWR_UNREGULATED_SYNC",
	0x05: "SET_ACC_PROFILE",
	0x06: "SET_DECC_PROFILE",
	0x07: "TURN_SPD_UNLIMITED",
	0x08: "TURN_SPD_UNLIMITED_SYNC",
	0x09: "TURN_FOR_TIME",
	0x0a: "TURN_FOR_TIME_SYNC",
	0x0b: "TURN_FOR_DEGREES",
	0x0c: "TURN_FOR_DEGREES_SYNC",
	0x0d: "GOTO_ABSOLUTE_POS",
	0x0e: "GOTO_ABSOLUTE_POS_SYNC",
	0x14: "SET_VALUE_L_R",
	0x51: "SND_DIRECT",
})

var serverSubCommands = newCatalog("ServerSubCommand", map[byte]string{
	0x00: "REG_W_SERVER",
	0xdd: "DISCONNECT_F_SERVER",
})

var returnCodes = newCatalog("ReturnCode", map[byte]string{
	0x01: "ACK",
	0x02: "MACK",
	0x03: "BUFFER_OVERFLOW",
	0x04: "TIMEOUT",
	0x05: "COMMAND_NOT_RECOGNIZED",
	0x06: "INVALID_USE",
	0x07: "OVERCURRENT",
	0x08: "INTERNAL_ERROR",
	0x0a: "EXEC_FINISHED",
})

var writeDirectModes = newCatalog("WriteDirectMode", map[byte]string{
	0x00: "SET_LED_COLOR",
	0x01: "SET_LED_RGB",
	0x02: "SET_POSITION",
	0x03: "SET_MOTOR_POWER",
})

var hubColors = newCatalog("HubColor", map[byte]string{
	0x00: "BLACK",
	0x01: "PINK",
	0x02: "PURPLE",
	0x03: "BLUE",
	0x04: "LIGHTBLUE",
	0x05: "TEAL",
	0x06: "GREEN",
	0x07: "YELLOW",
	0x08: "ORANGE",
	0x09: "RED",
	0x0a: "WHITE",
})

var peripheralEvents = newCatalog("PeripheralEvent", map[byte]string{
	0x00: "IO_DETACHED",
	0x01: "IO_ATTACHED",
	0x02: "VIRTUAL_IO_ATTACHED",
	0x03: "EXT_SRV_CONNECTED",
	0x04: "EXT_SRV_DISCONNECTED",
})

var connectionStates = newCatalog("ConnectionState", map[byte]string{
	0x00: "DISCONNECT",
	0x01: "CONNECT",
})

var commandStatuses = newCatalog("CommandStatus", map[byte]string{
	0x00: "DISABLED",
	0x01: "ENABLED",
})

var ports = newCatalog("Port", map[byte]string{
	0x00: "A",
	0x01: "B",
	0x02: "C",
	0x03: "D",
	0x32: "LED",
})

var catalogs = map[string]*Catalog{
	messageTypes.name:       messageTypes,
	deviceTypes.name:        deviceTypes,
	hubAlertTypes.name:      hubAlertTypes,
	hubAlertOperations.name: hubAlertOperations,
	hubActions.name:         hubActions,
	subCommands.name:        subCommands,
	serverSubCommands.name:  serverSubCommands,
	returnCodes.name:        returnCodes,
	writeDirectModes.name:   writeDirectModes,
	hubColors.name:          hubColors,
	peripheralEvents.name:   peripheralEvents,
	connectionStates.name:   connectionStates,
	commandStatuses.name:    commandStatuses,
	ports.name:              ports,
}

// Lookup returns the catalog registered under name.
func Lookup(catalog string) (*Catalog, error) {
	c, ok := catalogs[catalog]
	if !ok {
		return nil, ErrUnknownCatalog
	}
	return c, nil
}

// Catalogs returns the registered catalog names, sorted.
func Catalogs() []string {
	names := make([]string, 0, len(catalogs))
	for name := range catalogs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CodeOf resolves a constant name within a catalog to its byte code.
func CodeOf(catalog, name string) (byte, error) {
	c, err := Lookup(catalog)
	if err != nil {
		return 0, err
	}
	return c.CodeOf(name)
}

// NameOf resolves a byte code within a catalog to its constant name.
func NameOf(catalog string, code byte) (string, error) {
	c, err := Lookup(catalog)
	if err != nil {
		return "", err
	}
	return c.NameOf(code)
}
