package lwp

import (
	"errors"
	"testing"
)

func TestRoundTripAllCatalogs(t *testing.T) {
	for _, catalog := range Catalogs() {
		c, err := Lookup(catalog)
		if err != nil {
			t.Fatalf("lookup %s: %v", catalog, err)
		}
		for _, name := range c.Names() {
			code, err := c.CodeOf(name)
			if err != nil {
				t.Fatalf("%s: code of %q: %v", catalog, name, err)
			}
			back, err := c.NameOf(code)
			if err != nil {
				t.Fatalf("%s: name of 0x%02x: %v", catalog, code, err)
			}
			if back != name {
				t.Fatalf("%s: round trip %q -> 0x%02x -> %q", catalog, name, code, back)
			}
		}
	}
}

func TestCodesPairwiseDistinct(t *testing.T) {
	for _, catalog := range Catalogs() {
		c, err := Lookup(catalog)
		if err != nil {
			t.Fatalf("lookup %s: %v", catalog, err)
		}
		seen := make(map[byte]string, c.Len())
		for _, name := range c.Names() {
			code, err := c.CodeOf(name)
			if err != nil {
				t.Fatalf("%s: code of %q: %v", catalog, name, err)
			}
			if prev, dup := seen[code]; dup {
				t.Fatalf("%s: 0x%02x shared by %q and %q", catalog, code, prev, name)
			}
			seen[code] = name
		}
	}
}

func TestGoldenCodes(t *testing.T) {
	cases := []struct {
		catalog string
		name    string
		code    byte
	}{
		{"SubCommand", "TURN_FOR_DEGREES", 0x0b},
		{"SubCommand", "GOTO_ABSOLUTE_POS", 0x0d},
		{"SubCommand", "SND_DIRECT", 0x51},
		{"MessageType", "DNS_PORT_CMD", 0x81},
		{"MessageType", "UPS_PORT_CMD_FEEDBACK", 0x82},
		{"DeviceType", "EXTERNAL_MOTOR_WITH_TACHO", 0x26},
		{"ReturnCode", "BUFFER_OVERFLOW", 0x03},
		{"ReturnCode", "EXEC_FINISHED", 0x0a},
		{"HubAction", "DNS_HUB_FAST_SHUTDOWN", 0x2f},
		{"HubColor", "TEAL", 0x05},
		{"Port", "LED", 0x32},
	}
	for _, tc := range cases {
		code, err := CodeOf(tc.catalog, tc.name)
		if err != nil {
			t.Fatalf("%s.%s: %v", tc.catalog, tc.name, err)
		}
		if code != tc.code {
			t.Fatalf("%s.%s = 0x%02x, want 0x%02x", tc.catalog, tc.name, code, tc.code)
		}
	}
}

func TestUnknownConstant(t *testing.T) {
	_, err := CodeOf("SubCommand", "does-not-exist")
	var unknown UnknownConstantError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownConstantError, got %v", err)
	}
	if unknown.Catalog != "SubCommand" || unknown.Name != "does-not-exist" {
		t.Fatalf("unexpected error detail: %+v", unknown)
	}
}

func TestUnknownCode(t *testing.T) {
	_, err := NameOf("HubAlertType", 0x7f)
	var unknown UnknownCodeError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownCodeError, got %v", err)
	}
	if unknown.Catalog != "HubAlertType" || unknown.Code != 0x7f {
		t.Fatalf("unexpected error detail: %+v", unknown)
	}
}

func TestUnknownCatalog(t *testing.T) {
	if _, err := CodeOf("NoSuchCatalog", "ACK"); !errors.Is(err, ErrUnknownCatalog) {
		t.Fatalf("expected ErrUnknownCatalog, got %v", err)
	}
}

func TestStringerUsesCatalogNames(t *testing.T) {
	if got := SubTurnForDegrees.String(); got != "TURN_FOR_DEGREES" {
		t.Fatalf("unexpected stringer output: %q", got)
	}
	if got := MessageType(0x99).String(); got != "MessageType(0x99)" {
		t.Fatalf("unexpected fallback output: %q", got)
	}
}

func TestMessageTypeOf(t *testing.T) {
	mt, err := MessageTypeOf(0x45)
	if err != nil {
		t.Fatalf("message type of 0x45: %v", err)
	}
	if mt != MsgPortValue {
		t.Fatalf("expected MsgPortValue, got %v", mt)
	}
	if _, err := MessageTypeOf(0xee); err == nil {
		t.Fatalf("expected error for undefined code")
	}
}
