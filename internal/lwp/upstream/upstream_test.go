package upstream

import (
	"errors"
	"math"
	"testing"

	"github.com/programmingLego/lwpctl/internal/lwp"
)

func parseOK(t *testing.T, data []byte) Notification {
	t.Helper()
	n, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(% x): %v", data, err)
	}
	return n
}

func TestParseHubAction(t *testing.T) {
	n := parseOK(t, []byte{0x04, 0x00, 0x02, 0x30})
	got, ok := n.(HubActionNotification)
	if !ok {
		t.Fatalf("notification type = %T", n)
	}
	if got.Action != lwp.ActionWillSwitchOff {
		t.Fatalf("action = %v, want ActionWillSwitchOff", got.Action)
	}
}

func TestParseHubAlert(t *testing.T) {
	n := parseOK(t, []byte{0x06, 0x00, 0x03, 0x01, 0x04, 0x00})
	got, ok := n.(HubAlertNotification)
	if !ok {
		t.Fatalf("notification type = %T", n)
	}
	if got.Alert != lwp.AlertLowVoltage || got.Op != lwp.AlertOpUpdate {
		t.Fatalf("alert = %v op = %v", got.Alert, got.Op)
	}
	if got.Raised() {
		t.Fatalf("Raised() = true for zero status")
	}
}

func TestParseAttachedIO(t *testing.T) {
	data := []byte{
		0x0f, 0x00, 0x04, 0x00, 0x01, 0x27, 0x00,
		0x00, 0x00, 0x00, 0x10, // hw revision
		0x00, 0x00, 0x00, 0x10, // sw revision
	}
	n := parseOK(t, data)
	got, ok := n.(HubAttachedIO)
	if !ok {
		t.Fatalf("notification type = %T", n)
	}
	if got.IOPort != lwp.PortA || got.Event != lwp.EventIOAttached {
		t.Fatalf("port = %v event = %v", got.IOPort, got.Event)
	}
	if got.Device != lwp.DeviceInternalMotorWithTacho {
		t.Fatalf("device = %v, want DeviceInternalMotorWithTacho", got.Device)
	}
}

func TestParseVirtualAttachedIO(t *testing.T) {
	n := parseOK(t, []byte{0x09, 0x00, 0x04, 0x10, 0x02, 0x27, 0x00, 0x00, 0x01})
	got, ok := n.(HubAttachedIO)
	if !ok {
		t.Fatalf("notification type = %T", n)
	}
	if got.IOPort != lwp.Port(0x10) || got.Event != lwp.EventVirtualIOAttached {
		t.Fatalf("port = %v event = %v", got.IOPort, got.Event)
	}
	if got.PortA != lwp.PortA || got.PortB != lwp.PortB {
		t.Fatalf("pair = %v/%v, want PortA/PortB", got.PortA, got.PortB)
	}
}

func TestParseDetachedIO(t *testing.T) {
	n := parseOK(t, []byte{0x05, 0x00, 0x04, 0x01, 0x00})
	got, ok := n.(HubAttachedIO)
	if !ok {
		t.Fatalf("notification type = %T", n)
	}
	if got.Event != lwp.EventIODetached || got.IOPort != lwp.PortB {
		t.Fatalf("port = %v event = %v", got.IOPort, got.Event)
	}
}

func TestParseAttachedIOUnknownDevice(t *testing.T) {
	data := []byte{0x0f, 0x00, 0x04, 0x00, 0x01, 0x7b, 0x00,
		0x00, 0x00, 0x00, 0x10, 0x00, 0x00, 0x00, 0x10}
	_, err := Parse(data)
	var unk lwp.UnknownCodeError
	if !errors.As(err, &unk) {
		t.Fatalf("err = %v, want UnknownCodeError", err)
	}
	if unk.Code != 0x7b {
		t.Fatalf("code = 0x%02x, want 0x7b", unk.Code)
	}
}

func TestParseGenericError(t *testing.T) {
	n := parseOK(t, []byte{0x05, 0x00, 0x05, 0x81, 0x05})
	got, ok := n.(GenericError)
	if !ok {
		t.Fatalf("notification type = %T", n)
	}
	if got.Command != lwp.MsgPortCommand || got.Code != lwp.RetCmdNotRecognized {
		t.Fatalf("command = %v code = %v", got.Command, got.Code)
	}
	if got.Error() == "" {
		t.Fatalf("empty error string")
	}
}

func TestParsePortValueWidths(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want int32
	}{
		{"int8", []byte{0x05, 0x00, 0x45, 0x02, 0x9c}, -100},
		{"int16", []byte{0x06, 0x00, 0x45, 0x00, 0x2e, 0xfb}, -1234},
		{"int32", []byte{0x08, 0x00, 0x45, 0x00, 0xf7, 0xee, 0xff, 0xff}, -4361},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := parseOK(t, tc.data)
			got, ok := n.(PortValue)
			if !ok {
				t.Fatalf("notification type = %T", n)
			}
			if got.Raw != tc.want {
				t.Fatalf("raw = %d, want %d", got.Raw, tc.want)
			}
		})
	}
}

func TestPortValueConversions(t *testing.T) {
	v := PortValue{IOPort: lwp.PortA, Raw: 180}
	if v.Degrees() != 180 {
		t.Fatalf("Degrees() = %d", v.Degrees())
	}
	if rad := v.Radians(); math.Abs(rad-math.Pi) > 1e-9 {
		t.Fatalf("Radians() = %v, want pi", rad)
	}
	if eff := v.Effective(0.5); eff != 90 {
		t.Fatalf("Effective(0.5) = %v, want 90", eff)
	}
}

func TestParsePortNotification(t *testing.T) {
	n := parseOK(t, []byte{0x0a, 0x00, 0x47, 0x00, 0x02, 0x01, 0x00, 0x00, 0x00, 0x01})
	got, ok := n.(PortNotification)
	if !ok {
		t.Fatalf("notification type = %T", n)
	}
	if got.Mode != 0x02 || got.DeltaInterval != 1 || !got.Enabled {
		t.Fatalf("notification = %+v", got)
	}
}

func TestParsePortCmdFeedback(t *testing.T) {
	n := parseOK(t, []byte{0x07, 0x00, 0x82, 0x00, 0x0a, 0x01, 0x01})
	got, ok := n.(PortCmdFeedback)
	if !ok {
		t.Fatalf("notification type = %T", n)
	}
	fb, ok := got.For(lwp.PortA)
	if !ok {
		t.Fatalf("no feedback for port A")
	}
	if !fb.Idle() || !fb.Completed() {
		t.Fatalf("feedback = %08b", byte(fb))
	}
	if fb.String() != "IDLE" {
		t.Fatalf("String() = %q, want IDLE", fb.String())
	}
	fb, ok = got.For(lwp.PortB)
	if !ok {
		t.Fatalf("no feedback for port B")
	}
	if fb.String() != "EMPTY_BUF_CMD_IN_PROGRESS" {
		t.Fatalf("String() = %q", fb.String())
	}
	if _, ok := got.For(lwp.PortD); ok {
		t.Fatalf("For(PortD) reported feedback")
	}
}

func TestFeedbackStringPrecedence(t *testing.T) {
	cases := []struct {
		fb   Feedback
		want string
	}{
		{FeedbackIdle | FeedbackDiscarded, "IDLE"},
		{FeedbackDiscarded | FeedbackEmptyCompleted, "CURRENT_CMD_DISCARDED"},
		{FeedbackEmptyCompleted | FeedbackEmptyInProgress, "EMPTY_BUF_CMD_COMPLETED"},
		{FeedbackEmptyInProgress, "EMPTY_BUF_CMD_IN_PROGRESS"},
		{FeedbackBusy, "BUSY"},
	}
	for _, tc := range cases {
		if got := tc.fb.String(); got != tc.want {
			t.Errorf("Feedback(0x%02x).String() = %q, want %q", byte(tc.fb), got, tc.want)
		}
	}
}

func TestParseExternalServerNotification(t *testing.T) {
	n := parseOK(t, []byte{0x05, 0x00, 0x5c, 0x01, 0x03})
	got, ok := n.(ExternalServerNotification)
	if !ok {
		t.Fatalf("notification type = %T", n)
	}
	if got.IOPort != lwp.PortB || got.Event != lwp.EventSrvConnected {
		t.Fatalf("notification = %+v", got)
	}
}

func TestParseShortPayload(t *testing.T) {
	if _, err := Parse([]byte{0x03, 0x00, 0x02}); !errors.Is(err, ErrShortPayload) {
		t.Fatalf("err = %v, want ErrShortPayload", err)
	}
}

func TestParseUnhandledType(t *testing.T) {
	if _, err := Parse([]byte{0x04, 0x00, 0x01, 0x00}); !errors.Is(err, ErrUnhandled) {
		t.Fatalf("err = %v, want ErrUnhandled", err)
	}
}
