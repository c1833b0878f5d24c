package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/programmingLego/lwpctl/internal/config"
	"github.com/programmingLego/lwpctl/internal/console"
	"github.com/programmingLego/lwpctl/internal/lwp"
	"github.com/programmingLego/lwpctl/internal/lwp/upstream"
)

// dump decodes one hex-encoded wire message and renders it.
func dump(s console.Styler, cfg config.DumpConfig, raw string) (string, error) {
	data, err := decodeHex(raw)
	if err != nil {
		return "", err
	}
	n, err := upstream.Parse(data)
	if err != nil {
		return "", err
	}
	return describe(s, cfg, n), nil
}

// decodeHex accepts "0a00470002...", "0a 00 47 ..." and "0a:00:47:...".
func decodeHex(raw string) ([]byte, error) {
	cleaned := strings.NewReplacer(" ", "", ":", "", "0x", "", "\t", "").
		Replace(strings.TrimSpace(raw))
	data, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("hex decode failed: %w", err)
	}
	return data, nil
}

func describe(s console.Styler, cfg config.DumpConfig, n upstream.Notification) string {
	switch v := n.(type) {
	case upstream.HubActionNotification:
		return fmt.Sprintf("%s %s", s.Head("HUB_ACTION"), v.Action)

	case upstream.HubAlertNotification:
		label := s.OK("ok")
		if v.Raised() {
			label = s.Warn("raised")
		}
		return fmt.Sprintf("%s %s %s", s.Head("HUB_ALERT"), v.Alert, label)

	case upstream.HubAttachedIO:
		switch {
		case v.Event == lwp.EventIODetached:
			return fmt.Sprintf("%s %s detached", s.Head("ATTACHED_IO"), v.IOPort)
		case v.PortA != 0xff:
			return fmt.Sprintf("%s %s %s via %s+%s", s.Head("ATTACHED_IO"),
				v.IOPort, v.Device, v.PortA, v.PortB)
		default:
			return fmt.Sprintf("%s %s %s", s.Head("ATTACHED_IO"), v.IOPort, v.Device)
		}

	case upstream.GenericError:
		return s.Err(fmt.Sprintf("HUB_ERROR %s: %s", v.Command, v.Code))

	case upstream.PortValue:
		var value string
		if cfg.Decode.Radians {
			value = fmt.Sprintf("%.4f rad", v.Radians()*cfg.Decode.GearRatio)
		} else {
			value = fmt.Sprintf("%.1f deg", v.Effective(cfg.Decode.GearRatio))
		}
		if cfg.Decode.ShowRaw {
			value = fmt.Sprintf("%s (raw %d)", value, v.Raw)
		}
		return fmt.Sprintf("%s %s %s", s.Head("PORT_VALUE"), v.IOPort, s.Info(value))

	case upstream.PortNotification:
		state := s.Warn("disabled")
		if v.Enabled {
			state = s.OK("enabled")
		}
		return fmt.Sprintf("%s %s mode 0x%02x delta %d %s",
			s.Head("PORT_NOTIFICATION"), v.IOPort, v.Mode, v.DeltaInterval, state)

	case upstream.PortCmdFeedback:
		parts := make([]string, 0, len(v.Ports))
		for i, port := range v.Ports {
			parts = append(parts, fmt.Sprintf("%s=%s", port, v.Feedback[i]))
		}
		return fmt.Sprintf("%s %s", s.Head("CMD_FEEDBACK"), strings.Join(parts, " "))

	case upstream.ExternalServerNotification:
		return fmt.Sprintf("%s %s %s", s.Head("EXT_SERVER"), v.IOPort, v.Event)
	}
	return fmt.Sprintf("%T %+v", n, n)
}
