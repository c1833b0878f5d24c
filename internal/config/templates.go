package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "dump":
		return dumpTemplate, nil
	case "bridge":
		return bridgeTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const bridgeTemplate = `id = "lwpbridge"
tcp_addr = "127.0.0.1:8888"
http_addr = ":9888"
cors_origins = ["http://localhost:3000"]

[log]
level = "info"
timestamp = true
no_color = false
`

const dumpTemplate = `name = "lwpdump"

[log]
level = "info"
timestamp = true
no_color = false

[decode]
gear_ratio = 1.0
radians = false
show_raw = false
`
