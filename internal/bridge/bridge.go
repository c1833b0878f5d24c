package bridge

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/programmingLego/lwpctl/internal/lwp"
	"github.com/programmingLego/lwpctl/internal/lwp/frame"
	"github.com/programmingLego/lwpctl/internal/observability"
)

// Bridge relays wire messages between device clients and a hub link.
type Bridge struct {
	ID       string    `json:"id"`
	TCPAddr  string    `json:"tcp_addr"`
	HTTPAddr string    `json:"http_addr"`
	Appeared time.Time `json:"appeared"`

	Registry *PortRegistry `json:"-"`

	router   *gin.Engine
	listener net.Listener
}

// Appear builds a bridge with its HTTP surface wired up.
func Appear(id, tcpAddr, httpAddr string, corsOrigins []string) *Bridge {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware(id))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(corsOrigins),
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	return &Bridge{
		ID:       id,
		TCPAddr:  tcpAddr,
		HTTPAddr: httpAddr,
		Appeared: time.Now(),
		Registry: NewPortRegistry(),
		router:   r,
	}
}

func (b *Bridge) HTTPRouter() *gin.Engine {
	return b.router
}

func (b *Bridge) RegisterRoutes() {
	b.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(b.Appeared).String(),
			"service": b.ID,
			"version": "0.0.1",
		})
	})

	b.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	b.router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":   true,
			"uptime":  time.Since(b.Appeared).String(),
			"service": b.ID,
			"version": "0.0.1",
		})
	})

	b.router.GET("/ports", func(c *gin.Context) {
		ports := b.Registry.Ports()
		names := make([]string, 0, len(ports))
		for _, port := range ports {
			names = append(names, port.String())
		}
		c.JSON(http.StatusOK, gin.H{"ports": names})
	})
}

// ServeHTTP blocks serving the status surface.
func (b *Bridge) ServeHTTP() error {
	b.RegisterRoutes()
	return b.router.Run(b.HTTPAddr)
}

// Listen binds the TCP side without accepting yet, so callers can learn
// the bound address before Serve blocks.
func (b *Bridge) Listen() error {
	ln, err := net.Listen("tcp", b.TCPAddr)
	if err != nil {
		return fmt.Errorf("bridge: listen failed: %w", err)
	}
	b.listener = ln
	b.TCPAddr = ln.Addr().String()
	return nil
}

// Serve blocks accepting device client connections.
func (b *Bridge) Serve() error {
	if b.listener == nil {
		if err := b.Listen(); err != nil {
			return err
		}
	}
	log.Info().Str("id", b.ID).Str("addr", b.TCPAddr).Msg("bridge listening")
	for {
		conn, err := b.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("bridge: accept failed: %w", err)
		}
		go b.handleConn(newSession(conn))
	}
}

// Close stops the TCP side.
func (b *Bridge) Close() error {
	if b.listener == nil {
		return nil
	}
	return b.listener.Close()
}

func (b *Bridge) handleConn(s *Session) {
	defer func() {
		if s.bound {
			if err := b.Registry.Deregister(s.port); err == nil {
				observability.SetConnectedPorts(b.ID, b.Registry.Len())
			}
		}
		_ = s.Close()
	}()

	for {
		data, err := s.Read()
		if err != nil {
			if s.bound {
				log.Info().Str("port", s.port.String()).Msg("client gone")
			}
			return
		}
		msg, err := frame.Decode(data)
		if err != nil {
			log.Warn().Err(err).Msg("undecodable client message")
			continue
		}
		observability.RecordBridgeMessage(b.ID, "downstream", msg.Type.String())
		if err := b.handleMessage(s, msg); err != nil {
			log.Warn().Err(err).Str("type", msg.Type.String()).Msg("message rejected")
		}
	}
}

func (b *Bridge) handleMessage(s *Session, msg frame.Message) error {
	switch msg.Type {
	case lwp.MsgExternalServerCmd:
		return b.handleServerCmd(s, msg.Payload)
	case lwp.MsgPortCommand:
		return b.ackPortCommand(s, msg.Payload)
	case lwp.MsgHubAction:
		return b.echoHubAction(s, msg.Payload)
	case lwp.MsgHubAlert, lwp.MsgPortNotificationReq, lwp.MsgVirtualPortSetup:
		// accepted silently until a hub link is attached
		return nil
	}
	return fmt.Errorf("bridge: no handler for %s", msg.Type)
}

func (b *Bridge) handleServerCmd(s *Session, payload []byte) error {
	if len(payload) < 2 {
		return fmt.Errorf("bridge: short EXT_SRV payload")
	}
	port := lwp.Port(payload[0])
	switch lwp.ServerSubCommand(payload[1]) {
	case lwp.ServerRegister:
		if s.bound {
			return fmt.Errorf("bridge: session already holds %s, release it first", s.port)
		}
		if err := b.Registry.Register(port, s); err != nil {
			return err
		}
		s.port = port
		s.bound = true
		observability.SetConnectedPorts(b.ID, b.Registry.Len())
		log.Info().Str("port", port.String()).Msg("port registered")
		return b.notifyServerEvent(s, port, lwp.EventSrvConnected)
	case lwp.ServerDisconnect:
		if !s.bound || s.port != port {
			return ErrPortNotOwned
		}
		if err := b.Registry.Deregister(port); err != nil {
			return err
		}
		s.bound = false
		observability.SetConnectedPorts(b.ID, b.Registry.Len())
		log.Info().Str("port", port.String()).Msg("port released")
		return b.notifyServerEvent(s, port, lwp.EventSrvDisconnected)
	}
	return fmt.Errorf("bridge: unknown EXT_SRV sub-command 0x%02x", payload[1])
}

func (b *Bridge) notifyServerEvent(s *Session, port lwp.Port, event lwp.PeripheralEvent) error {
	reply, err := frame.Encode(lwp.MsgExternalServerCmd, []byte{byte(port), byte(event)})
	if err != nil {
		return err
	}
	observability.RecordBridgeMessage(b.ID, "upstream", lwp.MsgExternalServerCmd.String())
	return s.Write(reply)
}

// ackPortCommand acknowledges a port command with idle feedback. With a
// hub link attached the command would be relayed and the hub's own
// feedback forwarded instead.
func (b *Bridge) ackPortCommand(s *Session, payload []byte) error {
	if len(payload) < 1 {
		return fmt.Errorf("bridge: short port command payload")
	}
	port := lwp.Port(payload[0])
	if _, ok := b.Registry.Get(port); !ok {
		return ErrPortUnknown
	}
	feedback := byte(0x0a) // buffer empty, command completed, idle
	reply, err := frame.Encode(lwp.MsgPortCommandFeedback, []byte{byte(port), feedback})
	if err != nil {
		return err
	}
	observability.RecordBridgeMessage(b.ID, "upstream", lwp.MsgPortCommandFeedback.String())
	return s.Write(reply)
}

func (b *Bridge) echoHubAction(s *Session, payload []byte) error {
	if len(payload) < 1 {
		return fmt.Errorf("bridge: short hub action payload")
	}
	reply, err := frame.Encode(lwp.MsgHubAction, []byte{payload[0]})
	if err != nil {
		return err
	}
	observability.RecordBridgeMessage(b.ID, "upstream", lwp.MsgHubAction.String())
	return s.Write(reply)
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		out = append(out, origin)
	}
	if len(out) == 0 {
		out = append(out, "http://localhost:3000")
	}
	return out
}
