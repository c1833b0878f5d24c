package bridge

import (
	"errors"
	"testing"
	"time"

	"github.com/programmingLego/lwpctl/internal/lwp"
	"github.com/programmingLego/lwpctl/internal/lwp/downstream"
	"github.com/programmingLego/lwpctl/internal/lwp/upstream"
	"github.com/programmingLego/lwpctl/internal/testutil/testlog"
)

func startBridge(t *testing.T) *Bridge {
	t.Helper()
	testlog.Start(t)
	b := Appear("bridge-test", "127.0.0.1:0", "127.0.0.1:0", nil)
	if err := b.Listen(); err != nil {
		t.Fatalf("Listen: %v", err)
	}
	go func() { _ = b.Serve() }()
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestConnectRegistersPort(t *testing.T) {
	b := startBridge(t)
	c, err := Dial(b.TCPAddr)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	if err := c.Connect(lwp.PortA); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if _, ok := b.Registry.Get(lwp.PortA); !ok {
		t.Fatal("port A not registered after connect")
	}

	if err := c.Disconnect(); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	if _, ok := b.Registry.Get(lwp.PortA); ok {
		t.Fatal("port A still registered after disconnect")
	}
}

func TestPortCommandGetsFeedback(t *testing.T) {
	b := startBridge(t)
	c, err := Dial(b.TCPAddr)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	if err := c.Connect(lwp.PortB); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	cmd := downstream.StartSpeed{
		Port:           lwp.PortB,
		StartCond:      lwp.OnStartExecImmediately,
		CompletionCond: lwp.OnCompletionUpdateStatus,
		Speed:          50,
		Direction:      lwp.MoveForward,
		AbsMaxPower:    100,
	}
	if err := c.Send(cmd); err != nil {
		t.Fatalf("Send: %v", err)
	}
	n, err := c.Recv()
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	fb, ok := n.(upstream.PortCmdFeedback)
	if !ok {
		t.Fatalf("notification type = %T", n)
	}
	got, ok := fb.For(lwp.PortB)
	if !ok {
		t.Fatal("no feedback for port B")
	}
	if !got.Idle() || !got.Completed() {
		t.Fatalf("feedback = %08b", byte(got))
	}
}

func TestSecondClaimOnSamePortIsRejected(t *testing.T) {
	b := startBridge(t)
	first, err := Dial(b.TCPAddr)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer first.Close()
	if err := first.Connect(lwp.PortC); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	second, err := Dial(b.TCPAddr)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer second.Close()
	if err := second.Send(downstream.ExternalServerConnect{Port: lwp.PortC}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	// no reply is sent for a rejected claim; a hub action echo on the
	// same connection proves the claim was processed before we check
	if err := second.Send(downstream.HubActionCommand{Action: lwp.ActionBusyOff}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if _, err := second.Recv(); err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if b.Registry.Len() != 1 {
		t.Fatalf("registry len = %d, want 1", b.Registry.Len())
	}
}

func TestDisconnectRequiresOwnership(t *testing.T) {
	b := startBridge(t)
	owner, err := Dial(b.TCPAddr)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer owner.Close()
	if err := owner.Connect(lwp.PortA); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	stranger, err := Dial(b.TCPAddr)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer stranger.Close()
	if err := stranger.Send(downstream.ExternalServerDisconnect{Port: lwp.PortA}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	// the rejected release gets no reply; a hub action echo on the same
	// connection proves it was processed before we check
	if err := stranger.Send(downstream.HubActionCommand{Action: lwp.ActionBusyOn}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if _, err := stranger.Recv(); err != nil {
		t.Fatalf("Recv: %v", err)
	}

	if _, ok := b.Registry.Get(lwp.PortA); !ok {
		t.Fatal("port A released by a session that never held it")
	}
	// the owner's claim still works end to end
	if err := owner.Disconnect(); err != nil {
		t.Fatalf("Disconnect by owner: %v", err)
	}
}

func TestSecondRegisterFromBoundSessionRejected(t *testing.T) {
	b := startBridge(t)
	c, err := Dial(b.TCPAddr)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	if err := c.Connect(lwp.PortA); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := c.Send(downstream.ExternalServerConnect{Port: lwp.PortB}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if err := c.Send(downstream.HubActionCommand{Action: lwp.ActionBusyOff}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if _, err := c.Recv(); err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if _, ok := b.Registry.Get(lwp.PortB); ok {
		t.Fatal("bound session claimed a second port")
	}
	if b.Registry.Len() != 1 {
		t.Fatalf("registry len = %d, want 1", b.Registry.Len())
	}

	// dropping the connection must release the one port it holds
	_ = c.Close()
	deadline := time.Now().Add(5 * time.Second)
	for b.Registry.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("port A still registered after client drop")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHubActionEcho(t *testing.T) {
	b := startBridge(t)
	c, err := Dial(b.TCPAddr)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	if err := c.Send(downstream.HubActionCommand{Action: lwp.ActionSwitchOff}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	n, err := c.Recv()
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	got, ok := n.(upstream.HubActionNotification)
	if !ok {
		t.Fatalf("notification type = %T", n)
	}
	if got.Action != lwp.ActionSwitchOff {
		t.Fatalf("action = %v", got.Action)
	}
}

func TestDisconnectReleasesPortOnDrop(t *testing.T) {
	b := startBridge(t)
	c, err := Dial(b.TCPAddr)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	if err := c.Connect(lwp.PortD); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	_ = c.Close()

	deadline := time.Now().Add(5 * time.Second)
	for b.Registry.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("port D still registered after client drop")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRegistry(t *testing.T) {
	r := NewPortRegistry()
	s := &Session{}
	if err := r.Register(lwp.PortA, s); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(lwp.PortA, s); !errors.Is(err, ErrPortBusy) {
		t.Fatalf("err = %v, want ErrPortBusy", err)
	}
	if err := r.Register(lwp.PortB, s); err != nil {
		t.Fatalf("Register B: %v", err)
	}
	ports := r.Ports()
	if len(ports) != 2 || ports[0] != lwp.PortA || ports[1] != lwp.PortB {
		t.Fatalf("ports = %v", ports)
	}
	if err := r.Deregister(lwp.PortD); !errors.Is(err, ErrPortUnknown) {
		t.Fatalf("err = %v, want ErrPortUnknown", err)
	}
	if err := r.Deregister(lwp.PortA); err != nil {
		t.Fatalf("Deregister: %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("len = %d, want 1", r.Len())
	}
}
