// Package wlan queries the platform wireless service for interfaces, visible
// networks and their signal quality.
package wlan

import (
	"fmt"

	"github.com/blang/semver"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/strct-org/strct-wlan/internal/errs"
)

// GUID identifies a wireless interface.
type GUID = uuid.UUID

type InterfaceState string

const (
	StateUnknown        InterfaceState = "unknown"
	StateNotReady       InterfaceState = "not_ready"
	StateConnected      InterfaceState = "connected"
	StateAdHoc          InterfaceState = "ad_hoc"
	StateDisconnecting  InterfaceState = "disconnecting"
	StateDisconnected   InterfaceState = "disconnected"
	StateAssociating    InterfaceState = "associating"
	StateDiscovering    InterfaceState = "discovering"
	StateAuthenticating InterfaceState = "authenticating"
)

// Interface is a snapshot of one wireless adapter at enumeration time.
type Interface struct {
	ID          GUID           `json:"-"`
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	State       InterfaceState `json:"state"`
}

// Network is a snapshot of one visible network at scan time.
type Network struct {
	SSID          string `json:"ssid"`
	SignalQuality int    `json:"signal_quality"` // 0-100
	InterfaceID   GUID   `json:"-"`
	BSSCount      int    `json:"bss_count"`
	Connectable   bool   `json:"connectable"`
	Secured       bool   `json:"secured"`
	Connected     bool   `json:"connected"`
}

// Backend opens sessions with one platform's wireless service.
type Backend interface {
	Name() string
	Open() (Session, error)
}

// Session is an open handle to the wireless service. It must be closed.
type Session interface {
	Interfaces() ([]Interface, error)
	Networks(interfaceID GUID) ([]Network, error)
	Version() semver.Version
	Close() error
}

const (
	BackendAuto = "auto"
	BackendMock = "mock"

	OpNewBackend errs.Op = "wlan.NewBackend"
)

// NewBackend returns the backend registered under name. "auto" selects the
// backend compiled for the running platform.
func NewBackend(name string) (Backend, error) {
	switch name {
	case BackendMock:
		log.Println("[WLAN] Factory: Returning MOCK backend")
		return NewMockBackend(), nil
	case BackendAuto, "":
		b := NewPlatformBackend()
		log.Printf("[WLAN] Factory: Returning %s backend", b.Name())
		return b, nil
	}
	return nil, errs.E(OpNewBackend, errs.KindInvalid, fmt.Sprintf("unknown backend %q", name))
}
