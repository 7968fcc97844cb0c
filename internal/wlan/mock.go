package wlan

import (
	"github.com/blang/semver"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/strct-org/strct-wlan/internal/errs"
)

const OpMock errs.Op = "wlan.mock"

// MockBackend serves a fixed, in-memory view of the radio environment.
// Failures can be injected per call site.
type MockBackend struct {
	Ifaces     []Interface
	Nets       map[GUID][]Network
	APIVersion semver.Version

	OpenErr error
	EnumErr error
	ScanErr error

	Opened int
	Closed int
}

var mockInterfaceID = uuid.MustParse("0f3a2c1e-5b7d-4e9f-8a6b-1c2d3e4f5a6b")

func NewMockBackend() *MockBackend {
	return &MockBackend{
		Ifaces: []Interface{
			{ID: mockInterfaceID, Name: "wlan0", Description: "Virtual 802.11 adapter", State: StateConnected},
		},
		Nets: map[GUID][]Network{
			mockInterfaceID: {
				{SSID: "Test_Net", SignalQuality: 99, InterfaceID: mockInterfaceID, BSSCount: 1, Connectable: true, Secured: true, Connected: true},
			},
		},
	}
}

func (m *MockBackend) Name() string { return BackendMock }

func (m *MockBackend) Open() (Session, error) {
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	m.Opened++
	log.Debugf("[MOCK WLAN] Session %d opened", m.Opened)
	return &mockSession{backend: m}, nil
}

// Live reports how many sessions are open and not yet closed.
func (m *MockBackend) Live() int { return m.Opened - m.Closed }

type mockSession struct {
	backend *MockBackend
	closed  bool
}

func (s *mockSession) Interfaces() ([]Interface, error) {
	if s.closed {
		return nil, errs.E(OpMock, errs.KindSession, "session closed")
	}
	if s.backend.EnumErr != nil {
		return nil, s.backend.EnumErr
	}
	return append([]Interface(nil), s.backend.Ifaces...), nil
}

func (s *mockSession) Networks(id GUID) ([]Network, error) {
	if s.closed {
		return nil, errs.E(OpMock, errs.KindSession, "session closed")
	}
	if s.backend.ScanErr != nil {
		return nil, s.backend.ScanErr
	}
	return append([]Network(nil), s.backend.Nets[id]...), nil
}

func (s *mockSession) Version() semver.Version {
	if s.backend.APIVersion.Equals(semver.Version{}) {
		return semver.Version{Major: 2}
	}
	return s.backend.APIVersion
}

func (s *mockSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.backend.Closed++
	return nil
}
