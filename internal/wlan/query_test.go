package wlan

import (
	"errors"
	"testing"

	"github.com/blang/semver"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/strct-org/strct-wlan/internal/errs"
)

const homeIface = "{AAAAAAAA-BBBB-CCCC-DDDD-EEEEEEEEEEEE}"

var homeID = uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")

func homeBackend() *MockBackend {
	return &MockBackend{
		Ifaces: []Interface{{ID: homeID, Name: "wlan0", State: StateConnected}},
		Nets: map[GUID][]Network{
			homeID: {
				{SSID: "Neighbour", SignalQuality: 30, InterfaceID: homeID},
				{SSID: "HomeNet", SignalQuality: 72, InterfaceID: homeID},
			},
		},
	}
}

func configured(t *testing.T, b *MockBackend, ssid, iface string) *Query {
	t.Helper()
	q := New(b)
	if err := q.Configure(ssid, iface); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	t.Cleanup(func() { q.Close() })
	return q
}

func TestSignalQualityHomeNet(t *testing.T) {
	q := configured(t, homeBackend(), "HomeNet", homeIface)

	got, err := q.SignalQuality()
	if err != nil {
		t.Fatalf("SignalQuality() error = %v", err)
	}
	if got != 72 {
		t.Errorf("SignalQuality() = %d, want 72", got)
	}
}

func TestNetworksWithoutInterfaces(t *testing.T) {
	b := homeBackend()
	b.Ifaces = nil
	q := configured(t, b, "HomeNet", homeIface)

	_, err := q.Networks()
	if !errs.Is(err, errs.KindInterfaceNotFound) {
		t.Fatalf("Networks() error = %v, want kind %v", err, errs.KindInterfaceNotFound)
	}
}

func TestLookupMisses(t *testing.T) {
	tests := []struct {
		name  string
		ssid  string
		iface string
		call  func(*Query) error
		want  errs.Kind
	}{
		{"Unknown Interface Networks", "HomeNet", "{11111111-2222-3333-4444-555555555555}", func(q *Query) error { _, err := q.Networks(); return err }, errs.KindInterfaceNotFound},
		{"Unknown Interface Quality", "HomeNet", "wlan9", func(q *Query) error { _, err := q.SignalQuality(); return err }, errs.KindInterfaceNotFound},
		{"Unknown SSID", "CoffeeShop", homeIface, func(q *Query) error { _, err := q.SignalQuality(); return err }, errs.KindNetworkNotFound},
		{"Unknown SSID dBm", "CoffeeShop", homeIface, func(q *Query) error { _, err := q.SignalDBm(); return err }, errs.KindNetworkNotFound},
		{"Empty SSID", "", homeIface, func(q *Query) error { _, err := q.SignalQuality(); return err }, errs.KindNetworkNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := configured(t, homeBackend(), tt.ssid, tt.iface)
			if err := tt.call(q); !errs.Is(err, tt.want) {
				t.Errorf("error = %v, want kind %v", err, tt.want)
			}
		})
	}
}

func TestInterfaceMatching(t *testing.T) {
	tests := []struct {
		name  string
		iface string
	}{
		{"Canonical", homeIface},
		{"Lower Case", "{aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee}"},
		{"Bare", "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"},
		{"By Name", "wlan0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := configured(t, homeBackend(), "HomeNet", tt.iface)
			got, err := q.Networks()
			if err != nil {
				t.Fatalf("Networks() error = %v", err)
			}
			if diff := cmp.Diff([]string{"Neighbour", "HomeNet"}, got); diff != "" {
				t.Errorf("Networks() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInterfaces(t *testing.T) {
	b := homeBackend()
	second := uuid.MustParse("01234567-89ab-cdef-0123-456789abcdef")
	b.Ifaces = append(b.Ifaces, Interface{ID: second, Name: "wlan1"})
	q := configured(t, b, "HomeNet", homeIface)

	got, err := q.Interfaces()
	if err != nil {
		t.Fatalf("Interfaces() error = %v", err)
	}
	want := []string{homeIface, "{01234567-89AB-CDEF-0123-456789ABCDEF}"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Interfaces() mismatch (-want +got):\n%s", diff)
	}
}

func TestInterfacesNilGUID(t *testing.T) {
	b := homeBackend()
	b.Ifaces = append(b.Ifaces, Interface{ID: uuid.Nil})
	q := configured(t, b, "HomeNet", homeIface)

	if _, err := q.Interfaces(); !errs.Is(err, errs.KindFormat) {
		t.Errorf("Interfaces() error = %v, want kind %v", err, errs.KindFormat)
	}
}

func TestSignalQualityClamped(t *testing.T) {
	tests := []struct {
		name    string
		quality int
		want    int
	}{
		{"Below", -5, 0},
		{"Zero", 0, 0},
		{"Mid", 55, 55},
		{"Full", 100, 100},
		{"Above", 140, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := homeBackend()
			b.Nets[homeID] = []Network{{SSID: "HomeNet", SignalQuality: tt.quality}}
			q := configured(t, b, "HomeNet", homeIface)

			got, err := q.SignalQuality()
			if err != nil {
				t.Fatalf("SignalQuality() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("SignalQuality() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSignalDBm(t *testing.T) {
	q := configured(t, homeBackend(), "HomeNet", homeIface)

	got, err := q.SignalDBm()
	if err != nil {
		t.Fatalf("SignalDBm() error = %v", err)
	}
	if got != -64 {
		t.Errorf("SignalDBm() = %d, want -64", got)
	}
}

func TestNotConfigured(t *testing.T) {
	q := New(homeBackend())

	if _, err := q.Interfaces(); !errs.Is(err, errs.KindSession) {
		t.Errorf("Interfaces() error = %v, want kind %v", err, errs.KindSession)
	}
	if _, err := q.SignalQuality(); !errs.Is(err, errs.KindSession) {
		t.Errorf("SignalQuality() error = %v, want kind %v", err, errs.KindSession)
	}
}

func TestBackendFailures(t *testing.T) {
	boom := errors.New("rpc server unavailable")

	t.Run("Open", func(t *testing.T) {
		b := homeBackend()
		b.OpenErr = boom
		q := New(b)
		err := q.Configure("HomeNet", homeIface)
		if !errs.Is(err, errs.KindSession) {
			t.Fatalf("Configure() error = %v, want kind %v", err, errs.KindSession)
		}
		if !errors.Is(err, boom) {
			t.Errorf("Configure() error should wrap the cause")
		}
		if _, err := q.Networks(); !errs.Is(err, errs.KindSession) {
			t.Errorf("Networks() after failed Configure = %v, want kind %v", err, errs.KindSession)
		}
	})

	t.Run("Old API", func(t *testing.T) {
		b := homeBackend()
		b.APIVersion = semver.Version{Minor: 9}
		q := New(b)
		if err := q.Configure("HomeNet", homeIface); !errs.Is(err, errs.KindSession) {
			t.Fatalf("Configure() error = %v, want kind %v", err, errs.KindSession)
		}
		if b.Live() != 0 {
			t.Errorf("rejected session left open: live = %d", b.Live())
		}
	})

	t.Run("Enumerate", func(t *testing.T) {
		b := homeBackend()
		b.EnumErr = boom
		q := configured(t, b, "HomeNet", homeIface)
		if _, err := q.Interfaces(); !errs.Is(err, errs.KindEnumeration) {
			t.Errorf("Interfaces() error = %v, want kind %v", err, errs.KindEnumeration)
		}
		if _, err := q.Networks(); !errs.Is(err, errs.KindEnumeration) {
			t.Errorf("Networks() error = %v, want kind %v", err, errs.KindEnumeration)
		}
	})

	t.Run("Scan", func(t *testing.T) {
		b := homeBackend()
		b.ScanErr = boom
		q := configured(t, b, "HomeNet", homeIface)
		if _, err := q.SignalQuality(); !errs.Is(err, errs.KindEnumeration) {
			t.Errorf("SignalQuality() error = %v, want kind %v", err, errs.KindEnumeration)
		}
	})
}

func TestSessionLifecycle(t *testing.T) {
	b := homeBackend()
	q := New(b)

	if err := q.Configure("HomeNet", homeIface); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	if err := q.Configure("Neighbour", "wlan0"); err != nil {
		t.Fatalf("second Configure() error = %v", err)
	}
	if b.Opened != 2 || b.Live() != 1 {
		t.Errorf("after reconfigure opened=%d live=%d, want 2 and 1", b.Opened, b.Live())
	}

	ssid, iface := q.Target()
	if ssid != "Neighbour" || iface != "wlan0" {
		t.Errorf("Target() = (%q, %q)", ssid, iface)
	}

	if err := q.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := q.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if b.Live() != 0 {
		t.Errorf("live sessions after Close = %d", b.Live())
	}
}

func TestFailedRetargetKeepsSession(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MockBackend)
	}{
		{"Open", func(b *MockBackend) { b.OpenErr = errors.New("rpc server unavailable") }},
		{"Old API", func(b *MockBackend) { b.APIVersion = semver.Version{Minor: 9} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := homeBackend()
			q := configured(t, b, "HomeNet", homeIface)

			tt.mutate(b)
			if err := q.Configure("Neighbour", "wlan0"); !errs.Is(err, errs.KindSession) {
				t.Fatalf("Configure() error = %v, want kind %v", err, errs.KindSession)
			}

			if ssid, iface := q.Target(); ssid != "HomeNet" || iface != homeIface {
				t.Errorf("Target() = (%q, %q), want previous target", ssid, iface)
			}
			got, err := q.SignalQuality()
			if err != nil {
				t.Fatalf("SignalQuality() after failed retarget error = %v", err)
			}
			if got != 72 {
				t.Errorf("SignalQuality() = %d, want 72", got)
			}
			if b.Live() != 1 {
				t.Errorf("live sessions = %d, want 1", b.Live())
			}
		})
	}
}

func TestRead(t *testing.T) {
	q := configured(t, homeBackend(), "HomeNet", "wlan0")

	got, err := q.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	want := Reading{SSID: "HomeNet", Interface: "wlan0", Quality: 72, DBm: -64}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Read() mismatch (-want +got):\n%s", diff)
	}

	q = configured(t, homeBackend(), "CoffeeShop", "wlan0")
	if _, err := q.Read(); !errs.Is(err, errs.KindNetworkNotFound) {
		t.Errorf("Read() error = %v, want kind %v", err, errs.KindNetworkNotFound)
	}
}

func TestScanTarget(t *testing.T) {
	q := configured(t, homeBackend(), "HomeNet", "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")

	iface, nets, err := q.ScanTarget()
	if err != nil {
		t.Fatalf("ScanTarget() error = %v", err)
	}
	if iface != homeIface {
		t.Errorf("ScanTarget() interface = %q, want %q", iface, homeIface)
	}
	if len(nets) != 2 {
		t.Errorf("ScanTarget() returned %d networks, want 2", len(nets))
	}
}

func TestScanDescriptors(t *testing.T) {
	b := homeBackend()
	b.Nets[homeID][1].SignalQuality = 180
	q := configured(t, b, "HomeNet", homeIface)

	nets, err := q.Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(nets) != 2 {
		t.Fatalf("Scan() returned %d networks, want 2", len(nets))
	}
	if nets[1].SignalQuality != 100 {
		t.Errorf("Scan() quality = %d, want clamped 100", nets[1].SignalQuality)
	}
}

func TestNewBackend(t *testing.T) {
	if b, err := NewBackend(BackendMock); err != nil || b.Name() != BackendMock {
		t.Errorf("NewBackend(mock) = %v, %v", b, err)
	}
	if b, err := NewBackend(BackendAuto); err != nil || b == nil {
		t.Errorf("NewBackend(auto) = %v, %v", b, err)
	}
	if _, err := NewBackend("bluetooth"); !errs.Is(err, errs.KindInvalid) {
		t.Errorf("NewBackend(bluetooth) error = %v, want kind %v", err, errs.KindInvalid)
	}
}

func TestDefaultMock(t *testing.T) {
	q := configured(t, NewMockBackend(), "Test_Net", "wlan0")

	got, err := q.SignalQuality()
	if err != nil {
		t.Fatalf("SignalQuality() error = %v", err)
	}
	if got != 99 {
		t.Errorf("SignalQuality() = %d, want 99", got)
	}
}
