//go:build linux

package wlan

import (
	"errors"
	"fmt"
	"os"

	"github.com/blang/semver"
	"github.com/google/uuid"
	"github.com/mdlayher/wifi"
	log "github.com/sirupsen/logrus"

	"github.com/strct-org/strct-wlan/internal/errs"
)

const (
	OpLinuxOpen     errs.Op = "wlan.nl80211.Open"
	OpLinuxIfaces   errs.Op = "wlan.nl80211.Interfaces"
	OpLinuxNetworks errs.Op = "wlan.nl80211.Networks"
)

var _ Backend = &LinuxBackend{}

// LinuxBackend talks nl80211 for interface and association state and uses a
// userspace Scanner for the list of visible networks.
type LinuxBackend struct {
	Scanner Scanner
}

func NewPlatformBackend() Backend {
	return &LinuxBackend{Scanner: DefaultScanner()}
}

func (b *LinuxBackend) Name() string { return "nl80211" }

func (b *LinuxBackend) Open() (Session, error) {
	c, err := wifi.New()
	if err != nil {
		return nil, errs.E(OpLinuxOpen, errs.KindSession, err, "could not open nl80211 connection")
	}

	scanner := b.Scanner
	if scanner == nil {
		scanner = DefaultScanner()
	}
	return &linuxSession{client: c, scanner: scanner, known: map[GUID]*wifi.Interface{}}, nil
}

type linuxSession struct {
	client  *wifi.Client
	scanner Scanner
	known   map[GUID]*wifi.Interface
}

// nl80211 has no negotiated client version.
func (s *linuxSession) Version() semver.Version { return semver.Version{Major: 1} }

func (s *linuxSession) Close() error {
	return s.client.Close()
}

func (s *linuxSession) Interfaces() ([]Interface, error) {
	ifis, err := s.client.Interfaces()
	if err != nil {
		return nil, errs.E(OpLinuxIfaces, errs.KindEnumeration, err)
	}

	var out []Interface
	for _, ifi := range ifis {
		// P2P devices have no netdev
		if ifi.Name == "" {
			continue
		}

		id := linuxInterfaceID(ifi)
		s.known[id] = ifi
		out = append(out, Interface{
			ID:          id,
			Name:        ifi.Name,
			Description: fmt.Sprintf("phy%d %s", ifi.PHY, ifi.HardwareAddr),
			State:       s.state(ifi),
		})
	}
	return out, nil
}

func (s *linuxSession) state(ifi *wifi.Interface) InterfaceState {
	if ifi.Type != wifi.InterfaceTypeStation {
		return StateUnknown
	}
	if _, err := s.client.BSS(ifi); err != nil {
		return StateDisconnected
	}
	return StateConnected
}

func (s *linuxSession) Networks(id GUID) ([]Network, error) {
	ifi, ok := s.known[id]
	if !ok {
		if _, err := s.Interfaces(); err != nil {
			return nil, err
		}
		if ifi, ok = s.known[id]; !ok {
			return nil, errs.E(OpLinuxNetworks, errs.KindInterfaceNotFound, id.String())
		}
	}

	nets, err := s.scanner.Scan(ifi.Name)
	if err != nil {
		return nil, errs.E(OpLinuxNetworks, errs.KindEnumeration, err)
	}

	nets = s.mergeAssociated(ifi, nets)
	for i := range nets {
		nets[i].InterfaceID = id
	}
	return nets, nil
}

// mergeAssociated marks the BSS the interface is associated with, adding it
// when the scan missed it.
func (s *linuxSession) mergeAssociated(ifi *wifi.Interface, nets []Network) []Network {
	bss, err := s.client.BSS(ifi)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Debugf("[WLAN] No BSS for %s: %v", ifi.Name, err)
		}
		return nets
	}

	signal, haveSignal := 0, false
	if infos, err := s.client.StationInfo(ifi); err == nil && len(infos) > 0 {
		signal, haveSignal = infos[0].Signal, true
	}
	return mergeAssociatedBSS(nets, bss.SSID, signal, haveSignal)
}

func mergeAssociatedBSS(nets []Network, ssid string, signalDBm int, haveSignal bool) []Network {
	if ssid == "" {
		return nets
	}

	for i := range nets {
		if nets[i].SSID == ssid {
			nets[i].Connected = true
			return nets
		}
	}

	quality := 0
	if haveSignal {
		quality = DBmToQuality(signalDBm)
	}

	return append(nets, Network{
		SSID:          ssid,
		SignalQuality: quality,
		BSSCount:      1,
		Connectable:   true,
		Connected:     true,
	})
}

// linuxInterfaceID derives a stable identifier from the hardware address so
// Linux interfaces can be addressed the same way as on platforms with GUIDs.
func linuxInterfaceID(ifi *wifi.Interface) GUID {
	key := ifi.HardwareAddr.String()
	if key == "" {
		key = ifi.Name
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("nl80211/"+key))
}
