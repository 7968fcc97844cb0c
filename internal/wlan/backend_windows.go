//go:build windows

package wlan

import (
	"encoding/binary"
	"unsafe"

	"github.com/blang/semver"
	"golang.org/x/sys/windows"

	"github.com/strct-org/strct-wlan/internal/errs"
)

const (
	OpWinOpen     errs.Op = "wlan.wlanapi.Open"
	OpWinIfaces   errs.Op = "wlan.wlanapi.Interfaces"
	OpWinNetworks errs.Op = "wlan.wlanapi.Networks"
	OpWinClose    errs.Op = "wlan.wlanapi.Close"
)

const (
	wlanClientVersion    uint32 = 2
	wlanMaxNameLength           = 256
	dot11SSIDMaxLength          = 32
	wlanMaxPhyTypeNumber        = 8
	wlanNetworkConnected uint32 = 0x00000001
)

var (
	modwlanapi = windows.NewLazySystemDLL("wlanapi.dll")

	procWlanOpenHandle              = modwlanapi.NewProc("WlanOpenHandle")
	procWlanCloseHandle             = modwlanapi.NewProc("WlanCloseHandle")
	procWlanEnumInterfaces          = modwlanapi.NewProc("WlanEnumInterfaces")
	procWlanGetAvailableNetworkList = modwlanapi.NewProc("WlanGetAvailableNetworkList")
	procWlanFreeMemory              = modwlanapi.NewProc("WlanFreeMemory")
)

// Layouts follow wlanapi.h; every field is 4-byte aligned.

type wlanInterfaceInfo struct {
	InterfaceGuid        windows.GUID
	InterfaceDescription [wlanMaxNameLength]uint16
	IsState              uint32
}

type wlanInterfaceInfoList struct {
	NumberOfItems uint32
	Index         uint32
	InterfaceInfo [1]wlanInterfaceInfo
}

type dot11SSID struct {
	Length uint32
	SSID   [dot11SSIDMaxLength]byte
}

func (s dot11SSID) String() string {
	n := s.Length
	if n > dot11SSIDMaxLength {
		n = dot11SSIDMaxLength
	}
	return string(s.SSID[:n])
}

type wlanAvailableNetwork struct {
	ProfileName            [wlanMaxNameLength]uint16
	Dot11Ssid              dot11SSID
	Dot11BssType           uint32
	NumberOfBssids         uint32
	NetworkConnectable     int32
	NotConnectableReason   uint32
	NumberOfPhyTypes       uint32
	Dot11PhyTypes          [wlanMaxPhyTypeNumber]uint32
	MorePhyTypes           int32
	SignalQuality          uint32
	SecurityEnabled        int32
	DefaultAuthAlgorithm   uint32
	DefaultCipherAlgorithm uint32
	Flags                  uint32
	Reserved               uint32
}

type wlanAvailableNetworkList struct {
	NumberOfItems uint32
	Index         uint32
	Network       [1]wlanAvailableNetwork
}

var _ Backend = &WindowsBackend{}

type WindowsBackend struct{}

func NewPlatformBackend() Backend { return &WindowsBackend{} }

func (b *WindowsBackend) Name() string { return "wlanapi" }

func (b *WindowsBackend) Open() (Session, error) {
	if err := procWlanOpenHandle.Find(); err != nil {
		return nil, errs.E(OpWinOpen, errs.KindSession, err, "wlanapi.dll is not available")
	}

	var (
		negotiated uint32
		handle     windows.Handle
	)
	r, _, _ := procWlanOpenHandle.Call(
		uintptr(wlanClientVersion),
		0,
		uintptr(unsafe.Pointer(&negotiated)),
		uintptr(unsafe.Pointer(&handle)),
	)
	if r != 0 {
		return nil, errs.E(OpWinOpen, errs.KindSession, windows.Errno(r), "WlanOpenHandle failed")
	}

	return &windowsSession{
		handle: handle,
		version: semver.Version{
			Major: uint64(negotiated & 0xffff),
			Minor: uint64(negotiated >> 16),
		},
	}, nil
}

type windowsSession struct {
	handle  windows.Handle
	version semver.Version
	closed  bool
}

func (s *windowsSession) Version() semver.Version { return s.version }

func (s *windowsSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	r, _, _ := procWlanCloseHandle.Call(uintptr(s.handle), 0)
	if r != 0 {
		return errs.E(OpWinClose, errs.KindSession, windows.Errno(r), "WlanCloseHandle failed")
	}
	return nil
}

func (s *windowsSession) Interfaces() ([]Interface, error) {
	var list *wlanInterfaceInfoList
	r, _, _ := procWlanEnumInterfaces.Call(uintptr(s.handle), 0, uintptr(unsafe.Pointer(&list)))
	if r != 0 {
		return nil, errs.E(OpWinIfaces, errs.KindEnumeration, windows.Errno(r), "WlanEnumInterfaces failed")
	}
	defer wlanFreeMemory(unsafe.Pointer(list))

	items := unsafe.Slice(&list.InterfaceInfo[0], list.NumberOfItems)
	out := make([]Interface, 0, len(items))
	for _, info := range items {
		out = append(out, Interface{
			ID:          guidFromWindows(info.InterfaceGuid),
			Description: windows.UTF16ToString(info.InterfaceDescription[:]),
			State:       windowsInterfaceState(info.IsState),
		})
	}
	return out, nil
}

func (s *windowsSession) Networks(id GUID) ([]Network, error) {
	g := windowsGUID(id)

	var list *wlanAvailableNetworkList
	r, _, _ := procWlanGetAvailableNetworkList.Call(
		uintptr(s.handle),
		uintptr(unsafe.Pointer(&g)),
		0,
		0,
		uintptr(unsafe.Pointer(&list)),
	)
	if r != 0 {
		return nil, errs.E(OpWinNetworks, errs.KindEnumeration, windows.Errno(r), "WlanGetAvailableNetworkList failed")
	}
	defer wlanFreeMemory(unsafe.Pointer(list))

	items := unsafe.Slice(&list.Network[0], list.NumberOfItems)
	out := make([]Network, 0, len(items))
	for _, n := range items {
		// hidden networks
		if n.Dot11Ssid.Length == 0 {
			continue
		}
		out = append(out, Network{
			SSID:          n.Dot11Ssid.String(),
			SignalQuality: clampQuality(int(n.SignalQuality)),
			InterfaceID:   id,
			BSSCount:      int(n.NumberOfBssids),
			Connectable:   n.NetworkConnectable != 0,
			Secured:       n.SecurityEnabled != 0,
			Connected:     n.Flags&wlanNetworkConnected != 0,
		})
	}
	return out, nil
}

func wlanFreeMemory(p unsafe.Pointer) {
	if p == nil {
		return
	}
	procWlanFreeMemory.Call(uintptr(p))
}

func windowsInterfaceState(s uint32) InterfaceState {
	switch s {
	case 0:
		return StateNotReady
	case 1:
		return StateConnected
	case 2:
		return StateAdHoc
	case 3:
		return StateDisconnecting
	case 4:
		return StateDisconnected
	case 5:
		return StateAssociating
	case 6:
		return StateDiscovering
	case 7:
		return StateAuthenticating
	}
	return StateUnknown
}

// GUID fields are little-endian in memory but printed big-endian, which is
// the byte order uuid.UUID stores.
func guidFromWindows(g windows.GUID) GUID {
	var id GUID
	binary.BigEndian.PutUint32(id[0:4], g.Data1)
	binary.BigEndian.PutUint16(id[4:6], g.Data2)
	binary.BigEndian.PutUint16(id[6:8], g.Data3)
	copy(id[8:], g.Data4[:])
	return id
}

func windowsGUID(id GUID) windows.GUID {
	g := windows.GUID{
		Data1: binary.BigEndian.Uint32(id[0:4]),
		Data2: binary.BigEndian.Uint16(id[4:6]),
		Data3: binary.BigEndian.Uint16(id[6:8]),
	}
	copy(g.Data4[:], id[8:])
	return g
}
