package wlan

import (
	"fmt"
	"sync"

	"github.com/blang/semver"
	log "github.com/sirupsen/logrus"

	"github.com/strct-org/strct-wlan/internal/errs"
)

const (
	OpConfigure      errs.Op = "wlan.Configure"
	OpInterfaces     errs.Op = "wlan.Interfaces"
	OpNetworks       errs.Op = "wlan.Networks"
	OpScan           errs.Op = "wlan.Scan"
	OpSignalQuality  errs.Op = "wlan.SignalQuality"
	OpSignalDBm      errs.Op = "wlan.SignalDBm"
	OpRead           errs.Op = "wlan.Read"
	OpInterfaceInfos errs.Op = "wlan.InterfaceDetails"
	OpClose          errs.Op = "wlan.Close"
)

var minSessionVersion = semver.Version{Major: 1}

// Query answers interface, network and signal questions for one
// (SSID, interface) target. Configure must be called first. Calls are
// serialised on an internal lock.
type Query struct {
	mu      sync.Mutex
	backend Backend
	session Session
	ssid    string
	iface   string
}

func New(backend Backend) *Query {
	return &Query{backend: backend}
}

// Configure sets the target and (re)opens the session. A GUID-shaped
// interfaceID is normalised to canonical form, anything else is matched
// against interface names.
func (q *Query) Configure(ssid, interfaceID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	// The previous session stays in place until the new one is usable.
	s, err := q.backend.Open()
	if err != nil {
		return errs.E(OpConfigure, errs.KindSession, err, "could not reach wireless service")
	}

	if v := s.Version(); v.LT(minSessionVersion) {
		s.Close()
		return errs.E(OpConfigure, errs.KindSession, fmt.Sprintf("unsupported client API version %s", v))
	}

	if err := q.closeSession(); err != nil {
		log.Warnf("[WLAN] Closing previous session failed: %v", err)
	}

	q.session = s
	q.ssid = ssid
	q.iface = normaliseInterfaceID(interfaceID)

	log.Infof("[WLAN] Session opened via %s (API %s), target ssid=%q interface=%s",
		q.backend.Name(), s.Version(), q.ssid, q.iface)
	return nil
}

func (q *Query) Target() (ssid, interfaceID string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ssid, q.iface
}

// Interfaces lists every wireless interface identifier in canonical form.
func (q *Query) Interfaces() ([]string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	ifaces, err := q.interfaces(OpInterfaces)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(ifaces))
	for _, ifc := range ifaces {
		id, err := FormatGUID(ifc.ID)
		if err != nil {
			return nil, errs.E(OpInterfaces, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (q *Query) InterfaceDetails() ([]Interface, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.interfaces(OpInterfaceInfos)
}

// Networks lists the SSIDs visible on the configured interface.
func (q *Query) Networks() ([]string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	nets, err := q.scan(OpNetworks)
	if err != nil {
		return nil, err
	}

	ssids := make([]string, 0, len(nets))
	for _, n := range nets {
		ssids = append(ssids, n.SSID)
	}
	return ssids, nil
}

// Scan returns the full descriptors of the networks visible on the
// configured interface.
func (q *Query) Scan() ([]Network, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.scanClamped(OpScan)
}

func (q *Query) scanClamped(op errs.Op) ([]Network, error) {
	nets, err := q.scan(op)
	if err != nil {
		return nil, err
	}
	for i := range nets {
		nets[i].SignalQuality = clampQuality(nets[i].SignalQuality)
	}
	return nets, nil
}

// SignalQuality reports the 0-100 quality of the configured SSID.
func (q *Query) SignalQuality() (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n, err := q.resolveNetwork(OpSignalQuality)
	if err != nil {
		return 0, err
	}
	return clampQuality(n.SignalQuality), nil
}

// Reading is a quality sample together with the target it was taken for.
type Reading struct {
	SSID      string `json:"ssid"`
	Interface string `json:"interface"`
	Quality   int    `json:"quality"`
	DBm       int    `json:"dbm"`
}

// Read samples the configured SSID and reports the target under the same
// lock, so a concurrent Configure cannot mislabel the result.
func (q *Query) Read() (Reading, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n, err := q.resolveNetwork(OpRead)
	if err != nil {
		return Reading{}, err
	}
	quality := clampQuality(n.SignalQuality)
	return Reading{SSID: q.ssid, Interface: q.iface, Quality: quality, DBm: QualityToDBm(quality)}, nil
}

// ScanTarget is Scan plus the interface target the scan resolved.
func (q *Query) ScanTarget() (string, []Network, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	nets, err := q.scanClamped(OpScan)
	if err != nil {
		return "", nil, err
	}
	return q.iface, nets, nil
}

// SignalDBm reports the configured SSID's quality on the dBm scale.
func (q *Query) SignalDBm() (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n, err := q.resolveNetwork(OpSignalDBm)
	if err != nil {
		return 0, err
	}
	return QualityToDBm(n.SignalQuality), nil
}

// Close releases the session. It is safe to call more than once.
func (q *Query) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.closeSession(); err != nil {
		return errs.E(OpClose, errs.KindSession, err)
	}
	return nil
}

func (q *Query) closeSession() error {
	if q.session == nil {
		return nil
	}
	s := q.session
	q.session = nil
	log.Debugf("[WLAN] Closing %s session", q.backend.Name())
	return s.Close()
}

func (q *Query) openSession(op errs.Op) (Session, error) {
	if q.session == nil {
		return nil, errs.E(op, errs.KindSession, "query is not configured")
	}
	return q.session, nil
}

func (q *Query) interfaces(op errs.Op) ([]Interface, error) {
	s, err := q.openSession(op)
	if err != nil {
		return nil, err
	}

	ifaces, err := s.Interfaces()
	if err != nil {
		return nil, enumerationError(op, err)
	}
	return ifaces, nil
}

func (q *Query) resolveInterface(op errs.Op) (Interface, error) {
	ifaces, err := q.interfaces(op)
	if err != nil {
		return Interface{}, err
	}

	for _, ifc := range ifaces {
		if ifc.matches(q.iface) {
			return ifc, nil
		}
	}
	return Interface{}, errs.E(op, errs.KindInterfaceNotFound, fmt.Sprintf("interface %s is not present", q.iface))
}

func (q *Query) scan(op errs.Op) ([]Network, error) {
	ifc, err := q.resolveInterface(op)
	if err != nil {
		return nil, err
	}

	nets, err := q.session.Networks(ifc.ID)
	if err != nil {
		return nil, enumerationError(op, err)
	}
	log.Debugf("[WLAN] %d networks visible on %s", len(nets), q.iface)
	return nets, nil
}

func (q *Query) resolveNetwork(op errs.Op) (Network, error) {
	nets, err := q.scan(op)
	if err != nil {
		return Network{}, err
	}

	for _, n := range nets {
		if n.SSID == q.ssid {
			return n, nil
		}
	}
	return Network{}, errs.E(op, errs.KindNetworkNotFound, fmt.Sprintf("ssid %q is not visible on %s", q.ssid, q.iface))
}

func (i Interface) matches(target string) bool {
	if id, err := FormatGUID(i.ID); err == nil && id == target {
		return true
	}
	return i.Name != "" && i.Name == target
}

func normaliseInterfaceID(s string) string {
	id, err := ParseGUID(s)
	if err != nil {
		return s
	}
	canonical, err := FormatGUID(id)
	if err != nil {
		return s
	}
	return canonical
}

// enumerationError keeps a backend's own classification and files
// everything else under KindEnumeration.
func enumerationError(op errs.Op, err error) error {
	if errs.KindOf(err) != errs.KindOther {
		return errs.E(op, err)
	}
	return errs.E(op, errs.KindEnumeration, err)
}
