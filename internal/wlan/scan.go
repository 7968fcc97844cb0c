package wlan

import (
	"bytes"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// Scanner lists the networks visible on a named interface using a userspace
// tool. Results are aggregated per SSID.
type Scanner interface {
	Scan(interfaceName string) ([]Network, error)
}

// DefaultScanner prefers NetworkManager and falls back to wireless-tools.
func DefaultScanner() Scanner {
	if _, err := exec.LookPath("nmcli"); err == nil {
		return NmcliScanner{}
	}
	return IWListScanner{}
}

var _ Scanner = NmcliScanner{}

type NmcliScanner struct{}

func (s NmcliScanner) Scan(interfaceName string) ([]Network, error) {
	cmd := exec.Command("nmcli", "-t", "-f", "SSID,SIGNAL,SECURITY,IN-USE", "dev", "wifi", "list", "ifname", interfaceName, "--rescan", "yes")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("nmcli scan failed: %w", err)
	}
	return parseNmcliOutput(string(output)), nil
}

func parseNmcliOutput(output string) []Network {
	var networks []Network

	for _, line := range strings.Split(output, "\n") {
		parts := splitTerse(line)
		if len(parts) < 3 {
			continue
		}

		// Hidden networks
		if parts[0] == "" {
			continue
		}

		signal, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}

		security := strings.TrimSpace(parts[2])
		networks = append(networks, Network{
			SSID:          parts[0],
			SignalQuality: clampQuality(signal),
			BSSCount:      1,
			Connectable:   true,
			Secured:       security != "" && security != "--",
			Connected:     len(parts) > 3 && strings.TrimSpace(parts[3]) == "*",
		})
	}

	return aggregateNetworks(networks)
}

// splitTerse splits one line of nmcli terse output, honouring \: and \\.
func splitTerse(line string) []string {
	var (
		fields []string
		cur    strings.Builder
	)
	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case c == '\\' && i+1 < len(line):
			i++
			cur.WriteByte(line[i])
		case c == ':':
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(fields, cur.String())
}

var _ Scanner = IWListScanner{}

type IWListScanner struct{}

func (s IWListScanner) Scan(interfaceName string) ([]Network, error) {
	cmd := exec.Command("iwlist", interfaceName, "scan")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("iwlist scan failed: %w", err)
	}

	return parseIWListOutput(out.String()), nil
}

var (
	ssidRegex       = regexp.MustCompile(`ESSID:"(.*?)"`)
	addressRegex    = regexp.MustCompile(`Address: ([0-9A-Fa-f:]+)`)
	encryptionRegex = regexp.MustCompile(`Encryption key:(on|off)`)
	qualityRegex    = regexp.MustCompile(`Quality[=:](\d+)/(\d+)`)
	levelRegex      = regexp.MustCompile(`Signal level[=:](-?\d+) dBm`)
)

func parseIWListOutput(output string) []Network {
	var networks []Network
	cells := strings.Split(output, "Cell ")

	for _, cell := range cells {
		ssid := ssidRegex.FindStringSubmatch(cell)
		address := addressRegex.FindStringSubmatch(cell)
		encryption := encryptionRegex.FindStringSubmatch(cell)

		if len(ssid) < 2 || len(address) < 2 || ssid[1] == "" {
			continue
		}

		networks = append(networks, Network{
			SSID:          ssid[1],
			SignalQuality: cellQuality(cell),
			BSSCount:      1,
			Connectable:   true,
			Secured:       len(encryption) > 1 && encryption[1] == "on",
		})
	}

	return aggregateNetworks(networks)
}

func cellQuality(cell string) int {
	if q := qualityRegex.FindStringSubmatch(cell); len(q) == 3 {
		num, _ := strconv.Atoi(q[1])
		den, _ := strconv.Atoi(q[2])
		if den > 0 {
			return clampQuality(num * 100 / den)
		}
	}
	if l := levelRegex.FindStringSubmatch(cell); len(l) == 2 {
		dbm, _ := strconv.Atoi(l[1])
		return DBmToQuality(dbm)
	}
	return 0
}

// aggregateNetworks folds per-BSS rows into one entry per SSID, keeping the
// strongest quality and first-seen order.
func aggregateNetworks(rows []Network) []Network {
	index := make(map[string]int, len(rows))
	var out []Network

	for _, r := range rows {
		i, seen := index[r.SSID]
		if !seen {
			index[r.SSID] = len(out)
			out = append(out, r)
			continue
		}

		n := &out[i]
		n.BSSCount += r.BSSCount
		if r.SignalQuality > n.SignalQuality {
			n.SignalQuality = r.SignalQuality
		}
		n.Secured = n.Secured || r.Secured
		n.Connected = n.Connected || r.Connected
		n.Connectable = n.Connectable || r.Connectable
	}

	return out
}
