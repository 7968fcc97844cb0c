package api

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/strct-org/strct-wlan/internal/errs"
	"github.com/strct-org/strct-wlan/internal/wlan"
)

const (
	OpGetInterfaces errs.Op = "api.getInterfaces"
	OpGetNetworks   errs.Op = "api.getNetworks"
	OpGetQuality    errs.Op = "api.getQuality"
	OpPutTarget     errs.Op = "api.putTarget"
)

// WLAN exposes a Query over HTTP.
type WLAN struct {
	Query *wlan.Query
}

type Target struct {
	SSID      string `json:"ssid"`
	Interface string `json:"interface"`
}

type InterfaceView struct {
	ID          string              `json:"id"`
	Name        string              `json:"name,omitempty"`
	Description string              `json:"description,omitempty"`
	State       wlan.InterfaceState `json:"state"`
}

type QualityView struct {
	SSID    string `json:"ssid"`
	Quality int    `json:"quality"`
	DBm     int    `json:"dbm"`
}

func (h *WLAN) GetRoutes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"GET /api/wlan/interfaces": h.getInterfaces,
		"GET /api/wlan/networks":   h.getNetworks,
		"GET /api/wlan/quality":    h.getQuality,
		"GET /api/wlan/target":     h.getTarget,
		"PUT /api/wlan/target":     h.putTarget,
	}
}

func (h *WLAN) getInterfaces(w http.ResponseWriter, r *http.Request) {
	ifaces, err := h.Query.InterfaceDetails()
	if err != nil {
		errs.HTTPResponse(w, errs.E(OpGetInterfaces, err))
		return
	}

	views := make([]InterfaceView, 0, len(ifaces))
	for _, ifc := range ifaces {
		id, err := wlan.FormatGUID(ifc.ID)
		if err != nil {
			errs.HTTPResponse(w, errs.E(OpGetInterfaces, err))
			return
		}
		views = append(views, InterfaceView{ID: id, Name: ifc.Name, Description: ifc.Description, State: ifc.State})
	}

	writeJSON(w, map[string]any{"interfaces": views})
}

func (h *WLAN) getNetworks(w http.ResponseWriter, r *http.Request) {
	iface, nets, err := h.Query.ScanTarget()
	if err != nil {
		errs.HTTPResponse(w, errs.E(OpGetNetworks, err))
		return
	}

	writeJSON(w, map[string]any{"interface": iface, "networks": nets})
}

func (h *WLAN) getQuality(w http.ResponseWriter, r *http.Request) {
	rd, err := h.Query.Read()
	if err != nil {
		errs.HTTPResponse(w, errs.E(OpGetQuality, err))
		return
	}

	writeJSON(w, QualityView{SSID: rd.SSID, Quality: rd.Quality, DBm: rd.DBm})
}

func (h *WLAN) getTarget(w http.ResponseWriter, r *http.Request) {
	ssid, iface := h.Query.Target()
	writeJSON(w, Target{SSID: ssid, Interface: iface})
}

func (h *WLAN) putTarget(w http.ResponseWriter, r *http.Request) {
	var t Target
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		errs.HTTPResponse(w, errs.E(OpPutTarget, errs.KindInvalid, err, "Invalid JSON"))
		return
	}
	if t.Interface == "" {
		errs.HTTPResponse(w, errs.E(OpPutTarget, errs.KindInvalid, "interface is required"))
		return
	}

	log.Printf("[API] Retargeting to ssid=%q interface=%s", t.SSID, t.Interface)
	if err := h.Query.Configure(t.SSID, t.Interface); err != nil {
		errs.HTTPResponse(w, errs.E(OpPutTarget, err))
		return
	}

	ssid, iface := h.Query.Target()
	writeJSON(w, Target{SSID: ssid, Interface: iface})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}
