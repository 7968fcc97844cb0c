package wlan

import (
	"strings"

	"github.com/google/uuid"

	"github.com/strct-org/strct-wlan/internal/errs"
)

const (
	OpFormatGUID errs.Op = "wlan.FormatGUID"
	OpParseGUID  errs.Op = "wlan.ParseGUID"
)

// FormatGUID renders id the way the platform names interfaces:
// {XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX}.
func FormatGUID(id GUID) (string, error) {
	if id == uuid.Nil {
		return "", errs.E(OpFormatGUID, errs.KindFormat, "nil identifier cannot name an interface")
	}
	return "{" + strings.ToUpper(id.String()) + "}", nil
}

// ParseGUID accepts the canonical braced form as well as bare hyphenated hex,
// in either case.
func ParseGUID(s string) (GUID, error) {
	raw := strings.TrimSpace(s)
	if strings.HasPrefix(raw, "{") || strings.HasSuffix(raw, "}") {
		if !strings.HasPrefix(raw, "{") || !strings.HasSuffix(raw, "}") {
			return uuid.Nil, errs.E(OpParseGUID, errs.KindFormat, "unbalanced braces in "+s)
		}
		raw = raw[1 : len(raw)-1]
	}
	if len(raw) != 36 {
		return uuid.Nil, errs.E(OpParseGUID, errs.KindFormat, "malformed identifier "+s)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.E(OpParseGUID, errs.KindFormat, err)
	}
	return id, nil
}
