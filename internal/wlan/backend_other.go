//go:build !linux && !windows

package wlan

import (
	"runtime"

	"github.com/strct-org/strct-wlan/internal/errs"
)

const OpUnsupportedOpen errs.Op = "wlan.unsupported.Open"

var _ Backend = unsupportedBackend{}

type unsupportedBackend struct{}

func NewPlatformBackend() Backend { return unsupportedBackend{} }

func (unsupportedBackend) Name() string { return "unsupported" }

func (unsupportedBackend) Open() (Session, error) {
	return nil, errs.E(OpUnsupportedOpen, errs.KindSession, "no wireless service binding for "+runtime.GOOS)
}
