package version

import (
	"strings"

	"github.com/blang/semver"
)

// Release is overridden at build time with
// -ldflags "-X github.com/strct-org/strct-wlan/internal/version.Release=1.2.3".
var Release = "0.1.0-dev"

// Parse returns Release as a semantic version. A leading "v" is accepted.
func Parse() (semver.Version, error) {
	return semver.Make(strings.TrimPrefix(Release, "v"))
}
