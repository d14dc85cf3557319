// Package buildconfig carries the intelreport build identity. The version and
// commit are set at link time:
//
//	go build -ldflags "-X github.com/Harshitk-cp/intelreport/internal/buildconfig.version=v1.2.0 \
//	  -X github.com/Harshitk-cp/intelreport/internal/buildconfig.commit=$(git rev-parse --short HEAD)"
package buildconfig

import "fmt"

// Name identifies the service in logs and the health endpoint.
const Name = "intelreport"

var (
	version = "dev"
	commit  = "unknown"
)

func Version() string {
	return version
}

func Commit() string {
	return commit
}

// Dev reports whether the binary was built without a release version.
func Dev() bool {
	return version == "dev"
}

// String renders the identity as "intelreport v1.2.0 (abc1234)".
func String() string {
	return fmt.Sprintf("%s %s (%s)", Name, version, commit)
}

// VersionInfo is the build block served by the metrics endpoint.
func VersionInfo() map[string]string {
	return map[string]string{
		"name":    Name,
		"version": version,
		"commit":  commit,
	}
}
