// Package misc keeps program identity values set at link time.
package misc

import "strings"

var (
	// set by the linker: -X pptxhtml/misc.version=... -X pptxhtml/misc.githash=...
	version = "dev"
	githash = "unknown"
)

const appName = "pptxhtml"

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return strings.TrimPrefix(version, "v")
}

func GetGitHash() string {
	return githash
}
