// Package misc keeps build-time program identity.
package misc

// Set with -ldflags "-X stylescope/misc.version=... -X stylescope/misc.gitHash=...".
var (
	appName = "stylescope"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
