package common

import (
	"fmt"
	"runtime/debug"
)

// Version and GitCommit can be set via ldflags at build time
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// ServerName is the MCP implementation name reported to hosts
const ServerName = "awslabs.aws-cloudcontrol-mcp-server"

func GetModuleBuildInfo() (string, string, bool) {
	if Version != "dev" {
		return Version, GitCommit, true
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", "", false
	}

	var gitCommit string
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			gitCommit = setting.Value
			break
		}
	}

	return info.Main.Version, gitCommit, true
}

// GetVersion returns a human readable version string for logs and the
// version subcommand.
func GetVersion() string {
	version, gitCommit, ok := GetModuleBuildInfo()
	if !ok {
		return "unknown"
	}
	if len(gitCommit) > 8 {
		gitCommit = gitCommit[:8]
	}
	if len(gitCommit) == 0 || gitCommit == "unknown" {
		return version
	}
	return fmt.Sprintf("%s (git: %s)", version, gitCommit)
}

// GetServerVersion returns the bare version reported in the MCP handshake.
func GetServerVersion() string {
	version, _, ok := GetModuleBuildInfo()
	if !ok || len(version) == 0 || version == "(devel)" {
		return Version
	}
	return version
}
