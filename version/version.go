package version

import "runtime/debug"

// You can set the version at build time using something like:
// go build -ldflags "-X github.com/tonelab/gamut/version.Version=$(git describe --dirty)"

var Version string

var Hash = func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if len(revision) < 7 {
		return revision
	}
	if modified {
		return revision[:7] + "-dirty"
	}
	return revision[:7]
}()

var VersionOrHash = func() string {
	if Version != "" {
		return Version
	}
	return Hash
}()
