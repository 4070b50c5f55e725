// Package buildinfo reports what build of photogrid is running.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/photogrid/pkg/buildinfo.Version=v0.4.0 \
//	    -X github.com/matzehuels/photogrid/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/photogrid/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// A plain `go install` leaves them unset; [Get] then falls back to the VCS
// stamp the toolchain embeds in the binary.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the resolved build description.
type Info struct {
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Date     string `json:"date"`
	Modified bool   `json:"modified,omitempty"`
	Go       string `json:"go"`
}

var (
	once sync.Once
	info Info
)

// Get returns the build description, computed once.
func Get() Info {
	once.Do(func() {
		info = resolve(Version, Commit, Date, debug.ReadBuildInfo)
	})
	return info
}

func resolve(version, commit, date string, read func() (*debug.BuildInfo, bool)) Info {
	in := Info{Version: version, Commit: commit, Date: date, Go: runtime.Version()}
	bi, ok := read()
	if !ok {
		return in
	}
	if in.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		in.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if in.Commit == "none" && len(s.Value) >= 7 {
				in.Commit = s.Value[:7]
			}
		case "vcs.time":
			if in.Date == "unknown" {
				in.Date = s.Value
			}
		case "vcs.modified":
			in.Modified = s.Value == "true"
		}
	}
	return in
}

func (i Info) String() string {
	commit := i.Commit
	if i.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\ngo: %s", i.Version, commit, i.Date, i.Go)
}

// Template returns the version template for cobra.
func Template() string {
	return "{{.Name}} " + Get().String() + "\n"
}
