// Package version reports the bls build, stamped at link time or read
// from the embedded VCS settings.
package version

import (
	"runtime/debug"
	"strings"
)

// Set with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/mordilloSan/bls/internal/version.Version=v0.3.0"
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

type Info struct {
	Version string
	Commit  string
	Date    string
	Dirty   bool
}

func Get() Info {
	info := Info{
		Version: strings.TrimSpace(Version),
		Commit:  strings.TrimSpace(Commit),
		Date:    strings.TrimSpace(Date),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.fill(bi.Settings)
	}
	return info
}

// fill takes vcs settings for anything the linker did not stamp.
func (i *Info) fill(settings []debug.BuildSetting) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if i.Commit == "" {
				i.Commit = shortCommit(s.Value)
			}
		case "vcs.time":
			if i.Date == "" {
				i.Date = s.Value
			}
		case "vcs.modified":
			i.Dirty = i.Dirty || s.Value == "true"
		}
	}
}

func shortCommit(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

func (i Info) String() string {
	var b strings.Builder
	if i.Version == "" {
		b.WriteString("dev")
	} else {
		b.WriteString(i.Version)
	}

	var meta []string
	if i.Commit != "" {
		meta = append(meta, "commit "+i.Commit)
	}
	if i.Date != "" {
		meta = append(meta, "built "+i.Date)
	}
	if i.Dirty {
		meta = append(meta, "dirty")
	}
	if len(meta) > 0 {
		b.WriteString(" (" + strings.Join(meta, ", ") + ")")
	}
	return b.String()
}

// String is the line printed by bls --version.
func String() string {
	return "bls " + Get().String()
}
