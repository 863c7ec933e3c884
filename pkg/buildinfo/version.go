// Package buildinfo carries the version stamp for the lifelist binary.
//
// Release builds inject the variables through ldflags:
//
//	go build -ldflags "\
//	  -X github.com/naturelab/lifelist/pkg/buildinfo.Version=v1.0.0 \
//	  -X github.com/naturelab/lifelist/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/naturelab/lifelist/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// A development build without ldflags reports itself as "dev".
package buildinfo

import "strings"

var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the short git revision the build was made from.
	Commit = ""
	// Date is the UTC build timestamp.
	Date = ""
)

// String renders the stamp on one line, e.g. "v1.0.0 (abc1234, built
// 2026-08-29T10:00:00Z)". Unset fields are left out, so a development build
// renders as just "dev".
func String() string {
	var extra []string
	if Commit != "" {
		extra = append(extra, Commit)
	}
	if Date != "" {
		extra = append(extra, "built "+Date)
	}
	if len(extra) == 0 {
		return Version
	}
	return Version + " (" + strings.Join(extra, ", ") + ")"
}

// Template is the cobra version template, printing the full stamp after the
// command name.
func Template() string {
	return "{{.Name}} " + String() + "\n"
}
