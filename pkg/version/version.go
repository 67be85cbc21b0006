// Package version holds the build version, overridable at link time:
//
//	go build -ldflags "-X github.com/farmactiva/schemactl/pkg/version.Version=1.2.3"
package version

// Version is the current schemactl version.
var Version = "0.1.0-dev"
