package version

// GITVERSION is injected by the build:
//
//	go build -ldflags "-X github.com/bacalhau-project/alarm-relay/pkg/version.GITVERSION=v1.2.3"
var GITVERSION = ""

const developmentVersion = "v0.0.0-dev"

func Get() string {
	if GITVERSION == "" {
		return developmentVersion
	}
	return GITVERSION
}
