package quorum

// Release of this module. Builds from an untagged commit carry a suffix.
const release = "v0.1.0-dev"

// GitCommit is set at build time with
//
//	-ldflags "-X github.com/iov-one/quorum.GitCommit=<hash>"
var GitCommit = ""

// Version returns the release, followed by the commit when known.
func Version() string {
	if GitCommit == "" {
		return release
	}
	return release + " " + GitCommit
}
