package common

const (
	major = 0
	minor = 1
	patch = 0

	// Version is the current contract version reported by the Version
	// method. The contract itself is not updatable, the value identifies
	// the deployed source revision.
	Version = major*1_000_000 + minor*1_000 + patch
)
