package version

// Version is the hoi release.
const Version = "0.4.0"

// BuildVersion returns the string printed by "hoi version".
func BuildVersion() string {
	return "hoi version " + Version
}

// APIVersion returns the version reported by the HTTP API.
func APIVersion() string {
	return Version
}
