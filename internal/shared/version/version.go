package version

// Version is the release identifier reported by -version and attached
// to exported trace spans.
const Version = "1.0.0"
