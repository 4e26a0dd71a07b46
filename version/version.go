package version

// BuildVersion is set at build time via -ldflags.
var BuildVersion = "<version>"
