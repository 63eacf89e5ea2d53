package patchbay

// Version is the library release. The CLI overrides it at build time
// via -ldflags.
var Version = "0.1.0"
