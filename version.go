package toolwright

// Version is the toolchain version reported by the CLI and the serving
// adapters. Overridden at release time via -ldflags.
var Version = "0.1.0"
