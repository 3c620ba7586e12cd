package qtestci

// Version is the version of the CLI. It is set at build time through ldflags.
var Version = "v0.0.0-dev"
