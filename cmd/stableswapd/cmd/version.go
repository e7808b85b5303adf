package cmd

// version is stamped at build time via -ldflags "-X ...cmd.version=v1.2.3".
var version = "dev"
