package mfl

// Version reported by the mfl CLI.
const Version = "0.3.0"

// BuildDate is stamped by the release build via -ldflags.
var BuildDate = "unknown"
