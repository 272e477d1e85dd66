package lumen

// Version is the launcher's compiled-in version string. The boot layer
// compares it against the version reported by the linked engine before any
// interpreter is created; the two are only guaranteed compatible when equal.
const Version = "1.4.2"

// Codename is the human-readable release name printed by --version.
const Codename = "lantern"
