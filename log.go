package carve

import "log"

// Logf is the package-level diagnostic logger. It defaults to
// log.Printf but may be replaced (e.g. silenced in tests). Carve only
// logs non-fatal conditions through it: skipped no-op transforms,
// nodes left unchanged after a geometry failure, and similar.
var Logf func(format string, v ...interface{}) = log.Printf
