package texmath

import "github.com/juju/loggo"

// log is the package-level diagnostic logger, generalizing the teacher's
// package-level debug logger (pongo2_options.go) to github.com/juju/loggo.
// It never influences control flow; SetDebug toggles TRACE-level output
// for token reads, macro expansion steps, and scope push/pop.
var log = loggo.GetLogger("texmath")

var debugEnabled bool

// SetDebug turns TRACE-level diagnostic logging on or off for the whole
// package, mirroring pongo2.SetDebug.
func SetDebug(enabled bool) {
	debugEnabled = enabled
	if enabled {
		log.SetLogLevel(loggo.TRACE)
	} else {
		log.SetLogLevel(loggo.WARNING)
	}
}

func tracef(format string, args ...interface{}) {
	if debugEnabled {
		log.Tracef(format, args...)
	}
}
