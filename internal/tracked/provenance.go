package tracked

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// Provenance records where a cell was last written. Its format is for humans
// only; nothing in the simulation depends on it.
type Provenance struct {
	Function string
	File     string
	Line     int
}

// String renders the write site as "file.go:line".
func (p Provenance) String() string {
	if p.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(p.File), p.Line)
}

// callerAt captures the frame skip levels above its caller.
func callerAt(skip int) Provenance {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Provenance{}
	}
	p := Provenance{File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		p.Function = fn.Name()
	}
	return p
}
