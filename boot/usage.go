package boot

import (
	"fmt"
	"io"

	"github.com/lumen-engine/lumen"
)

// usageText is matched by external tooling; keep it stable.
const usageText = `lumen runs applications whose logic lives in a compiled guest program
https://lumen-engine.org

usage:
    lumen --version             prints the lumen version and quits
    lumen --help                prints this message and quits
    lumen path/to/appdir        runs the app from the given directory which contains an entry program
    lumen path/to/app.lum       runs the packaged app from the provided .lum file
    lumen path/to/program.wasm  runs the app from the given compiled program
`

func printUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

func printVersion(w io.Writer, library string) {
	fmt.Fprintf(w, "lumen %s (%s)\n", library, lumen.Codename)
}
