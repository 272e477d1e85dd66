package boot

import (
	"fmt"

	"github.com/coreos/go-semver/semver"

	"github.com/lumen-engine/lumen"
	"github.com/lumen-engine/lumen/errors"
)

// gateVersions compares the launcher's compiled-in version against the
// version reported by the linked runtime library. It runs before anything
// else in Init: a mismatched library could have incompatible layouts for
// every subsequent operation, so no interpreter may be created past a
// failing gate.
//
// Identical strings always pass. Otherwise both must parse as semantic
// versions and compare equal; unparseable, unequal strings are a mismatch.
func gateVersions(binary, library string) error {
	if binary == library {
		return nil
	}

	bv, berr := semver.NewVersion(binary)
	lv, lerr := semver.NewVersion(library)
	if berr == nil && lerr == nil && bv.Equal(*lv) {
		return nil
	}

	return errors.VersionMismatch(binary, library)
}

// printMismatch writes the stable diagnostic for a failed gate. Both
// version strings must appear; external tooling matches on this text.
func (e *Env) printMismatch(library string) {
	fmt.Fprintf(e.Out, "Version mismatch detected!\nlumen binary is version %s\nlumen library is version %s\n",
		lumen.Version, library)
}
