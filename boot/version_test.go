package boot

import (
	stderrors "errors"
	"testing"

	"github.com/lumen-engine/lumen/errors"
)

func TestGateVersions(t *testing.T) {
	tests := []struct {
		name    string
		binary  string
		library string
		pass    bool
	}{
		{"identical", "1.4.2", "1.4.2", true},
		{"patch differs", "1.4.2", "1.4.3", false},
		{"major differs", "2.0.0", "1.4.2", false},
		{"identical junk", "devbuild", "devbuild", true},
		{"unparseable and unequal", "devbuild", "1.4.2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gateVersions(tt.binary, tt.library)
			if tt.pass && err != nil {
				t.Errorf("gateVersions(%q, %q) = %v, want pass", tt.binary, tt.library, err)
			}
			if !tt.pass {
				if err == nil {
					t.Fatalf("gateVersions(%q, %q) passed, want mismatch", tt.binary, tt.library)
				}
				if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseVersion, Kind: errors.KindMismatch}) {
					t.Errorf("err = %v, want version mismatch", err)
				}
			}
		})
	}
}
