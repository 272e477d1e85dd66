package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseBootstrap,
				Kind:   KindRegistration,
				Module: "lumen.setup",
				Detail: "duplicate name",
			},
			contains: []string{"[bootstrap]", "registration", "lumen.setup", "duplicate name"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseShutdown,
				Kind:  KindNotInitialized,
			},
			contains: []string{"[shutdown]", "not_initialized"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseRuntime,
				Kind:   KindGuestFault,
				Module: "lumen.boot",
				Cause:  errors.New("unreachable executed"),
			},
			contains: []string{"[runtime]", "guest_fault", "lumen.boot", "caused by", "unreachable executed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("Error() = %q, missing %q", msg, want)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := GuestFault("lumen.boot", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
}

func TestError_Is_MatchesPhaseAndKind(t *testing.T) {
	err := Registration(PhaseBootstrap, "lumen", errors.New("x"))

	if !errors.Is(err, &Error{Phase: PhaseBootstrap, Kind: KindRegistration}) {
		t.Error("expected match on same phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseRuntime, Kind: KindRegistration}) {
		t.Error("expected no match on different phase")
	}
}

func TestVersionMismatch_MentionsBothVersions(t *testing.T) {
	err := VersionMismatch("1.4.2", "1.3.0")
	msg := err.Error()

	if !strings.Contains(msg, "1.4.2") || !strings.Contains(msg, "1.3.0") {
		t.Errorf("mismatch error must carry both versions, got %q", msg)
	}
}

func TestTerminal_Kind(t *testing.T) {
	err := Terminal("resume after completion")

	var structured *Error
	if !errors.As(err, &structured) {
		t.Fatal("expected *Error")
	}
	if structured.Kind != KindTerminal {
		t.Errorf("kind = %s, want %s", structured.Kind, KindTerminal)
	}
}
