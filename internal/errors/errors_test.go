package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(CodeTimeout, "no response within %dms", 250)
	want := "TIMEOUT: no response within 250ms"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("read tcp: connection reset")
	err := Wrap(CodeConnectionClosed, cause, "client dropped")
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause in chain")
	}
	if CodeOf(err) != CodeConnectionClosed {
		t.Fatalf("expected CONNECTION_CLOSED, got %s", CodeOf(err))
	}
}

func TestCodeOfPlainError(t *testing.T) {
	if got := CodeOf(fmt.Errorf("boom")); got != CodeUnknown {
		t.Fatalf("expected UNKNOWN, got %s", got)
	}
}

func TestHasCodeThroughWrapping(t *testing.T) {
	inner := New(CodeObjectNotFound, "no object %q", "cube")
	outer := fmt.Errorf("handling command: %w", inner)
	if !HasCode(outer, CodeObjectNotFound) {
		t.Fatal("expected OBJECT_NOT_FOUND through fmt wrapping")
	}
}
