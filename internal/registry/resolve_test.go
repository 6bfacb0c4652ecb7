package registry

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/usl-labs/usl/internal/descriptor"
)

func TestResolveCollectsTransitiveClosure(t *testing.T) {
	lib := newLibrary(t)
	lib.add("Player", "scripts:\n- Input\n- Health\npackages:\n- com.unity.inputsystem\n")
	lib.add("Input", "packages:\n- com.unity.inputsystem\n- com.unity.textmeshpro\n")
	lib.add("Health", "")
	lib.add("Unused", "")

	r := NewResolver(newCountingParser(), zerolog.Nop())
	res, err := r.Resolve([]string{"Player"}, lib.catalog())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if diff := cmp.Diff([]string{"Health", "Input", "Player"}, packageNames(res.Packages)); diff != "" {
		t.Errorf("packages mismatch (-want +got):\n%s", diff)
	}
	wantIDs := []string{"com.unity.inputsystem", "com.unity.textmeshpro"}
	if diff := cmp.Diff(wantIDs, res.Identifiers); diff != "" {
		t.Errorf("identifiers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Input", "Health"}, res.Edges["Player"]); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveToleratesCycles(t *testing.T) {
	lib := newLibrary(t)
	lib.add("A", "scripts:\n- B\n")
	lib.add("B", "scripts:\n- A\n")

	parser := newCountingParser()
	res, err := NewResolver(parser, zerolog.Nop()).Resolve([]string{"A"}, lib.catalog())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if diff := cmp.Diff([]string{"A", "B"}, packageNames(res.Packages)); diff != "" {
		t.Errorf("packages mismatch (-want +got):\n%s", diff)
	}
	if parser.calls["A"] != 1 || parser.calls["B"] != 1 {
		t.Errorf("parse counts = %v, want each package parsed once", parser.calls)
	}
}

func TestResolveDiamondParsesSharedDependencyOnce(t *testing.T) {
	lib := newLibrary(t)
	lib.add("A", "scripts:\n- B\n- C\n")
	lib.add("B", "scripts:\n- D\n")
	lib.add("C", "scripts:\n- D\n")
	lib.add("D", "packages:\n- com.unity.mathematics\n")

	parser := newCountingParser()
	res, err := NewResolver(parser, zerolog.Nop()).Resolve([]string{"A"}, lib.catalog())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if diff := cmp.Diff([]string{"A", "B", "C", "D"}, packageNames(res.Packages)); diff != "" {
		t.Errorf("packages mismatch (-want +got):\n%s", diff)
	}
	if parser.calls["D"] != 1 {
		t.Errorf("D parsed %d times, want 1", parser.calls["D"])
	}
	if diff := cmp.Diff([]string{"com.unity.mathematics"}, res.Identifiers); diff != "" {
		t.Errorf("identifiers mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveMultipleRootsShareVisitedSet(t *testing.T) {
	lib := newLibrary(t)
	lib.add("A", "scripts:\n- Shared\n")
	lib.add("B", "scripts:\n- Shared\n")
	lib.add("Shared", "")

	parser := newCountingParser()
	res, err := NewResolver(parser, zerolog.Nop()).Resolve([]string{"A", "B"}, lib.catalog())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if diff := cmp.Diff([]string{"A", "B", "Shared"}, packageNames(res.Packages)); diff != "" {
		t.Errorf("packages mismatch (-want +got):\n%s", diff)
	}
	if parser.calls["Shared"] != 1 {
		t.Errorf("Shared parsed %d times, want 1", parser.calls["Shared"])
	}
}

func TestResolveMissingDependencySuggestsCloseNames(t *testing.T) {
	lib := newLibrary(t)
	lib.add("A", "scripts:\n- foox\n")
	lib.add("foo", "")

	_, err := NewResolver(newCountingParser(), zerolog.Nop()).Resolve([]string{"A"}, lib.catalog())

	var missing *MissingDependencyError
	if !errors.As(err, &missing) {
		t.Fatalf("Resolve error = %v, want *MissingDependencyError", err)
	}
	if missing.Name != "foox" || missing.RequiredBy != "A" {
		t.Errorf("got name=%q requiredBy=%q, want foox/A", missing.Name, missing.RequiredBy)
	}
	if diff := cmp.Diff([]string{"foo"}, missing.Suggestions); diff != "" {
		t.Errorf("suggestions mismatch (-want +got):\n%s", diff)
	}
	want := `script package "foox" (required by "A") not found; did you mean: foo`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestResolveMissingRoot(t *testing.T) {
	lib := newLibrary(t)
	lib.add("Player", "")

	_, err := NewResolver(newCountingParser(), zerolog.Nop()).Resolve([]string{"Nope"}, lib.catalog())

	var missing *MissingDependencyError
	if !errors.As(err, &missing) {
		t.Fatalf("Resolve error = %v, want *MissingDependencyError", err)
	}
	if missing.RequiredBy != "" {
		t.Errorf("RequiredBy = %q, want empty", missing.RequiredBy)
	}
	if len(missing.Suggestions) != 0 {
		t.Errorf("Suggestions = %v, want none", missing.Suggestions)
	}
	if err.Error() != `script package "Nope" not found` {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestResolveNoRoots(t *testing.T) {
	lib := newLibrary(t)
	lib.add("A", "")

	res, err := NewResolver(newCountingParser(), zerolog.Nop()).Resolve(nil, lib.catalog())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !res.IsEmpty() {
		t.Errorf("IsEmpty() = false, want true for %+v", res)
	}
}

func TestResolvePropagatesMalformedDescriptor(t *testing.T) {
	lib := newLibrary(t)
	lib.add("A", "scripts:\n- B\n")
	lib.add("B", "scripts:\n- C\nscripts:\n- D\n")

	_, err := NewResolver(newCountingParser(), zerolog.Nop()).Resolve([]string{"A"}, lib.catalog())

	var malformed *descriptor.MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("Resolve error = %v, want *descriptor.MalformedError", err)
	}
	if malformed.Line != 3 {
		t.Errorf("Line = %d, want 3", malformed.Line)
	}
}
