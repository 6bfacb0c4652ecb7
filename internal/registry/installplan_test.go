package registry

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintTree(t *testing.T) {
	res := &Resolution{
		Roots: []string{"A"},
		Edges: map[string][]string{"A": {"B", "C"}, "B": {"A"}},
	}
	var buf bytes.Buffer
	PrintTree(&buf, BuildTrees(res)[0], "", true)

	want := strings.Join([]string{
		"  A",
		"   ├── B",
		"   │   └── A (deduped)",
		"   └── C",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("PrintTree output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrintPlan(t *testing.T) {
	res := &Resolution{
		Roots:       []string{"Player"},
		Packages:    []*Package{{Name: "Input"}, {Name: "Player"}},
		Identifiers: []string{"com.unity.inputsystem"},
		Edges:       map[string][]string{"Player": {"Input"}},
	}

	var buf bytes.Buffer
	PrintPlan(&buf, BuildInstallPlan(res))
	out := buf.String()

	for _, want := range []string{
		"--- Installation Plan ---",
		"  Player\n",
		"└── Input",
		"The following 2 script packages will be copied:",
		"  - Input\n",
		"The following 1 Unity package will be added to manifest.json:",
		"  - com.unity.inputsystem\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("plan output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintPlanOmitsEmptySections(t *testing.T) {
	res := &Resolution{
		Roots:    []string{"Solo"},
		Packages: []*Package{{Name: "Solo"}},
		Edges:    map[string][]string{"Solo": nil},
	}

	var buf bytes.Buffer
	PrintPlan(&buf, BuildInstallPlan(res))
	if strings.Contains(buf.String(), "manifest.json") {
		t.Errorf("plan without identifiers mentions manifest:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "The following 1 script package will be copied:") {
		t.Errorf("plan output:\n%s", buf.String())
	}
}
