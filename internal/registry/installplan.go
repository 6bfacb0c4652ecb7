package registry

import (
	"fmt"
	"io"
)

// BuildInstallPlan summarizes a resolution for display.
func BuildInstallPlan(res *Resolution) *InstallPlan {
	return &InstallPlan{
		Trees:       BuildTrees(res),
		Packages:    res.Packages,
		Identifiers: res.Identifiers,
	}
}

// PrintTree prints the dependency tree with box-drawing characters.
func PrintTree(w io.Writer, node *DependencyNode, prefix string, isLast bool) {
	if node == nil {
		return
	}

	connector := "├── "
	if isLast {
		connector = "└── "
	}

	label := node.Name
	if node.Deduped {
		label += " (deduped)"
	}

	// The root node gets no connector.
	if prefix == "" {
		fmt.Fprintf(w, "  %s\n", label)
	} else {
		fmt.Fprintf(w, "  %s%s%s\n", prefix, connector, label)
	}

	childPrefix := prefix
	if prefix != "" {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	} else {
		childPrefix = " "
	}

	for i, child := range node.Children {
		PrintTree(w, child, childPrefix, i == len(node.Children)-1)
	}
}

// PrintPlan prints the full install plan: dependency trees, the packages
// that will be copied and the identifiers that will be added to the manifest.
func PrintPlan(w io.Writer, plan *InstallPlan) {
	fmt.Fprintln(w, "--- Installation Plan ---")

	for _, tree := range plan.Trees {
		PrintTree(w, tree, "", true)
	}
	fmt.Fprintln(w)

	if len(plan.Packages) > 0 {
		fmt.Fprintf(w, "The following %s will be copied:\n", plural(len(plan.Packages), "script package", "script packages"))
		for _, p := range plan.Packages {
			fmt.Fprintf(w, "  - %s\n", p.Name)
		}
	}
	if len(plan.Identifiers) > 0 {
		fmt.Fprintf(w, "The following %s will be added to manifest.json:\n", plural(len(plan.Identifiers), "Unity package", "Unity packages"))
		for _, id := range plan.Identifiers {
			fmt.Fprintf(w, "  - %s\n", id)
		}
	}

	fmt.Fprintln(w, "-------------------------")
	fmt.Fprintln(w)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
