package registry

// BuildTrees turns a resolution into one display tree per root. A package
// that already appeared anywhere earlier is shown as a deduped leaf, which
// also keeps cyclic graphs finite.
func BuildTrees(res *Resolution) []*DependencyNode {
	if res == nil {
		return nil
	}
	seen := make(map[string]bool)
	trees := make([]*DependencyNode, 0, len(res.Roots))
	for _, root := range res.Roots {
		trees = append(trees, buildNode(root, res.Edges, seen))
	}
	return trees
}

func buildNode(name string, edges map[string][]string, seen map[string]bool) *DependencyNode {
	node := &DependencyNode{Name: name}

	if seen[name] {
		node.Deduped = true
		return node
	}
	seen[name] = true

	for _, dep := range edges[name] {
		node.Children = append(node.Children, buildNode(dep, edges, seen))
	}
	return node
}
