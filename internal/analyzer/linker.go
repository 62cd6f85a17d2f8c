package analyzer

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// linkItem pairs an extracted symbol with the node its call sites are scanned
// from. The deps pointer receives the computed edge list once the whole pass
// has finished, so callers never observe a partially linked result.
type linkItem struct {
	owner string
	node  *sitter.Node
	deps  *[]string
}

// linkDependencies populates the dependency edges for every extracted symbol.
// Link targets are top-level function and class names only; method names are
// deliberately not eligible, matching the original tool's behavior.
func (a *StructureAnalyzer) linkDependencies(source []byte, result *AnalysisResult, funcNodes, classNodes []*sitter.Node) {
	known := make(map[string]bool, len(result.Functions)+len(result.Classes))
	for _, fn := range result.Functions {
		known[fn.Name] = true
	}
	for _, cls := range result.Classes {
		known[cls.Name] = true
	}

	var worklist []linkItem

	for i := range result.Functions {
		body := funcNodes[i].ChildByFieldName("body")
		if body == nil {
			continue
		}
		worklist = append(worklist, linkItem{
			owner: result.Functions[i].Name,
			node:  body,
			deps:  &result.Functions[i].Dependencies,
		})
	}

	for i := range result.Classes {
		cls := &result.Classes[i]

		// Class dependencies come from the full declaration text, which is
		// distinct from the union of its methods' dependencies.
		worklist = append(worklist, linkItem{
			owner: cls.Name,
			node:  classNodes[i],
			deps:  &cls.Dependencies,
		})

		body := classNodes[i].ChildByFieldName("body")
		if body == nil {
			continue
		}

		// Methods are re-discovered from the class body and matched back to
		// the extracted FunctionInfo by name. A method that cannot be matched
		// simply keeps an empty edge set.
		for j := 0; j < int(body.ChildCount()); j++ {
			method := body.Child(uint(j))
			if method.Kind() != "method_definition" {
				continue
			}
			nameNode := method.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			name := extractNodeText(nameNode, source)

			var target *FunctionInfo
			for k := range cls.Methods {
				if cls.Methods[k].Name == name {
					target = &cls.Methods[k]
					break
				}
			}
			if target == nil {
				continue
			}

			methodBody := method.ChildByFieldName("body")
			if methodBody == nil {
				continue
			}
			worklist = append(worklist, linkItem{
				owner: name,
				node:  methodBody,
				deps:  &target.Dependencies,
			})
		}
	}

	// Two-phase: compute every edge set first, then assign in one step.
	computed := make([][]string, len(worklist))
	for i, item := range worklist {
		computed[i] = collectCallEdges(item.node, source, item.owner, known)
	}
	for i, item := range worklist {
		*item.deps = computed[i]
	}
}

// collectCallEdges scans a subtree for call expressions whose callee is a bare
// identifier naming a known symbol. Self-recursion is not recorded as a
// dependency. Insertion order is preserved and duplicates are dropped.
func collectCallEdges(node *sitter.Node, source []byte, owner string, known map[string]bool) []string {
	deps := []string{}
	recorded := make(map[string]bool)

	walkTree(node, func(n *sitter.Node) bool {
		if n.Kind() != "call_expression" {
			return true
		}
		callee := n.ChildByFieldName("function")
		if callee == nil || callee.Kind() != "identifier" {
			return true
		}
		name := extractNodeText(callee, source)
		if name == owner || !known[name] || recorded[name] {
			return true
		}
		recorded[name] = true
		deps = append(deps, name)
		return true
	})

	return deps
}
