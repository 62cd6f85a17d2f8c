package graph

import (
	"fmt"
	"sort"

	"github.com/dominikbraun/graph"
	"github.com/jamie-anson/prdgen/internal/analyzer"
)

// NodeKind distinguishes the two top-level symbol kinds in the map.
type NodeKind string

const (
	NodeFunction NodeKind = "function"
	NodeClass    NodeKind = "class"
)

// Node is one top-level symbol in the project dependency graph.
type Node struct {
	// ID is "<relative path>#<symbol name>"; dependency edges are same-file
	// by construction, so the pair is unique per extraction pass.
	ID        string
	Name      string
	Kind      NodeKind
	File      string
	Signature string
	Methods   int // method count for classes, 0 for functions
}

// Edge is a directed call dependency between two nodes.
type Edge struct {
	From string
	To   string
}

// ProjectGraph aggregates per-file analysis results into one directed graph
// with reverse indexes for fan-in/fan-out queries.
type ProjectGraph struct {
	g       graph.Graph[string, *Node]
	nodes   []*Node
	edges   []Edge
	callees map[string][]string // node ID -> IDs it calls
	callers map[string][]string // node ID -> IDs calling it
}

// NodeID builds the graph identifier for a symbol.
func NodeID(file, name string) string {
	return file + "#" + name
}

// Build assembles a project graph from per-file analysis results, keyed by
// workspace-relative path. Iteration over files is sorted so the graph is
// deterministic for rendering.
func Build(results map[string]*analyzer.AnalysisResult) (*ProjectGraph, error) {
	pg := &ProjectGraph{
		g:       graph.New(func(n *Node) string { return n.ID }, graph.Directed()),
		callees: make(map[string][]string),
		callers: make(map[string][]string),
	}

	files := make([]string, 0, len(results))
	for file := range results {
		files = append(files, file)
	}
	sort.Strings(files)

	for _, file := range files {
		result := results[file]
		if result == nil {
			continue
		}

		for _, fn := range result.Functions {
			node := &Node{
				ID:        NodeID(file, fn.Name),
				Name:      fn.Name,
				Kind:      NodeFunction,
				File:      file,
				Signature: fn.Signature,
			}
			if err := pg.addNode(node); err != nil {
				return nil, err
			}
		}

		for _, cls := range result.Classes {
			node := &Node{
				ID:        NodeID(file, cls.Name),
				Name:      cls.Name,
				Kind:      NodeClass,
				File:      file,
				Signature: cls.Signature,
				Methods:   len(cls.Methods),
			}
			if err := pg.addNode(node); err != nil {
				return nil, err
			}
		}
	}

	// Second pass: dependency names resolve within the same file only,
	// mirroring the analyzer's known-symbols rule.
	for _, file := range files {
		result := results[file]
		if result == nil {
			continue
		}

		for _, fn := range result.Functions {
			pg.addEdges(file, fn.Name, fn.Dependencies)
		}
		for _, cls := range result.Classes {
			pg.addEdges(file, cls.Name, cls.Dependencies)
		}
	}

	return pg, nil
}

// addNode registers a node, tolerating duplicate IDs from overloaded
// declarations (the first one wins, matching extraction order).
func (pg *ProjectGraph) addNode(node *Node) error {
	if err := pg.g.AddVertex(node); err != nil {
		if err == graph.ErrVertexAlreadyExists {
			return nil
		}
		return fmt.Errorf("failed to add %s: %w", node.ID, err)
	}
	pg.nodes = append(pg.nodes, node)
	return nil
}

// addEdges records the call edges of one symbol.
func (pg *ProjectGraph) addEdges(file, from string, deps []string) {
	fromID := NodeID(file, from)
	for _, dep := range deps {
		toID := NodeID(file, dep)
		// Skip edges whose target was skipped during extraction.
		if _, err := pg.g.Vertex(toID); err != nil {
			continue
		}
		if err := pg.g.AddEdge(fromID, toID); err != nil {
			// Duplicate edges can appear when a class and its method both
			// reference the same target; the first one is enough.
			continue
		}
		pg.edges = append(pg.edges, Edge{From: fromID, To: toID})
		pg.callees[fromID] = append(pg.callees[fromID], toID)
		pg.callers[toID] = append(pg.callers[toID], fromID)
	}
}

// Nodes returns all nodes in insertion (file, declaration) order.
func (pg *ProjectGraph) Nodes() []*Node {
	return pg.nodes
}

// Edges returns all edges in insertion order.
func (pg *ProjectGraph) Edges() []Edge {
	return pg.edges
}

// Callees returns the IDs a node calls.
func (pg *ProjectGraph) Callees(id string) []string {
	return pg.callees[id]
}

// Callers returns the IDs calling a node.
func (pg *ProjectGraph) Callers(id string) []string {
	return pg.callers[id]
}

// Node looks up a node by ID.
func (pg *ProjectGraph) Node(id string) (*Node, error) {
	return pg.g.Vertex(id)
}
