package graph

import (
	"testing"

	"github.com/jamie-anson/prdgen/internal/analyzer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the project graph:
// - Nodes created for top-level functions and classes
// - Edges follow analyzer dependencies within a file
// - Same symbol name in different files yields distinct nodes
// - Reverse indexes answer caller/callee queries
// - Edges to skipped symbols are dropped

func TestBuild_NodesAndEdges(t *testing.T) {
	t.Parallel()

	results := map[string]*analyzer.AnalysisResult{
		"src/app.ts": {
			Functions: []analyzer.FunctionInfo{
				{Name: "main", Signature: "function main()", Dependencies: []string{"setup"}},
				{Name: "setup", Signature: "function setup()", Dependencies: []string{}},
			},
			Classes: []analyzer.ClassInfo{
				{Name: "App", Signature: "class App { ... }", Methods: []analyzer.FunctionInfo{{Name: "run"}}, Dependencies: []string{"setup"}},
			},
		},
	}

	pg, err := Build(results)
	require.NoError(t, err)

	require.Len(t, pg.Nodes(), 3)
	require.Len(t, pg.Edges(), 2)

	node, err := pg.Node("src/app.ts#App")
	require.NoError(t, err)
	assert.Equal(t, NodeClass, node.Kind)
	assert.Equal(t, 1, node.Methods)

	assert.Equal(t, []string{"src/app.ts#setup"}, pg.Callees("src/app.ts#main"))
	assert.ElementsMatch(t,
		[]string{"src/app.ts#main", "src/app.ts#App"},
		pg.Callers("src/app.ts#setup"))
}

func TestBuild_SameNameAcrossFiles(t *testing.T) {
	t.Parallel()

	results := map[string]*analyzer.AnalysisResult{
		"a.ts": {Functions: []analyzer.FunctionInfo{{Name: "init"}}},
		"b.ts": {Functions: []analyzer.FunctionInfo{{Name: "init"}}},
	}

	pg, err := Build(results)
	require.NoError(t, err)
	assert.Len(t, pg.Nodes(), 2)
}

func TestBuild_EdgesStayWithinFile(t *testing.T) {
	t.Parallel()

	// helper exists only in b.ts; a.ts's dependency on "helper" has no
	// same-file target and is dropped.
	results := map[string]*analyzer.AnalysisResult{
		"a.ts": {Functions: []analyzer.FunctionInfo{
			{Name: "caller", Dependencies: []string{"helper"}},
		}},
		"b.ts": {Functions: []analyzer.FunctionInfo{{Name: "helper"}}},
	}

	pg, err := Build(results)
	require.NoError(t, err)
	assert.Empty(t, pg.Edges())
}

func TestBuild_EmptyResults(t *testing.T) {
	t.Parallel()

	pg, err := Build(map[string]*analyzer.AnalysisResult{})
	require.NoError(t, err)
	assert.Empty(t, pg.Nodes())
	assert.Empty(t, pg.Edges())

	pg, err = Build(map[string]*analyzer.AnalysisResult{"a.ts": nil})
	require.NoError(t, err)
	assert.Empty(t, pg.Nodes())
}

func TestNodeID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "src/x.ts#foo", NodeID("src/x.ts", "foo"))
}
