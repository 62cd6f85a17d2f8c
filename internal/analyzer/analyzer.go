package analyzer

import (
	"log"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// StructureAnalyzer extracts top-level functions and classes from one source
// file and links same-file call dependencies between them. It carries no state
// between calls, so independent invocations are safe to run concurrently.
type StructureAnalyzer struct {
	language *sitter.Language
	lang     string
	logger   *log.Logger
}

// Option configures a StructureAnalyzer.
type Option func(*StructureAnalyzer)

// WithLogger sets the logger used for parse-failure reporting.
func WithLogger(logger *log.Logger) Option {
	return func(a *StructureAnalyzer) {
		a.logger = logger
	}
}

// WithLanguage overrides the grammar. The default is TypeScript, which also
// covers JavaScript sources.
func WithLanguage(language *sitter.Language, lang string) Option {
	return func(a *StructureAnalyzer) {
		a.language = language
		a.lang = lang
	}
}

// NewAnalyzer creates a StructureAnalyzer for TypeScript/JavaScript sources.
func NewAnalyzer(opts ...Option) *StructureAnalyzer {
	a := &StructureAnalyzer{
		language: sitter.NewLanguage(typescript.LanguageTypescript()),
		lang:     "typescript",
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Language returns the grammar name the analyzer was built with.
func (a *StructureAnalyzer) Language() string {
	return a.lang
}

// Analyze parses source and returns its structural summary. Malformed input
// degrades to a partial or empty result; Analyze never panics and never
// returns nil. Callers iterating over many files can treat an empty result as
// "nothing extractable" rather than a hard error.
func (a *StructureAnalyzer) Analyze(source []byte) (result *AnalysisResult) {
	result = &AnalysisResult{
		Functions: []FunctionInfo{},
		Classes:   []ClassInfo{},
	}

	// Absorb parser-internal failures so a single bad file cannot abort a
	// caller's batch.
	defer func() {
		if r := recover(); r != nil {
			a.logger.Printf("analyzer: parse failed for %s source: %v", a.lang, r)
			result = &AnalysisResult{
				Functions: []FunctionInfo{},
				Classes:   []ClassInfo{},
			}
		}
	}()

	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(a.language)

	tree := parser.Parse(source, nil)
	if tree == nil {
		a.logger.Printf("analyzer: parser returned no tree for %s source", a.lang)
		return result
	}
	defer tree.Close()

	root := tree.RootNode()

	funcNodes := a.extractFunctions(root, source, result)
	classNodes := a.extractClasses(root, source, result)

	a.linkDependencies(source, result, funcNodes, classNodes)

	return result
}

// extractFunctions collects top-level function declarations, unwrapping export
// statements. Returns the declaration nodes parallel to result.Functions.
func (a *StructureAnalyzer) extractFunctions(root *sitter.Node, source []byte, result *AnalysisResult) []*sitter.Node {
	var nodes []*sitter.Node
	seen := make(map[uint]bool)

	for i := 0; i < int(root.ChildCount()); i++ {
		decl := unwrapExport(root.Child(uint(i)))
		if decl == nil || decl.Kind() != "function_declaration" {
			continue
		}

		// The same physical declaration can be reached both bare and through
		// its export wrapper; count it once by start offset.
		if seen[decl.StartByte()] {
			continue
		}
		seen[decl.StartByte()] = true

		nameNode := decl.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}

		result.Functions = append(result.Functions, FunctionInfo{
			Name:         extractNodeText(nameNode, source),
			Signature:    sliceSignature(decl, source),
			Dependencies: []string{},
		})
		nodes = append(nodes, decl)
	}

	return nodes
}

// extractClasses collects top-level class declarations with their methods.
// Returns the declaration nodes parallel to result.Classes.
func (a *StructureAnalyzer) extractClasses(root *sitter.Node, source []byte, result *AnalysisResult) []*sitter.Node {
	var nodes []*sitter.Node
	seen := make(map[uint]bool)

	for i := 0; i < int(root.ChildCount()); i++ {
		decl := unwrapExport(root.Child(uint(i)))
		if decl == nil || decl.Kind() != "class_declaration" {
			continue
		}

		if seen[decl.StartByte()] {
			continue
		}
		seen[decl.StartByte()] = true

		nameNode := decl.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}

		info := ClassInfo{
			Name:         extractNodeText(nameNode, source),
			Signature:    classSignature(decl, source),
			Methods:      []FunctionInfo{},
			Dependencies: []string{},
		}

		if body := decl.ChildByFieldName("body"); body != nil {
			for j := 0; j < int(body.ChildCount()); j++ {
				method := body.Child(uint(j))
				if method.Kind() != "method_definition" {
					continue
				}
				methodName := method.ChildByFieldName("name")
				if methodName == nil {
					continue
				}
				info.Methods = append(info.Methods, FunctionInfo{
					Name:         extractNodeText(methodName, source),
					Signature:    sliceSignature(method, source),
					Dependencies: []string{},
				})
			}
		}

		result.Classes = append(result.Classes, info)
		nodes = append(nodes, decl)
	}

	return nodes
}

// unwrapExport returns the inner declaration of an export statement, or the
// node itself when it is not an export wrapper.
func unwrapExport(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	if node.Kind() == "export_statement" {
		if decl := node.ChildByFieldName("declaration"); decl != nil {
			return decl
		}
	}
	return node
}

// sliceSignature returns the declaration text before its body block, trimmed.
// Declarations without a body node keep their full text verbatim.
func sliceSignature(decl *sitter.Node, source []byte) string {
	body := decl.ChildByFieldName("body")
	if body == nil {
		return strings.TrimSpace(extractNodeText(decl, source))
	}
	return strings.TrimSpace(string(source[decl.StartByte():body.StartByte()]))
}

// classSignature slices the class header and marks the elided body. A header
// without the class keyword (malformed declaration) is kept as sliced.
func classSignature(decl *sitter.Node, source []byte) string {
	header := sliceSignature(decl, source)
	if strings.Contains(header, "class") {
		return header + " { ... }"
	}
	return header
}

// extractNodeText returns the source slice covered by a node.
func extractNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// walkTree visits node and its subtree until the visitor returns false for a
// branch.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visitor(node) {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(uint(i)), visitor)
	}
}
