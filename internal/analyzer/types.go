package analyzer

// FunctionInfo describes a named function declaration or class method.
type FunctionInfo struct {
	// Name is the declared identifier.
	Name string `json:"name"`

	// Signature is the declaration text up to (but not including) the body block.
	Signature string `json:"signature"`

	// Dependencies lists other known top-level symbols this function calls,
	// in first-seen order with no duplicates.
	Dependencies []string `json:"dependencies"`
}

// ClassInfo describes a class declaration and its directly nested methods.
type ClassInfo struct {
	Name      string `json:"name"`
	Signature string `json:"signature"`

	// Methods are the method definitions found directly in the class body.
	// Nested classes are not recursed into.
	Methods []FunctionInfo `json:"methods"`

	// Dependencies are computed from the full class declaration text, not
	// from the union of the methods' dependencies.
	Dependencies []string `json:"dependencies"`
}

// AnalysisResult is the structural summary of a single source file.
// Functions and Classes preserve declaration order of first occurrence.
type AnalysisResult struct {
	Functions []FunctionInfo `json:"functions"`
	Classes   []ClassInfo    `json:"classes"`
}
