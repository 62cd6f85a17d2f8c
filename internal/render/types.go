package render

import "time"

// SymbolDoc is one documented symbol: analyzer output plus its summary.
type SymbolDoc struct {
	Name         string
	Signature    string
	Summary      string
	Dependencies []string
}

// ClassDoc is a documented class with its methods.
type ClassDoc struct {
	SymbolDoc
	Methods []SymbolDoc
}

// FileDoc is the documented view of one source file, the unit a context card
// is rendered from.
type FileDoc struct {
	// Path is workspace-relative with forward slashes.
	Path      string
	Summary   string
	Functions []SymbolDoc
	Classes   []ClassDoc
}

// ProjectDoc is the documented view of the whole workspace.
type ProjectDoc struct {
	Name        string
	GeneratedAt time.Time
	Files       []FileDoc
}

// SymbolCount returns the number of documented symbols in a file, methods
// included.
func (f *FileDoc) SymbolCount() int {
	n := len(f.Functions)
	for _, cls := range f.Classes {
		n += 1 + len(cls.Methods)
	}
	return n
}
