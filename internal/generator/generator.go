package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jamie-anson/prdgen/internal/analyzer"
	"github.com/jamie-anson/prdgen/internal/config"
	"github.com/jamie-anson/prdgen/internal/enrich"
	"github.com/jamie-anson/prdgen/internal/graph"
	"github.com/jamie-anson/prdgen/internal/render"
	"github.com/jamie-anson/prdgen/internal/scanner"
	"github.com/jamie-anson/prdgen/internal/score"
	"github.com/jamie-anson/prdgen/internal/store"
)

// ProgressReporter receives phase-level progress during a run. Implementations
// must tolerate being called from a single goroutine only.
type ProgressReporter interface {
	// StartPhase begins a named phase with a known number of steps.
	StartPhase(name string, total int)

	// Advance marks one step of the current phase complete.
	Advance()

	// FinishPhase completes the current phase.
	FinishPhase()
}

// noopReporter discards all progress events.
type noopReporter struct{}

func (noopReporter) StartPhase(string, int) {}
func (noopReporter) Advance()               {}
func (noopReporter) FinishPhase()           {}

// Result summarizes one generation run.
type Result struct {
	SourceFiles int
	DocFiles    int
	Symbols     int
	Summarized  int
	Score       score.Report
	OutputDir   string
	Duration    time.Duration
}

// Generator orchestrates a full documentation run: discover, analyze, enrich,
// link, score, render.
type Generator struct {
	cfg      *config.Config
	rootDir  string
	analyzer *analyzer.StructureAnalyzer
	provider enrich.Provider
	cache    *store.Store
	reporter ProgressReporter
	logger   *log.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithProvider overrides the summary provider built from configuration.
func WithProvider(p enrich.Provider) Option {
	return func(g *Generator) { g.provider = p }
}

// WithStore attaches a summary cache. Without one, every run summarizes from
// scratch.
func WithStore(s *store.Store) Option {
	return func(g *Generator) { g.cache = s }
}

// WithProgress attaches a progress reporter.
func WithProgress(r ProgressReporter) Option {
	return func(g *Generator) { g.reporter = r }
}

// WithLogger sets the logger for warnings and per-file diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// New creates a Generator for the given workspace root.
func New(cfg *config.Config, rootDir string, opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg:      cfg,
		rootDir:  rootDir,
		reporter: noopReporter{},
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.analyzer = analyzer.NewAnalyzer(analyzer.WithLogger(g.logger))

	if g.provider == nil {
		provider, err := enrich.NewProvider(cfg.Generation)
		if err != nil {
			return nil, err
		}
		g.provider = provider
	}

	return g, nil
}

// Run executes a full generation pass and writes artifacts under the
// configured output directory.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	started := time.Now()

	discovery, err := scanner.NewFileDiscovery(g.rootDir,
		g.cfg.Paths.Source, g.cfg.Paths.Docs, g.cfg.Paths.Ignore)
	if err != nil {
		return nil, fmt.Errorf("invalid path patterns: %w", err)
	}

	sourceFiles, docFiles, err := discovery.DiscoverFiles()
	if err != nil {
		return nil, fmt.Errorf("file discovery failed: %w", err)
	}

	if err := g.provider.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("summary provider failed to initialize: %w", err)
	}
	defer g.provider.Close()

	if g.cache != nil && g.cfg.Cache.MaxAgeDays > 0 {
		maxAge := time.Duration(g.cfg.Cache.MaxAgeDays) * 24 * time.Hour
		if err := g.cache.Prune(maxAge); err != nil {
			g.logger.Printf("Warning: failed to prune summary cache: %v", err)
		}
	}

	// Phase 1: parse every source file. Files that fail to read or parse
	// degrade to empty results rather than aborting the run.
	g.reporter.StartPhase("Analyzing", len(sourceFiles))
	analyses := make(map[string]*analyzer.AnalysisResult, len(sourceFiles))
	contents := make(map[string][]byte, len(sourceFiles))
	for _, path := range sourceFiles {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		relPath := g.relPath(path)
		source, err := os.ReadFile(path)
		if err != nil {
			g.logger.Printf("Warning: failed to read %s: %v", relPath, err)
			g.reporter.Advance()
			continue
		}

		analyses[relPath] = g.analyzer.Analyze(source)
		contents[relPath] = source
		g.reporter.Advance()
	}
	g.reporter.FinishPhase()

	// Phase 2: summarize files and symbols.
	project := &render.ProjectDoc{
		Name:        filepath.Base(g.rootDir),
		GeneratedAt: time.Now(),
	}
	totalSymbols := 0
	summarized := 0

	g.reporter.StartPhase("Summarizing", len(analyses))
	for _, relPath := range sortedKeys(analyses) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		fileDoc, fileSummarized := g.enrichFile(ctx, relPath, analyses[relPath], contents[relPath])
		project.Files = append(project.Files, *fileDoc)
		totalSymbols += fileDoc.SymbolCount()
		summarized += fileSummarized
		g.reporter.Advance()
	}
	g.reporter.FinishPhase()

	// Phase 3: cross-symbol graph and score.
	projectGraph, err := graph.Build(analyses)
	if err != nil {
		return nil, fmt.Errorf("failed to build dependency graph: %w", err)
	}

	report := score.Compute(score.Input{
		TotalSymbols:      totalSymbols,
		SummarizedSymbols: summarized,
		GraphNodes:        len(projectGraph.Nodes()),
		GraphEdges:        len(projectGraph.Edges()),
		SourceFiles:       len(sourceFiles),
		DocFiles:          len(docFiles),
	})

	// Phase 4: render and write artifacts.
	outDir := filepath.Join(g.rootDir, g.cfg.Output.Dir)
	if err := g.writeArtifacts(outDir, project, projectGraph, report, totalSymbols, len(sourceFiles), len(docFiles), summarized); err != nil {
		return nil, err
	}

	result := &Result{
		SourceFiles: len(sourceFiles),
		DocFiles:    len(docFiles),
		Symbols:     totalSymbols,
		Summarized:  summarized,
		Score:       report,
		OutputDir:   outDir,
		Duration:    time.Since(started),
	}

	if g.cache != nil {
		if _, err := g.cache.RecordRun(store.Run{
			StartedAt:   started,
			Duration:    result.Duration,
			SourceFiles: result.SourceFiles,
			Symbols:     result.Symbols,
			Score:       report.Value,
		}); err != nil {
			g.logger.Printf("Warning: failed to record run: %v", err)
		}
	}

	return result, nil
}

// enrichFile builds the documented view of one file, pulling summaries from
// the cache when the content hash matches and from the provider otherwise.
// Provider failures leave summaries empty and the run continues.
func (g *Generator) enrichFile(ctx context.Context, relPath string, analysis *analyzer.AnalysisResult, content []byte) (*render.FileDoc, int) {
	doc := &render.FileDoc{Path: relPath}

	hash := contentHash(content)
	cached := map[string]string{}
	if g.cache != nil {
		if summaries, ok, err := g.cache.GetSummaries(relPath, hash); err != nil {
			g.logger.Printf("Warning: summary cache read failed for %s: %v", relPath, err)
		} else if ok {
			cached = summaries
		}
	}

	fresh := map[string]string{}
	summarized := 0

	summarize := func(key string, req enrich.Request) string {
		if text, ok := cached[key]; ok {
			summarized++
			return text
		}
		text, err := g.provider.Summarize(ctx, req)
		if err != nil {
			g.logger.Printf("Warning: failed to summarize %s in %s: %v", key, relPath, err)
			return ""
		}
		fresh[key] = text
		summarized++
		return text
	}

	doc.Summary = summarize("file", enrich.Request{
		FilePath: relPath,
		Kind:     "file",
	})

	for _, fn := range analysis.Functions {
		doc.Functions = append(doc.Functions, render.SymbolDoc{
			Name:         fn.Name,
			Signature:    fn.Signature,
			Dependencies: fn.Dependencies,
			Summary: summarize("function:"+fn.Name, enrich.Request{
				FilePath:     relPath,
				Kind:         "function",
				Name:         fn.Name,
				Signature:    fn.Signature,
				Dependencies: fn.Dependencies,
			}),
		})
	}

	for _, cls := range analysis.Classes {
		classDoc := render.ClassDoc{
			SymbolDoc: render.SymbolDoc{
				Name:         cls.Name,
				Signature:    cls.Signature,
				Dependencies: cls.Dependencies,
				Summary: summarize("class:"+cls.Name, enrich.Request{
					FilePath:     relPath,
					Kind:         "class",
					Name:         cls.Name,
					Signature:    cls.Signature,
					Dependencies: cls.Dependencies,
				}),
			},
		}
		for _, method := range cls.Methods {
			classDoc.Methods = append(classDoc.Methods, render.SymbolDoc{
				Name:         method.Name,
				Signature:    method.Signature,
				Dependencies: method.Dependencies,
				Summary: summarize("method:"+cls.Name+"."+method.Name, enrich.Request{
					FilePath:     relPath,
					Kind:         "method",
					Name:         cls.Name + "." + method.Name,
					Signature:    method.Signature,
					Dependencies: method.Dependencies,
				}),
			})
		}
		doc.Classes = append(doc.Classes, classDoc)
	}

	if g.cache != nil && len(fresh) > 0 {
		for key, text := range cached {
			fresh[key] = text
		}
		if err := g.cache.PutSummaries(relPath, hash, fresh); err != nil {
			g.logger.Printf("Warning: summary cache write failed for %s: %v", relPath, err)
		}
	}

	// The file-level summary is not a symbol; exclude it from the count used
	// for coverage.
	if doc.Summary != "" {
		summarized--
	}

	return doc, summarized
}

// writeArtifacts renders the enabled artifacts under outDir.
func (g *Generator) writeArtifacts(outDir string, project *render.ProjectDoc, pg *graph.ProjectGraph, report score.Report, totalSymbols, sourceFiles, docFiles, summarized int) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if g.cfg.Output.ContextCards {
		cardsDir := filepath.Join(outDir, "context")
		if err := os.MkdirAll(cardsDir, 0755); err != nil {
			return fmt.Errorf("failed to create context card directory: %w", err)
		}
		for i := range project.Files {
			file := &project.Files[i]
			name := CardFileName(file.Path)
			if err := os.WriteFile(filepath.Join(cardsDir, name), []byte(render.ContextCard(file)), 0644); err != nil {
				return fmt.Errorf("failed to write context card for %s: %w", file.Path, err)
			}
		}
	}

	write := func(enabled bool, name, content string) error {
		if !enabled {
			return nil
		}
		if err := os.WriteFile(filepath.Join(outDir, name), []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		return nil
	}

	input := score.Input{
		TotalSymbols:      totalSymbols,
		SummarizedSymbols: summarized,
		GraphNodes:        len(pg.Nodes()),
		GraphEdges:        len(pg.Edges()),
		SourceFiles:       sourceFiles,
		DocFiles:          docFiles,
	}

	if err := write(g.cfg.Output.Readme, "README.md", render.Readme(project)); err != nil {
		return err
	}
	if err := write(g.cfg.Output.PRD, "prd.md", render.PRD(project)); err != nil {
		return err
	}
	if err := write(g.cfg.Output.CodebaseMap, "codebase-map.md", render.CodebaseMap(pg)); err != nil {
		return err
	}
	return write(g.cfg.Output.ScoreReport, "comprehension-score.md", render.ScoreReport(report, input))
}

// CardFileName maps a workspace-relative source path to a flat card filename.
// src/auth/login.ts becomes src__auth__login.ts.md.
func CardFileName(relPath string) string {
	flat := strings.ReplaceAll(filepath.ToSlash(relPath), "/", "__")
	return flat + ".md"
}

// relPath converts an absolute path into the workspace-relative slash form
// used as the file key everywhere downstream.
func (g *Generator) relPath(path string) string {
	rel, err := filepath.Rel(g.rootDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// contentHash returns the hex sha256 of a file's content.
func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func sortedKeys(m map[string]*analyzer.AnalysisResult) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Deterministic artifact ordering.
	sort.Strings(keys)
	return keys
}
