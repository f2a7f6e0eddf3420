// Package query wires the loaded corpora, graph, search engine, and
// learn store into the operations the tool layer exposes.
package query

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"flexkb/internal/config"
	"flexkb/internal/graph"
	"flexkb/internal/index"
	"flexkb/internal/learn"
	"flexkb/internal/search"
)

// state is one immutable snapshot of everything loaded from disk.
// Reload builds a fresh state and swaps it in atomically.
type state struct {
	set      *index.Set
	graph    *graph.Graph
	resolver *graph.Resolver
	search   *search.Engine
	navDoc   *graph.Document
	loadedAt time.Time
}

// Engine owns the loaded knowledge base and answers queries against it.
// Reads are lock-free; Reload swaps the whole snapshot.
type Engine struct {
	cfg    *config.Config
	logger *slog.Logger
	learn  *learn.Store
	state  atomic.Pointer[state]
}

// New builds an engine and performs the initial load.
func New(cfg *config.Config, store *learn.Store, logger *slog.Logger) (*Engine, error) {
	e := &Engine{cfg: cfg, logger: logger, learn: store}
	if err := e.Reload(); err != nil {
		return nil, err
	}
	return e, nil
}

// Reload rebuilds every load-once structure from disk and swaps it in.
// Optional inputs (navigation document, vector index, synonym overlay)
// degrade with a warning instead of failing the reload.
func (e *Engine) Reload() error {
	set, err := index.Load(index.Paths{
		Flexlibs2:      e.cfg.CorpusPath(e.cfg.Corpora.Flexlibs2Path),
		FlexlibsStable: e.cfg.CorpusPath(e.cfg.Corpora.FlexlibsStablePath),
		Liblcm:         e.cfg.CorpusPath(e.cfg.Corpora.LiblcmPath),
	}, e.logger)
	if err != nil {
		return err
	}

	var navDoc *graph.Document
	var cache graph.PathCache
	navDoc, err = graph.LoadDocument(e.cfg.CorpusPath(e.cfg.Corpora.NavigationPath), e.logger)
	if err != nil {
		e.logger.Warn("Navigation document unavailable, path cache disabled", "error", err.Error())
		navDoc = nil
	} else {
		cache = navDoc.CommonPaths
	}

	g := graph.Build(entitiesOf(set), e.logger)
	resolver := graph.NewResolver(g, cache, e.cfg.Graph.MaxDepth)

	synonyms := search.NewSynonyms()
	if path := e.cfg.CorpusPath(e.cfg.Search.SynonymsPath); path != "" {
		if err := synonyms.LoadOverlay(path); err != nil {
			e.logger.Warn("Synonym overlay unavailable", "error", err.Error())
		}
	}

	boosts := make(map[index.Source]float64, len(e.cfg.Search.SourceBoosts))
	for src, boost := range e.cfg.Search.SourceBoosts {
		boosts[index.Source(src)] = float64(boost)
	}
	eng := search.NewEngine(set, synonyms, boosts, e.logger)

	if e.cfg.Search.VectorEnabled {
		idx, err := search.LoadVectorIndex(e.cfg.CorpusPath(e.cfg.Search.EmbeddingsPath), e.logger)
		if err != nil {
			e.logger.Warn("Vector index unavailable, lexical search only", "error", err.Error())
		} else if e.cfg.Search.EmbeddingURL != "" {
			eng.WithVectors(idx, search.NewEmbedClient(e.cfg.Search.EmbeddingURL))
		}
	}

	e.state.Store(&state{
		set:      set,
		graph:    g,
		resolver: resolver,
		search:   eng,
		navDoc:   navDoc,
		loadedAt: time.Now(),
	})
	return nil
}

func entitiesOf(set *index.Set) map[string]*index.Entity {
	// The liblcm corpus carries the relationship properties the graph
	// is built from.
	if set.Liblcm == nil {
		return nil
	}
	return set.Liblcm.Entities
}

func (e *Engine) snapshot() *state {
	return e.state.Load()
}

// Search runs a ranked query.
func (e *Engine) Search(ctx context.Context, req search.Request) search.Response {
	return e.snapshot().search.Search(ctx, req)
}

// FindPath resolves a navigation path between two entity types.
func (e *Engine) FindPath(from, to string) *graph.PathResult {
	return e.snapshot().resolver.FindPath(from, to)
}

// Recommendations surfaces the learn store's derived lists.
func (e *Engine) Recommendations() learn.Recommendations {
	return e.learn.Recommendations()
}

// LearnStore exposes the store for the runner to record outcomes.
func (e *Engine) LearnStore() *learn.Store {
	return e.learn
}
