package metadata

// Analysis is the result of one full-document pass.
type Analysis struct {
	Blocks []Block     `json:"blocks"`
	Issues []Issue     `json:"issues"`
	Folds  []FoldRange `json:"folds"`
}

// Engine caches the block list of the last pass so that per-keystroke
// updates only rescan the part of the document an edit could have
// affected. The cache is a pure function of document content and is
// safe to discard and recompute at any time; a newer update simply
// supersedes an older one.
//
// Engine is not safe for concurrent use; the host invokes it
// synchronously on its update cycle.
type Engine struct {
	doc    *Document
	blocks []Block
	issues []Issue
}

// NewEngine returns an engine with no document loaded.
func NewEngine() *Engine { return &Engine{} }

// Load runs a full pass over a fresh snapshot, replacing any cached
// state.
func (e *Engine) Load(doc *Document) Analysis {
	e.doc = doc
	blocks, structural := Match(doc)
	return e.finish(blocks, structural)
}

// Update re-analyzes after an edit confined to the changed line range
// (of the new snapshot). Blocks that end at least two lines before the
// change are reused verbatim: their line numbers, spans, and neighbour
// context are untouched by the edit, one line of slack covering the
// blankness a delimiter reads from the line above the change. The rest
// of the document is rescanned.
//
// A full Load of the same snapshot yields a structurally identical
// result; reuse is an optimisation, never a semantic.
func (e *Engine) Update(doc *Document, changed LineRange) Analysis {
	if e.doc == nil {
		return e.Load(doc)
	}

	keep := 0
	for keep < len(e.blocks) && e.blocks[keep].EndLine <= changed.From-2 {
		keep++
	}

	first := 1
	prefix := e.blocks[:keep:keep]
	if keep > 0 {
		first = e.blocks[keep-1].EndLine + 1
	}

	e.doc = doc
	blocks, structural := matchFrom(doc, first, prefix)
	return e.finish(blocks, structural)
}

// finish validates the new block list and stores the pass.
func (e *Engine) finish(blocks []Block, structural []Issue) Analysis {
	issues := append(structural, Validate(blocks)...)
	e.blocks = blocks
	e.issues = issues
	return Analysis{
		Blocks: blocks,
		Issues: issues,
		Folds:  FoldRanges(e.doc, blocks),
	}
}

// Decorations returns styling instructions for the currently visible
// line range, computed from the cached pass. Viewport scrolls therefore
// never trigger a rescan.
func (e *Engine) Decorations(visible LineRange) []Decoration {
	if e.doc == nil {
		return nil
	}
	return Decorate(e.doc, e.blocks, visible)
}

// Blocks returns the cached block list of the last pass.
func (e *Engine) Blocks() []Block { return e.blocks }

// Issues returns the cached issue list of the last pass.
func (e *Engine) Issues() []Issue { return e.issues }
