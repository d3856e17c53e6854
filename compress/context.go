package compress

import (
	"unicode/utf8"

	"go.uber.org/zap"

	"cssc/css"
)

// debugTruncateAt caps echoed source length at debug level 2; level 3
// echoes in full.
const debugTruncateAt = 256

// counters collects per-invocation instrumentation. Purely observational.
type counters struct {
	valuesCompressed    int
	declarationsRemoved int
	commentsRemoved     int
	rulesRemoved        int
	rulesMerged         int
	atRulesMerged       int
	passes              int
	passCapHits         int
}

// context is the per-invocation state: resolved options, logger and
// counters. It is created at the start of a call and discarded at the
// end; nothing survives between invocations.
type context struct {
	set settings
	log *zap.Logger
	n   counters
}

func newContext(o Options) *context {
	log := o.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &context{set: o.resolve(), log: log.Named("compress")}
}

// stage emits the configured level of diagnostics after a pipeline stage.
// It observes the tree and never modifies it.
func (c *context) stage(name string, sheet *css.StyleSheet) {
	switch c.set.debug {
	case DebugOff:
		return
	case DebugStages:
		c.log.Debug("Stage done", zap.String("stage", name))
	case DebugShort:
		c.log.Debug("Stage done", zap.String("stage", name), zap.String("source", truncate(sheet.String())))
	case DebugFull:
		c.log.Debug("Stage done", zap.String("stage", name),
			zap.String("source", sheet.String()), zap.String("tree", sheet.Dump()))
	}
}

// truncate cuts src at the debug cap, backing up so a multi-byte rune
// is never split.
func truncate(src string) string {
	if len(src) <= debugTruncateAt {
		return src
	}
	cut := debugTruncateAt
	for cut > 0 && !utf8.RuneStart(src[cut]) {
		cut--
	}
	return src[:cut] + "..."
}

// stageBlock mirrors stage for the bare declaration-list entry point.
func (c *context) stageBlock(name string, block *css.Block) {
	switch c.set.debug {
	case DebugOff:
		return
	case DebugStages:
		c.log.Debug("Stage done", zap.String("stage", name))
	case DebugShort:
		c.log.Debug("Stage done", zap.String("stage", name), zap.String("source", truncate(block.String())))
	case DebugFull:
		c.log.Debug("Stage done", zap.String("stage", name), zap.String("source", block.String()))
	}
}

func (c *context) summary() {
	if c.set.debug == DebugOff {
		return
	}
	c.log.Debug("Compression done",
		zap.Int("values compressed", c.n.valuesCompressed),
		zap.Int("declarations removed", c.n.declarationsRemoved),
		zap.Int("comments removed", c.n.commentsRemoved),
		zap.Int("rules removed", c.n.rulesRemoved),
		zap.Int("rules merged", c.n.rulesMerged),
		zap.Int("at-rules merged", c.n.atRulesMerged),
		zap.Int("restructure passes", c.n.passes),
		zap.Int("pass cap hits", c.n.passCapHits))
}
