// Package compress implements the CSS compression and restructuring
// engine: value minification, comment filtering and the cascade-safe rule
// merging pass. It mutates caller-owned trees from package css in place
// and never fails on well-formed input; anything it cannot prove safe to
// rewrite is left untouched.
package compress

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// CommentPolicy selects which exclamation comments survive compression.
// The zero value keeps all of them.
type CommentPolicy int

const (
	CommentsExclamation      CommentPolicy = iota // keep every /*! */ comment
	CommentsNone                                  // drop all comments
	CommentsFirstExclamation                      // keep only the first one
)

func (p CommentPolicy) String() string {
	switch p {
	case CommentsNone:
		return "none"
	case CommentsFirstExclamation:
		return "first-exclamation"
	default:
		return "exclamation"
	}
}

// ParseCommentPolicy maps configuration text to a policy. Unrecognized
// values mean "none", matching the historical contract that any string
// other than the known keep forms disables comment retention.
func ParseCommentPolicy(v string) CommentPolicy {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "true", "exclamation":
		return CommentsExclamation
	case "first-exclamation":
		return CommentsFirstExclamation
	default:
		return CommentsNone
	}
}

// UnmarshalYAML accepts both the boolean and the string forms of the
// comments option.
func (p *CommentPolicy) UnmarshalYAML(value *yaml.Node) error {
	var b bool
	if err := value.Decode(&b); err == nil {
		if b {
			*p = CommentsExclamation
		} else {
			*p = CommentsNone
		}
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("comments policy must be a boolean or a string: %w", err)
	}
	*p = ParseCommentPolicy(s)
	return nil
}

func (p CommentPolicy) MarshalYAML() (any, error) {
	return p.String(), nil
}

// Debug verbosity levels. Level 2 truncates echoed source, level 3 echoes
// it in full and adds a tree dump.
const (
	DebugOff    = 0
	DebugStages = 1
	DebugShort  = 2
	DebugFull   = 3
)

// Options configures one compression invocation. The value is treated as
// read-only: the engine resolves it into an internal settings struct at
// the start of a call and never writes back.
type Options struct {
	// Restructure enables the rule merging pass. Nil means enabled.
	Restructure *bool
	// Restructuring is the historical alias for Restructure; when both
	// are set, Restructure wins.
	Restructuring *bool

	Comments CommentPolicy

	// Debug selects diagnostic verbosity (0-3). Diagnostics never change
	// the transformation result.
	Debug int

	// Logger receives diagnostics; nil means no output.
	Logger *zap.Logger

	// Usage optionally restricts output to selectors reachable from the
	// given markup vocabulary.
	Usage *Usage
}

// Bool is a convenience for building option literals.
func Bool(v bool) *bool { return &v }

// settings is the resolved, immutable per-invocation configuration.
type settings struct {
	restructure bool
	comments    CommentPolicy
	debug       int
	usage       *Usage
}

func (o Options) resolve() settings {
	restructure := true
	switch {
	case o.Restructure != nil:
		restructure = *o.Restructure
	case o.Restructuring != nil:
		restructure = *o.Restructuring
	}
	debug := o.Debug
	if debug < DebugOff {
		debug = DebugOff
	}
	if debug > DebugFull {
		debug = DebugFull
	}
	return settings{
		restructure: restructure,
		comments:    o.Comments,
		debug:       debug,
		usage:       o.Usage,
	}
}
