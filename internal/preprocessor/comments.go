package preprocessor

import (
	"regexp"
)

// CommentStripper removes SQL comments from a whole file before tokenizing.
type CommentStripper interface {
	Strip(sql string) string
}

// commentStripper is a coarse, single-pass pattern substitution.
// It has no notion of string literals: a "--" or "/* */" inside quotes is
// removed like any other comment. The tokenizer does the context-aware work.
type commentStripper struct{}

// NewCommentStripper creates a new CommentStripper instance.
func NewCommentStripper() CommentStripper {
	return &commentStripper{}
}

// commentPattern matches either comment form. Alternatives are tried at each
// position, so whichever opener appears first wins: "/* -- x */" is one block
// comment and "-- see /*" ends at the newline.
var commentPattern = regexp.MustCompile(`--[^\n]*|(?s:/\*.*?\*/)`)

// Strip removes every line comment ("--" to end of line) and every block
// comment ("/*" to the next "*/", spanning lines).
func (c *commentStripper) Strip(sql string) string {
	if len(sql) == 0 {
		return ""
	}
	return commentPattern.ReplaceAllString(sql, "")
}
