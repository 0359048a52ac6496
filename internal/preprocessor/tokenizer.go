package preprocessor

import (
	"regexp"
	"strings"

	"github.com/vvka-141/pgcreation/pkg/creation"
)

// Tokenizer splits SQL text into top-level statements.
type Tokenizer interface {
	Tokenize(sql string) ([]string, error)
}

// tokenizer implements Tokenizer with a line-oriented state machine.
type tokenizer struct{}

// NewTokenizer creates a new Tokenizer instance.
func NewTokenizer() Tokenizer {
	return &tokenizer{}
}

// lexMode is the exclusive lexical context of the tokenizer.
// Dollar bodies and compound blocks are tracked separately because strings
// and comments occur inside them.
type lexMode int

const (
	modeNormal lexMode = iota
	modeLineComment
	modeBlockComment
	modeString
)

// markerPattern splits a line into marker tokens and the text between them.
// Keywords only match as whole words so identifiers like begin_date are inert.
var markerPattern = regexp.MustCompile(`(?i)/\*|\*/|--|\$\$|\bEND;|\bBEGIN\b|;|'|"`)

// tokenState is the full tokenizer state carried from line to line.
type tokenState struct {
	mode      lexMode
	delimiter string // closing quote while mode == modeString
	dollar    bool   // inside a $$ body
	depth     int    // open BEGIN blocks outside dollar bodies

	buf        strings.Builder
	statements []string
}

// Tokenize returns the trimmed, non-empty statements of sql in order.
//
// A ";" ends a statement unless it is inside a string, a comment, a $$ body
// or a BEGIN block. A BEGIN block ends with the "END;" that closes the
// outermost BEGIN. Text left at end of input is returned as a final
// statement even without a terminator.
//
// A "*/" in normal context returns a *creation.MalformedCommentError and no
// statements.
func (t *tokenizer) Tokenize(sql string) ([]string, error) {
	st := &tokenState{}

	for i, line := range strings.Split(sql, "\n") {
		for _, tok := range splitLine(line) {
			if err := st.consume(tok); err != nil {
				return nil, &creation.MalformedCommentError{
					LineNumber: i + 1,
					Line:       line,
				}
			}
		}
		st.endLine()
	}

	st.emit()
	return st.statements, nil
}

// splitLine cuts line at every marker, keeping markers as their own tokens.
func splitLine(line string) []string {
	locs := markerPattern.FindAllStringIndex(line, -1)
	if len(locs) == 0 {
		if line == "" {
			return nil
		}
		return []string{line}
	}

	tokens := make([]string, 0, len(locs)*2+1)
	pos := 0
	for _, loc := range locs {
		if loc[0] > pos {
			tokens = append(tokens, line[pos:loc[0]])
		}
		tokens = append(tokens, line[loc[0]:loc[1]])
		pos = loc[1]
	}
	if pos < len(line) {
		tokens = append(tokens, line[pos:])
	}
	return tokens
}

// consume applies one token. It only fails on an unopened "*/".
func (st *tokenState) consume(tok string) error {
	switch st.mode {
	case modeString:
		st.buf.WriteString(tok)
		if tok == st.delimiter {
			st.mode = modeNormal
			st.delimiter = ""
		}
		return nil

	case modeLineComment:
		if tok == "*/" {
			return creation.ErrMalformedComment
		}
		return nil

	case modeBlockComment:
		if tok == "*/" {
			st.mode = modeNormal
		}
		return nil
	}

	switch strings.ToUpper(tok) {
	case "/*":
		st.mode = modeBlockComment

	case "*/":
		return creation.ErrMalformedComment

	case "--":
		st.mode = modeLineComment

	case "'", `"`:
		st.mode = modeString
		st.delimiter = tok
		st.buf.WriteString(tok)

	case "$$":
		st.dollar = !st.dollar
		st.buf.WriteString(tok)

	case "BEGIN":
		st.buf.WriteString(tok)
		if !st.dollar {
			st.depth++
		}

	case "END;":
		st.buf.WriteString(tok)
		if st.dollar {
			return nil
		}
		switch {
		case st.depth > 1:
			st.depth--
		case st.depth == 1:
			st.depth = 0
			st.emit()
		default:
			st.emit()
		}

	case ";":
		st.buf.WriteString(tok)
		if !st.dollar && st.depth == 0 {
			st.emit()
		}

	default:
		st.buf.WriteString(tok)
	}
	return nil
}

// endLine closes a line comment and keeps the newline unless the line ended
// inside a block comment.
func (st *tokenState) endLine() {
	if st.mode == modeLineComment {
		st.mode = modeNormal
	}
	if st.mode != modeBlockComment {
		st.buf.WriteByte('\n')
	}
}

// emit pushes the buffered statement, dropping it if it is only whitespace.
func (st *tokenState) emit() {
	stmt := strings.TrimSpace(st.buf.String())
	st.buf.Reset()
	if stmt != "" {
		st.statements = append(st.statements, stmt)
	}
}
