package objects

import (
	"regexp"
	"strings"

	"github.com/vvka-141/pgcreation/pkg/creation"
)

// createRegex selects the kind of a CREATE statement. The first match in
// the text wins, so a function whose body mentions "create table" is still
// a function.
var createRegex = regexp.MustCompile(
	`(?i)create(\s+or\s+replace|\s+unique)?\s+(table|view|function|trigger|index|type|procedure|aggregate)`)

var (
	insertRegex = regexp.MustCompile(`(?i)insert\s+into`)
	selectRegex = regexp.MustCompile(`(?i)select `)
	alterRegex  = regexp.MustCompile(`(?i)alter\s+table`)
)

// Classify determines the kind of statement and builds its object.
//
// Patterns are tried in a fixed order: CREATE [OR REPLACE|UNIQUE] <kind>,
// then INSERT INTO, then "SELECT " (with its trailing space), then
// ALTER TABLE. A statement matching none of them yields a
// *creation.UnclassifiableStatementError.
func Classify(statement string) (*creation.Object, error) {
	kind, ok := classifyKind(statement)
	if !ok {
		return nil, &creation.UnclassifiableStatementError{Statement: statement}
	}
	return Build(kind, statement), nil
}

// Build applies the extraction rule of kind to statement.
// Panics if kind is not a defined Kind.
func Build(kind creation.Kind, statement string) *creation.Object {
	extract, ok := rules[kind]
	if !ok {
		panic("no extraction rule for kind " + kind.String())
	}
	name, deps := extract(statement)
	return creation.NewObject(kind, statement, name, deps)
}

func classifyKind(statement string) (creation.Kind, bool) {
	if m := createRegex.FindStringSubmatch(statement); m != nil {
		return creation.ParseKind(strings.ToLower(m[2]))
	}

	switch {
	case insertRegex.MatchString(statement):
		return creation.KindInsert, true
	case selectRegex.MatchString(statement):
		return creation.KindSelect, true
	case alterRegex.MatchString(statement):
		return creation.KindAlter, true
	}
	return 0, false
}
