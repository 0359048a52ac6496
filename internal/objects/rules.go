package objects

import (
	"regexp"
	"strings"

	"github.com/vvka-141/pgcreation/internal/checksum"
	"github.com/vvka-141/pgcreation/pkg/creation"
)

// rule derives the name and dependencies of one kind of statement.
type rule func(sql string) (name string, deps []string)

// rules holds one extraction rule per kind.
var rules = map[creation.Kind]rule{
	creation.KindTable:     tableRule,
	creation.KindView:      viewRule,
	creation.KindFunction:  functionRule,
	creation.KindTrigger:   triggerRule,
	creation.KindIndex:     indexRule,
	creation.KindType:      typeRule,
	creation.KindProcedure: procedureRule,
	creation.KindAggregate: aggregateRule,
	creation.KindInsert:    insertRule,
	creation.KindSelect:    selectRule,
	creation.KindAlter:     alterRule,
}

var identity = checksum.NewMD5()

// contentName names statements that declare no name of their own.
func contentName(sql string) string {
	return identity.Calculate([]byte(sql))
}

// submatch returns the first capture group of re in s, or "".
func submatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// allSubmatches returns the first capture group of every match of re in s.
func allSubmatches(re *regexp.Regexp, s string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(s, -1) {
		out = append(out, m[1])
	}
	return out
}

// SELECT

var (
	selectFromRegex  = regexp.MustCompile(`(?i)\bfrom\s+([a-zA-Z0-9_]+(?:\s*,\s*[a-zA-Z0-9_]+)*)`)
	leadingWordRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+`)
)

// selectRule names a SELECT by the MD5 of its text and takes its
// dependencies from the comma list after the first FROM. Joins, aliases and
// subqueries are not followed; a qualified name yields its leading part.
func selectRule(sql string) (string, []string) {
	name := contentName(sql)
	deps := newDepSet()

	span := submatch(selectFromRegex, sql)
	for _, piece := range strings.Split(span, ",") {
		deps.add(leadingWordRegex.FindString(strings.TrimSpace(piece)))
	}
	return name, deps.list("")
}

// TABLE

var (
	tableNameRegex  = regexp.MustCompile(`(?is)\bcreate\s+(?:\w+\s+)*?table\s+(?:if\s+not\s+exists\s+)?(` + qualifiedName + `)`)
	referencesRegex = regexp.MustCompile(`(?i)\breferences\s+(` + qualifiedName + `)`)
	inheritsRegex   = regexp.MustCompile(`(?is)\binherits\s*\(([^)]*)\)`)
	likeRegex       = regexp.MustCompile(`(?i)[(,]\s*like\s+(` + qualifiedName + `)`)

	// CREATE TABLE ... AS query, with an optional column name list
	tableAsRegex = regexp.MustCompile(`(?is)\bcreate\s+(?:\w+\s+)*?table\s+(?:if\s+not\s+exists\s+)?` + qualifiedName + `\s*(?:\([^()]*\)\s*)?as\s+(.*)`)
)

func tableRule(sql string) (string, []string) {
	text := maskLiterals(sql)
	name := bareIdentifier(submatch(tableNameRegex, text))

	deps := newDepSet()
	for _, ref := range allSubmatches(referencesRegex, text) {
		deps.addQualified(ref)
	}
	for _, list := range allSubmatches(inheritsRegex, text) {
		for _, parent := range strings.Split(list, ",") {
			deps.addQualified(parent)
		}
	}
	for _, src := range allSubmatches(likeRegex, text) {
		deps.addQualified(src)
	}
	if query := submatch(tableAsRegex, text); query != "" {
		for _, ref := range relationRefs(query) {
			deps.addQualified(ref)
		}
	}
	return name, deps.list(name)
}

// VIEW

var viewNameRegex = regexp.MustCompile(`(?is)\bcreate\s+(?:\w+\s+)*?view\s+(?:if\s+not\s+exists\s+)?(` + qualifiedName + `)`)

func viewRule(sql string) (string, []string) {
	text := maskLiterals(sql)
	name := bareIdentifier(submatch(viewNameRegex, text))

	deps := newDepSet()
	for _, ref := range relationRefs(text) {
		deps.addQualified(ref)
	}
	return name, deps.list(name)
}

// FUNCTION and PROCEDURE

var (
	functionNameRegex  = regexp.MustCompile(`(?is)\bfunction\s+(` + qualifiedName + `)\s*\(`)
	procedureNameRegex = regexp.MustCompile(`(?is)\bprocedure\s+(` + qualifiedName + `)\s*\(`)
	returnsRegex       = regexp.MustCompile(`(?is)\breturns\s+(?:setof\s+)?(` + qualifiedName + `)`)
	rowTypeRegex       = regexp.MustCompile(`(?i)(` + qualifiedName + `)%rowtype\b`)
	columnTypeRegex    = regexp.MustCompile(`(?i)(` + qualifiedName + `)%type\b`)
)

// routineDeps collects relations a routine body touches and the tables
// anchoring %ROWTYPE and %TYPE declarations.
func routineDeps(deps *depSet, text string) {
	for _, ref := range relationRefs(text) {
		deps.addQualified(ref)
	}
	for _, ref := range allSubmatches(rowTypeRegex, text) {
		deps.addQualified(ref)
	}
	for _, ref := range allSubmatches(columnTypeRegex, text) {
		// table.column%TYPE depends on the table
		parts := identParts(ref)
		if len(parts) >= 2 {
			deps.add(parts[len(parts)-2])
		}
	}
}

func functionRule(sql string) (string, []string) {
	text := maskLiterals(sql)
	name := bareIdentifier(submatch(functionNameRegex, text))

	deps := newDepSet()
	if ret := bareIdentifier(submatch(returnsRegex, text)); !isBuiltinType(ret) {
		deps.add(ret)
	}
	routineDeps(deps, text)
	return name, deps.list(name)
}

func procedureRule(sql string) (string, []string) {
	text := maskLiterals(sql)
	name := bareIdentifier(submatch(procedureNameRegex, text))

	deps := newDepSet()
	routineDeps(deps, text)
	return name, deps.list(name)
}

// TRIGGER

var (
	triggerNameRegex  = regexp.MustCompile(`(?is)\btrigger\s+(` + qualifiedName + `)`)
	triggerTableRegex = regexp.MustCompile(`(?is)\bon\s+(` + qualifiedName + `)`)
	triggerExecRegex  = regexp.MustCompile(`(?is)\bexecute\s+(?:procedure|function)\s+(` + qualifiedName + `)`)
)

func triggerRule(sql string) (string, []string) {
	text := maskLiterals(sql)
	loc := triggerNameRegex.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", nil
	}
	name := bareIdentifier(text[loc[2]:loc[3]])
	rest := text[loc[1]:]

	deps := newDepSet()
	deps.addQualified(submatch(triggerTableRegex, rest))
	deps.addQualified(submatch(triggerExecRegex, rest))
	for _, ref := range relationRefs(rest) {
		deps.addQualified(ref)
	}
	return name, deps.list(name)
}

// INDEX

var indexRegex = regexp.MustCompile(`(?is)\bindex\s+(?:concurrently\s+)?(?:if\s+not\s+exists\s+)?(?:(` +
	qualifiedName + `)\s+)?on\s+(?:only\s+)?(` + qualifiedName + `)`)

// indexRule falls back to a content name for "CREATE INDEX ON t (...)".
func indexRule(sql string) (string, []string) {
	text := maskLiterals(sql)
	m := indexRegex.FindStringSubmatch(text)
	if m == nil {
		return contentName(sql), nil
	}

	name := bareIdentifier(m[1])
	if name == "" {
		name = contentName(sql)
	}

	deps := newDepSet()
	deps.addQualified(m[2])
	return name, deps.list(name)
}

// TYPE

var (
	typeNameRegex      = regexp.MustCompile(`(?is)\btype\s+(` + qualifiedName + `)`)
	typeCompositeRegex = regexp.MustCompile(`(?is)\bas\s*\((.*)\)`)
	typeSubtypeRegex   = regexp.MustCompile(`(?is)\bsubtype\s*=\s*(` + qualifiedName + `)`)
	typeAttributeRegex = regexp.MustCompile(`^\s*` + identPart + `\s+(` + qualifiedName + `)`)
)

// typeRule takes dependencies from composite attribute types and from a
// range SUBTYPE. Enum types have none.
func typeRule(sql string) (string, []string) {
	text := maskLiterals(sql)
	name := bareIdentifier(submatch(typeNameRegex, text))

	deps := newDepSet()
	if attrs := submatch(typeCompositeRegex, text); attrs != "" {
		for _, attr := range splitTopLevel(attrs) {
			if t := bareIdentifier(submatch(typeAttributeRegex, attr)); !isBuiltinType(t) {
				deps.add(t)
			}
		}
	}
	if sub := bareIdentifier(submatch(typeSubtypeRegex, text)); !isBuiltinType(sub) {
		deps.add(sub)
	}
	return name, deps.list(name)
}

// splitTopLevel splits s on commas that are not inside parentheses.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// AGGREGATE

var (
	aggregateNameRegex  = regexp.MustCompile(`(?is)\baggregate\s+(` + qualifiedName + `)\s*\(`)
	aggregateParamRegex = regexp.MustCompile(`(?i)\b(?:sfunc|finalfunc|combinefunc|stype)\s*=\s*(` + qualifiedName + `)`)
)

func aggregateRule(sql string) (string, []string) {
	text := maskLiterals(sql)
	name := bareIdentifier(submatch(aggregateNameRegex, text))

	deps := newDepSet()
	for _, ref := range allSubmatches(aggregateParamRegex, text) {
		if b := bareIdentifier(ref); !isBuiltinType(b) {
			deps.add(b)
		}
	}
	return name, deps.list(name)
}

// INSERT

func insertRule(sql string) (string, []string) {
	deps := newDepSet()
	for _, ref := range relationRefs(maskLiterals(sql)) {
		deps.addQualified(ref)
	}
	return contentName(sql), deps.list("")
}

// ALTER TABLE

var alterTableRegex = regexp.MustCompile(`(?is)\balter\s+table\s+(?:if\s+exists\s+)?(?:only\s+)?(` + qualifiedName + `)`)

func alterRule(sql string) (string, []string) {
	text := maskLiterals(sql)

	deps := newDepSet()
	deps.addQualified(submatch(alterTableRegex, text))
	for _, ref := range allSubmatches(referencesRegex, text) {
		deps.addQualified(ref)
	}
	return contentName(sql), deps.list("")
}
