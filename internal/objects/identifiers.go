package objects

import (
	"regexp"
	"strings"
)

// identPart is one unqualified identifier, quoted or not.
const identPart = `(?:"[^"]+"|[A-Za-z_][A-Za-z0-9_$]*)`

// qualifiedName is a dotted name such as schema.table or "Schema"."Table".
const qualifiedName = identPart + `(?:\s*\.\s*` + identPart + `)*`

var identPartRegex = regexp.MustCompile(identPart)

// literalRegex matches single-quoted literals, including '' escapes.
var literalRegex = regexp.MustCompile(`'(?:[^']|'')*'`)

// bareIdentifier reduces a possibly qualified, possibly quoted name to its
// last component without quotes. Unquoted names keep their original case.
func bareIdentifier(name string) string {
	parts := identParts(name)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// identParts splits a qualified name into unquoted components.
func identParts(name string) []string {
	raw := identPartRegex.FindAllString(name, -1)
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		parts = append(parts, strings.Trim(p, `"`))
	}
	return parts
}

// maskLiterals empties every single-quoted literal so that text inside
// strings is not mistaken for table references.
func maskLiterals(sql string) string {
	return literalRegex.ReplaceAllString(sql, "''")
}

// depSet collects dependency names without duplicates, in first-seen order.
type depSet struct {
	seen  map[string]struct{}
	names []string
}

func newDepSet() *depSet {
	return &depSet{seen: make(map[string]struct{})}
}

// add records name unless it is empty or already present.
func (d *depSet) add(name string) {
	if name == "" {
		return
	}
	if _, ok := d.seen[name]; ok {
		return
	}
	d.seen[name] = struct{}{}
	d.names = append(d.names, name)
}

// addQualified records the bare form of a qualified name.
func (d *depSet) addQualified(name string) {
	d.add(bareIdentifier(name))
}

// list returns the collected names, excluding self.
func (d *depSet) list(self string) []string {
	out := make([]string, 0, len(d.names))
	for _, n := range d.names {
		if n != self {
			out = append(out, n)
		}
	}
	return out
}

// reservedWords are keywords that can follow FROM, JOIN or UPDATE without
// naming a relation.
var reservedWords = map[string]bool{
	"select": true, "set": true, "where": true, "only": true, "lateral": true,
	"on": true, "using": true, "values": true, "default": true, "unnest": true,
	"as": true, "join": true, "natural": true, "inner": true, "left": true,
	"right": true, "full": true, "cross": true, "outer": true, "group": true,
	"order": true, "limit": true, "having": true, "union": true, "returning": true,
	"new": true, "old": true, "of": true, "into": true, "distinct": true, "all": true,
	"current_date": true, "current_timestamp": true,
	// row-locking clauses: FOR UPDATE [NOWAIT | SKIP LOCKED]
	"nowait": true, "skip": true, "locked": true,
}

// builtinTypes are PostgreSQL types that never resolve to a user object.
var builtinTypes = map[string]bool{
	"void": true, "trigger": true, "event_trigger": true, "record": true,
	"table": true, "setof": true, "int": true, "int2": true, "int4": true,
	"int8": true, "integer": true, "smallint": true, "bigint": true,
	"serial": true, "bigserial": true, "numeric": true, "decimal": true,
	"real": true, "float": true, "float4": true, "float8": true, "double": true,
	"money": true, "text": true, "varchar": true, "char": true, "character": true,
	"bool": true, "boolean": true, "bytea": true, "date": true, "time": true,
	"timestamp": true, "timestamptz": true, "interval": true, "json": true,
	"jsonb": true, "uuid": true, "inet": true, "cidr": true, "xml": true,
	"oid": true, "anyelement": true, "anyarray": true, "internal": true,
}

func isBuiltinType(name string) bool {
	return builtinTypes[strings.ToLower(name)]
}

func isReserved(name string) bool {
	return reservedWords[strings.ToLower(name)]
}

// relationKeywordRegex finds the start of a relation reference.
var relationKeywordRegex = regexp.MustCompile(`(?i)\b(from|join|insert\s+into|update)\s+`)

var (
	leadingNameRegex  = regexp.MustCompile(`^(?:(?i:only)\s+)?(` + qualifiedName + `)`)
	leadingAliasRegex = regexp.MustCompile(`^\s+(?:(?i:as)\s+)?(` + identPart + `)`)
	listCommaRegex    = regexp.MustCompile(`^\s*,\s*`)
)

// relationRefs returns the relations named after FROM (including comma
// lists), JOIN, INSERT INTO and UPDATE anywhere in sql. Subqueries and
// function calls are skipped; their inner FROM clauses are still visited.
func relationRefs(sql string) []string {
	var refs []string

	for _, loc := range relationKeywordRegex.FindAllStringSubmatchIndex(sql, -1) {
		keyword := strings.ToLower(sql[loc[2]:loc[3]])
		rest := sql[loc[1]:]

		for {
			m := leadingNameRegex.FindStringSubmatchIndex(rest)
			if m == nil {
				break
			}
			name := rest[m[2]:m[3]]
			rest = rest[m[1]:]

			// a column list follows INSERT INTO; elsewhere "(" means a call
			isCall := !strings.HasPrefix(keyword, "insert") &&
				strings.HasPrefix(strings.TrimLeft(rest, " \t\r\n"), "(")
			if !isCall && !isReserved(bareIdentifier(name)) {
				refs = append(refs, name)
			}

			if keyword != "from" {
				break
			}
			if a := leadingAliasRegex.FindStringSubmatchIndex(rest); a != nil && !isReserved(rest[a[2]:a[3]]) {
				rest = rest[a[1]:]
			}
			c := listCommaRegex.FindStringIndex(rest)
			if c == nil {
				break
			}
			rest = rest[c[1]:]
		}
	}
	return refs
}
