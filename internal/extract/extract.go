// Package extract pulls object names and cross-references out of raw SQL
// text. It is regex-based on purpose: the planner only depends on the
// definition-header and reference-marker conventions, not on full SQL
// grammar, and keeping the matching behind this package means a real
// parser could replace it without touching the graph or the report.
package extract

import (
	"regexp"
	"strings"

	"github.com/thomascjohnson/analytical-datastore-change-management/internal/sqlsource"
)

// Keyword casing is matched exactly. Lowercase "create view" is not a
// definition header under this convention.
var (
	tableNamePattern = regexp.MustCompile(`CREATE\W+(?:OR\W+REPLACE\W+)?TABLE\W+([a-zA-Z0-9_.]+)`)
	viewNamePattern  = regexp.MustCompile(`CREATE\W+(?:OR\W+REPLACE\W+)?VIEW\W+([a-zA-Z0-9_.]+)`)
	referencePattern = regexp.MustCompile(`@@[a-z.0-9_^@]+@@`)
)

// DefinitionName returns the dotted name declared by the document's
// CREATE [OR REPLACE] TABLE|VIEW header, selected by kind. The second
// return is false when the text contains no such header; callers must
// handle the absent case explicitly.
func DefinitionName(sql string, kind sqlsource.Kind) (string, bool) {
	pattern := viewNamePattern
	if kind == sqlsource.KindTable {
		pattern = tableNamePattern
	}
	match := pattern.FindStringSubmatch(sql)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// References returns the contents of every @@name@@ marker in the text,
// delimiters stripped, in order of first appearance. Duplicates are kept;
// graph insertion downstream is idempotent per dependency pair.
func References(sql string) []string {
	matches := referencePattern.FindAllString(sql, -1)
	refs := make([]string, 0, len(matches))
	for _, match := range matches {
		refs = append(refs, strings.ReplaceAll(match, "@@", ""))
	}
	return refs
}
