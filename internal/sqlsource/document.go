// Package sqlsource loads raw SQL definition files for the planner.
package sqlsource

import (
	"fmt"
	"os"
)

// Kind says whether a document came from the table list or the view list.
type Kind string

const (
	KindTable Kind = "table"
	KindView  Kind = "view"
)

// Document is the raw text of one table or view definition file.
type Document struct {
	// Path is the file the SQL was read from.
	Path string
	// Kind is the declared kind, determined by which file list the path
	// came from. The planner may still reclassify the defined object.
	Kind Kind
	// SQL is the untransformed file content.
	SQL string
}

// Load reads each path exactly once, in order. The first unreadable file
// aborts the load; there are no partial results.
func Load(paths []string, kind Kind) ([]Document, error) {
	docs := make([]Document, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s definition %s: %w", kind, path, err)
		}
		docs = append(docs, Document{Path: path, Kind: kind, SQL: string(content)})
	}
	return docs, nil
}
