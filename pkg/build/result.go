package build

import "fmt"

// Warning attributes a per-document soft failure to the document title
// that produced it.
type Warning struct {
	Document string
	Err      error
}

func (w Warning) Error() string {
	return fmt.Sprintf("%s: %s", w.Document, w.Err)
}

func (w Warning) Unwrap() error { return w.Err }

// Statistics summarizes one completed build.
type Statistics struct {
	DocumentCount    int
	SkippedDocuments int
	TotalWordCount   int
	IndexSizeBytes   int
}
