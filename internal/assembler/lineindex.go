package assembler

import (
	"sort"

	"github.com/gosmithy/gosmithy/internal/types"
	"github.com/gosmithy/gosmithy/model"
)

// lineIndex maps byte offsets of one source file to 1-based line and
// column numbers.
type lineIndex struct {
	path string
	// starts holds the byte offset of the first byte of each line.
	starts []types.ByteOffset
}

func newLineIndex(path string, source []byte) *lineIndex {
	starts := []types.ByteOffset{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, types.ByteOffset(i+1))
		}
	}
	return &lineIndex{path: path, starts: starts}
}

// locate converts a span's start offset to a source location. Synthetic
// spans map to line 0.
func (ix *lineIndex) locate(span types.Span) model.SourceLocation {
	if span.IsSynthetic() {
		return model.SourceLocation{File: ix.path}
	}
	line := sort.Search(len(ix.starts), func(i int) bool {
		return ix.starts[i] > span.Start
	})
	col := int(span.Start-ix.starts[line-1]) + 1
	return model.SourceLocation{File: ix.path, Line: line, Column: col}
}
