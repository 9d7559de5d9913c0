package table

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// FeatureTable holds the per-point features produced by a batch run. Each
// row corresponds to one reference point of the input cloud and maps a
// homology dimension to its feature value.
//
// Rows are preallocated so that concurrent workers can fill distinct slots
// without synchronization. Failure bookkeeping (FailedRows) must only be
// read after all workers have finished.
type FeatureTable struct {
	dims []int
	rows []map[int]float32
	errs []string
}

// New creates a FeatureTable with numPoints empty rows for the given
// homology dimensions.
func New(numPoints int, dims []int) *FeatureTable {
	return &FeatureTable{
		dims: append([]int(nil), dims...),
		rows: make([]map[int]float32, numPoints),
		errs: make([]string, numPoints),
	}
}

// Dims returns the homology dimensions the table was built for.
func (t *FeatureTable) Dims() []int {
	return append([]int(nil), t.dims...)
}

// Len returns the number of rows.
func (t *FeatureTable) Len() int {
	return len(t.rows)
}

// SetRow records the features for reference point i.
func (t *FeatureTable) SetRow(i int, features map[int]float32) {
	t.rows[i] = features
}

// SetRowError marks reference point i as failed.
func (t *FeatureTable) SetRowError(i int, err error) {
	t.errs[i] = err.Error()
}

// Row returns the features for reference point i. ok is false if the row
// failed or was never computed.
func (t *FeatureTable) Row(i int) (map[int]float32, bool) {
	if i < 0 || i >= len(t.rows) || t.rows[i] == nil {
		return nil, false
	}
	return t.rows[i], true
}

// RowError returns the failure reason for reference point i, or nil.
func (t *FeatureTable) RowError(i int) error {
	if i < 0 || i >= len(t.errs) || t.errs[i] == "" {
		return nil
	}
	return fmt.Errorf("point %d: %s", i, t.errs[i])
}

// FailedRows returns the set of failed reference point indexes.
func (t *FeatureTable) FailedRows() *roaring.Bitmap {
	failed := roaring.New()
	for i, e := range t.errs {
		if e != "" {
			failed.Add(uint32(i))
		}
	}
	return failed
}

// NumFailed returns the number of failed rows.
func (t *FeatureTable) NumFailed() int {
	n := 0
	for _, e := range t.errs {
		if e != "" {
			n++
		}
	}
	return n
}
