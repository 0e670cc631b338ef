package engine

// ============================================================================
// RECORD VIEW — Zero-Copy Access to Raw Cells
// ============================================================================
// The cleaning pipeline never owns the raw table. It reads through this
// interface, so filtered subsets and re-exposed cleaned tables share one
// code path.
//
// Implementations:
//   TableView      — wraps *RawTable (decoded API response)
//   SubView        — filtered subset (indices into parent, zero-copy)
//   DomainView[T]  — reads typed structs via accessor functions (zero-copy)
// ============================================================================

// RecordView provides indexed access to string cells by column name.
type RecordView interface {
	Len() int
	Value(index int, column string) string
	Columns() []string
}

// ============================================================================
// TABLE VIEW — wraps *RawTable
// ============================================================================

// TableView exposes a RawTable as a RecordView.
type TableView struct {
	table *RawTable
	index map[string]int
}

// NewTableView creates a RecordView over a raw table. A nil table reads as
// empty.
func NewTableView(t *RawTable) RecordView {
	if t == nil {
		t = &RawTable{}
	}
	v := &TableView{table: t, index: make(map[string]int, len(t.Headers))}
	for i, h := range t.Headers {
		if _, dup := v.index[h]; !dup {
			v.index[h] = i
		}
	}
	return v
}

func (v *TableView) Len() int { return len(v.table.Rows) }

func (v *TableView) Value(i int, column string) string {
	if i < 0 || i >= len(v.table.Rows) {
		return ""
	}
	col, ok := v.index[column]
	if !ok {
		return ""
	}
	row := v.table.Rows[i]
	if col >= len(row) {
		return ""
	}
	return row[col]
}

func (v *TableView) Columns() []string { return v.table.Headers }

// ============================================================================
// SUB VIEW — filtered subset (zero-copy)
// ============================================================================

// SubView is a filtered subset of a parent RecordView.
// Holds indices into the parent — no data copy.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Value(i int, column string) string {
	if i < 0 || i >= len(v.indices) {
		return ""
	}
	return v.parent.Value(v.indices[i], column)
}

func (v *SubView) Columns() []string { return v.parent.Columns() }

// ============================================================================
// DOMAIN ADAPTER — Zero-copy typed struct access
// ============================================================================
//
// Usage:
//
//	adapter := engine.NewDomainAdapter[RegionObservation]().
//	    Column("GEOGRAPHY_NAME", func(o RegionObservation) string { return o.RegionName })
//
//	view := adapter.Bind(rows)
//
// ============================================================================

// DomainAdapter builds a RecordView from typed structs.
// Declare once, bind many times.
type DomainAdapter[T any] struct {
	order []string
	cols  map[string]func(T) string
}

// NewDomainAdapter creates a new adapter for type T.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{cols: make(map[string]func(T) string)}
}

// Column registers a column accessor.
func (a *DomainAdapter[T]) Column(name string, fn func(T) string) *DomainAdapter[T] {
	if _, exists := a.cols[name]; !exists {
		a.order = append(a.order, name)
	}
	a.cols[name] = fn
	return a
}

// Bind creates a RecordView from a data slice. Zero-copy — holds reference.
func (a *DomainAdapter[T]) Bind(data []T) RecordView {
	return &DomainView[T]{data: data, cols: a.cols, order: a.order}
}

// DomainView reads typed struct fields via registered accessor functions.
type DomainView[T any] struct {
	data  []T
	cols  map[string]func(T) string
	order []string
}

func (v *DomainView[T]) Len() int { return len(v.data) }

func (v *DomainView[T]) Value(i int, column string) string {
	if i < 0 || i >= len(v.data) {
		return ""
	}
	if fn, ok := v.cols[column]; ok {
		return fn(v.data[i])
	}
	return ""
}

func (v *DomainView[T]) Columns() []string { return v.order }
