package models

// Filter names understood by the console views.
const (
	FilterRole    = "role"
	FilterName    = "name"
	FilterKeyword = "keyword"
	FilterStatus  = "status"
)

// FilterState maps a filter name to its normalized, non-empty value.
type FilterState map[string]string

// Get returns the value for name or "".
func (f FilterState) Get(name string) string {
	if f == nil {
		return ""
	}
	return f[name]
}

// Clone returns an independent copy.
func (f FilterState) Clone() FilterState {
	out := make(FilterState, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Only returns the subset of filters whose names are listed.
func (f FilterState) Only(names ...string) FilterState {
	out := make(FilterState)
	for _, name := range names {
		if v, ok := f[name]; ok {
			out[name] = v
		}
	}
	return out
}

// QueryDescriptor is the immutable snapshot of a view's filters at the moment
// a fetch is issued. Seq is assigned by the coordinator.
type QueryDescriptor struct {
	View    ViewName    `json:"view"`
	Filters FilterState `json:"filters"`
	Seq     uint64      `json:"seq"`
}

// WithSeq returns a copy tagged with seq.
func (d QueryDescriptor) WithSeq(seq uint64) QueryDescriptor {
	return QueryDescriptor{View: d.View, Filters: d.Filters.Clone(), Seq: seq}
}
