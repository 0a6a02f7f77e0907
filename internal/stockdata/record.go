package stockdata

// Record is one data source's output for one ticker. Keys are defined by the
// source and keep the order they were first inserted in.
type Record struct {
	keys   []string
	values map[string]string
}

// Entry is a single key/value pair of a Record.
type Entry struct {
	Key   string
	Value string
}

func NewRecord() *Record {
	return &Record{values: map[string]string{}}
}

// RecordFromEntries builds a Record by calling Set on every entry in order.
func RecordFromEntries(entries ...Entry) *Record {
	r := NewRecord()
	for _, e := range entries {
		r.Set(e.Key, e.Value)
	}
	return r
}

// Set inserts key or, if it already exists, replaces its value in place.
func (r *Record) Set(key, value string) {
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func (r *Record) Get(key string) (string, bool) {
	if r == nil {
		return "", false
	}
	value, ok := r.values[key]
	return value, ok
}

func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r *Record) Entries() []Entry {
	if r == nil {
		return nil
	}
	out := make([]Entry, len(r.keys))
	for i, k := range r.keys {
		out[i] = Entry{Key: k, Value: r.values[k]}
	}
	return out
}

func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	return RecordFromEntries(r.Entries()...)
}
