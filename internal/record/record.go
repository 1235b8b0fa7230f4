// Package record holds dictionary entries as insertion-ordered JSON objects.
package record

// Kind identifies the JSON type of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a decoded JSON value. Numbers keep their literal text so that
// integers of any size survive a round trip.
type Value struct {
	kind  Kind
	text  string
	items []Value
	obj   *Record
}

func Null() Value { return Value{kind: KindNull} }

func Bool(b bool) Value {
	if b {
		return Value{kind: KindBool, text: "true"}
	}
	return Value{kind: KindBool, text: "false"}
}

// Number wraps a JSON number literal such as "12", "-0.5" or "1e5".
func Number(lit string) Value { return Value{kind: KindNumber, text: lit} }

func String(s string) Value { return Value{kind: KindString, text: s} }

func Array(items ...Value) Value { return Value{kind: KindArray, items: items} }

func Object(r *Record) Value {
	if r == nil {
		r = New()
	}
	return Value{kind: KindObject, obj: r}
}

func (v Value) Kind() Kind { return v.kind }

// Text returns the string contents, the number literal, or "true"/"false".
func (v Value) Text() string { return v.text }

func (v Value) Items() []Value { return v.items }

func (v Value) Object() *Record { return v.obj }

// Equal reports structural equality; numbers compare by literal text.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindArray:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.Equal(o.obj)
	default:
		return v.text == o.text
	}
}

// Field is one key/value pair of a Record.
type Field struct {
	Key   string
	Value Value
}

// Record is a JSON object that remembers the order its keys were first set.
type Record struct {
	fields []Field
	index  map[string]int
}

func New() *Record {
	return &Record{index: make(map[string]int)}
}

// FromFields builds a Record by setting each field in turn.
func FromFields(fields ...Field) *Record {
	r := New()
	for _, f := range fields {
		r.Set(f.Key, f.Value)
	}
	return r
}

func (r *Record) Len() int { return len(r.fields) }

func (r *Record) Get(key string) (Value, bool) {
	i, ok := r.index[key]
	if !ok {
		return Value{}, false
	}
	return r.fields[i].Value, true
}

// Set stores v under key. An existing key keeps its position.
func (r *Record) Set(key string, v Value) {
	if i, ok := r.index[key]; ok {
		r.fields[i].Value = v
		return
	}
	r.index[key] = len(r.fields)
	r.fields = append(r.fields, Field{Key: key, Value: v})
}

func (r *Record) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Key
	}
	return keys
}

// Fields returns a copy of the fields in order.
func (r *Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Clone copies the field list. Nested values are shared; nothing in this
// module mutates a Value after decoding.
func (r *Record) Clone() *Record {
	c := &Record{
		fields: make([]Field, len(r.fields)),
		index:  make(map[string]int, len(r.index)),
	}
	copy(c.fields, r.fields)
	for k, i := range r.index {
		c.index[k] = i
	}
	return c
}

// Equal reports whether both records hold the same fields in the same order.
func (r *Record) Equal(o *Record) bool {
	if r == nil || o == nil {
		return r == o
	}
	if len(r.fields) != len(o.fields) {
		return false
	}
	for i := range r.fields {
		if r.fields[i].Key != o.fields[i].Key || !r.fields[i].Value.Equal(o.fields[i].Value) {
			return false
		}
	}
	return true
}
