// Package merge joins translated dictionary entries with their originals.
package merge

import (
	"github.com/takaryo1010/wordmerge/internal/errors"
	"github.com/takaryo1010/wordmerge/internal/record"
)

// IDField is the field both collections are joined on.
const IDField = "ID"

// Index maps join keys to original records. Built once, read-only after.
type Index struct {
	byKey      map[string]*record.Record
	duplicates []record.Value
}

// BuildIndex indexes originals by ID. A later record with the same ID
// replaces the earlier one.
func BuildIndex(originals []*record.Record) (*Index, error) {
	ix := &Index{byKey: make(map[string]*record.Record, len(originals))}
	for i, r := range originals {
		id, ok := r.Get(IDField)
		if !ok {
			return nil, errors.WrapMissingID(IDField, i)
		}
		key, err := record.JoinKey(id)
		if err != nil {
			return nil, errors.WrapUnhashableID("original", i, err)
		}
		if id.IsNaN() {
			// Unreachable by any lookup.
			continue
		}
		if _, seen := ix.byKey[key]; seen {
			ix.duplicates = append(ix.duplicates, id)
		}
		ix.byKey[key] = r
	}
	return ix, nil
}

// Len returns the number of distinct IDs.
func (ix *Index) Len() int { return len(ix.byKey) }

// Duplicates returns the IDs that were overwritten by a later original, one
// entry per overwrite.
func (ix *Index) Duplicates() []record.Value { return ix.duplicates }

// Lookup returns the original holding id. A NaN id never matches.
func (ix *Index) Lookup(id record.Value) (*record.Record, bool, error) {
	key, err := record.JoinKey(id)
	if err != nil || id.IsNaN() {
		return nil, false, err
	}
	r, ok := ix.byKey[key]
	return r, ok, nil
}

// Combine copies the original's fields, then sets every translated field on
// top. A nil original behaves as an empty record.
func Combine(original, translated *record.Record) *record.Record {
	var out *record.Record
	if original != nil {
		out = original.Clone()
	} else {
		out = record.New()
	}
	for _, f := range translated.Fields() {
		out.Set(f.Key, f.Value)
	}
	return out
}

// Result is the merged collection plus join statistics.
type Result struct {
	Records []*record.Record

	Matched   int
	Unmatched int
	// MissingID counts translated records without an ID field. They are
	// merged against an empty original like any other miss.
	MissingID    int
	UnmatchedIDs []record.Value
	Duplicates   []record.Value
	IndexSize    int
}

// Merge produces one record per translated record, in translated order.
func Merge(originals, translated []*record.Record) (*Result, error) {
	ix, err := BuildIndex(originals)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Records:    make([]*record.Record, 0, len(translated)),
		Duplicates: ix.Duplicates(),
		IndexSize:  ix.Len(),
	}
	for i, t := range translated {
		var original *record.Record
		if id, ok := t.Get(IDField); ok {
			o, found, err := ix.Lookup(id)
			if err != nil {
				return nil, errors.WrapUnhashableID("translated", i, err)
			}
			if found {
				original = o
				res.Matched++
			} else {
				res.Unmatched++
				res.UnmatchedIDs = append(res.UnmatchedIDs, id)
			}
		} else {
			res.MissingID++
		}
		res.Records = append(res.Records, Combine(original, t))
	}
	return res, nil
}
