package serializer

import "github.com/cespare/xxhash/v2"

// formIndex maps the canonical JSON of encoded values to their names. Forms
// are bucketed by their xxhash digest and compared in full within a bucket.
type formIndex struct {
	buckets map[uint64][]namedForm
}

type namedForm struct {
	form string
	name string
}

func newFormIndex() *formIndex {
	return &formIndex{buckets: make(map[uint64][]namedForm)}
}

func (f *formIndex) get(form string) (string, bool) {
	for _, entry := range f.buckets[xxhash.Sum64String(form)] {
		if entry.form == form {
			return entry.name, true
		}
	}
	return "", false
}

func (f *formIndex) put(form, name string) {
	h := xxhash.Sum64String(form)
	f.buckets[h] = append(f.buckets[h], namedForm{form: form, name: name})
}
