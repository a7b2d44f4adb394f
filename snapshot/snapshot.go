package snapshot

import (
	"time"

	"github.com/cockroachdb/errors"

	"rbkv/domain/ordered"
)

// View is an immutable copy of the key space as of revision Seq.
type View struct {
	Seq     uint64
	Created time.Time

	data *ordered.Map[string, []byte]
}

// Take copies src. The caller must hold off writers to src for the
// duration of the call.
func Take(seq uint64, src *ordered.Map[string, []byte]) (*View, error) {
	data, err := src.Clone()
	if err != nil {
		return nil, errors.Wrapf(err, "snapshot: take at %d", seq)
	}
	return &View{Seq: seq, Created: time.Now(), data: data}, nil
}

// Get returns the value of key. The slice must not be modified.
func (v *View) Get(key string) ([]byte, bool) {
	return v.data.Get(key)
}

func (v *View) Len() int {
	return v.data.Len()
}

// Range returns at most limit entries with keys in [from, to). An empty
// to means no upper bound; a non-positive limit means no limit.
func (v *View) Range(from, to string, limit int) []ordered.Entry[string, []byte] {
	return Collect(v.data, from, to, limit)
}

func (v *View) Ascend(fn func(key string, value []byte) bool) {
	v.data.Ascend(fn)
}

// Collect gathers the entries of m with keys in [from, to), at most
// limit of them. An empty to is unbounded.
func Collect(m *ordered.Map[string, []byte], from, to string, limit int) []ordered.Entry[string, []byte] {
	var out []ordered.Entry[string, []byte]
	for c := m.LowerBound(from); !c.IsEnd(); c = c.Next() {
		if to != "" && c.Key() >= to {
			break
		}
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, c.Value())
	}
	return out
}
