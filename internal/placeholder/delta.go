package placeholder

import "github.com/dshills/reportassist/internal/engine/document"

// span is a placeholder's absolute document range.
type span struct {
	start  int64
	length int64
}

func (s span) end() int64 {
	return s.start + s.length
}

// adjust applies one document change to the span of placeholder idx while
// placeholder current is being edited.
//
// An edit before the span shifts it; an edit inside it changes its length;
// an edit after it leaves it alone. A pure insertion exactly on a boundary
// belongs to the current placeholder; for any other placeholder it shifts
// the span when it lands on a non-empty span's start or on a later
// placeholder, and is otherwise outside. Edits that straddle a boundary
// clamp the span to the text that survives.
func adjust(sp span, idx, current int, c document.Change) span {
	p := c.Offset
	r := c.RemovedLen()
	ins := c.InsertedLen()
	delta := ins - r
	s, e := sp.start, sp.end()

	if r == 0 {
		switch {
		case p > s && p < e:
			sp.length += delta
		case p == s || p == e:
			switch {
			case idx == current:
				sp.length += delta
			case p == s && (s < e || idx > current):
				sp.start += delta
			}
		case p < s:
			sp.start += delta
		}
		return sp
	}

	hi := p + r
	switch {
	case hi <= s:
		sp.start += delta
	case p >= e:
	case p >= s && hi <= e:
		sp.length += delta
	default:
		ns := mapBound(s, p, hi, delta, p+ins)
		ne := mapBound(e, p, hi, delta, p)
		if ne < ns {
			ne = ns
		}
		sp.start, sp.length = ns, ne-ns
	}
	return sp
}

// mapBound maps x through a replacement of [lo, hi). Positions inside the
// removed range move to inside.
func mapBound(x, lo, hi, delta, inside int64) int64 {
	switch {
	case x <= lo:
		return x
	case x >= hi:
		return x + delta
	default:
		return inside
	}
}
