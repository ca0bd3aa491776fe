package suggest

// topK keeps the k heaviest terms offered to it. It is a min-heap on weight
// written out by hand so that offers do not box terms through container/heap.
type topK struct {
	k     int
	items []Term
}

func newTopK(k int) *topK {
	return &topK{k: k, items: make([]Term, 0, min(k, 64))}
}

// offer admits t while under capacity, afterwards only when t outweighs the
// current minimum.
func (h *topK) offer(t Term) {
	if h.k <= 0 {
		return
	}
	if len(h.items) < h.k {
		h.items = append(h.items, t)
		h.up(len(h.items) - 1)
		return
	}
	if h.items[0].Weight < t.Weight {
		h.items[0] = t
		h.down(0)
	}
}

func (h *topK) len() int {
	return len(h.items)
}

// drain empties the heap and returns its terms heaviest first.
func (h *topK) drain() []Term {
	out := make([]Term, len(h.items))
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = h.pop()
	}
	return out
}

func (h *topK) pop() Term {
	n := len(h.items) - 1
	top := h.items[0]
	h.items[0] = h.items[n]
	h.items = h.items[:n]
	if n > 0 {
		h.down(0)
	}
	return top
}

func (h *topK) up(j int) {
	for j > 0 {
		i := (j - 1) / 2 // parent
		if h.items[i].Weight <= h.items[j].Weight {
			break
		}
		h.items[i], h.items[j] = h.items[j], h.items[i]
		j = i
	}
}

func (h *topK) down(i int) {
	n := len(h.items)
	for {
		j := 2*i + 1 // left child
		if j >= n {
			break
		}
		if r := j + 1; r < n && h.items[r].Weight < h.items[j].Weight {
			j = r
		}
		if h.items[i].Weight <= h.items[j].Weight {
			break
		}
		h.items[i], h.items[j] = h.items[j], h.items[i]
		i = j
	}
}
