package path

import "math/bits"

// freeSlots — дерево Фенвика над занятостью слотов итоговой последовательности.
// take находит k-й свободный слот и занимает его за O(log n).
type freeSlots struct {
	tree []int // 1-based
	top  int   // старшая степень двойки <= n
}

func newFreeSlots(n int) *freeSlots {
	tree := make([]int, n+1)
	for i := 1; i <= n; i++ {
		tree[i]++
		if parent := i + (i & -i); parent <= n {
			tree[parent] += tree[i]
		}
	}
	top := 0
	if n > 0 {
		top = 1 << (bits.Len(uint(n)) - 1)
	}
	return &freeSlots{tree: tree, top: top}
}

// take занимает свободный слот с порядковым номером k (с нуля) и возвращает его индекс
func (s *freeSlots) take(k int) int {
	pos, rest := 0, k+1
	for step := s.top; step > 0; step >>= 1 {
		if next := pos + step; next < len(s.tree) && s.tree[next] < rest {
			pos = next
			rest -= s.tree[next]
		}
	}
	// pos — последний слот, до которого свободных меньше k+1; нужный слот следующий
	for i := pos + 1; i < len(s.tree); i += i & -i {
		s.tree[i]--
	}
	return pos
}
