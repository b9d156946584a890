package wizard

import (
	"container/heap"
	"fmt"
	"slices"
	"strings"

	"github.com/looker-open-source/create-looker-extension/pkg/models"
)

// Order returns questions sorted so that every question runs after all
// questions that produce a key it reads. A question produces its own Key
// and every key in Writes. Ties are broken by declaration index, so a list
// that is already consistent keeps its order.
func Order(questions []Question) ([]Question, error) {
	n := len(questions)

	producers := make(map[models.Key][]int)
	for i, q := range questions {
		producers[q.Key] = append(producers[q.Key], i)
		for _, k := range q.Writes {
			if !slices.Contains(producers[k], i) {
				producers[k] = append(producers[k], i)
			}
		}
	}

	outgoing := make([][]int, n)
	indeg := make([]int, n)
	for j, q := range questions {
		for _, k := range q.Reads {
			for _, p := range producers[k] {
				if p == j || slices.Contains(outgoing[p], j) {
					continue
				}
				outgoing[p] = append(outgoing[p], j)
				indeg[j]++
			}
		}
	}
	for i := range outgoing {
		slices.Sort(outgoing[i])
	}

	ready := &indexHeap{}
	for i := range indeg {
		if indeg[i] == 0 {
			heap.Push(ready, i)
		}
	}

	ordered := make([]Question, 0, n)
	for ready.Len() > 0 {
		i := heap.Pop(ready).(int)
		ordered = append(ordered, questions[i])
		for _, j := range outgoing[i] {
			indeg[j]--
			if indeg[j] == 0 {
				heap.Push(ready, j)
			}
		}
	}

	if len(ordered) != n {
		var stuck []string
		for i := range indeg {
			if indeg[i] > 0 {
				stuck = append(stuck, string(questions[i].Key))
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrQuestionCycle, strings.Join(stuck, ", "))
	}
	return ordered, nil
}

// indexHeap is a min-heap of declaration indices.
type indexHeap []int

func (h indexHeap) Len() int           { return len(h) }
func (h indexHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h indexHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *indexHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *indexHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
