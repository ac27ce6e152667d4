package container

import "container/heap"

// entry 堆中的元素
type entry[T any] struct {
	value    T
	priority float64 // 越小越优先
}

// entries 实现heap.Interface的最小堆
type entries[T any] []entry[T]

func (h entries[T]) Len() int           { return len(h) }
func (h entries[T]) Less(i, j int) bool { return h[i].priority < h[j].priority }
func (h entries[T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *entries[T]) Push(x any) {
	*h = append(*h, x.(entry[T]))
}

func (h *entries[T]) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	var zero entry[T]
	old[n-1] = zero // 释放引用
	*h = old[:n-1]
	return x
}

// PriorityQueue 最小优先队列
// 功能：按优先级（数值越小越优先）弹出元素，用于最短路搜索
// 说明：非线程安全
type PriorityQueue[T any] struct {
	heap entries[T]
}

// NewPriorityQueue 创建空的优先队列
func NewPriorityQueue[T any]() *PriorityQueue[T] {
	return &PriorityQueue[T]{heap: make(entries[T], 0)}
}

// Len 队列中元素数量
func (q *PriorityQueue[T]) Len() int {
	return len(q.heap)
}

// First 查看优先级最高的元素（不弹出）
// 说明：队列为空时ok为false
func (q *PriorityQueue[T]) First() (value T, priority float64, ok bool) {
	if len(q.heap) == 0 {
		return value, 0, false
	}
	return q.heap[0].value, q.heap[0].priority, true
}

// HeapPush 加入元素并维护堆性质
func (q *PriorityQueue[T]) HeapPush(value T, priority float64) {
	heap.Push(&q.heap, entry[T]{value: value, priority: priority})
}

// HeapPop 弹出优先级最高的元素
// 说明：队列为空时panic，调用前应检查Len
func (q *PriorityQueue[T]) HeapPop() (value T, priority float64) {
	e := heap.Pop(&q.heap).(entry[T])
	return e.value, e.priority
}
