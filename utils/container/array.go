package container

import (
	"sync"
)

// IIncrementalItem 可放入增量数组的元素
// 说明：元素自己记录在数组中的下标
type IIncrementalItem interface {
	Index() int
	SetIndex(index int)
}

// IncrementalItemBase 嵌入即可实现IIncrementalItem
type IncrementalItemBase struct {
	index int
}

func (b *IncrementalItemBase) Index() int {
	return b.index
}

func (b *IncrementalItemBase) SetIndex(index int) {
	b.index = index
}

// IncrementalArray 增量数组
// 功能：仿真步内并发登记新增元素，在Prepare阶段统一生效
// 说明：Data在两次Prepare之间保持不变，可被多个协程安全读取
type IncrementalArray[T IIncrementalItem] struct {
	data []T
	add  []T
	mtx  sync.Mutex
}

// NewIncrementalArray 创建空的增量数组
func NewIncrementalArray[T IIncrementalItem]() *IncrementalArray[T] {
	return &IncrementalArray[T]{
		data: make([]T, 0),
	}
}

// Len 当前已生效的元素数量
func (a *IncrementalArray[T]) Len() int {
	return len(a.data)
}

// Data 当前已生效的元素（不可修改）
func (a *IncrementalArray[T]) Data() []T {
	return a.data
}

// Add 登记增加元素，Prepare时生效
func (a *IncrementalArray[T]) Add(value T) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	a.add = append(a.add, value)
}

// Prepare 追加登记的元素并设置下标
func (a *IncrementalArray[T]) Prepare() {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	for _, x := range a.add {
		x.SetIndex(len(a.data))
		a.data = append(a.data, x)
	}
	a.add = a.add[:0]
}
