// 随机数引擎，包装了golang.org/x/exp/rand，为列车属性采样提供可复现的随机数
package randengine

import (
	"flag"
	"sync"

	"golang.org/x/exp/rand"
)

var (
	seedOffset = flag.Uint64("rand.seed_offset", 0, "seed offset") // 种子偏移量，不改配置即可换一组随机序列
)

// Engine 随机数引擎
// 说明：嵌入的*rand.Rand方法非线程安全，并发场景使用带Safe后缀的方法
type Engine struct {
	*rand.Rand
	mtx sync.Mutex
}

// New 创建随机数引擎
// 参数：seed-随机数种子（实际使用seed加上-rand.seed_offset）
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed + *seedOffset))}
}

// NormFloat64Safe 线程安全的标准正态分布
func (e *Engine) NormFloat64Safe() float64 {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	return e.NormFloat64()
}
