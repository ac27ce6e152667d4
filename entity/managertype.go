package entity

import (
	"github.com/tsinghua-fib-lab/movingblock-sim/entity/graph"
	"github.com/tsinghua-fib-lab/movingblock-sim/utils/input"
)

// Manager依赖倒置

// entity/graph/manager.go的依赖倒置
type IGraphManager interface {
	Init(networks []input.Network) error // 初始化

	// 输入网络ID，查找轨道图，如果不存在则panic
	Get(id int32) *graph.Graph
	// 输入网络ID，查找轨道图，如果不存在则返回error
	GetOrError(id int32) (*graph.Graph, error)
}

// entity/train/manager.go的依赖倒置
type ITrainManager interface {
	ITrainSource

	Init(trains []input.Train, graphManager IGraphManager) error // 初始化

	// 输入列车ID，查找列车，如果不存在则返回error
	GetOrError(id int32) (ITrain, error)

	Prepare()          // 准备阶段
	Update(dt float64) // 更新阶段
}
