package entity

import (
	"github.com/tsinghua-fib-lab/movingblock-sim/entity/graph"
)

// entity/train/carriage.go的依赖倒置
type ICarriage interface {
	LeadingPoint() *graph.TravellingPoint  // 获取车厢前端行驶点
	TrailingPoint() *graph.TravellingPoint // 获取车厢后端行驶点
}

// entity/train/train.go的依赖倒置
// 说明：移动闭塞只读取列车状态，并且只写入速度与目标速度
type ITrain interface {
	ID() int32              // 获取列车ID
	String() string         // print
	Graph() *graph.Graph    // 获取列车所在轨道图，未上轨时为nil
	Carriages() []ICarriage // 获取按顺序排列的车厢
	Derailed() bool         // 是否脱轨
	Steer() graph.Steer     // 获取列车的道岔选择策略（沿既定路径）

	Speed() float64        // 当前速度（带符号，符号表示方向）
	TargetSpeed() float64  // 目标速度（带符号）
	Throttle() float64     // 油门比例
	MaxSpeed() float64     // 最大速度
	Acceleration() float64 // 加速/制动能力

	SetSpeed(speed, targetSpeed float64) // 写入当前速度与目标速度
}

// 移动闭塞检查的依赖倒置
type ISpacingEnforcer interface {
	// 每步每车调用一次，在原生速度计算之后
	EnforceSpacing(train ITrain, backwards bool)
}

// 提供所有列车的数据源
type ITrainSource interface {
	Trains() []ITrain
}
