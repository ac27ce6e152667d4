package entity

import (
	"github.com/tsinghua-fib-lab/movingblock-sim/clock"
	"github.com/tsinghua-fib-lab/movingblock-sim/utils/config"
)

type ITaskContext interface {
	Clock() *clock.Clock
	GraphManager() IGraphManager
	TrainManager() ITrainManager
	RuntimeConfig() *config.RuntimeConfig
	SpacingEnforcer() ISpacingEnforcer
}
