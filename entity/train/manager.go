package train

import (
	"fmt"

	"git.fiblab.net/general/common/v2/parallel"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/movingblock-sim/entity"
	"github.com/tsinghua-fib-lab/movingblock-sim/utils/container"
	"github.com/tsinghua-fib-lab/movingblock-sim/utils/input"
	"github.com/tsinghua-fib-lab/movingblock-sim/utils/randengine"
)

const (
	throttleMean   = .8 // 未指定油门时的采样均值
	throttleStdDev = .1
	throttleMin    = .5
	throttleMax    = 1.
)

// TrainManager 列车管理器
// 功能：管理所有列车，负责创建、查找与每步的速度计算和位置积分
type TrainManager struct {
	ctx entity.ITaskContext

	data   map[int32]*Train
	trains *container.IncrementalArray[*Train]
	views  []entity.ITrain // 本步所有列车，Prepare时刷新

	generator *randengine.Engine
}

// NewManager 创建列车管理器实例
// 参数：ctx-任务上下文
func NewManager(ctx entity.ITaskContext) *TrainManager {
	return &TrainManager{
		ctx:       ctx,
		data:      make(map[int32]*Train),
		trains:    container.NewIncrementalArray[*Train](),
		views:     make([]entity.ITrain, 0),
		generator: randengine.New(ctx.RuntimeConfig().C.Control.Seed),
	}
}

// Init 初始化所有列车
// 功能：按输入顺序创建列车，未指定油门的列车随机采样油门
// 参数：trains-列车输入数据，graphManager-轨道图管理器
// 返回：任一列车创建失败时返回错误
// 说明：顺序创建以保证相同种子下采样结果可复现
func (m *TrainManager) Init(trains []input.Train, graphManager entity.IGraphManager) error {
	for _, in := range trains {
		if _, ok := m.data[in.ID]; ok {
			return fmt.Errorf("duplicated train id %d", in.ID)
		}
		g, err := graphManager.GetOrError(in.Network)
		if err != nil {
			return fmt.Errorf("train %d: %w", in.ID, err)
		}
		throttle := in.Throttle
		if throttle == 0 {
			throttle = lo.Clamp(throttleMean+throttleStdDev*m.generator.NormFloat64Safe(), throttleMin, throttleMax)
		}
		t, err := newTrain(in, g, throttle)
		if err != nil {
			return err
		}
		m.data[t.id] = t
		m.trains.Add(t)
	}
	m.Prepare()
	log.Infof("%d trains loaded", len(m.data))
	return nil
}

// Trains 获取所有列车
func (m *TrainManager) Trains() []entity.ITrain {
	return m.views
}

// Get 根据ID获取列车，如果不存在则panic
func (m *TrainManager) Get(id int32) *Train {
	if t, ok := m.data[id]; !ok {
		log.Panicf("no id %d in train data", id)
		return nil
	} else {
		return t
	}
}

// GetOrError 根据ID获取列车，如果不存在则返回错误
func (m *TrainManager) GetOrError(id int32) (entity.ITrain, error) {
	if t, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("no id %d in train data", id)
	} else {
		return t, nil
	}
}

// All 获取所有列车（按内部顺序）
func (m *TrainManager) All() []*Train {
	return m.trains.Data()
}

// 准备阶段
func (m *TrainManager) Prepare() {
	m.trains.Prepare()
	m.views = lo.Map(m.trains.Data(), func(t *Train, _ int) entity.ITrain { return t })
}

// Update 更新阶段
// 算法说明：
// 1. 逐车计算原生速度并执行移动闭塞检查，此时所有列车位置均为上一步结果
// 2. 并行积分位置，每辆列车只修改自己的行驶点
func (m *TrainManager) Update(dt float64) {
	enforcer := m.ctx.SpacingEnforcer()
	for _, t := range m.trains.Data() {
		t.updateSpeed(dt)
		enforcer.EnforceSpacing(t, t.backwards)
	}
	parallel.GoFor(m.trains.Data(), func(t *Train) { t.move(dt) })
}
