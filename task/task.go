package task

import (
	"fmt"
	"sync/atomic"

	"github.com/tsinghua-fib-lab/movingblock-sim/clock"
	"github.com/tsinghua-fib-lab/movingblock-sim/entity"
	"github.com/tsinghua-fib-lab/movingblock-sim/entity/graph"
	"github.com/tsinghua-fib-lab/movingblock-sim/entity/movingblock"
	"github.com/tsinghua-fib-lab/movingblock-sim/entity/train"
	"github.com/tsinghua-fib-lab/movingblock-sim/utils/config"
	"github.com/tsinghua-fib-lab/movingblock-sim/utils/input"
)

// Context 仿真任务上下文
// 功能：包含一次仿真任务的所有变量和状态
// 说明：管理时钟、轨道图与列车管理器、移动闭塞处理器和配置
type Context struct {
	// 关闭指令
	closed atomic.Bool

	// 时钟
	clock *clock.Clock

	// 轨道图管理器
	graphManager *graph.GraphManager
	// 列车管理器
	trainManager *train.TrainManager
	// 移动闭塞处理器
	spacing *movingblock.Handler
	// 移动闭塞配置快照，管理接口重载时替换
	spacingStore *config.SpacingStore

	// 运行时配置文件
	runtimeConfig *config.RuntimeConfig

	// 用于初始化的输入
	initRes *input.Input
}

// NewContext 创建新的仿真任务上下文
// 参数：
//   - c: 配置对象
//   - in: 已加载的输入数据
//   - store: 移动闭塞配置快照
//
// 返回：尚未初始化的Context实例，需调用Init
func NewContext(c config.Config, in *input.Input, store *config.SpacingStore) *Context {
	ctx := &Context{
		initRes:      in,
		spacingStore: store,
	}
	ctx.runtimeConfig = config.NewRuntimeConfig(c)
	ctx.clock = clock.New(ctx.runtimeConfig.C.Step)

	// 新建各类模拟对象
	ctx.graphManager = graph.NewManager()
	ctx.trainManager = train.NewManager(ctx)
	ctx.spacing = movingblock.NewHandler(ctx.trainManager, store)
	return ctx
}

func (ctx *Context) GetInput() *input.Input {
	return ctx.initRes
}

func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

func (ctx *Context) GraphManager() entity.IGraphManager {
	return ctx.graphManager
}

func (ctx *Context) TrainManager() entity.ITrainManager {
	return ctx.trainManager
}

func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

func (ctx *Context) SpacingEnforcer() entity.ISpacingEnforcer {
	return ctx.spacing
}

// SpacingStore 获取移动闭塞配置快照，供管理接口重载
func (ctx *Context) SpacingStore() *config.SpacingStore {
	return ctx.spacingStore
}

// Init 初始化
// 功能：重置时钟，先构建轨道图，再在轨道图上布置列车
func (ctx *Context) Init() error {
	ctx.clock.Init()

	initRes := ctx.initRes
	log.Infof("Network: %v", len(initRes.Networks))
	log.Infof("Train: %v", len(initRes.Trains))

	if err := ctx.graphManager.Init(initRes.Networks); err != nil {
		return fmt.Errorf("init graphs: %w", err)
	}
	if err := ctx.trainManager.Init(initRes.Trains, ctx.graphManager); err != nil {
		return fmt.Errorf("init trains: %w", err)
	}
	cfg := ctx.spacingStore.Get()
	log.Infof("moving block: enabled=%v, finalStopDistance=%v", cfg.Enabled, cfg.FinalStopDistance)
	return nil
}

// Close 请求在当前步结束后停止
func (ctx *Context) Close() {
	ctx.closed.Store(true)
}
