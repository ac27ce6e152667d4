package task

import (
	"flag"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔步数")
)

// prepare 准备阶段，每步执行一次
// 功能：输出心跳日志，刷新列车列表
func (ctx *Context) prepare() {
	if interval := int32(*heartBeatInterval); interval > 0 && ctx.clock.InternalStep%interval == 0 {
		hour, minute, second := ctx.clock.GetHourMinuteSecond()
		log.Infof(
			"STEP: %d(%d:%d:%.2f)",
			ctx.clock.InternalStep,
			hour, minute, second,
		)
	}
	ctx.trainManager.Prepare()
}

// update 更新阶段，每步执行一次
// 功能：原生速度、移动闭塞修正与位置积分，见TrainManager.Update
func (ctx *Context) update() {
	ctx.trainManager.Update(ctx.clock.DT)
}

// Run 运行
// 功能：初始化后逐步推进，直到结束步或收到关闭指令
// 返回：初始化失败时返回错误
func (ctx *Context) Run() error {
	if err := ctx.Init(); err != nil {
		return err
	}
	for !ctx.clock.Finished() && !ctx.closed.Load() {
		ctx.prepare()
		log.Debugf("step %d: prepare complete", ctx.clock.InternalStep)
		ctx.update()
		log.Debugf("step %d: update complete", ctx.clock.InternalStep)
		ctx.clock.Next()
	}
	log.Infof("engine complete at %v", ctx.clock)
	ctx.summary()
	return nil
}

// summary 输出每辆列车的最终状态
func (ctx *Context) summary() {
	for _, t := range ctx.trainManager.All() {
		cs := t.Carriages()
		log.Infof(
			"%v: speed=%.2f, distance=%.2f, head=%v, derailed=%v",
			t, t.Speed(), t.Distance(), cs[0].LeadingPoint(), t.Derailed(),
		)
	}
}
