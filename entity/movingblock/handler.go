package movingblock

import (
	"math"

	"github.com/tsinghua-fib-lab/movingblock-sim/entity"
	"github.com/tsinghua-fib-lab/movingblock-sim/entity/graph"
	"github.com/tsinghua-fib-lab/movingblock-sim/utils/config"
)

// Handler 移动闭塞处理器
// 功能：在原生速度计算之后，根据前方最近列车的距离限制列车速度
type Handler struct {
	trains entity.ITrainSource
	store  *config.SpacingStore
}

// NewHandler 创建移动闭塞处理器
// 参数：trains-所有列车的数据源，store-配置快照
func NewHandler(trains entity.ITrainSource, store *config.SpacingStore) *Handler {
	return &Handler{trains: trains, store: store}
}

// EnforceSpacing 对一辆列车执行移动闭塞检查
// 功能：每步每车调用一次，必要时改写列车的当前速度与目标速度
// 参数：t-列车，backwards-列车是否倒行
func (h *Handler) EnforceSpacing(t entity.ITrain, backwards bool) {
	h.check(t, backwards).Apply(t)
}

// check 计算本步的限速决策
// 算法说明：
// 1. 读取一次配置快照，本次检查全程使用
// 2. 未启用、列车不在轨道图上、找不到前端行驶点或列车静止时不干预
// 3. 计算扫描距离，构建占用索引并扫描
// 4. 根据扫描结果做出决策
func (h *Handler) check(t entity.ITrain, backwards bool) Decision {
	cfg := h.store.Get()
	if !cfg.Enabled {
		return Decision{}
	}
	g := t.Graph()
	if g == nil {
		return Decision{}
	}
	leading := governingPoint(t, backwards)
	if leading == nil || leading.Edge == nil {
		return Decision{}
	}
	k := kinematicsOf(t)
	if k.Stationary() {
		return Decision{}
	}
	bound := ScanBound(k.Speed, k.Acceleration, cfg)
	occupancy := BuildOccupancy(h.trains.Trains(), t, g)
	distance, found := Scan(leading, occupancy, bound, t.Steer())
	d := Govern(k, distance, found, bound, cfg)
	switch d.Type {
	case DecisionCap:
		if cfg.DebugLogging {
			log.Infof("train %d: distance=%.2f, speed cap=%.2f", t.ID(), d.Distance, math.Abs(d.Speed))
		}
	case DecisionStop:
		log.Debugf("train %d: distance=%.2f, stop", t.ID(), d.Distance)
	}
	return d
}

// governingPoint 获取列车行进方向上的前端行驶点
// 说明：倒行时为最后一节车厢的后端，朝向取反
func governingPoint(t entity.ITrain, backwards bool) *graph.TravellingPoint {
	carriages := t.Carriages()
	if len(carriages) == 0 {
		return nil
	}
	if !backwards {
		return carriages[0].LeadingPoint()
	}
	p := carriages[len(carriages)-1].TrailingPoint()
	if p == nil {
		return nil
	}
	return p.Reversed()
}
