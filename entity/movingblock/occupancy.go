package movingblock

import (
	"github.com/tsinghua-fib-lab/movingblock-sim/entity"
	"github.com/tsinghua-fib-lab/movingblock-sim/entity/graph"
)

// OccupancyMap 边 -> 占用该边的其他列车端点
// 说明：每次检查时重新构建，同一条边上的端点无顺序保证
type OccupancyMap map[*graph.Edge][]*graph.TravellingPoint

// BuildOccupancy 构建占用索引
// 功能：收集同一轨道图上其他列车所有车厢的前后端点，按所在边分组
// 参数：trains-所有列车，self-发起查询的列车，g-其所在轨道图
// 返回：占用索引
// 说明：排除自身、其他轨道图上的列车与脱轨列车；端点不在边上时忽略
func BuildOccupancy(trains []entity.ITrain, self entity.ITrain, g *graph.Graph) OccupancyMap {
	m := make(OccupancyMap)
	for _, other := range trains {
		if other == self || other.Graph() != g || other.Derailed() {
			continue
		}
		for _, c := range other.Carriages() {
			m.add(c.LeadingPoint())
			m.add(c.TrailingPoint())
		}
	}
	return m
}

func (m OccupancyMap) add(p *graph.TravellingPoint) {
	if p == nil || p.Edge == nil {
		return
	}
	m[p.Edge] = append(m[p.Edge], p)
}
