package movingblock

import (
	"math"

	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/tsinghua-fib-lab/movingblock-sim/entity/graph"
)

const (
	maxEdgeCrossings = 50 // 单次扫描最多经过的边数
	aheadTolerance   = .1 // 起始边上与游标几乎重合的端点不计入
)

// edgeVisit 已完整扫描的(边, 朝向)
type edgeVisit struct {
	edge *graph.Edge
	dir  graph.Direction
}

// Scan 拓扑扫描前方最近的障碍
// 功能：从起点复制一个游标，沿列车既定路径逐条边向前扫描，返回到最近的前方占用点的路径距离
// 参数：start-列车前端行驶点，occupancy-占用索引，bound-扫描距离，steer-列车的道岔选择策略
// 返回：distance-障碍距离，found-是否找到
// 算法说明：
// 1. 已累计距离超过bound时停止
// 2. 游标从入口进入一条已完整扫描过的(边, 朝向)时停止（环路）
// 3. 检查当前边上的占用点，沿游标朝向位于前方的取最小间距
// 4. 当前边找到障碍即停止，后续边上的障碍不可能更近
// 5. 否则移动游标到边末端并跨入下一条边，无法换边（尽头或路径在道岔处结束）时停止
// 6. 最多经过maxEdgeCrossings条边
// 说明：起始边只有从入口重新进入时才登记，因此环路回到起始边时仍会扫描列车身后的部分；
// 游标是独立的副本，不会修改原列车的行驶点
func Scan(start *graph.TravellingPoint, occupancy OccupancyMap, bound float64, steer graph.Steer) (distance float64, found bool) {
	if start == nil || start.Edge == nil {
		return 0, false
	}
	scout := start.Copy()
	visited := make(map[edgeVisit]struct{})
	accumulated := 0.
	closest := mathutil.INF
	entered := false // 游标是否位于边的入口
	for range maxEdgeCrossings {
		if accumulated > bound {
			break
		}
		edge := scout.Edge
		if entered {
			key := edgeVisit{edge: edge, dir: scout.Dir}
			if _, ok := visited[key]; ok {
				break
			}
			visited[key] = struct{}{}
		}
		for _, obs := range occupancy[edge] {
			gap := scout.GapTo(obs.Position)
			if entered && gap >= 0 || !entered && gap > aheadTolerance {
				closest = min(closest, accumulated+gap)
			}
		}
		if closest < mathutil.INF {
			return closest, true
		}
		actual := scout.Travel(scout.DistanceToEnd(), steer)
		if scout.Edge == edge {
			break
		}
		accumulated += math.Abs(actual)
		entered = true
	}
	return 0, false
}
