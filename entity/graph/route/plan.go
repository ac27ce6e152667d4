package route

import (
	"fmt"

	"github.com/tsinghua-fib-lab/movingblock-sim/entity/graph"
	"github.com/tsinghua-fib-lab/movingblock-sim/utils/container"
)

// state 搜索状态：在某条边上驶向某个节点
type state struct {
	edge *graph.Edge
	to   *graph.Node
}

// Plan 规划从行驶点到终点节点的最短路径
// 功能：在轨道图上执行Dijkstra搜索，列车不能在节点处折返
// 参数：start-起点行驶点（沿其朝向出发），dest-终点节点
// 返回：包含起点所在边的路径与错误
// 算法说明：
// 1. 初始状态为起点所在边驶向Node2，代价为到边末端的距离
// 2. 每次弹出代价最小的状态，若到达终点则回溯路径
// 3. 否则把节点的每个出口边作为新状态加入队列，代价累加边长度
func Plan(start *graph.TravellingPoint, dest *graph.Node) (*Route, error) {
	if start == nil || start.Edge == nil {
		return nil, fmt.Errorf("route: start point is not on graph")
	}
	if dest == nil {
		return nil, fmt.Errorf("route: nil destination")
	}
	init := state{edge: start.Edge, to: start.Node2()}
	cost := map[state]float64{init: start.DistanceToEnd()}
	prev := make(map[state]state)
	done := make(map[state]struct{})
	q := container.NewPriorityQueue[state]()
	q.HeapPush(init, cost[init])
	for q.Len() > 0 {
		cur, c := q.HeapPop()
		if _, ok := done[cur]; ok {
			continue
		}
		done[cur] = struct{}{}
		if cur.to == dest {
			return New(backtrack(prev, init, cur)), nil
		}
		for _, e := range cur.to.Exits(cur.edge) {
			next := state{edge: e, to: e.Other(cur.to)}
			nc := c + e.Length()
			if old, ok := cost[next]; ok && old <= nc {
				continue
			}
			cost[next] = nc
			prev[next] = cur
			q.HeapPush(next, nc)
		}
	}
	return nil, fmt.Errorf("route: node %d is unreachable from %v", dest.ID(), start)
}

func backtrack(prev map[state]state, init, last state) []*graph.Edge {
	edges := []*graph.Edge{last.edge}
	for cur := last; cur != init; {
		cur = prev[cur]
		edges = append(edges, cur.edge)
	}
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	return edges
}
