package route

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/movingblock-sim/entity/graph"
)

// Route 列车的既定路径
// 功能：按顺序记录列车将要经过的边，并作为道岔选择策略沿路径选择出口
// 说明：路径以外的分支不做预测；没有分支的线路总是可以继续
type Route struct {
	edges []*graph.Edge
	index map[*graph.Edge][]int // 边 -> 在路径中的下标
}

// New 根据边序列创建路径
func New(edges []*graph.Edge) *Route {
	r := &Route{
		edges: edges,
		index: make(map[*graph.Edge][]int, len(edges)),
	}
	for i, e := range edges {
		r.index[e] = append(r.index[e], i)
	}
	return r
}

// FromIDs 根据边ID序列创建路径，并检查相邻边首尾相接
func FromIDs(g *graph.Graph, ids []int32) (*Route, error) {
	edges := make([]*graph.Edge, 0, len(ids))
	for i, id := range ids {
		e, err := g.EdgeOrError(id)
		if err != nil {
			return nil, err
		}
		if i > 0 && !adjacent(edges[i-1], e) {
			return nil, fmt.Errorf("route: edge %d is not connected to edge %d", id, ids[i-1])
		}
		edges = append(edges, e)
	}
	return New(edges), nil
}

func adjacent(a, b *graph.Edge) bool {
	return b.Other(a.A()) != nil || b.Other(a.B()) != nil
}

func (r *Route) String() string {
	return fmt.Sprintf("Route%v", lo.Map(r.edges, func(e *graph.Edge, _ int) int32 { return e.ID() }))
}

// Edges 获取路径上的所有边
func (r *Route) Edges() []*graph.Edge {
	return r.edges
}

// ChooseExit 沿路径选择出口
// 功能：from在路径中出现时，选择路径上与之相邻（前一条或后一条）且属于候选出口的边
// 参数：node-到达的节点，from-驶来的边，exits-候选出口
// 返回：选中的边；路径未覆盖且存在分支时返回nil
// 说明：同时支持正向与倒行两种情况
func (r *Route) ChooseExit(node *graph.Node, from *graph.Edge, exits []*graph.Edge) *graph.Edge {
	for _, i := range r.index[from] {
		for _, j := range []int{i + 1, i - 1} {
			if j < 0 || j >= len(r.edges) {
				continue
			}
			if lo.Contains(exits, r.edges[j]) {
				return r.edges[j]
			}
		}
	}
	return graph.StraightOnly(node, from, exits)
}
