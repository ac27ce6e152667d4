package graph

import (
	"fmt"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/movingblock-sim/utils/input"
)

// Graph 轨道图
// 功能：由节点与边构成的独立轨道网络，列车只与同一Graph上的列车相互影响
type Graph struct {
	id    int32
	nodes map[int32]*Node
	edges map[int32]*Edge
}

// New 根据输入数据构建轨道图
// 功能：创建节点与边并建立连接关系
// 参数：data-轨道网络输入数据
// 返回：轨道图与错误（ID重复、端点不存在、几何无效时返回错误）
func New(data input.Network) (*Graph, error) {
	g := &Graph{
		id:    data.ID,
		nodes: make(map[int32]*Node, len(data.Nodes)),
		edges: make(map[int32]*Edge, len(data.Edges)),
	}
	for _, n := range data.Nodes {
		if _, ok := g.nodes[n.ID]; ok {
			return nil, fmt.Errorf("network %d: duplicated node %d", data.ID, n.ID)
		}
		g.nodes[n.ID] = newNode(n.ID, n.X, n.Y)
	}
	toPoints := func(ps []input.Point) []geometry.Point {
		return lo.Map(ps, func(p input.Point, _ int) geometry.Point {
			return geometry.Point{X: p.X, Y: p.Y}
		})
	}
	for _, ed := range data.Edges {
		if _, ok := g.edges[ed.ID]; ok {
			return nil, fmt.Errorf("network %d: duplicated edge %d", data.ID, ed.ID)
		}
		a, ok := g.nodes[ed.A]
		if !ok {
			return nil, fmt.Errorf("network %d: edge %d: node %d not found", data.ID, ed.ID, ed.A)
		}
		b, ok := g.nodes[ed.B]
		if !ok {
			return nil, fmt.Errorf("network %d: edge %d: node %d not found", data.ID, ed.ID, ed.B)
		}
		e, err := newEdge(ed.ID, a, b, toPoints(ed.Points), toPoints(ed.Bezier), ed.Length)
		if err != nil {
			return nil, fmt.Errorf("network %d: %w", data.ID, err)
		}
		g.edges[e.id] = e
		a.addEdge(e)
		b.addEdge(e)
	}
	return g, nil
}

func (g *Graph) String() string {
	return fmt.Sprintf("Graph{id=%d, nodes=%d, edges=%d}", g.id, len(g.nodes), len(g.edges))
}

// 获取轨道图ID
func (g *Graph) ID() int32 {
	return g.id
}

// Node 根据ID获取节点，不存在时返回nil
func (g *Graph) Node(id int32) *Node {
	return g.nodes[id]
}

// Edge 根据ID获取边，不存在时返回nil
func (g *Graph) Edge(id int32) *Edge {
	return g.edges[id]
}

// EdgeOrError 根据ID获取边，不存在时返回错误
func (g *Graph) EdgeOrError(id int32) (*Edge, error) {
	if e, ok := g.edges[id]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("no edge %d in graph %d", id, g.id)
}

// Edges 获取所有边
func (g *Graph) Edges() []*Edge {
	return lo.Values(g.edges)
}
