package graph

import (
	"fmt"
	"sort"

	"git.fiblab.net/general/common/v2/geometry"
)

// Node 轨道节点
// 功能：轨道图中的端点或道岔，连接若干条Edge
type Node struct {
	id    int32
	pos   geometry.Point
	edges []*Edge // 与节点相连的所有边，按ID升序
}

func newNode(id int32, x, y float64) *Node {
	return &Node{
		id:  id,
		pos: geometry.Point{X: x, Y: y},
	}
}

func (n *Node) String() string {
	return fmt.Sprintf("Node{id=%d}", n.id)
}

// 获取节点ID
func (n *Node) ID() int32 {
	return n.id
}

// 获取节点坐标
func (n *Node) Position() geometry.Point {
	return n.pos
}

// 获取节点连接的所有边
func (n *Node) Edges() []*Edge {
	return n.edges
}

// Exits 获取从from边到达本节点后可以驶入的边
// 功能：列车不能原路折返，因此出口为除from以外的所有相连边
// 参数：from-驶来的边
// 返回：候选出口边列表（按ID升序）
func (n *Node) Exits(from *Edge) []*Edge {
	exits := make([]*Edge, 0, len(n.edges))
	for _, e := range n.edges {
		if e != from {
			exits = append(exits, e)
		}
	}
	return exits
}

func (n *Node) addEdge(e *Edge) {
	n.edges = append(n.edges, e)
	sort.Slice(n.edges, func(i, j int) bool { return n.edges[i].id < n.edges[j].id })
}
