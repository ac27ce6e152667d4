package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/movingblock-sim/entity/graph"
	"github.com/tsinghua-fib-lab/movingblock-sim/utils/input"
)

// 1 --10--> 2 <--11-- 3 --12--> 4
//
//	|
//	13
//	|
//	5
func branchNetwork() input.Network {
	return input.Network{
		ID: 1,
		Nodes: []input.Node{
			{ID: 1, X: 0, Y: 0},
			{ID: 2, X: 100, Y: 0},
			{ID: 3, X: 200, Y: 0},
			{ID: 4, X: 300, Y: 0},
			{ID: 5, X: 100, Y: -100},
		},
		Edges: []input.Edge{
			{ID: 10, A: 1, B: 2},
			{ID: 11, A: 3, B: 2},
			{ID: 12, A: 3, B: 4},
			{ID: 13, A: 2, B: 5},
		},
	}
}

func TestNewErrors(t *testing.T) {
	n := branchNetwork()
	n.Nodes = append(n.Nodes, input.Node{ID: 1})
	_, err := graph.New(n)
	assert.Error(t, err)

	n = branchNetwork()
	n.Edges = append(n.Edges, input.Edge{ID: 20, A: 1, B: 99})
	_, err = graph.New(n)
	assert.Error(t, err)

	n = branchNetwork()
	n.Edges = append(n.Edges, input.Edge{ID: 20, A: 1, B: 1})
	_, err = graph.New(n)
	assert.Error(t, err)

	n = branchNetwork()
	n.Edges = append(n.Edges, input.Edge{
		ID: 20, A: 1, B: 4,
		Points: []input.Point{{X: 1, Y: 1}},
		Bezier: []input.Point{{X: 1, Y: 1}},
	})
	_, err = graph.New(n)
	assert.Error(t, err)
}

func TestEdgeGeometry(t *testing.T) {
	g, err := graph.New(input.Network{
		ID:    1,
		Nodes: []input.Node{{ID: 1, X: 0, Y: 0}, {ID: 2, X: 100, Y: 0}},
		Edges: []input.Edge{
			{ID: 1, A: 1, B: 2},
			{ID: 2, A: 1, B: 2, Length: 150},
			{ID: 3, A: 1, B: 2, Bezier: []input.Point{{X: 50, Y: 50}}},
			{ID: 4, A: 1, B: 2, Points: []input.Point{{X: 50, Y: 50}}},
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 100, g.Edge(1).Length(), 1e-9)
	assert.InDelta(t, 40, g.Edge(1).GetPositionByS(40).X, 1e-9)

	// 显式长度按比例缩放弧长
	e := g.Edge(2)
	assert.InDelta(t, 150, e.Length(), 1e-9)
	assert.InDelta(t, 50, e.GetPositionByS(75).X, 1e-9)

	// 曲线长于弦长，弧长中点为曲线顶点
	c := g.Edge(3)
	assert.Greater(t, c.Length(), 100.)
	assert.Less(t, c.Length(), 2*70.72)
	mid := c.GetPositionByS(c.Length() / 2)
	assert.InDelta(t, 50, mid.X, 1e-6)
	assert.InDelta(t, 25, mid.Y, 1e-6)

	p := g.Edge(4)
	assert.InDelta(t, 2*70.71067811865476, p.Length(), 1e-6)
	assert.Len(t, p.Line(), 3)
}

func TestTravelAcrossOppositeEdges(t *testing.T) {
	g, err := graph.New(branchNetwork())
	require.NoError(t, err)
	straight := graph.SteerFunc(func(node *graph.Node, from *graph.Edge, exits []*graph.Edge) *graph.Edge {
		for _, e := range exits {
			if e.ID() == 11 || e.ID() == 10 {
				return e
			}
		}
		return nil
	})

	p := &graph.TravellingPoint{Edge: g.Edge(10), Position: 90, Dir: graph.Forward}
	assert.Equal(t, 30., p.Travel(30, straight))
	assert.Equal(t, g.Edge(11), p.Edge)
	assert.InDelta(t, 80, p.Position, 1e-9)
	assert.Equal(t, graph.Backward, p.Dir)
	assert.Equal(t, g.Node(2), p.Node1())
	assert.Equal(t, g.Node(3), p.Node2())
	assert.InDelta(t, 80, p.DistanceToEnd(), 1e-9)

	// 后退回到原来的边，朝向保持与列车一致
	assert.Equal(t, -50., p.Travel(-50, straight))
	assert.Equal(t, g.Edge(10), p.Edge)
	assert.InDelta(t, 70, p.Position, 1e-9)
	assert.Equal(t, graph.Forward, p.Dir)
}

func TestTravelExactlyToEnd(t *testing.T) {
	g, err := graph.New(branchNetwork())
	require.NoError(t, err)

	p := &graph.TravellingPoint{Edge: g.Edge(12), Position: 0, Dir: graph.Backward}
	// 节点3只有11一个出口
	assert.Equal(t, 0., p.Travel(p.DistanceToEnd(), nil))
	assert.Equal(t, g.Edge(11), p.Edge)
	assert.Equal(t, 0., p.Position)
	assert.Equal(t, graph.Forward, p.Dir)
}

func TestTravelStopsAtBranchAndDeadEnd(t *testing.T) {
	g, err := graph.New(branchNetwork())
	require.NoError(t, err)

	p := &graph.TravellingPoint{Edge: g.Edge(10), Position: 90, Dir: graph.Forward}
	assert.Equal(t, 10., p.Travel(30, graph.StraightOnly))
	assert.Equal(t, g.Edge(10), p.Edge)
	assert.Equal(t, 100., p.Position)

	toBranch := graph.SteerFunc(func(_ *graph.Node, _ *graph.Edge, exits []*graph.Edge) *graph.Edge {
		return exits[len(exits)-1]
	})
	assert.Equal(t, 20., p.Travel(20, toBranch))
	assert.Equal(t, g.Edge(13), p.Edge)
	assert.Equal(t, 20., p.Position)

	q := &graph.TravellingPoint{Edge: g.Edge(12), Position: 90, Dir: graph.Forward}
	assert.Equal(t, 10., q.Travel(50, nil))
	assert.Equal(t, 100., q.Position)
}

func TestTravellingPointHelpers(t *testing.T) {
	g, err := graph.New(branchNetwork())
	require.NoError(t, err)

	p := &graph.TravellingPoint{Edge: g.Edge(10), Position: 30, Dir: graph.Forward}
	r := p.Reversed()
	assert.Equal(t, graph.Backward, r.Dir)
	assert.Equal(t, graph.Forward, p.Dir)
	assert.Equal(t, 30., r.DistanceToEnd())
	assert.Equal(t, 70., p.DistanceToEnd())
	assert.Equal(t, 20., p.GapTo(50))
	assert.Equal(t, -20., r.GapTo(50))

	c := p.Copy()
	c.Position = 0
	assert.Equal(t, 30., p.Position)

	var empty graph.TravellingPoint
	assert.Nil(t, empty.Node1())
	assert.Equal(t, 0., empty.Travel(10, nil))
}

func TestNodeExits(t *testing.T) {
	g, err := graph.New(branchNetwork())
	require.NoError(t, err)

	n := g.Node(2)
	assert.Len(t, n.Edges(), 3)
	exits := n.Exits(g.Edge(10))
	assert.Equal(t, []*graph.Edge{g.Edge(11), g.Edge(13)}, exits)
	assert.Equal(t, g.Node(1), g.Edge(10).Other(n))
	assert.Nil(t, g.Edge(12).Other(n))
}

func TestManager(t *testing.T) {
	m := graph.NewManager()
	second := branchNetwork()
	second.ID = 2
	require.NoError(t, m.Init([]input.Network{branchNetwork(), second}))
	assert.Equal(t, int32(2), m.Get(2).ID())
	_, err := m.GetOrError(3)
	assert.Error(t, err)
	assert.Panics(t, func() { m.Get(3) })
	_, err = m.Get(1).EdgeOrError(99)
	assert.Error(t, err)

	dup := graph.NewManager()
	assert.Error(t, dup.Init([]input.Network{branchNetwork(), branchNetwork()}))
}
