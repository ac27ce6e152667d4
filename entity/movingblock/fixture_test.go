package movingblock_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/movingblock-sim/entity"
	"github.com/tsinghua-fib-lab/movingblock-sim/entity/graph"
	"github.com/tsinghua-fib-lab/movingblock-sim/utils/input"
)

type fakeCarriage struct {
	leading, trailing *graph.TravellingPoint
}

func (c *fakeCarriage) LeadingPoint() *graph.TravellingPoint  { return c.leading }
func (c *fakeCarriage) TrailingPoint() *graph.TravellingPoint { return c.trailing }

type fakeTrain struct {
	id        int32
	g         *graph.Graph
	carriages []entity.ICarriage
	derailed  bool
	steer     graph.Steer

	speed, targetSpeed float64
	throttle, maxSpeed float64
	acceleration       float64
	sets               int
}

func (t *fakeTrain) ID() int32                     { return t.id }
func (t *fakeTrain) String() string                { return "fakeTrain" }
func (t *fakeTrain) Graph() *graph.Graph           { return t.g }
func (t *fakeTrain) Carriages() []entity.ICarriage { return t.carriages }
func (t *fakeTrain) Derailed() bool                { return t.derailed }
func (t *fakeTrain) Steer() graph.Steer            { return t.steer }
func (t *fakeTrain) Speed() float64                { return t.speed }
func (t *fakeTrain) TargetSpeed() float64          { return t.targetSpeed }
func (t *fakeTrain) Throttle() float64             { return t.throttle }
func (t *fakeTrain) MaxSpeed() float64             { return t.maxSpeed }
func (t *fakeTrain) Acceleration() float64         { return t.acceleration }
func (t *fakeTrain) SetSpeed(speed, targetSpeed float64) {
	t.speed, t.targetSpeed = speed, targetSpeed
	t.sets++
}

type fakeSource []entity.ITrain

func (s fakeSource) Trains() []entity.ITrain { return s }

// newTrainOn 在edge上放置一节车厢，车头位于head，车尾位于tail，朝向为Forward
func newTrainOn(id int32, g *graph.Graph, edge int32, head, tail float64, speed float64) *fakeTrain {
	e := g.Edge(edge)
	return &fakeTrain{
		id: id,
		g:  g,
		carriages: []entity.ICarriage{&fakeCarriage{
			leading:  &graph.TravellingPoint{Edge: e, Position: head, Dir: graph.Forward},
			trailing: &graph.TravellingPoint{Edge: e, Position: tail, Dir: graph.Forward},
		}},
		speed:        speed,
		targetSpeed:  speed,
		throttle:     1,
		maxSpeed:     20,
		acceleration: 1,
	}
}

// 1 --10--> 2 <--11-- 3 --12--> 4
// 2 --13--> 5
func lineGraph(t *testing.T) *graph.Graph {
	g, err := graph.New(input.Network{
		ID: 1,
		Nodes: []input.Node{
			{ID: 1, X: 0, Y: 0},
			{ID: 2, X: 1000, Y: 0},
			{ID: 3, X: 2000, Y: 0},
			{ID: 4, X: 3000, Y: 0},
			{ID: 5, X: 1000, Y: -1000},
		},
		Edges: []input.Edge{
			{ID: 10, A: 1, B: 2},
			{ID: 11, A: 3, B: 2},
			{ID: 12, A: 3, B: 4},
			{ID: 13, A: 2, B: 5},
		},
	})
	require.NoError(t, err)
	return g
}

// 1 -1-> 2 -2-> 3 -3-> 4 -4-> 1，每条边长100
func loopGraph(t *testing.T) *graph.Graph {
	g, err := graph.New(input.Network{
		ID: 2,
		Nodes: []input.Node{
			{ID: 1, X: 0, Y: 0},
			{ID: 2, X: 100, Y: 0},
			{ID: 3, X: 100, Y: 100},
			{ID: 4, X: 0, Y: 100},
		},
		Edges: []input.Edge{
			{ID: 1, A: 1, B: 2},
			{ID: 2, A: 2, B: 3},
			{ID: 3, A: 3, B: 4},
			{ID: 4, A: 4, B: 1},
		},
	})
	require.NoError(t, err)
	return g
}

// pick 在道岔处选择指定ID的出口，没有分支时直行
func pick(id int32) graph.Steer {
	return graph.SteerFunc(func(node *graph.Node, from *graph.Edge, exits []*graph.Edge) *graph.Edge {
		for _, e := range exits {
			if e.ID() == id {
				return e
			}
		}
		return graph.StraightOnly(node, from, exits)
	})
}

// obstacles 构造占用索引
func obstacles(points ...*graph.TravellingPoint) map[*graph.Edge][]*graph.TravellingPoint {
	m := make(map[*graph.Edge][]*graph.TravellingPoint)
	for _, p := range points {
		m[p.Edge] = append(m[p.Edge], p)
	}
	return m
}
