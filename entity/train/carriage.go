package train

import (
	"fmt"

	"github.com/tsinghua-fib-lab/movingblock-sim/entity/graph"
)

// Carriage 车厢
// 说明：前后端行驶点的朝向与列车车头朝向一致
type Carriage struct {
	leading, trailing *graph.TravellingPoint
}

func (c *Carriage) String() string {
	return fmt.Sprintf("Carriage{%v, %v}", c.leading, c.trailing)
}

// LeadingPoint 车厢前端行驶点
func (c *Carriage) LeadingPoint() *graph.TravellingPoint {
	return c.leading
}

// TrailingPoint 车厢后端行驶点
func (c *Carriage) TrailingPoint() *graph.TravellingPoint {
	return c.trailing
}

// points 车厢的全部行驶点
func (c *Carriage) points() []*graph.TravellingPoint {
	return []*graph.TravellingPoint{c.leading, c.trailing}
}
