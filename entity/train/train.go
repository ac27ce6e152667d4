package train

import (
	"fmt"
	"math"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/movingblock-sim/entity"
	"github.com/tsinghua-fib-lab/movingblock-sim/entity/graph"
	"github.com/tsinghua-fib-lab/movingblock-sim/entity/graph/route"
	"github.com/tsinghua-fib-lab/movingblock-sim/utils/container"
	"github.com/tsinghua-fib-lab/movingblock-sim/utils/input"
)

const (
	moveEpsilon = 1e-6 // 实际位移少于期望位移超过该值时视为受阻
)

// Train 列车
// 功能：由若干节车厢组成，沿轨道图行驶，每步先计算原生速度，再由移动闭塞修正，最后积分位置
type Train struct {
	container.IncrementalItemBase

	id   int32
	name string

	g         *graph.Graph
	route     *route.Route // 为nil时只在无分支处前进
	carriages []*Carriage
	views     []entity.ICarriage

	speed, targetSpeed     float64 // 带符号，倒行时为负
	throttle               float64
	maxSpeed, acceleration float64
	backwards              bool
	derailed               bool
	blocked                bool // 前方无路可走

	distance float64 // 累计行驶距离
}

// newTrain 根据输入创建列车
// 功能：确定车头位置与路径，沿车尾方向依次布置车厢
// 参数：in-列车输入，g-所在轨道图，throttle-油门比例
// 返回：列车与错误
func newTrain(in input.Train, g *graph.Graph, throttle float64) (*Train, error) {
	if in.Carriages <= 0 {
		return nil, fmt.Errorf("train %d: no carriages", in.ID)
	}
	if in.CarriageLength <= 0 || in.CarriageGap < 0 {
		return nil, fmt.Errorf("train %d: invalid carriage length %v or gap %v", in.ID, in.CarriageLength, in.CarriageGap)
	}
	e, err := g.EdgeOrError(in.Edge)
	if err != nil {
		return nil, fmt.Errorf("train %d: %w", in.ID, err)
	}
	if in.Position < 0 || in.Position > e.Length() {
		return nil, fmt.Errorf("train %d: position %v out of edge %d [0, %v]", in.ID, in.Position, e.ID(), e.Length())
	}
	var dir graph.Direction
	switch in.Dir {
	case 1:
		dir = graph.Forward
	case -1:
		dir = graph.Backward
	default:
		return nil, fmt.Errorf("train %d: invalid dir %d", in.ID, in.Dir)
	}
	head := &graph.TravellingPoint{Edge: e, Position: in.Position, Dir: dir}
	t := &Train{
		id:           in.ID,
		name:         in.Name,
		g:            g,
		speed:        in.Speed,
		targetSpeed:  in.Speed,
		throttle:     throttle,
		maxSpeed:     in.MaxSpeed,
		acceleration: in.Acceleration,
		backwards:    in.Backwards,
		derailed:     in.Derailed,
	}
	switch {
	case len(in.Route) > 0:
		if t.route, err = route.FromIDs(g, in.Route); err != nil {
			return nil, fmt.Errorf("train %d: %w", in.ID, err)
		}
	case in.Destination != nil:
		if t.route, err = route.Plan(head, g.Node(*in.Destination)); err != nil {
			return nil, fmt.Errorf("train %d: %w", in.ID, err)
		}
	}
	if err := t.place(head, in.Carriages, in.CarriageLength, in.CarriageGap); err != nil {
		return nil, err
	}
	return t, nil
}

// place 从车头开始沿车尾方向布置车厢
func (t *Train) place(head *graph.TravellingPoint, n int, length, gap float64) error {
	steer := t.Steer()
	cursor := head.Copy()
	t.carriages = make([]*Carriage, 0, n)
	for i := range n {
		c := &Carriage{leading: cursor.Copy(), trailing: cursor.Copy()}
		if moved := -c.trailing.Travel(-length, steer); moved < length-moveEpsilon {
			return fmt.Errorf("train %d: carriage %d does not fit on track (%.2f < %.2f)", t.id, i, moved, length)
		}
		t.carriages = append(t.carriages, c)
		cursor = c.trailing.Copy()
		if i < n-1 && gap > 0 {
			if moved := -cursor.Travel(-gap, steer); moved < gap-moveEpsilon {
				return fmt.Errorf("train %d: carriage %d does not fit on track", t.id, i+1)
			}
		}
	}
	t.views = lo.Map(t.carriages, func(c *Carriage, _ int) entity.ICarriage { return c })
	return nil
}

func (t *Train) String() string {
	if t.name != "" {
		return fmt.Sprintf("Train{id=%d, name=%s}", t.id, t.name)
	}
	return fmt.Sprintf("Train{id=%d}", t.id)
}

// 获取列车ID
func (t *Train) ID() int32 {
	return t.id
}

// 获取列车所在轨道图
func (t *Train) Graph() *graph.Graph {
	return t.g
}

// 获取按顺序排列的车厢，第一节为车头
func (t *Train) Carriages() []entity.ICarriage {
	return t.views
}

func (t *Train) Derailed() bool {
	return t.derailed
}

// Steer 沿路径选择道岔，没有路径时只在无分支处前进
func (t *Train) Steer() graph.Steer {
	if t.route == nil {
		return graph.StraightOnly
	}
	return t.route
}

func (t *Train) Speed() float64 {
	return t.speed
}

func (t *Train) TargetSpeed() float64 {
	return t.targetSpeed
}

func (t *Train) Throttle() float64 {
	return t.throttle
}

func (t *Train) MaxSpeed() float64 {
	return t.maxSpeed
}

func (t *Train) Acceleration() float64 {
	return t.acceleration
}

func (t *Train) Backwards() bool {
	return t.backwards
}

// Distance 累计行驶距离
func (t *Train) Distance() float64 {
	return t.distance
}

// SetSpeed 写入当前速度与目标速度
func (t *Train) SetSpeed(speed, targetSpeed float64) {
	t.speed = speed
	t.targetSpeed = targetSpeed
}

// governingPoint 行进方向上的最前端行驶点
func (t *Train) governingPoint() *graph.TravellingPoint {
	if t.backwards {
		return t.carriages[len(t.carriages)-1].trailing
	}
	return t.carriages[0].leading
}

// updateSpeed 计算原生速度
// 功能：目标速度为油门×最大速度（倒行取负），当前速度以加速度逼近目标速度
// 说明：脱轨或受阻的列车目标速度为0
func (t *Train) updateSpeed(dt float64) {
	if t.derailed {
		t.SetSpeed(0, 0)
		return
	}
	target := t.throttle * t.maxSpeed
	if t.backwards {
		target = -target
	}
	if t.blocked {
		target = 0
	}
	dv := t.acceleration * dt
	speed := t.speed
	if speed < target {
		speed = math.Min(speed+dv, target)
	} else {
		speed = math.Max(speed-dv, target)
	}
	t.SetSpeed(speed, target)
}

// move 位置积分
// 算法说明：
// 1. 先移动行进方向最前端的行驶点，得到实际位移
// 2. 其余行驶点按实际位移移动，保证车厢长度不变
// 3. 实际位移不足时说明前方为尽头或路径在分支处结束，列车停车
func (t *Train) move(dt float64) {
	if t.derailed || t.speed == 0 {
		return
	}
	steer := t.Steer()
	want := t.speed * dt
	gp := t.governingPoint()
	actual := gp.Travel(want, steer)
	for _, c := range t.carriages {
		for _, p := range c.points() {
			if p != gp {
				p.Travel(actual, steer)
			}
		}
	}
	t.distance += math.Abs(actual)
	if math.Abs(actual) < math.Abs(want)-moveEpsilon {
		t.blocked = true
		t.SetSpeed(0, 0)
		log.Infof("%v stopped at %v: no way ahead", t, gp)
	}
}
