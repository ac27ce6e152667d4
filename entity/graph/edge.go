package graph

import (
	"fmt"
	"sort"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/samber/lo"
)

const (
	bezierSegments = 16 // 贝塞尔曲线离散化的分段数
)

// Edge 轨道边
// 功能：连接两个节点的一段轨道，几何形状为折线（可由贝塞尔曲线离散得到）
// 说明：边上的位置s为从A端起算的弧长，s∈[0, Length]，沿边单调
type Edge struct {
	id     int32
	a, b   *Node
	line   []geometry.Point // 中心线折线，首尾分别为A、B节点
	lineLs []float64        // 折线各点对应的累计长度，首项为0，末项为length
	length float64          // 边长度
}

// newEdge 创建轨道边
// 功能：根据端点与形状点构造边的几何，计算弧长表
// 参数：id-边ID，a,b-端点，points-中间折线点，controls-贝塞尔控制点，length-显式长度（<=0表示按几何计算）
// 返回：边实例与错误
// 算法说明：
// 1. 若给定贝塞尔控制点，按de Casteljau算法离散为折线，否则直接使用折线点
// 2. 计算折线累计长度
// 3. 若给定显式长度，则按比例缩放累计长度表，使s坐标与给定长度一致
func newEdge(id int32, a, b *Node, points, controls []geometry.Point, length float64) (*Edge, error) {
	if a == b {
		return nil, fmt.Errorf("edge %d: both ends at node %d", id, a.id)
	}
	if len(points) > 0 && len(controls) > 0 {
		return nil, fmt.Errorf("edge %d: points and bezier controls are mutually exclusive", id)
	}
	e := &Edge{id: id, a: a, b: b}
	switch {
	case len(controls) > 0:
		e.line = sampleBezier(append(append([]geometry.Point{a.pos}, controls...), b.pos), bezierSegments)
	default:
		e.line = append(append([]geometry.Point{a.pos}, points...), b.pos)
	}
	e.lineLs = geometry.GetPolylineLengths2D(e.line)
	geomLength := e.lineLs[len(e.lineLs)-1]
	switch {
	case length > 0 && geomLength > 0:
		k := length / geomLength
		e.lineLs = lo.Map(e.lineLs, func(l float64, _ int) float64 { return l * k })
	case length > 0:
		// 端点重合，按均匀分布伪造弧长
		e.lineLs = lo.Map(e.lineLs, func(_ float64, i int) float64 {
			return length * float64(i) / float64(len(e.lineLs)-1)
		})
	case geomLength <= 0:
		return nil, fmt.Errorf("edge %d: non-positive length", id)
	}
	e.length = e.lineLs[len(e.lineLs)-1]
	return e, nil
}

// sampleBezier 使用de Casteljau算法将贝塞尔曲线离散为折线
func sampleBezier(ctrl []geometry.Point, segments int) []geometry.Point {
	line := make([]geometry.Point, 0, segments+1)
	buf := make([]geometry.Point, len(ctrl))
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		copy(buf, ctrl)
		for n := len(buf) - 1; n > 0; n-- {
			for j := 0; j < n; j++ {
				buf[j] = geometry.Blend(buf[j], buf[j+1], t)
			}
		}
		line = append(line, buf[0])
	}
	return line
}

func (e *Edge) String() string {
	return fmt.Sprintf("Edge{id=%d, %d-%d, length=%.2f}", e.id, e.a.id, e.b.id, e.length)
}

// 获取边ID
func (e *Edge) ID() int32 {
	return e.id
}

// 获取边长度
func (e *Edge) Length() float64 {
	return e.length
}

// 获取A端节点
func (e *Edge) A() *Node {
	return e.a
}

// 获取B端节点
func (e *Edge) B() *Node {
	return e.b
}

// Other 获取边的另一端节点，n不是端点时返回nil
func (e *Edge) Other(n *Node) *Node {
	switch n {
	case e.a:
		return e.b
	case e.b:
		return e.a
	default:
		return nil
	}
}

// 获取边的中心线
func (e *Edge) Line() []geometry.Point {
	return e.line
}

// GetPositionByS 将边上的s坐标转换为xy坐标
func (e *Edge) GetPositionByS(s float64) (pos geometry.Point) {
	if s < 0 || s > e.length {
		log.Debugf("get position with s %v out of range{0,%v}", s, e.length)
		s = lo.Clamp(s, 0, e.length)
	}
	if i := sort.SearchFloat64s(e.lineLs, s); i == 0 {
		pos = e.line[0]
	} else {
		sHigh, sLow := e.lineLs[i], e.lineLs[i-1]
		pos = geometry.Blend(e.line[i-1], e.line[i], (s-sLow)/(sHigh-sLow))
	}
	return
}
