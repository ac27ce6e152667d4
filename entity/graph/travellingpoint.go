package graph

import (
	"fmt"
	"math"
)

const (
	maxTravelCrossings = 1000 // 单次移动最多跨越的边数
)

// Direction 行进方向（相对于边的A→B方向）
type Direction int8

const (
	Forward  Direction = 1  // 由A端驶向B端
	Backward Direction = -1 // 由B端驶向A端
)

// Reverse 获取相反方向
func (d Direction) Reverse() Direction {
	return -d
}

// TravellingPoint 轨道图上的行驶点
// 功能：描述列车端点或扫描游标在轨道图上的位置与朝向
// 说明：Position为从Edge的A端起算的弧长；Dir为朝向，Node1为来向节点，Node2为去向节点
type TravellingPoint struct {
	Edge     *Edge
	Position float64
	Dir      Direction
}

func (p *TravellingPoint) String() string {
	if p.Edge == nil {
		return "TravellingPoint{nil}"
	}
	return fmt.Sprintf("TravellingPoint{edge=%d, s=%.3f, dir=%d}", p.Edge.id, p.Position, p.Dir)
}

// Copy 复制行驶点，副本的修改不影响原行驶点
func (p *TravellingPoint) Copy() *TravellingPoint {
	c := *p
	return &c
}

// Reversed 获取同一位置但朝向相反的行驶点副本
func (p *TravellingPoint) Reversed() *TravellingPoint {
	c := p.Copy()
	c.Dir = c.Dir.Reverse()
	return c
}

// Node1 来向节点
func (p *TravellingPoint) Node1() *Node {
	if p.Edge == nil {
		return nil
	}
	if p.Dir == Backward {
		return p.Edge.b
	}
	return p.Edge.a
}

// Node2 去向节点
func (p *TravellingPoint) Node2() *Node {
	if p.Edge == nil {
		return nil
	}
	if p.Dir == Backward {
		return p.Edge.a
	}
	return p.Edge.b
}

// DistanceToEnd 沿朝向到当前边末端的距离
func (p *TravellingPoint) DistanceToEnd() float64 {
	if p.Dir == Backward {
		return p.Position
	}
	return p.Edge.length - p.Position
}

// GapTo 同一条边上位置s相对本点沿朝向的带符号距离，正值表示在前方
func (p *TravellingPoint) GapTo(s float64) float64 {
	return (s - p.Position) * float64(p.Dir)
}

// Travel 沿轨道图移动行驶点
// 功能：distance为正时沿朝向前进，为负时逆朝向后退，到达节点时由steer选择下一条边
// 参数：distance-移动距离，steer-道岔选择策略
// 返回：实际移动的带符号距离
// 算法说明：
// 1. 计算当前边上沿运动方向剩余的距离
// 2. 剩余移动距离不足以到达端点时，直接更新位置并返回
// 3. 否则移动到端点，由steer在端点的出口中选择下一条边
// 4. 无可选出口时停在端点，返回已移动的距离
// 5. 进入新边后，运动方向为远离该端点，朝向按运动方向与distance符号换算
// 说明：恰好到达端点时也会跨入下一条边，因此移动到边末端即可完成换边
func (p *TravellingPoint) Travel(distance float64, steer Steer) float64 {
	if p.Edge == nil {
		return 0
	}
	sign := 1.
	if distance < 0 {
		sign = -1
	}
	remaining := math.Abs(distance)
	travelled := 0.
	for range maxTravelCrossings {
		moving := Direction(sign) * p.Dir
		var toEnd float64
		if moving == Forward {
			toEnd = p.Edge.length - p.Position
		} else {
			toEnd = p.Position
		}
		if remaining < toEnd {
			p.Position += float64(moving) * remaining
			travelled += remaining
			break
		}
		travelled += toEnd
		remaining -= toEnd
		var node *Node
		if moving == Forward {
			p.Position = p.Edge.length
			node = p.Edge.b
		} else {
			p.Position = 0
			node = p.Edge.a
		}
		next := choose(steer, node, p.Edge, node.Exits(p.Edge))
		if next == nil || next.Other(node) == nil {
			break
		}
		if next.a == node {
			p.Position = 0
			moving = Forward
		} else {
			p.Position = next.length
			moving = Backward
		}
		p.Edge = next
		p.Dir = moving * Direction(sign)
	}
	return sign * travelled
}
