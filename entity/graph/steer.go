package graph

// Steer 道岔选择策略
// 功能：行驶点到达节点时，从候选出口中选择要驶入的边；返回nil表示无法继续
type Steer interface {
	ChooseExit(node *Node, from *Edge, exits []*Edge) *Edge
}

// SteerFunc 函数形式的Steer
type SteerFunc func(node *Node, from *Edge, exits []*Edge) *Edge

func (f SteerFunc) ChooseExit(node *Node, from *Edge, exits []*Edge) *Edge {
	return f(node, from, exits)
}

// StraightOnly 只在没有分支时继续前进
var StraightOnly SteerFunc = func(_ *Node, _ *Edge, exits []*Edge) *Edge {
	if len(exits) == 1 {
		return exits[0]
	}
	return nil
}

func choose(steer Steer, node *Node, from *Edge, exits []*Edge) *Edge {
	if len(exits) == 0 {
		return nil
	}
	if steer == nil {
		return StraightOnly(node, from, exits)
	}
	return steer.ChooseExit(node, from, exits)
}
