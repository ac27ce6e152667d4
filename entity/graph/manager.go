package graph

import (
	"fmt"

	"git.fiblab.net/general/common/v2/parallel"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/movingblock-sim/utils/input"
)

// GraphManager 轨道图管理器
// 功能：管理所有独立的轨道网络，提供创建与查找功能
type GraphManager struct {
	data   map[int32]*Graph
	graphs []*Graph
}

// NewManager 创建轨道图管理器实例
func NewManager() *GraphManager {
	return &GraphManager{
		data:   make(map[int32]*Graph),
		graphs: make([]*Graph, 0),
	}
}

// Init 初始化所有轨道图
// 功能：并行构建所有轨道网络，建立ID映射
// 参数：networks-轨道网络输入数据列表
// 返回：任一网络构建失败时返回错误
func (m *GraphManager) Init(networks []input.Network) error {
	type result struct {
		g   *Graph
		err error
	}
	results := parallel.GoMap(networks, func(n input.Network) result {
		g, err := New(n)
		return result{g, err}
	})
	for _, r := range results {
		if r.err != nil {
			return r.err
		}
	}
	m.graphs = lo.Map(results, func(r result, _ int) *Graph { return r.g })
	m.data = lo.SliceToMap(m.graphs, func(g *Graph) (int32, *Graph) {
		return g.id, g
	})
	if len(m.data) != len(m.graphs) {
		return fmt.Errorf("duplicated network id")
	}
	for _, g := range m.graphs {
		log.Infof("network %d: %d nodes, %d edges", g.id, len(g.nodes), len(g.edges))
	}
	return nil
}

// Get 根据ID获取轨道图，如果不存在则panic
func (m *GraphManager) Get(id int32) *Graph {
	if g, ok := m.data[id]; !ok {
		log.Panicf("no id %d in graph data", id)
		return nil
	} else {
		return g
	}
}

// GetOrError 根据ID获取轨道图，如果不存在则返回错误
func (m *GraphManager) GetOrError(id int32) (*Graph, error) {
	if g, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("no id %d in graph data", id)
	} else {
		return g, nil
	}
}
