package input

// Point 平面坐标（米）
type Point struct {
	X float64 `yaml:"x" bson:"x"`
	Y float64 `yaml:"y" bson:"y"`
}

// Node 轨道节点输入
type Node struct {
	ID int32   `yaml:"id" bson:"id"`
	X  float64 `yaml:"x" bson:"x"`
	Y  float64 `yaml:"y" bson:"y"`
}

// Edge 轨道边输入
// 说明：Points与Bezier二选一，均为空时为直线；Length>0时以该值作为边长度
type Edge struct {
	ID     int32   `yaml:"id" bson:"id"`
	A      int32   `yaml:"a" bson:"a"`
	B      int32   `yaml:"b" bson:"b"`
	Length float64 `yaml:"length,omitempty" bson:"length,omitempty"`
	Points []Point `yaml:"points,omitempty" bson:"points,omitempty"` // 中间折线点
	Bezier []Point `yaml:"bezier,omitempty" bson:"bezier,omitempty"` // 贝塞尔控制点（不含端点）
}

// Network 独立轨道网络输入
type Network struct {
	ID    int32  `yaml:"id" bson:"id"`
	Nodes []Node `yaml:"nodes" bson:"nodes"`
	Edges []Edge `yaml:"edges" bson:"edges"`
}

// Train 列车输入
type Train struct {
	ID      int32  `yaml:"id" bson:"id"`
	Name    string `yaml:"name,omitempty" bson:"name,omitempty"`
	Network int32  `yaml:"network" bson:"network"`

	// 车头位置
	Edge     int32   `yaml:"edge" bson:"edge"`
	Position float64 `yaml:"position" bson:"position"`
	Dir      int8    `yaml:"dir" bson:"dir"` // 1: A→B，-1: B→A

	// 路径：显式给出边序列，或给出终点节点由路径规划生成
	Route       []int32 `yaml:"route,omitempty" bson:"route,omitempty"`
	Destination *int32  `yaml:"destination,omitempty" bson:"destination,omitempty"`

	Carriages      int     `yaml:"carriages" bson:"carriages"`
	CarriageLength float64 `yaml:"carriage_length" bson:"carriage_length"`
	CarriageGap    float64 `yaml:"carriage_gap,omitempty" bson:"carriage_gap,omitempty"`

	MaxSpeed     float64 `yaml:"max_speed" bson:"max_speed"`
	Acceleration float64 `yaml:"acceleration" bson:"acceleration"`
	Throttle     float64 `yaml:"throttle,omitempty" bson:"throttle,omitempty"` // 为0时随机采样
	Speed        float64 `yaml:"speed,omitempty" bson:"speed,omitempty"`       // 初始速度（带符号）

	Backwards bool `yaml:"backwards,omitempty" bson:"backwards,omitempty"`
	Derailed  bool `yaml:"derailed,omitempty" bson:"derailed,omitempty"`
}
