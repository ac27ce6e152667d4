package config

// InputPath 指定输入数据来源的配置（MongoDB、文件系统）
// 说明：File非空时优先从文件读取，否则从MongoDB的{db}.{col}读取
type InputPath struct {
	DB   string `yaml:"db,omitempty"`   // 数据库名
	Col  string `yaml:"col,omitempty"`  // 集合名
	File string `yaml:"file,omitempty"` // 文件路径（优先级高于MongoDB）
}

// Input 指定模拟器所有输入数据的配置项
type Input struct {
	URI     string     `yaml:"uri,omitempty"`    // MongoDB连接字符串
	Network InputPath  `yaml:"network"`          // 轨道网络
	Trains  *InputPath `yaml:"trains,omitempty"` // 列车
}

// ControlStep 指定模拟器模拟时间范围和间隔的配置项
type ControlStep struct {
	Start    int32   `yaml:"start"`    // 开始步数
	Total    int32   `yaml:"total"`    // 总步数
	Interval float64 `yaml:"interval"` // 每步的时间间隔（秒）
}

// Control 模拟器控制配置
type Control struct {
	Step ControlStep `yaml:"step"`
	Seed uint64      `yaml:"seed,omitempty"` // 随机数种子
}

// SpacingPath 移动闭塞配置文件位置
type SpacingPath struct {
	Path string `yaml:"path"`
}

// Admin 管理接口配置
type Admin struct {
	Listen    string         `yaml:"listen,omitempty"`    // 监听地址，为空则不启动
	Operators map[string]int `yaml:"operators,omitempty"` // 操作员令牌 -> 权限等级
}

// Config YAML配置文件的根结构
type Config struct {
	Input   Input       `yaml:"input"`           // 输入
	Control Control     `yaml:"control"`         // 模拟过程控制
	Spacing SpacingPath `yaml:"spacing"`         // 移动闭塞
	Admin   Admin       `yaml:"admin,omitempty"` // 管理接口
}
