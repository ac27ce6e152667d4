package config

// RuntimeConfig 运行时配置
// 功能：存储仿真运行时的配置信息
type RuntimeConfig struct {
	All Config  // 全部配置
	C   Control // 全局控制配置
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 说明：未指定时间间隔时默认为1秒
func NewRuntimeConfig(config Config) *RuntimeConfig {
	rc := &RuntimeConfig{}

	if config.Control.Step.Interval <= 0 {
		config.Control.Step.Interval = 1
	}
	rc.All = config
	rc.C = config.Control

	return rc
}
