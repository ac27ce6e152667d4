package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync/atomic"

	"gopkg.in/yaml.v2"
)

// Spacing 移动闭塞配置
// 说明：距离单位与轨道长度单位一致
type Spacing struct {
	Enabled               bool    `yaml:"enabled" json:"enabled"`                             // 是否启用移动闭塞
	MaxScanDistance       float64 `yaml:"maxScanDistance" json:"maxScanDistance"`             // 扫描距离下限，实际扫描距离不小于该值
	SlowdownDistance      float64 `yaml:"slowdownDistance" json:"slowdownDistance"`           // 开始减速的距离
	EmergencyStopDistance float64 `yaml:"emergencyStopDistance" json:"emergencyStopDistance"` // 紧急制动距离（保留项，决策中未使用）
	FinalStopDistance     float64 `yaml:"finalStopDistance" json:"finalStopDistance"`         // 最小安全间距，低于此距离强制停车
	DebugLogging          bool    `yaml:"debugLogging" json:"debugLogging"`                   // 是否输出限速日志
}

// DefaultSpacing 内置默认配置
func DefaultSpacing() Spacing {
	return Spacing{
		Enabled:               true,
		MaxScanDistance:       128,
		SlowdownDistance:      60,
		EmergencyStopDistance: 30,
		FinalStopDistance:     5,
		DebugLogging:          false,
	}
}

// LoadSpacing 读取移动闭塞配置文件
// 功能：以base为底读取配置文件，读取失败时保留base，并总是把生效的配置写回文件
// 参数：path-配置文件路径，base-当前生效的配置（启动时为默认配置）
// 返回：生效的配置
// 说明：写回文件可以修复缺失或损坏的配置文件，并补全缺失的字段；YAML兼容JSON格式
func LoadSpacing(path string, base Spacing) Spacing {
	s := base
	if file, err := os.ReadFile(path); err == nil {
		parsed := base
		if err := yaml.Unmarshal(file, &parsed); err != nil {
			log.Errorf("failed to parse spacing config %s, use current values: %v", path, err)
		} else if err := parsed.validate(); err != nil {
			log.Errorf("invalid spacing config %s, use current values: %v", path, err)
		} else {
			s = parsed
		}
	} else if !os.IsNotExist(err) {
		log.Errorf("failed to read spacing config %s, use current values: %v", path, err)
	}
	if err := SaveSpacing(path, s); err != nil {
		log.Errorf("failed to save spacing config %s: %v", path, err)
	}
	return s
}

// SaveSpacing 保存移动闭塞配置文件
func SaveSpacing(path string, s Spacing) error {
	out, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, out, 0o644)
}

func (s Spacing) validate() error {
	for name, v := range map[string]float64{
		"maxScanDistance":       s.MaxScanDistance,
		"slowdownDistance":      s.SlowdownDistance,
		"emergencyStopDistance": s.EmergencyStopDistance,
		"finalStopDistance":     s.FinalStopDistance,
	} {
		if !(v > 0) || math.IsInf(v, 1) {
			return fmt.Errorf("%s must be a positive finite number, got %v", name, v)
		}
	}
	return nil
}

// SpacingStore 移动闭塞配置快照
// 功能：持有当前生效的配置，重载时整体原子替换，扫描过程中读到的快照不会变化
type SpacingStore struct {
	path    string
	current atomic.Pointer[Spacing]
}

// NewSpacingStore 从文件创建配置快照，path为空时不读写文件
func NewSpacingStore(path string) *SpacingStore {
	st := &SpacingStore{path: path}
	s := DefaultSpacing()
	if path != "" {
		s = LoadSpacing(path, s)
	}
	st.current.Store(&s)
	return st
}

// NewStaticSpacingStore 使用给定配置创建不关联文件的配置快照
func NewStaticSpacingStore(s Spacing) *SpacingStore {
	st := &SpacingStore{}
	st.current.Store(&s)
	return st
}

// Get 获取当前配置快照
func (st *SpacingStore) Get() Spacing {
	return *st.current.Load()
}

// Reload 重新读取配置文件并原子替换快照
// 返回：生效的配置
func (st *SpacingStore) Reload() Spacing {
	if st.path == "" {
		return st.Get()
	}
	s := LoadSpacing(st.path, st.Get())
	st.current.Store(&s)
	return s
}
