package movingblock

import (
	"math"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/movingblock-sim/entity"
	"github.com/tsinghua-fib-lab/movingblock-sim/utils/config"
)

const (
	minAcceleration     = .01  // 计算时使用的最小加速度，避免除零
	stationaryThreshold = .001 // 速度绝对值低于该值视为静止
	brakingScanFactor   = 2    // 扫描距离至少为制动距离的倍数
	slowdownScanFactor  = 1.2  // 扫描距离至少为减速距离的倍数
	safetyFactor        = .85  // 安全速度的余量系数
)

// DecisionType 限速决策类型
type DecisionType int

const (
	DecisionNone DecisionType = iota // 不干预
	DecisionCap                      // 限速
	DecisionStop                     // 强制停车
)

func (t DecisionType) String() string {
	return [...]string{"none", "cap", "stop"}[t]
}

// Decision 限速决策
type Decision struct {
	Type     DecisionType
	Speed    float64 // 限速后的速度（带符号），仅DecisionCap有效
	Distance float64 // 障碍距离
}

// Kinematics 决策所需的列车运动状态
type Kinematics struct {
	Speed        float64 // 当前速度（带符号）
	TargetSpeed  float64 // 目标速度（带符号）
	Acceleration float64 // 加速/制动能力
	TopSpeed     float64 // 最大速度 × 油门
}

// kinematicsOf 读取列车的运动状态
func kinematicsOf(t entity.ITrain) Kinematics {
	return Kinematics{
		Speed:        t.Speed(),
		TargetSpeed:  t.TargetSpeed(),
		Acceleration: t.Acceleration(),
		TopSpeed:     t.MaxSpeed() * t.Throttle(),
	}
}

// Stationary 当前速度与目标速度均接近0
func (k Kinematics) Stationary() bool {
	return math.Abs(k.Speed) < stationaryThreshold && math.Abs(k.TargetSpeed) < stationaryThreshold
}

// ScanBound 计算扫描距离
// 功能：取2倍制动距离、1.2倍减速距离与配置的最大扫描距离三者的最大值
// 说明：maxScanDistance实际上是扫描距离的下限
func ScanBound(speed, acceleration float64, cfg config.Spacing) float64 {
	speed = math.Abs(speed)
	brakingDistance := speed * speed / (2 * math.Max(minAcceleration, acceleration))
	return lo.Max([]float64{
		brakingDistance * brakingScanFactor,
		cfg.SlowdownDistance * slowdownScanFactor,
		cfg.MaxScanDistance,
	})
}

// SafeSpeed 在distance内停在最小安全间距之前所允许的最大速度
func SafeSpeed(distance, acceleration, finalStopDistance float64) float64 {
	available := distance - finalStopDistance
	if available <= 0 {
		return 0
	}
	return math.Sqrt(2 * math.Max(minAcceleration, acceleration) * available * safetyFactor)
}

// Govern 根据障碍距离做出限速决策
// 功能：把扫描结果转换为不干预、限速或强制停车
// 参数：k-列车运动状态，distance/found-扫描结果，bound-扫描距离，cfg-配置快照
// 返回：限速决策
// 算法说明：
// 1. 未找到障碍或障碍超出扫描距离：不干预
// 2. 障碍距离不超过最小安全间距：强制停车
// 3. 计算安全速度sqrt(2·a·(d-finalStop)·0.85)
// 4. 安全速度高于最大速度×油门：不干预
// 5. 当前速度超过安全速度：保持方向限速到安全速度
func Govern(k Kinematics, distance float64, found bool, bound float64, cfg config.Spacing) Decision {
	if !found || distance >= bound {
		return Decision{Type: DecisionNone}
	}
	if distance <= cfg.FinalStopDistance {
		return Decision{Type: DecisionStop, Distance: distance}
	}
	safe := SafeSpeed(distance, k.Acceleration, cfg.FinalStopDistance)
	if safe > k.TopSpeed {
		return Decision{Type: DecisionNone, Distance: distance}
	}
	if math.Abs(k.Speed) > safe {
		return Decision{Type: DecisionCap, Speed: math.Copysign(safe, k.Speed), Distance: distance}
	}
	return Decision{Type: DecisionNone, Distance: distance}
}

// Apply 将决策写入列车的当前速度与目标速度
func (d Decision) Apply(t entity.ITrain) {
	switch d.Type {
	case DecisionStop:
		t.SetSpeed(0, 0)
	case DecisionCap:
		t.SetSpeed(d.Speed, d.Speed)
	}
}
