package movingblock

import "github.com/sirupsen/logrus"

// log 移动闭塞模块的日志记录器
var log = logrus.WithField("module", "movingblock")
