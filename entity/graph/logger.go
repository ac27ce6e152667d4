package graph

import "github.com/sirupsen/logrus"

// log 轨道图模块的日志记录器
var log = logrus.WithField("module", "graph")
