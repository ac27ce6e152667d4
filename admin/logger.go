package admin

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "admin")
