package main

import (
	"context"
	"encoding/base64"
	"flag"
	"os"
	"os/signal"
	"syscall"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/movingblock-sim/admin"
	"github.com/tsinghua-fib-lab/movingblock-sim/task"
	"github.com/tsinghua-fib-lab/movingblock-sim/utils/config"
	"github.com/tsinghua-fib-lab/movingblock-sim/utils/input"
	"gopkg.in/yaml.v2"
)

var (
	// 配置文件路径
	configPath = flag.String("config", "", "config file path")
	// 配置文件Base64编码后的数据
	configData = flag.String("config-data", "", "config file base64 encoded data")
	// 管理接口监听地址，覆盖配置文件中的admin.listen
	listen = flag.String("listen", "", "admin HTTP listening address (overrides admin.listen), e.g. :51102")

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", "main")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	// log: 运行时才修改
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}
	// 获取配置
	var c config.Config
	var file []byte
	var err error
	if *configPath != "" {
		file, err = os.ReadFile(*configPath)
		if err != nil {
			log.Panicf("config file load err: %v", err)
		}
	} else if *configData != "" {
		file, err = base64.StdEncoding.DecodeString(*configData)
		if err != nil {
			log.Panicf("config data load err: %v", err)
		}
	} else {
		log.Panic("config file or config data must be specified")
	}
	if err := yaml.UnmarshalStrict(file, &c); err != nil {
		log.Panicf("config file load err: %v", err)
	}
	log.Infof("%+v", c)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	in, err := input.Init(ctx, c)
	if err != nil {
		log.Panicf("input load err: %v", err)
	}
	store := config.NewSpacingStore(c.Spacing.Path)
	t := task.NewContext(c, in, store)

	addr := c.Admin.Listen
	if *listen != "" {
		addr = *listen
	}
	if addr != "" {
		server := admin.New(store, c.Admin.Operators)
		go func() {
			if err := server.ListenAndServe(addr); err != nil {
				log.Errorf("%v", err)
			}
		}()
		defer server.Shutdown()
	}

	go func() {
		<-ctx.Done()
		log.Info("interrupted, stopping after current step")
		t.Close()
	}()

	if err := t.Run(); err != nil {
		log.Panicf("%v", err)
	}
}
