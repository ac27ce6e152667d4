package input

import (
	"context"
	"fmt"
	"os"

	"github.com/tsinghua-fib-lab/movingblock-sim/utils/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v2"
)

// Input 输入数据
// 功能：存储仿真所需的轨道网络与列车数据，支持从文件或MongoDB加载
type Input struct {
	Networks []Network `yaml:"networks"`
	Trains   []Train   `yaml:"trains"`
}

// Init 加载数据
// 功能：根据配置加载轨道网络与列车数据
// 参数：ctx-上下文，c-配置对象
// 返回：加载完成的输入数据与错误
// 算法说明：
// 1. 文件优先：InputPath.File非空时从YAML文件读取
// 2. 否则连接MongoDB，从对应集合读取全部文档（每个文档为一个网络或一辆列车）
// 3. 检查ID唯一性
func Init(ctx context.Context, c config.Config) (*Input, error) {
	var client *mongo.Client
	if c.Input.URI != "" {
		var err error
		client, err = mongo.Connect(ctx, options.Client().ApplyURI(c.Input.URI))
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		defer client.Disconnect(context.Background())
	}

	res := &Input{}
	var err error
	res.Networks, err = load(ctx, client, c.Input.Network, func(in *Input) []Network { return in.Networks })
	if err != nil {
		return nil, fmt.Errorf("load networks: %w", err)
	}
	if c.Input.Trains != nil {
		res.Trains, err = load(ctx, client, *c.Input.Trains, func(in *Input) []Train { return in.Trains })
		if err != nil {
			return nil, fmt.Errorf("load trains: %w", err)
		}
	}
	if err := res.check(); err != nil {
		return nil, err
	}
	log.Infof("networks: %d, trains: %d", len(res.Networks), len(res.Trains))
	return res, nil
}

func readFile(path string) (*Input, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var res Input
	if err := yaml.UnmarshalStrict(file, &res); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &res, nil
}

// load 加载一类数据（泛型函数）
// 功能：从文件或MongoDB集合中加载数据
// 参数：client-MongoDB客户端（可为nil），p-输入路径配置，pick-从文件内容中选取对应数据
func load[T any](ctx context.Context, client *mongo.Client, p config.InputPath, pick func(*Input) []T) ([]T, error) {
	if p.File != "" {
		in, err := readFile(p.File)
		if err != nil {
			return nil, err
		}
		return pick(in), nil
	}
	if client == nil {
		return nil, fmt.Errorf("neither file nor mongo uri is specified for %s.%s", p.DB, p.Col)
	}
	log.Infof("start fetching from %s.%s", p.DB, p.Col)
	cur, err := client.Database(p.DB).Collection(p.Col).Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var res []T
	if err := cur.All(ctx, &res); err != nil {
		return nil, err
	}
	log.Infof("finish fetching from %s.%s: %d documents", p.DB, p.Col, len(res))
	return res, nil
}

// check 检查数据正确性：ID唯一、列车所在网络存在
func (in *Input) check() error {
	networkIDs := make(map[int32]struct{}, len(in.Networks))
	for _, n := range in.Networks {
		if _, ok := networkIDs[n.ID]; ok {
			return fmt.Errorf("networks have duplicated id %d", n.ID)
		}
		networkIDs[n.ID] = struct{}{}
	}
	trainIDs := make(map[int32]struct{}, len(in.Trains))
	for _, t := range in.Trains {
		if _, ok := trainIDs[t.ID]; ok {
			return fmt.Errorf("trains have duplicated id %d", t.ID)
		}
		trainIDs[t.ID] = struct{}{}
		if _, ok := networkIDs[t.Network]; !ok {
			return fmt.Errorf("train %d: network %d not found", t.ID, t.Network)
		}
	}
	return nil
}
