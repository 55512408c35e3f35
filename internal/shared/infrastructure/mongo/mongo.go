package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/peppone-choi/opensamguk-sub002/internal/shared/logs"
	"github.com/peppone-choi/opensamguk-sub002/internal/shared/serverconfig"
)

var client *mongo.Client

// Open 连接 MongoDB 并 ping 验证可用。
func Open(ctx context.Context) error {
	c := serverconfig.Conf.MongoDB

	timeout := time.Duration(c.ConnectTimeoutS) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	cli, err := mongo.Connect(options.Client().
		ApplyURI(c.URI).
		SetConnectTimeout(timeout))
	if err != nil {
		return err
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := cli.Ping(pingCtx, readpref.Primary()); err != nil {
		return err
	}

	client = cli
	logs.Info("open mongo success")
	return nil
}

func Close(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

// Database 返回配置指定的业务数据库。
func Database() *mongo.Database {
	return client.Database(serverconfig.Conf.MongoDB.Database)
}
