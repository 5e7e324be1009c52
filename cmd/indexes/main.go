// indexes は records コレクションへ必要なインデックス群を冪等に張る運用ツール。
package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/higo-analytics/api/internal/config"
	mongodoc "github.com/sngm3741/higo-analytics/api/internal/infrastructure/mongo"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logg := cfg.ServerLog

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logg.Fatal().Err(err).Msg("MongoDB 接続に失敗しました")
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	names, err := mongodoc.EnsureIndexes(context.Background(), client.Database(cfg.MongoDatabase), cfg.RecordCollection)
	if err != nil {
		logg.Fatal().Err(err).Msg("インデックス作成に失敗しました")
	}
	logg.Info().Strs("indexes", names).Msg("インデックスを作成しました")
}
