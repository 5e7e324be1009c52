package main

import (
	"context"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/higo-analytics/api/internal/config"
	"github.com/sngm3741/higo-analytics/api/internal/server"
)

func main() {
	// .env はローカル開発用。無ければ環境変数のみで動く。
	_ = godotenv.Load()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		cfg.ServerLog.Fatal().Err(err).Msg("MongoDB 接続に失敗しました")
	}

	app := server.New(cfg, client)
	if err := app.Run(); err != nil {
		cfg.ServerLog.Fatal().Err(err).Msg("サーバー起動に失敗しました")
	}
}
