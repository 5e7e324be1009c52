package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes は records コレクションにクエリコアが前提とするインデックス群を作成する。
// 単一フィールド・複合・テキストの各インデックスは冪等に張られる。
func EnsureIndexes(ctx context.Context, db *mongo.Database, recordCollection string) ([]string, error) {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "number", Value: 1}}},
		{Keys: bson.D{{Key: "gender", Value: 1}}},
		{Keys: bson.D{{Key: "locationType", Value: 1}}},
		{Keys: bson.D{{Key: "digitalInterest", Value: 1}}},
		{Keys: bson.D{{Key: "brandDevice", Value: 1}}},
		{Keys: bson.D{{Key: "locationName", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "updatedAt", Value: 1}}},
		{Keys: bson.D{{Key: "gender", Value: 1}, {Key: "locationType", Value: 1}}},
		{Keys: bson.D{{Key: "gender", Value: 1}, {Key: "digitalInterest", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "gender", Value: 1}}},
		{Keys: bson.D{{Key: "locationType", Value: 1}, {Key: "digitalInterest", Value: 1}}},
		{Keys: bson.D{
			{Key: "name", Value: "text"},
			{Key: "locationName", Value: "text"},
			{Key: "email", Value: "text"},
			{Key: "digitalInterest", Value: "text"},
		}},
	}

	return db.Collection(recordCollection).Indexes().CreateMany(ctx, models)
}
