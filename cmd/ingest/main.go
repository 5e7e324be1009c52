// ingest は CSV エクスポートから来店記録コレクションへ一括投入する取り込みツール。
// クエリコアは読み取り専用であり、書き込みと正規化（性別の 2 値化・メール小文字化・
// 日付解釈）はすべてこのツールが担う。
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/higo-analytics/api/internal/config"
	mongodoc "github.com/sngm3741/higo-analytics/api/internal/infrastructure/mongo"
)

type ingestOptions struct {
	filePath  string
	batchSize int
	drop      bool
	skipIndex bool
}

func main() {
	_ = godotenv.Load()

	opts := ingestOptions{}
	flag.StringVar(&opts.filePath, "file", "", "取り込む CSV ファイルのパス（必須）")
	flag.IntVar(&opts.batchSize, "batch", 1000, "一括挿入のバッチサイズ")
	flag.BoolVar(&opts.drop, "drop", false, "取り込み前にコレクションを削除する")
	flag.BoolVar(&opts.skipIndex, "skip-index", false, "取り込み後のインデックス作成を省略する")
	flag.Parse()

	cfg := config.Load()
	logg := cfg.ServerLog

	if opts.filePath == "" {
		logg.Fatal().Msg("-file で CSV ファイルを指定してください")
	}
	if opts.batchSize < 1 {
		opts.batchSize = 1000
	}

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

	db := client.Database(cfg.MongoDatabase)
	collection := db.Collection(cfg.RecordCollection)

	if opts.drop {
		if err := collection.Drop(context.Background()); err != nil {
			logg.Fatal().Err(err).Msg("コレクションの削除に失敗しました")
		}
		logg.Info().Str("collection", cfg.RecordCollection).Msg("コレクションを削除しました")
	}

	inserted, failed, err := importFile(context.Background(), collection, opts, logg.Printf)
	if err != nil {
		logg.Fatal().Err(err).Msg("CSV 取り込みに失敗しました")
	}
	logg.Info().Int("inserted", inserted).Int("failed", failed).Msg("CSV 取り込みが完了しました")

	if !opts.skipIndex {
		names, err := mongodoc.EnsureIndexes(context.Background(), db, cfg.RecordCollection)
		if err != nil {
			logg.Fatal().Err(err).Msg("インデックス作成に失敗しました")
		}
		logg.Info().Strs("indexes", names).Msg("インデックスを作成しました")
	}
}

type printfFunc func(format string, v ...any)

// importFile は CSV をストリーミングで読み、バッチ単位の unordered 挿入を行う。
func importFile(ctx context.Context, collection *mongo.Collection, opts ingestOptions, printf printfFunc) (inserted, failed int, err error) {
	file, err := os.Open(opts.filePath)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("ヘッダー行の読み取りに失敗: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	insertOpts := options.InsertMany().SetOrdered(false)
	batch := make([]any, 0, opts.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		result, err := collection.InsertMany(ctx, batch, insertOpts)
		if result != nil {
			inserted += len(result.InsertedIDs)
		}
		if err != nil {
			failed += len(batch) - lenInserted(result)
			printf("バッチ挿入でエラー: %v", err)
		}
		batch = batch[:0]
		return nil
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			failed++
			continue
		}

		doc, err := transformRow(row, columns)
		if err != nil {
			failed++
			continue
		}
		batch = append(batch, doc)

		if len(batch) >= opts.batchSize {
			if err := flush(); err != nil {
				return inserted, failed, err
			}
			printf("取り込み済み: %d 件", inserted)
		}
	}

	if err := flush(); err != nil {
		return inserted, failed, err
	}
	return inserted, failed, nil
}

func lenInserted(result *mongo.InsertManyResult) int {
	if result == nil {
		return 0
	}
	return len(result.InsertedIDs)
}

// transformRow は CSV 1 行を正規化済みの RecordDocument へ変換する。
// 性別は Female 以外を Male に丸め、メールは小文字化、日付は MM/DD/YYYY を解釈する。
func transformRow(row []string, columns map[string]int) (mongodoc.RecordDocument, error) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	date, err := parseDate(field("Date"))
	if err != nil {
		return mongodoc.RecordDocument{}, err
	}

	number, _ := strconv.Atoi(field("Number"))
	age, _ := strconv.Atoi(field("Age"))

	gender := "Male"
	if field("gender") == "Female" {
		gender = "Female"
	}

	now := time.Now().UTC()
	return mongodoc.RecordDocument{
		Number:          number,
		LocationName:    field("Name of Location"),
		Date:            date,
		LoginHour:       field("Login Hour"),
		Name:            field("Name"),
		Age:             age,
		Gender:          gender,
		Email:           strings.ToLower(field("Email")),
		Phone:           field("No Telp"),
		BrandDevice:     field("Brand Device"),
		DigitalInterest: field("Digital Interest"),
		LocationType:    field("Location Type"),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// parseDate は MM/DD/YYYY 形式の日付を解釈する。
func parseDate(value string) (time.Time, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("日付形式が不正: %q", value)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, err
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, err
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}
