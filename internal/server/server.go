package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/sngm3741/higo-analytics/api/internal/analytics/application"
	"github.com/sngm3741/higo-analytics/api/internal/config"
	mongodoc "github.com/sngm3741/higo-analytics/api/internal/infrastructure/mongo"
	"github.com/sngm3741/higo-analytics/api/internal/interfaces/http/common"
	recordshttp "github.com/sngm3741/higo-analytics/api/internal/interfaces/http/records"
)

// Server は HTTP サーバーのライフサイクルを管理し、ハンドラへ依存注入する
// コンポジションルート。アプリケーションサービスをルータへ接続する責務のみを担い、
// クエリやドメインのロジックはここに書かない。
type Server struct {
	logger         zerolog.Logger
	client         *mongo.Client
	database       *mongo.Database
	recordQueries  application.RecordQueryService
	addr           string
	environment    string
	allowedOrigins []string
	startedAt      time.Time
}

// New は Config と Mongo クライアントを受け取り、リポジトリ・サービス・ハンドラを
// 組み立てた Server を返す。依存解決の起点となるファクトリ。
func New(cfg config.Config, client *mongo.Client) *Server {
	srv := &Server{
		logger:         cfg.ServerLog,
		client:         client,
		database:       client.Database(cfg.MongoDatabase),
		addr:           cfg.Addr,
		environment:    cfg.Environment,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
		startedAt:      time.Now(),
	}

	recordRepo := mongodoc.NewRecordRepository(srv.database, cfg.RecordCollection)
	srv.recordQueries = application.NewRecordQueryService(recordRepo)

	return srv
}

// Run はHTTPサーバーを起動し、ルーティングやミドルウェアを組み立てる。
func (s *Server) Run() error {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(s.requestLogger)
	router.Use(s.recoverPanics)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/", s.rootHandler())
	router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.healthHandler())
		recordHandler := recordshttp.NewHandler(recordshttp.Config{
			Logger:  s.logger,
			Queries: s.recordQueries,
		})
		r.Route("/v1", recordHandler.Register)
	})
	router.NotFound(s.notFoundHandler())

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("HTTP サーバー起動")
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

// requestLogger はメソッド・パス・ステータス・所要時間を 1 リクエスト 1 行で記録する。
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

// recoverPanics はハンドラ内の未捕捉パニックを標準エラーエンベロープの 500 へ正規化する。
func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.logger.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("パニックを捕捉")
				common.WriteError(s.logger, w, http.StatusInternalServerError, "Server Error", "An error occurred processing your request")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// withCORS は許可されたオリジン情報をもとに CORS ヘッダーを付与するミドルウェアを返す。
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed は指定された Origin が許可リストに含まれるか判定する。
func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// healthHandler は MongoDB への疎通確認を行い、監視系からのヘルスチェック要求に応える。
// 稼働秒数と動作環境を返し、ストア不達時は 503 で degraded を返す。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		uptime := time.Since(s.startedAt).Seconds()
		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			s.writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status":      "degraded",
				"timestamp":   time.Now().UTC().Format(time.RFC3339),
				"uptime":      uptime,
				"environment": s.environment,
			})
			return
		}

		s.writeJSON(w, http.StatusOK, map[string]any{
			"status":      "OK",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"uptime":      uptime,
			"environment": s.environment,
		})
	}
}

// rootHandler はサービス名とエンドポイント一覧を返すディスクリプタ。
func (s *Server) rootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]any{
			"name":        "Higo Customer Analytics API",
			"version":     "1.0.0",
			"description": "REST API for customer analytics dashboard",
			"health":      "/api/health",
			"endpoints": map[string]any{
				"records": "/api/v1/records",
				"stats": map[string]string{
					"gender":    "/api/v1/stats/gender",
					"location":  "/api/v1/stats/location",
					"interest":  "/api/v1/stats/interest",
					"dashboard": "/api/v1/stats/dashboard",
				},
			},
		})
	}
}

// notFoundHandler は未定義ルートを標準エラーエンベロープの 404 へ写像する。
func (s *Server) notFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		common.WriteError(s.logger, w, http.StatusNotFound, fmt.Sprintf("Not found - %s", r.URL.Path), "The requested resource does not exist")
	}
}

// writeJSON は JSON レスポンスの共通書き込み処理。
func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error().Err(err).Msg("JSON エンコードに失敗")
	}
}

// shutdown は MongoDB クライアントをタイムアウト付きで切断し、プロセス終了時のリソースリークを防ぐ。
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("MongoDB 切断時にエラー")
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を実現する。
// アプリケーションの外側で扱うべき OS 依存の関心事をここへ閉じ込める。
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Fatal().Err(err).Msg("サーバーが異常終了")
		}
	case sig := <-sigChan:
		srv.logger.Info().Str("signal", sig.String()).Msg("シグナルを受信。サーバー停止処理を開始します。")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Error().Err(err).Msg("サーバー停止時にエラー")
		}
	}

	srv.shutdown(context.Background())
}
