package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tsinghua-fib-lab/movingblock-sim/utils/config"
)

const (
	TokenHeader = "X-Operator-Token" // 操作员令牌请求头

	ReloadLevel = 2 // 重载配置所需的最低权限等级
	ReadLevel   = 0 // 查看配置所需的最低权限等级

	shutdownTimeout = 5 * time.Second
)

// SpacingReloader 可重载的移动闭塞配置
type SpacingReloader interface {
	Get() config.Spacing
	Reload() config.Spacing
}

// Server 管理接口
// 功能：提供移动闭塞配置的热重载与查看，按操作员权限等级鉴权
type Server struct {
	store     SpacingReloader
	operators map[string]int
	router    chi.Router
	srv       *http.Server
}

// New 创建管理接口
// 参数：store-配置快照，operators-操作员令牌到权限等级的映射
func New(store SpacingReloader, operators map[string]int) *Server {
	s := &Server{
		store:     store,
		operators: operators,
	}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Route("/cdb", func(r chi.Router) {
		r.With(s.requireLevel(ReadLevel)).Get("/config", s.handleConfig)
		r.With(s.requireLevel(ReloadLevel)).Post("/reload", s.handleReload)
	})
	s.router = r
	return s
}

// Handler 获取HTTP处理器
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe 在addr上提供服务，直到Shutdown被调用
func (s *Server) ListenAndServe(addr string) error {
	s.srv = &http.Server{Addr: addr, Handler: s.router}
	log.Infof("admin server listening on %s", addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("admin server: %w", err)
	}
	return nil
}

// Shutdown 优雅关闭
func (s *Server) Shutdown() error {
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

// requireLevel 权限检查中间件
// 说明：令牌未知返回401，权限不足返回403
func (s *Server) requireLevel(level int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have, ok := s.operators[r.Header.Get(TokenHeader)]
			if !ok {
				http.Error(w, "unknown operator", http.StatusUnauthorized)
				return
			}
			if have < level {
				log.Warnf("%s %s: permission level %d < %d", r.Method, r.URL.Path, have, level)
				http.Error(w, "permission denied", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// reloadResponse 重载结果
type reloadResponse struct {
	Message           string  `json:"message"`
	FinalStopDistance float64 `json:"finalStopDistance"`
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	cfg := s.store.Reload()
	log.Infof("spacing config reloaded: finalStopDistance=%v", cfg.FinalStopDistance)
	writeJSON(w, reloadResponse{
		Message:           "moving block config reloaded",
		FinalStopDistance: cfg.FinalStopDistance,
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.store.Get())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode", http.StatusInternalServerError)
	}
}
