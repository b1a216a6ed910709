package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	billdomain "github.com/ormgarage/facturation/internal/bill/domain"
	clientdomain "github.com/ormgarage/facturation/internal/client/domain"
	"github.com/ormgarage/facturation/internal/config"
	obslogger "github.com/ormgarage/facturation/internal/observability/logger"
	obsmetrics "github.com/ormgarage/facturation/internal/observability/metrics"
	"github.com/ormgarage/facturation/internal/providers/pdf"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(run),
)

// NewEngine builds the gin engine with the shared middleware chain.
func NewEngine(cfg config.Config, log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !cfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log, obslogger.MiddlewareConfig{Debug: cfg.Debug()}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Server is running"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine    *gin.Engine
	cfg       config.Config
	clientSvc clientdomain.Service
	billSvc   billdomain.Service
	invoices  pdf.Provider
}

type ServerParams struct {
	fx.In

	Gin       *gin.Engine
	Cfg       config.Config
	ClientSvc clientdomain.Service
	BillSvc   billdomain.Service
	Invoices  pdf.Provider
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:    p.Gin,
		cfg:       p.Cfg,
		clientSvc: p.ClientSvc,
		billSvc:   p.BillSvc,
		invoices:  p.Invoices,
	}

	s.registerAPIRoutes()
	return s
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	clients := api.Group("/clients")
	clients.GET("", s.ListClients)
	clients.GET("/:id", s.GetClient)
	clients.POST("", s.CreateClient)
	clients.PUT("/:id", s.UpdateClient)
	clients.DELETE("/:id", s.DeleteClient)

	bills := api.Group("/bills")
	bills.GET("/client/:clientId", s.GetBillsByClient)
	bills.GET("/:id", s.GetBill)
	bills.POST("", s.CreateBill)
	bills.PUT("/:id", s.UpdateBill)
	bills.PATCH("/:id/paid", s.SetBillPaid)
	bills.DELETE("/:id", s.DeleteBill)
	bills.GET("/:id/pdf", s.GetBillPDF)
}

func run(lc fx.Lifecycle, s *Server, log *zap.Logger) {
	srv := &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_ = ctx
			log.Info("http server listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
