package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/tdea-viajes/travelbooking/api"
	"github.com/tdea-viajes/travelbooking/config"
	"github.com/tdea-viajes/travelbooking/internal/service/auth"
	"github.com/tdea-viajes/travelbooking/internal/service/bookings"
	"github.com/tdea-viajes/travelbooking/internal/service/payments"
	"github.com/tdea-viajes/travelbooking/internal/service/travels"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(
	ctx context.Context,
	cfg *config.Config,
	authSvc auth.AuthUseCase,
	travelSvc travels.TravelUseCase,
	bookingSvc bookings.BookingUseCase,
	paymentSvc payments.PaymentUseCase,
) error {
	engine := NewRouter(cfg, authSvc, travelSvc, bookingSvc, paymentSvc)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter assembles the gin engine with CORS, the /api resource groups and
// the swagger UI.
func NewRouter(
	cfg *config.Config,
	authSvc auth.AuthUseCase,
	travelSvc travels.TravelUseCase,
	bookingSvc bookings.BookingUseCase,
	paymentSvc payments.PaymentUseCase,
) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(cfg.HTTP.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	engine.Use(cors.New(corsCfg))

	root := engine.Group("/api")
	api.NewAuthHandler(authSvc).Register(root.Group("/auth"))
	api.NewTravelHandler(travelSvc).Register(root.Group("/travels"))
	api.NewBookingHandler(bookingSvc).Register(root.Group("/bookings"))
	api.NewPaymentHandler(paymentSvc).Register(root.Group("/payments"))

	if cfg.HTTP.DocsFile != "" {
		engine.StaticFile("/swagger/doc.json", cfg.HTTP.DocsFile)
		engine.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))
	}

	return engine
}
