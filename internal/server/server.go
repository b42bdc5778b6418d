package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maxierra/tienda360-api/internal/handler"
	appmiddleware "github.com/maxierra/tienda360-api/internal/middleware"
	"github.com/maxierra/tienda360-api/internal/service"
)

type Server struct {
	echo                *echo.Echo
	paymentHandler      *handler.PaymentHandler
	subscriptionHandler *handler.SubscriptionHandler
	saleHandler         *handler.SaleHandler
}

func NewServer(
	paymentService service.PaymentService,
	subscriptionService service.SubscriptionService,
	saleService service.SaleService,
	jwtSecret string,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(metricsMiddleware)

	s := &Server{
		echo:                e,
		paymentHandler:      handler.NewPaymentHandler(paymentService),
		subscriptionHandler: handler.NewSubscriptionHandler(subscriptionService),
		saleHandler:         handler.NewSaleHandler(saleService),
	}

	s.setupRoutes(jwtSecret)
	return s
}

func (s *Server) setupRoutes(jwtSecret string) {
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- mercadopago --------
	mp := api.Group("/mercadopago")
	mp.POST("/create-preference", s.paymentHandler.CreatePreference)
	mp.POST("/webhook", s.paymentHandler.Webhook)

	// -------- authenticated api --------
	auth := appmiddleware.Auth(jwtSecret)
	api.GET("/subscriptions/:userID", s.subscriptionHandler.GetByUserID, auth)

	sales := api.Group("/sales", auth)
	sales.POST("", s.saleHandler.CreateSale)
	sales.GET("/summary", s.saleHandler.Summary)

	// -------- gateway redirect landing pages --------
	s.echo.GET("/subscription/success", s.paymentHandler.SuccessPage)
	s.echo.GET("/subscription/failure", s.paymentHandler.FailurePage)
	s.echo.GET("/subscription/pending", s.paymentHandler.PendingPage)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
