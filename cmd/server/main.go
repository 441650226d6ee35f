package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82/client"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"tradingvault/internal/billing"
	"tradingvault/internal/config"
	cronrunner "tradingvault/internal/cron"
	"tradingvault/internal/db"
	"tradingvault/internal/handler"
	"tradingvault/internal/logger"
	"tradingvault/internal/relay"
	gormrepository "tradingvault/internal/repository/gorm"
	"tradingvault/internal/telegram"

	_ "tradingvault/docs"
)

func main() {
	cfgPath := os.Getenv("TV_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("TV_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	signalDB, err := db.Open(cfg.SignalDB)
	if err != nil {
		logger.Fatal("signal db open failed", zap.Error(err))
	}
	defer db.Close(signalDB)

	userDB, err := db.Open(cfg.UserDB)
	if err != nil {
		logger.Fatal("user db open failed", zap.Error(err))
	}
	defer db.Close(userDB)

	if err := db.SetTimezone(userDB, cfg.UserDB.Timezone); err != nil {
		logger.Warn("failed to set user db timezone", zap.Error(err))
	}
	if err := db.AutoMigrateUserStore(userDB); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	signalStore := gormrepository.NewSignalStore(signalDB.Gorm)
	userStore := gormrepository.NewUserStore(userDB.Gorm)

	stripeAPI := &client.API{}
	stripeAPI.Init(cfg.Stripe.SecretKey, nil)

	checkoutSvc := &billing.CheckoutService{
		API:    stripeAPI,
		Config: cfg.Stripe,
		Logger: logger,
	}
	stripeProcessor := &billing.StripeProcessor{
		WebhookSecret: cfg.Stripe.WebhookSecret,
		Subscribers:   userStore,
		Events:        userStore,
		Customers:     &billing.StripeCustomers{API: stripeAPI},
		Logger:        logger,
	}
	paypalProcessor := &billing.PayPalProcessor{
		Subscribers: userStore,
		Events:      userStore,
		Logger:      logger,
	}

	notifier := &telegram.Client{
		Token:     cfg.Telegram.BotToken,
		ChannelID: cfg.Telegram.ChannelID,
		BaseURL:   cfg.Telegram.APIBase,
		HTTP:      &http.Client{Timeout: cfg.Telegram.Timeout},
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware(cfg.Server.AllowedOrigins))

	healthHandler := &handler.HealthHandler{SignalDB: signalDB.Gorm, UserDB: userDB.Gorm}
	healthHandler.Register(engine)
	handler.RegisterDocs(engine)
	checkoutHandler := &handler.CheckoutHandler{Checkout: checkoutSvc, Logger: logger}
	checkoutHandler.Register(engine)
	stripeHandler := &handler.StripeWebhookHandler{Processor: stripeProcessor, Logger: logger}
	stripeHandler.Register(engine)
	paypalHandler := &handler.PayPalWebhookHandler{Processor: paypalProcessor, Logger: logger}
	paypalHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Relay.Enabled {
		signalRelay := &relay.Relay{
			Signals:  signalStore,
			Notifier: notifier,
			Logger:   logger,
		}
		interval := cfg.Relay.PollInterval
		if interval <= 0 {
			interval = time.Minute
		}
		_, err := cronRunner.Add("@every "+interval.String(), signalRelay.PollOnce)
		if err != nil {
			logger.Warn("cron register signal relay failed", zap.Error(err))
		}

		if cfg.Relay.StartupNotice {
			noticeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			if err := notifier.SendMessage(noticeCtx, relay.StartupNotice); err != nil {
				logger.Warn("startup notice failed", zap.Error(err))
			}
			cancel()
		}
		// First poll right away; the cron entry fires one interval from now.
		signalRelay.PollOnce(ctx)
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	errCh := make(chan error, 1)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if _, ok := allowed[origin]; ok {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization,Stripe-Signature")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
