package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "loans-marketplace-backend/internal/adapter/http"
	appmw "loans-marketplace-backend/internal/adapter/middleware"
	"loans-marketplace-backend/internal/adapter/repository/mysql"
	"loans-marketplace-backend/internal/config"
	"loans-marketplace-backend/internal/infrastructure/cache"
	"loans-marketplace-backend/internal/infrastructure/db"
	loanuc "loans-marketplace-backend/internal/usecase/loan"
	protocoluc "loans-marketplace-backend/internal/usecase/protocol"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	uow := mysql.NewGormUoW(gdb)
	loanUC := loanuc.NewUsecase(uow, loanuc.WithPublisher(cache.NewRedisPublisher(rdb)))
	protocolUC := protocoluc.NewUsecase(uow)

	if cfg.ProtocolAdminID != "" {
		bootstrapProtocol(protocolUC, cfg)
	}

	h := httpadp.NewHandler()
	lh := httpadp.NewLoanHandler(loanUC)
	ph := httpadp.NewProtocolHandler(protocolUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(appmw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	e.GET("/health", h.Health)

	e.POST("/loans", lh.CreateLoan)
	e.GET("/loans/:loan_id", lh.GetLoan)
	e.GET("/loans/:loan_id/shares", lh.ListShares)
	e.GET("/loans/:loan_id/events", lh.ListEvents)
	e.POST("/loans/:loan_id/fund", lh.Fund)
	e.POST("/loans/:loan_id/collateral", lh.DepositCollateral)
	e.POST("/loans/:loan_id/finalize", lh.FinalizeFunding)
	e.POST("/loans/:loan_id/drawdown", lh.Drawdown)
	e.POST("/loans/:loan_id/repay", lh.Repay)
	e.POST("/loans/:loan_id/default", lh.MarkDefault)
	e.POST("/loans/:loan_id/payout", lh.ClaimDefaultPayout)

	e.POST("/config", ph.Bootstrap)
	e.GET("/config", ph.Get)
	e.PATCH("/config", ph.Update)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// bootstrapProtocol creates the config row on first boot; a second boot
// finds it already there and moves on.
func bootstrapProtocol(uc *protocoluc.Usecase, cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := uc.Bootstrap(ctx, protocoluc.BootstrapInput{
		AdminID:   cfg.ProtocolAdminID,
		FeeBps:    uint32(cfg.ProtocolFeeBps),
		AssetCode: cfg.AssetCode,
	})
	if err != nil {
		log.Printf("protocol bootstrap: %v", err)
	}
}
