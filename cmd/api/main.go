package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/nrbnayon/BarBar-sub000/internal/cache"
	"github.com/nrbnayon/BarBar-sub000/internal/config"
	dbpkg "github.com/nrbnayon/BarBar-sub000/internal/db"
	"github.com/nrbnayon/BarBar-sub000/internal/payment"
	"github.com/nrbnayon/BarBar-sub000/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	gateway, err := payment.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken)
	if err != nil {
		log.Fatalf("failed to set up payment gateway: %v", err)
	}

	slotCache := cache.NewSlotCache(cfg.RedisAddr, cfg.RedisPassword)

	r := gin.Default()

	routes.RegisterRoutes(r, db, cfg, gateway, slotCache)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
