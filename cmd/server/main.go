package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/Masozee/ladapala-sub001/internal/config"
	"github.com/Masozee/ladapala-sub001/internal/database"
	"github.com/Masozee/ladapala-sub001/internal/handler"
	"github.com/Masozee/ladapala-sub001/internal/queue"
	"github.com/Masozee/ladapala-sub001/internal/repository"
	"github.com/Masozee/ladapala-sub001/internal/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logrus.WithError(err).Fatal("database connect failed")
	}
	defer db.Close()

	rdb := config.NewRedisClient()

	rooms := repository.NewRoomRepo(db)
	roomTypes := repository.NewRoomTypeRepo(db)
	guests := repository.NewGuestRepo(db)
	reservations := repository.NewReservationRepo(db)
	checkIns := repository.NewCheckInRepo(db)
	charges := repository.NewChargeRepo(db)
	payments := repository.NewPaymentRepo(db)
	sessions := repository.NewCashierSessionRepo(db)
	housekeeping := repository.NewHousekeepingRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret, rdb)

	roomHandler := handler.NewRoomHandler(rooms, roomTypes)
	router.RegisterPublic(e, roomHandler, rdb)
	router.RegisterBackOffice(e, router.BackOffice{
		Rooms:  roomHandler,
		Guests: handler.NewGuestHandler(guests, reservations),
		FrontDesk: handler.NewFrontDeskHandler(rooms, roomTypes, guests, reservations,
			checkIns, charges, payments, housekeeping, nil),
		Payments:     handler.NewPaymentHandler(payments, reservations, guests, sessions),
		Cashier:      handler.NewCashierHandler(sessions, payments, reservations),
		Housekeeping: handler.NewHousekeepingHandler(housekeeping, rooms),
	}, cfg.JWTSecret)

	// invoice sender; reconnects on its own, so fire and forget
	go func() {
		if err := queue.StartInvoiceConsumer(); err != nil {
			logrus.WithError(err).Error("invoice consumer stopped")
		}
	}()

	addr := ":" + cfg.Port
	logrus.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("listening")
	if err := e.Start(addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
