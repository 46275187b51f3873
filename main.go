// Package main book catalog API.
//
// @title           Book Catalog API
// @version         1.0
// @description     Catalog service: books, categories, stats, scraping.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"bookcatalog/app/echoServer"
	authctrl "bookcatalog/app/echoServer/controller/auth"
	bookctrl "bookcatalog/app/echoServer/controller/book"
	scrapectrl "bookcatalog/app/echoServer/controller/scrape"
	statsctrl "bookcatalog/app/echoServer/controller/stats"
	"bookcatalog/app/echoServer/validation"
	"bookcatalog/config"
	bookrepo "bookcatalog/repository/book"
	userrepo "bookcatalog/repository/user"
	authsvc "bookcatalog/service/auth"
	booksvc "bookcatalog/service/book"
	scrapersvc "bookcatalog/service/scraper"
	statssvc "bookcatalog/service/stats"
	"bookcatalog/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	br := bookrepo.New(db)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	bs := booksvc.New(br)
	ss := statssvc.New(br)
	sc := scrapersvc.New(cfg.ScrapeBaseURL, br, log)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	statsC := &statsctrl.Controller{Svc: ss, Log: log}
	scrapeC := &scrapectrl.Controller{Svc: sc, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:   authC,
		Book:   bookC,
		Stats:  statsC,
		Scrape: scrapeC,

		AuthSvc:   as,
		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "chosen_port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
