package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"fleetstock/auth"
	"fleetstock/config"
	"fleetstock/db/mongo"
	"fleetstock/gate"
	"fleetstock/handlers"
	"fleetstock/repository"
	"fleetstock/routes"
	"fleetstock/utils"
)

const version = "1.0.0"

func main() {
	// Load config from .env or environment
	cfg := config.LoadConfig()
	if cfg.MongoURL == "" {
		slog.Error("MONGO_URL not set")
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET not set")
		os.Exit(1)
	}

	mg := mongo.NewMongoDB(cfg.MongoURL, cfg.DBName)
	if err := mg.Connect(); err != nil {
		slog.Error("mongo connection failed", "error", err)
		os.Exit(1)
	}
	defer mg.Disconnect()

	accountRepo := repository.NewMongoAccountRepo(mg.Client, cfg.DBName)
	productRepo := repository.NewMongoProductRepo(mg.Client, cfg.DBName)
	carRepo := repository.NewMongoCarRepo(mg.Client, cfg.DBName)
	expenseRepo := repository.NewMongoExpenseRepo(mg.Client, cfg.DBName)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	g := gate.New(tokens)

	var storage handlers.ReceiptStorage
	var reportStorage handlers.ReceiptStorage
	r2, err := utils.NewR2StorageFromEnv(context.Background())
	if err != nil {
		slog.Warn("R2 storage not configured, receipt upload disabled and reports kept local", "error", err)
		storage = unconfiguredStorage{}
	} else {
		storage = r2
		reportStorage = r2
	}

	h := routes.Handlers{
		Auth:     &handlers.AuthHandler{Repo: accountRepo, Tokens: tokens},
		Accounts: &handlers.AccountHandler{Repo: accountRepo},
		Products: &handlers.ProductHandler{Repo: productRepo},
		Cars:     &handlers.CarHandler{Repo: carRepo, Accounts: accountRepo},
		Expenses: &handlers.ExpenseHandler{Repo: expenseRepo, Cars: carRepo, Storage: storage},
		Dashboard: &handlers.DashboardHandler{
			Accounts:  accountRepo,
			Products:  productRepo,
			Cars:      carRepo,
			Expenses:  expenseRepo,
			StartedAt: time.Now(),
			Version:   version,
		},
		Reports: &handlers.ReportHandler{
			Repo:     expenseRepo,
			Generate: utils.GenerateExpenseReportPDF,
			Storage:  reportStorage,
			SavePath: cfg.ReportDir,
		},
	}

	router := routes.SetupRoutes(g, h)

	slog.Info("server running", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

type unconfiguredStorage struct{}

func (unconfiguredStorage) Upload(context.Context, []byte, string, string) (string, error) {
	return "", errors.New("receipt storage not configured")
}
