package main

import (
	"fmt"
	"os"

	"carrycampus/cmd"
	httpin "carrycampus/internal/adapters/in/http"
	"carrycampus/internal/adapters/out/postgres/assignmentrepo"
	"carrycampus/internal/adapters/out/postgres/ledgerrepo"
	"carrycampus/internal/adapters/out/postgres/requestrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustOpenDatabase(configs)

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&requestrepo.RequestDTO{},
		&assignmentrepo.AssignmentDTO{},
		&ledgerrepo.TransactionDTO{},
		&ledgerrepo.WalletDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	server := httpin.NewServer(
		app.CreateCreateRequestCommandHandler(),
		app.CreateAcceptRequestCommandHandler(),
		app.CreateAdvanceStatusCommandHandler(),
		app.CreateCancelRequestCommandHandler(),
		app.CreateMarkTransactionPaidCommandHandler(),
		app.CreateGetOpenRequestsQueryHandler(),
		app.CreateGetMyRequestsQueryHandler(),
		app.CreateGetMyDeliveriesQueryHandler(),
		app.CreateGetWalletQueryHandler(),
		app.CreateGetTransactionsQueryHandler(),
		app.CreateGetPendingTransactionsQueryHandler(),
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
