package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/vorobyovigor/TaxiOnlineBot/cmd"
	httpin "github.com/vorobyovigor/TaxiOnlineBot/internal/adapters/in/http"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/adapters/out/postgres/auditrepo"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/adapters/out/postgres/clientrepo"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/adapters/out/postgres/driverrepo"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/adapters/out/postgres/orderrepo"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/adapters/out/telegram"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	tele "gopkg.in/telebot.v3"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := connectDB(configs)
	migrateDB(gormDB)

	gateway := createGateway(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, gateway, logger)

	jobManager := jobs.NewJobManager(
		app.CreateOrderUoWFactory(),
		app.CreateBroadcastOrderCommandHandler(),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	e := startWebServer(&app, logger, configs.HTTPPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	jobManager.StopAll()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Failed to shut down web server: %v", err)
	}
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:              goDotEnvVariable("HTTP_PORT"),
		DBHost:                goDotEnvVariable("DB_HOST"),
		DBPort:                goDotEnvVariable("DB_PORT"),
		DBUser:                goDotEnvVariable("DB_USER"),
		DBPassword:            goDotEnvVariable("DB_PASSWORD"),
		DBName:                goDotEnvVariable("DB_NAME"),
		DBSslMode:             goDotEnvVariable("DB_SSLMODE"),
		TelegramBotToken:      goDotEnvVariable("TELEGRAM_BOT_TOKEN"),
		TelegramDriversChatID: goDotEnvInt64("TELEGRAM_DRIVERS_CHAT_ID"),
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

func goDotEnvInt64(key string) int64 {
	value, err := strconv.ParseInt(goDotEnvVariable(key), 10, 64)
	if err != nil {
		log.Fatalf("Invalid integer in %s: %v", key, err)
	}
	return value
}

// connectDB opens the database through lib/pq and hands the connection to
// gorm, so driver-level errors surface as *pq.Error in the repositories.
func connectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	gormDB, err := gorm.Open(gorm_postgres.New(gorm_postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func migrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&driverrepo.DriverDTO{},
		&clientrepo.ClientDTO{},
		&auditrepo.AuditEntryDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func createGateway(configs cmd.Config) *telegram.BroadcastGateway {
	bot, err := tele.NewBot(tele.Settings{
		Token:  configs.TelegramBotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		log.Fatalf("Failed to create Telegram bot: %v", err)
	}

	gateway, err := telegram.NewBroadcastGateway(bot, configs.TelegramDriversChatID)
	if err != nil {
		log.Fatalf("Failed to create broadcast gateway: %v", err)
	}
	return gateway
}

func startWebServer(app *cmd.CompositionRoot, logger *slog.Logger, port string) *echo.Echo {
	server := httpin.NewServer(httpin.Handlers{
		RegisterClient:         app.CreateRegisterClientCommandHandler(),
		RegisterDriver:         app.CreateRegisterDriverCommandHandler(),
		CreateOrder:            app.CreateCreateOrderCommandHandler(),
		BroadcastOrder:         app.CreateBroadcastOrderCommandHandler(),
		AssignDriver:           app.CreateAssignDriverCommandHandler(),
		CompleteOrder:          app.CreateCompleteOrderCommandHandler(),
		CancelOrder:            app.CreateCancelOrderCommandHandler(),
		UpdateDriverProfile:    app.CreateUpdateDriverProfileCommandHandler(),
		SetDriverAccountStatus: app.CreateSetDriverAccountStatusCommandHandler(),

		GetOrders:             app.CreateGetOrdersQueryHandler(),
		GetOrder:              app.CreateGetOrderQueryHandler(),
		GetActiveOrder:        app.CreateGetActiveOrderQueryHandler(),
		GetClientOrderHistory: app.CreateGetClientOrderHistoryQueryHandler(),
		GetDrivers:            app.CreateGetDriversQueryHandler(),
		GetClients:            app.CreateGetClientsQueryHandler(),
		GetAuditLog:           app.CreateGetAuditLogQueryHandler(),
		GetStats:              app.CreateGetStatsQueryHandler(),
	}, logger)

	e := echo.New()
	server.RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Web server failed: %v", err)
		}
	}()
	return e
}
