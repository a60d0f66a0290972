package http_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	httpin "github.com/vorobyovigor/TaxiOnlineBot/internal/adapters/in/http"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/adapters/out/postgres"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/adapters/out/postgres/auditrepo"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/adapters/out/postgres/clientrepo"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/adapters/out/postgres/driverrepo"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/adapters/out/postgres/orderrepo"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/application/usecases/commands"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/application/usecases/queries"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgmodule "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopGateway accepts every broadcast without side effects.
type noopGateway struct{}

func (noopGateway) Broadcast(context.Context, kernel.UUID, string, string, string) error {
	return nil
}

type funcClientUoWFactory func() commands.ClientUoW

func (f funcClientUoWFactory) Create() commands.ClientUoW { return f() }

type funcDriverUoWFactory func() commands.DriverUoW

func (f funcDriverUoWFactory) Create() commands.DriverUoW { return f() }

type funcOrderUoWFactory func() commands.OrderUoW

func (f funcOrderUoWFactory) Create() commands.OrderUoW { return f() }

type funcUoWFactory func() commands.UoW

func (f funcUoWFactory) Create() commands.UoW { return f() }

// ServerIntegrationTestSuite drives the REST API end to end against a real
// database, with the full command and query stack wired in.
type ServerIntegrationTestSuite struct {
	suite.Suite
	container *pgmodule.PostgresContainer
	db        *gorm.DB
	echo      *echo.Echo
}

func (suite *ServerIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgmodule.Run(ctx,
		"postgres:15-alpine",
		pgmodule.WithDatabase("testdb"),
		pgmodule.WithUsername("testuser"),
		pgmodule.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	sqlDB, err := sql.Open("postgres", connStr)
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.New(postgresdriver.Config{Conn: sqlDB}), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&driverrepo.DriverDTO{},
		&clientrepo.ClientDTO{},
		&auditrepo.AuditEntryDTO{},
	)
	suite.Require().NoError(err)

	suite.echo = echo.New()
	server := httpin.NewServer(suite.buildHandlers(db), slog.New(slog.NewTextHandler(io.Discard, nil)))
	server.RegisterRoutes(suite.echo)
}

func (suite *ServerIntegrationTestSuite) buildHandlers(db *gorm.DB) httpin.Handlers {
	factory := postgres.NewGormUnitOfWorkFactory(db)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	recorder := commands.NewAuditRecorder(factory.Create().AuditRepository(), logger)

	clientUoW := funcClientUoWFactory(func() commands.ClientUoW { return factory.Create() })
	driverUoW := funcDriverUoWFactory(func() commands.DriverUoW { return factory.Create() })
	orderUoW := funcOrderUoWFactory(func() commands.OrderUoW { return factory.Create() })
	uow := funcUoWFactory(func() commands.UoW { return factory.Create() })

	return httpin.Handlers{
		RegisterClient:         commands.NewRegisterClientCommandHandler(clientUoW),
		RegisterDriver:         commands.NewRegisterDriverCommandHandler(driverUoW),
		CreateOrder:            commands.NewCreateOrderCommandHandler(orderUoW, recorder),
		BroadcastOrder:         commands.NewBroadcastOrderCommandHandler(orderUoW, noopGateway{}, recorder),
		AssignDriver:           commands.NewAssignDriverCommandHandler(uow, recorder),
		CompleteOrder:          commands.NewCompleteOrderCommandHandler(uow, recorder),
		CancelOrder:            commands.NewCancelOrderCommandHandler(uow, recorder),
		UpdateDriverProfile:    commands.NewUpdateDriverProfileCommandHandler(driverUoW, recorder),
		SetDriverAccountStatus: commands.NewSetDriverAccountStatusCommandHandler(driverUoW, recorder),

		GetOrders:             queries.NewGetOrdersQueryHandler(db),
		GetOrder:              queries.NewGetOrderQueryHandler(db),
		GetActiveOrder:        queries.NewGetActiveOrderQueryHandler(db),
		GetClientOrderHistory: queries.NewGetClientOrderHistoryQueryHandler(db),
		GetDrivers:            queries.NewGetDriversQueryHandler(db),
		GetClients:            queries.NewGetClientsQueryHandler(db),
		GetAuditLog:           queries.NewGetAuditLogQueryHandler(db),
		GetStats:              queries.NewGetStatsQueryHandler(db),
	}
}

func (suite *ServerIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ServerIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, drivers, clients, audit_log").Error
	suite.Require().NoError(err)
}

func (suite *ServerIntegrationTestSuite) request(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)
	return rec
}

func (suite *ServerIntegrationTestSuite) decodeJSON(rec *httptest.ResponseRecorder, target any) {
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), target))
}

func (suite *ServerIntegrationTestSuite) registerClient(telegramID int64) string {
	rec := suite.request(http.MethodPost, "/clients",
		`{"telegram_id": `+jsonInt(telegramID)+`, "username": "rider", "first_name": "Anna", "last_name": "K"}`)
	suite.Require().Equal(http.StatusOK, rec.Code)

	var body httpin.Client
	suite.decodeJSON(rec, &body)
	return body.ID
}

func (suite *ServerIntegrationTestSuite) registerDriver(telegramID int64) string {
	rec := suite.request(http.MethodPost, "/drivers",
		`{"telegram_id": `+jsonInt(telegramID)+`, "username": "wheels", "first_name": "Boris", "last_name": "D"}`)
	suite.Require().Equal(http.StatusOK, rec.Code)

	var body httpin.Driver
	suite.decodeJSON(rec, &body)
	return body.ID
}

func (suite *ServerIntegrationTestSuite) placeOrder(clientID string) httpin.Order {
	rec := suite.request(http.MethodPost, "/orders",
		`{"client_id": "`+clientID+`", "origin": "Lenina 1", "destination": "Airport", "comment": "two bags"}`)
	suite.Require().Equal(http.StatusCreated, rec.Code)

	var body httpin.Order
	suite.decodeJSON(rec, &body)
	return body
}

func (suite *ServerIntegrationTestSuite) TestGetActiveOrder_None_Returns200Null() {
	clientID := suite.registerClient(100)

	rec := suite.request(http.MethodGet, "/clients/"+clientID+"/orders/active", "")

	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Equal("null", strings.TrimSpace(rec.Body.String()))
}

func (suite *ServerIntegrationTestSuite) TestGetActiveOrder_Exists_ReturnsOrder() {
	clientID := suite.registerClient(100)
	placed := suite.placeOrder(clientID)

	rec := suite.request(http.MethodGet, "/clients/"+clientID+"/orders/active", "")

	suite.Require().Equal(http.StatusOK, rec.Code)
	var body httpin.Order
	suite.decodeJSON(rec, &body)
	suite.Equal(placed.ID, body.ID)
}

func (suite *ServerIntegrationTestSuite) TestCreateOrder_ReturnsBroadcastSnapshot() {
	clientID := suite.registerClient(100)

	placed := suite.placeOrder(clientID)

	suite.NotEmpty(placed.ID)
	suite.Equal(clientID, placed.ClientID)
	suite.Equal("Lenina 1", placed.Origin)
	suite.Equal("Airport", placed.Destination)
	suite.Equal("two bags", placed.Comment)
	suite.Equal("BROADCAST", placed.Status)
}

func (suite *ServerIntegrationTestSuite) TestAssignOrder_ReturnsAssignedSnapshot() {
	clientID := suite.registerClient(100)
	driverID := suite.registerDriver(200)
	placed := suite.placeOrder(clientID)

	rec := suite.request(http.MethodPost, "/orders/"+placed.ID+"/assign",
		`{"driver_id": "`+driverID+`"}`)

	suite.Require().Equal(http.StatusOK, rec.Code)
	var body httpin.Order
	suite.decodeJSON(rec, &body)
	suite.Equal(placed.ID, body.ID)
	suite.Equal("ASSIGNED", body.Status)
	suite.Require().NotNil(body.DriverID)
	suite.Equal(driverID, *body.DriverID)
	suite.NotNil(body.AssignedAt)
}

func (suite *ServerIntegrationTestSuite) TestCompleteOrder_ReturnsCompletedSnapshot() {
	clientID := suite.registerClient(100)
	driverID := suite.registerDriver(200)
	placed := suite.placeOrder(clientID)
	rec := suite.request(http.MethodPost, "/orders/"+placed.ID+"/assign",
		`{"driver_id": "`+driverID+`"}`)
	suite.Require().Equal(http.StatusOK, rec.Code)

	rec = suite.request(http.MethodPost, "/orders/"+placed.ID+"/complete", `{}`)

	suite.Require().Equal(http.StatusOK, rec.Code)
	var body httpin.Order
	suite.decodeJSON(rec, &body)
	suite.Equal("COMPLETED", body.Status)
	suite.NotNil(body.FinishedAt)
}

func (suite *ServerIntegrationTestSuite) TestCancelOrder_ReturnsCancelledSnapshot() {
	clientID := suite.registerClient(100)
	placed := suite.placeOrder(clientID)

	rec := suite.request(http.MethodPost, "/orders/"+placed.ID+"/cancel", `{}`)

	suite.Require().Equal(http.StatusOK, rec.Code)
	var body httpin.Order
	suite.decodeJSON(rec, &body)
	suite.Equal("CANCELLED", body.Status)
	suite.NotEmpty(body.CancelReason)
	suite.NotNil(body.FinishedAt)
}

func (suite *ServerIntegrationTestSuite) TestGetOrder_Unknown_Returns404() {
	rec := suite.request(http.MethodGet, "/orders/"+kernel.NewUUID().String(), "")

	suite.Require().Equal(http.StatusNotFound, rec.Code)
	var body httpin.Error
	suite.decodeJSON(rec, &body)
	suite.Equal(http.StatusNotFound, body.Code)
}

func jsonInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func TestServerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ServerIntegrationTestSuite))
}
