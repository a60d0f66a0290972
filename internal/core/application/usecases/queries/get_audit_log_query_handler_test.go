package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/adapters/out/postgres/auditrepo"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/application/usecases/queries"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/audit"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetAuditLogQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetAuditLogQueryHandler
}

func (suite *GetAuditLogQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&auditrepo.AuditEntryDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetAuditLogQueryHandler(db)
}

func (suite *GetAuditLogQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetAuditLogQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE audit_log").Error
	suite.Require().NoError(err)
}

func (suite *GetAuditLogQueryHandlerTestSuite) TestHandle_EmptyLog_ReturnsEmptySlice() {
	query, err := queries.NewGetAuditLogQuery(nil, nil, nil, 0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetAuditLogQueryHandlerTestSuite) TestHandle_NoFilters_ReturnsChronologicalOrder() {
	first := suite.saveEntry(audit.OrderCreated, nil, nil, nil, "placed")
	second := suite.saveEntry(audit.OrderBroadcast, nil, nil, nil, "offered")

	query, err := queries.NewGetAuditLogQuery(nil, nil, nil, 0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(first.ID(), result[0].ID)
	suite.Equal(second.ID(), result[1].ID)
	suite.Equal(audit.OrderCreated, result[0].Action)
	suite.Equal("placed", result[0].Detail)
}

func (suite *GetAuditLogQueryHandlerTestSuite) TestHandle_SameTimestamp_KeepsInsertionOrder() {
	// Entries recorded within the same timestamp tick still come back in
	// the order they were inserted.
	ts := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	ids := make([]kernel.UUID, 0, 4)
	for range 4 {
		id := kernel.NewUUID()
		dto := auditrepo.AuditEntryDTO{
			ID:        id.Bytes(),
			Action:    audit.OrderCreated.String(),
			CreatedAt: ts,
		}
		suite.Require().NoError(suite.db.Create(&dto).Error)
		ids = append(ids, id)
	}

	query, err := queries.NewGetAuditLogQuery(nil, nil, nil, 0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 4)
	for i, id := range ids {
		suite.Equal(id, result[i].ID)
	}
}

func (suite *GetAuditLogQueryHandlerTestSuite) TestHandle_OrderFilter_ReturnsOnlyThatOrder() {
	orderID := kernel.NewUUID()
	otherOrderID := kernel.NewUUID()
	matching := suite.saveEntry(audit.OrderAssigned, &orderID, nil, nil, "")
	suite.saveEntry(audit.OrderAssigned, &otherOrderID, nil, nil, "")
	suite.saveEntry(audit.DriverBlocked, nil, nil, nil, "")

	query, err := queries.NewGetAuditLogQuery(&orderID, nil, nil, 0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(matching.ID(), result[0].ID)
	suite.Require().NotNil(result[0].OrderID)
	suite.Equal(orderID, *result[0].OrderID)
}

func (suite *GetAuditLogQueryHandlerTestSuite) TestHandle_DriverAndClientFilters_Combine() {
	driverID := kernel.NewUUID()
	clientID := kernel.NewUUID()
	matching := suite.saveEntry(audit.OrderCompleted, nil, &driverID, &clientID, "")
	suite.saveEntry(audit.OrderCompleted, nil, &driverID, nil, "")
	suite.saveEntry(audit.OrderCompleted, nil, nil, &clientID, "")

	query, err := queries.NewGetAuditLogQuery(nil, &driverID, &clientID, 0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(matching.ID(), result[0].ID)
}

func (suite *GetAuditLogQueryHandlerTestSuite) TestHandle_Limit_CapsResult() {
	for range 5 {
		suite.saveEntry(audit.OrderCreated, nil, nil, nil, "")
	}

	query, err := queries.NewGetAuditLogQuery(nil, nil, nil, 3)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Len(result, 3)
}

func (suite *GetAuditLogQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetAuditLogQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
}

// saveEntry appends an audit entry with the given references.
func (suite *GetAuditLogQueryHandlerTestSuite) saveEntry(
	action audit.Action,
	orderID, driverID, clientID *kernel.UUID,
	detail string,
) *audit.Entry {
	entry, err := audit.NewEntry(kernel.NewUUID(), action, orderID, driverID, clientID, detail)
	suite.Require().NoError(err)

	repo := auditrepo.NewGormAuditRepository(suite.db, &mockAggregateTracker{})
	suite.Require().NoError(repo.Add(context.Background(), entry))
	return entry
}

func TestGetAuditLogQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetAuditLogQueryHandlerTestSuite))
}
