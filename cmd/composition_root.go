package cmd

import (
	"log/slog"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/adapters/out/postgres"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/application/usecases/commands"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/application/usecases/queries"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	gateway    ports.BroadcastGateway
	logger     *slog.Logger
}

func NewCompositionRoot(
	_ Config, gormDB *gorm.DB, gateway ports.BroadcastGateway, logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		gateway:    gateway,
		logger:     logger,
	}
}

// CreateAuditRecorder builds the recorder used by every lifecycle handler.
// The repository comes from a unit of work that never begins a transaction,
// so entries are appended outside the command's transaction.
func (c *CompositionRoot) CreateAuditRecorder() commands.AuditRecorder {
	return commands.NewAuditRecorder(c.uowFactory.Create().AuditRepository(), c.logger)
}

func (c *CompositionRoot) CreateRegisterClientCommandHandler() commands.RegisterClientCommandHandler {
	var f commands.ClientUoWFactory = FuncClientUoWFactory(func() commands.ClientUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterClientCommandHandler(f)
}

func (c *CompositionRoot) CreateRegisterDriverCommandHandler() commands.RegisterDriverCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterDriverCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateDriverProfileCommandHandler() commands.UpdateDriverProfileCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDriverProfileCommandHandler(f, c.CreateAuditRecorder())
}

func (c *CompositionRoot) CreateSetDriverAccountStatusCommandHandler() commands.SetDriverAccountStatusCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetDriverAccountStatusCommandHandler(f, c.CreateAuditRecorder())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.CreateOrderUoWFactory(), c.CreateAuditRecorder())
}

func (c *CompositionRoot) CreateBroadcastOrderCommandHandler() commands.BroadcastOrderCommandHandler {
	return commands.NewBroadcastOrderCommandHandler(
		c.CreateOrderUoWFactory(), c.gateway, c.CreateAuditRecorder(),
	)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.CreateUoWFactory(), c.CreateAuditRecorder())
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.CreateUoWFactory(), c.CreateAuditRecorder())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.CreateUoWFactory(), c.CreateAuditRecorder())
}

func (c *CompositionRoot) CreateOrderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrderQueryHandler() queries.GetActiveOrderQueryHandler {
	return queries.NewGetActiveOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetClientOrderHistoryQueryHandler() queries.GetClientOrderHistoryQueryHandler {
	return queries.NewGetClientOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriversQueryHandler() queries.GetDriversQueryHandler {
	return queries.NewGetDriversQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetClientsQueryHandler() queries.GetClientsQueryHandler {
	return queries.NewGetClientsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAuditLogQueryHandler() queries.GetAuditLogQueryHandler {
	return queries.NewGetAuditLogQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStatsQueryHandler() queries.GetStatsQueryHandler {
	return queries.NewGetStatsQueryHandler(c.gormDB)
}

type FuncClientUoWFactory func() commands.ClientUoW

func (f FuncClientUoWFactory) Create() commands.ClientUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
