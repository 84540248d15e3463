package cmd

import (
	"log/slog"
	"os"

	"carrycampus/internal/adapters/out/identity"
	"carrycampus/internal/adapters/out/notify"
	"carrycampus/internal/adapters/out/postgres"
	"carrycampus/internal/adapters/out/postgres/ledgerrepo"
	"carrycampus/internal/core/application/usecases/commands"
	"carrycampus/internal/core/application/usecases/queries"
	"carrycampus/internal/core/domain/services"
	"carrycampus/internal/core/ports"
	"carrycampus/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	verifier   ports.VerificationChecker
	directory  ports.UserDirectory
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	directory := identity.NewStaticUserDirectory(nil)
	notifier := notify.NewMultiNotifier(
		notify.NewSlogNotifier(logger),
		notify.NewEmailNotifier(directory, notify.NewSlogEmailSender(logger)),
	)
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		verifier:   identity.NewPermissiveVerificationChecker(),
		directory:  directory,
		notifier:   notifier,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateRequestCommandHandler() commands.CreateRequestCommandHandler {
	var f commands.RequestUoWFactory = FuncRequestUoWFactory(func() commands.RequestUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateRequestCommandHandler(f)
}

func (c *CompositionRoot) CreateAcceptRequestCommandHandler() commands.AcceptRequestCommandHandler {
	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptRequestCommandHandler(f, c.verifier, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateAdvanceStatusCommandHandler() commands.AdvanceStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceStatusCommandHandler(f, services.NewSettlementService(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCancelRequestCommandHandler() commands.CancelRequestCommandHandler {
	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelRequestCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateMarkTransactionPaidCommandHandler() commands.MarkTransactionPaidCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkTransactionPaidCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateGetOpenRequestsQueryHandler() queries.GetOpenRequestsQueryHandler {
	return queries.NewGetOpenRequestsQueryHandler(c.gormDB, c.directory)
}

func (c *CompositionRoot) CreateGetMyRequestsQueryHandler() queries.GetMyRequestsQueryHandler {
	return queries.NewGetMyRequestsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetMyDeliveriesQueryHandler() queries.GetMyDeliveriesQueryHandler {
	return queries.NewGetMyDeliveriesQueryHandler(c.gormDB, c.directory)
}

func (c *CompositionRoot) CreateGetWalletQueryHandler() queries.GetWalletQueryHandler {
	return queries.NewGetWalletQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTransactionsQueryHandler() queries.GetTransactionsQueryHandler {
	return queries.NewGetTransactionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingTransactionsQueryHandler() queries.GetPendingTransactionsQueryHandler {
	return queries.NewGetPendingTransactionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	reader := ledgerrepo.NewGormPendingSettlementReader(c.gormDB)
	return jobs.NewJobManager(reader, c.notifier, c.logger)
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

type FuncRequestUoWFactory func() commands.RequestUoW

func (f FuncRequestUoWFactory) Create() commands.RequestUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
