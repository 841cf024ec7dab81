package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	httptransport "github.com/govhub/helpdesk-portal/internal/api/http"
	"github.com/govhub/helpdesk-portal/internal/api/http/handlers"
	"github.com/govhub/helpdesk-portal/internal/auth"
	"github.com/govhub/helpdesk-portal/internal/backend"
	"github.com/govhub/helpdesk-portal/internal/events"
	"github.com/govhub/helpdesk-portal/internal/observability"
	"github.com/govhub/helpdesk-portal/internal/repository"
	"github.com/govhub/helpdesk-portal/internal/service"
	"github.com/govhub/helpdesk-portal/internal/web"
	"github.com/govhub/helpdesk-portal/internal/worker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the portal HTTP server",
	RunE:  runServe,
}

var serveOpts struct {
	port     string
	sessions string
}

func init() {
	addServeFlags(serveCmd.Flags())
}

func addServeFlags(fs *pflag.FlagSet) {
	fs.StringVar(&serveOpts.port, "port", "", "override APP_PORT")
	fs.StringVar(&serveOpts.sessions, "session-store", "", "override SESSION_STORE (redis, postgres, memory)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if serveOpts.port != "" {
		cfg.App.Port = serveOpts.port
	}
	if serveOpts.sessions != "" {
		cfg.Session.Store = serveOpts.sessions
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	metrics := observability.NewMetrics()

	sessions, err := openSessionStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer sessions.close()

	dispatcher := events.NewInMemoryDispatcher(logger)
	kafka := events.NewKafkaPublisher(cfg.Kafka, logger)
	defer kafka.Close() //nolint:errcheck
	worker.StartAuditWorkers(dispatcher, worker.NewAuditLogger(logger, metrics), kafka)

	if sessions.expired != nil {
		sweeper, err := worker.StartSessionSweeper(cfg.Session.SweepSchedule, sessions.expired, logger)
		if err != nil {
			return err
		}
		defer sweeper.Stop()
	}

	api := backend.New(cfg.Backend, logger, metrics)
	departmentRepo := repository.NewDepartmentRepository(api)
	staffRepo := repository.NewStaffRepository(api)
	ticketRepo := repository.NewTicketRepository(api)

	authService := service.NewAuthService(repository.NewAuthRepository(api), dispatcher)
	org := service.OrgDependencies{DepartmentRepo: departmentRepo, StaffRepo: staffRepo, Dispatcher: dispatcher}
	departmentService := service.NewDepartmentService(org)
	staffService := service.NewStaffService(org)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:     ticketRepo,
		DepartmentRepo: departmentRepo,
		CustomerRepo:   repository.NewCustomerRepository(api),
		Dispatcher:     dispatcher,
	})
	announcementRepo := repository.NewAnnouncementRepository(api)
	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		DashboardRepo:    repository.NewDashboardRepository(api),
		AnnouncementRepo: announcementRepo,
		Tickets:          ticketService,
	})
	messageService := service.NewMessageService(repository.NewMessageRepository(api), dispatcher)
	announcementService := service.NewAnnouncementService(announcementRepo, dispatcher)

	engine, err := web.NewEngine()
	if err != nil {
		return err
	}
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		Views:                 engine,
		DisableStartupMessage: !cfg.App.IsDev(),
		ReadTimeout:           30 * time.Second,
	})

	authMiddleware := auth.NewAuthMiddleware(sessions.store, cfg.Session, logger)
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:   logger,
		Metrics:  metrics,
		Sessions: authMiddleware,
		Timeout:  cfg.App.RequestTimeout(),
	})

	base := handlers.NewBase(logger, metrics)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"backend":  api,
			"sessions": sessions.store,
		}),
		Auth:          handlers.NewAuthHandler(base, authService, authMiddleware),
		Dashboard:     handlers.NewDashboardHandler(base, dashboardService),
		Departments:   handlers.NewDepartmentsHandler(base, departmentService),
		Staff:         handlers.NewStaffHandler(base, staffService, departmentService),
		Tickets:       handlers.NewTicketsHandler(base, ticketService, departmentService),
		Messages:      handlers.NewMessagesHandler(base, messageService, departmentService),
		Announcements: handlers.NewAnnouncementsHandler(base, announcementService),
		Metrics:       metrics,
		RateLimit:     cfg.RateLimit,
	})

	go func() {
		logger.Info("portal listening", zap.String("addr", cfg.App.Addr()), zap.String("session_store", cfg.Session.Store))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	return app.ShutdownWithTimeout(10 * time.Second)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
