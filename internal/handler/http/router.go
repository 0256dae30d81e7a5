package http

import (
	"log/slog"
	"os"

	"github.com/shiftwise/workforce-backend-go/internal/config"
	"github.com/shiftwise/workforce-backend-go/internal/handler/http/middleware"
	"github.com/shiftwise/workforce-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg config.AppConfig,
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	overtimeHandler OvertimeHandler,
	payrollHandler PayrollHandler,
	notificationHandler NotificationHandler,
	employeeHandler EmployeeHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workforce-backend"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/my", attendanceHandler.GetMyAttendance)

				r.Group(func(r chi.Router) {
					r.Use(middleware.ReviewerOnly)
					r.Get("/", attendanceHandler.ListAttendance)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Route("/requests", func(r chi.Router) {
					r.Post("/", leaveHandler.CreateRequest)
					r.Get("/my", leaveHandler.GetMyRequests)
					r.Get("/{id}", leaveHandler.GetRequest)

					r.Group(func(r chi.Router) {
						r.Use(middleware.ReviewerOnly)
						r.Get("/", leaveHandler.ListRequests)
						r.Post("/{id}/approve", leaveHandler.ApproveRequest)
						r.Post("/{id}/reject", leaveHandler.RejectRequest)
					})
				})

				r.Route("/balances", func(r chi.Router) {
					r.Get("/my", leaveHandler.GetMyBalances)

					r.Group(func(r chi.Router) {
						r.Use(middleware.ReviewerOnly)
						r.Get("/{employeeID}", leaveHandler.GetBalances)
					})
				})
			})

			r.Route("/overtime/requests", func(r chi.Router) {
				r.Post("/", overtimeHandler.CreateRequest)
				r.Get("/my", overtimeHandler.GetMyRequests)
				r.Get("/{id}", overtimeHandler.GetRequest)

				r.Group(func(r chi.Router) {
					r.Use(middleware.ReviewerOnly)
					r.Get("/", overtimeHandler.ListRequests)
					r.Post("/{id}/approve", overtimeHandler.ApproveRequest)
					r.Post("/{id}/reject", overtimeHandler.RejectRequest)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/summary/my", payrollHandler.GetMyWageSummary)

				r.Route("/cycles", func(r chi.Router) {
					r.Use(middleware.ReviewerOnly)
					r.Post("/", payrollHandler.CreateCycle)
					r.Get("/", payrollHandler.ListCycles)
					r.Get("/{id}", payrollHandler.GetCycle)
					r.Post("/{id}/process", payrollHandler.ProcessCycle)
					r.Post("/{id}/close", payrollHandler.CloseCycle)
					r.Post("/{id}/confirm", payrollHandler.ConfirmCycle)
					r.Get("/{id}/computations", payrollHandler.ListComputations)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Get("/unread-count", notificationHandler.UnreadCount)
				r.Post("/{id}/read", notificationHandler.MarkRead)
				r.Post("/read-all", notificationHandler.MarkAllRead)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.ReviewerOnly)
				r.Get("/{id}/wage-config", employeeHandler.GetWageConfig)
				r.Put("/{id}/wage-config", employeeHandler.UpdateWageConfig)
			})
		})
	})

	return r
}
