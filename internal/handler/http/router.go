package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/shiftclock/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	allowedOrigin string,
	authHandler AuthHandler,
	timeEventHandler TimeEventHandler,
	employeeHandler EmployeeHandler,
	payPeriodHandler PayPeriodHandler,
	timesheetHandler TimesheetHandler,
	payslipHandler PayslipHandler,
	settingHandler SettingHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeclock-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// Kiosk endpoints stay public; employees authenticate per event
		// with their badge number and PIN.
		r.Route("/time-events", func(r chi.Router) {
			r.Post("/", timeEventHandler.Record)
			r.Get("/server-time", timeEventHandler.ServerTime)
			r.Get("/status/{employeeNumber}", timeEventHandler.GetStatus)
			r.Get("/recent/{employeeNumber}", timeEventHandler.GetRecent)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Get("/{id}", employeeHandler.Get)
				r.Get("/{id}/compensation", employeeHandler.GetCompensationHistory)
				r.Get("/{id}/compensation/current", employeeHandler.GetCurrentCompensation)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", employeeHandler.Create)
					r.Put("/{id}/pin", employeeHandler.SetPIN)
					r.Delete("/{id}", employeeHandler.Deactivate)
					r.Post("/{id}/compensation", employeeHandler.AddCompensation)
				})
			})

			r.Route("/pay-periods", func(r chi.Router) {
				r.Get("/", payPeriodHandler.List)
				r.Get("/{id}", payPeriodHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", payPeriodHandler.Create)
				})
			})

			r.Route("/timesheets", func(r chi.Router) {
				r.Get("/", timesheetHandler.List)
				r.Get("/{id}", timesheetHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/generate", timesheetHandler.Generate)
					r.Post("/{id}/rebuild", timesheetHandler.Rebuild)
					r.Post("/{id}/review", timesheetHandler.Review)
					r.Post("/{id}/approve", timesheetHandler.Approve)
					r.Post("/{id}/lock", timesheetHandler.Lock)
					r.Post("/{id}/days/{workDate}/adjustments", timesheetHandler.AddAdjustment)
				})
			})

			r.Route("/payslips", func(r chi.Router) {
				r.Get("/", payslipHandler.List)
				r.Get("/{id}", payslipHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/generate", payslipHandler.Generate)
					r.Post("/{id}/finalize", payslipHandler.Finalize)
					r.Post("/{id}/void", payslipHandler.Void)
				})
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", settingHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/", settingHandler.Update)
				})
			})
		})
	})
	return r
}
