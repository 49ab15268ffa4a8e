package main

import (
	"fmt"
	"net/http"

	"github.com/shiftclock/timeclock-backend-go/internal/config"
	appHTTP "github.com/shiftclock/timeclock-backend-go/internal/handler/http"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/cron"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/database"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/jwt"
	"github.com/shiftclock/timeclock-backend-go/internal/repository/postgresql"
	authService "github.com/shiftclock/timeclock-backend-go/internal/service/auth"
	settingService "github.com/shiftclock/timeclock-backend-go/internal/service/company"
	compensationService "github.com/shiftclock/timeclock-backend-go/internal/service/compensation"
	employeeService "github.com/shiftclock/timeclock-backend-go/internal/service/employee"
	payPeriodService "github.com/shiftclock/timeclock-backend-go/internal/service/payperiod"
	payslipService "github.com/shiftclock/timeclock-backend-go/internal/service/payslip"
	timeEventService "github.com/shiftclock/timeclock-backend-go/internal/service/timeevent"
	timesheetService "github.com/shiftclock/timeclock-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	timeEventRepo := postgresql.NewTimeEventRepository(db)
	compensationRepo := postgresql.NewCompensationRepository(db)
	payPeriodRepo := postgresql.NewPayPeriodRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	settingRepo := postgresql.NewSettingRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	authSvc := authService.NewAuthService(userRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	timeEventSvc := timeEventService.NewTimeEventService(db, timeEventRepo, employeeRepo)
	compensationSvc := compensationService.NewCompensationService(db, compensationRepo, employeeRepo)
	payPeriodSvc := payPeriodService.NewPayPeriodService(payPeriodRepo)
	timesheetSvc := timesheetService.NewTimesheetService(db, timesheetRepo, timeEventRepo, employeeRepo, payPeriodRepo, settingRepo)
	payslipSvc := payslipService.NewPayslipService(db, payslipRepo, timesheetRepo, compensationRepo, employeeRepo, payPeriodRepo, settingRepo)
	settingSvc := settingService.NewSettingService(settingRepo, companyRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	timeEventHandler := appHTTP.NewTimeEventHandler(timeEventSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc, compensationSvc)
	payPeriodHandler := appHTTP.NewPayPeriodHandler(payPeriodSvc)
	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc)
	payslipHandler := appHTTP.NewPayslipHandler(payslipSvc)
	settingHandler := appHTTP.NewSettingHandler(settingSvc)

	if cfg.App.RebuildEnabled {
		scheduler := cron.NewScheduler()
		timesheetJobs := cron.NewTimesheetJobs(timesheetRepo, timeEventRepo, payPeriodRepo, settingRepo, db)
		timesheetJobs.RegisterJobs(scheduler, cfg.App.RebuildInterval)
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := appHTTP.NewRouter(
		JWTService,
		cfg.App.AllowedOrigin,
		authHandler,
		timeEventHandler,
		employeeHandler,
		payPeriodHandler,
		timesheetHandler,
		payslipHandler,
		settingHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
