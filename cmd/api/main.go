package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/peoplecore/hr-portal-go/internal/config"
	"github.com/peoplecore/hr-portal-go/internal/domain/attendance"
	"github.com/peoplecore/hr-portal-go/internal/domain/leave"
	"github.com/peoplecore/hr-portal-go/internal/domain/lifecycle"
	"github.com/peoplecore/hr-portal-go/internal/domain/staff"
	appHTTP "github.com/peoplecore/hr-portal-go/internal/handler/http"
	"github.com/peoplecore/hr-portal-go/internal/pkg/clock"
	"github.com/peoplecore/hr-portal-go/internal/pkg/database"
	"github.com/peoplecore/hr-portal-go/internal/pkg/jwt"
	"github.com/peoplecore/hr-portal-go/internal/repository/memory"
	"github.com/peoplecore/hr-portal-go/internal/repository/postgresql"
	attendanceService "github.com/peoplecore/hr-portal-go/internal/service/attendance"
	leaveService "github.com/peoplecore/hr-portal-go/internal/service/leave"
	lifecycleService "github.com/peoplecore/hr-portal-go/internal/service/lifecycle"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	policies, err := leave.ParsePolicies(cfg.Leave.Types)
	if err != nil {
		log.Fatal("Failed to parse leave types: ", err)
	}

	defaultShift := staff.ShiftConfig{
		ShiftStart:            cfg.Shift.ShiftStart,
		GraceMinutes:          cfg.Shift.GraceMinutes,
		StandardShiftHours:    cfg.Shift.StandardShiftHours,
		HalfDayThresholdHours: cfg.Shift.HalfDayThresholdHours,
		BreakMinutes:          cfg.Shift.BreakMinutes,
		CutoffHour:            cfg.Shift.CutoffHour,
	}

	var (
		attendanceRepo attendance.Repository
		requestRepo    leave.RequestRepository
		ledgerRepo     leave.LedgerRepository
		staffRepo      staff.StaffRepository
		calendar       leave.HolidayCalendar
		idemRepo       lifecycle.IdempotencyRepository
		txManager      lifecycle.TxManager
	)

	switch cfg.App.StorageDriver {
	case "postgres":
		db, err := database.Connect(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
		if err != nil {
			fmt.Println("Error connecting to database:", err)
			return
		}
		attendanceRepo = postgresql.NewAttendanceRepository(db)
		requestRepo = postgresql.NewLeaveRequestRepository(db)
		ledgerRepo = postgresql.NewLeaveLedgerRepository(db)
		staffRepo = postgresql.NewStaffRepository(db, defaultShift)
		calendar = postgresql.NewHolidayCalendar(db)
		idemRepo = postgresql.NewIdempotencyRepository(db)
		txManager = postgresql.NewTxManager(db)
	case "memory":
		store := memory.NewStore(defaultShift)
		attendanceRepo = memory.NewAttendanceRepository(store)
		requestRepo = memory.NewLeaveRequestRepository(store)
		ledgerRepo = memory.NewLeaveLedgerRepository(store)
		staffRepo = memory.NewStaffRepository(store)
		calendar = memory.NewHolidayCalendar(store)
		idemRepo = memory.NewIdempotencyRepository(store)
		txManager = store
	default:
		log.Fatal("Unsupported storage driver: ", cfg.App.StorageDriver)
	}

	clk := clock.System()
	loc := cfg.Location()

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	engine := attendanceService.NewEngine(attendanceRepo, staffRepo, clk, loc)
	workflow := leaveService.NewWorkflow(requestRepo, ledgerRepo, staffRepo, calendar, policies, clk, loc)
	gateway := lifecycleService.NewGateway(engine, workflow, txManager, idemRepo, clk, loc)

	attendanceHandler := appHTTP.NewAttendanceHandler(gateway)
	leaveHandler := appHTTP.NewLeaveHandler(gateway)

	router := appHTTP.NewRouter(cfg, jwtService, attendanceHandler, leaveHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server stopped: ", err)
	}
}
