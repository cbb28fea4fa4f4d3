package api

import (
	"github.com/gin-gonic/gin"
	"github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/accesshub/campus-back/docs"
	"github.com/accesshub/campus-back/internal/auth"
	"github.com/accesshub/campus-back/internal/config"
	"github.com/accesshub/campus-back/internal/db"
	"github.com/accesshub/campus-back/internal/models"
)

// @title           Campus Access API
// @version         1.0
// @description     Facility access-control administration: users, rooms, device boards, schedules, sessions, attendance, and access logs.
// @host            localhost:8000
// @BasePath        /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func SetupRouter(cfg *config.Config) *gin.Engine {
	RegisterBindings()
	if cfg.GoogleClientID != "" {
		auth.InitGoogle(cfg)
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		if err := db.PingDB(); err != nil {
			c.JSON(500, gin.H{"status": "db_ping_error"})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/auth/login", auth.LoginHandler(cfg))
	r.POST("/auth/refresh", auth.RefreshHandler(cfg))
	if cfg.GoogleClientID != "" {
		r.GET("/auth/google/login", auth.GoogleLoginHandler())
		r.GET("/auth/google/callback", auth.GoogleCallbackHandler(cfg))
	}

	// Device boards authenticate with their enrollment token, not JWT.
	device := r.Group("/device")
	device.Use(auth.DeviceMiddleware())
	{
		device.POST("/heartbeat", Heartbeat(cfg))
		device.POST("/access-events", AccessEvent)
	}

	v1 := r.Group("/api/v1")
	v1.Use(auth.AuthMiddleware(cfg))

	admin := v1.Group("")
	admin.Use(auth.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/users", IndexUsers)
		admin.POST("/users", StoreUser)
		admin.GET("/users/:id", ShowUser)
		admin.PUT("/users/:id", UpdateUser)
		admin.DELETE("/users/:id", DeleteUser)
		admin.POST("/users/:id/credentials", StoreCredential)
		admin.DELETE("/users/:id/credentials/:credential_id", DeleteCredential)

		admin.GET("/devices", IndexDevices)
		admin.POST("/devices", StoreDevice)
		admin.GET("/devices/:id", ShowDevice)
		admin.PUT("/devices/:id", UpdateDevice)
		admin.DELETE("/devices/:id", DeleteDevice)

		admin.GET("/access-logs", IndexAccessLogs)
	}

	staff := v1.Group("")
	staff.Use(auth.RequireRoles(models.RoleAdmin, models.RoleFaculty))
	{
		staff.POST("/rooms", StoreRoom)
		staff.PUT("/rooms/:id", UpdateRoom)
		staff.DELETE("/rooms/:id", DeleteRoom)

		staff.POST("/subjects", StoreSubject)
		staff.PUT("/subjects/:id", UpdateSubject)
		staff.DELETE("/subjects/:id", DeleteSubject)

		staff.POST("/sections", StoreSection)
		staff.PUT("/sections/:id", UpdateSection)
		staff.DELETE("/sections/:id", DeleteSection)

		staff.POST("/section-subjects", StoreSectionSubject)
		staff.PUT("/section-subjects/:id", UpdateSectionSubject)
		staff.DELETE("/section-subjects/:id", DeleteSectionSubject)
		staff.POST("/section-subject-students", StoreSectionSubjectStudent)
		staff.DELETE("/section-subject-students/:id", DeleteSectionSubjectStudent)

		staff.POST("/schedules", StoreSchedule)
		staff.PUT("/schedules/:id", UpdateSchedule)
		staff.DELETE("/schedules/:id", DeleteSchedule)
		staff.POST("/schedule-periods", StoreSchedulePeriod)
		staff.PUT("/schedule-periods/:id", UpdateSchedulePeriod)
		staff.DELETE("/schedule-periods/:id", DeleteSchedulePeriod)

		staff.POST("/section-subject-schedules", StoreSectionSubjectSchedule)
		staff.PUT("/section-subject-schedules/:id", UpdateSectionSubjectSchedule)
		staff.DELETE("/section-subject-schedules/:id", DeleteSectionSubjectSchedule)
		staff.POST("/section-subject-schedules/import", ImportSectionSubjectSchedules)

		staff.POST("/student-schedules", StoreStudentSchedule)
		staff.DELETE("/student-schedules/:id", DeleteStudentSchedule)

		staff.POST("/schedule-sessions", StoreScheduleSession)
		staff.PUT("/schedule-sessions/:id", UpdateScheduleSession)
		staff.DELETE("/schedule-sessions/:id", DeleteScheduleSession)

		staff.POST("/schedule-attendance", StoreScheduleAttendance)
		staff.PUT("/schedule-attendance/:id", UpdateScheduleAttendance)
		staff.DELETE("/schedule-attendance/:id", DeleteScheduleAttendance)
	}

	// Reads are open to any authenticated role.
	{
		v1.GET("/rooms", IndexRooms)
		v1.GET("/rooms/:id", ShowRoom)
		v1.GET("/subjects", IndexSubjects)
		v1.GET("/subjects/:id", ShowSubject)
		v1.GET("/sections", IndexSections)
		v1.GET("/sections/:id", ShowSection)
		v1.GET("/section-subjects", IndexSectionSubjects)
		v1.GET("/section-subjects/:id", ShowSectionSubject)
		v1.GET("/section-subject-students", IndexSectionSubjectStudents)
		v1.GET("/schedules", IndexSchedules)
		v1.GET("/schedules/:id", ShowSchedule)
		v1.GET("/schedule-periods", IndexSchedulePeriods)
		v1.GET("/schedule-periods/:id", ShowSchedulePeriod)
		v1.GET("/section-subject-schedules", IndexSectionSubjectSchedules)
		v1.GET("/section-subject-schedules/:id", ShowSectionSubjectSchedule)
		v1.GET("/student-schedules", IndexStudentSchedules)
		v1.GET("/student-schedules/:id", ShowStudentSchedule)
		v1.GET("/schedule-sessions", IndexScheduleSessions)
		v1.GET("/schedule-sessions/:id", ShowScheduleSession)
		v1.GET("/schedule-sessions/:id/attendance.xlsx", ExportSessionAttendance)
		v1.GET("/schedule-attendance", IndexScheduleAttendance)
		v1.GET("/schedule-attendance/:id", ShowScheduleAttendance)
	}

	return r
}
