package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"os"

	echoportal "github.com/trezcool/lideo/apps/portal/echo"
	"github.com/trezcool/lideo/core"
	emailsvc "github.com/trezcool/lideo/services/email"
	logsvc "github.com/trezcool/lideo/services/logger"
	"github.com/trezcool/lideo/storage/lmsapi"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "PORTAL : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	client, err := lmsapi.NewClient(conf, logger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up LMS API client: %v", err), err)
	}

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	// =========================================================================
	// Start Portal Service

	server := echoportal.NewServer(
		echoportal.ServerDeps{
			Conf:         conf,
			Logger:       logger,
			Mail:         mailSvc,
			Auth:         lmsapi.NewAuthClient(client),
			Universities: lmsapi.NewUniversityClient(client),
			Admins:       lmsapi.NewAdminClient(client),
			Students:     lmsapi.NewStudentClient(client),
			Courses:      lmsapi.NewCourseClient(client),
			Enrollments:  lmsapi.NewEnrollmentClient(client),
			Topics:       lmsapi.NewTopicClient(client),
			Files:        lmsapi.NewFileClient(client),
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
