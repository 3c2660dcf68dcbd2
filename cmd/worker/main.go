package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	membershipUsecases "github.com/parlourcover/parlour/internal/application/membership/usecases"
	paymentUsecases "github.com/parlourcover/parlour/internal/application/payment/usecases"
	"github.com/parlourcover/parlour/internal/infrastructure/scheduler"
	"github.com/parlourcover/parlour/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/parlourcover/parlour/internal/interfaces/http"
)

func main() {
	// Parse environment from command line or env variable
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	rt, err := bootstrap.Open(env, os.Getenv("PARLOUR_CONFIG"))
	if err != nil {
		fmt.Printf("failed to start worker: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()

	log := rt.Log
	cfg := rt.Config
	log.Infow("starting batch job worker", "environment", env)

	container, err := httpRouter.NewContainer(rt.DB, cfg, log)
	if err != nil {
		log.Fatalw("failed to initialize container", "error", err)
	}
	defer container.Shutdown()

	manager, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		log.Fatalw("failed to create scheduler", "error", err)
	}

	jobs := container.BatchJobs()
	if err := manager.RegisterPaymentStatusJob(cfg.Scheduler.PaymentStatusCron, jobs[paymentUsecases.JobPaymentStatus]); err != nil {
		log.Fatalw("failed to register payment status job", "error", err)
	}
	if err := manager.RegisterWaitingPeriodJob(cfg.Scheduler.WaitingPeriodCron, jobs[membershipUsecases.JobWaitingPeriod]); err != nil {
		log.Fatalw("failed to register waiting period job", "error", err)
	}

	manager.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	log.Infow("received signal, shutting down", "signal", sig)
	if err := manager.Stop(); err != nil {
		log.Errorw("scheduler stopped with error", "error", err)
	}
	log.Infow("batch job worker stopped")
}
