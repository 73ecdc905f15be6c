// Package main provides the entry point for the kernel daemon: the
// process that owns every singleton collaborator (Coordinator, Budget,
// Watchdog, Health Dashboard, Approval Queue, Memory index) and exposes
// them over the REST surface in the api package (spec §6).
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vfirsov/kernel/api"
	"github.com/vfirsov/kernel/config"
	"github.com/vfirsov/kernel/contracts"
	"github.com/vfirsov/kernel/internal/approval"
	ctxpkg "github.com/vfirsov/kernel/internal/context"
	"github.com/vfirsov/kernel/internal/health"
	kernelpkg "github.com/vfirsov/kernel/internal/kernel"
	"github.com/vfirsov/kernel/internal/orchestration"
	"github.com/vfirsov/kernel/internal/watchdog"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP server address")
	rolesPath := flag.String("roles", "", "path to a TOML role registry file (default: built-in 20-role registry)")
	totalBudget := flag.Int64("budget", 50_000, "total token budget for the run")
	maxFailures := flag.Int("max-failures", 3, "consecutive self-check failures before the watchdog latches safe mode")
	restorePath := flag.String("restore-db", "", "path to the bbolt restore-point database (default: in-memory, no persistence)")
	jwtSecret := flag.String("jwt-secret", "", "HMAC secret for credential issuance (required to serve POST auth)")
	flag.Parse()

	log.Printf("starting kernel on %s", *addr)

	roles, err := loadRoles(*rolesPath)
	if err != nil {
		log.Fatalf("loading role registry: %v", err)
	}

	coord, _, _, budget := orchestration.NewCoordinatorWithDefaults(orchestration.FactoryOptions{
		MaxNodes:        256,
		MaxDepth:        16,
		MaxConcurrent:   8,
		TotalBudget:     contracts.TokenCount(*totalBudget),
		Roles:           roles.Lookup,
		TaskDescription: "kernel-managed swarm",
	})

	var restore *watchdog.BoltRestoreStore
	if *restorePath != "" {
		restore, err = watchdog.NewBoltRestoreStore(*restorePath)
		if err != nil {
			log.Fatalf("opening restore store: %v", err)
		}
	}

	var wd contracts.Watchdog
	if restore != nil {
		wd = watchdog.NewWatchdog(*maxFailures, restore)
	} else {
		wd = watchdog.NewWatchdog(*maxFailures, nil)
	}
	ctxMonitor := health.NewContextHealthMonitor(contracts.TokenCount(*totalBudget), 0)
	dashboard := health.NewHealthDashboard(wd, ctxMonitor)

	approvals := approval.NewApprovalQueue(0)
	memory := ctxpkg.NewMemoryIndex()

	k := kernelpkg.NewKernel(contracts.KernelConfig{
		Name:    "kernel",
		Version: "dev",
		Mode:    contracts.ModeStandard,
	})
	if err := k.Start(); err != nil {
		log.Fatalf("starting kernel: %v", err)
	}

	var creds *kernelpkg.CredentialIssuer
	if *jwtSecret != "" {
		creds = kernelpkg.NewCredentialIssuer([]byte(*jwtSecret), time.Hour)
	}

	server := api.NewServer(*addr, api.Deps{
		Kernel:      k,
		Coordinator: coord,
		Budget:      budget,
		HealthDash:  dashboard,
		Approvals:   approvals,
		Memory:      memory,
		Credentials: creds,
	})

	done := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
		if err := k.Stop(); err != nil {
			log.Printf("kernel stop error: %v", err)
		}
		close(done)
	}()

	if err := server.Start(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}

	<-done
	log.Println("kernel stopped")
}

func loadRoles(path string) (*config.RoleRegistry, error) {
	if path == "" {
		return config.NewRoleRegistry(config.DefaultRoles())
	}
	return config.NewLoader().LoadFromFile(path)
}
