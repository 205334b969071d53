/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/handlers"
	commonconfig "github.com/AMD-AIG-AIMA/Iris/common/pkg/config"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/crypto"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	commonklog "github.com/AMD-AIG-AIMA/Iris/common/pkg/klog"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/notification"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/options"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/queue"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/tasks"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/trace"
)

type Server struct {
	opts         *options.Options
	httpServer   *http.Server
	healthServer *http.Server
	queueManager *queue.Manager
	taskRunner   *tasks.Runner
	ctx          context.Context
	cancel       context.CancelFunc
	isInited     bool
}

// NewServer creates and returns a new Server instance.
func NewServer() (*Server, error) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	s := &Server{
		opts:   &options.Options{},
		ctx:    ctx,
		cancel: cancel,
	}
	if err := s.init(); err != nil {
		cancel()
		return nil, err
	}
	return s, nil
}

// init parses flags, initializes logging and configuration, prepares the
// database schema and brings up the background services.
func (s *Server) init() error {
	gin.SetMode(gin.ReleaseMode)
	var err error
	if err = s.opts.InitFlags(); err != nil {
		klog.ErrorS(err, "failed to parse flags")
		return err
	}
	if err = s.initLogs(); err != nil {
		klog.ErrorS(err, "failed to init logs")
		return err
	}
	if err = s.initConfig(); err != nil {
		klog.ErrorS(err, "failed to init config")
		return err
	}
	if commonconfig.IsCryptoEnable() && crypto.NewCrypto() == nil {
		return fmt.Errorf("the crypto key is missing or not 16 bytes")
	}
	if err = s.initDatabase(); err != nil {
		klog.ErrorS(err, "failed to init database")
		return err
	}
	if commonconfig.IsNotificationEnable() {
		if err = notification.InitNotificationManager(s.ctx, commonconfig.GetNotificationConfig()); err != nil {
			klog.ErrorS(err, "failed to init notification manager")
			return err
		}
	}
	if commonconfig.IsTracingEnable() {
		if err = trace.InitTracer("primus-iris-apiserver"); err != nil {
			klog.Warningf("Failed to init tracer: %v", err)
		}
	} else {
		klog.Info("Tracing is disabled (tracing.enable: false)")
	}
	s.isInited = true
	return nil
}

// Start brings up the queue workers, the long-task runner and the HTTP
// server, then waits for a termination signal.
func (s *Server) Start() {
	if !s.isInited {
		klog.Errorf("please init api-server first")
		return
	}
	gin.EnableJsonDecoderDisallowUnknownFields()

	klog.Infof("starting api-server")
	s.taskRunner = tasks.NewRunner()
	if err := s.taskRunner.Start(s.ctx); err != nil {
		klog.ErrorS(err, "failed to start task runner")
		return
	}
	if commonconfig.IsQueueEnable() {
		s.queueManager = queue.NewManager()
		if err := s.queueManager.Start(s.ctx); err != nil {
			klog.ErrorS(err, "failed to start queue manager")
			return
		}
	}

	go func() {
		if err := s.startHttpServer(); err != nil && err != http.ErrServerClosed {
			klog.ErrorS(err, "failed to start http-server")
			s.cancel()
		}
	}()
	go func() {
		if err := s.startHealthServer(); err != nil && err != http.ErrServerClosed {
			klog.ErrorS(err, "failed to start health-server")
			s.cancel()
		}
	}()

	<-s.ctx.Done()
	s.Stop()
}

// Stop shuts the services down in reverse start order and flushes logs.
func (s *Server) Stop() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	klog.Info("shutting down http server...")
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			klog.ErrorS(err, "failed to shutdown httpserver")
		}
	}
	if s.healthServer != nil {
		if err := s.healthServer.Shutdown(ctx); err != nil {
			klog.ErrorS(err, "failed to shutdown health server")
		}
	}
	if s.queueManager != nil {
		s.queueManager.Stop()
	}
	if s.taskRunner != nil {
		s.taskRunner.Stop()
	}
	if err := trace.CloseTracer(); err != nil {
		klog.ErrorS(err, "failed to close tracer")
	}
	klog.Info("apiserver is stopped")
	klog.Flush()
}

func (s *Server) initLogs() error {
	return commonklog.Init(s.opts.LogfilePath, s.opts.LogFileSize)
}

func (s *Server) initConfig() error {
	fullPath, err := filepath.Abs(s.opts.Config)
	if err != nil {
		return err
	}
	if err = commonconfig.LoadConfig(fullPath); err != nil {
		return fmt.Errorf("config path: %s, err: %v", fullPath, err)
	}
	return nil
}

// initDatabase connects, migrates the schema and seeds the built-in rows.
// The vector column dimension follows the configured embedding model.
func (s *Server) initDatabase() error {
	return dbclient.NewClient().Migrate(s.ctx, commonconfig.GetEmbeddingDimensions())
}

// startHttpServer builds the route table and listens on the configured port.
func (s *Server) startHttpServer() error {
	if commonconfig.GetServerPort() <= 0 {
		return fmt.Errorf("the apiserver port is not defined")
	}
	handler := handlers.InitHttpHandlers(s.taskRunner)
	addr := fmt.Sprintf(":%d", commonconfig.GetServerPort())
	s.httpServer = &http.Server{Addr: addr, Handler: handler}
	klog.Infof("http-server listen port: %d", commonconfig.GetServerPort())
	return s.httpServer.ListenAndServe()
}

// startHealthServer serves liveness and readiness probes on a dedicated
// port so probes stay reachable while the API port is saturated.
func (s *Server) startHealthServer() error {
	if !commonconfig.IsHealthCheckEnabled() {
		return nil
	}
	if commonconfig.GetHealthCheckPort() <= 0 {
		return fmt.Errorf("the healthcheck port is not defined")
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	addr := fmt.Sprintf(":%d", commonconfig.GetHealthCheckPort())
	s.healthServer = &http.Server{Addr: addr, Handler: mux}
	klog.Infof("health-server listen port: %d", commonconfig.GetHealthCheckPort())
	return s.healthServer.ListenAndServe()
}
