// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moov-io/banklink/internal/harbor"
	"github.com/moov-io/banklink/internal/meridian"
	"github.com/moov-io/banklink/internal/registry"
	"github.com/moov-io/banklink/internal/route"
	"github.com/moov-io/banklink/internal/webhooks"
	"github.com/moov-io/banklink/pkg/banklink"
	appcfg "github.com/moov-io/banklink/pkg/config"

	"github.com/moov-io/base/admin"

	"github.com/gorilla/mux"
)

var (
	httpAddr  = flag.String("http.addr", "", "HTTP listen address")
	adminAddr = flag.String("admin.addr", "", "Admin HTTP listen address")

	flagConfigFile = flag.String("config", "", "Filepath for config file to load")
)

func main() {
	flag.Parse()

	configFilepath := *flagConfigFile
	if v := os.Getenv("CONFIG_FILE"); v != "" {
		configFilepath = v
	}
	cfg, err := appcfg.FromFile(configFilepath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	cfg.Logger.Log("startup", fmt.Sprintf("Starting banklink server version %s", banklink.Version))

	// Listen for application termination.
	errs := make(chan error)
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errs <- fmt.Errorf("%s", <-c)
	}()

	// Spin up admin HTTP server and optionally override -admin.addr
	if *adminAddr != "" {
		cfg.Admin.BindAddress = *adminAddr
	}
	adminServer := admin.NewServer(cfg.Admin.BindAddress)
	adminServer.AddVersionHandler(banklink.Version) // Setup 'GET /version'
	go func() {
		cfg.Logger.Log("admin", fmt.Sprintf("listening on %s", adminServer.BindAddr()))
		if err := adminServer.Listen(); err != nil {
			err = fmt.Errorf("problem starting admin http: %v", err)
			cfg.Logger.Log("admin", err)
			errs <- err
		}
	}()
	defer adminServer.Shutdown()

	httpClient, err := route.TLSHttpClient(os.Getenv("HTTP_CLIENT_CAFILE"))
	if err != nil {
		panic(fmt.Sprintf("problem creating TLS ready *http.Client: %v", err))
	}

	// Construct the provider adapters. The registry owns their lifetimes;
	// nothing is constructed implicitly.
	harborAdapter := harbor.NewAdapter(cfg.Logger, harbor.NewClient(
		cfg.Logger, cfg.Providers.Harbor.BaseURL, cfg.Providers.Harbor.APIKey, httpClient))
	meridianAdapter := meridian.NewAdapter(cfg.Logger, meridian.NewClient(
		cfg.Logger, cfg.Providers.Meridian.BaseURL, cfg.Providers.Meridian.SigningKey, httpClient))

	reg := registry.New(cfg.Logger, cfg.Providers.Default, map[banklink.Provider]registry.Options{
		banklink.Harbor: {
			Adapter:    harborAdapter,
			Currencies: cfg.Providers.Harbor.Currencies,
			Regions:    cfg.Providers.Harbor.Regions,
		},
		banklink.Meridian: {
			Adapter:    meridianAdapter,
			Currencies: cfg.Providers.Meridian.Currencies,
			Regions:    cfg.Providers.Meridian.Regions,
		},
	})
	reg.RegisterRoutes(adminServer)

	adminServer.AddLivenessCheck("harbor", harborAdapter.Ping)
	adminServer.AddLivenessCheck("meridian", meridianAdapter.Ping)

	verifiers := map[banklink.Provider]*webhooks.Verifier{
		banklink.Harbor:   webhooks.NewVerifier(cfg.Logger, banklink.Harbor, cfg.Providers.Harbor.WebhookSecret),
		banklink.Meridian: webhooks.NewVerifier(cfg.Logger, banklink.Meridian, cfg.Providers.Meridian.WebhookSecret),
	}

	handler := mux.NewRouter()
	route.PingRoute(cfg.Logger, handler)
	webhooks.AddRoutes(cfg.Logger, handler, verifiers)

	if *httpAddr != "" {
		cfg.Http.BindAddress = *httpAddr
	}
	serve := &http.Server{
		Addr:              cfg.Http.BindAddress,
		Handler:           handler,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       5 * time.Minute,
	}
	shutdownServer := func() {
		if err := serve.Shutdown(context.TODO()); err != nil {
			cfg.Logger.Log("shutdown", err)
		}
	}
	defer shutdownServer()

	go func() {
		cfg.Logger.Log("http", fmt.Sprintf("listening on %s", cfg.Http.BindAddress))
		if err := serve.ListenAndServe(); err != nil {
			cfg.Logger.Log("http", err)
		}
	}()

	if err := <-errs; err != nil {
		cfg.Logger.Log("exit", err)
	}
}
