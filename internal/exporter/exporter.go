// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package exporter publishes the local amdgpu devices and their
// classification as Prometheus metrics.
package exporter

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gpuspect/internal/asic"
	"gpuspect/internal/device"
)

const promMetricPrefix = "gpuspect_"

// Prober enumerates the GPUs to export.
type Prober interface {
	Probe() ([]device.GPU, error)
}

// Exporter holds the gauges of one registry and refreshes them from a prober.
type Exporter struct {
	prober       Prober
	registry     *prometheus.Registry
	info         *prometheus.GaugeVec
	computeUnits *prometheus.GaugeVec
	cacheBytes   *prometheus.GaugeVec
	queryErrors  *prometheus.CounterVec
	mutex        sync.Mutex
}

// New creates an exporter with its metrics registered on a private registry.
func New(prober Prober) *Exporter {
	e := &Exporter{
		prober:   prober,
		registry: prometheus.NewRegistry(),
		info: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: promMetricPrefix + "device_info",
				Help: "Classification of an amdgpu device, always 1",
			},
			[]string{"card", "pci_slot", "family", "asic", "chip_class", "gfx_target"},
		),
		computeUnits: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: promMetricPrefix + "device_compute_units",
				Help: "Active compute units of an amdgpu device",
			},
			[]string{"card"},
		),
		cacheBytes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: promMetricPrefix + "device_cache_bytes",
				Help: "Total cache size of an amdgpu device by level",
			},
			[]string{"card", "level"},
		),
		queryErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: promMetricPrefix + "device_query_errors_total",
				Help: "Failed device info queries",
			},
			[]string{"card"},
		),
	}
	e.registry.MustRegister(e.info, e.computeUnits, e.cacheBytes, e.queryErrors)
	return e
}

// Registry returns the registry the metrics are registered on.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// Refresh scans the devices and replaces the gauge values. Devices that
// disappeared since the last refresh are dropped.
func (e *Exporter) Refresh() error {
	gpus, err := e.prober.Probe()
	if err != nil {
		return err
	}
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.info.Reset()
	e.computeUnits.Reset()
	e.cacheBytes.Reset()
	for _, gpu := range gpus {
		if gpu.Err != nil {
			e.queryErrors.WithLabelValues(gpu.Card).Inc()
			continue
		}
		v := gpu.Variant()
		e.info.WithLabelValues(
			gpu.Card,
			gpu.PCISlot,
			gpu.Family().Name(),
			v.Name(),
			v.Class().String(),
			v.GFXTargetName(),
		).Set(1)
		e.computeUnits.WithLabelValues(gpu.Card).Set(float64(gpu.ComputeUnits()))
		e.cacheBytes.WithLabelValues(gpu.Card, "l2").Set(float64(gpu.L2CacheSize()))
		e.cacheBytes.WithLabelValues(gpu.Card, "l3").Set(float64(gpu.L3CacheSizeMB() * asic.MiB))
		e.cacheBytes.WithLabelValues(gpu.Card, "gl1").Set(float64(gpu.GL1CacheSize()))
	}
	slog.Debug("refreshed device metrics", slog.Int("devices", len(gpus)))
	return nil
}

// Run refreshes the metrics immediately and then every interval until the
// context is done. Refresh failures are logged and retried on the next tick.
func (e *Exporter) Run(ctx context.Context, interval time.Duration) {
	if err := e.Refresh(); err != nil {
		slog.Error("failed to refresh device metrics", slog.String("error", err.Error()))
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := e.Refresh(); err != nil {
				slog.Error("failed to refresh device metrics", slog.String("error", err.Error()))
			}
		}
	}
}

// Handler returns the HTTP handler serving the registry.
func (e *Exporter) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{}))
	return mux
}

// Serve runs the refresh loop and the metrics server until the context is
// done or the server fails. The refresh loop has stopped when Serve returns.
func (e *Exporter) Serve(ctx context.Context, listenAddr string, interval time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	server := &http.Server{
		Addr:              listenAddr,
		Handler:           e.Handler(),
		ReadHeaderTimeout: 3 * time.Second,
	}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		e.Run(ctx, interval)
	}()
	go func() {
		defer wg.Done()
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down metrics server", slog.String("error", err.Error()))
		}
	}()
	slog.Info("Starting Prometheus metrics server", slog.String("address", listenAddr))
	err := server.ListenAndServe()
	cancel()
	wg.Wait()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
