// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package device enumerates the AMD GPUs driven by amdgpu and classifies
// them. GPUs are found through sysfs (/sys/class/drm/card*) and identified
// with the DRM_IOCTL_AMDGPU_INFO ioctl on their render node. No cgo or libdrm
// is required.
package device

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"gpuspect/internal/asic"
)

// ErrUnsupported is returned by the device query on platforms without amdgpu.
var ErrUnsupported = errors.New("amdgpu device query is not supported on this platform")

// ErrNoRenderNode is set on a GPU whose card has no matching render node.
var ErrNoRenderNode = errors.New("no render node found")

// Querier reads the device info of a GPU from its render node.
type Querier interface {
	QueryDeviceInfo(renderNode string) (DeviceInfo, error)
}

// GPU is one amdgpu card with its identification and classification.
type GPU struct {
	Card       string     `json:"card" yaml:"card"`
	PCIID      string     `json:"pci_id" yaml:"pci_id"`
	PCISlot    string     `json:"pci_slot" yaml:"pci_slot"`
	RenderNode string     `json:"render_node" yaml:"render_node"`
	Info       DeviceInfo `json:"info" yaml:"info"`
	Match      asic.Match `json:"-" yaml:"-"`
	Err        error      `json:"-" yaml:"-"`
}

// Variant returns the classified chip, asic.ChipUnknown if the query failed.
func (g GPU) Variant() asic.Variant {
	return g.Match.Variant
}

// Family returns the family reported by the driver.
func (g GPU) Family() asic.Family {
	return asic.Family(g.Info.Family)
}

// ComputeUnits returns the number of active compute units.
func (g GPU) ComputeUnits() int {
	return int(g.Info.CUActiveNumber)
}

// L2CacheSize returns the total L2 size in bytes over all TCC blocks.
func (g GPU) L2CacheSize() int {
	return g.Variant().L2CacheSizePerBlock() * int(g.Info.NumTCCBlocks)
}

// L3CacheSizeMB returns the total Infinity Cache size in MiB. There is one
// cache slice per 16-bit memory channel.
func (g GPU) L3CacheSizeMB() int {
	return g.Variant().L3CacheSizeMBPerChannel() * int(g.Info.VRAMBitWidth/16)
}

// GL1CacheSize returns the total GL1 size in bytes over all shader arrays.
func (g GPU) GL1CacheSize() int {
	return g.Variant().GL1CacheSize() * int(g.Info.NumShaderEngines*g.Info.NumShaderArraysPerEngine)
}

// Prober finds and classifies the amdgpu GPUs of a system.
type Prober struct {
	// sysRoot is the root of the sysfs filesystem, /sys outside of tests
	sysRoot string
	querier Querier
}

// NewProber creates a Prober that reads the real /sys filesystem and queries
// devices with the platform querier.
func NewProber() *Prober {
	return NewProberFrom("/sys", NewQuerier())
}

// NewProberFrom creates a Prober with a custom sysfs root and querier.
func NewProberFrom(sysRoot string, querier Querier) *Prober {
	return &Prober{sysRoot: sysRoot, querier: querier}
}

// Probe returns the amdgpu GPUs of the system in card order. A GPU whose
// query failed is returned with Err set and an unknown variant. Probe fails
// only if the DRM class directory cannot be read.
func (p *Prober) Probe() ([]GPU, error) {
	drmBase := filepath.Join(p.sysRoot, "class/drm")
	entries, err := os.ReadDir(drmBase)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", drmBase)
	}
	var gpus []GPU
	for _, entry := range entries {
		name := entry.Name()
		if !isCardDevice(name) {
			continue
		}
		devicePath := filepath.Join(drmBase, name, "device")
		if readDriverName(devicePath) != "amdgpu" {
			continue
		}
		gpu := GPU{Card: name}
		gpu.PCIID, gpu.PCISlot = parsePCIUevent(devicePath)
		gpu.RenderNode = renderNodeForDevice(devicePath, drmBase)
		gpu.Match = asic.Match{Variant: asic.ChipUnknown, Row: -1}
		if gpu.RenderNode == "" {
			gpu.Err = errors.Wrapf(ErrNoRenderNode, "card %s", name)
			slog.Warn("no render node found for amdgpu device", slog.String("card", name))
			gpus = append(gpus, gpu)
			continue
		}
		info, err := p.querier.QueryDeviceInfo(gpu.RenderNode)
		if err != nil {
			gpu.Err = errors.Wrapf(err, "card %s", name)
			slog.Warn("failed to query amdgpu device", slog.String("card", name), slog.String("render_node", gpu.RenderNode), slog.String("error", err.Error()))
			gpus = append(gpus, gpu)
			continue
		}
		gpu.Info = info
		gpu.Match = asic.ClassifyID(info.Family, info.ExternalRevision)
		slog.Debug("classified amdgpu device",
			slog.String("card", name),
			slog.String("family", gpu.Family().Name()),
			slog.Int("external_revision", int(info.ExternalRevision)),
			slog.String("asic", gpu.Variant().Name()))
		gpus = append(gpus, gpu)
	}
	return gpus, nil
}

// isCardDevice matches card0, card1, ... but not connectors such as card0-DP-1
func isCardDevice(name string) bool {
	suffix, ok := strings.CutPrefix(name, "card")
	if !ok || suffix == "" {
		return false
	}
	for _, c := range suffix {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// readDriverName returns the basename of the driver symlink of a PCI device
func readDriverName(devicePath string) string {
	link, err := os.Readlink(filepath.Join(devicePath, "driver"))
	if err != nil {
		return ""
	}
	return filepath.Base(link)
}

// parsePCIUevent extracts the vendor:device id and the slot from a uevent
// file with lines like:
//
//	PCI_ID=1002:73BF
//	PCI_SLOT_NAME=0000:03:00.0
func parsePCIUevent(devicePath string) (pciID, pciSlot string) {
	data, err := os.ReadFile(filepath.Join(devicePath, "uevent"))
	if err != nil {
		return "", ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		key, value, found := strings.Cut(strings.TrimSpace(line), "=")
		if !found {
			continue
		}
		switch key {
		case "PCI_ID":
			pciID = strings.ToLower(value)
		case "PCI_SLOT_NAME":
			pciSlot = value
		}
	}
	return pciID, pciSlot
}

// renderNodeForDevice finds the render node of the same PCI device as a card.
// Card and render node indexes do not necessarily match.
func renderNodeForDevice(devicePath, drmBase string) string {
	cardPCIPath, err := filepath.EvalSymlinks(devicePath)
	if err != nil {
		return ""
	}
	entries, err := os.ReadDir(drmBase)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "renderD") {
			continue
		}
		renderPCIPath, err := filepath.EvalSymlinks(filepath.Join(drmBase, name, "device"))
		if err != nil {
			continue
		}
		if renderPCIPath == cardPCIPath {
			return filepath.Join("/dev/dri", name)
		}
	}
	return ""
}
