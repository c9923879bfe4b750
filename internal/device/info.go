// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// deviceInfoSize is the size of the prefix of struct drm_amdgpu_info_device
// (include/uapi/drm/amdgpu_drm.h) that is decoded, up to and including
// num_tcc_blocks. Later fields vary with the kernel version.
const deviceInfoSize = 256

// DeviceInfo holds the fields of struct drm_amdgpu_info_device that are used
// to classify a GPU and size its caches.
type DeviceInfo struct {
	DeviceID                 uint32 `json:"device_id" yaml:"device_id"`
	ChipRevision             uint32 `json:"chip_revision" yaml:"chip_revision"`
	ExternalRevision         uint32 `json:"external_revision" yaml:"external_revision"`
	PCIRevision              uint32 `json:"pci_revision" yaml:"pci_revision"`
	Family                   uint32 `json:"family" yaml:"family"`
	NumShaderEngines         uint32 `json:"num_shader_engines" yaml:"num_shader_engines"`
	NumShaderArraysPerEngine uint32 `json:"num_shader_arrays_per_engine" yaml:"num_shader_arrays_per_engine"`
	GPUCounterFreq           uint32 `json:"gpu_counter_freq" yaml:"gpu_counter_freq"` // KHz
	MaxEngineClock           uint64 `json:"max_engine_clock" yaml:"max_engine_clock"` // KHz
	MaxMemoryClock           uint64 `json:"max_memory_clock" yaml:"max_memory_clock"` // KHz
	CUActiveNumber           uint32 `json:"cu_active_number" yaml:"cu_active_number"`
	NumRBPipes               uint32 `json:"num_rb_pipes" yaml:"num_rb_pipes"`
	VRAMType                 uint32 `json:"vram_type" yaml:"vram_type"`
	VRAMBitWidth             uint32 `json:"vram_bit_width" yaml:"vram_bit_width"`
	WaveFrontSize            uint32 `json:"wave_front_size" yaml:"wave_front_size"`
	NumCUPerSH               uint32 `json:"num_cu_per_sh" yaml:"num_cu_per_sh"`
	NumTCCBlocks             uint32 `json:"num_tcc_blocks" yaml:"num_tcc_blocks"`
}

// field offsets in struct drm_amdgpu_info_device
const (
	offsetDeviceID                 = 0
	offsetChipRevision             = 4
	offsetExternalRevision         = 8
	offsetPCIRevision              = 12
	offsetFamily                   = 16
	offsetNumShaderEngines         = 20
	offsetNumShaderArraysPerEngine = 24
	offsetGPUCounterFreq           = 28
	offsetMaxEngineClock           = 32
	offsetMaxMemoryClock           = 40
	offsetCUActiveNumber           = 48
	offsetNumRBPipes               = 124
	offsetVRAMType                 = 176
	offsetVRAMBitWidth             = 180
	offsetWaveFrontSize            = 240
	offsetNumCUPerSH               = 248
	offsetNumTCCBlocks             = 252
)

// decodeDeviceInfo decodes the little-endian drm_amdgpu_info_device prefix
// written by the kernel.
func decodeDeviceInfo(buf []byte) (DeviceInfo, error) {
	if len(buf) < deviceInfoSize {
		return DeviceInfo{}, errors.Errorf("device info too short: %d bytes, need %d", len(buf), deviceInfoSize)
	}
	u32 := func(offset int) uint32 {
		return binary.LittleEndian.Uint32(buf[offset : offset+4])
	}
	u64 := func(offset int) uint64 {
		return binary.LittleEndian.Uint64(buf[offset : offset+8])
	}
	return DeviceInfo{
		DeviceID:                 u32(offsetDeviceID),
		ChipRevision:             u32(offsetChipRevision),
		ExternalRevision:         u32(offsetExternalRevision),
		PCIRevision:              u32(offsetPCIRevision),
		Family:                   u32(offsetFamily),
		NumShaderEngines:         u32(offsetNumShaderEngines),
		NumShaderArraysPerEngine: u32(offsetNumShaderArraysPerEngine),
		GPUCounterFreq:           u32(offsetGPUCounterFreq),
		MaxEngineClock:           u64(offsetMaxEngineClock),
		MaxMemoryClock:           u64(offsetMaxMemoryClock),
		CUActiveNumber:           u32(offsetCUActiveNumber),
		NumRBPipes:               u32(offsetNumRBPipes),
		VRAMType:                 u32(offsetVRAMType),
		VRAMBitWidth:             u32(offsetVRAMBitWidth),
		WaveFrontSize:            u32(offsetWaveFrontSize),
		NumCUPerSH:               u32(offsetNumCUPerSH),
		NumTCCBlocks:             u32(offsetNumTCCBlocks),
	}, nil
}

// AMDGPU_VRAM_TYPE_* names
var vramTypeNames = []string{
	"Unknown", "GDDR1", "DDR2", "GDDR3", "GDDR4", "GDDR5", "HBM", "DDR3",
	"DDR4", "GDDR6", "DDR5", "LPDDR4", "LPDDR5", "HBM3E",
}

// VRAMTypeName returns the memory type name, e.g., GDDR6.
func (d DeviceInfo) VRAMTypeName() string {
	if int(d.VRAMType) < len(vramTypeNames) {
		return vramTypeNames[d.VRAMType]
	}
	return vramTypeNames[0]
}
