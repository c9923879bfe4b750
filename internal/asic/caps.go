// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package asic

import (
	mapset "github.com/deckarep/golang-set/v2"
)

const (
	KiB = 1024
	MiB = 1024 * KiB
)

// membership sets are built once and only read afterwards
var (
	acceleratedDotChips = mapset.NewThreadUnsafeSet(ChipArcturus, ChipAldebaran, ChipVega20)
	rbPlusAllowedChips  = mapset.NewThreadUnsafeSet(ChipStoney, ChipVega12, ChipRaven, ChipRaven2, ChipRenoir)

	l2PerBlock64K = mapset.NewThreadUnsafeSet(
		ChipTahiti, ChipPitcairn, ChipOland, ChipHawaii, ChipKabini,
		ChipTonga, ChipStoney, ChipRaven2,
	)
	l2PerBlock128K = mapset.NewThreadUnsafeSet(
		ChipVerde, ChipHainan, ChipBonaire, ChipGladius, ChipLiverpool,
		ChipKaveri, ChipIceland, ChipCarrizo, ChipFiji, ChipPolaris12, ChipVegaM,
	)
	l2PerBlock512K = mapset.NewThreadUnsafeSet(ChipRembrandt, ChipGFX1201)

	l3PerChannel8M = mapset.NewThreadUnsafeSet(ChipNavi21, ChipNavi22)
	l3PerChannel4M = mapset.NewThreadUnsafeSet(
		ChipNavi23, ChipNavi24,
		ChipGFX1100, ChipGFX1101, ChipGFX1102,
		ChipGFX1200, ChipGFX1201,
	)
	l3PerChannel2M = mapset.NewThreadUnsafeSet(ChipGFX1151)
)

// HasPackedMath16Bit reports support for packed 16-bit arithmetic.
func (v Variant) HasPackedMath16Bit() bool {
	return v.AtLeast(ChipVega10)
}

// HasAcceleratedDotProduct reports support for the dot product instructions.
func (v Variant) HasAcceleratedDotProduct() bool {
	return acceleratedDotChips.Contains(v) || v.AtLeast(ChipNavi12)
}

// HasRBPlus reports whether the render backends have RB+ hardware.
func (v Variant) HasRBPlus() bool {
	return v == ChipStoney || v.AtLeast(ChipVega10)
}

// RBPlusAllowed reports whether RB+ may be enabled. It requires the hardware
// first, then an allow list.
func (v Variant) RBPlusAllowed() bool {
	if !v.HasRBPlus() {
		return false
	}
	return rbPlusAllowedChips.Contains(v) || v.AtLeast(ChipNavi21)
}

// MaxWave64PerSIMD returns the wave64 occupancy limit of a SIMD.
func (v Variant) MaxWave64PerSIMD() int {
	switch {
	case v.AtLeast(ChipNavi21):
		return 16
	case v.AtLeast(ChipNavi10):
		return 20
	case v.Between(ChipPolaris10, ChipVegaM):
		return 8
	default:
		return 10
	}
}

// NumSIMDPerCU returns the number of SIMDs in a compute unit.
func (v Variant) NumSIMDPerCU() int {
	if v.AtLeast(ChipNavi10) {
		return 2
	}
	return 4
}

// CUGroup returns the number of compute units that share a workgroup
// processor; 1 before RDNA.
func (v Variant) CUGroup() int {
	if v.AtLeast(ChipNavi10) {
		return 2
	}
	return 1
}

// L1CacheSize returns the vector L1 cache size of a compute unit in bytes.
func (v Variant) L1CacheSize() int {
	if v.AtLeast(ChipGFX1100) {
		return 32 * KiB
	}
	return 16 * KiB
}

// GL1CacheSize returns the graphics L1 cache size per shader array in bytes.
// 0 means the generation has no GL1 or it is not modeled.
func (v Variant) GL1CacheSize() int {
	switch {
	case v.AtLeast(ChipGFX1200):
		return 0
	case v.AtLeast(ChipGFX1100):
		return 256 * KiB
	case v.AtLeast(ChipNavi10):
		return 128 * KiB
	default:
		return 0
	}
}

// L2CacheSizePerBlock returns the L2 size of one TCC block in bytes.
func (v Variant) L2CacheSizePerBlock() int {
	switch {
	case l2PerBlock64K.Contains(v):
		return 64 * KiB
	case l2PerBlock128K.Contains(v):
		return 128 * KiB
	case l2PerBlock512K.Contains(v):
		return 512 * KiB
	default:
		return 256 * KiB
	}
}

// L2CacheLineSize returns the L2 cache line size in bytes.
func (v Variant) L2CacheLineSize() int {
	switch {
	case v.AtLeast(ChipGFX1200):
		return 256
	case v.AtLeast(ChipNavi10), v == ChipAldebaran:
		return 128
	default:
		return 64
	}
}

// L3CacheSizeMBPerChannel returns the Infinity Cache size per 16-bit memory
// channel in MiB, 0 for chips without one.
func (v Variant) L3CacheSizeMBPerChannel() int {
	switch {
	case l3PerChannel8M.Contains(v):
		return 8
	case l3PerChannel4M.Contains(v):
		return 4
	case l3PerChannel2M.Contains(v):
		return 2
	default:
		return 0
	}
}
