// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package asic classifies AMD GPUs from the (family, external revision) pair
// reported by the amdgpu kernel driver and derives microarchitecture facts,
// e.g., cache sizes, SIMD layout and compiler targets, from the chip variant.
// All functions are pure and safe for concurrent use.
package asic

import (
	"fmt"
	"strconv"
	"strings"
)

// Family is the silicon family id reported by the amdgpu driver
// (AMDGPU_FAMILY_* in include/uapi/drm/amdgpu_drm.h).
type Family uint32

const (
	FamilyUnknown Family = 0
	FamilySI      Family = 110 // Southern Islands: Tahiti, Pitcairn, Verde, Oland, Hainan
	FamilyCI      Family = 120 // Sea Islands: Bonaire, Hawaii
	FamilyKV      Family = 125 // Kaveri, Kabini, Mullins
	FamilyVI      Family = 130 // Volcanic Islands: Iceland, Tonga, Fiji, Polaris
	FamilyCZ      Family = 135 // Carrizo, Stoney
	FamilyAI      Family = 141 // Arctic Islands: Vega
	FamilyRV      Family = 142 // Raven
	FamilyNV      Family = 143 // Navi
	FamilyVGH     Family = 144 // Van Gogh
	FamilyGC1100  Family = 145 // GC 11.0.0
	FamilyYC      Family = 146 // Yellow Carp
	FamilyGC1101  Family = 148 // GC 11.0.1
	FamilyGC1036  Family = 149 // GC 10.3.6
	FamilyGC1150  Family = 150 // GC 11.5.0
	FamilyGC1037  Family = 151 // GC 10.3.7
	FamilyGC1200  Family = 152 // GC 12.0.0
)

type familyInfo struct {
	family      Family
	name        string // short name as used in amdgpu_drm.h, e.g., NV
	displayName string
}

var familyRegistry = []familyInfo{
	{FamilyUnknown, "UNKNOWN", "Unknown"},
	{FamilySI, "SI", "Southern Islands (SI)"},
	{FamilyCI, "CI", "Sea Islands (CI)"},
	{FamilyKV, "KV", "Kaveri (KV)"},
	{FamilyVI, "VI", "Volcanic Islands (VI)"},
	{FamilyCZ, "CZ", "Carrizo (CZ)"},
	{FamilyAI, "AI", "Arctic Islands (AI)"},
	{FamilyRV, "RV", "Raven (RV)"},
	{FamilyNV, "NV", "Navi (NV)"},
	{FamilyVGH, "VGH", "Van Gogh (VGH)"},
	{FamilyGC1100, "GC_11_0_0", "GC 11.0.0"},
	{FamilyYC, "YC", "Yellow Carp (YC)"},
	{FamilyGC1101, "GC_11_0_1", "GC 11.0.1"},
	{FamilyGC1036, "GC_10_3_6", "GC 10.3.6"},
	{FamilyGC1150, "GC_11_5_0", "GC 11.5.0"},
	{FamilyGC1037, "GC_10_3_7", "GC 10.3.7"},
	{FamilyGC1200, "GC_12_0_0", "GC 12.0.0"},
}

func lookupFamily(f Family) (familyInfo, bool) {
	for _, info := range familyRegistry {
		if info.family == f {
			return info, true
		}
	}
	return familyInfo{}, false
}

// Name returns the short family name, e.g., NV. Unregistered ids are rendered
// as their decimal value.
func (f Family) Name() string {
	if info, ok := lookupFamily(f); ok {
		return info.name
	}
	return strconv.FormatUint(uint64(f), 10)
}

func (f Family) String() string {
	if info, ok := lookupFamily(f); ok {
		return info.displayName
	}
	return fmt.Sprintf("Unknown (%d)", uint32(f))
}

// IsKnown reports whether f is a registered family other than FamilyUnknown.
func (f Family) IsKnown() bool {
	_, ok := lookupFamily(f)
	return ok && f != FamilyUnknown
}

// AllFamilies returns the registered families, excluding FamilyUnknown, in
// driver id order.
func AllFamilies() []Family {
	families := make([]Family, 0, len(familyRegistry)-1)
	for _, info := range familyRegistry[1:] {
		families = append(families, info.family)
	}
	return families
}

// ParseFamily parses a family given as a short name (NV), a driver constant
// name (AMDGPU_FAMILY_NV) or a numeric id in decimal or 0x-prefixed hex.
// Numeric ids do not have to be registered; they classify as ChipUnknown.
func ParseFamily(s string) (Family, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	if key == "" {
		return FamilyUnknown, fmt.Errorf("family cannot be empty")
	}
	key = strings.TrimPrefix(key, "AMDGPU_FAMILY_")
	for _, info := range familyRegistry {
		if info.name == key {
			return info.family, nil
		}
	}
	id, err := strconv.ParseUint(strings.ToLower(key), 0, 32)
	if err != nil {
		return FamilyUnknown, fmt.Errorf("family not found: %s", s)
	}
	return Family(id), nil
}
