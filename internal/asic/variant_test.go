// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package asic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRanksStrictlyIncreasing(t *testing.T) {
	variants := AllVariants()
	require.Equal(t, ChipUnknown, variants[0])
	assert.Equal(t, 0, ChipUnknown.Rank())
	for i := 1; i < len(variants); i++ {
		assert.Greaterf(t, variants[i].Rank(), variants[i-1].Rank(), "%s must rank after %s", variants[i].Name(), variants[i-1].Name())
	}
}

func TestRegistryCoverage(t *testing.T) {
	names := make(map[string]bool)
	displayNames := make(map[string]bool)
	for _, v := range AllVariants() {
		name := v.Name()
		require.NotEmpty(t, name)
		assert.Falsef(t, names[name], "duplicate name %s", name)
		names[name] = true
		display := v.String()
		require.NotEmpty(t, display)
		assert.Falsef(t, displayNames[display], "duplicate display name %s", display)
		displayNames[display] = true
		if v != ChipUnknown {
			assert.NotEqual(t, ClassUnknown, v.Class(), name)
			assert.True(t, v.IsKnown())
		}
	}
	assert.Equal(t, len(variantRegistry), len(variantIndex))
}

func TestVariantNames(t *testing.T) {
	assert.Equal(t, "Sienna Cichlid/Navi21", ChipNavi21.String())
	assert.Equal(t, "NAVI21", ChipNavi21.Name())
	assert.Equal(t, "Unknown", ChipUnknown.String())
	assert.Equal(t, "UNKNOWN", ChipUnknown.Name())
	assert.Equal(t, "GFX1013/Cyan Skillfish", ChipCyanSkillfish.String())
	assert.Equal(t, "Juniper", ChipJuniper.String())
	// unregistered values render as unknown
	assert.Equal(t, "Unknown", Variant(5).String())
	assert.Equal(t, "UNKNOWN", Variant(5).Name())
	assert.False(t, Variant(5).IsKnown())
	assert.False(t, ChipUnknown.IsKnown())
}

func TestVariantComparison(t *testing.T) {
	assert.True(t, ChipNavi21.AtLeast(ChipNavi10))
	assert.True(t, ChipNavi10.AtLeast(ChipNavi10))
	assert.False(t, ChipVega10.AtLeast(ChipNavi10))
	assert.True(t, ChipVega10.AtMost(ChipNavi10))
	assert.True(t, ChipPolaris12.Between(ChipPolaris10, ChipVegaM))
	assert.True(t, ChipVegaM.Between(ChipPolaris10, ChipVegaM))
	assert.False(t, ChipStoney.Between(ChipPolaris10, ChipVegaM))
	assert.False(t, ChipUnknown.AtLeast(ChipR300))
}

func TestGetVariantByName(t *testing.T) {
	for _, v := range AllVariants() {
		got, err := GetVariantByName(v.Name())
		require.NoError(t, err)
		assert.Equal(t, v, got)
		got, err = GetVariantByName(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	tests := []struct {
		input    string
		expected Variant
	}{
		{"navi21", ChipNavi21},
		{"CHIP_NAVI21", ChipNavi21},
		{"chip_polaris10", ChipPolaris10},
		{" gfx1103_r1 ", ChipGFX1103_R1},
		{"CYAN_SKILLFISH", ChipCyanSkillfish},
		{"cyan_skillfish", ChipGFX1013},
		{"sienna cichlid/navi21", ChipNavi21},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := GetVariantByName(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
	_, err := GetVariantByName("NAVI99")
	assert.EqualError(t, err, "ASIC match not found for name NAVI99")
	_, err = GetVariantByName("")
	assert.Error(t, err)
}

func TestParseFamily(t *testing.T) {
	for _, f := range AllFamilies() {
		got, err := ParseFamily(f.Name())
		require.NoError(t, err)
		assert.Equal(t, f, got)
		got, err = ParseFamily("AMDGPU_FAMILY_" + f.Name())
		require.NoError(t, err)
		assert.Equal(t, f, got)
		assert.True(t, f.IsKnown())
		assert.NotEmpty(t, f.String())
	}
	tests := []struct {
		input    string
		expected Family
	}{
		{"nv", FamilyNV},
		{"143", FamilyNV},
		{"0x8f", FamilyNV},
		{"0X8F", FamilyNV},
		{"gc_11_0_0", FamilyGC1100},
		{"999", Family(999)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := ParseFamily(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}
	_, err := ParseFamily("")
	assert.EqualError(t, err, "family cannot be empty")
	_, err = ParseFamily("navi")
	assert.EqualError(t, err, "family not found: navi")
}

func TestFamilyNames(t *testing.T) {
	assert.Equal(t, "NV", FamilyNV.Name())
	assert.Equal(t, "Navi (NV)", FamilyNV.String())
	assert.Equal(t, "GC_11_5_0", FamilyGC1150.Name())
	assert.Equal(t, "999", Family(999).Name())
	assert.Equal(t, "Unknown (999)", Family(999).String())
	assert.False(t, Family(999).IsKnown())
	assert.False(t, FamilyUnknown.IsKnown())
	assert.NotContains(t, AllFamilies(), FamilyUnknown)
}

func TestChipClass(t *testing.T) {
	tests := []struct {
		variant  Variant
		expected ChipClass
	}{
		{ChipUnknown, ClassUnknown},
		{ChipR300, ClassR300},
		{ChipRS480, ClassR300},
		{ChipR420, ClassR400},
		{ChipRS740, ClassR400},
		{ChipRV570, ClassR500},
		{ChipRS880, ClassR600},
		{ChipRV740, ClassR700},
		{ChipCedar, ClassEvergreen},
		{ChipCaicos, ClassEvergreen},
		{ChipAruba, ClassCayman},
		{ChipHainan, ClassGFX6},
		{ChipHawaii, ClassGFX7},
		{ChipTonga, ClassGFX8},
		{ChipVegaM, ClassGFX8},
		{ChipVega10, ClassGFX9},
		{ChipGFX940, ClassGFX9},
		{ChipNavi10, ClassGFX10},
		{ChipGFX1013, ClassGFX10},
		{ChipNavi21, ClassGFX10_3},
		{ChipGFX1036, ClassGFX10_3},
		{ChipGFX1100, ClassGFX11},
		{ChipGFX1103_R2X, ClassGFX11},
		{ChipGFX1150, ClassGFX11_5},
		{ChipGFX1153, ClassGFX11_5},
		{ChipGFX1200, ClassGFX12},
		{ChipGFX1201, ClassGFX12},
		{Variant(5), ClassUnknown},
		{Variant(2000), ClassUnknown},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.expected, tt.variant.Class(), "class of %d", tt.variant)
	}
}

func TestClassRangesPartitionRegistry(t *testing.T) {
	// each class range starts right after the previous one ends
	variants := AllVariants()
	position := make(map[Variant]int, len(variants))
	for i, v := range variants {
		position[v] = i
	}
	require.Equal(t, 1, position[classRanges[0].first])
	for i := 1; i < len(classRanges); i++ {
		assert.Equal(t, position[classRanges[i-1].last]+1, position[classRanges[i].first], classRanges[i].class.String())
	}
	assert.Equal(t, len(variants)-1, position[classRanges[len(classRanges)-1].last])
}

func TestParseChipClass(t *testing.T) {
	for _, c := range AllClasses() {
		got, err := ParseChipClass(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	c, err := ParseChipClass("gfx10.3")
	require.NoError(t, err)
	assert.Equal(t, ClassGFX10_3, c)
	_, err = ParseChipClass("GFX13")
	assert.EqualError(t, err, "chip class not found: GFX13")
	assert.Equal(t, "ChipClass(99)", ChipClass(99).String())
}
