// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package asic

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		family   Family
		revision uint8
		expected Variant
	}{
		{"VI Polaris11", FamilyVI, 0x5C, ChipPolaris11},
		{"SI Tahiti", FamilySI, 0x06, ChipTahiti},
		{"SI Pitcairn", FamilySI, 0x16, ChipPitcairn},
		{"SI Hainan last revision", FamilySI, 0xFE, ChipHainan},
		{"CI Bonaire", FamilyCI, 0x14, ChipBonaire},
		{"CI Hawaii", FamilyCI, 0x28, ChipHawaii},
		{"KV Spectre", FamilyKV, 0x01, ChipKaveri},
		{"KV Spooky", FamilyKV, 0x41, ChipKaveri},
		{"KV Liverpool", FamilyKV, 0x61, ChipLiverpool},
		{"KV Gladius", FamilyKV, 0x80, ChipGladius},
		{"KV Kalindi", FamilyKV, 0x81, ChipKabini},
		{"KV Godavari", FamilyKV, 0xA1, ChipKabini},
		{"VI Iceland", FamilyVI, 0x01, ChipIceland},
		{"VI Tonga", FamilyVI, 0x14, ChipTonga},
		{"VI Fiji", FamilyVI, 0x3C, ChipFiji},
		{"VI Polaris10", FamilyVI, 0x50, ChipPolaris10},
		{"VI Polaris12", FamilyVI, 0x64, ChipPolaris12},
		{"VI VegaM", FamilyVI, 0x6E, ChipVegaM},
		{"CZ Carrizo", FamilyCZ, 0x01, ChipCarrizo},
		{"CZ Bristol", FamilyCZ, 0x10, ChipCarrizo},
		{"CZ Stoney", FamilyCZ, 0x61, ChipStoney},
		{"AI Vega10", FamilyAI, 0x01, ChipVega10},
		{"AI Vega12", FamilyAI, 0x14, ChipVega12},
		{"AI Vega20", FamilyAI, 0x28, ChipVega20},
		{"AI Arcturus", FamilyAI, 0x32, ChipArcturus},
		{"AI Aldebaran", FamilyAI, 0x3C, ChipAldebaran},
		{"AI GFX940", FamilyAI, 0x46, ChipGFX940},
		{"RV Raven", FamilyRV, 0x01, ChipRaven},
		{"RV Raven2", FamilyRV, 0x81, ChipRaven2},
		{"RV Renoir", FamilyRV, 0x91, ChipRenoir},
		{"NV Navi10", FamilyNV, 0x01, ChipNavi10},
		{"NV Navi12", FamilyNV, 0x0A, ChipNavi12},
		{"NV Navi14", FamilyNV, 0x14, ChipNavi14},
		{"NV Navi21", FamilyNV, 0x28, ChipNavi21},
		{"NV Navi22", FamilyNV, 0x32, ChipNavi22},
		{"NV Navi23", FamilyNV, 0x3C, ChipNavi23},
		{"NV Navi24", FamilyNV, 0x46, ChipNavi24},
		{"NV Cyan Skillfish", FamilyNV, 0x84, ChipCyanSkillfish},
		{"VGH any revision", FamilyVGH, 0x00, ChipVanGogh},
		{"VGH last revision", FamilyVGH, 0xFF, ChipVanGogh},
		{"YC any revision", FamilyYC, 0x01, ChipRembrandt},
		{"GC_10_3_6", FamilyGC1036, 0x01, ChipGFX1036},
		{"GC_10_3_7", FamilyGC1037, 0x80, ChipGFX1036},
		{"GC_11_0_0 Navi31", FamilyGC1100, 0x01, ChipGFX1100},
		{"GC_11_0_0 Navi33", FamilyGC1100, 0x10, ChipGFX1102},
		{"GC_11_0_0 Navi32", FamilyGC1100, 0x20, ChipGFX1101},
		{"GC_11_0_1 Phoenix1", FamilyGC1101, 0x01, ChipGFX1103_R1},
		{"GC_11_0_1 Phoenix2", FamilyGC1101, 0x80, ChipGFX1103_R2},
		{"GC_11_0_1 Hawk Point1", FamilyGC1101, 0xC0, ChipGFX1103_R1X},
		{"GC_11_0_1 Hawk Point2", FamilyGC1101, 0xF0, ChipGFX1103_R2X},
		{"GC_11_5_0 Strix Point", FamilyGC1150, 0x01, ChipGFX1150},
		{"GC_11_5_0 GFX1152", FamilyGC1150, 0x40, ChipGFX1152},
		{"GC_11_5_0 GFX1153", FamilyGC1150, 0x50, ChipGFX1153},
		{"GC_11_5_0 Strix Halo", FamilyGC1150, 0xC0, ChipGFX1151},
		{"GC_12_0_0 GFX1200", FamilyGC1200, 0x40, ChipGFX1200},
		{"GC_12_0_0 GFX1201", FamilyGC1200, 0x50, ChipGFX1201},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.family, tt.revision))
		})
	}
}

func TestClassifyUnknown(t *testing.T) {
	tests := []struct {
		name     string
		family   Family
		revision uint8
	}{
		{"unknown family", Family(999), 0x10},
		{"zero family", FamilyUnknown, 0x10},
		{"SI below first range", FamilySI, 0x04},
		{"SI gap between Tahiti and Pitcairn", FamilySI, 0x14},
		{"SI upper bound is exclusive", FamilySI, 0xFF},
		{"CI below first range", FamilyCI, 0x13},
		{"CI above last range", FamilyCI, 0x3C},
		{"VI gap between Tonga and Fiji", FamilyVI, 0x30},
		{"CZ gap between Carrizo and Stoney", FamilyCZ, 0x40},
		{"RV gap between Raven2 and Renoir", FamilyRV, 0x90},
		{"NV gap before Cyan Skillfish", FamilyNV, 0x50},
		{"NV after Cyan Skillfish", FamilyNV, 0x85},
		{"GC_11_5_0 gap before Strix Halo", FamilyGC1150, 0x80},
		{"GC_12_0_0 below first range", FamilyGC1200, 0x3F},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := Lookup(tt.family, tt.revision)
			assert.False(t, ok)
			assert.Equal(t, ChipUnknown, v)
			m := ClassifyMatch(tt.family, tt.revision)
			assert.False(t, m.OK())
			assert.Equal(t, -1, m.Row)
			assert.Empty(t, m.ProductLine)
		})
	}
}

func TestClassifyTotal(t *testing.T) {
	families := append(AllFamilies(), FamilyUnknown, Family(1), Family(147), Family(153))
	for _, family := range families {
		for rev := 0; rev <= 0xFF; rev++ {
			v := Classify(family, uint8(rev))
			if v != ChipUnknown {
				require.Truef(t, v.IsKnown(), "family %s revision %#x returned unregistered variant %d", family.Name(), rev, v)
			}
		}
	}
}

func TestClassifyMatch(t *testing.T) {
	m := ClassifyMatch(FamilyNV, 0x28)
	assert.True(t, m.OK())
	assert.Equal(t, ChipNavi21, m.Variant)
	assert.Equal(t, "Sienna Cichlid", m.ProductLine)
	assert.Equal(t, 3, m.Row)
	assert.Equal(t, FamilyNV, m.Family)
	assert.Equal(t, uint8(0x28), m.Revision)
}

func TestClassifyFirstMatchWins(t *testing.T) {
	// console SoC bands are declared twice; the first declaration always wins
	for i := 0; i < 100; i++ {
		m := ClassifyMatch(FamilyKV, 0x65)
		require.Equal(t, ChipLiverpool, m.Variant)
		require.Equal(t, 2, m.Row)
		m = ClassifyMatch(FamilyKV, 0x75)
		require.Equal(t, ChipGladius, m.Variant)
		require.Equal(t, 4, m.Row)
	}
	// Bristol lies inside Carrizo and never matches
	for rev := 0x10; rev < 0x21; rev++ {
		m := ClassifyMatch(FamilyCZ, uint8(rev))
		assert.Equal(t, 0, m.Row)
		assert.Equal(t, "Carrizo", m.ProductLine)
	}
}

func TestClassifyID(t *testing.T) {
	m := ClassifyID(143, 0x28)
	assert.Equal(t, ChipNavi21, m.Variant)
	m = ClassifyID(143, 0x128)
	assert.Equal(t, ChipUnknown, m.Variant)
	assert.Equal(t, -1, m.Row)
	m = ClassifyID(110, 0x06)
	assert.Equal(t, ChipTahiti, m.Variant)
	m = ClassifyID(0xFFFFFFFF, 0x06)
	assert.Equal(t, ChipUnknown, m.Variant)
}

func TestOverlaps(t *testing.T) {
	assert.Equal(t, []Overlap{{First: 2, Second: 3}, {First: 4, Second: 5}}, Overlaps(FamilyKV))
	assert.Equal(t, []Overlap{{First: 0, Second: 1}}, Overlaps(FamilyCZ))
	for _, family := range AllFamilies() {
		if family == FamilyKV || family == FamilyCZ {
			continue
		}
		assert.Emptyf(t, Overlaps(family), "unexpected overlap in family %s", family.Name())
	}
	assert.Empty(t, Overlaps(Family(999)))
}

func TestRanges(t *testing.T) {
	ranges := Ranges(FamilyCI)
	require.Len(t, ranges, 2)
	assert.Equal(t, "Bonaire", ranges[0].ProductLine)
	// the copy does not alias the table
	ranges[0].Variant = ChipTahiti
	assert.Equal(t, ChipBonaire, Classify(FamilyCI, 0x14))
	assert.Empty(t, Ranges(Family(999)))
}

func TestRangesAreWellFormed(t *testing.T) {
	for _, family := range AllFamilies() {
		ranges := Ranges(family)
		assert.NotEmptyf(t, ranges, "family %s has no revision ranges", family.Name())
		for _, r := range ranges {
			assert.Lessf(t, r.Low, r.High, "family %s range %s", family.Name(), r.ProductLine)
			assert.LessOrEqual(t, r.High, uint16(0x100))
			assert.True(t, r.Variant.IsKnown())
			assert.NotEmpty(t, r.ProductLine)
		}
	}
}

func TestClassifyConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rev := 0; rev <= 0xFF; rev++ {
				for _, family := range AllFamilies() {
					_ = Classify(family, uint8(rev)).String()
				}
			}
			assert.Equal(t, ChipPolaris11, Classify(FamilyVI, 0x5C))
		}()
	}
	wg.Wait()
}
