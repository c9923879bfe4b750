// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package asic

import (
	"fmt"
	"strings"
)

// Variant identifies a specific GPU chip model. The constant value of each
// variant is its rank in hardware release order. Ranks are spaced so that a
// chip can be inserted between two existing ones without renumbering. Code
// that needs "at least this generation" semantics must use AtLeast, AtMost or
// Between rather than comparing variants directly.
type Variant uint16

// Variant constants, in hardware release order
const (
	ChipUnknown Variant = 0
	// R3xx (GFX2)
	ChipR300  Variant = 10
	ChipR350  Variant = 20
	ChipRV350 Variant = 30
	ChipRV370 Variant = 40
	ChipRV380 Variant = 50
	ChipRS400 Variant = 60
	ChipRC410 Variant = 70
	ChipRS480 Variant = 80
	// R4xx (GFX2)
	ChipR420  Variant = 90
	ChipR423  Variant = 100
	ChipR430  Variant = 110
	ChipR480  Variant = 120
	ChipR481  Variant = 130
	ChipRV410 Variant = 140
	ChipRS600 Variant = 150
	ChipRS690 Variant = 160
	ChipRS740 Variant = 170
	// R5xx (GFX2)
	ChipRV515 Variant = 180
	ChipR520  Variant = 190
	ChipRV530 Variant = 200
	ChipR580  Variant = 210
	ChipRV560 Variant = 220
	ChipRV570 Variant = 230
	// R6xx (GFX3)
	ChipR600  Variant = 240
	ChipRV610 Variant = 250
	ChipRV630 Variant = 260
	ChipRV670 Variant = 270
	ChipRV620 Variant = 280
	ChipRV635 Variant = 290
	ChipRS780 Variant = 300
	ChipRS880 Variant = 310
	// R7xx (GFX3)
	ChipRV770 Variant = 320
	ChipRV730 Variant = 330
	ChipRV710 Variant = 340
	ChipRV740 Variant = 350
	// Evergreen (GFX4)
	ChipCedar   Variant = 360
	ChipRedwood Variant = 370
	ChipJuniper Variant = 380
	ChipCypress Variant = 390
	ChipHemlock Variant = 400
	ChipPalm    Variant = 410
	ChipSumo    Variant = 420
	ChipSumo2   Variant = 430
	ChipBarts   Variant = 440
	ChipTurks   Variant = 450
	ChipCaicos  Variant = 460
	// Northern Islands (GFX5)
	ChipCayman Variant = 470
	ChipAruba  Variant = 480
	// Southern Islands (GFX6)
	ChipTahiti   Variant = 490
	ChipPitcairn Variant = 500
	ChipVerde    Variant = 510
	ChipOland    Variant = 520
	ChipHainan   Variant = 530
	// Sea Islands (GFX7)
	ChipBonaire   Variant = 540
	ChipLiverpool Variant = 550
	ChipGladius   Variant = 560
	ChipKaveri    Variant = 570
	ChipKabini    Variant = 580
	ChipHawaii    Variant = 590 // Radeon 290, 390
	// Volcanic Islands and Polaris (GFX8)
	ChipTonga     Variant = 600 // Radeon 285, 380
	ChipIceland   Variant = 610
	ChipCarrizo   Variant = 620
	ChipFiji      Variant = 630 // Radeon Fury
	ChipStoney    Variant = 640
	ChipPolaris10 Variant = 650 // Radeon 470, 480, 570, 580, 590
	ChipPolaris11 Variant = 660 // Radeon 460, 560
	ChipPolaris12 Variant = 670 // Radeon 540, 550
	ChipVegaM     Variant = 680
	// Vega (GFX9)
	ChipVega10    Variant = 690 // Vega 56, 64
	ChipVega12    Variant = 700
	ChipVega20    Variant = 710 // Radeon VII, MI50
	ChipRaven     Variant = 720 // Ryzen 2000, 3000
	ChipRaven2    Variant = 730 // Ryzen 2200U, 3200U
	ChipRenoir    Variant = 740 // Ryzen 4000, 5000
	ChipArcturus  Variant = 750 // MI100
	ChipAldebaran Variant = 760 // MI200
	ChipGFX940    Variant = 770 // MI300
	// RDNA 1 (GFX10.1)
	ChipNavi10  Variant = 780 // Radeon 5600, 5700
	ChipNavi12  Variant = 790 // Radeon Pro 5600M
	ChipNavi14  Variant = 800 // Radeon 5300, 5500
	ChipGFX1013 Variant = 810 // BC-250
	// RDNA 2 (GFX10.3)
	ChipNavi21    Variant = 820 // Radeon 6800, 6900
	ChipNavi22    Variant = 830 // Radeon 6700
	ChipVanGogh   Variant = 840 // Steam Deck
	ChipNavi23    Variant = 850 // Radeon 6600
	ChipNavi24    Variant = 860 // Radeon 6400, 6500
	ChipRembrandt Variant = 870 // Ryzen 6000
	ChipGFX1036   Variant = 880 // Raphael, Mendocino, Granite Ridge
	// RDNA 3 (GFX11)
	ChipGFX1100     Variant = 890 // Navi31
	ChipGFX1101     Variant = 900 // Navi32
	ChipGFX1102     Variant = 910 // Navi33
	ChipGFX1103_R1  Variant = 920 //lint:ignore ST1003 chip names use underscores to match the driver
	ChipGFX1103_R2  Variant = 930 //lint:ignore ST1003 chip names use underscores to match the driver
	ChipGFX1103_R1X Variant = 940 //lint:ignore ST1003 chip names use underscores to match the driver
	ChipGFX1103_R2X Variant = 950 //lint:ignore ST1003 chip names use underscores to match the driver
	// RDNA 3.5 (GFX11.5)
	ChipGFX1150 Variant = 960 // Strix Point
	ChipGFX1151 Variant = 970 // Strix Halo
	ChipGFX1152 Variant = 980
	ChipGFX1153 Variant = 990
	// RDNA 4 (GFX12)
	ChipGFX1200 Variant = 1000
	ChipGFX1201 Variant = 1010
)

// ChipCyanSkillfish is the marketing codename of ChipGFX1013.
const ChipCyanSkillfish = ChipGFX1013

type variantInfo struct {
	variant     Variant
	name        string // canonical identifier, e.g., NAVI21
	displayName string
}

// variantRegistry lists every variant in rank order. A variant that is missing
// here has no name, no display name and no chip class.
var variantRegistry = []variantInfo{
	{ChipUnknown, "UNKNOWN", "Unknown"},
	// R3xx (GFX2)
	{ChipR300, "R300", "R300"},
	{ChipR350, "R350", "R350"},
	{ChipRV350, "RV350", "RV350"},
	{ChipRV370, "RV370", "RV370"},
	{ChipRV380, "RV380", "RV380"},
	{ChipRS400, "RS400", "RS400"},
	{ChipRC410, "RC410", "RC410"},
	{ChipRS480, "RS480", "RS480"},
	// R4xx (GFX2)
	{ChipR420, "R420", "R420"},
	{ChipR423, "R423", "R423"},
	{ChipR430, "R430", "R430"},
	{ChipR480, "R480", "R480"},
	{ChipR481, "R481", "R481"},
	{ChipRV410, "RV410", "RV410"},
	{ChipRS600, "RS600", "RS600"},
	{ChipRS690, "RS690", "RS690"},
	{ChipRS740, "RS740", "RS740"},
	// R5xx (GFX2)
	{ChipRV515, "RV515", "RV515"},
	{ChipR520, "R520", "R520"},
	{ChipRV530, "RV530", "RV530"},
	{ChipR580, "R580", "R580"},
	{ChipRV560, "RV560", "RV560"},
	{ChipRV570, "RV570", "RV570"},
	// R6xx (GFX3)
	{ChipR600, "R600", "R600"},
	{ChipRV610, "RV610", "RV610"},
	{ChipRV630, "RV630", "RV630"},
	{ChipRV670, "RV670", "RV670"},
	{ChipRV620, "RV620", "RV620"},
	{ChipRV635, "RV635", "RV635"},
	{ChipRS780, "RS780", "RS780"},
	{ChipRS880, "RS880", "RS880"},
	// R7xx (GFX3)
	{ChipRV770, "RV770", "RV770"},
	{ChipRV730, "RV730", "RV730"},
	{ChipRV710, "RV710", "RV710"},
	{ChipRV740, "RV740", "RV740"},
	// Evergreen (GFX4)
	{ChipCedar, "CEDAR", "Cedar"},
	{ChipRedwood, "REDWOOD", "Redwood"},
	{ChipJuniper, "JUNIPER", "Juniper"},
	{ChipCypress, "CYPRESS", "Cypress"},
	{ChipHemlock, "HEMLOCK", "Hemlock"},
	{ChipPalm, "PALM", "Palm"},
	{ChipSumo, "SUMO", "Sumo"},
	{ChipSumo2, "SUMO2", "Sumo2"},
	{ChipBarts, "BARTS", "Barts"},
	{ChipTurks, "TURKS", "Turks"},
	{ChipCaicos, "CAICOS", "Caicos"},
	// Northern Islands (GFX5)
	{ChipCayman, "CAYMAN", "Cayman"},
	{ChipAruba, "ARUBA", "Aruba"},
	// Southern Islands (GFX6)
	{ChipTahiti, "TAHITI", "Tahiti"},
	{ChipPitcairn, "PITCAIRN", "Pitcairn"},
	{ChipVerde, "VERDE", "Verde"},
	{ChipOland, "OLAND", "Oland"},
	{ChipHainan, "HAINAN", "Hainan"},
	// Sea Islands (GFX7)
	{ChipBonaire, "BONAIRE", "Bonaire"},
	{ChipLiverpool, "LIVERPOOL", "Liverpool"},
	{ChipGladius, "GLADIUS", "Gladius"},
	{ChipKaveri, "KAVERI", "Kaveri"},
	{ChipKabini, "KABINI", "Kabini"},
	{ChipHawaii, "HAWAII", "Hawaii"},
	// Volcanic Islands and Polaris (GFX8)
	{ChipTonga, "TONGA", "Tonga"},
	{ChipIceland, "ICELAND", "Iceland"},
	{ChipCarrizo, "CARRIZO", "Carrizo"},
	{ChipFiji, "FIJI", "Fiji"},
	{ChipStoney, "STONEY", "Stoney"},
	{ChipPolaris10, "POLARIS10", "Polaris10"},
	{ChipPolaris11, "POLARIS11", "Polaris11"},
	{ChipPolaris12, "POLARIS12", "Polaris12"},
	{ChipVegaM, "VEGAM", "VegaM"},
	// Vega (GFX9)
	{ChipVega10, "VEGA10", "Vega10"},
	{ChipVega12, "VEGA12", "Vega12"},
	{ChipVega20, "VEGA20", "Vega20"},
	{ChipRaven, "RAVEN", "Raven"},
	{ChipRaven2, "RAVEN2", "Raven2"},
	{ChipRenoir, "RENOIR", "Renoir"},
	{ChipArcturus, "ARCTURUS", "Arcturus/MI100"},
	{ChipAldebaran, "ALDEBARAN", "Aldebaran/MI200"},
	{ChipGFX940, "GFX940", "GFX940/MI300"},
	// RDNA 1 (GFX10.1)
	{ChipNavi10, "NAVI10", "Navi10"},
	{ChipNavi12, "NAVI12", "Navi12"},
	{ChipNavi14, "NAVI14", "Navi14"},
	{ChipGFX1013, "GFX1013", "GFX1013/Cyan Skillfish"},
	// RDNA 2 (GFX10.3)
	{ChipNavi21, "NAVI21", "Sienna Cichlid/Navi21"},
	{ChipNavi22, "NAVI22", "Navy Flounder/Navi22"},
	{ChipVanGogh, "VANGOGH", "VanGogh"},
	{ChipNavi23, "NAVI23", "Dimgrey Cavefish/Navi23"},
	{ChipNavi24, "NAVI24", "Beige Goby/Navi24"},
	{ChipRembrandt, "REMBRANDT", "Yellow Carp/Rembrandt"},
	{ChipGFX1036, "GFX1036", "GFX1036/Raphael/Mendocino/Granite Ridge"},
	// RDNA 3 (GFX11)
	{ChipGFX1100, "GFX1100", "GFX1100/Navi31"},
	{ChipGFX1101, "GFX1101", "GFX1101/Navi32"},
	{ChipGFX1102, "GFX1102", "GFX1102/Navi33"},
	{ChipGFX1103_R1, "GFX1103_R1", "GFX1103_R1/Phoenix1"},
	{ChipGFX1103_R2, "GFX1103_R2", "GFX1103_R2/Phoenix2"},
	{ChipGFX1103_R1X, "GFX1103_R1X", "GFX1103_R1X/Hawk Point1"},
	{ChipGFX1103_R2X, "GFX1103_R2X", "GFX1103_R2X/Hawk Point2"},
	// RDNA 3.5 (GFX11.5)
	{ChipGFX1150, "GFX1150", "GFX1150/Strix Point"},
	{ChipGFX1151, "GFX1151", "GFX1151/Strix Halo"},
	{ChipGFX1152, "GFX1152", "GFX1152"},
	{ChipGFX1153, "GFX1153", "GFX1153"},
	// RDNA 4 (GFX12)
	{ChipGFX1200, "GFX1200", "GFX1200"},
	{ChipGFX1201, "GFX1201", "GFX1201"},
}

// variantAliases maps alternate names to variants
var variantAliases = map[string]Variant{
	"CYAN_SKILLFISH": ChipCyanSkillfish,
}

var variantIndex = func() map[Variant]int {
	index := make(map[Variant]int, len(variantRegistry))
	for i, info := range variantRegistry {
		index[info.variant] = i
	}
	return index
}()

// Rank returns the position of the variant in hardware release order.
func (v Variant) Rank() int {
	return int(v)
}

// AtLeast reports whether v was released no earlier than other.
func (v Variant) AtLeast(other Variant) bool {
	return v.Rank() >= other.Rank()
}

// AtMost reports whether v was released no later than other.
func (v Variant) AtMost(other Variant) bool {
	return v.Rank() <= other.Rank()
}

// Between reports whether v lies in the inclusive generation range [first, last].
func (v Variant) Between(first, last Variant) bool {
	return v.AtLeast(first) && v.AtMost(last)
}

// IsKnown reports whether v is a registered variant other than ChipUnknown.
func (v Variant) IsKnown() bool {
	_, ok := variantIndex[v]
	return ok && v != ChipUnknown
}

// Name returns the canonical identifier of the variant, e.g., NAVI21.
func (v Variant) Name() string {
	if i, ok := variantIndex[v]; ok {
		return variantRegistry[i].name
	}
	return variantRegistry[0].name
}

// String returns the human-readable label of the variant.
func (v Variant) String() string {
	if i, ok := variantIndex[v]; ok {
		return variantRegistry[i].displayName
	}
	return variantRegistry[0].displayName
}

// AllVariants returns every registered variant, including ChipUnknown, in
// hardware release order.
func AllVariants() []Variant {
	variants := make([]Variant, 0, len(variantRegistry))
	for _, info := range variantRegistry {
		variants = append(variants, info.variant)
	}
	return variants
}

// GetVariantByName returns the variant with the given canonical name or alias.
// The match is case-insensitive and the CHIP_ prefix used by the driver
// headers is optional.
func GetVariantByName(name string) (Variant, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	key = strings.TrimPrefix(key, "CHIP_")
	// try exact match first
	for _, info := range variantRegistry {
		if info.name == key {
			return info.variant, nil
		}
	}
	if v, ok := variantAliases[key]; ok {
		return v, nil
	}
	// accept the display name as well, e.g., "Sienna Cichlid/Navi21"
	for _, info := range variantRegistry {
		if strings.EqualFold(info.displayName, strings.TrimSpace(name)) {
			return info.variant, nil
		}
	}
	return ChipUnknown, fmt.Errorf("ASIC match not found for name %s", name)
}
