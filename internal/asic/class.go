// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package asic

import (
	"fmt"
	"strings"
)

// ChipClass is the coarse hardware generation of a variant.
type ChipClass uint8

const (
	ClassUnknown ChipClass = iota
	ClassR300
	ClassR400
	ClassR500
	ClassR600
	ClassR700
	ClassEvergreen
	ClassCayman
	ClassGFX6
	ClassGFX7
	ClassGFX8
	ClassGFX9
	ClassGFX10
	ClassGFX10_3 //lint:ignore ST1003 class names use underscores to match the driver
	ClassGFX11
	ClassGFX11_5 //lint:ignore ST1003 class names use underscores to match the driver
	ClassGFX12
)

var classNames = []string{
	ClassUnknown:   "UNKNOWN",
	ClassR300:      "R300",
	ClassR400:      "R400",
	ClassR500:      "R500",
	ClassR600:      "R600",
	ClassR700:      "R700",
	ClassEvergreen: "EVERGREEN",
	ClassCayman:    "CAYMAN",
	ClassGFX6:      "GFX6",
	ClassGFX7:      "GFX7",
	ClassGFX8:      "GFX8",
	ClassGFX9:      "GFX9",
	ClassGFX10:     "GFX10",
	ClassGFX10_3:   "GFX10_3",
	ClassGFX11:     "GFX11",
	ClassGFX11_5:   "GFX11_5",
	ClassGFX12:     "GFX12",
}

// classRanges partitions the variant ranks into classes. Each entry covers
// the inclusive range [first, last]; the entries are contiguous and sorted.
var classRanges = []struct {
	first, last Variant
	class       ChipClass
}{
	{ChipR300, ChipRS480, ClassR300},
	{ChipR420, ChipRS740, ClassR400},
	{ChipRV515, ChipRV570, ClassR500},
	{ChipR600, ChipRS880, ClassR600},
	{ChipRV770, ChipRV740, ClassR700},
	{ChipCedar, ChipCaicos, ClassEvergreen},
	{ChipCayman, ChipAruba, ClassCayman},
	{ChipTahiti, ChipHainan, ClassGFX6},
	{ChipBonaire, ChipHawaii, ClassGFX7},
	{ChipTonga, ChipVegaM, ClassGFX8},
	{ChipVega10, ChipGFX940, ClassGFX9},
	{ChipNavi10, ChipGFX1013, ClassGFX10},
	{ChipNavi21, ChipGFX1036, ClassGFX10_3},
	{ChipGFX1100, ChipGFX1103_R2X, ClassGFX11},
	{ChipGFX1150, ChipGFX1153, ClassGFX11_5},
	{ChipGFX1200, ChipGFX1201, ClassGFX12},
}

// Class returns the hardware generation of the variant. ChipUnknown and
// unregistered values belong to ClassUnknown.
func (v Variant) Class() ChipClass {
	if !v.IsKnown() {
		return ClassUnknown
	}
	for _, r := range classRanges {
		if v.Between(r.first, r.last) {
			return r.class
		}
	}
	return ClassUnknown
}

func (c ChipClass) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return fmt.Sprintf("ChipClass(%d)", uint8(c))
}

// AllClasses returns every class other than ClassUnknown in generation order.
func AllClasses() []ChipClass {
	classes := make([]ChipClass, 0, len(classRanges))
	for _, r := range classRanges {
		classes = append(classes, r.class)
	}
	return classes
}

// ParseChipClass parses a class name such as GFX10_3. Matching is
// case-insensitive and a dot may be used in place of the underscore.
func ParseChipClass(s string) (ChipClass, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, ".", "_")
	for i, name := range classNames {
		if name == key {
			return ChipClass(i), nil
		}
	}
	return ClassUnknown, fmt.Errorf("chip class not found: %s", s)
}
