// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package asic

// RevisionRange maps a half-open range [Low, High) of external revisions
// within one family to a variant. High may be 0x100 so that a range can
// cover every 8-bit revision.
type RevisionRange struct {
	ProductLine string
	Low         uint16 // inclusive
	High        uint16 // exclusive
	Variant     Variant
}

// Contains reports whether rev lies within the range.
func (r RevisionRange) Contains(rev uint8) bool {
	return uint16(rev) >= r.Low && uint16(rev) < r.High
}

func (r RevisionRange) overlaps(other RevisionRange) bool {
	return r.Low < other.High && other.Low < r.High
}

// anyRevision is used by families that resolve to a single chip
func anyRevision(productLine string, v Variant) []RevisionRange {
	return []RevisionRange{{ProductLine: productLine, Low: 0x00, High: 0x100, Variant: v}}
}

// revisionTables maps a family to its revision ranges. Ranges are evaluated in
// declaration order and the first range containing the revision wins, so a
// later range that overlaps an earlier one only applies to the revisions the
// earlier one does not cover.
//
// references:
//
//	https://gitlab.freedesktop.org/mesa/mesa/-/blob/main/src/amd/addrlib/src/amdgpu_asic_addr.h
//	https://gitlab.freedesktop.org/mesa/mesa/-/blob/main/src/amd/common/ac_gpu_info.c
var revisionTables = map[Family][]RevisionRange{
	FamilySI: {
		{"Tahiti", 0x05, 0x14, ChipTahiti},
		{"Pitcairn", 0x15, 0x28, ChipPitcairn},
		{"Verde", 0x29, 0x3C, ChipVerde},
		{"Oland", 0x3C, 0x46, ChipOland},
		{"Hainan", 0x46, 0xFF, ChipHainan},
	},
	FamilyCI: {
		{"Bonaire", 0x14, 0x28, ChipBonaire},
		{"Hawaii", 0x28, 0x3C, ChipHawaii},
	},
	// KV carries several product lines. The console SoCs are declared twice
	// with identical bands; the first declaration always wins.
	FamilyKV: {
		{"Spectre", 0x01, 0x41, ChipKaveri},
		{"Spooky", 0x41, 0x61, ChipKaveri},
		{"Liverpool", 0x61, 0x71, ChipLiverpool},
		{"Liverpool", 0x61, 0x71, ChipLiverpool},
		{"Gladius", 0x71, 0x81, ChipGladius},
		{"Gladius", 0x71, 0x81, ChipGladius},
		{"Kalindi", 0x81, 0xA1, ChipKabini},
		{"Godavari", 0xA1, 0xFF, ChipKabini},
	},
	FamilyVI: {
		{"Iceland", 0x01, 0x14, ChipIceland},
		{"Tonga", 0x14, 0x28, ChipTonga},
		{"Fiji", 0x3C, 0x50, ChipFiji},
		{"Polaris10", 0x50, 0x5A, ChipPolaris10},
		{"Polaris11", 0x5A, 0x64, ChipPolaris11},
		{"Polaris12", 0x64, 0x6E, ChipPolaris12},
		{"VegaM", 0x6E, 0xFF, ChipVegaM},
	},
	// Bristol is a Carrizo refresh whose band lies inside Carrizo's
	FamilyCZ: {
		{"Carrizo", 0x01, 0x21, ChipCarrizo},
		{"Bristol", 0x10, 0x21, ChipCarrizo},
		{"Stoney", 0x61, 0xFF, ChipStoney},
	},
	FamilyAI: {
		{"Vega10", 0x01, 0x14, ChipVega10},
		{"Vega12", 0x14, 0x28, ChipVega12},
		{"Vega20", 0x28, 0x32, ChipVega20},
		{"Arcturus", 0x32, 0x3C, ChipArcturus},
		{"Aldebaran", 0x3C, 0x46, ChipAldebaran},
		{"GFX940", 0x46, 0xFF, ChipGFX940},
	},
	FamilyRV: {
		{"Raven", 0x01, 0x81, ChipRaven},
		{"Raven2", 0x81, 0x90, ChipRaven2},
		{"Renoir", 0x91, 0xFF, ChipRenoir},
	},
	FamilyNV: {
		{"Navi10", 0x01, 0x0A, ChipNavi10},
		{"Navi12", 0x0A, 0x14, ChipNavi12},
		{"Navi14", 0x14, 0x28, ChipNavi14},
		{"Sienna Cichlid", 0x28, 0x32, ChipNavi21},
		{"Navy Flounder", 0x32, 0x3C, ChipNavi22},
		{"Dimgrey Cavefish", 0x3C, 0x46, ChipNavi23},
		{"Beige Goby", 0x46, 0x50, ChipNavi24},
		{"Cyan Skillfish", 0x84, 0x85, ChipCyanSkillfish},
	},
	FamilyVGH:    anyRevision("Van Gogh", ChipVanGogh),
	FamilyYC:     anyRevision("Yellow Carp", ChipRembrandt),
	FamilyGC1036: anyRevision("Raphael", ChipGFX1036),
	FamilyGC1037: anyRevision("Mendocino", ChipGFX1036),
	FamilyGC1100: {
		{"Navi31", 0x01, 0x10, ChipGFX1100},
		{"Navi33", 0x10, 0x20, ChipGFX1102},
		{"Navi32", 0x20, 0xFF, ChipGFX1101},
	},
	FamilyGC1101: {
		{"Phoenix1", 0x01, 0x80, ChipGFX1103_R1},
		{"Phoenix2", 0x80, 0xC0, ChipGFX1103_R2},
		{"Hawk Point1", 0xC0, 0xF0, ChipGFX1103_R1X},
		{"Hawk Point2", 0xF0, 0xFF, ChipGFX1103_R2X},
	},
	FamilyGC1150: {
		{"Strix Point", 0x01, 0x40, ChipGFX1150},
		{"GFX1152", 0x40, 0x50, ChipGFX1152},
		{"GFX1153", 0x50, 0x80, ChipGFX1153},
		{"Strix Halo", 0xC0, 0xFF, ChipGFX1151},
	},
	FamilyGC1200: {
		{"GFX1200", 0x40, 0x50, ChipGFX1200},
		{"GFX1201", 0x50, 0xFF, ChipGFX1201},
	},
}

// Match is the result of classifying a (family, revision) pair.
type Match struct {
	Family      Family
	Revision    uint8
	Variant     Variant
	ProductLine string // product line of the matching range, empty if none matched
	Row         int    // index of the matching range in the family table, -1 if none matched
}

// OK reports whether the pair resolved to a known variant.
func (m Match) OK() bool {
	return m.Variant != ChipUnknown
}

// ClassifyMatch classifies the pair and reports which revision range matched.
// It never fails: unmapped pairs return a Match with ChipUnknown and Row -1.
func ClassifyMatch(family Family, rev uint8) Match {
	m := Match{Family: family, Revision: rev, Variant: ChipUnknown, Row: -1}
	for i, r := range revisionTables[family] {
		if r.Contains(rev) {
			m.Variant = r.Variant
			m.ProductLine = r.ProductLine
			m.Row = i
			return m
		}
	}
	return m
}

// Classify returns the chip variant for a family and external revision, or
// ChipUnknown if the pair is not recognized.
func Classify(family Family, rev uint8) Variant {
	return ClassifyMatch(family, rev).Variant
}

// Lookup is Classify with an explicit found flag.
func Lookup(family Family, rev uint8) (Variant, bool) {
	v := Classify(family, rev)
	return v, v != ChipUnknown
}

// ClassifyID classifies the raw values reported by the driver. The external
// revision is a 32-bit field in the driver ABI; values that do not fit in
// eight bits are not recognized.
func ClassifyID(familyID, externalRev uint32) Match {
	if externalRev > 0xFF {
		return Match{Family: Family(familyID), Variant: ChipUnknown, Row: -1}
	}
	return ClassifyMatch(Family(familyID), uint8(externalRev))
}

// Ranges returns a copy of the revision ranges of a family in evaluation order.
func Ranges(family Family) []RevisionRange {
	table := revisionTables[family]
	ranges := make([]RevisionRange, len(table))
	copy(ranges, table)
	return ranges
}

// Overlap identifies two rows of a family table whose ranges intersect.
// Second is shadowed by First wherever they intersect.
type Overlap struct {
	First  int
	Second int
}

// Overlaps returns every pair of intersecting rows in a family table.
func Overlaps(family Family) []Overlap {
	var overlaps []Overlap
	table := revisionTables[family]
	for i := range table {
		for j := i + 1; j < len(table); j++ {
			if table[i].overlaps(table[j]) {
				overlaps = append(overlaps, Overlap{First: i, Second: j})
			}
		}
	}
	return overlaps
}
