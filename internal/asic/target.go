// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package asic

// DefaultLLVMMajor is the LLVM major version assumed when the caller does not
// name one.
const DefaultLLVMMajor = 18

// llvmTarget is the processor name of a variant and, for targets added in a
// later LLVM release, the version that introduced it and the name to use
// with older releases.
type llvmTarget struct {
	name     string
	minMajor int
	fallback string
}

var llvmTargets = map[Variant]llvmTarget{
	ChipTahiti:     {name: "tahiti"},
	ChipPitcairn:   {name: "pitcairn"},
	ChipVerde:      {name: "verde"},
	ChipOland:      {name: "oland"},
	ChipHainan:     {name: "hainan"},
	ChipBonaire:    {name: "bonaire"},
	ChipLiverpool:  {name: "liverpool"},
	ChipGladius:    {name: "gladius"},
	ChipKabini:     {name: "kabini"},
	ChipKaveri:     {name: "kaveri"},
	ChipHawaii:     {name: "hawaii"},
	ChipTonga:      {name: "tonga"},
	ChipIceland:    {name: "iceland"},
	ChipCarrizo:    {name: "carrizo"},
	ChipFiji:       {name: "fiji"},
	ChipStoney:     {name: "stoney"},
	ChipPolaris10:  {name: "polaris10"},
	ChipPolaris11:  {name: "polaris11"},
	ChipPolaris12:  {name: "polaris11"},
	ChipVegaM:      {name: "polaris11"},
	ChipVega10:     {name: "gfx900"},
	ChipRaven:      {name: "gfx902"},
	ChipVega12:     {name: "gfx904"},
	ChipVega20:     {name: "gfx906"},
	ChipRaven2:     {name: "gfx909"},
	ChipRenoir:     {name: "gfx909"},
	ChipArcturus:   {name: "gfx908"},
	ChipAldebaran:  {name: "gfx90a"},
	ChipNavi10:     {name: "gfx1010"},
	ChipNavi12:     {name: "gfx1011"},
	ChipNavi14:     {name: "gfx1012"},
	ChipGFX1013:    {name: "gfx1013"},
	ChipNavi21:     {name: "gfx1030"},
	ChipNavi22:     {name: "gfx1031", minMajor: 12, fallback: "gfx1030"},
	ChipNavi23:     {name: "gfx1032", minMajor: 12, fallback: "gfx1030"},
	ChipVanGogh:    {name: "gfx1033", minMajor: 12, fallback: "gfx1030"},
	ChipNavi24:     {name: "gfx1034", minMajor: 13, fallback: "gfx1030"},
	ChipRembrandt:  {name: "gfx1035", minMajor: 13, fallback: "gfx1030"},
	ChipGFX1036:    {name: "gfx1030"},
	ChipGFX1100:    {name: "gfx1100"},
	ChipGFX1101:    {name: "gfx1101"},
	ChipGFX1102:    {name: "gfx1102"},
	ChipGFX1103_R1: {name: "gfx1103"},
	ChipGFX1103_R2: {name: "gfx1103"},
}

// LLVMProcessorName returns the LLVM AMDGPU processor name for the variant as
// understood by the given LLVM major version. Targets that the version
// predates are downgraded to the closest compatible older target. Variants
// without an LLVM target return "".
func (v Variant) LLVMProcessorName(llvmMajor int) string {
	t, ok := llvmTargets[v]
	if !ok {
		return ""
	}
	if llvmMajor < t.minMajor {
		return t.fallback
	}
	return t.name
}

// LLVMProcessorNameDowngraded reports whether LLVMProcessorName returns a
// fallback target for the given LLVM major version.
func (v Variant) LLVMProcessorNameDowngraded(llvmMajor int) bool {
	t, ok := llvmTargets[v]
	return ok && llvmMajor < t.minMajor
}

var gfxTargets = map[Variant]string{
	ChipTahiti:     "gfx600",
	ChipPitcairn:   "gfx601",
	ChipVerde:      "gfx601",
	ChipOland:      "gfx602",
	ChipHainan:     "gfx602",
	ChipBonaire:    "gfx704",
	ChipLiverpool:  "gfx704",
	ChipGladius:    "gfx704",
	ChipKabini:     "gfx703",
	ChipKaveri:     "gfx700",
	ChipHawaii:     "gfx701",
	ChipTonga:      "gfx802",
	ChipIceland:    "gfx802",
	ChipCarrizo:    "gfx801",
	ChipFiji:       "gfx803",
	ChipStoney:     "gfx810",
	ChipPolaris10:  "gfx803",
	ChipPolaris11:  "gfx803",
	ChipPolaris12:  "gfx803",
	ChipVegaM:      "gfx803",
	ChipVega10:     "gfx900",
	ChipRaven:      "gfx902",
	ChipVega12:     "gfx904",
	ChipVega20:     "gfx906",
	ChipRaven2:     "gfx909",
	ChipRenoir:     "gfx909",
	ChipArcturus:   "gfx908",
	ChipAldebaran:  "gfx90a",
	ChipNavi10:     "gfx1010",
	ChipNavi12:     "gfx1011",
	ChipNavi14:     "gfx1012",
	ChipGFX1013:    "gfx1013",
	ChipNavi21:     "gfx1030",
	ChipNavi22:     "gfx1031",
	ChipNavi23:     "gfx1032",
	ChipVanGogh:    "gfx1033",
	ChipNavi24:     "gfx1034",
	ChipRembrandt:  "gfx1035",
	ChipGFX1036:    "gfx1030",
	ChipGFX1100:    "gfx1100",
	ChipGFX1101:    "gfx1101",
	ChipGFX1102:    "gfx1102",
	ChipGFX1103_R1: "gfx1103",
	ChipGFX1103_R2: "gfx1103",
}

// GFXTargetName returns the gfx target id used by ROCm and the kernel, e.g.,
// gfx1031, or "" when the variant has none.
func (v Variant) GFXTargetName() string {
	return gfxTargets[v]
}
