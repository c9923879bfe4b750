// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package asic

// Characteristics holds every fact the package derives for a variant.
type Characteristics struct {
	Variant                 Variant `json:"-" yaml:"-"`
	Name                    string  `json:"name" yaml:"name"`
	DisplayName             string  `json:"display_name" yaml:"display_name"`
	Rank                    int     `json:"rank" yaml:"rank"`
	Class                   string  `json:"class" yaml:"class"`
	PackedMath16Bit         bool    `json:"packed_math_16bit" yaml:"packed_math_16bit"`
	AcceleratedDotProduct   bool    `json:"accelerated_dot_product" yaml:"accelerated_dot_product"`
	RBPlus                  bool    `json:"rb_plus" yaml:"rb_plus"`
	RBPlusAllowed           bool    `json:"rb_plus_allowed" yaml:"rb_plus_allowed"`
	MaxWave64PerSIMD        int     `json:"max_wave64_per_simd" yaml:"max_wave64_per_simd"`
	NumSIMDPerCU            int     `json:"num_simd_per_cu" yaml:"num_simd_per_cu"`
	CUGroup                 int     `json:"cu_group" yaml:"cu_group"`
	L1CacheSize             int     `json:"l1_cache_size" yaml:"l1_cache_size"`
	GL1CacheSize            int     `json:"gl1_cache_size" yaml:"gl1_cache_size"`
	L2CacheSizePerBlock     int     `json:"l2_cache_size_per_block" yaml:"l2_cache_size_per_block"`
	L2CacheLineSize         int     `json:"l2_cache_line_size" yaml:"l2_cache_line_size"`
	L3CacheSizeMBPerChannel int     `json:"l3_cache_size_mb_per_channel" yaml:"l3_cache_size_mb_per_channel"`
	LLVMMajor               int     `json:"llvm_major" yaml:"llvm_major"`
	LLVMProcessorName       string  `json:"llvm_processor_name" yaml:"llvm_processor_name"`
	LLVMProcessorDowngraded bool    `json:"llvm_processor_downgraded" yaml:"llvm_processor_downgraded"`
	GFXTargetName           string  `json:"gfx_target_name" yaml:"gfx_target_name"`
}

// GetCharacteristics materializes the facts of a variant. llvmMajor selects
// the LLVM release used for the processor name.
func GetCharacteristics(v Variant, llvmMajor int) Characteristics {
	return Characteristics{
		Variant:                 v,
		Name:                    v.Name(),
		DisplayName:             v.String(),
		Rank:                    v.Rank(),
		Class:                   v.Class().String(),
		PackedMath16Bit:         v.HasPackedMath16Bit(),
		AcceleratedDotProduct:   v.HasAcceleratedDotProduct(),
		RBPlus:                  v.HasRBPlus(),
		RBPlusAllowed:           v.RBPlusAllowed(),
		MaxWave64PerSIMD:        v.MaxWave64PerSIMD(),
		NumSIMDPerCU:            v.NumSIMDPerCU(),
		CUGroup:                 v.CUGroup(),
		L1CacheSize:             v.L1CacheSize(),
		GL1CacheSize:            v.GL1CacheSize(),
		L2CacheSizePerBlock:     v.L2CacheSizePerBlock(),
		L2CacheLineSize:         v.L2CacheLineSize(),
		L3CacheSizeMBPerChannel: v.L3CacheSizeMBPerChannel(),
		LLVMMajor:               llvmMajor,
		LLVMProcessorName:       v.LLVMProcessorName(llvmMajor),
		LLVMProcessorDowngraded: v.LLVMProcessorNameDowngraded(llvmMajor),
		GFXTargetName:           v.GFXTargetName(),
	}
}

// Parameters returns the characteristics keyed by field name, with numbers
// as float64, for use as expression parameters.
func (c Characteristics) Parameters() map[string]any {
	return map[string]any{
		"Name":                    c.Name,
		"DisplayName":             c.DisplayName,
		"Rank":                    float64(c.Rank),
		"Class":                   c.Class,
		"PackedMath16Bit":         c.PackedMath16Bit,
		"AcceleratedDotProduct":   c.AcceleratedDotProduct,
		"RBPlus":                  c.RBPlus,
		"RBPlusAllowed":           c.RBPlusAllowed,
		"MaxWave64PerSIMD":        float64(c.MaxWave64PerSIMD),
		"NumSIMDPerCU":            float64(c.NumSIMDPerCU),
		"CUGroup":                 float64(c.CUGroup),
		"L1CacheSize":             float64(c.L1CacheSize),
		"GL1CacheSize":            float64(c.GL1CacheSize),
		"L2CacheSizePerBlock":     float64(c.L2CacheSizePerBlock),
		"L2CacheLineSize":         float64(c.L2CacheLineSize),
		"L3CacheSizeMBPerChannel": float64(c.L3CacheSizeMBPerChannel),
		"LLVMMajor":               float64(c.LLVMMajor),
		"LLVMProcessorName":       c.LLVMProcessorName,
		"LLVMProcessorDowngraded": c.LLVMProcessorDowngraded,
		"GFXTargetName":           c.GFXTargetName,
	}
}
