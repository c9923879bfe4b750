// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package report

// table_defs.go defines the tables used for generating reports

import (
	"fmt"
	"log/slog"
	"strconv"

	"gpuspect/internal/asic"
	"gpuspect/internal/table"
)

const (
	IdentificationTableName = "ASIC Identification"
	VariantTableName        = "ASICs"
	ComputeTableName        = "Compute"
	CacheTableName          = "Cache"
	CompilerTableName       = "Compiler Targets"
	DeviceTableName         = "Devices"
	RevisionTableName       = "Revision Ranges"
	InsightsTableName       = "Insights"
)

var tableDefinitions = map[string]table.TableDefinition{
	IdentificationTableName: {
		Name:         IdentificationTableName,
		HasRows:      true,
		FieldsFunc:   identificationTableValues,
		InsightsFunc: identificationTableInsights,
	},
	VariantTableName: {
		Name:       VariantTableName,
		HasRows:    true,
		FieldsFunc: variantTableValues,
	},
	ComputeTableName: {
		Name:       ComputeTableName,
		HasRows:    true,
		FieldsFunc: computeTableValues,
	},
	CacheTableName: {
		Name:       CacheTableName,
		HasRows:    true,
		FieldsFunc: cacheTableValues,
	},
	CompilerTableName: {
		Name:         CompilerTableName,
		HasRows:      true,
		FieldsFunc:   compilerTableValues,
		InsightsFunc: compilerTableInsights,
	},
	DeviceTableName: {
		Name:         DeviceTableName,
		HasRows:      true,
		FieldsFunc:   deviceTableValues,
		InsightsFunc: deviceTableInsights,
		NoDataFound:  "No amdgpu devices found.",
	},
	RevisionTableName: {
		Name:                  RevisionTableName,
		HasRows:               true,
		FieldsFunc:            revisionTableValues,
		TextTableRendererFunc: revisionTableTextRenderer,
		HTMLTableRendererFunc: revisionTableHTMLRenderer,
	},
}

var (
	// ASICTables describe classified (family, revision) pairs
	ASICTables = []string{IdentificationTableName, ComputeTableName, CacheTableName, CompilerTableName}
	// CatalogTables describe variants named directly
	CatalogTables = []string{VariantTableName, ComputeTableName, CacheTableName, CompilerTableName}
	// DeviceTables describe detected devices
	DeviceTables = []string{DeviceTableName, ComputeTableName, CacheTableName, CompilerTableName}
	// FamilyTables describe the revision tables of families
	FamilyTables = []string{RevisionTableName}
)

// GetTableByName retrieves a table definition by its name.
func GetTableByName(name string) table.TableDefinition {
	if tableDefinition, ok := tableDefinitions[name]; ok {
		return tableDefinition
	}
	panic(fmt.Sprintf("table not found: %s", name))
}

// ProcessTables generates the values of the named tables from the source.
func ProcessTables(tableNames []string, source table.Source) []table.TableValues {
	var definitions []table.TableDefinition
	for _, name := range tableNames {
		definitions = append(definitions, GetTableByName(name))
	}
	return table.ProcessTables(definitions, source)
}

// InsightsTableValues collects the insights of all tables into one table.
func InsightsTableValues(allTableValues []table.TableValues) table.TableValues {
	insightsTableValues := table.TableValues{
		TableDefinition: table.TableDefinition{
			Name:    InsightsTableName,
			HasRows: true,
		},
		Fields: []table.Field{
			{Name: "Recommendation", Values: []string{}},
			{Name: "Justification", Values: []string{}},
		},
	}
	for _, tableValues := range allTableValues {
		for _, insight := range tableValues.Insights {
			insightsTableValues.Fields[0].Values = append(insightsTableValues.Fields[0].Values, insight.Recommendation)
			insightsTableValues.Fields[1].Values = append(insightsTableValues.Fields[1].Values, insight.Justification)
		}
	}
	return insightsTableValues
}

// newFields creates empty fields with the given names
func newFields(names ...string) []table.Field {
	fields := make([]table.Field, len(names))
	for i, name := range names {
		fields[i] = table.Field{Name: name}
	}
	return fields
}

// appendRow appends one value to each field
func appendRow(fields []table.Field, values ...string) {
	for i := range fields {
		fields[i].Values = append(fields[i].Values, values[i])
	}
}

func identificationTableValues(source table.Source) []table.Field {
	fields := newFields("Label", "Family", "Family ID", "Revision", "Product Line", "ASIC", "Name", "Class")
	for _, chip := range source.Chips {
		appendRow(fields,
			chip.Label,
			chip.Match.Family.Name(),
			strconv.FormatUint(uint64(chip.Match.Family), 10),
			table.FormatHex(chip.Revision),
			chip.Match.ProductLine,
			chip.Variant().String(),
			chip.Variant().Name(),
			chip.Variant().Class().String(),
		)
	}
	return fields
}

func identificationTableInsights(source table.Source, tableValues table.TableValues) []table.Insight {
	insights := []table.Insight{}
	for _, chip := range source.Chips {
		if chip.Match.OK() {
			continue
		}
		justification := fmt.Sprintf("%s revision %s does not match a known ASIC.", chip.Match.Family.String(), table.FormatHex(chip.Revision))
		if !chip.Match.Family.IsKnown() {
			justification = fmt.Sprintf("Family %d is not a known amdgpu family.", uint32(chip.Match.Family))
		}
		insights = append(insights, table.Insight{
			Recommendation: fmt.Sprintf("Verify the family and revision of %s; capability defaults are reported.", chip.Label),
			Justification:  justification,
		})
	}
	return insights
}

func variantTableValues(source table.Source) []table.Field {
	fields := newFields("Name", "ASIC", "Rank", "Class")
	for _, chip := range source.Chips {
		v := chip.Variant()
		appendRow(fields, v.Name(), v.String(), strconv.Itoa(v.Rank()), v.Class().String())
	}
	return fields
}

func computeTableValues(source table.Source) []table.Field {
	fields := newFields("Label", "ASIC", "SIMDs per CU", "CU Group", "Max Wave64 per SIMD", "Packed Math 16-bit", "Accelerated Dot Product", "RB+", "RB+ Allowed")
	for _, chip := range source.Chips {
		v := chip.Variant()
		appendRow(fields,
			chip.Label,
			v.Name(),
			strconv.Itoa(v.NumSIMDPerCU()),
			strconv.Itoa(v.CUGroup()),
			strconv.Itoa(v.MaxWave64PerSIMD()),
			table.FormatBool(v.HasPackedMath16Bit()),
			table.FormatBool(v.HasAcceleratedDotProduct()),
			table.FormatBool(v.HasRBPlus()),
			table.FormatBool(v.RBPlusAllowed()),
		)
	}
	return fields
}

func cacheTableValues(source table.Source) []table.Field {
	fields := newFields("Label", "ASIC", "L1 per CU", "GL1 per Array", "L2 per Block", "L2 Line Size", "L3 per Channel")
	for _, chip := range source.Chips {
		v := chip.Variant()
		appendRow(fields,
			chip.Label,
			v.Name(),
			table.FormatBytes(v.L1CacheSize()),
			table.FormatBytes(v.GL1CacheSize()),
			table.FormatBytes(v.L2CacheSizePerBlock()),
			table.FormatBytes(v.L2CacheLineSize()),
			table.FormatMiB(v.L3CacheSizeMBPerChannel()),
		)
	}
	return fields
}

func compilerTableValues(source table.Source) []table.Field {
	fields := newFields("Label", "ASIC", "LLVM Version", "LLVM Processor", "GFX Target")
	for _, chip := range source.Chips {
		v := chip.Variant()
		appendRow(fields,
			chip.Label,
			v.Name(),
			strconv.Itoa(source.LLVMMajor),
			table.FormatTarget(v.LLVMProcessorName(source.LLVMMajor)),
			table.FormatTarget(v.GFXTargetName()),
		)
	}
	return fields
}

func compilerTableInsights(source table.Source, tableValues table.TableValues) []table.Insight {
	insights := []table.Insight{}
	for _, chip := range source.Chips {
		v := chip.Variant()
		if !v.IsKnown() {
			continue
		}
		if v.LLVMProcessorNameDowngraded(source.LLVMMajor) {
			native := v.LLVMProcessorName(asic.DefaultLLVMMajor)
			insights = append(insights, table.Insight{
				Recommendation: fmt.Sprintf("Consider a newer LLVM release to target %s natively for %s.", native, chip.Label),
				Justification:  fmt.Sprintf("LLVM %d predates %s; code is generated for %s.", source.LLVMMajor, native, v.LLVMProcessorName(source.LLVMMajor)),
			})
		}
		if v.GFXTargetName() == "" {
			insights = append(insights, table.Insight{
				Recommendation: fmt.Sprintf("Use a graphics driver stack to program %s.", chip.Label),
				Justification:  fmt.Sprintf("%s has no compute compiler target.", v.String()),
			})
		}
	}
	return insights
}

func deviceTableValues(source table.Source) []table.Field {
	fields := newFields("Card", "PCI ID", "PCI Slot", "Render Node", "Family", "Revision", "ASIC", "Compute Units", "Shader Engines", "VRAM", "VRAM Width", "L2 Total", "L3 Total", "GL1 Total", "Status")
	for _, chip := range source.Chips {
		gpu := chip.GPU
		if gpu == nil {
			slog.Warn("chip without device in device table", slog.String("label", chip.Label))
			continue
		}
		status := "OK"
		if gpu.Err != nil {
			status = gpu.Err.Error()
		}
		appendRow(fields,
			gpu.Card,
			gpu.PCIID,
			gpu.PCISlot,
			gpu.RenderNode,
			gpu.Family().Name(),
			table.FormatHex(gpu.Info.ExternalRevision),
			gpu.Variant().String(),
			strconv.Itoa(gpu.ComputeUnits()),
			strconv.Itoa(int(gpu.Info.NumShaderEngines)),
			gpu.Info.VRAMTypeName(),
			strconv.Itoa(int(gpu.Info.VRAMBitWidth)),
			table.FormatBytes(gpu.L2CacheSize()),
			table.FormatMiB(gpu.L3CacheSizeMB()),
			table.FormatBytes(gpu.GL1CacheSize()),
			status,
		)
	}
	return fields
}

func deviceTableInsights(source table.Source, tableValues table.TableValues) []table.Insight {
	insights := []table.Insight{}
	for _, chip := range source.Chips {
		gpu := chip.GPU
		if gpu == nil {
			continue
		}
		if gpu.Err != nil {
			insights = append(insights, table.Insight{
				Recommendation: fmt.Sprintf("Add the user to the render or video group to query %s.", gpu.Card),
				Justification:  fmt.Sprintf("The amdgpu query failed: %v.", gpu.Err),
			})
			continue
		}
		if !gpu.Match.OK() {
			insights = append(insights, table.Insight{
				Recommendation: fmt.Sprintf("Consider updating gpuspect to classify %s.", gpu.Card),
				Justification:  fmt.Sprintf("%s revision %s does not match a known ASIC.", gpu.Family().String(), table.FormatHex(gpu.Info.ExternalRevision)),
			})
		}
	}
	return insights
}

func revisionTableValues(source table.Source) []table.Field {
	fields := newFields("Family", "Family ID", "Row", "Product Line", "Revisions", "ASIC", "Shadowed By")
	for _, family := range source.Families {
		shadowedBy := make(map[int]int)
		for _, overlap := range asic.Overlaps(family) {
			if _, ok := shadowedBy[overlap.Second]; !ok {
				shadowedBy[overlap.Second] = overlap.First
			}
		}
		for i, r := range asic.Ranges(family) {
			shadow := ""
			if first, ok := shadowedBy[i]; ok {
				shadow = strconv.Itoa(first)
			}
			appendRow(fields,
				family.Name(),
				strconv.FormatUint(uint64(family), 10),
				strconv.Itoa(i),
				r.ProductLine,
				fmt.Sprintf("0x%02X-0x%02X", r.Low, r.High-1),
				r.Variant.Name(),
				shadow,
			)
		}
	}
	return fields
}
