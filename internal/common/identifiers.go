package common

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"gpuspect/internal/asic"
	"gpuspect/internal/table"
	"gpuspect/internal/util"
)

// identifier flags
var (
	flagFamily    string
	flagRevision  string
	flagInputFile string
)

// identifier flag names
const (
	flagFamilyName    = "family"
	flagRevisionName  = "revision"
	flagInputFileName = "input"
)

var identifierFlags = []Flag{
	{Name: flagFamilyName, Help: "amdgpu family as a name (NV), driver constant (AMDGPU_FAMILY_NV) or numeric id (143)"},
	{Name: flagRevisionName, Help: "external revision id(s), decimal or 0x-prefixed hex, e.g., 0x28 or 0x28-0x31,0x3C"},
	{Name: flagInputFileName, Help: "yaml file with (family, revision) identifiers. See identifiers.yaml for format."},
}

func AddIdentifierFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagFamily, flagFamilyName, "", identifierFlags[0].Help)
	cmd.Flags().StringVar(&flagRevision, flagRevisionName, "", identifierFlags[1].Help)
	cmd.Flags().StringVar(&flagInputFile, flagInputFileName, "", identifierFlags[2].Help)

	cmd.MarkFlagsMutuallyExclusive(flagFamilyName, flagInputFileName)
	cmd.MarkFlagsMutuallyExclusive(flagRevisionName, flagInputFileName)
}

func GetIdentifierFlagGroup() FlagGroup {
	return FlagGroup{
		GroupName: "Identifier Options",
		Flags:     identifierFlags,
	}
}

func ValidateIdentifierFlags(cmd *cobra.Command) error {
	if flagInputFile != "" {
		if flagFamily != "" || flagRevision != "" {
			return fmt.Errorf("if --%s is specified, --%s and --%s must not be specified", flagInputFileName, flagFamilyName, flagRevisionName)
		}
		return nil
	}
	if flagFamily == "" || flagRevision == "" {
		return fmt.Errorf("either --%s or both --%s and --%s must be specified", flagInputFileName, flagFamilyName, flagRevisionName)
	}
	if _, err := asic.ParseFamily(flagFamily); err != nil {
		return err
	}
	if _, err := ParseRevisions(flagRevision); err != nil {
		return err
	}
	return nil
}

// Identifier is a named (family, revision) pair to classify.
type Identifier struct {
	Name     string `yaml:"name"`
	Family   string `yaml:"family"`
	Revision string `yaml:"revision"`
}

type identifiersFile struct {
	Identifiers []Identifier `yaml:"identifiers"`
}

// ParseRevisions parses one or more external revision ids, e.g.,
// "0x28,0x32-0x33". Values wider than eight bits are accepted; they classify
// as unknown. A single range holds at most util.MaxRangeWidth revisions.
func ParseRevisions(s string) ([]uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("revision cannot be empty")
	}
	revisions, err := util.SelectiveUintRangeToUintList(s)
	if err != nil {
		return nil, fmt.Errorf("invalid revision %s: %w", s, err)
	}
	return revisions, nil
}

// ReadIdentifiersFile reads the identifiers from a yaml file.
func ReadIdentifiersFile(path string) ([]Identifier, error) {
	var identifiersFile identifiersFile
	// read the file into a byte array
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read identifiers file: %w", err)
	}
	// parse the file contents into an identifiersFile struct
	err = yaml.Unmarshal(yamlFile, &identifiersFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse identifiers file %s: %w", path, err)
	}
	if len(identifiersFile.Identifiers) == 0 {
		return nil, fmt.Errorf("no identifiers found in %s", path)
	}
	return identifiersFile.Identifiers, nil
}

// ChipsFromIdentifiers classifies the identifiers. An identifier with several
// revisions yields one chip per revision, labeled by family and revision and
// prefixed with the name if there is one. Duplicate labels are rejected.
func ChipsFromIdentifiers(identifiers []Identifier) ([]table.Chip, error) {
	chips := make([]table.Chip, 0, len(identifiers))
	labelUsed := make(map[string]bool)
	for i, id := range identifiers {
		family, err := asic.ParseFamily(id.Family)
		if err != nil {
			return nil, fmt.Errorf("identifier %d: %w", i+1, err)
		}
		revisions, err := ParseRevisions(id.Revision)
		if err != nil {
			return nil, fmt.Errorf("identifier %d: %w", i+1, err)
		}
		for _, revision := range revisions {
			label := fmt.Sprintf("%s/0x%02X", family.Name(), revision)
			if id.Name != "" && len(revisions) == 1 {
				label = id.Name
			} else if id.Name != "" {
				label = id.Name + ":" + label
			}
			if labelUsed[label] {
				return nil, fmt.Errorf("duplicate identifier name found: %s", label)
			}
			labelUsed[label] = true
			chips = append(chips, table.Chip{
				Label:    label,
				Match:    asic.ClassifyID(uint32(family), revision),
				Revision: revision,
			})
		}
	}
	return chips, nil
}

// GetChips returns the chips named by the identifier flags.
func GetChips(cmd *cobra.Command) ([]table.Chip, error) {
	if flagInputFile != "" {
		identifiers, err := ReadIdentifiersFile(flagInputFile)
		if err != nil {
			return nil, err
		}
		return ChipsFromIdentifiers(identifiers)
	}
	return ChipsFromIdentifiers([]Identifier{{Family: flagFamily, Revision: flagRevision}})
}
