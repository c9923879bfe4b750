/*
Package util includes utility/helper functions that may be useful to other modules.
*/
package util

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// ExpandUser expands '~' to user's home directory, if found, otherwise returns original path
func ExpandUser(path string) string {
	usr, err := user.Current()
	if err != nil {
		return path
	}
	if path == "~" {
		return usr.HomeDir
	} else if strings.HasPrefix(path, "~"+string(os.PathSeparator)) {
		return filepath.Join(usr.HomeDir, path[2:])
	} else {
		return path
	}
}

// AbsPath returns absolute path after expanding '~' to user's home dir
// Use everywhere in place of filepath.Abs()
func AbsPath(path string) (string, error) {
	return filepath.Abs(ExpandUser(path))
}

// DirectoryExists checks if the specified directory exists.
// It returns a boolean indicating whether the directory exists and an error if the
// path refers to anything other than a directory, e.g., a regular file.
func DirectoryExists(path string) (exists bool, err error) {
	var fileInfo fs.FileInfo
	fileInfo, err = os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			exists = false
			err = nil
			return
		}
		return
	}
	if !fileInfo.Mode().IsDir() {
		err = fmt.Errorf("%s not a directory", path)
		return
	}
	exists = true
	return
}

// ParseUint32 parses a decimal or 0x-prefixed hex number.
func ParseUint32(s string) (uint32, error) {
	val, err := strconv.ParseUint(strings.ToLower(s), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", s)
	}
	return uint32(val), nil
}

// MaxRangeWidth is the largest number of values a single range may expand to.
const MaxRangeWidth = 0x100

var reUintRange = regexp.MustCompile(`^(0[xX][0-9a-fA-F]+|\d+)(?:-(0[xX][0-9a-fA-F]+|\d+))?$`)

// UintRangeToUintList expands a string representing a range of numbers into a slice of numbers.
// Both ends may be decimal or 0x-prefixed hex. A range may hold at most MaxRangeWidth values.
// For example, "0x28-0x2A" will be expanded to [0x28, 0x29, 0x2A]. And, "5" will be expanded to [5].
// If the input string is not in a valid format, it returns an error.
func UintRangeToUintList(input string) ([]uint32, error) {
	matches := reUintRange.FindStringSubmatch(input)
	if len(matches) == 0 {
		err := fmt.Errorf("invalid input format: %s", input)
		return nil, err
	}
	start, err := ParseUint32(matches[1])
	if err != nil {
		return nil, fmt.Errorf("invalid start value: %s", matches[1])
	}
	// if end value is empty, return a slice with the start value
	if matches[2] == "" {
		return []uint32{start}, nil
	}
	// if end value is provided, parse it
	end, err := ParseUint32(matches[2])
	if err != nil {
		return nil, fmt.Errorf("invalid end value: %s", matches[2])
	}
	if start > end {
		return nil, fmt.Errorf("start value is greater than end value: %d > %d", start, end)
	}
	if uint64(end)-uint64(start)+1 > MaxRangeWidth {
		return nil, fmt.Errorf("range %s holds more than %d values", input, MaxRangeWidth)
	}
	// create a slice from start to end
	result := make([]uint32, 0, end-start+1)
	for i := uint64(start); i <= uint64(end); i++ {
		result = append(result, uint32(i))
	}
	return result, nil
}

// SelectiveUintRangeToUintList expands a string representing a selective range of numbers into a slice of numbers.
// For example "1-3,7,0x10-0x11" will be expanded to [1, 2, 3, 7, 16, 17].
// Duplicates are kept in input order only once.
// An error is returned if the input string is not in a valid format.
func SelectiveUintRangeToUintList(input string) ([]uint32, error) {
	var result []uint32
	seen := mapset.NewThreadUnsafeSet[uint32]()
	for r := range strings.SplitSeq(input, ",") {
		vals, err := UintRangeToUintList(strings.TrimSpace(r))
		if err != nil {
			return nil, err
		}
		for _, val := range vals {
			if seen.Add(val) {
				result = append(result, val)
			}
		}
	}
	return result, nil
}
