// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// table_helpers.go contains helper functions that format values for the tables.

package table

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer adds thousands separators, e.g., 98,304 KiB
var printer = message.NewPrinter(language.English)

// FormatBytes renders a byte count in the largest binary unit that divides it
// evenly. Zero is rendered as "0", meaning not present or not modeled.
func FormatBytes(n int) string {
	switch {
	case n == 0:
		return "0"
	case n%(1024*1024) == 0:
		return printer.Sprintf("%d MiB", n/(1024*1024))
	case n%1024 == 0:
		return printer.Sprintf("%d KiB", n/1024)
	default:
		return printer.Sprintf("%d B", n)
	}
}

// FormatMiB renders a size given in MiB.
func FormatMiB(n int) string {
	if n == 0 {
		return "0"
	}
	return printer.Sprintf("%d MiB", n)
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatBool renders a feature flag.
func FormatBool(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// FormatHex renders an identifier as 0x-prefixed hex, e.g., 0x28.
func FormatHex(n uint32) string {
	return fmt.Sprintf("0x%02X", n)
}

// FormatTarget renders a compiler target, "" becomes "none".
func FormatTarget(name string) string {
	if name == "" {
		return "none"
	}
	return name
}
