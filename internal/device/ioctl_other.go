// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

//go:build !linux

package device

// UnsupportedQuerier fails every query.
type UnsupportedQuerier struct{}

// NewQuerier returns the querier of the platform.
func NewQuerier() Querier {
	return UnsupportedQuerier{}
}

func (UnsupportedQuerier) QueryDeviceInfo(renderNode string) (DeviceInfo, error) {
	return DeviceInfo{}, ErrUnsupported
}
