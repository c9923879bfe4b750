// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"os"
	"runtime"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const (
	// ioctlAMDGPUInfo is DRM_IOCTL_AMDGPU_INFO, _IOW('d', 0x40+0x05, struct drm_amdgpu_info)
	ioctlAMDGPUInfo = 0x40406445
	// amdgpuInfoDevInfo is the AMDGPU_INFO_DEV_INFO query
	amdgpuInfoDevInfo = 0x16
)

// infoRequest mirrors struct drm_amdgpu_info: return pointer, return size,
// query id and a 48 byte union of query arguments.
type infoRequest struct {
	returnPointer uint64
	returnSize    uint32
	query         uint32
	unionData     [48]byte
}

// IoctlQuerier queries render nodes with DRM_IOCTL_AMDGPU_INFO.
type IoctlQuerier struct{}

// NewQuerier returns the querier of the platform.
func NewQuerier() Querier {
	return IoctlQuerier{}
}

// QueryDeviceInfo opens the render node, issues AMDGPU_INFO_DEV_INFO and
// closes the node before returning.
func (IoctlQuerier) QueryDeviceInfo(renderNode string) (DeviceInfo, error) {
	file, err := os.OpenFile(renderNode, os.O_RDWR, 0)
	if err != nil {
		return DeviceInfo{}, errors.Wrapf(err, "failed to open render node %s", renderNode)
	}
	defer file.Close()

	buf := make([]byte, deviceInfoSize)
	var request infoRequest
	request.returnPointer = uint64(uintptr(unsafe.Pointer(&buf[0])))
	request.returnSize = deviceInfoSize
	request.query = amdgpuInfoDevInfo
	_, _, errno := unix.Syscall(
		unix.SYS_IOCTL,
		file.Fd(),
		uintptr(ioctlAMDGPUInfo),
		uintptr(unsafe.Pointer(&request)),
	)
	runtime.KeepAlive(buf)
	if errno != 0 {
		return DeviceInfo{}, errors.Wrapf(errno, "amdgpu device info query on %s", renderNode)
	}
	return decodeDeviceInfo(buf)
}
