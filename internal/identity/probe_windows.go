//go:build windows

package identity

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var procGetUserNameW = windows.NewLazySystemDLL("advapi32.dll").NewProc("GetUserNameW")

func getUserNameW(buf []uint16, size *uint32) error {
	var p *uint16
	if len(buf) > 0 {
		p = &buf[0]
	}
	r1, _, err := procGetUserNameW.Call(uintptr(unsafe.Pointer(p)), uintptr(unsafe.Pointer(size)))
	if r1 == 0 {
		return err
	}
	return nil
}

// Default returns the GetUserNameW resolver.
func Default() Resolver {
	return &ProbeResolver{Call: getUserNameW}
}
