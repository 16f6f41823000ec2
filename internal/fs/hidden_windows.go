//go:build windows

package fs

import "syscall"

const (
	fileAttributeHidden       = 0x02
	fileAttributeSystem       = 0x04
	fileAttributeReparsePoint = 0x0400
)

func isHiddenName(name string) bool {
	return len(name) > 0 && name[0] == '.'
}

// skipOnDisk reports whether a directory entry stays out of the vault.
// Besides dot-prefixed names this covers the hidden and system attributes.
func skipOnDisk(fullPath string, name string) bool {
	if isHiddenName(name) {
		return true
	}
	ptr, err := syscall.UTF16PtrFromString(fullPath)
	if err != nil {
		return false
	}
	attrs, err := syscall.GetFileAttributes(ptr)
	if err != nil {
		return false
	}
	if attrs&fileAttributeHidden != 0 {
		return true
	}
	const protectedMask = fileAttributeSystem | fileAttributeReparsePoint
	return attrs&protectedMask == protectedMask
}
