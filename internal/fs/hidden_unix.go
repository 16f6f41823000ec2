//go:build !windows

package fs

func isHiddenName(name string) bool {
	return len(name) > 0 && name[0] == '.'
}

// skipOnDisk reports whether a directory entry stays out of the vault.
func skipOnDisk(_ string, name string) bool {
	return isHiddenName(name)
}
