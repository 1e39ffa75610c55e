package blobstore

import "golang.org/x/sys/unix"

// FreeBytes reports the number of bytes currently free on the filesystem
// backing the store's root, as reported by statfs(2).
func (s *Store) FreeBytes() (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(s.root, &stat); err != nil {
		return 0, err
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}
