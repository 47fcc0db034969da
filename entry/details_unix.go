//go:build unix

package entry

import (
	"io/fs"
	"syscall"
)

func detailsOf(info fs.FileInfo) Details {
	if info == nil {
		return Details{Nlink: 1}
	}
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return Details{
			Nlink: uint64(stat.Nlink),
			Uid:   stat.Uid,
			Gid:   stat.Gid,
			Valid: true,
		}
	}
	return Details{Nlink: 1}
}
