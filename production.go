//go:build !debug

package tcmalloc

import "unsafe"

// poisonBlock is a no-op in production builds: a block is handed out
// with whatever it last held (its free-list link in the first word, and
// any data a previous owner wrote) and nothing is rewritten. See debug.go.
func poisonBlock(p unsafe.Pointer, size int64) {}
