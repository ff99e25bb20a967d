// Package lib holds small, dependency-free helpers shared by the
// allocator packages: bit-twiddling on a single byte and a running
// histogram used for allocation-size statistics. Functions here do not
// import anything outside the standard library.
package lib
