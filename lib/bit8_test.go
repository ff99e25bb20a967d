package lib

import "testing"

import "github.com/stretchr/testify/assert"

func TestFindFirstSet8(t *testing.T) {
	assert.EqualValues(t, -1, Bit8(0).Findfirstset())
	assert.EqualValues(t, 7, Bit8(0x80).Findfirstset())
	assert.EqualValues(t, 4, Bit8(0x10).Findfirstset())
}

func TestClearbit8(t *testing.T) {
	for i := uint8(0); i < 8; i++ {
		assert.EqualValues(t, 0, Bit8(1<<i).Clearbit(i))
	}
}

func TestSetbit8(t *testing.T) {
	for i := uint8(0); i < 8; i++ {
		assert.Equal(t, Bit8(1<<i), Bit8(0).Setbit(i))
	}
}

func TestZerosin8(t *testing.T) {
	assert.EqualValues(t, 8, Bit8(0).Zeros())
	assert.EqualValues(t, 4, Bit8(0xaa).Zeros())
	assert.EqualValues(t, 4, Bit8(0x55).Zeros())
}

func BenchmarkFindFSet8(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Bit8(0x80).Findfirstset()
	}
}

func BenchmarkClearbit8(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Bit8(0x80).Clearbit(7)
	}
}

func BenchmarkSetbit8(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Bit8(0x80).Setbit(7)
	}
}
