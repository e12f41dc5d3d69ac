package shm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeLossy(t *testing.T) {
	cases := []struct {
		in   []byte
		want string
	}{
		{nil, ""},
		{[]byte("plain"), "plain"},
		{[]byte("ünïcödé"), "ünïcödé"},
		{[]byte{0xff}, "�"},
		{[]byte{'a', 0xff, 0xfe, 'b'}, "a��b"},
		{[]byte{'x', 0xe2, 0x82}, "x��"},
		{[]byte{0xe2, 0x82, 0xac}, "€"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, decodeLossy(c.in), "%x", c.in)
	}
}
