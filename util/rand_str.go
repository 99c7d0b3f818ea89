// Package util holds small helpers that don't belong to any one
// package.
package util

import (
	"math/rand"
	"time"
	"unsafe"
)

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Six bits cover the 52-letter alphabet, so one Int63 yields up to
// ten indices before a reseed.
const (
	letterBits = 6
	letterMask = 1<<letterBits - 1
	letterMax  = 63 / letterBits
)

var src = rand.NewSource(time.Now().UnixNano())

// RandStr returns n random letters. Request IDs are minted on every
// request, so this trades crypto-strength for speed; anything that
// guards access goes through GenerateToken instead.
func RandStr(n int) string {
	b := make([]byte, n)
	for i, cache, remain := n-1, src.Int63(), letterMax; i >= 0; {
		if remain == 0 {
			cache, remain = src.Int63(), letterMax
		}
		if idx := int(cache & letterMask); idx < len(letters) {
			b[i] = letters[idx]
			i--
		}
		cache >>= letterBits
		remain--
	}

	return *(*string)(unsafe.Pointer(&b))
}
