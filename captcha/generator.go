package captcha

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

// textAlphabet excludes 0/O, 1/I/l and other glyphs that render ambiguously.
const textAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789"

// NewText generates a random challenge text of length characters drawn from
// an unambiguous alphabet.
func NewText(length int) (string, error) {
	if length < 4 || length > 16 {
		return "", errors.New("invalid captcha text length")
	}

	var b strings.Builder
	b.Grow(length)

	max := big.NewInt(int64(len(textAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(textAlphabet[n.Int64()])
	}

	return b.String(), nil
}
