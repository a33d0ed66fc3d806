package ean13_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/granel-api/internal/domain"
	"github.com/jhoicas/granel-api/internal/domain/ean13"
)

func TestComputeCheckDigit_VectoresConocidos(t *testing.T) {
	cases := map[string]byte{
		"400638133393": '1', // 4006381333931
		"590123412345": '7', // 5901234123457
		"250000001250": '1',
		"200000009990": '3',
		"000000000000": '0',
	}
	for base, want := range cases {
		got, err := ean13.ComputeCheckDigit(base)
		require.NoError(t, err, base)
		assert.Equal(t, string(want), string(got), base)
	}
}

func TestComputeCheckDigit_BaseInvalida(t *testing.T) {
	for _, base := range []string{"", "12345678901", "1234567890123", "12345678901a", "１２３４５６７８９０１２"} {
		_, err := ean13.ComputeCheckDigit(base)
		assert.ErrorIs(t, err, domain.ErrMalformed, "base %q", base)
	}
}

// Para cualquier base de 12 dígitos, base + dígito calculado valida.
func TestChecksum_IdaYVuelta(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		base := fmt.Sprintf("%012d", rnd.Int63n(1_000_000_000_000))
		code, err := ean13.ToEAN13(base)
		require.NoError(t, err)
		assert.True(t, ean13.IsValid(code), "código %s", code)

		again, err := ean13.ToEAN13(base)
		require.NoError(t, err)
		assert.Equal(t, code, again, "el cálculo debe ser determinista")
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, ean13.Validate("4006381333931"))
	assert.ErrorIs(t, ean13.Validate("4006381333932"), domain.ErrMalformed, "dígito incorrecto")
	assert.ErrorIs(t, ean13.Validate("400638133393"), domain.ErrMalformed, "12 dígitos")
	assert.ErrorIs(t, ean13.Validate("40063813339310"), domain.ErrMalformed, "14 dígitos")
	assert.ErrorIs(t, ean13.Validate("40063813339a1"), domain.ErrMalformed, "no numérico")
}

func TestZeroPad(t *testing.T) {
	s, err := ean13.ZeroPad(42, 8)
	require.NoError(t, err)
	assert.Equal(t, "00000042", s)

	_, err = ean13.ZeroPad(100_000_000, 8)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ean13.ZeroPad(-1, 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
