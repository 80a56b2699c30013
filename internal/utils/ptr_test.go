package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalValues(t *testing.T) {
	assert.Nil(t, StringOrNil("   "))
	assert.Equal(t, "x", *StringOrNil(" x "))
	assert.Equal(t, 0, OrZero[int](nil))
	assert.Equal(t, 7, OrZero(Ptr(7)))

	n, err := IntOrNil(" 195 ")
	require.NoError(t, err)
	assert.Equal(t, 195, *n)

	n, err = IntOrNil("")
	require.NoError(t, err)
	assert.Nil(t, n)

	_, err = IntOrNil("tinggi")
	assert.Error(t, err)
}

func TestTextareaSplitting(t *testing.T) {
	assert.Equal(t, []string{"Juara 1", "Juara 2"}, Lines("Juara 1\r\n\n  Juara 2  \n"))
	assert.Equal(t, []string{}, Lines(""))
	assert.Equal(t, []string{"Satu\ndua", "Tiga"}, Paragraphs("Satu\ndua\n\nTiga\n\n\n"))
	assert.Equal(t, "b", FirstNonEmpty("", " ", "b", "c"))
}
