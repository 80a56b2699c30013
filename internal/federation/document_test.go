package federation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentSizeLabel(t *testing.T) {
	testCases := []struct {
		size     int64
		expected string
	}{
		{size: 500_000, expected: "488 KB"},
		{size: 2_097_152, expected: "2.0 MB"},
		{size: 1_048_575, expected: "1024 KB"},
		{size: 1_048_576, expected: "1.0 MB"},
		{size: 2_516_582, expected: "2.4 MB"},
		{size: 0, expected: "0 KB"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, DocumentSizeLabel(tc.size), "size %d", tc.size)
	}
}

func TestDocumentTypeLabel(t *testing.T) {
	assert.Equal(t, "PDF", DocumentTypeLabel("ad-art.pdf"))
	assert.Equal(t, "XLSX", DocumentTypeLabel("Laporan.Q1.xlsx"))
	assert.Equal(t, "FILE", DocumentTypeLabel("README"))
	assert.Equal(t, "FILE", DocumentTypeLabel("trailing."))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("players-women")
	assert.NoError(t, err)
	assert.Equal(t, KindPlayersWomen, k)

	_, err = ParseKind("coaches")
	assert.Error(t, err)

	assert.Equal(t, KindPlayersWomen, Women.Kind())
	assert.Equal(t, KindPlayersMen, Men.Kind())
}
