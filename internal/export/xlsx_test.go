package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/fixtures"
)

func TestDirectoryWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Directory(&buf, fixtures.PlayersMen(), fixtures.PlayersWomen(), fixtures.Clubs()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetMen, SheetWomen, SheetClubs}, f.GetSheetList())

	men, err := f.GetRows(SheetMen)
	require.NoError(t, err)
	require.Len(t, men, 3)
	assert.Equal(t, "Nama", men[0][1])
	assert.Equal(t, []string{"1", "Rivan Nurmulki (Kw)", "Bank SulutGo", "Opposite", "28", "195", "85", "350", "335", "Kanan"}, men[1])

	women, err := f.GetRows(SheetWomen)
	require.NoError(t, err)
	require.Len(t, women, 3)
	assert.Equal(t, "Megawati (Kw)", women[1][1])

	clubs, err := f.GetRows(SheetClubs)
	require.NoError(t, err)
	require.Len(t, clubs, 3)
	assert.Equal(t, "Bank SulutGo Volley", clubs[1][1])
	assert.Equal(t, "Manado", clubs[1][2])
}

func TestDirectoryWorkbookEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Directory(&buf, nil, nil, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetClubs)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
