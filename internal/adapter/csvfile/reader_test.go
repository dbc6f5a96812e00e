package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/bridge-inspection/internal/domain/bridgetest"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_ReferenceFile(t *testing.T) {
	e := NewExtractor(filepath.Join("testdata", "bridges.csv"), DefaultHeaderRows)

	rows, err := e.ExtractRows(context.Background())
	require.NoError(t, err)

	if diff := cmp.Diff(bridgetest.RawThreeBridges(), rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractor_MissingFile(t *testing.T) {
	e := NewExtractor(filepath.Join(t.TempDir(), "nope.csv"), DefaultHeaderRows)

	_, err := e.ExtractRows(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadRows_RaggedRows(t *testing.T) {
	input := "title\nheader\na,b,c\nd,e\nf,g,h,i,,\n"

	rows, err := ReadRows(context.Background(), strings.NewReader(input), 2)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"a", "b", "c"}, rows[0].Fields)
	assert.Equal(t, 3, rows[0].Line)
	assert.Equal(t, []string{"d", "e"}, rows[1].Fields)
	assert.Equal(t, []string{"f", "g", "h", "i", "", ""}, rows[2].Fields)
	assert.Equal(t, 5, rows[2].Line)
}

func TestReadRows_QuotedFields(t *testing.T) {
	input := "h1\nh2\n\"1 -  5/\",\"QUEEN ST, EAST\",2\n"

	rows, err := ReadRows(context.Background(), strings.NewReader(input), 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "QUEEN ST, EAST", rows[0].Fields[1])
}

func TestReadRows_OnlyHeaders(t *testing.T) {
	rows, err := ReadRows(context.Background(), strings.NewReader("h1\nh2\n"), 2)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadRows_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadRows(ctx, strings.NewReader("a\nb\nc\n"), 0)
	assert.ErrorIs(t, err, context.Canceled)
}
