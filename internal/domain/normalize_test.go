package domain_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/couchcryptid/bridge-inspection/internal/domain"
	"github.com/couchcryptid/bridge-inspection/internal/domain/bridgetest"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBatch_ReferenceSample(t *testing.T) {
	got, err := domain.NormalizeBatch(bridgetest.RawThreeBridges())
	require.NoError(t, err)

	if diff := cmp.Diff(bridgetest.ThreeBridges(), got); diff != "" {
		t.Fatalf("normalized sample mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeBatch_DoesNotModifyInput(t *testing.T) {
	raw := bridgetest.RawThreeBridges()
	before := make([][]string, len(raw))
	for i := range raw {
		before[i] = slices.Clone(raw[i].Fields)
	}

	_, err := domain.NormalizeBatch(raw)
	require.NoError(t, err)

	for i := range raw {
		assert.Equal(t, before[i], raw[i].Fields)
	}
}

func TestNormalizeBatch_IDsIgnoreSourceColumn(t *testing.T) {
	raw := bridgetest.RawThreeBridges()
	// Same structure id on every row; IDs must still follow position.
	for i := range raw {
		raw[i].Fields[0] = "9 -  99/"
	}

	got, err := domain.NormalizeBatch(raw)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, rec := range got {
		assert.Equal(t, domain.IDForPosition(i), rec.ID)
	}
}

func TestNormalizeBatch_FailsWholeBatch(t *testing.T) {
	raw := bridgetest.RawThreeBridges()
	raw[1].Fields[10] = "sixty-one"

	got, err := domain.NormalizeBatch(raw)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, domain.ErrMalformedRow))
	assert.Contains(t, err.Error(), "line 4")
	assert.Contains(t, err.Error(), "total length")
}

func TestNormalizeRow(t *testing.T) {
	base := func() domain.RawRow { return bridgetest.RawThreeBridges()[2] }

	t.Run("missing both coordinates", func(t *testing.T) {
		raw := base()
		raw.Fields[3], raw.Fields[4] = "", ""
		rec, err := domain.NormalizeRow(7, raw)
		require.NoError(t, err)
		assert.Nil(t, rec.Location)
		assert.Equal(t, 7, rec.ID)
	})

	t.Run("one coordinate missing leaves location unset", func(t *testing.T) {
		raw := base()
		raw.Fields[4] = ""
		rec, err := domain.NormalizeRow(1, raw)
		require.NoError(t, err)
		assert.Nil(t, rec.Location)
	})

	t.Run("malformed latitude", func(t *testing.T) {
		raw := base()
		raw.Fields[3] = "45,03"
		_, err := domain.NormalizeRow(1, raw)
		require.ErrorIs(t, err, domain.ErrMalformedRow)
		assert.Contains(t, err.Error(), "location")
	})

	t.Run("span details without separator", func(t *testing.T) {
		raw := base()
		raw.Fields[9] = "Total=16"
		_, err := domain.NormalizeRow(1, raw)
		require.ErrorIs(t, err, domain.ErrMalformedRow)
		assert.Contains(t, err.Error(), "span details")
	})

	t.Run("span without length", func(t *testing.T) {
		raw := base()
		raw.Fields[9] = "Total=16  (1)16;"
		_, err := domain.NormalizeRow(1, raw)
		require.ErrorIs(t, err, domain.ErrMalformedRow)
	})

	t.Run("span count disagrees with spans", func(t *testing.T) {
		raw := base()
		raw.Fields[8] = "2"
		_, err := domain.NormalizeRow(1, raw)
		require.ErrorIs(t, err, domain.ErrMalformedRow)
		assert.Contains(t, err.Error(), "1 span lengths for 2 spans")
	})

	t.Run("non-integer span count", func(t *testing.T) {
		raw := base()
		raw.Fields[8] = "1.5"
		_, err := domain.NormalizeRow(1, raw)
		require.ErrorIs(t, err, domain.ErrMalformedRow)
		assert.Contains(t, err.Error(), "number of spans")
	})

	t.Run("malformed history cell", func(t *testing.T) {
		raw := base()
		raw.Fields[15] = "n/a"
		_, err := domain.NormalizeRow(1, raw)
		require.ErrorIs(t, err, domain.ErrMalformedRow)
		assert.Contains(t, err.Error(), "bci history")
	})

	t.Run("no history columns", func(t *testing.T) {
		raw := base()
		raw.Fields = raw.Fields[:12]
		rec, err := domain.NormalizeRow(1, raw)
		require.NoError(t, err)
		assert.Empty(t, rec.BCIHistory)
		_, err = rec.LatestBCI()
		assert.ErrorIs(t, err, domain.ErrEmptyHistory)
	})

	t.Run("only empty history cells", func(t *testing.T) {
		raw := base()
		for i := 13; i < len(raw.Fields); i++ {
			raw.Fields[i] = ""
		}
		rec, err := domain.NormalizeRow(1, raw)
		require.NoError(t, err)
		assert.NotNil(t, rec.BCIHistory)
		assert.Empty(t, rec.BCIHistory)
	})

	t.Run("too few columns", func(t *testing.T) {
		raw := domain.RawRow{Line: 9, Fields: []string{"1 - 1/", "NAME", "401"}}
		_, err := domain.NormalizeRow(1, raw)
		require.ErrorIs(t, err, domain.ErrMalformedRow)
		assert.Contains(t, err.Error(), "line 9")
	})
}

func TestBridgeRecord_Clone(t *testing.T) {
	orig := bridgetest.ThreeBridges()[0]
	c := orig.Clone()

	c.BCIHistory[0] = 1
	c.SpanLengths[0] = 1
	c.Location.Lat = 0

	assert.InDelta(t, 72.3, orig.BCIHistory[0], 1e-9)
	assert.InDelta(t, 12.0, orig.SpanLengths[0], 1e-9)
	assert.InDelta(t, 43.167233, orig.Location.Lat, 1e-9)
}
