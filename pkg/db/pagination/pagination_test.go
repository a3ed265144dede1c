package pagination

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	token, err := EncodeCursor(Cursor{ID: "42", CreatedAt: "2026-01-02T03:04:05Z"})
	require.NoError(t, err)

	decoded, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.Equal(t, "42", decoded.ID)
	assert.Equal(t, "2026-01-02T03:04:05Z", decoded.CreatedAt)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	_, err := DecodeCursor("not base64!!")
	assert.Error(t, err)
}

type row struct{ id int }

func rows(n int) []*row {
	out := make([]*row, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &row{id: i})
	}
	return out
}

func TestBuildCursorPageInfo(t *testing.T) {
	extract := func(r *row) string { return strconv.Itoa(r.id) }

	info := BuildCursorPageInfo(rows(0), 10, extract)
	assert.False(t, info.HasMore)
	assert.Empty(t, info.NextPageToken)

	// Exactly limit rows: no extra row, so no further page.
	info = BuildCursorPageInfo(rows(10), 10, extract)
	assert.False(t, info.HasMore)
	assert.Equal(t, "9", info.NextPageToken)

	// Over-fetched limit+1 rows: extra row signals more, cursor stops at limit.
	info = BuildCursorPageInfo(rows(11), 10, extract)
	assert.True(t, info.HasMore)
	assert.Equal(t, "9", info.NextPageToken)
}
