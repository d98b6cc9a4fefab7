package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, ParsePage(""))
	assert.Equal(t, 1, ParsePage("abc"))
	assert.Equal(t, 1, ParsePage("-2"))
	assert.Equal(t, 1, ParsePage("0"))
	assert.Equal(t, 7, ParsePage("7"))
}

func TestNewPageCountIsCeiling(t *testing.T) {
	for total, want := range map[int64]int{0: 0, 1: 1, 3: 1, 4: 2, 6: 2, 7: 3, 30: 10} {
		p := New(total, 1, DirectoryPageSize)
		assert.Equal(t, want, p.TotalPages, "total=%d", total)
	}
}

func TestPagesCoverEveryItemOnce(t *testing.T) {
	for total := int64(0); total <= 20; total++ {
		seen := make(map[int]int)
		first := New(total, 1, DirectoryPageSize)
		for n := 1; n <= first.TotalPages; n++ {
			p := New(total, n, DirectoryPageSize)
			assert.Equal(t, n, p.Number)

			end := p.Offset() + p.Size
			if int64(end) > total {
				end = int(total)
			}
			assert.LessOrEqual(t, end-p.Offset(), DirectoryPageSize)
			for i := p.Offset(); i < end; i++ {
				seen[i]++
			}
		}
		assert.Len(t, seen, int(total))
		for i, count := range seen {
			assert.Equal(t, 1, count, "item %d seen %d times", i, count)
		}
	}
}

func TestNewClampsOutOfRange(t *testing.T) {
	p := New(10, 99, 3)
	assert.Equal(t, 4, p.Number)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrevious)

	p = New(10, 0, 3)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 0, p.Offset())
}

func TestRangeWindow(t *testing.T) {
	p := New(60, 10, 3) // 20 pages
	assert.Equal(t, []int{6, 7, 8, 9, 10, 11, 12, 13, 14}, p.Range)

	p = New(60, 1, 3)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, p.Range)

	p = New(60, 20, 3)
	assert.Equal(t, []int{16, 17, 18, 19, 20}, p.Range)

	p = New(0, 1, 3)
	assert.Empty(t, p.Range)
}
