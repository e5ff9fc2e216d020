package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/libris/internal/api"
	"github.com/dmitrijs2005/libris/internal/models"
)

func catalogPage() *api.Page[models.Book] {
	return &api.Page[models.Book]{
		Items: []models.Book{
			{ID: 1, Title: "The Go Programming Language", Author: "Donovan", ISBN: "978-0134190440", CopiesTotal: 3, CopiesAvailable: 2},
			{ID: 2, Title: "Learning Go", Author: "Bodner", ISBN: "978-1492077213", CopiesTotal: 1, CopiesAvailable: 0},
		},
		Total:  5,
		Offset: 0,
		Limit:  2,
	}
}

func TestBooksPage_RendersAndPaginates(t *testing.T) {
	out := captureOutput(t)
	gw := &fakeGateway{booksOut: catalogPage()}
	a := newTestApp(gw, authedStore(adminIdentity), "n", "n", "p", "q")

	require.NoError(t, a.booksPage(context.Background(), false))

	s := out.String()
	assert.Contains(t, s, "The Go Programming Language")
	assert.Contains(t, s, "Learning Go")
	assert.Contains(t, s, "showing 1-2 of 5")

	// Initial load, two pages forward, one back. PageSize is 2 in tests.
	offsets := []int{}
	for _, q := range gw.booksQ {
		offsets = append(offsets, q.Offset)
	}
	assert.Equal(t, []int{0, 2, 4, 2}, offsets)
}

func TestBooksPage_SearchResetsOffsetAndCancelsOnExit(t *testing.T) {
	captureOutput(t)
	gw := &fakeGateway{booksOut: catalogPage()}
	a := newTestApp(gw, authedStore(adminIdentity), "n", "/go", "n", "q")

	require.NoError(t, a.booksPage(context.Background(), false))

	// Initial load at 0, next page at 2, then the search resets the offset
	// so the following next lands at 2 again, not 4.
	require.Len(t, gw.booksQ, 3)
	last := gw.booksQ[len(gw.booksQ)-1]
	assert.Equal(t, "go", last.Search)
	assert.Equal(t, 2, last.Offset)

	// The debounce interval is huge in tests and the page was left, so the
	// debounced search request itself never fired.
	for _, q := range gw.booksQ {
		if q.Search == "go" && q.Offset == 0 {
			t.Fatalf("debounced search fired despite cancellation: %+v", gw.booksQ)
		}
	}
}

func TestBooksPage_AddSendsFieldsAndLogicalKey(t *testing.T) {
	out := captureOutput(t)
	gw := &fakeGateway{booksOut: catalogPage()}
	a := newTestApp(gw, authedStore(adminIdentity),
		"a",
		"Clean Architecture", // title
		"Martin",             // author
		"978-0134494166",     // isbn
		"3",                  // shelf id
		"2",                  // copies
		"q",
	)

	require.NoError(t, a.booksPage(context.Background(), false))

	require.Len(t, gw.createdBooks, 1)
	b := gw.createdBooks[0]
	assert.Equal(t, "Clean Architecture", b.Title)
	assert.Equal(t, "Martin", b.Author)
	assert.Equal(t, "978-0134494166", b.ISBN)
	assert.Equal(t, int64(3), b.ShelfID)
	assert.Equal(t, 2, b.CopiesTotal)

	require.Len(t, gw.bookKeys, 1)
	assert.NotEmpty(t, gw.bookKeys[0])
	assert.Contains(t, out.String(), "Created book #9.")
}

func TestBooksPage_DuplicateIsReportedWithBackendWording(t *testing.T) {
	out := captureOutput(t)
	gw := &fakeGateway{
		booksOut: catalogPage(),
		createBookErr: &api.Error{
			Kind: api.ErrConflict, Status: 409, Code: "duplicate",
			Message: "A book with this ISBN already exists",
		},
	}
	a := newTestApp(gw, authedStore(adminIdentity),
		"a", "Dup", "Dup", "978-1", "0", "1", "q")

	require.NoError(t, a.booksPage(context.Background(), false))

	assert.Empty(t, gw.createdBooks)
	assert.Contains(t, out.String(), "A book with this ISBN already exists")
}

func TestBooksPage_DeleteNeedsConfirmation(t *testing.T) {
	out := captureOutput(t)
	gw := &fakeGateway{booksOut: catalogPage()}
	a := newTestApp(gw, authedStore(adminIdentity), "d", "4", "n", "q")

	require.NoError(t, a.booksPage(context.Background(), false))

	assert.Empty(t, gw.deletedBooks)
	assert.Contains(t, out.String(), "Cancelled.")
}

func TestBooksPage_DeleteConfirmed(t *testing.T) {
	out := captureOutput(t)
	gw := &fakeGateway{booksOut: catalogPage()}
	a := newTestApp(gw, authedStore(adminIdentity), "d", "4", "y", "q")

	require.NoError(t, a.booksPage(context.Background(), false))

	assert.Equal(t, []int64{4}, gw.deletedBooks)
	assert.Contains(t, out.String(), "Deleted book #4.")
}

func TestBooksPage_ReadOnlyRejectsMutations(t *testing.T) {
	out := captureOutput(t)
	gw := &fakeGateway{booksOut: catalogPage()}
	a := newTestApp(gw, authedStore(memberIdentity), "a", "q")

	require.NoError(t, a.booksPage(context.Background(), true))

	assert.Empty(t, gw.createdBooks)
	assert.Contains(t, out.String(), "Unknown command:")
}

func TestBooksPage_EditKeepsCurrentValuesOnEnter(t *testing.T) {
	out := captureOutput(t)
	gw := &fakeGateway{
		booksOut: catalogPage(),
		bookOut: &models.Book{
			ID: 1, Title: "The Go Programming Language", Author: "Donovan",
			ISBN: "978-0134190440", ShelfID: 2, CopiesTotal: 3,
		},
	}
	a := newTestApp(gw, authedStore(adminIdentity),
		"e",
		"1",             // id
		"",              // keep title
		"Donovan, Alan", // new author
		"",              // keep isbn
		"",              // keep shelf
		"",              // keep copies
		"q",
	)

	require.NoError(t, a.booksPage(context.Background(), false))

	require.Len(t, gw.updatedBooks, 1)
	got := gw.updatedBooks[0]
	assert.Equal(t, "The Go Programming Language", got.Title)
	assert.Equal(t, "Donovan, Alan", got.Author)
	assert.Equal(t, int64(2), got.ShelfID)
	assert.Equal(t, 3, got.CopiesTotal)
	assert.Contains(t, out.String(), "Updated book #1.")
}
