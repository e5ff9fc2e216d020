package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/libris/internal/api"
	"github.com/dmitrijs2005/libris/internal/fetch"
	"github.com/dmitrijs2005/libris/internal/models"
)

// booksPage runs the catalog list. Admins get the full set of commands,
// members (readOnly) only browse and search.
//
// Search input is debounced: typing a new term before the quiet period ends
// cancels the pending request. Responses are sequenced, so a slow response
// for an old term can never overwrite the newest one.
func (a *App) booksPage(ctx context.Context, readOnly bool) error {
	deb := fetch.NewDebouncer(a.config.SearchDebounce)
	defer deb.Stop()
	seq := &fetch.Sequencer{}

	q := api.Query{Limit: a.config.PageSize}

	load := func(ctx context.Context, q api.Query) {
		ticket := seq.Next()
		page, err := a.gateway.ListBooks(ctx, q)
		if err != nil {
			a.report(ctx, err)
			return
		}
		if !seq.Current(ticket) {
			return // a newer request owns the view
		}
		renderBooks(page)
	}

	load(ctx, q)

	hint := "[books] /text=search  n=next  p=prev  a=add  e=edit  d=delete  q=back"
	if readOnly {
		hint = "[browse] /text=search  n=next  p=prev  q=back"
	}

	for {
		line, err := GetSimpleText(a.reader, hint, os.Stdout)
		if err != nil {
			return nil
		}
		switch {
		case line == "q":
			return nil
		case strings.HasPrefix(line, "/"):
			q.Search = strings.TrimSpace(strings.TrimPrefix(line, "/"))
			q.Offset = 0
			snapshot := q
			deb.Trigger(ctx, snapshot.Search, func(ctx context.Context, _ string) {
				load(ctx, snapshot)
			})
		case line == "n":
			q.Offset += q.Limit
			load(ctx, q)
		case line == "p":
			if q.Offset >= q.Limit {
				q.Offset -= q.Limit
			} else {
				q.Offset = 0
			}
			load(ctx, q)
		case line == "a" && !readOnly:
			a.addBook(ctx)
			load(ctx, q)
		case line == "e" && !readOnly:
			a.editBook(ctx)
			load(ctx, q)
		case line == "d" && !readOnly:
			a.deleteBook(ctx)
			load(ctx, q)
		default:
			printlnFn("Unknown command:", line)
		}
	}
}

func renderBooks(p *api.Page[models.Book]) {
	if len(p.Items) == 0 {
		printlnFn("No books found.")
		return
	}
	printlnFn(fmt.Sprintf("%4s  %-30s  %-20s  %-13s  %s", "ID", "TITLE", "AUTHOR", "ISBN", "AVAIL"))
	for _, b := range p.Items {
		printlnFn(fmt.Sprintf("%4d  %-30.30s  %-20.20s  %-13s  %d/%d",
			b.ID, b.Title, b.Author, b.ISBN, b.CopiesAvailable, b.CopiesTotal))
	}
	printlnFn(pageFooter(p.Offset, len(p.Items), p.Total))
}

func (a *App) addBook(ctx context.Context) {
	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return
	}
	author, err := GetSimpleText(a.reader, "Author", os.Stdout)
	if err != nil {
		return
	}
	isbn, err := GetSimpleText(a.reader, "ISBN", os.Stdout)
	if err != nil {
		return
	}
	shelfID, err := getIntDefault(a.reader, "Shelf id (0 = unshelved)", 0, os.Stdout)
	if err != nil {
		reportInput(err)
		return
	}
	copies, err := getIntDefault(a.reader, "Copies", 1, os.Stdout)
	if err != nil {
		reportInput(err)
		return
	}

	b := models.Book{
		Title:       title,
		Author:      author,
		ISBN:        isbn,
		ShelfID:     int64(shelfID),
		CopiesTotal: copies,
	}
	created, err := a.gateway.CreateBook(ctx, b, newKey())
	if err != nil {
		a.report(ctx, err)
		return
	}
	printlnFn(fmt.Sprintf("Created book #%d.", created.ID))
}

func (a *App) editBook(ctx context.Context) {
	id, err := getInt64(a.reader, "Book id to edit", os.Stdout)
	if err != nil {
		reportInput(err)
		return
	}
	cur, err := a.gateway.GetBook(ctx, id)
	if err != nil {
		a.report(ctx, err)
		return
	}

	title, err := getTextDefault(a.reader, "Title", cur.Title, os.Stdout)
	if err != nil {
		return
	}
	author, err := getTextDefault(a.reader, "Author", cur.Author, os.Stdout)
	if err != nil {
		return
	}
	isbn, err := getTextDefault(a.reader, "ISBN", cur.ISBN, os.Stdout)
	if err != nil {
		return
	}
	shelfID, err := getIntDefault(a.reader, "Shelf id", int(cur.ShelfID), os.Stdout)
	if err != nil {
		reportInput(err)
		return
	}
	copies, err := getIntDefault(a.reader, "Copies", cur.CopiesTotal, os.Stdout)
	if err != nil {
		reportInput(err)
		return
	}

	b := models.Book{
		ID:          id,
		Title:       title,
		Author:      author,
		ISBN:        isbn,
		ShelfID:     int64(shelfID),
		CopiesTotal: copies,
	}
	updated, err := a.gateway.UpdateBook(ctx, b)
	if err != nil {
		a.report(ctx, err)
		return
	}
	printlnFn(fmt.Sprintf("Updated book #%d.", updated.ID))
}

func (a *App) deleteBook(ctx context.Context) {
	id, err := getInt64(a.reader, "Book id to delete", os.Stdout)
	if err != nil {
		reportInput(err)
		return
	}
	if !Confirm(a.reader, fmt.Sprintf("Delete book #%d? This cannot be undone.", id), os.Stdout) {
		printlnFn("Cancelled.")
		return
	}
	if err := a.gateway.DeleteBook(ctx, id); err != nil {
		a.report(ctx, err)
		return
	}
	printlnFn(fmt.Sprintf("Deleted book #%d.", id))
}
