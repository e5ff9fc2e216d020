package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/libris/internal/api"
	"github.com/dmitrijs2005/libris/internal/models"
)

// inventoryPage manages racks and their shelves. Admin only.
func (a *App) inventoryPage(ctx context.Context) error {
	load := func() {
		page, err := a.gateway.ListRacks(ctx)
		if err != nil {
			a.report(ctx, err)
			return
		}
		renderRacks(page)
	}

	load()

	for {
		line, err := GetSimpleText(a.reader,
			"[inventory] a=add rack  s=shelves of a rack  as=add shelf  q=back", os.Stdout)
		if err != nil {
			return nil
		}
		switch line {
		case "q":
			return nil
		case "a":
			a.addRack(ctx)
			load()
		case "s":
			a.listShelves(ctx)
		case "as":
			a.addShelf(ctx)
		default:
			printlnFn("Unknown command:", line)
		}
	}
}

func renderRacks(p *api.Page[models.Rack]) {
	if len(p.Items) == 0 {
		printlnFn("No racks yet.")
		return
	}
	printlnFn(fmt.Sprintf("%4s  %-20s  %s", "ID", "NAME", "LOCATION"))
	for _, r := range p.Items {
		printlnFn(fmt.Sprintf("%4d  %-20.20s  %s", r.ID, r.Name, r.Location))
	}
}

func (a *App) addRack(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Rack name", os.Stdout)
	if err != nil {
		return
	}
	location, err := GetSimpleText(a.reader, "Location", os.Stdout)
	if err != nil {
		return
	}

	created, err := a.gateway.CreateRack(ctx, models.Rack{Name: name, Location: location}, newKey())
	if err != nil {
		a.report(ctx, err)
		return
	}
	printlnFn(fmt.Sprintf("Created rack #%d.", created.ID))
}

func (a *App) listShelves(ctx context.Context) {
	rackID, err := getInt64(a.reader, "Rack id", os.Stdout)
	if err != nil {
		reportInput(err)
		return
	}
	page, err := a.gateway.ListShelves(ctx, rackID)
	if err != nil {
		a.report(ctx, err)
		return
	}
	if len(page.Items) == 0 {
		printlnFn("No shelves on this rack.")
		return
	}
	printlnFn(fmt.Sprintf("%4s  %-20s  %s", "ID", "NAME", "CAPACITY"))
	for _, s := range page.Items {
		printlnFn(fmt.Sprintf("%4d  %-20.20s  %d", s.ID, s.Name, s.Capacity))
	}
}

func (a *App) addShelf(ctx context.Context) {
	rackID, err := getInt64(a.reader, "Rack id", os.Stdout)
	if err != nil {
		reportInput(err)
		return
	}
	name, err := GetSimpleText(a.reader, "Shelf name", os.Stdout)
	if err != nil {
		return
	}
	capacity, err := getIntDefault(a.reader, "Capacity", 50, os.Stdout)
	if err != nil {
		reportInput(err)
		return
	}

	s := models.Shelf{RackID: rackID, Name: name, Capacity: capacity}
	created, err := a.gateway.CreateShelf(ctx, s, newKey())
	if err != nil {
		a.report(ctx, err)
		return
	}
	printlnFn(fmt.Sprintf("Created shelf #%d on rack #%d.", created.ID, rackID))
}
