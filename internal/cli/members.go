package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/libris/internal/api"
	"github.com/dmitrijs2005/libris/internal/models"
)

// membersPage manages registered members. Admin only.
func (a *App) membersPage(ctx context.Context) error {
	q := api.Query{Limit: a.config.PageSize}

	load := func() {
		page, err := a.gateway.ListMembers(ctx, q)
		if err != nil {
			a.report(ctx, err)
			return
		}
		renderMembers(page)
	}

	load()

	for {
		line, err := GetSimpleText(a.reader,
			"[members] /text=search  n=next  p=prev  a=add  e=edit  d=deactivate  q=back", os.Stdout)
		if err != nil {
			return nil
		}
		switch {
		case line == "q":
			return nil
		case strings.HasPrefix(line, "/"):
			q.Search = strings.TrimSpace(strings.TrimPrefix(line, "/"))
			q.Offset = 0
			load()
		case line == "n":
			q.Offset += q.Limit
			load()
		case line == "p":
			if q.Offset >= q.Limit {
				q.Offset -= q.Limit
			} else {
				q.Offset = 0
			}
			load()
		case line == "a":
			a.addMember(ctx)
			load()
		case line == "e":
			a.editMember(ctx)
			load()
		case line == "d":
			a.deactivateMember(ctx)
			load()
		default:
			printlnFn("Unknown command:", line)
		}
	}
}

func renderMembers(p *api.Page[models.Member]) {
	if len(p.Items) == 0 {
		printlnFn("No members found.")
		return
	}
	printlnFn(fmt.Sprintf("%4s  %-25s  %-30s  %-6s  %s", "ID", "NAME", "EMAIL", "ROLE", "ACTIVE"))
	for _, m := range p.Items {
		printlnFn(fmt.Sprintf("%4d  %-25.25s  %-30.30s  %-6s  %t",
			m.ID, m.Name, m.Email, m.Role, m.Active))
	}
	printlnFn(pageFooter(p.Offset, len(p.Items), p.Total))
}

func (a *App) addMember(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		return
	}
	email, err := GetSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return
	}
	role, err := getTextDefault(a.reader, "Role (admin/user)", string(models.RoleUser), os.Stdout)
	if err != nil {
		return
	}
	if !models.Role(role).Valid() {
		printlnFn("Role must be admin or user.")
		return
	}

	m := models.Member{Name: name, Email: email, Role: models.Role(role), Active: true}
	created, err := a.gateway.CreateMember(ctx, m, newKey())
	if err != nil {
		a.report(ctx, err)
		return
	}
	printlnFn(fmt.Sprintf("Created member #%d.", created.ID))
}

func (a *App) editMember(ctx context.Context) {
	id, err := getInt64(a.reader, "Member id to edit", os.Stdout)
	if err != nil {
		reportInput(err)
		return
	}
	cur, err := a.gateway.GetMember(ctx, id)
	if err != nil {
		a.report(ctx, err)
		return
	}

	name, err := getTextDefault(a.reader, "Name", cur.Name, os.Stdout)
	if err != nil {
		return
	}
	email, err := getTextDefault(a.reader, "Email", cur.Email, os.Stdout)
	if err != nil {
		return
	}
	role, err := getTextDefault(a.reader, "Role (admin/user)", string(cur.Role), os.Stdout)
	if err != nil {
		return
	}
	if !models.Role(role).Valid() {
		printlnFn("Role must be admin or user.")
		return
	}

	m := models.Member{ID: id, Name: name, Email: email, Role: models.Role(role), Active: cur.Active}
	updated, err := a.gateway.UpdateMember(ctx, m)
	if err != nil {
		a.report(ctx, err)
		return
	}
	printlnFn(fmt.Sprintf("Updated member #%d.", updated.ID))
}

// deactivateMember removes a member from circulation. The backend refuses
// while the member still has open loans, which surfaces as a conflict.
func (a *App) deactivateMember(ctx context.Context) {
	id, err := getInt64(a.reader, "Member id to deactivate", os.Stdout)
	if err != nil {
		reportInput(err)
		return
	}
	if !Confirm(a.reader, fmt.Sprintf("Deactivate member #%d?", id), os.Stdout) {
		printlnFn("Cancelled.")
		return
	}
	if err := a.gateway.DeleteMember(ctx, id); err != nil {
		a.report(ctx, err)
		return
	}
	printlnFn(fmt.Sprintf("Deactivated member #%d.", id))
}
