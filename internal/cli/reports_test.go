package cli

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/libris/internal/api"
	"github.com/dmitrijs2005/libris/internal/models"
)

func overdueFixture() []*api.Page[models.Loan] {
	old := time.Now().AddDate(0, 0, -10)
	return []*api.Page[models.Loan]{
		{
			Items: []models.Loan{
				{ID: 1, BookTitle: "Learning Go", MemberName: "Pat Reader", DueAt: old, Status: models.LoanOverdue},
				{ID: 2, BookTitle: "The Go Programming Language", MemberName: "Kim Writer", DueAt: old, Status: models.LoanOverdue},
			},
			Total: 3, Offset: 0, Limit: 2,
		},
		{
			Items: []models.Loan{
				{ID: 3, BookTitle: "Go in Action", MemberName: "Lee Coder", DueAt: old, Status: models.LoanOverdue},
			},
			Total: 3, Offset: 2, Limit: 2,
		},
	}
}

func TestCollectOverdue_WalksEveryPage(t *testing.T) {
	gw := &fakeGateway{overduePages: overdueFixture()}
	a := newTestApp(gw, authedStore(adminIdentity))

	loans, err := a.collectOverdue(context.Background())

	require.NoError(t, err)
	assert.Len(t, loans, 3)
	require.Len(t, gw.overdueQ, 2)
	assert.Equal(t, 0, gw.overdueQ[0].Offset)
	assert.Equal(t, 2, gw.overdueQ[1].Offset)
}

func TestExportOverdue_WritesCSV(t *testing.T) {
	out := captureOutput(t)
	path := filepath.Join(t.TempDir(), "overdue.csv")

	gw := &fakeGateway{overduePages: overdueFixture()}
	a := newTestApp(gw, authedStore(adminIdentity), path)

	a.exportOverdue(context.Background())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"loan_id", "book", "member", "due_at", "days_overdue"}, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "Learning Go", rows[1][1])
	assert.Equal(t, "10", rows[1][4])

	assert.Contains(t, out.String(), "Exported 3 overdue loan(s)")
}

func TestExportOverdue_CreatesMissingDirectory(t *testing.T) {
	captureOutput(t)
	path := filepath.Join(t.TempDir(), "exports", "overdue.csv")

	gw := &fakeGateway{overduePages: overdueFixture()}
	a := newTestApp(gw, authedStore(adminIdentity), path)

	a.exportOverdue(context.Background())

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestReportsPage_SummaryAndUnknown(t *testing.T) {
	out := captureOutput(t)
	gw := &fakeGateway{
		summaryOut: &models.LibrarySummary{
			Books: 120, Members: 40, ActiveLoans: 17, OverdueLoans: 3, OutstandingFines: 81.5,
		},
	}
	a := newTestApp(gw, authedStore(adminIdentity), "s", "zzz", "q")

	require.NoError(t, a.reportsPage(context.Background()))

	s := out.String()
	assert.Contains(t, s, "Books: 120")
	assert.Contains(t, s, "Outstanding fines: 81.50")
	assert.Contains(t, s, "Unknown command:")
	assert.Equal(t, 1, gw.summaryCalls)
}
