package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/libris/internal/api"
	"github.com/dmitrijs2005/libris/internal/config"
	"github.com/dmitrijs2005/libris/internal/logging"
	"github.com/dmitrijs2005/libris/internal/models"
	"github.com/dmitrijs2005/libris/internal/nav"
	"github.com/dmitrijs2005/libris/internal/session"
)

// ------------ helpers ------------

func readerFromLines(lines ...string) *bufio.Reader {
	if len(lines) == 0 || lines[len(lines)-1] != "" {
		lines = append(lines, "")
	}
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

// captureOutput redirects printlnFn into a buffer for the duration of the test.
func captureOutput(t *testing.T) *strings.Builder {
	t.Helper()
	var sb strings.Builder
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		sb.WriteString(fmt.Sprintln(args...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &sb
}

func pageOf[T any](items ...T) *api.Page[T] {
	return &api.Page[T]{Items: items, Total: len(items), Limit: len(items)}
}

func orEmpty[T any](p *api.Page[T]) *api.Page[T] {
	if p == nil {
		return &api.Page[T]{}
	}
	return p
}

func newTestApp(gw api.Gateway, st session.Store, lines ...string) *App {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.PageSize = 2
	cfg.SearchDebounce = time.Hour
	cfg.RefreshInterval = time.Hour

	a := &App{
		config:  cfg,
		gateway: gw,
		session: st,
		router:  nav.NewRouter(),
		log:     logging.NewNop(),
		reader:  readerFromLines(lines...),
	}
	a.online.Store(true)
	return a
}

var adminIdentity = &models.Identity{ID: 1, Name: "Admin", Email: "admin@lms.com", Role: models.RoleAdmin}
var memberIdentity = &models.Identity{ID: 42, Name: "Pat Reader", Email: "pat@lms.com", Role: models.RoleUser}

// ------------ fake session store ------------

type fakeStore struct {
	snap        session.Snapshot
	loginAs     *models.Identity
	loginEmail  string
	loginPass   string
	loginErr    error
	logoutCalls int
	logoutErr   error
	restoreErr  error
	verifyIdent *models.Identity
	verifyErr   error
	verifyCalls int
	invalidated bool
	expiry      time.Time
	hasExpiry   bool
}

func (f *fakeStore) Login(ctx context.Context, email, password string) error {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr != nil {
		return f.loginErr
	}
	f.snap = session.Snapshot{Status: session.StatusAuthenticated, User: f.loginAs}
	return nil
}

func (f *fakeStore) Logout(ctx context.Context) error {
	f.logoutCalls++
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.snap = session.Snapshot{Status: session.StatusUnauthenticated}
	return nil
}

func (f *fakeStore) Verify(ctx context.Context) (*models.Identity, error) {
	f.verifyCalls++
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	f.snap = session.Snapshot{Status: session.StatusAuthenticated, User: f.verifyIdent}
	return f.verifyIdent, nil
}

func (f *fakeStore) Restore(ctx context.Context) error { return f.restoreErr }

func (f *fakeStore) Invalidate(ctx context.Context) {
	f.invalidated = true
	f.snap = session.Snapshot{Status: session.StatusUnauthenticated}
}

func (f *fakeStore) Snapshot() session.Snapshot         { return f.snap }
func (f *fakeStore) OnChange(fn func(session.Snapshot)) {}
func (f *fakeStore) TokenExpiry() (time.Time, bool)     { return f.expiry, f.hasExpiry }
func (f *fakeStore) LastError() error                   { return nil }

func authedStore(id *models.Identity) *fakeStore {
	return &fakeStore{snap: session.Snapshot{Status: session.StatusAuthenticated, User: id}}
}

// ------------ fake gateway ------------

type fakeGateway struct {
	healthMu  sync.Mutex
	healthErr error

	booksOut      *api.Page[models.Book]
	booksErr      error
	booksQ        []api.Query
	bookOut       *models.Book
	bookErr       error
	createdBooks  []models.Book
	bookKeys      []string
	createBookErr error
	updatedBooks  []models.Book
	deletedBooks  []int64

	membersOut     *api.Page[models.Member]
	membersQ       []api.Query
	memberOut      *models.Member
	memberErr      error
	createdMembers []models.Member
	memberKeys     []string
	updatedMembers []models.Member
	deletedMembers []int64

	racksOut       *api.Page[models.Rack]
	createdRacks   []models.Rack
	rackKeys       []string
	createRackErr  error
	shelvesOut     *api.Page[models.Shelf]
	shelvesRack    []int64
	createdShelves []models.Shelf
	shelfKeys      []string

	issuedLoan  *models.Loan
	issueErr    error
	issueBook   []int64
	issueMember []int64
	issueDue    []time.Time
	issueKeys   []string

	receipt    *models.ReturnReceipt
	returnErr  error
	returnLoan []int64
	returnCond []models.Condition
	returnKeys []string

	loansOut *api.Page[models.Loan]
	loansErr error
	loansF   []api.LoanFilter
	loansQ   []api.Query

	finesOut   *api.Page[models.Fine]
	finesF     []api.FineFilter
	finesQ     []api.Query
	paidFine   *models.Fine
	payErr     error
	paidIDs    []int64
	payKeys    []string
	waivedFine *models.Fine
	waivedIDs  []int64
	waiveKeys  []string

	summaryOut   *models.LibrarySummary
	summaryErr   error
	summaryCalls int

	overduePages []*api.Page[models.Loan]
	overdueQ     []api.Query
	overdueErr   error

	closed bool
}

func (f *fakeGateway) Health(ctx context.Context) error {
	f.healthMu.Lock()
	defer f.healthMu.Unlock()
	return f.healthErr
}

func (f *fakeGateway) setHealthErr(err error) {
	f.healthMu.Lock()
	defer f.healthMu.Unlock()
	f.healthErr = err
}

func (f *fakeGateway) Login(ctx context.Context, email, password string) (string, *models.Identity, error) {
	return "", nil, nil
}
func (f *fakeGateway) Verify(ctx context.Context) (*models.Identity, error) { return nil, nil }
func (f *fakeGateway) Logout(ctx context.Context) error                     { return nil }
func (f *fakeGateway) SetToken(token string)                                {}
func (f *fakeGateway) ClearToken()                                          {}
func (f *fakeGateway) Token() string                                        { return "" }

func (f *fakeGateway) ListBooks(ctx context.Context, q api.Query) (*api.Page[models.Book], error) {
	f.booksQ = append(f.booksQ, q)
	if f.booksErr != nil {
		return nil, f.booksErr
	}
	return orEmpty(f.booksOut), nil
}

func (f *fakeGateway) GetBook(ctx context.Context, id int64) (*models.Book, error) {
	if f.bookErr != nil {
		return nil, f.bookErr
	}
	if f.bookOut != nil {
		return f.bookOut, nil
	}
	return &models.Book{ID: id}, nil
}

func (f *fakeGateway) CreateBook(ctx context.Context, b models.Book, key string) (*models.Book, error) {
	if f.createBookErr != nil {
		return nil, f.createBookErr
	}
	f.createdBooks = append(f.createdBooks, b)
	f.bookKeys = append(f.bookKeys, key)
	b.ID = 9
	return &b, nil
}

func (f *fakeGateway) UpdateBook(ctx context.Context, b models.Book) (*models.Book, error) {
	f.updatedBooks = append(f.updatedBooks, b)
	return &b, nil
}

func (f *fakeGateway) DeleteBook(ctx context.Context, id int64) error {
	f.deletedBooks = append(f.deletedBooks, id)
	return nil
}

func (f *fakeGateway) ListMembers(ctx context.Context, q api.Query) (*api.Page[models.Member], error) {
	f.membersQ = append(f.membersQ, q)
	return orEmpty(f.membersOut), nil
}

func (f *fakeGateway) GetMember(ctx context.Context, id int64) (*models.Member, error) {
	if f.memberErr != nil {
		return nil, f.memberErr
	}
	if f.memberOut != nil {
		return f.memberOut, nil
	}
	return &models.Member{ID: id}, nil
}

func (f *fakeGateway) CreateMember(ctx context.Context, m models.Member, key string) (*models.Member, error) {
	f.createdMembers = append(f.createdMembers, m)
	f.memberKeys = append(f.memberKeys, key)
	m.ID = 5
	return &m, nil
}

func (f *fakeGateway) UpdateMember(ctx context.Context, m models.Member) (*models.Member, error) {
	f.updatedMembers = append(f.updatedMembers, m)
	return &m, nil
}

func (f *fakeGateway) DeleteMember(ctx context.Context, id int64) error {
	f.deletedMembers = append(f.deletedMembers, id)
	return nil
}

func (f *fakeGateway) ListRacks(ctx context.Context) (*api.Page[models.Rack], error) {
	return orEmpty(f.racksOut), nil
}

func (f *fakeGateway) CreateRack(ctx context.Context, r models.Rack, key string) (*models.Rack, error) {
	if f.createRackErr != nil {
		return nil, f.createRackErr
	}
	f.createdRacks = append(f.createdRacks, r)
	f.rackKeys = append(f.rackKeys, key)
	r.ID = 3
	return &r, nil
}

func (f *fakeGateway) ListShelves(ctx context.Context, rackID int64) (*api.Page[models.Shelf], error) {
	f.shelvesRack = append(f.shelvesRack, rackID)
	return orEmpty(f.shelvesOut), nil
}

func (f *fakeGateway) CreateShelf(ctx context.Context, s models.Shelf, key string) (*models.Shelf, error) {
	f.createdShelves = append(f.createdShelves, s)
	f.shelfKeys = append(f.shelfKeys, key)
	s.ID = 7
	return &s, nil
}

func (f *fakeGateway) Issue(ctx context.Context, bookID, memberID int64, due time.Time, key string) (*models.Loan, error) {
	if f.issueErr != nil {
		return nil, f.issueErr
	}
	f.issueBook = append(f.issueBook, bookID)
	f.issueMember = append(f.issueMember, memberID)
	f.issueDue = append(f.issueDue, due)
	f.issueKeys = append(f.issueKeys, key)
	if f.issuedLoan != nil {
		return f.issuedLoan, nil
	}
	return &models.Loan{ID: 1, BookID: bookID, MemberID: memberID, DueAt: due}, nil
}

func (f *fakeGateway) Return(ctx context.Context, loanID int64, cond models.Condition, key string) (*models.ReturnReceipt, error) {
	if f.returnErr != nil {
		return nil, f.returnErr
	}
	f.returnLoan = append(f.returnLoan, loanID)
	f.returnCond = append(f.returnCond, cond)
	f.returnKeys = append(f.returnKeys, key)
	if f.receipt != nil {
		return f.receipt, nil
	}
	return &models.ReturnReceipt{LoanID: loanID, Condition: cond}, nil
}

func (f *fakeGateway) ListLoans(ctx context.Context, lf api.LoanFilter, q api.Query) (*api.Page[models.Loan], error) {
	f.loansF = append(f.loansF, lf)
	f.loansQ = append(f.loansQ, q)
	if f.loansErr != nil {
		return nil, f.loansErr
	}
	return orEmpty(f.loansOut), nil
}

func (f *fakeGateway) ListFines(ctx context.Context, ff api.FineFilter, q api.Query) (*api.Page[models.Fine], error) {
	f.finesF = append(f.finesF, ff)
	f.finesQ = append(f.finesQ, q)
	return orEmpty(f.finesOut), nil
}

func (f *fakeGateway) PayFine(ctx context.Context, id int64, key string) (*models.Fine, error) {
	if f.payErr != nil {
		return nil, f.payErr
	}
	f.paidIDs = append(f.paidIDs, id)
	f.payKeys = append(f.payKeys, key)
	if f.paidFine != nil {
		return f.paidFine, nil
	}
	return &models.Fine{ID: id, Status: models.FinePaid}, nil
}

func (f *fakeGateway) WaiveFine(ctx context.Context, id int64, key string) (*models.Fine, error) {
	f.waivedIDs = append(f.waivedIDs, id)
	f.waiveKeys = append(f.waiveKeys, key)
	if f.waivedFine != nil {
		return f.waivedFine, nil
	}
	return &models.Fine{ID: id, Status: models.FineWaived}, nil
}

func (f *fakeGateway) Summary(ctx context.Context) (*models.LibrarySummary, error) {
	f.summaryCalls++
	if f.summaryErr != nil {
		return nil, f.summaryErr
	}
	if f.summaryOut != nil {
		return f.summaryOut, nil
	}
	return &models.LibrarySummary{}, nil
}

func (f *fakeGateway) OverdueLoans(ctx context.Context, q api.Query) (*api.Page[models.Loan], error) {
	f.overdueQ = append(f.overdueQ, q)
	if f.overdueErr != nil {
		return nil, f.overdueErr
	}
	if len(f.overduePages) == 0 {
		return &api.Page[models.Loan]{}, nil
	}
	page := f.overduePages[0]
	f.overduePages = f.overduePages[1:]
	return page, nil
}

func (f *fakeGateway) Close() { f.closed = true }

// ------------ tests ------------

func TestGetStatus_SignedOut(t *testing.T) {
	a := newTestApp(&fakeGateway{}, &fakeStore{})
	assert.Equal(t, "(login online)", a.getStatus())
}

func TestGetStatus_SignedIn(t *testing.T) {
	a := newTestApp(&fakeGateway{}, authedStore(adminIdentity))
	a.router.Reset(models.RoleAdmin)
	assert.Equal(t, "(Admin admin admin-dashboard online)", a.getStatus())

	a.online.Store(false)
	assert.Equal(t, "(Admin admin admin-dashboard offline)", a.getStatus())
}

func TestOnSessionChange_ResetsOnlyOnRoleChange(t *testing.T) {
	a := newTestApp(&fakeGateway{}, authedStore(adminIdentity))
	a.router.Reset(models.RoleAdmin)
	a.router.Go(nav.PageBooks)

	// Same role re-verified: the user stays where they are.
	a.onSessionChange(session.Snapshot{Status: session.StatusAuthenticated, User: adminIdentity})
	assert.Equal(t, nav.PageBooks, a.router.Current())

	// Signed out: back to the login page.
	a.onSessionChange(session.Snapshot{Status: session.StatusUnauthenticated})
	assert.Equal(t, nav.PageLogin, a.router.Current())

	// Signed in as a member: the member landing page.
	a.onSessionChange(session.Snapshot{Status: session.StatusAuthenticated, User: memberIdentity})
	assert.Equal(t, nav.PageHome, a.router.Current())
}

func TestKnownPage(t *testing.T) {
	a := newTestApp(&fakeGateway{}, &fakeStore{})
	assert.True(t, a.knownPage("books"))
	assert.True(t, a.knownPage("home"))
	assert.True(t, a.knownPage("login"))
	assert.False(t, a.knownPage("spaceships"))
}

func TestOpen_FallsBackOutsideRole(t *testing.T) {
	out := captureOutput(t)
	gw := &fakeGateway{}
	a := newTestApp(gw, authedStore(memberIdentity))
	a.router.Reset(models.RoleUser)

	err := a.Open(context.Background(), "books")

	assert.NoError(t, err)
	assert.Equal(t, nav.PageHome, a.router.Current())
	assert.Contains(t, out.String(), "not available to you")
}

func TestConnectivityWatcher_RecordsProbeResult(t *testing.T) {
	gw := &fakeGateway{}
	gw.setHealthErr(api.ErrUnavailable)
	a := newTestApp(gw, &fakeStore{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.StartConnectivityWatcher(ctx, 5*time.Millisecond)

	assert.Eventually(t, func() bool { return !a.online.Load() },
		time.Second, 5*time.Millisecond)

	gw.setHealthErr(nil)
	assert.Eventually(t, func() bool { return a.online.Load() },
		time.Second, 5*time.Millisecond)
}
