package api

import (
	"context"
	"time"

	"github.com/dmitrijs2005/libris/internal/models"
)

// Gateway is the transport-agnostic contract to the library backend. Every
// feature surface talks to the backend through it, never through a raw HTTP
// client.
//
// Mutating operations that are not naturally idempotent take a caller-chosen
// key; retrying with the same key is safe, retrying without one is not.
type Gateway interface {
	// Health probes backend connectivity without authentication.
	Health(ctx context.Context) error

	// Login exchanges credentials for a bearer token and the signed-in
	// identity. On success the token is also installed on the transport.
	Login(ctx context.Context, email, password string) (string, *models.Identity, error)
	// Verify validates the installed token and returns the identity it
	// belongs to.
	Verify(ctx context.Context) (*models.Identity, error)
	// Logout invalidates the token server-side. The transport keeps its
	// token; clearing it is the caller's decision.
	Logout(ctx context.Context) error

	// SetToken installs a previously persisted token on the transport.
	SetToken(token string)
	// ClearToken removes the installed token.
	ClearToken()
	// Token reports the currently installed token.
	Token() string

	ListBooks(ctx context.Context, q Query) (*Page[models.Book], error)
	GetBook(ctx context.Context, id int64) (*models.Book, error)
	CreateBook(ctx context.Context, b models.Book, key string) (*models.Book, error)
	UpdateBook(ctx context.Context, b models.Book) (*models.Book, error)
	DeleteBook(ctx context.Context, id int64) error

	ListMembers(ctx context.Context, q Query) (*Page[models.Member], error)
	GetMember(ctx context.Context, id int64) (*models.Member, error)
	CreateMember(ctx context.Context, m models.Member, key string) (*models.Member, error)
	UpdateMember(ctx context.Context, m models.Member) (*models.Member, error)
	DeleteMember(ctx context.Context, id int64) error

	ListRacks(ctx context.Context) (*Page[models.Rack], error)
	CreateRack(ctx context.Context, r models.Rack, key string) (*models.Rack, error)
	ListShelves(ctx context.Context, rackID int64) (*Page[models.Shelf], error)
	CreateShelf(ctx context.Context, s models.Shelf, key string) (*models.Shelf, error)

	Issue(ctx context.Context, bookID, memberID int64, due time.Time, key string) (*models.Loan, error)
	Return(ctx context.Context, loanID int64, cond models.Condition, key string) (*models.ReturnReceipt, error)
	ListLoans(ctx context.Context, f LoanFilter, q Query) (*Page[models.Loan], error)

	ListFines(ctx context.Context, f FineFilter, q Query) (*Page[models.Fine], error)
	PayFine(ctx context.Context, id int64, key string) (*models.Fine, error)
	WaiveFine(ctx context.Context, id int64, key string) (*models.Fine, error)

	Summary(ctx context.Context) (*models.LibrarySummary, error)
	OverdueLoans(ctx context.Context, q Query) (*Page[models.Loan], error)

	// Close releases idle transport resources.
	Close()
}
