package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dmitrijs2005/libris/internal/logging"
	"github.com/dmitrijs2005/libris/internal/models"
)

const idempotencyKeyHeader = "Idempotency-Key"

// Rest is the HTTP implementation of Gateway. The bearer token is guarded by
// a mutex because pollers and debounced fetches run off the UI goroutine.
type Rest struct {
	http *resty.Client
	log  logging.Logger

	mu    sync.RWMutex
	token string
}

func NewRest(baseURL string, timeout time.Duration, log logging.Logger) *Rest {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	c.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		log.Debug(resp.Request.Context(), "request finished",
			"method", resp.Request.Method,
			"url", resp.Request.URL,
			"status", resp.StatusCode(),
			"elapsed", resp.Time(),
		)
		return nil
	})

	return &Rest{http: c, log: log}
}

func (r *Rest) SetToken(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = token
}

func (r *Rest) ClearToken() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = ""
}

func (r *Rest) Token() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.token
}

func (r *Rest) Close() {
	r.http.GetClient().CloseIdleConnections()
}

// authed prepares a request carrying the bearer token, failing fast when no
// token is held so the call never reaches the network.
func (r *Rest) authed(ctx context.Context) (*resty.Request, error) {
	token := r.Token()
	if token == "" {
		return nil, errAuthRequired()
	}
	return r.http.R().SetContext(ctx).SetAuthToken(token).SetError(&wireError{}), nil
}

// check funnels every response through classification. Context cancellation
// passes through unclassified so callers can recognize their own aborts.
func (r *Rest) check(resp *resty.Response, err error) error {
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return netError(err)
	}
	if resp.IsError() {
		we, _ := resp.Error().(*wireError)
		return classify(resp.StatusCode(), we)
	}
	return nil
}

func withKey(req *resty.Request, key string) *resty.Request {
	if key != "" {
		req.SetHeader(idempotencyKeyHeader, key)
	}
	return req
}

func (r *Rest) Health(ctx context.Context) error {
	var out healthResponse
	resp, err := r.http.R().SetContext(ctx).SetResult(&out).SetError(&wireError{}).Get("/api/health")
	if err := r.check(resp, err); err != nil {
		return err
	}
	if !strings.EqualFold(out.Status, "ok") {
		return &Error{Kind: ErrUnavailable, Message: "backend reports status " + out.Status}
	}
	return nil
}

func (r *Rest) Login(ctx context.Context, email, password string) (string, *models.Identity, error) {
	var out loginResponse
	resp, err := r.http.R().
		SetContext(ctx).
		SetBody(loginRequest{Email: email, Password: password}).
		SetResult(&out).
		SetError(&wireError{}).
		Post("/api/auth/login")
	if err := r.check(resp, err); err != nil {
		// On this endpoint a 401 means wrong credentials, not a stale token.
		var apiErr *Error
		if errors.As(err, &apiErr) && errors.Is(apiErr.Kind, ErrUnauthorized) {
			apiErr.Kind = ErrInvalidCredentials
		}
		return "", nil, err
	}
	r.SetToken(out.Token)
	return out.Token, &out.User, nil
}

func (r *Rest) Verify(ctx context.Context) (*models.Identity, error) {
	req, err := r.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out models.Identity
	resp, err := req.SetResult(&out).Get("/api/auth/verify")
	if err := r.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Rest) Logout(ctx context.Context) error {
	req, err := r.authed(ctx)
	if err != nil {
		return err
	}
	resp, err := req.Post("/api/auth/logout")
	return r.check(resp, err)
}

func (r *Rest) ListBooks(ctx context.Context, q Query) (*Page[models.Book], error) {
	req, err := r.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out Page[models.Book]
	resp, err := req.SetQueryParams(q.params()).SetResult(&out).Get("/api/books")
	if err := r.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Rest) GetBook(ctx context.Context, id int64) (*models.Book, error) {
	req, err := r.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out models.Book
	resp, err := req.SetResult(&out).Get(fmt.Sprintf("/api/books/%d", id))
	if err := r.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Rest) CreateBook(ctx context.Context, b models.Book, key string) (*models.Book, error) {
	req, err := r.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out models.Book
	resp, err := withKey(req, key).SetBody(b).SetResult(&out).Post("/api/books")
	if err := r.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Rest) UpdateBook(ctx context.Context, b models.Book) (*models.Book, error) {
	req, err := r.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out models.Book
	resp, err := req.SetBody(b).SetResult(&out).Put(fmt.Sprintf("/api/books/%d", b.ID))
	if err := r.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Rest) DeleteBook(ctx context.Context, id int64) error {
	req, err := r.authed(ctx)
	if err != nil {
		return err
	}
	resp, err := req.Delete(fmt.Sprintf("/api/books/%d", id))
	return r.check(resp, err)
}

func (r *Rest) ListMembers(ctx context.Context, q Query) (*Page[models.Member], error) {
	req, err := r.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out Page[models.Member]
	resp, err := req.SetQueryParams(q.params()).SetResult(&out).Get("/api/members")
	if err := r.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Rest) GetMember(ctx context.Context, id int64) (*models.Member, error) {
	req, err := r.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out models.Member
	resp, err := req.SetResult(&out).Get(fmt.Sprintf("/api/members/%d", id))
	if err := r.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Rest) CreateMember(ctx context.Context, m models.Member, key string) (*models.Member, error) {
	req, err := r.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out models.Member
	resp, err := withKey(req, key).SetBody(m).SetResult(&out).Post("/api/members")
	if err := r.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Rest) UpdateMember(ctx context.Context, m models.Member) (*models.Member, error) {
	req, err := r.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out models.Member
	resp, err := req.SetBody(m).SetResult(&out).Put(fmt.Sprintf("/api/members/%d", m.ID))
	if err := r.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Rest) DeleteMember(ctx context.Context, id int64) error {
	req, err := r.authed(ctx)
	if err != nil {
		return err
	}
	resp, err := req.Delete(fmt.Sprintf("/api/members/%d", id))
	return r.check(resp, err)
}

func (r *Rest) ListRacks(ctx context.Context) (*Page[models.Rack], error) {
	req, err := r.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out Page[models.Rack]
	resp, err := req.SetResult(&out).Get("/api/racks")
	if err := r.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Rest) CreateRack(ctx context.Context, rack models.Rack, key string) (*models.Rack, error) {
	req, err := r.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out models.Rack
	resp, err := withKey(req, key).SetBody(rack).SetResult(&out).Post("/api/racks")
	if err := r.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Rest) ListShelves(ctx context.Context, rackID int64) (*Page[models.Shelf], error) {
	req, err := r.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out Page[models.Shelf]
	resp, err := req.SetResult(&out).Get(fmt.Sprintf("/api/racks/%d/shelves", rackID))
	if err := r.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Rest) CreateShelf(ctx context.Context, s models.Shelf, key string) (*models.Shelf, error) {
	req, err := r.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out models.Shelf
	resp, err := withKey(req, key).SetBody(s).SetResult(&out).Post(fmt.Sprintf("/api/racks/%d/shelves", s.RackID))
	if err := r.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Rest) Issue(ctx context.Context, bookID, memberID int64, due time.Time, key string) (*models.Loan, error) {
	req, err := r.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out models.Loan
	resp, err := withKey(req, key).
		SetBody(issueRequest{BookID: bookID, MemberID: memberID, DueAt: due}).
		SetResult(&out).
		Post("/api/loans")
	if err := r.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Rest) Return(ctx context.Context, loanID int64, cond models.Condition, key string) (*models.ReturnReceipt, error) {
	req, err := r.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out models.ReturnReceipt
	resp, err := withKey(req, key).
		SetBody(returnRequest{Condition: cond}).
		SetResult(&out).
		Post(fmt.Sprintf("/api/loans/%d/return", loanID))
	if err := r.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Rest) ListLoans(ctx context.Context, f LoanFilter, q Query) (*Page[models.Loan], error) {
	req, err := r.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out Page[models.Loan]
	resp, err := req.SetQueryParams(merge(f.params(), q.params())).SetResult(&out).Get("/api/loans")
	if err := r.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Rest) ListFines(ctx context.Context, f FineFilter, q Query) (*Page[models.Fine], error) {
	req, err := r.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out Page[models.Fine]
	resp, err := req.SetQueryParams(merge(f.params(), q.params())).SetResult(&out).Get("/api/fines")
	if err := r.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Rest) PayFine(ctx context.Context, id int64, key string) (*models.Fine, error) {
	req, err := r.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out models.Fine
	resp, err := withKey(req, key).SetResult(&out).Post(fmt.Sprintf("/api/fines/%d/pay", id))
	if err := r.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Rest) WaiveFine(ctx context.Context, id int64, key string) (*models.Fine, error) {
	req, err := r.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out models.Fine
	resp, err := withKey(req, key).SetResult(&out).Post(fmt.Sprintf("/api/fines/%d/waive", id))
	if err := r.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Rest) Summary(ctx context.Context) (*models.LibrarySummary, error) {
	req, err := r.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out models.LibrarySummary
	resp, err := req.SetResult(&out).Get("/api/reports/summary")
	if err := r.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Rest) OverdueLoans(ctx context.Context, q Query) (*Page[models.Loan], error) {
	req, err := r.authed(ctx)
	if err != nil {
		return nil, err
	}
	var out Page[models.Loan]
	resp, err := req.SetQueryParams(q.params()).SetResult(&out).Get("/api/reports/overdue")
	if err := r.check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}
