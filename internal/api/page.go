package api

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Page is the single list envelope every collection endpoint resolves to.
type Page[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// UnmarshalJSON accepts either the wrapped envelope or a bare array. A bare
// array normalizes to a single full page.
func (p *Page[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		p.Items = items
		p.Total = len(items)
		p.Offset = 0
		p.Limit = len(items)
		return nil
	}

	var e struct {
		Items  []T `json:"items"`
		Total  int `json:"total"`
		Offset int `json:"offset"`
		Limit  int `json:"limit"`
	}
	if err := json.Unmarshal(data, &e); err != nil {
		return err
	}
	// A page never carries more rows than its limit, whatever the backend sent.
	if e.Limit > 0 && len(e.Items) > e.Limit {
		e.Items = e.Items[:e.Limit]
	}
	p.Items, p.Total, p.Offset, p.Limit = e.Items, e.Total, e.Offset, e.Limit
	return nil
}

// Query carries the list parameters common to every collection endpoint.
type Query struct {
	Search string
	Offset int
	Limit  int
}

func (q Query) params() map[string]string {
	p := make(map[string]string)
	if q.Search != "" {
		p["q"] = q.Search
	}
	if q.Offset > 0 {
		p["offset"] = strconv.Itoa(q.Offset)
	}
	if q.Limit > 0 {
		p["limit"] = strconv.Itoa(q.Limit)
	}
	return p
}

// LoanFilter narrows loan listings. Zero values mean "any".
type LoanFilter struct {
	MemberID int64
	Status   string
}

func (f LoanFilter) params() map[string]string {
	p := make(map[string]string)
	if f.MemberID > 0 {
		p["member_id"] = strconv.FormatInt(f.MemberID, 10)
	}
	if f.Status != "" {
		p["status"] = f.Status
	}
	return p
}

// FineFilter narrows fine listings. Zero values mean "any".
type FineFilter struct {
	MemberID int64
	Status   string
}

func (f FineFilter) params() map[string]string {
	p := make(map[string]string)
	if f.MemberID > 0 {
		p["member_id"] = strconv.FormatInt(f.MemberID, 10)
	}
	if f.Status != "" {
		p["status"] = f.Status
	}
	return p
}

func merge(maps ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
