package api

import (
	"time"

	"github.com/dmitrijs2005/libris/internal/models"
)

// wireError is the error body the backend attaches to non-2xx responses.
type wireError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  models.Identity `json:"user"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type issueRequest struct {
	BookID   int64     `json:"book_id"`
	MemberID int64     `json:"member_id"`
	DueAt    time.Time `json:"due_at"`
}

type returnRequest struct {
	Condition models.Condition `json:"condition"`
}
