package http

import (
	"fmt"
	"net/http"

	"log/slog"

	"github.com/elarafragrance/elara-backend/internal/auth/jwt"
	"github.com/elarafragrance/elara-backend/internal/entity"
	"github.com/go-chi/render"
	"github.com/shopspring/decimal"
)

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := &signupRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't hash password",
			slog.String("err", err.Error()),
		)
		render.Render(w, r, ErrInternalServerError(err))
		return
	}

	insert := &entity.AccountInsert{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      entity.RoleCustomer,
	}
	if req.Phone != "" {
		insert.Phone.String, insert.Phone.Valid = req.Phone, true
	}

	id, err := s.rep.Account().AddAccount(ctx, insert, hash)
	if err != nil {
		if s.rep.IsErrUniqueViolation(err) {
			render.Render(w, r, ErrConflict(fmt.Errorf("email already registered")))
			return
		}
		slog.Default().ErrorContext(ctx, "can't add account",
			slog.String("err", err.Error()),
		)
		render.Render(w, r, ErrInternalServerError(err))
		return
	}

	s.issueSession(w, r, id, entity.RoleCustomer)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := &loginRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	account, err := s.rep.Account().GetAccountByEmail(ctx, req.Email)
	if err != nil {
		render.Render(w, r, ErrUnauthorized(fmt.Errorf("invalid credentials")))
		return
	}
	if err := s.hasher.Validate(req.Password, account.PasswordHash); err != nil {
		render.Render(w, r, ErrUnauthorized(fmt.Errorf("invalid credentials")))
		return
	}

	s.issueSession(w, r, account.Id, account.Role)
}

// issueSession mints a session token, sets the cookie and writes the session
// payload.
func (s *Server) issueSession(w http.ResponseWriter, r *http.Request, accountId int, role entity.RoleName) {
	ctx := r.Context()

	token, err := jwt.NewToken(s.jwtAuth, accountId, role, s.c.SessionTTL)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't create session token",
			slog.String("err", err.Error()),
		)
		render.Render(w, r, ErrInternalServerError(err))
		return
	}

	account, err := s.rep.Account().GetAccountById(ctx, accountId)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't get account",
			slog.String("err", err.Error()),
			slog.Int("account_id", accountId),
		)
		render.Render(w, r, ErrInternalServerError(err))
		return
	}

	s.setSessionCookie(w, token)
	render.JSON(w, r, sessionView{
		Token:   token,
		Account: accountToView(account),
	})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	render.NoContent(w, r)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ses, _ := sessionFromCtx(ctx)

	account, err := s.rep.Account().GetAccountById(ctx, ses.AccountId)
	if err != nil {
		render.Render(w, r, errDomain(err))
		return
	}
	render.JSON(w, r, accountToView(account))
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ses, _ := sessionFromCtx(ctx)

	req := &changePasswordRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	account, err := s.rep.Account().GetAccountById(ctx, ses.AccountId)
	if err != nil {
		render.Render(w, r, errDomain(err))
		return
	}
	if err := s.hasher.Validate(req.CurrentPassword, account.PasswordHash); err != nil {
		render.Render(w, r, ErrUnauthorized(fmt.Errorf("invalid credentials")))
		return
	}

	hash, err := s.hasher.HashPassword(req.NewPassword)
	if err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	if err := s.rep.Account().ChangePassword(ctx, account.Email, hash); err != nil {
		slog.Default().ErrorContext(ctx, "can't change password",
			slog.String("err", err.Error()),
			slog.Int("account_id", account.Id),
		)
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	render.NoContent(w, r)
}

func agentCommissionPct(pct float64) decimal.NullDecimal {
	if pct <= 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(pct), Valid: true}
}
