package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/attendo/internal/common"
	"github.com/dmitrijs2005/attendo/internal/server/users"
)

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"userId"`
	Role         string `json:"role"`
}

type registerRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Phone      string `json:"phone" validate:"omitempty,e164"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

type logoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type profileResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Department   string `json:"department"`
	Position     string `json:"position"`
	EmployeeID   string `json:"employeeId"`
	JoinDate     string `json:"joinDate"`
	WorkSchedule string `json:"workSchedule"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
}

type profileUpdateRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"omitempty,e164"`
	Department   string `json:"department"`
	Position     string `json:"position"`
	WorkSchedule string `json:"workSchedule"`
}

type privilegesRequest struct {
	UserID string `json:"userId" validate:"required"`
	Role   string `json:"role" validate:"required,oneof=user admin"`
}

type dayRecordResponse struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Day      string  `json:"day"`
	Status   string  `json:"status"`
	CheckIn  string  `json:"checkIn,omitempty"`
	CheckOut string  `json:"checkOut,omitempty"`
	Location string  `json:"location,omitempty"`
	Hours    float64 `json:"hours,omitempty"`
}

type markLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
	Address   string  `json:"address"`
	Timestamp string  `json:"timestamp"`
}

type markRequest struct {
	Type     string       `json:"type" validate:"required,oneof=check-in check-out"`
	Location markLocation `json:"location"`
}

type receiptLocation struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy"`
	Timestamp time.Time `json:"timestamp"`
}

type receiptResponse struct {
	Type      string          `json:"type"`
	Address   string          `json:"address"`
	Timestamp time.Time       `json:"timestamp"`
	Location  receiptLocation `json:"location"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service sentinels onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, common.ErrorUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, common.ErrorNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return common.ErrorValidation
	}
	if err := s.validate.Struct(v); err != nil {
		return common.ErrorValidation
	}
	return nil
}

func toProfileResponse(u *users.User) profileResponse {
	return profileResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Department:   u.Department,
		Position:     u.Position,
		EmployeeID:   u.EmployeeID,
		JoinDate:     u.JoinDate.Format("2006-01-02"),
		WorkSchedule: u.WorkSchedule,
		Phone:        u.Phone,
		Role:         u.Role,
	}
}

func (s *Server) loginHandler(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := s.decode(r, &req); err != nil {
			writeError(w, err)
			return
		}

		user, pair, err := s.userService.Login(r.Context(), role, req.Identifier, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, loginResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			UserID:       user.ID,
			Role:         user.Role,
		})
	}
}

func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	s.register(w, r, users.RoleUser)
}

// adminRegisterHandler creates admin accounts. Only an authenticated admin
// can reach it.
func (s *Server) adminRegisterHandler(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil || claims.Role != users.RoleAdmin {
		http.Error(w, "admin access required", http.StatusForbidden)
		return
	}
	s.register(w, r, users.RoleAdmin)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request, role string) {
	var req registerRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := s.userService.Register(r.Context(), role, users.RegistrationInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Phone:      req.Phone,
		Department: req.Department,
		Position:   req.Position,
	})
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProfileResponse(user))
}

func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ErrorValidation)
		return
	}

	if err := s.userService.Logout(r.Context(), req.RefreshToken); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deleteAccountHandler removes the authenticated account together with its
// refresh tokens. Both role-specific routes land here; the token already
// names the account.
func (s *Server) deleteAccountHandler(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	if err := s.userService.DeleteAccount(r.Context(), claims.UserID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// adminPrivilegesHandler grants or revokes the admin role on an account.
func (s *Server) adminPrivilegesHandler(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil || claims.Role != users.RoleAdmin {
		http.Error(w, "admin access required", http.StatusForbidden)
		return
	}

	var req privilegesRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := s.userService.UpdateAdminPrivileges(r.Context(), req.UserID, req.Role)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(user))
}

func (s *Server) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	user, err := s.userService.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(user))
}

func (s *Server) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	var req profileUpdateRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := s.userService.UpdateProfile(r.Context(), claims.UserID, &users.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Department:   req.Department,
		Position:     req.Position,
		WorkSchedule: req.WorkSchedule,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(user))
}

func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "week"
	}

	records, err := s.attendanceService.History(r.Context(), claims.UserID, period)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]dayRecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, dayRecordResponse(rec))
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) markHandler(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	var req markRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var at time.Time
	if req.Location.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, req.Location.Timestamp)
		if err != nil {
			writeError(w, common.ErrorValidation)
			return
		}
		at = parsed
	}

	mark, err := s.attendanceService.Mark(r.Context(), claims.UserID, req.Type,
		req.Location.Latitude, req.Location.Longitude, req.Location.Accuracy,
		req.Location.Address, at)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, receiptResponse{
		Type:      mark.Kind,
		Address:   mark.Address,
		Timestamp: mark.RecordedAt,
		Location: receiptLocation{
			Latitude:  mark.Latitude,
			Longitude: mark.Longitude,
			Accuracy:  mark.Accuracy,
			Timestamp: mark.RecordedAt,
		},
	})
}
