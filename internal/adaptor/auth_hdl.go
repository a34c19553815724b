package adaptor

import (
	"net"
	"net/http"

	"carwash-booking/internal/dto/request"
	"carwash-booking/internal/usecase"
	"carwash-booking/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// RequestOTP handles POST /api/auth/otp
func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req request.RequestOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.RequestOTP(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "request OTP")
		return
	}

	utils.ResponseSuccess(w, "OTP sent", resp)
}

// VerifyOTP handles POST /api/auth/verify
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body", nil)
		return
	}

	if ua := r.UserAgent(); ua != "" {
		req.UserAgent = &ua
	}
	if ip := clientIP(r); ip != "" {
		req.IPAddress = &ip
	}

	resp, err := h.service.VerifyOTP(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "verify OTP")
		return
	}

	if resp.IsNewUser {
		utils.ResponseCreated(w, "Account created", resp)
		return
	}
	utils.ResponseSuccess(w, "Login successful", resp)
}

// Logout handles POST /api/auth/logout (protected)
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		badRequest(w, "No token provided", nil)
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		handleServiceError(w, h.log, err, "logout")
		return
	}

	utils.ResponseSuccess(w, "Logout successful", nil)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
