// Package stub is an in-memory stand-in for the SecureSpot business API,
// used for local development and end-to-end tests. It mirrors the wire
// contract — {status, ...} envelopes, path-parameter tokens, verbatim
// failure messages — while keeping all state in maps.
package stub

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/securespot/securespot-go/internal/model"
)

type account struct {
	Name     string
	Email    string
	Password string
	Joined   time.Time
	Vehicle  *model.Vehicle
}

type rideRequest struct {
	CurrentLocation     string
	DestinationLocation string
}

type rideShare struct {
	CurrentLocation     string
	DestinationLocation string
	AvailableSeats      int
}

type Server struct {
	mu        sync.Mutex
	accounts  map[string]*account // keyed by email
	tokens    map[string]string   // session token -> email
	otps      map[string]string   // email -> outstanding code
	requests  map[string]rideRequest
	shares    map[string]rideShare
	histories map[string][]model.ChatTurn
}

func NewServer() *Server {
	return &Server{
		accounts:  make(map[string]*account),
		tokens:    make(map[string]string),
		otps:      make(map[string]string),
		requests:  make(map[string]rideRequest),
		shares:    make(map[string]rideShare),
		histories: make(map[string][]model.ChatTurn),
	}
}

// SeedAccount registers a ready-made account and returns a logged-in token,
// so tests and dev sessions can skip the signup flow.
func (s *Server) SeedAccount(name, email, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[email] = &account{
		Name:     name,
		Email:    email,
		Password: password,
		Joined:   time.Now(),
	}
	token := uuid.NewString()
	s.tokens[token] = email
	return token
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)

	r.Post("/login", s.login)
	r.Post("/signup", s.signup)
	r.Post("/send_otp", s.sendOTP)
	r.Post("/verify_otp_code", s.verifyOTP)
	r.Post("/get_user_details", s.userDetails)
	r.Post("/get_vehicle_details", s.vehicleDetails)
	r.Post("/register_vehicle", s.registerVehicle)
	r.Post("/parkingtoken", s.parkingToken)
	r.Post("/ride_requests", s.createRideRequest)
	r.Get("/ride_request_status/{token}", s.rideRequestStatus)
	r.Get("/get_ride_requests/{token}", s.matchingOffers)
	r.Post("/stop_ride_request/{token}", s.stopRideRequest)
	r.Post("/ride_share", s.createRideShare)
	r.Post("/ride_share_status/{token}", s.rideShareStatus)
	r.Post("/stop_ride_share/{token}", s.stopRideShare)
	r.Post("/getchat_securebot", s.chatHistory)
	r.Post("/get_response_securebot", s.chatAsk)

	return r
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[req.Email]
	if !ok || acct.Password != req.Password {
		writeJSON(w, map[string]any{"status": false, "message": "Invalid email or password."})
		return
	}

	token := uuid.NewString()
	s.tokens[token] = req.Email
	writeJSON(w, map[string]any{"status": true, "token": token})
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Password != req.ConfirmPassword {
		writeJSON(w, map[string]any{"status": false, "message": "Passwords do not match."})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[req.Email]; exists {
		writeJSON(w, map[string]any{"status": false, "message": "An account with this email already exists."})
		return
	}
	s.accounts[req.Email] = &account{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Joined:   time.Now(),
	}
	writeJSON(w, map[string]any{"status": true, "message": "Account created. Please verify your email."})
}

func (s *Server) sendOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decode(w, r, &req) {
		return
	}

	code := randomCode()
	s.mu.Lock()
	s.otps[req.Email] = code
	s.mu.Unlock()

	// A real deployment emails the code; the stub logs it instead.
	log.Info().Str("email", req.Email).Str("otp", code).Msg("otp issued")
	writeJSON(w, map[string]any{"status": true, "message": "OTP sent successfully."})
}

func (s *Server) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if code, ok := s.otps[req.Email]; !ok || code != req.OTP {
		writeJSON(w, map[string]any{"status": false, "message": "OTP verification failed."})
		return
	}
	delete(s.otps, req.Email)
	writeJSON(w, map[string]any{"status": true, "message": "Email verified."})
}

func (s *Server) userDetails(w http.ResponseWriter, r *http.Request) {
	acct, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	writeJSON(w, map[string]any{"status": true, "data": model.UserProfile{
		Name:        acct.Name,
		Email:       acct.Email,
		JoiningDate: acct.Joined.Format("2006-01-02"),
	}})
}

func (s *Server) vehicleDetails(w http.ResponseWriter, r *http.Request) {
	acct, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	if acct.Vehicle == nil {
		writeJSON(w, map[string]any{"status": false, "message": "No vehicle registered."})
		return
	}
	writeJSON(w, map[string]any{"status": true, "data": acct.Vehicle})
}

func (s *Server) registerVehicle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token        string `json:"token"`
		Model        string `json:"model"`
		Year         int    `json:"year"`
		Color        string `json:"color"`
		LicensePlate string `json:"license_plate"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.tokens[req.Token]
	if !ok {
		writeJSON(w, map[string]any{"status": false, "message": "Invalid session."})
		return
	}
	s.accounts[email].Vehicle = &model.Vehicle{
		Model:        req.Model,
		Year:         req.Year,
		Color:        req.Color,
		LicensePlate: req.LicensePlate,
	}
	writeJSON(w, map[string]any{"status": true, "message": "Vehicle registered successfully!"})
}

func (s *Server) parkingToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token           string `json:"token"`
		CurrentLocation string `json:"current_location"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.CurrentLocation == "" {
		writeJSON(w, map[string]any{"status": false, "message": "A location is required."})
		return
	}
	if !s.validToken(req.Token) {
		writeJSON(w, map[string]any{"status": false, "message": "Invalid session."})
		return
	}
	writeJSON(w, map[string]any{"status": true, "parking_token": "PK-" + randomCode()})
}

func (s *Server) createRideRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token               string `json:"token"`
		CurrentLocation     string `json:"current_location"`
		DestinationLocation string `json:"destination_location"`
	}
	if !decode(w, r, &req) {
		return
	}
	if !s.validToken(req.Token) {
		writeJSON(w, map[string]any{"status": false, "message": "Invalid session."})
		return
	}

	s.mu.Lock()
	s.requests[req.Token] = rideRequest{
		CurrentLocation:     req.CurrentLocation,
		DestinationLocation: req.DestinationLocation,
	}
	s.mu.Unlock()
	writeJSON(w, map[string]any{"status": true, "message": "Ride requested."})
}

func (s *Server) rideRequestStatus(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	s.mu.Lock()
	_, active := s.requests[token]
	s.mu.Unlock()
	writeJSON(w, map[string]any{"status": active})
}

func (s *Server) matchingOffers(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	s.mu.Lock()
	defer s.mu.Unlock()
	_, active := s.requests[token]
	if !active {
		writeJSON(w, map[string]any{"status": false})
		return
	}

	// Every open share from another account counts as a match; real matching
	// is the production server's concern.
	var offers []model.MatchingOffer
	for shareToken, share := range s.shares {
		if shareToken == token {
			continue
		}
		email := s.tokens[shareToken]
		acct := s.accounts[email]
		offer := model.MatchingOffer{
			RiderOfferID:        shareToken,
			Name:                acct.Name,
			CurrentLocation:     share.CurrentLocation,
			DestinationLocation: share.DestinationLocation,
			AvailableSeats:      share.AvailableSeats,
		}
		if acct.Vehicle != nil {
			offer.VehicleModel = acct.Vehicle.Model
			offer.Color = acct.Vehicle.Color
		}
		offers = append(offers, offer)
	}
	writeJSON(w, map[string]any{"status": true, "matching_offers": offers})
}

func (s *Server) stopRideRequest(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	s.mu.Lock()
	_, active := s.requests[token]
	delete(s.requests, token)
	s.mu.Unlock()
	if !active {
		writeJSON(w, map[string]any{"status": false, "message": "No active ride request."})
		return
	}
	writeJSON(w, map[string]any{"status": true, "message": "Ride request stopped."})
}

func (s *Server) createRideShare(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token               string `json:"token"`
		CurrentLocation     string `json:"current_location"`
		DestinationLocation string `json:"destination_location"`
		AvailableSeats      int    `json:"available_seats"`
	}
	if !decode(w, r, &req) {
		return
	}
	if !s.validToken(req.Token) {
		writeJSON(w, map[string]any{"status": false, "message": "Invalid session."})
		return
	}

	s.mu.Lock()
	s.shares[req.Token] = rideShare{
		CurrentLocation:     req.CurrentLocation,
		DestinationLocation: req.DestinationLocation,
		AvailableSeats:      req.AvailableSeats,
	}
	s.mu.Unlock()
	writeJSON(w, map[string]any{"status": true, "message": "Ride shared successfully."})
}

func (s *Server) rideShareStatus(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	s.mu.Lock()
	_, active := s.shares[token]
	s.mu.Unlock()
	writeJSON(w, map[string]any{"status": active})
}

func (s *Server) stopRideShare(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	s.mu.Lock()
	_, active := s.shares[token]
	delete(s.shares, token)
	s.mu.Unlock()
	if !active {
		writeJSON(w, map[string]any{"status": false, "message": "No active ride share."})
		return
	}
	writeJSON(w, map[string]any{"status": true, "message": "Ride sharing stopped."})
}

func (s *Server) chatHistory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	history := s.histories[req.Token]
	s.mu.Unlock()
	if len(history) == 0 {
		writeJSON(w, map[string]any{"status": false})
		return
	}
	writeJSON(w, map[string]any{"status": true, "chat_history": history})
}

func (s *Server) chatAsk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
		Query string `json:"query"`
	}
	if !decode(w, r, &req) {
		return
	}
	if !s.validToken(req.Token) {
		writeJSON(w, map[string]any{"status": false, "message": "Invalid session."})
		return
	}

	reply := fmt.Sprintf("You asked: %s. The assistant is a stub; deploy against the real service for answers.", req.Query)
	s.mu.Lock()
	s.histories[req.Token] = append(s.histories[req.Token], model.ChatTurn{
		Question: req.Query,
		Response: reply,
	})
	s.mu.Unlock()
	writeJSON(w, map[string]any{"status": true, "message": reply})
}

func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (*account, bool) {
	var req struct {
		Token string `json:"token"`
	}
	if !decode(w, r, &req) {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.tokens[req.Token]
	if !ok {
		writeJSON(w, map[string]any{"status": false, "message": "Invalid session."})
		return nil, false
	}
	return s.accounts[email], true
}

func (s *Server) validToken(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tokens[token]
	return ok
}

func decode(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeJSON(w, map[string]any{"status": false, "message": "Malformed request."})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(data)
}

func randomCode() string {
	const digits = "0123456789"
	code := make([]byte, 6)
	for i := range code {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		code[i] = digits[n.Int64()]
	}
	return string(code)
}
