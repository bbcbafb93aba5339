// Package otp drives the email verification flow:
//
//	AwaitingEmail -> OtpSent -> Verified
//	                        \-> Expired (countdown hit zero)
//
// A fresh Send returns an Expired flow to OtpSent with a full window.
package otp

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/securespot/securespot-go/internal/config"
	"github.com/securespot/securespot-go/internal/sched"
)

type State string

const (
	StateAwaitingEmail State = "awaiting_email"
	StateOtpSent       State = "otp_sent"
	StateVerified      State = "verified"
	StateExpired       State = "expired"
)

// CodeLength is checked client-side before any verification call.
const CodeLength = 6

var (
	ErrNoEmail     = errors.New("please enter your email")
	ErrInvalidCode = errors.New("please enter a valid 6-digit OTP")
	ErrExpired     = errors.New("OTP has expired, please request a new one")
	ErrNotSent     = errors.New("no OTP has been requested")
)

// Verifier is the slice of the business API the flow needs.
type Verifier interface {
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
}

type Flow struct {
	api          Verifier
	tickInterval time.Duration

	mu        sync.Mutex
	state     State
	email     string
	countdown *sched.Countdown

	// OnTick and OnExpire observe the countdown; both may be nil.
	OnTick   func(remaining int)
	OnExpire func()
}

func NewFlow(api Verifier) *Flow {
	return newFlow(api, time.Second)
}

func newFlow(api Verifier, tickInterval time.Duration) *Flow {
	return &Flow{
		api:          api,
		tickInterval: tickInterval,
		state:        StateAwaitingEmail,
	}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Remaining reports the countdown in whole seconds, zero when no OTP is
// outstanding.
func (f *Flow) Remaining() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countdown == nil {
		return 0
	}
	return f.countdown.Remaining()
}

// Send requests an OTP for the email and, on success, enters OtpSent with a
// fresh 60-second window.
func (f *Flow) Send(ctx context.Context, email string) error {
	if email == "" {
		return ErrNoEmail
	}
	if err := f.api.SendOTP(ctx, email); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countdown != nil {
		f.countdown.Stop()
	}
	f.state = StateOtpSent
	f.email = email
	f.countdown = sched.NewCountdown(int(config.OTPWindow/time.Second), f.tickInterval)
	f.countdown.OnTick = func(remaining int) {
		if f.OnTick != nil {
			f.OnTick(remaining)
		}
	}
	f.countdown.OnExpire = func() {
		f.expire()
		if f.OnExpire != nil {
			f.OnExpire()
		}
	}
	f.countdown.Start()
	return nil
}

// Verify submits the code. The length and countdown gates are checked here,
// before any remote call is made.
func (f *Flow) Verify(ctx context.Context, code string) error {
	f.mu.Lock()
	state := f.state
	email := f.email
	expired := f.countdown == nil || f.countdown.Expired()
	f.mu.Unlock()

	switch state {
	case StateOtpSent:
	case StateExpired:
		return ErrExpired
	default:
		return ErrNotSent
	}
	if len(code) != CodeLength {
		return ErrInvalidCode
	}
	if expired {
		return ErrExpired
	}

	if err := f.api.VerifyOTP(ctx, email, code); err != nil {
		return err
	}

	f.mu.Lock()
	f.state = StateVerified
	if f.countdown != nil {
		f.countdown.Stop()
	}
	f.mu.Unlock()
	return nil
}

// Back abandons an outstanding OTP and returns to the email prompt.
func (f *Flow) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countdown != nil {
		f.countdown.Stop()
		f.countdown = nil
	}
	f.state = StateAwaitingEmail
	f.email = ""
}

func (f *Flow) expire() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateOtpSent {
		f.state = StateExpired
	}
}
