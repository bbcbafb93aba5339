package api

import "context"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Status  bool   `json:"status"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Login exchanges credentials for an opaque session token. The token's
// validity is entirely the server's business.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	if err := c.postJSON(ctx, "/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	if !resp.Status {
		return "", businessErr(resp.Message, "Login failed. Please try again.")
	}
	return resp.Token, nil
}

type signupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type messageResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

func (c *Client) Signup(ctx context.Context, name, email, password, confirmPassword string) (string, error) {
	req := signupRequest{
		Name:            name,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirmPassword,
	}
	var resp messageResponse
	if err := c.postJSON(ctx, "/signup", req, &resp); err != nil {
		return "", err
	}
	if !resp.Status {
		return "", businessErr(resp.Message, "Sign up failed. Please try again.")
	}
	return resp.Message, nil
}

type emailRequest struct {
	Email string `json:"email"`
}

func (c *Client) SendOTP(ctx context.Context, email string) error {
	var resp messageResponse
	if err := c.postJSON(ctx, "/send_otp", emailRequest{Email: email}, &resp); err != nil {
		return err
	}
	if !resp.Status {
		return businessErr(resp.Message, "Failed to send OTP. Please try again.")
	}
	return nil
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	var resp messageResponse
	if err := c.postJSON(ctx, "/verify_otp_code", verifyOTPRequest{Email: email, OTP: otp}, &resp); err != nil {
		return err
	}
	if !resp.Status {
		return businessErr(resp.Message, "OTP verification failed.")
	}
	return nil
}
