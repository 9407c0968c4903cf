package handler

import (
	"net/http"
	"net/url"
	"testing"
)

func signupBody() map[string]any {
	return map[string]any{
		"name":            "Asha Rao",
		"email":           "  Asha@Example.com ",
		"password":        "Secret123",
		"confirmPassword": "Secret123",
		"mobile":          "9876543210",
		"aadharNumber":    "123412341234",
		"panNumber":       "abcde1234f",
		"userType":        "student",
		"collegeEmail":    "asha@college.edu",
		"agreeToTerms":    true,
	}
}

func loginBody(email, password string) map[string]any {
	return map[string]any{"email": email, "password": password}
}

func TestSignupVerifyLoginFlow(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/auth/signup", signupBody(), "")
	expectStatus(t, resp, http.StatusCreated)
	if resp.body["message"] != signupMessage || resp.body["userId"] == "" {
		t.Fatalf("body = %s", resp.raw)
	}

	resp = s.do(t, http.MethodPost, "/api/auth/login", loginBody("asha@example.com", "Secret123"), "")
	expectError(t, resp, http.StatusUnauthorized, "Please verify your email before logging in")
	if resp.body["code"] != "EMAIL_NOT_VERIFIED" {
		t.Fatalf("code = %v", resp.body["code"])
	}

	token := s.notifier.lastToken(t)
	resp = s.do(t, http.MethodPost, "/api/auth/verify-email", map[string]string{"token": token}, "")
	expectStatus(t, resp, http.StatusOK)
	user, _ := resp.body["user"].(map[string]any)
	if resp.body["message"] != verifiedMessage || user["isEmailVerified"] != true || user["email"] != "asha@example.com" {
		t.Fatalf("body = %s", resp.raw)
	}

	resp = s.do(t, http.MethodPost, "/api/auth/verify-email", map[string]string{"token": token}, "")
	expectError(t, resp, http.StatusBadRequest, "Invalid or expired verification token")

	resp = s.do(t, http.MethodPost, "/api/auth/login", loginBody("asha@example.com", "Secret123"), "")
	expectStatus(t, resp, http.StatusOK)
	sessionToken, _ := resp.body["token"].(string)
	if sessionToken == "" || resp.body["message"] != loginMessage {
		t.Fatalf("body = %s", resp.raw)
	}
	user, _ = resp.body["user"].(map[string]any)
	for _, secret := range []string{"password", "passwordHash", "emailVerificationToken"} {
		if _, ok := user[secret]; ok {
			t.Fatalf("user leaks %s: %s", secret, resp.raw)
		}
	}

	resp = s.do(t, http.MethodGet, "/api/auth/me", nil, sessionToken)
	expectStatus(t, resp, http.StatusOK)

	resp = s.do(t, http.MethodPost, "/api/auth/logout", nil, sessionToken)
	expectStatus(t, resp, http.StatusOK)
	if resp.body["message"] != logoutMessage {
		t.Fatalf("body = %s", resp.raw)
	}

	resp = s.do(t, http.MethodGet, "/api/auth/me", nil, sessionToken)
	expectError(t, resp, http.StatusUnauthorized, "Unauthorized")
}

func TestSignupDuplicates(t *testing.T) {
	s := newTestServer(t)
	expectStatus(t, s.do(t, http.MethodPost, "/api/auth/signup", signupBody(), ""), http.StatusCreated)

	resp := s.do(t, http.MethodPost, "/api/auth/signup", signupBody(), "")
	expectError(t, resp, http.StatusBadRequest, "User with this email already exists")

	body := signupBody()
	body["email"] = "other@example.com"
	resp = s.do(t, http.MethodPost, "/api/auth/signup", body, "")
	expectError(t, resp, http.StatusBadRequest, "User with this Aadhar number already exists")

	body["aadharNumber"] = "999988887777"
	resp = s.do(t, http.MethodPost, "/api/auth/signup", body, "")
	expectError(t, resp, http.StatusBadRequest, "User with this PAN number already exists")
}

func TestSignupValidation(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value any
	}{
		{"short name", "name", "A"},
		{"digits in name", "name", "Asha 2"},
		{"bad email", "email", "asha@"},
		{"weak password", "password", "secret1"},
		{"mismatched confirmation", "confirmPassword", "Secret124"},
		{"bad mobile", "mobile", "5876543210"},
		{"bad aadhar", "aadharNumber", "1234"},
		{"bad pan", "panNumber", "ABCD1234F"},
		{"bad user type", "userType", "guardian"},
		{"student without college email", "collegeEmail", ""},
		{"terms not accepted", "agreeToTerms", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			body := signupBody()
			body[tt.field] = tt.value

			resp := s.do(t, http.MethodPost, "/api/auth/signup", body, "")
			expectError(t, resp, http.StatusBadRequest, "Validation failed")

			details, _ := resp.body["details"].([]any)
			found := false
			for _, d := range details {
				if detail, _ := d.(map[string]any); detail["field"] == tt.field {
					found = true
				}
			}
			if !found {
				t.Fatalf("no detail for %s: %s", tt.field, resp.raw)
			}
		})
	}
}

func TestSignupAcceptsEmailForms(t *testing.T) {
	tests := []struct {
		name         string
		email        string
		collegeEmail string
	}{
		{"plus addressing", "asha+isa@gmail.com", "asha+isa@college.edu"},
		{"four letter tld", "dean@college.info", "dean@college.info"},
		{"apostrophe", "o'neil@uni.edu", "o'neil@uni.edu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			body := signupBody()
			body["email"] = tt.email
			body["collegeEmail"] = tt.collegeEmail

			expectStatus(t, s.do(t, http.MethodPost, "/api/auth/signup", body, ""), http.StatusCreated)
		})
	}
}

func TestSignupParentWithoutCollegeEmail(t *testing.T) {
	s := newTestServer(t)
	body := signupBody()
	body["userType"] = "parent"
	delete(body, "collegeEmail")

	expectStatus(t, s.do(t, http.MethodPost, "/api/auth/signup", body, ""), http.StatusCreated)
}

func TestLoginFailureBodiesAreIdentical(t *testing.T) {
	s := newTestServer(t)
	expectStatus(t, s.do(t, http.MethodPost, "/api/auth/signup", signupBody(), ""), http.StatusCreated)
	token := s.notifier.lastToken(t)
	expectStatus(t, s.do(t, http.MethodPost, "/api/auth/verify-email", map[string]string{"token": token}, ""), http.StatusOK)

	unknown := s.do(t, http.MethodPost, "/api/auth/login", loginBody("nobody@example.com", "Secret123"), "")
	wrong := s.do(t, http.MethodPost, "/api/auth/login", loginBody("asha@example.com", "Wrong1234"), "")

	expectError(t, unknown, http.StatusUnauthorized, "Invalid email or password")
	if unknown.raw != wrong.raw || unknown.status != wrong.status {
		t.Fatalf("responses differ: %q vs %q", unknown.raw, wrong.raw)
	}
}

func TestLoginUnverifiedWithWrongPassword(t *testing.T) {
	s := newTestServer(t)
	expectStatus(t, s.do(t, http.MethodPost, "/api/auth/signup", signupBody(), ""), http.StatusCreated)

	resp := s.do(t, http.MethodPost, "/api/auth/login", loginBody("asha@example.com", "Wrong999x"), "")
	expectError(t, resp, http.StatusUnauthorized, "Please verify your email before logging in")
	if resp.body["code"] != "EMAIL_NOT_VERIFIED" {
		t.Fatalf("code = %v", resp.body["code"])
	}
}

func TestVerifyEmailRequiresToken(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/auth/verify-email", map[string]string{"token": ""}, "")
	expectError(t, resp, http.StatusBadRequest, "Verification token is required")
}

func TestVerifyEmailRedirect(t *testing.T) {
	s := newTestServer(t)
	expectStatus(t, s.do(t, http.MethodPost, "/api/auth/signup", signupBody(), ""), http.StatusCreated)
	token := s.notifier.lastToken(t)

	tests := []struct {
		name  string
		query string
		key   string
		value string
	}{
		{"missing token", "", "error", "missing_token"},
		{"unknown token", "?token=nope", "error", "invalid_token"},
		{"valid token", "?token=" + token, "verified", "true"},
		{"replayed token", "?token=" + token, "error", "invalid_token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.do(t, http.MethodGet, "/api/auth/verify-email"+tt.query, nil, "")
			expectStatus(t, resp, http.StatusFound)

			location, err := url.Parse(resp.header.Get("Location"))
			if err != nil {
				t.Fatalf("parse location: %v", err)
			}
			if location.Host != "upsy.in" || location.Path != "/auth/login" {
				t.Fatalf("location = %s", location)
			}
			if got := location.Query().Get(tt.key); got != tt.value {
				t.Fatalf("%s = %q, want %q", tt.key, got, tt.value)
			}
		})
	}
}

func TestResendVerificationAnswersUniformly(t *testing.T) {
	s := newTestServer(t)
	expectStatus(t, s.do(t, http.MethodPost, "/api/auth/signup", signupBody(), ""), http.StatusCreated)
	first := s.notifier.lastToken(t)

	known := s.do(t, http.MethodPost, "/api/auth/resend-verification", map[string]string{"email": "asha@example.com"}, "")
	unknown := s.do(t, http.MethodPost, "/api/auth/resend-verification", map[string]string{"email": "nobody@example.com"}, "")

	expectStatus(t, known, http.StatusOK)
	if known.raw != unknown.raw {
		t.Fatalf("responses differ: %q vs %q", known.raw, unknown.raw)
	}
	if s.notifier.lastToken(t) == first {
		t.Fatal("expected a fresh token")
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	s := newTestServer(t)

	for _, tc := range []struct{ method, path, token string }{
		{http.MethodGet, "/api/auth/me", ""},
		{http.MethodGet, "/api/auth/me", "garbage"},
		{http.MethodPost, "/api/auth/logout", ""},
		{http.MethodGet, "/api/partners/partnership-requests", ""},
	} {
		resp := s.do(t, tc.method, tc.path, nil, tc.token)
		expectError(t, resp, http.StatusUnauthorized, "Unauthorized")
	}
}
