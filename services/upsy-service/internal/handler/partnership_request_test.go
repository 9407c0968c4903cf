package handler

import (
	"net/http"
	"testing"
)

func partnershipBody() map[string]any {
	return map[string]any{
		"organizationName":  "IIT Delhi",
		"organizationType":  "university",
		"contactPersonName": "Ravi Kumar",
		"contactEmail":      "ravi@iitd.ac.in",
		"contactPhone":      "+91 9876543210",
		"programs":          []string{"B.Tech"},
		"description":       "Premier engineering institute",
		"partnershipGoals":  "Student financing",
	}
}

func TestSubmitPartnershipRequest(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/partners/partnership-request", partnershipBody(), "")
	expectStatus(t, resp, http.StatusCreated)

	data, _ := resp.body["data"].(map[string]any)
	if resp.body["success"] != true || data["status"] != "pending" || data["id"] == "" || data["submittedAt"] == nil {
		t.Fatalf("body = %s", resp.raw)
	}
}

func TestSubmitPartnershipRequestValidation(t *testing.T) {
	s := newTestServer(t)
	body := partnershipBody()
	body["organizationType"] = "school"
	body["contactEmail"] = "nope"
	programs := make([]string, 21)
	for i := range programs {
		programs[i] = "p"
	}
	body["programs"] = programs

	resp := s.do(t, http.MethodPost, "/api/partners/partnership-request", body, "")
	expectError(t, resp, http.StatusBadRequest, "Validation failed")
	if resp.body["success"] != false {
		t.Fatalf("success flag missing: %s", resp.raw)
	}

	fields := map[string]bool{}
	details, _ := resp.body["details"].([]any)
	for _, d := range details {
		detail, _ := d.(map[string]any)
		field, _ := detail["field"].(string)
		fields[field] = true
	}
	for _, want := range []string{"organizationType", "contactEmail", "programs"} {
		if !fields[want] {
			t.Errorf("missing detail for %s: %s", want, resp.raw)
		}
	}
}

func TestSubmitPartnershipRequestRequiresPrograms(t *testing.T) {
	s := newTestServer(t)
	body := partnershipBody()
	delete(body, "programs")

	resp := s.do(t, http.MethodPost, "/api/partners/partnership-request", body, "")
	expectError(t, resp, http.StatusBadRequest, "Validation failed")

	details, _ := resp.body["details"].([]any)
	if len(details) != 1 {
		t.Fatalf("details = %s", resp.raw)
	}
	if detail, _ := details[0].(map[string]any); detail["field"] != "programs" {
		t.Fatalf("details = %s", resp.raw)
	}

	body["programs"] = []string{}
	expectStatus(t, s.do(t, http.MethodPost, "/api/partners/partnership-request", body, ""), http.StatusCreated)
}

func TestPartnershipRequestGetNotAllowed(t *testing.T) {
	resp := newTestServer(t).do(t, http.MethodGet, "/api/partners/partnership-request", nil, "")
	expectError(t, resp, http.StatusMethodNotAllowed, "Method not allowed")
	if resp.body["success"] != false {
		t.Fatalf("body = %s", resp.raw)
	}
}

// verifiedLogin signs up, verifies and logs in an account with email and
// returns its session token.
func (s *testServer) verifiedLogin(t *testing.T, email string) string {
	t.Helper()

	body := signupBody()
	body["email"] = email
	expectStatus(t, s.do(t, http.MethodPost, "/api/auth/signup", body, ""), http.StatusCreated)
	verify := map[string]string{"token": s.notifier.lastToken(t)}
	expectStatus(t, s.do(t, http.MethodPost, "/api/auth/verify-email", verify, ""), http.StatusOK)

	resp := s.do(t, http.MethodPost, "/api/auth/login", loginBody(email, "Secret123"), "")
	expectStatus(t, resp, http.StatusOK)
	token, _ := resp.body["token"].(string)
	return token
}

func TestPartnershipRequestsAreStaffOnly(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/partners/partnership-request", partnershipBody(), "")
	expectStatus(t, resp, http.StatusCreated)
	data, _ := resp.body["data"].(map[string]any)
	id, _ := data["id"].(string)

	token := s.verifiedLogin(t, "asha@example.com")

	resp = s.do(t, http.MethodGet, "/api/partners/partnership-requests", nil, token)
	expectError(t, resp, http.StatusForbidden, "Forbidden")

	resp = s.do(t, http.MethodPatch, "/api/partners/partnership-requests/"+id,
		map[string]any{"status": "approved"}, token)
	expectError(t, resp, http.StatusForbidden, "Forbidden")

	resp = s.do(t, http.MethodGet, "/api/partners/partnership-requests", nil, "")
	expectError(t, resp, http.StatusUnauthorized, "Unauthorized")
}

func TestReviewPartnershipRequest(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/partners/partnership-request", partnershipBody(), "")
	expectStatus(t, resp, http.StatusCreated)
	data, _ := resp.body["data"].(map[string]any)
	id, _ := data["id"].(string)

	token := s.verifiedLogin(t, staffEmail)

	resp = s.do(t, http.MethodGet, "/api/partners/partnership-requests?status=pending", nil, token)
	expectStatus(t, resp, http.StatusOK)
	if list, _ := resp.body["data"].([]any); len(list) != 1 {
		t.Fatalf("body = %s", resp.raw)
	}

	resp = s.do(t, http.MethodPatch, "/api/partners/partnership-requests/"+id,
		map[string]any{"status": "approved", "notes": "Welcome aboard"}, token)
	expectStatus(t, resp, http.StatusOK)
	updated, _ := resp.body["data"].(map[string]any)
	if updated["status"] != "approved" || updated["reviewedBy"] != "Asha Rao" || updated["reviewedAt"] == nil {
		t.Fatalf("body = %s", resp.raw)
	}

	resp = s.do(t, http.MethodGet, "/api/partners/partnership-requests?status=pending", nil, token)
	if list, _ := resp.body["data"].([]any); len(list) != 0 {
		t.Fatalf("approved request still pending: %s", resp.raw)
	}

	resp = s.do(t, http.MethodPatch, "/api/partners/partnership-requests/0123456789abcdef01234567",
		map[string]any{"status": "rejected"}, token)
	expectError(t, resp, http.StatusNotFound, "Partnership request not found")

	resp = s.do(t, http.MethodPatch, "/api/partners/partnership-requests/nope",
		map[string]any{"status": "rejected"}, token)
	expectError(t, resp, http.StatusBadRequest, "Invalid partnership request id")

	resp = s.do(t, http.MethodGet, "/api/partners/partnership-requests?limit=x", nil, token)
	expectError(t, resp, http.StatusBadRequest, "Invalid limit")

	resp = s.do(t, http.MethodGet, "/api/partners/partnership-requests?status=archived", nil, token)
	expectError(t, resp, http.StatusBadRequest, "Invalid status")
}
