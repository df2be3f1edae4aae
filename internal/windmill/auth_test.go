package windmill

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestLoginSuccess(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var args map[string]any
		if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
			t.Errorf("decode args: %v", err)
		}
		if args["email"] != "a@b.com" || args["password"] != "pw" {
			t.Errorf("args = %v", args)
		}
		_, _ = w.Write([]byte(`{"success":true,"access_token":"t","user":{"id":1,"email":"a@b.com","role":"admin"}}`))
	})

	res, err := client.Login(context.Background(), "a@b.com", "pw", nil)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !res.Success || res.AccessToken != "t" {
		t.Errorf("result = %+v", res)
	}
	if res.User == nil || res.User.ID != 1 || res.User.Email != "a@b.com" || res.User.Role != "admin" {
		t.Errorf("user = %+v", res.User)
	}
}

func TestLoginUnauthorized(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Unauthorized"}}`))
	})

	_, err := client.Login(context.Background(), "a@b.com", "wrong", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Message != "Unauthorized" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestLoginOmitsEmptyDeviceInfo(t *testing.T) {
	var raw map[string]json.RawMessage
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&raw)
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	if _, err := client.Login(context.Background(), "a@b.com", "pw", nil); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, present := raw["device_info"]; present {
		t.Errorf("device_info should be omitted when nil: %v", raw)
	}
}

func TestLogoutForwardsRevokeAll(t *testing.T) {
	var args map[string]any
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&args)
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	if _, err := client.Logout(context.Background(), "rt", true); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if args["refresh_token"] != "rt" || args["revoke_all"] != true {
		t.Errorf("args = %v", args)
	}
}
