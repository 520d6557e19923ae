package middleware

import "testing"

func TestMaskBody(t *testing.T) {
	masked := maskBody([]byte(`{"username":"alice","password":"hunter2","New_Password":"x"}`))
	if masked == nil {
		t.Fatal("expected parsed body")
	}
	if masked["username"] != "alice" {
		t.Errorf("username = %v, want alice", masked["username"])
	}
	if masked["password"] != "***" {
		t.Errorf("password = %v, want masked", masked["password"])
	}
	if masked["New_Password"] != "***" {
		t.Errorf("New_Password = %v, want masked", masked["New_Password"])
	}
}

func TestMaskBodyNonJSON(t *testing.T) {
	if maskBody([]byte("plain text")) != nil {
		t.Error("non-JSON bodies are not recorded")
	}
	if maskBody(nil) != nil {
		t.Error("empty bodies are not recorded")
	}
}

func TestModuleFromPath(t *testing.T) {
	cases := map[string]string{
		"/api/v1/workspaces/:workspaceID/invites": "workspaces",
		"/api/v1/auth/login":                      "auth",
		"/api/v1/bugs/:bugID":                     "bugs",
		"":                                        "api",
	}
	for path, want := range cases {
		if got := moduleFromPath(path); got != want {
			t.Errorf("moduleFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}
