package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	controller "github.com/gui-far/objectboard/pkg/controller/http"
	"github.com/gui-far/objectboard/pkg/repository/memory"
	"github.com/gui-far/objectboard/pkg/usecase"
)

type testClient struct {
	t      *testing.T
	server *controller.Server
	token  string
}

func (c *testClient) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		gt.NoError(c.t, json.NewEncoder(&buf).Encode(body)).Required()
	}

	req := httptest.NewRequest(method, path, &buf)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	rec := httptest.NewRecorder()
	c.server.ServeHTTP(rec, req)
	return rec
}

func (c *testClient) decode(rec *httptest.ResponseRecorder, dst any) {
	c.t.Helper()
	gt.NoError(c.t, json.NewDecoder(rec.Body).Decode(dst)).Required()
}

// newTestServer wires a memory-backed server with JWT auth and signs in
// the given accounts, returning one client per email
func newTestServer(t *testing.T, emails ...string) map[string]*testClient {
	t.Helper()

	repo := memory.New()
	authUC := usecase.NewAuthUseCase(repo, []byte("test-secret"),
		usecase.WithAdminEmails([]string{"admin@example.com"}),
	)
	ucs := usecase.New(repo, usecase.WithAuth(authUC))
	server := controller.New(ucs)

	clients := make(map[string]*testClient, len(emails))
	for _, email := range emails {
		client := &testClient{t: t, server: server}

		rec := client.do(http.MethodPost, "/auth/signup", map[string]string{
			"email":    email,
			"password": "correct-horse",
		})
		gt.Value(t, rec.Code).Equal(http.StatusCreated)

		rec = client.do(http.MethodPost, "/auth/signin", map[string]string{
			"email":    email,
			"password": "correct-horse",
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var signin struct {
			AccessToken string `json:"accessToken"`
		}
		client.decode(rec, &signin)
		gt.Value(t, signin.AccessToken).NotEqual("")
		client.token = signin.AccessToken

		clients[email] = client
	}
	return clients
}

func testDefinitionBody() map[string]any {
	return map[string]any{
		"objectType": "deal",
		"label":      "Deal",
		"isActive":   true,
		"properties": []map[string]any{
			{"name": "name", "label": "Name", "component": "TextInput", "required": true},
			{"name": "amount", "label": "Amount", "component": "CurrencyInput"},
		},
		"stages": []map[string]any{
			{"id": "new", "label": "New"},
			{"id": "won", "label": "Won", "totalizerField": "amount"},
		},
	}
}

func TestServer_Health(t *testing.T) {
	ucs := usecase.New(memory.New())
	server := controller.New(ucs)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	gt.Value(t, rec.Code).Equal(http.StatusOK)
}

func TestServer_AuthRequired(t *testing.T) {
	repo := memory.New()
	authUC := usecase.NewAuthUseCase(repo, []byte("test-secret"))
	server := controller.New(usecase.New(repo, usecase.WithAuth(authUC)))

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/object-definition/", nil))
	gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)

	req := httptest.NewRequest(http.MethodGet, "/api/object-definition/", nil)
	req.Header.Set("Authorization", "Bearer bogus-token")
	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
}

func TestServer_NoAuthnMode(t *testing.T) {
	repo := memory.New()
	server := controller.New(usecase.New(repo,
		usecase.WithAuth(usecase.NewNoAuthnUseCase(repo, "dev@example.com")),
	))

	// No bearer token needed; the anonymous user is an administrator
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/object-definition/", nil))
	gt.Value(t, rec.Code).Equal(http.StatusOK)
}

func TestServer_DefinitionLifecycle(t *testing.T) {
	clients := newTestServer(t, "admin@example.com", "alice@example.com")
	admin := clients["admin@example.com"]
	alice := clients["alice@example.com"]

	rec := admin.do(http.MethodPost, "/api/object-definition/", testDefinitionBody())
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	var created struct {
		ID         string `json:"id"`
		ObjectType string `json:"objectType"`
	}
	admin.decode(rec, &created)
	gt.Value(t, created.ObjectType).Equal("deal")

	t.Run("non-admin creation is forbidden", func(t *testing.T) {
		rec := alice.do(http.MethodPost, "/api/object-definition/", testDefinitionBody())
		gt.Value(t, rec.Code).Equal(http.StatusForbidden)
	})

	t.Run("invalid definition is a 400", func(t *testing.T) {
		body := testDefinitionBody()
		body["objectType"] = "another"
		body["stages"] = []map[string]any{}
		rec := admin.do(http.MethodPost, "/api/object-definition/", body)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("lookup by id and type", func(t *testing.T) {
		rec := admin.do(http.MethodGet, "/api/object-definition/"+created.ID, nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		rec = admin.do(http.MethodGet, "/api/object-definition/type/deal", nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		rec = admin.do(http.MethodGet, "/api/object-definition/type/missing", nil)
		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
	})

	t.Run("forbidden access lands in the permission log", func(t *testing.T) {
		rec := admin.do(http.MethodGet, "/log/permission-errors", nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var logs struct {
			Logs []struct {
				Kind string `json:"kind"`
				Path string `json:"path"`
			} `json:"logs"`
		}
		admin.decode(rec, &logs)
		gt.Array(t, logs.Logs).Length(1)
		gt.Value(t, logs.Logs[0].Kind).Equal("permission_error")
		gt.Value(t, logs.Logs[0].Path).Equal("/api/object-definition/")
	})
}

func TestServer_ObjectLifecycle(t *testing.T) {
	clients := newTestServer(t, "admin@example.com", "alice@example.com", "bob@example.com")
	admin := clients["admin@example.com"]
	alice := clients["alice@example.com"]
	bob := clients["bob@example.com"]

	rec := admin.do(http.MethodPost, "/api/object-definition/", testDefinitionBody())
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	rec = alice.do(http.MethodPost, "/api/object/", map[string]any{
		"objectType": "deal",
		"properties": map[string]any{"name": "Acme", "amount": 1200.5},
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	var obj struct {
		ID             string `json:"id"`
		CurrentStageID string `json:"currentStageId"`
		Visibility     string `json:"visibility"`
	}
	alice.decode(rec, &obj)
	gt.Value(t, obj.CurrentStageID).Equal("new")
	gt.Value(t, obj.Visibility).Equal("private")

	t.Run("private objects are invisible to others", func(t *testing.T) {
		rec := bob.do(http.MethodGet, "/api/object/"+obj.ID, nil)
		gt.Value(t, rec.Code).Equal(http.StatusForbidden)
	})

	t.Run("property patch", func(t *testing.T) {
		rec := alice.do(http.MethodPatch, "/api/object/"+obj.ID, map[string]any{
			"properties": map[string]any{"amount": 2000.0},
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)
	})

	t.Run("stage transition and no-op repeat", func(t *testing.T) {
		rec := alice.do(http.MethodPatch, fmt.Sprintf("/api/object/%s/stage", obj.ID), map[string]any{
			"target": "won",
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var moved struct {
			CurrentStageID string `json:"currentStageId"`
		}
		alice.decode(rec, &moved)
		gt.Value(t, moved.CurrentStageID).Equal("won")

		// Same target again: still a 200 with the unchanged object
		rec = alice.do(http.MethodPatch, fmt.Sprintf("/api/object/%s/stage", obj.ID), map[string]any{
			"target": "won",
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		alice.decode(rec, &moved)
		gt.Value(t, moved.CurrentStageID).Equal("won")
	})

	t.Run("board aggregates the totalizer", func(t *testing.T) {
		rec := alice.do(http.MethodGet, "/api/object-definition/type/deal/board", nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var board struct {
			Columns []struct {
				Stage struct {
					ID string `json:"id"`
				} `json:"stage"`
				Count  int `json:"count"`
				Totals *struct {
					Total float64 `json:"total"`
					Count int     `json:"count"`
				} `json:"totals"`
			} `json:"columns"`
		}
		alice.decode(rec, &board)
		gt.Array(t, board.Columns).Length(2)
		gt.Value(t, board.Columns[1].Stage.ID).Equal("won")
		gt.Value(t, board.Columns[1].Count).Equal(1)
		gt.Value(t, board.Columns[1].Totals).NotNil()
		gt.Value(t, board.Columns[1].Totals.Total).Equal(2000.0)
	})

	t.Run("sharing opens visibility", func(t *testing.T) {
		rec := alice.do(http.MethodPatch, fmt.Sprintf("/api/object/%s/sharing", obj.ID), map[string]any{
			"visibility": "public",
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		rec = bob.do(http.MethodGet, "/api/object/"+obj.ID, nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)
	})

	t.Run("empty share list is a 400", func(t *testing.T) {
		rec := alice.do(http.MethodPatch, fmt.Sprintf("/api/object/%s/sharing", obj.ID), map[string]any{
			"visibility": "shared",
		})
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("history is newest first", func(t *testing.T) {
		rec := alice.do(http.MethodGet, fmt.Sprintf("/api/object/%s/history", obj.ID), nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var history struct {
			History []struct {
				ChangeType string `json:"changeType"`
			} `json:"history"`
		}
		alice.decode(rec, &history)
		gt.Array(t, history.History).Length(3)
		gt.Value(t, history.History[0].ChangeType).Equal("stage_changed")
		gt.Value(t, history.History[2].ChangeType).Equal("created")
	})

	t.Run("delete", func(t *testing.T) {
		rec := bob.do(http.MethodDelete, "/api/object/"+obj.ID, nil)
		gt.Value(t, rec.Code).Equal(http.StatusForbidden)

		rec = alice.do(http.MethodDelete, "/api/object/"+obj.ID, nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		rec = alice.do(http.MethodGet, "/api/object/"+obj.ID, nil)
		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
	})
}

func TestServer_Signout(t *testing.T) {
	clients := newTestServer(t, "alice@example.com")
	alice := clients["alice@example.com"]

	rec := alice.do(http.MethodPost, "/auth/signout", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	rec = alice.do(http.MethodGet, "/api/object-definition/", nil)
	gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
}
