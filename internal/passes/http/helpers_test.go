package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/eventpass/internal/passes/media"
	"github.com/aussiebroadwan/eventpass/internal/passes/service"
	"github.com/aussiebroadwan/eventpass/internal/passes/store/drivers/sqlite"
	"github.com/aussiebroadwan/eventpass/pkg/jwtx"
	"github.com/aussiebroadwan/eventpass/pkg/passsdk"
	"github.com/aussiebroadwan/eventpass/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

var errTestDelivery = errors.New("recipient rejected")

type recordingMessenger struct {
	mu     sync.Mutex
	images []string
	failTo string
}

func (m *recordingMessenger) SendImage(_ context.Context, to, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if to == m.failTo {
		return errTestDelivery
	}
	m.images = append(m.images, to+" "+link)
	return nil
}

func (m *recordingMessenger) SendTemplate(_ context.Context, to string) error {
	return nil
}

type testEnv struct {
	router    *Router
	store     *sqlite.Store
	media     *media.DirStore
	messenger *recordingMessenger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(dir, "passes.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	hs, err := jwtx.NewHS256([]byte(testSecret), "eventpass-test")
	require.NoError(t, err)

	ms, err := media.NewDirStore(filepath.Join(dir, "media"), time.Hour)
	require.NoError(t, err)
	messenger := &recordingMessenger{}

	r := NewRouter(hs, "test", st, slogx.Discard())
	r.UserService = &service.UserService{Store: st, Signer: hs, Issuer: hs.Issuer()}
	r.EventService = &service.EventService{Store: st}
	r.PassService = &service.PassService{Store: st}
	r.DispatchService = &service.DispatchService{
		Store:     st,
		Uploader:  &media.Uploader{Store: ms, BaseURL: "http://passes.test"},
		Messenger: messenger,
		TempDir:   dir,
		Sleep:     func(context.Context, time.Duration) error { return nil },
	}
	r.Media = ms
	r.ApplyRoutes()

	return &testEnv{router: r, store: st, media: ms, messenger: messenger}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) register(t *testing.T, name, phone, email string) passsdk.RegisterResponse {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/users/register", "", passsdk.RegisterRequest{Name: name, Phone: phone, Email: email})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var out passsdk.RegisterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(t, out.Token)
	return out
}

func (e *testEnv) createEvent(t *testing.T, token string, gold, silver, platinum int64) int64 {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/events", token, eventBody("Conf", "2025-06-01T18:00:00Z", "Hall A", gold, silver, platinum))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeID(t, rec)
}

func eventBody(name, date, location string, gold, silver, platinum int64) passsdk.EventRequest {
	return passsdk.EventRequest{
		Name:              &name,
		Date:              &date,
		Location:          &location,
		GoldPassLimit:     &gold,
		SilverPassLimit:   &silver,
		PlatinumPassLimit: &platinum,
	}
}

func decodeID(t *testing.T, rec *httptest.ResponseRecorder) int64 {
	t.Helper()

	var out passsdk.IDResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Positive(t, out.ID)
	return out.ID
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var out struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out.Error
}

func decodeFields(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	var out struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	fields := make(map[string]string, len(out.Errors))
	for _, e := range out.Errors {
		fields[e.Field] = e.Message
	}
	return fields
}
