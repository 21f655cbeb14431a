package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"letterpal/internal/common"
	"letterpal/internal/logging"
	serverauth "letterpal/internal/server/auth"
	"letterpal/internal/server/config"
	"letterpal/internal/server/models"
	"letterpal/internal/server/services"
)

const testSecret = "test-secret"

// --- fake repositories ---

type fakeUsersRepo struct {
	byNickname map[string]*models.User
	byID       map[string]*models.User
	createErr  error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{
		byNickname: map[string]*models.User{},
		byID:       map[string]*models.User{},
	}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, exists := f.byNickname[u.Nickname]; exists {
		return nil, common.ErrNicknameTaken
	}
	if u.ID == "" {
		u.ID = "u-" + u.Nickname
	}
	u.CreatedAt = time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	f.byNickname[u.Nickname] = u
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	u, ok := f.byNickname[nickname]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeProgressRepo struct {
	rows map[string]map[int]*models.Progress
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{rows: map[string]map[int]*models.Progress{}}
}

func (f *fakeProgressRepo) Get(ctx context.Context, userID string, letterID int) (*models.Progress, error) {
	if p, ok := f.rows[userID][letterID]; ok {
		return p, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeProgressRepo) Upsert(ctx context.Context, p *models.Progress) error {
	if f.rows[p.UserID] == nil {
		f.rows[p.UserID] = map[int]*models.Progress{}
	}
	f.rows[p.UserID][p.LetterID] = p
	return nil
}

func (f *fakeProgressRepo) ListByUser(ctx context.Context, userID string) ([]*models.Progress, error) {
	var out []*models.Progress
	for _, p := range f.rows[userID] {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProgressRepo) Totals(ctx context.Context, userID string) (int, int, error) {
	stars, completed := 0, 0
	for _, p := range f.rows[userID] {
		stars += p.Score
		if p.Completed {
			completed++
		}
	}
	return stars, completed, nil
}

type fakeCheckinRepo struct {
	records []*models.Checkin
}

func (f *fakeCheckinRepo) Record(ctx context.Context, userID, date string) (*models.Checkin, error) {
	for _, c := range f.records {
		if c.Date == date {
			c.LettersLearned++
			return c, nil
		}
	}
	c := &models.Checkin{UserID: userID, Date: date, LettersLearned: 1}
	f.records = append([]*models.Checkin{c}, f.records...)
	return c, nil
}

func (f *fakeCheckinRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*models.Checkin, error) {
	if limit == 0 || limit > len(f.records) {
		return f.records, nil
	}
	return f.records[:limit], nil
}

type fakeRecordingsRepo struct {
	created []*models.Recording
}

func (f *fakeRecordingsRepo) Create(ctx context.Context, rec *models.Recording) error {
	f.created = append(f.created, rec)
	return nil
}

// --- setup ---

type testEnv struct {
	router     *gin.Engine
	users      *fakeUsersRepo
	checkins   *fakeCheckinRepo
	recordings *fakeRecordingsRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	usersRepo := newFakeUsersRepo()
	progressRepo := newFakeProgressRepo()
	checkinRepo := &fakeCheckinRepo{}
	recordingsRepo := &fakeRecordingsRepo{}

	cfg := &config.Config{
		SecretKey:                   testSecret,
		AccessTokenValidityDuration: time.Hour,
	}

	us := services.NewUserService(usersRepo, cfg)
	ps := services.NewProgressService(progressRepo, checkinRepo)
	ps.SetNow(func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) })
	rs := services.NewRecordingService(recordingsRepo, t.TempDir())

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv := NewServer(us, ps, rs, []byte(testSecret), log)

	return &testEnv{
		router:     srv.Router(),
		users:      usersRepo,
		checkins:   checkinRepo,
		recordings: recordingsRepo,
	}
}

func (env *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) register(t *testing.T, nickname, password string) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"nickname": nickname, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := env.do(t, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func (env *testEnv) login(t *testing.T, nickname, password string) string {
	t.Helper()
	form := url.Values{}
	form.Set("username", nickname)
	form.Set("password", password)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := env.do(t, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out.AccessToken
}

func authReq(method, target, token string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// --- tests ---

func TestRegister_ThenLogin(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "misha", "secret")

	token := env.login(t, "misha", "secret")
	require.NotEmpty(t, token)

	userID, err := serverauth.GetUserIDFromToken(token, []byte(testSecret))
	require.NoError(t, err)
	require.Equal(t, "u-misha", userID)
}

func TestRegister_DuplicateNickname_400(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "misha", "secret")

	body, _ := json.Marshal(map[string]string{"nickname": "misha", "password": "other"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := env.do(t, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"detail":"nickname already taken"}`, w.Body.String())
}

func TestRegister_MissingFields_400(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"nickname":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := env.do(t, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_WrongPassword_401(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "misha", "secret")

	form := url.Values{}
	form.Set("username", "misha")
	form.Set("password", "wrong")
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := env.do(t, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "detail")
}

func TestMe_ReturnsProfile(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "misha", "secret")
	token := env.login(t, "misha", "secret")

	w := env.do(t, authReq(http.MethodGet, "/api/auth/me", token, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Equal(t, "misha", out["nickname"])
}

func TestAuthRequired_MissingToken_401(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/progress/stats", nil)
	w := env.do(t, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"detail":"invalid authentication credentials"}`, w.Body.String())
}

func TestAuthRequired_MalformedHeader_401(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/progress/stats", nil)
	req.Header.Set("Authorization", "tok-without-bearer-prefix")
	w := env.do(t, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProgress_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "misha", "secret")
	token := env.login(t, "misha", "secret")

	body := strings.NewReader(`{"letter_id":3,"stage":3,"score":85}`)
	w := env.do(t, authReq(http.MethodPost, "/api/progress/update", token, body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.JSONEq(t, `{"letter_id":3,"stage":3,"score":85,"completed":true}`, w.Body.String())
}

func TestUpdateProgress_InvalidLetterID_400(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "misha", "secret")
	token := env.login(t, "misha", "secret")

	body := strings.NewReader(`{"letter_id":99,"stage":1,"score":10}`)
	w := env.do(t, authReq(http.MethodPost, "/api/progress/update", token, body))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"detail":"invalid letter id"}`, w.Body.String())
}

func TestAllProgress_ZeroFilled26Rows(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "misha", "secret")
	token := env.login(t, "misha", "secret")

	w := env.do(t, authReq(http.MethodGet, "/api/progress/", token, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 26)
	require.EqualValues(t, 1, rows[0]["letter_id"])
	require.EqualValues(t, 0, rows[0]["stage"])
}

func TestCheckin_AndStats(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "misha", "secret")
	token := env.login(t, "misha", "secret")

	w := env.do(t, authReq(http.MethodPost, "/api/progress/checkin", token, nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"date":"2026-08-31","letters_learned":1}`, w.Body.String())

	body := strings.NewReader(`{"letter_id":1,"stage":3,"score":90}`)
	w = env.do(t, authReq(http.MethodPost, "/api/progress/update", token, body))
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, authReq(http.MethodGet, "/api/progress/stats", token, nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"total_stars":90,"completed_letters":1,"streak_days":1}`, w.Body.String())
}

func TestCheckins_ListsHistory(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "misha", "secret")
	token := env.login(t, "misha", "secret")

	w := env.do(t, authReq(http.MethodPost, "/api/progress/checkin", token, nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, authReq(http.MethodGet, "/api/progress/checkins", token, nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[{"date":"2026-08-31","letters_learned":1}]`, w.Body.String())
}

func TestSaveRecording_StoresFileAndRow(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "misha", "secret")
	token := env.login(t, "misha", "secret")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("letter", "A"))
	require.NoError(t, mw.WriteField("score", "77"))
	part, err := mw.CreateFormFile("audio", "a.webm")
	require.NoError(t, err)
	_, err = part.Write([]byte("audio-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/speech/save", &buf)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := env.do(t, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, env.recordings.created, 1)
	require.Equal(t, "A", env.recordings.created[0].Letter)
	require.Equal(t, 77, env.recordings.created[0].Score)
}

func TestSaveRecording_MissingAudio_400(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "misha", "secret")
	token := env.login(t, "misha", "secret")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("letter", "A"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/speech/save", &buf)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := env.do(t, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
