package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"

	handler "github.com/vncsmyrnk/election/internal/adapters/handler/http"
	"github.com/vncsmyrnk/election/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
	"github.com/vncsmyrnk/election/internal/core/services"
)

const testPassword = "secret123"

// MockVerifier accepts only "valid_token" and asserts the configured email.
type MockVerifier struct {
	email string
}

func (v *MockVerifier) Verify(ctx context.Context, token string, clientID string) (*ports.TokenPayload, error) {
	if token == "valid_token" {
		return &ports.TokenPayload{Email: v.email}, nil
	}
	return nil, assert.AnError
}

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	Profiles    ports.ProfileRepository
	DBContainer testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}
	return pgContainer, connStr, nil
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := postgres.Open(ctx, dbURL, postgres.PoolConfig{MaxOpenConns: 20})
	require.NoError(t, err)
	require.NoError(t, postgres.MigrateUp(ctx, db))

	profileRepo := postgres.NewProfileRepository(db)
	constituencyRepo := postgres.NewConstituencyRepository(db)
	partyRepo := postgres.NewPartyRepository(db)
	candidateRepo := postgres.NewCandidateRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	authRepo := postgres.NewAuthRepository(db)

	authSvc := services.NewAuthService(profileRepo, constituencyRepo, authRepo, &MockVerifier{email: "google@example.com"}, services.AuthConfig{
		JWTSecret:      "test-secret",
		BcryptCost:     bcrypt.MinCost,
		GoogleClientID: "test-client",
	}, nil)
	constituencySvc := services.NewConstituencyService(constituencyRepo, nil)
	candidateSvc := services.NewCandidateService(candidateRepo, partyRepo, constituencyRepo, profileRepo, nil)
	metrics := handler.NewMetrics(prometheus.NewRegistry())

	router := handler.NewHandler(handler.Handlers{
		Auth:           handler.NewAuthHandler(authSvc, handler.CookieConfig{}, nil),
		Users:          handler.NewUserHandler(services.NewUserService(profileRepo, nil), nil),
		Constituencies: handler.NewConstituencyHandler(constituencySvc, metrics, nil),
		Parties:        handler.NewPartyHandler(services.NewPartyService(partyRepo, nil), nil),
		Candidates:     handler.NewCandidateHandler(candidateSvc, nil),
		Votes: handler.NewVoteHandler(
			services.NewVoteService(constituencyRepo, candidateRepo, voteRepo, nil),
			authSvc, constituencySvc, candidateSvc, metrics, nil,
		),
		Stats: handler.NewStatsHandler(
			services.NewResultService(constituencyRepo, candidateRepo, partyRepo, profileRepo, voteRepo),
			services.NewStatsService(profileRepo, constituencyRepo, partyRepo, candidateRepo, voteRepo),
			nil,
		),
	}, handler.RouterConfig{
		AllowedOrigins: []string{"*"},
		Tokens:         authSvc,
		Metrics:        metrics,
	})

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		Profiles:    profileRepo,
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

// apiResponse mirrors the JSON envelope every endpoint answers with.
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (r apiResponse) decode(t *testing.T, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Data, dst), string(r.Data))
}

func (app *TestApp) do(t *testing.T, method, path, token string, body any) (int, apiResponse) {
	t.Helper()

	payload := bytes.NewReader(nil)
	if body != nil {
		payload = jsonBody(t, body)
	}
	req, err := http.NewRequest(method, app.Server.URL+path, payload)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

// createProfile stores a profile with testPassword directly and returns its
// email.
func (app *TestApp) createProfile(t *testing.T, role domain.Role, constituencyID *int64) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	id := uuid.New()
	p := &domain.Profile{
		Email:          fmt.Sprintf("%s-%s@example.com", role, id),
		PasswordHash:   string(hash),
		NationalID:     fmt.Sprintf("%013d", id.ID()),
		FullName:       fmt.Sprintf("%s %s", role, id),
		Role:           role,
		ConstituencyID: constituencyID,
	}
	require.NoError(t, app.Profiles.Create(context.Background(), p))
	return p.Email
}

func (app *TestApp) login(t *testing.T, email string) string {
	t.Helper()

	status, resp := app.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, status, resp.Message)

	var session struct {
		Token string `json:"token"`
	}
	resp.decode(t, &session)
	require.NotEmpty(t, session.Token)
	return session.Token
}

func (app *TestApp) tokenFor(t *testing.T, role domain.Role, constituencyID *int64) string {
	t.Helper()
	return app.login(t, app.createProfile(t, role, constituencyID))
}

type ballotFixture struct {
	constituencyID int64
	candidateIDs   []int64
	adminToken     string
	ecToken        string
}

// createBallot sets up one open constituency with n candidates from
// distinct parties through the officer endpoints.
func (app *TestApp) createBallot(t *testing.T, province string, n int) ballotFixture {
	t.Helper()

	f := ballotFixture{
		adminToken: app.tokenFor(t, domain.RoleAdmin, nil),
		ecToken:    app.tokenFor(t, domain.RoleEC, nil),
	}

	status, resp := app.do(t, http.MethodPost, "/api/admin/constituencies", f.adminToken, map[string]any{
		"province":   province,
		"zoneNumber": 1,
	})
	require.Equal(t, http.StatusCreated, status, resp.Message)
	var c domain.Constituency
	resp.decode(t, &c)
	f.constituencyID = c.ID

	for i := 1; i <= n; i++ {
		status, resp = app.do(t, http.MethodPost, "/api/ec/parties", f.ecToken, map[string]any{
			"name": fmt.Sprintf("%s Party %d", province, i),
		})
		require.Equal(t, http.StatusCreated, status, resp.Message)
		var party domain.Party
		resp.decode(t, &party)

		status, resp = app.do(t, http.MethodPost, "/api/ec/candidates", f.ecToken, map[string]any{
			"firstName":       "Candidate",
			"lastName":        fmt.Sprint(i),
			"candidateNumber": i,
			"nationalId":      fmt.Sprintf("9%012d", c.ID*100+int64(i)),
			"partyId":         party.ID,
			"constituencyId":  c.ID,
		})
		require.Equal(t, http.StatusCreated, status, resp.Message)
		var cand domain.Candidate
		resp.decode(t, &cand)
		f.candidateIDs = append(f.candidateIDs, cand.ID)
	}
	return f
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}
