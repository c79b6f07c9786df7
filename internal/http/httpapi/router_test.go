package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sismo/internal/adapter/memstore"
	"sismo/internal/domain"
	"sismo/internal/http/handlers"
	"sismo/internal/infra"
	"sismo/internal/middleware"
	"sismo/internal/providers/chat"
	"sismo/internal/providers/usgs"
	"sismo/internal/service"
)

const ownerID = "owner"

type stubFeed struct {
	recent  []usgs.Feature
	near    []usgs.Feature
	nearErr error
}

func (f *stubFeed) FetchRecent(context.Context, float64, int) []usgs.Feature {
	return f.recent
}

func (f *stubFeed) FetchNearLocation(context.Context, float64, float64, float64, float64, int) ([]usgs.Feature, error) {
	return f.near, f.nearErr
}

type echoAssistant struct{}

func (echoAssistant) Reply(_ context.Context, req chat.Request) (string, error) {
	return "eco: " + req.Message, nil
}

type testEnv struct {
	router        http.Handler
	events        *memstore.EarthquakeStore
	reports       *memstore.ReportStore
	campaigns     *memstore.CampaignStore
	notifications *memstore.NotificationStore
}

func newTestEnv(t *testing.T, feed service.Feed) *testEnv {
	t.Helper()
	logger := zerolog.Nop()

	env := &testEnv{
		events:        memstore.NewEarthquakeStore(),
		reports:       memstore.NewReportStore(),
		campaigns:     memstore.NewCampaignStore(),
		notifications: memstore.NewNotificationStore(),
	}
	donations := memstore.NewDonationStore()
	notifier := service.NewNotificationService(env.notifications, ownerID, logger)

	app := handlers.NewApp()
	app.Logger = logger
	app.Sync = service.NewSyncService(feed, env.events, logger)
	app.Events = env.events
	app.Reports = service.NewReportService(env.reports, notifier, logger)
	app.Campaigns = service.NewCampaignService(env.campaigns)
	app.Donations = service.NewDonationService(donations, env.campaigns, notifier, logger)
	app.Notifications = notifier
	app.Chat = service.NewChatService(echoAssistant{}, env.events, env.reports, env.campaigns, 20, logger)

	cfg := &infra.Config{CORSOrigins: []string{"http://localhost:5173"}}
	env.router = NewRouter(app, RouterOptions{
		Config:   cfg,
		Logger:   logger,
		Resolver: &middleware.StaticResolver{OwnerID: ownerID},
	})
	return env
}

func (e *testEnv) do(t *testing.T, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, &stubFeed{})
	rec := env.do(t, http.MethodGet, "/v1/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestSyncThenListAndStats(t *testing.T) {
	mag1, mag2 := 4.5, 6.3
	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	feed := &stubFeed{recent: []usgs.Feature{
		{
			ID:         "us001",
			Properties: usgs.FeatureProperties{Mag: &mag1, Place: "30km S of Lima, Peru", Time: base.UnixMilli()},
			Geometry:   usgs.FeatureGeometry{Coordinates: []float64{-76.9, -12.2, 42.0}},
		},
		{
			ID:         "us002",
			Properties: usgs.FeatureProperties{Mag: &mag2, Place: "offshore Valparaiso, Chile", Time: base.Add(time.Hour).UnixMilli()},
			Geometry:   usgs.FeatureGeometry{Coordinates: []float64{-71.8, -33.0, 20.0}},
		},
	}}
	env := newTestEnv(t, feed)

	rec := env.do(t, http.MethodPost, "/v1/earthquakes/sync", ownerID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.EqualValues(t, 2, body["total"])
	assert.EqualValues(t, 2, body["inserted"])

	rec = env.do(t, http.MethodGet, "/v1/earthquakes", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decodeBody(t, rec)["items"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	// Stored latitude comes from the second coordinate of the triplet.
	assert.Equal(t, "-33", first["latitude"])
	assert.Equal(t, "-71.8", first["longitude"])

	rec = env.do(t, http.MethodGet, "/v1/earthquakes/stats", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeBody(t, rec)
	assert.EqualValues(t, 2, stats["total"])
	assert.EqualValues(t, 1, stats["significant"])
	assert.EqualValues(t, 1, stats["strong"])
}

func TestEarthquakesListByTimeWindow(t *testing.T) {
	env := newTestEnv(t, &stubFeed{})
	base := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"us001", "us002", "us003"} {
		require.NoError(t, env.events.Upsert(context.Background(), &domain.Earthquake{
			ID: id, Magnitude: "4.0", Time: base.AddDate(0, 0, i),
		}))
	}

	path := "/v1/earthquakes?start=" + base.Format(time.RFC3339) + "&end=" + base.AddDate(0, 0, 1).Format(time.RFC3339)
	rec := env.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["items"].([]any), 2)

	rec = env.do(t, http.MethodGet, "/v1/earthquakes?start=notatime&end="+base.Format(time.RFC3339), "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEarthquakesGetUnknownID(t *testing.T) {
	env := newTestEnv(t, &stubFeed{})
	rec := env.do(t, http.MethodGet, "/v1/earthquakes/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEarthquakesNearRequiresCoordinates(t *testing.T) {
	env := newTestEnv(t, &stubFeed{})
	rec := env.do(t, http.MethodGet, "/v1/earthquakes/near?longitude=-70.1", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEarthquakesNearUpstreamFailure(t *testing.T) {
	env := newTestEnv(t, &stubFeed{nearErr: errors.New("catalog down")})
	rec := env.do(t, http.MethodGet, "/v1/earthquakes/near?latitude=-12.0&longitude=-77.0", "", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestReportCreateRejectsMissingLocation(t *testing.T) {
	env := newTestEnv(t, &stubFeed{})
	rec := env.do(t, http.MethodPost, "/v1/reports", "ana", map[string]any{
		"report_type": "damage",
		"severity":    "high",
		"description": "pared agrietada",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	stored, err := env.reports.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestReportCreateNotifiesOwnerAndListsMine(t *testing.T) {
	env := newTestEnv(t, &stubFeed{})
	rec := env.do(t, http.MethodPost, "/v1/reports", "ana", map[string]any{
		"report_type": "infrastructure",
		"severity":    "critical",
		"description": "puente colapsado en la ruta 5",
		"location":    "Valparaíso, Chile",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody(t, rec)
	assert.Equal(t, "pending", created["status"])
	assert.Equal(t, "ana", created["user_id"])

	rec = env.do(t, http.MethodGet, "/v1/reports/mine", "ana", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["items"].([]any), 1)

	rec = env.do(t, http.MethodGet, "/v1/reports/mine", "other", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody(t, rec)["items"])

	rec = env.do(t, http.MethodGet, "/v1/notifications", ownerID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Len(t, body["items"].([]any), 1)
	assert.EqualValues(t, 1, body["unread"])
}

func TestReportStatusUpdateRequiresAdmin(t *testing.T) {
	env := newTestEnv(t, &stubFeed{})
	rec := env.do(t, http.MethodPost, "/v1/reports", "ana", map[string]any{
		"report_type": "damage",
		"severity":    "low",
		"description": "grietas menores",
		"location":    "Quito, Ecuador",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeBody(t, rec)["id"].(string)

	rec = env.do(t, http.MethodPatch, "/v1/reports/"+id+"/status", "ana", map[string]any{"status": "verified"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPatch, "/v1/reports/"+id+"/status", ownerID, map[string]any{"status": "verified"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/v1/reports/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "verified", decodeBody(t, rec)["status"])
}

func TestCampaignCreateRequiresAdmin(t *testing.T) {
	env := newTestEnv(t, &stubFeed{})
	payload := map[string]any{
		"title":         "Ayuda para Lima",
		"description":   "Reconstrucción de viviendas",
		"target_amount": "5000",
	}
	rec := env.do(t, http.MethodPost, "/v1/campaigns", "ana", payload)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/v1/campaigns", ownerID, payload)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody(t, rec)
	assert.Equal(t, "active", created["status"])
	assert.Equal(t, "0", created["current_amount"])
}

func createCampaign(t *testing.T, env *testEnv, target string) string {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/v1/campaigns", ownerID, map[string]any{
		"title":         "Campaña de prueba",
		"description":   "Fondo de emergencia",
		"target_amount": target,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeBody(t, rec)["id"].(string)
}

func TestDonationAccumulatesIntoCampaign(t *testing.T) {
	env := newTestEnv(t, &stubFeed{})
	id := createCampaign(t, env, "100.00")

	rec := env.do(t, http.MethodPost, "/v1/donations", "ana", map[string]any{
		"campaign_id": id,
		"amount":      "25.00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/v1/donations", "", map[string]any{
		"campaign_id":  id,
		"amount":       "10.50",
		"is_anonymous": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	anon := decodeBody(t, rec)
	assert.Nil(t, anon["donor_id"])
	assert.Nil(t, anon["donor_name"])

	rec = env.do(t, http.MethodGet, "/v1/campaigns/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "35.5", decodeBody(t, rec)["current_amount"])

	rec = env.do(t, http.MethodGet, "/v1/campaigns/"+id+"/donations", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["items"].([]any), 2)
}

func TestDonationRejectsNonPositiveAmount(t *testing.T) {
	env := newTestEnv(t, &stubFeed{})
	id := createCampaign(t, env, "100.00")

	for _, amount := range []string{"0", "-5", "abc"} {
		rec := env.do(t, http.MethodPost, "/v1/donations", "ana", map[string]any{
			"campaign_id": id,
			"amount":      amount,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "amount %q", amount)
	}

	rec := env.do(t, http.MethodGet, "/v1/campaigns/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", decodeBody(t, rec)["current_amount"])
}

func TestDonationUnknownCampaign(t *testing.T) {
	env := newTestEnv(t, &stubFeed{})
	rec := env.do(t, http.MethodPost, "/v1/donations", "ana", map[string]any{
		"campaign_id": "missing",
		"amount":      "10",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNotificationMarkReadIsIdempotent(t *testing.T) {
	env := newTestEnv(t, &stubFeed{})
	n := &domain.Notification{ID: "n1", UserID: "ana", Type: domain.NotifyEarthquake, Title: "Sismo", Message: "M5.1 cerca de Lima"}
	require.NoError(t, env.notifications.Create(context.Background(), n))

	for i := 0; i < 2; i++ {
		rec := env.do(t, http.MethodPost, "/v1/notifications/n1/read", "ana", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := env.do(t, http.MethodGet, "/v1/notifications", "ana", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, decodeBody(t, rec)["unread"])
}

func TestChatRepliesInSpanishContext(t *testing.T) {
	env := newTestEnv(t, &stubFeed{})
	rec := env.do(t, http.MethodPost, "/v1/chat", "ana", map[string]any{
		"message": "¿Hubo sismos hoy?",
		"conversation_history": []map[string]string{
			{"role": "user", "content": "hola"},
			{"role": "assistant", "content": "hola, ¿en qué puedo ayudarte?"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "eco: ¿Hubo sismos hoy?", decodeBody(t, rec)["response"])
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	env := newTestEnv(t, &stubFeed{})
	rec := env.do(t, http.MethodPost, "/v1/chat", "ana", map[string]any{"message": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
