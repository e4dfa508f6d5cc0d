package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"vidar/internal/http/middleware"
	"vidar/internal/model"
	"vidar/internal/normalize"
	"vidar/internal/service"
	serviceMocks "vidar/internal/service/mocks"
	"vidar/internal/site"
)

const testKey = "test-secret"

type testEnv struct {
	app       *fiber.App
	donors    *memRepo[model.Donor]
	types     *memRepo[model.DonationType]
	centers   *memRepo[model.Center]
	donations *memRepo[model.Donation]
	contact   *memRepo[model.ContactMessage]
	news      *memRepo[model.NewsItem]
	users     *memUsers
	upload    *serviceMocks.MockUploadService
	db        *stubPinger
}

func (e *testEnv) counts() map[string]int {
	return map[string]int{
		model.CollectionDonors:        e.donors.count(),
		model.CollectionDonationTypes: e.types.count(),
		model.CollectionCenters:       e.centers.count(),
		model.CollectionDonations:     e.donations.count(),
		model.CollectionContact:       e.contact.count(),
		model.CollectionNews:          e.news.count(),
	}
}

func newTestEnv(t *testing.T, mutate ...func(*Options)) *testEnv {
	t.Helper()
	e := &testEnv{
		donors:    newMemRepo[model.Donor](),
		types:     newMemRepo[model.DonationType](),
		centers:   newMemRepo[model.Center](),
		donations: newMemRepo[model.Donation](),
		contact:   newMemRepo[model.ContactMessage](),
		news:      newMemRepo[model.NewsItem](),
		users:     newMemUsers(),
		upload:    new(serviceMocks.MockUploadService),
		db:        &stubPinger{},
	}

	svc := Services{
		Donors:        service.NewResourceService[model.Donor](model.CollectionDonors, e.donors, normalize.Func[model.Donor](normalize.Donor)),
		DonationTypes: service.NewResourceService[model.DonationType](model.CollectionDonationTypes, e.types, normalize.Func[model.DonationType](normalize.DonationType)),
		Centers:       service.NewResourceService[model.Center](model.CollectionCenters, e.centers, normalize.Func[model.Center](normalize.Center)),
		Donations:     service.NewResourceService[model.Donation](model.CollectionDonations, e.donations, normalize.Func[model.Donation](normalize.Donation)),
		Contact:       service.NewResourceService[model.ContactMessage](model.CollectionContact, e.contact, normalize.ContactNormalizer{}),
		News:          service.NewResourceService[model.NewsItem](model.CollectionNews, e.news, normalize.NewsNormalizer{}),
		Auth:          service.NewAuthService(e.users),
		Upload:        e.upload,
	}
	svc.Site = site.NewService(svc.News, svc.Centers, svc.DonationTypes)

	opts := Options{APIKey: testKey, DB: e.db, Metrics: prometheus.NewRegistry()}
	for _, m := range mutate {
		m(&opts)
	}

	e.app = fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zerolog.Nop())})
	e.app.Use(middleware.RequestID())
	RegisterRoutes(e.app, svc, opts)
	return e
}

func (e *testEnv) do(t *testing.T, method, path, body string, withKey bool) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if withKey {
		req.Header.Set(middleware.APIKeyHeader, testKey)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

type resourceCase struct {
	name     string
	valid    string
	invalid  string
	field    string
	expected any
}

func resourceCases() []resourceCase {
	id1, id2, id3 := bson.NewObjectID().Hex(), bson.NewObjectID().Hex(), bson.NewObjectID().Hex()
	return []resourceCase{
		{model.CollectionDonors, `{"nombre":"  Ana ","email":" ana@example.com ","telefono":"  "}`, `{"nombre":"Ana"}`, "nombre", "Ana"},
		{model.CollectionDonationTypes, `{"nombre":" Sangre "}`, `{"nombre":"   "}`, "nombre", "Sangre"},
		{model.CollectionCenters, `{"nombre":" Hospital Central "}`, `{"direccion":"Calle 1"}`, "nombre", "Hospital Central"},
		{model.CollectionDonations, `{"id_donante":"` + id1 + `","id_tipo":"` + id2 + `","id_centro":" ` + id3 + ` "}`, `{"id_donante":"` + id1 + `","id_tipo":"` + id2 + `"}`, "estado", model.DefaultDonationStatus},
		{model.CollectionContact, `{"nombre":" Eva ","email":"eva@example.com","mensaje":" hola "}`, `{"email":"eva@example.com"}`, "mensaje", "hola"},
		{model.CollectionNews, `{"titulo":" Campaña ","contenido":" Texto "}`, `{"titulo":"Campaña","contenido":""}`, "titulo", "Campaña"},
	}
}

func TestResourceCreateAndList(t *testing.T) {
	for _, tc := range resourceCases() {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEnv(t)
			path := "/api/" + tc.name

			resp, body := e.do(t, http.MethodPost, path, tc.valid, true)
			require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
			created := decode[map[string]any](t, body)
			assert.NotEmpty(t, created["_id"])
			assert.Equal(t, tc.expected, created[tc.field])

			resp, body = e.do(t, http.MethodGet, path, "", true)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			list := decode[[]map[string]any](t, body)
			require.Len(t, list, 1)
			assert.Equal(t, created["_id"], list[0]["_id"])
			assert.Equal(t, tc.expected, list[0][tc.field])
		})
	}
}

func TestResourceCreateMissingRequired(t *testing.T) {
	for _, tc := range resourceCases() {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEnv(t)
			before := e.counts()

			resp, body := e.do(t, http.MethodPost, "/api/"+tc.name, tc.invalid, true)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			payload := decode[errorPayload](t, body)
			assert.Contains(t, payload.Error, "missing required fields")
			assert.Equal(t, before, e.counts())
		})
	}
}

func TestResourceListEmptyAndOrder(t *testing.T) {
	e := newTestEnv(t)

	_, body := e.do(t, http.MethodGet, "/api/tipos_donacion", "", true)
	assert.JSONEq(t, `[]`, string(body))

	e.do(t, http.MethodPost, "/api/tipos_donacion", `{"nombre":"Primero"}`, true)
	e.do(t, http.MethodPost, "/api/tipos_donacion", `{"nombre":"Segundo"}`, true)

	_, body = e.do(t, http.MethodGet, "/api/tipos_donacion", "", true)
	list := decode[[]model.DonationType](t, body)
	require.Len(t, list, 2)
	assert.Equal(t, "Segundo", list[0].Nombre)
	assert.Equal(t, "Primero", list[1].Nombre)
}

func TestResourceUpdate(t *testing.T) {
	e := newTestEnv(t)
	_, body := e.do(t, http.MethodPost, "/api/centros", `{"nombre":"Viejo","direccion":"Calle 1"}`, true)
	created := decode[model.Center](t, body)

	t.Run("replaces normalized fields", func(t *testing.T) {
		resp, body := e.do(t, http.MethodPut, "/api/centros/"+created.ID.Hex(), `{"nombre":" Nuevo "}`, true)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		updated := decode[map[string]any](t, body)
		assert.Equal(t, created.ID.Hex(), updated["_id"])
		assert.Equal(t, "Nuevo", updated["nombre"])
		assert.Nil(t, updated["direccion"])
	})

	t.Run("unknown id is 404 without mutation", func(t *testing.T) {
		resp, _ := e.do(t, http.MethodPut, "/api/centros/"+bson.NewObjectID().Hex(), `{"nombre":"X"}`, true)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		_, body := e.do(t, http.MethodGet, "/api/centros", "", true)
		list := decode[[]model.Center](t, body)
		require.Len(t, list, 1)
		assert.Equal(t, "Nuevo", list[0].Nombre)
	})

	t.Run("malformed id", func(t *testing.T) {
		resp, body := e.do(t, http.MethodPut, "/api/centros/abc", `{"nombre":"X"}`, true)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decode[errorPayload](t, body).Code)
	})

	t.Run("validation failure", func(t *testing.T) {
		resp, _ := e.do(t, http.MethodPut, "/api/centros/"+created.ID.Hex(), `{"nombre":""}`, true)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid json", func(t *testing.T) {
		resp, body := e.do(t, http.MethodPut, "/api/centros/"+created.ID.Hex(), `{"nombre":`, true)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "invalid JSON body", decode[errorPayload](t, body).Error)
	})
}

func TestResourceDelete(t *testing.T) {
	e := newTestEnv(t)
	_, b1 := e.do(t, http.MethodPost, "/api/donantes", `{"nombre":"A","email":"a@example.com"}`, true)
	_, b2 := e.do(t, http.MethodPost, "/api/donantes", `{"nombre":"B","email":"b@example.com"}`, true)
	first := decode[model.Donor](t, b1)
	second := decode[model.Donor](t, b2)

	resp, _ := e.do(t, http.MethodDelete, "/api/donantes/"+bson.NewObjectID().Hex(), "", true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, 2, e.donors.count())

	resp, _ = e.do(t, http.MethodDelete, "/api/donantes/nope", "", true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := e.do(t, http.MethodDelete, "/api/donantes/"+first.ID.Hex(), "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(body))

	_, body = e.do(t, http.MethodGet, "/api/donantes", "", true)
	list := decode[[]model.Donor](t, body)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)
}

func TestCenterCoordinates(t *testing.T) {
	e := newTestEnv(t)

	_, body := e.do(t, http.MethodPost, "/api/centros", `{"nombre":"Con mapa","lat":"40.4","lon":-3.7}`, true)
	withCoords := decode[map[string]any](t, body)
	assert.Equal(t, map[string]any{"lat": 40.4, "lon": -3.7}, withCoords["coordenadas"])
	assert.Equal(t, []any{}, withCoords["tipos_disponibles"])

	_, body = e.do(t, http.MethodPost, "/api/centros", `{"nombre":"Sin mapa"}`, true)
	without := decode[map[string]any](t, body)
	v, ok := without["coordenadas"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestDonationMalformedReference(t *testing.T) {
	e := newTestEnv(t)
	body := `{"id_donante":"` + bson.NewObjectID().Hex() + `","id_tipo":"` + bson.NewObjectID().Hex() + `","id_centro":"abc"}`

	resp, b := e.do(t, http.MethodPost, "/api/donaciones_realizadas", body, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[errorPayload](t, b).Error, "id_centro")
	assert.Zero(t, e.donations.count())
}

func TestUnencodableDatesRejected(t *testing.T) {
	tests := []struct {
		name, path, body, field string
	}{
		{"epoch millis past year 9999", "/api/donantes", `{"nombre":"Ana","email":"a@b.c","fecha_nacimiento":1e15}`, "fecha_nacimiento"},
		{"offset pushes year past 9999", "/api/noticias", `{"titulo":"t","contenido":"c","fecha":"9999-12-31T23:00:00-05:00"}`, "fecha"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			before := e.counts()

			resp, b := e.do(t, http.MethodPost, tt.path, tt.body, true)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(b))
			assert.Contains(t, decode[errorPayload](t, b).Error, tt.field)
			assert.Equal(t, before, e.counts())

			resp, _ = e.do(t, http.MethodGet, tt.path, "", true)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

func TestAuthFlow(t *testing.T) {
	e := newTestEnv(t)

	resp, body := e.do(t, http.MethodPost, "/api/auth/register", `{"username":"carla","password":"pw1"}`, false)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.NotEmpty(t, decode[map[string]any](t, body)["message"])

	resp, body = e.do(t, http.MethodPost, "/api/auth/register", `{"username":"carla","password":"other"}`, false)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "USER_EXISTS", decode[errorPayload](t, body).Code)
	assert.Equal(t, 1, e.users.count())

	resp, _ = e.do(t, http.MethodPost, "/api/auth/register", `{"username":"carla"}`, false)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = e.do(t, http.MethodPost, "/api/auth/register", `{"username":"adminRoja","password":"pw2"}`, false)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	tests := []struct {
		name     string
		body     string
		status   int
		wantRole string
	}{
		{"wrong password", `{"username":"carla","password":"bad"}`, http.StatusUnauthorized, ""},
		{"unknown user", `{"username":"nadie","password":"pw"}`, http.StatusBadRequest, ""},
		{"missing fields", `{}`, http.StatusBadRequest, ""},
		{"user role", `{"username":"carla","password":"pw1"}`, http.StatusOK, model.RoleUser},
		{"admin role", `{"username":"adminRoja","password":"pw2"}`, http.StatusOK, model.RoleAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := e.do(t, http.MethodPost, "/api/auth/login", tt.body, false)
			require.Equal(t, tt.status, resp.StatusCode, string(body))
			if tt.wantRole == "" {
				return
			}
			var res struct {
				Message string           `json:"message"`
				User    model.PublicUser `json:"user"`
			}
			require.NoError(t, json.Unmarshal(body, &res))
			assert.NotEmpty(t, res.Message)
			assert.NotEmpty(t, res.User.ID)
			assert.Equal(t, tt.wantRole, res.User.Role)
			assert.NotContains(t, string(body), "hash")
			assert.NotContains(t, string(body), "salt")
		})
	}

	resp, body = e.do(t, http.MethodPost, "/api/auth/logout", "", false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestAuthRateLimit(t *testing.T) {
	store := middleware.NewLimiterStore(1, 1, time.Hour)
	t.Cleanup(store.Stop)
	e := newTestEnv(t, func(o *Options) { o.AuthLimiter = store })

	resp, _ := e.do(t, http.MethodPost, "/api/auth/login", `{}`, false)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = e.do(t, http.MethodPost, "/api/auth/login", `{}`, false)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestAccessGuard(t *testing.T) {
	e := newTestEnv(t)
	e.do(t, http.MethodPost, "/api/donantes", `{"nombre":"Ana","email":"ana@example.com"}`, true)

	resp, body := e.do(t, http.MethodGet, "/api/donantes", "", false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.NotContains(t, string(body), "Ana")
	assert.Equal(t, "unauthorized", decode[errorPayload](t, body).Error)

	resp, _ = e.do(t, http.MethodGet, "/api/noticias", "", false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = e.do(t, http.MethodPost, "/api/noticias", `{"titulo":"x","contenido":"y"}`, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, e.news.count())

	resp, _ = e.do(t, http.MethodPost, "/api/contacto", `{"nombre":"Eva","email":"eva@example.com"}`, false)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func multipartBody(t *testing.T, field, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if field != "" {
		h := make(map[string][]string)
		h["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + filename + `"`}
		h["Content-Type"] = []string{contentType}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestUpload(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		svcURL   string
		svcErr   error
		status   int
		wantCode string
	}{
		{name: "success", field: "file", svcURL: "https://cdn.example.com/images/1-logo.png", status: http.StatusOK},
		{name: "no file", field: "", status: http.StatusBadRequest, wantCode: "FILE_REQUIRED"},
		{name: "bad type", field: "file", svcErr: service.ErrUnsupportedType, status: http.StatusBadRequest, wantCode: "UNSUPPORTED_TYPE"},
		{name: "too large", field: "file", svcErr: service.ErrFileTooLarge, status: http.StatusRequestEntityTooLarge, wantCode: "FILE_TOO_LARGE"},
		{name: "storage failure", field: "file", svcErr: errors.New("minio down"), status: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			if tt.field != "" {
				e.upload.On("Upload", mock.Anything, mock.MatchedBy(func(f service.UploadFile) bool {
					return f.Name == "logo.png" && f.ContentType == "image/png" && f.Size == 4
				})).Return(tt.svcURL, tt.svcErr).Once()
			}

			body, ct := multipartBody(t, tt.field, "logo.png", "image/png", []byte("png!"))
			req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
			req.Header.Set("Content-Type", ct)
			req.Header.Set(middleware.APIKeyHeader, testKey)
			resp, err := e.app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			b, _ := io.ReadAll(resp.Body)
			if tt.wantCode != "" {
				payload := decode[errorPayload](t, b)
				assert.Equal(t, tt.wantCode, payload.Code)
				assert.NotContains(t, payload.Error, "minio")
			} else {
				assert.JSONEq(t, `{"url":"`+tt.svcURL+`"}`, string(b))
			}
			e.upload.AssertExpectations(t)
		})
	}
}

func TestHealthCheck(t *testing.T) {
	e := newTestEnv(t)

	resp, body := e.do(t, http.MethodGet, "/health", "", false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"healthy"}`, string(body))

	e.db.err = errors.New("db error")
	resp, body = e.do(t, http.MethodGet, "/health", "", false)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "SERVICE_UNAVAILABLE", decode[errorPayload](t, body).Code)
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	e := newTestEnv(t)
	resp, _ := e.do(t, http.MethodGet, "/metrics", "", false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSiteRoutes(t *testing.T) {
	e := newTestEnv(t)

	_, body := e.do(t, http.MethodGet, "/site/noticias", "", false)
	news := decode[site.NewsView](t, body)
	assert.Equal(t, site.NoNewsText, news.Message)

	_, body = e.do(t, http.MethodPost, "/api/tipos_donacion", `{"nombre":"Médula"}`, true)
	kind := decode[model.DonationType](t, body)
	e.do(t, http.MethodPost, "/api/centros", `{"nombre":"Hospital","lat":40.4,"lon":-3.7,"tipos_disponibles":"`+kind.ID.Hex()+`"}`, true)
	e.do(t, http.MethodPost, "/api/centros", `{"nombre":"Ambulatorio"}`, true)

	_, body = e.do(t, http.MethodGet, "/site/centros?tipo="+kind.ID.Hex(), "", false)
	view := decode[site.MapView](t, body)
	require.Len(t, view.Cards, 1)
	assert.Equal(t, "Hospital", view.Cards[0].Name)
	require.Len(t, view.Markers, 1)
	assert.Equal(t, site.IconMarrow, view.Markers[0].Icons[0].Icon)

	_, body = e.do(t, http.MethodGet, "/site/centros", "", false)
	view = decode[site.MapView](t, body)
	assert.Len(t, view.Cards, 2)
}

func TestStaticPages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, siteDir), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, adminDir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, siteDir, "index.html"), []byte("public site"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, adminDir, "index.html"), []byte("admin panel"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, adminDir, "app.js"), []byte("console.log(1)"), 0o644))

	e := newTestEnv(t, func(o *Options) { o.PublicDir = dir })

	_, body := e.do(t, http.MethodGet, "/", "", false)
	assert.Equal(t, "public site", string(body))
	_, body = e.do(t, http.MethodGet, "/admin", "", false)
	assert.Equal(t, "admin panel", string(body))
	resp, body := e.do(t, http.MethodGet, "/app.js", "", false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "console.log(1)", string(body))
}

func TestRouting(t *testing.T) {
	e := newTestEnv(t)

	t.Run("not found route", func(t *testing.T) {
		resp, body := e.do(t, http.MethodGet, "/non-existent", "", false)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		payload := decode[errorPayload](t, body)
		assert.Equal(t, "NOT_FOUND", payload.Code)
		assert.Equal(t, resp.Header.Get(middleware.RequestIDHeader), payload.RequestID)
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp, body := e.do(t, http.MethodPost, "/health", "", false)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decode[errorPayload](t, body).Code)
	})
}

func TestDecodeRaw(t *testing.T) {
	raw, err := decodeRaw(nil)
	require.NoError(t, err)
	assert.Empty(t, raw)

	raw, err = decodeRaw([]byte(`null`))
	require.NoError(t, err)
	assert.NotNil(t, raw)

	raw, err = decodeRaw([]byte(`{"lat":40.40}`))
	require.NoError(t, err)
	assert.Equal(t, json.Number("40.40"), raw["lat"])

	_, err = decodeRaw([]byte(`[1,2]`))
	var verr *normalize.ValidationError
	assert.ErrorAs(t, err, &verr)
}
