package upstream

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/scheduler-admin/internal/application/dto"
	"github.com/jhoicas/scheduler-admin/internal/domain"
	"github.com/jhoicas/scheduler-admin/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

// capture guarda la última petición recibida por el servidor de prueba.
type capture struct {
	method string
	path   string
	query  url.Values
	header http.Header
	body   []byte
	hits   int
}

func newTestServer(t *testing.T, status int, response string, cap *capture) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cap.hits++
		cap.method = r.Method
		cap.path = r.URL.Path
		cap.query = r.URL.Query()
		cap.header = r.Header.Clone()
		cap.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests cliente base — cabecera token y mapeo de errores
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_EnviaElTokenEnCabeceraPropia(t *testing.T) {
	var cap capture
	srv := newTestServer(t, http.StatusOK, `{"roles":[]}`, &cap)
	defer srv.Close()

	c := NewAuthClient(srv.URL+"/", testLogger())
	_, err := c.Roles(context.Background(), "bearer-upstream")
	require.NoError(t, err)

	assert.Equal(t, "bearer-upstream", cap.header.Get(TokenHeader),
		"el backend espera el token en la cabecera 'token', no en Authorization")
	assert.Empty(t, cap.header.Get("Authorization"))
}

func TestClient_ErrorConCuerpoMessage(t *testing.T) {
	var cap capture
	srv := newTestServer(t, http.StatusBadRequest, `{"message":"quantidade inválida"}`, &cap)
	defer srv.Close()

	c := NewInventoryClient(srv.URL+"/", testLogger())
	err := c.CreateStock(context.Background(), "tok", dto.UpsertStockRequest{})
	require.Error(t, err)

	ue, ok := domain.AsUpstream(err)
	require.True(t, ok, "los no-2xx deben mapearse a UpstreamError")
	assert.Equal(t, http.StatusBadRequest, ue.Status)
	assert.Equal(t, "quantidade inválida", ue.Message)
}

func TestClient_401SeSenalizaComoNoAutorizado(t *testing.T) {
	var cap capture
	srv := newTestServer(t, http.StatusUnauthorized, `{"message":"token expirado"}`, &cap)
	defer srv.Close()

	c := NewAuthClient(srv.URL+"/", testLogger())
	_, err := c.Roles(context.Background(), "tok-caducado")

	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"401 debe activar el interceptor central de expiración")
}

func TestClient_ServidorInalcanzableEsUnavailable(t *testing.T) {
	c := NewAuthClient("http://127.0.0.1:1/", testLogger())
	_, err := c.Roles(context.Background(), "tok")

	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthClient — forma de las peticiones
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthClient_LoginSinTokenEsNoAutorizado(t *testing.T) {
	var cap capture
	srv := newTestServer(t, http.StatusOK, `{"token":"","user":{"id":"u1","username":"alice"}}`, &cap)
	defer srv.Close()

	c := NewAuthClient(srv.URL+"/", testLogger())
	_, err := c.Login(context.Background(), dto.LoginRequest{Username: "alice", Password: "x"})

	assert.ErrorIs(t, err, domain.ErrUnauthorized, "un 2xx sin token no autoriza nada")
}

func TestAuthClient_UsersEnviaRoleYSearchAunVacios(t *testing.T) {
	var cap capture
	srv := newTestServer(t, http.StatusOK, `{"users":[],"totalPages":1}`, &cap)
	defer srv.Close()

	c := NewAuthClient(srv.URL+"/", testLogger())
	_, _, err := c.Users(context.Background(), "tok", dto.PageQuery{Page: 2, Limit: 25}, "", "")
	require.NoError(t, err)

	assert.Equal(t, "2", cap.query.Get("page"))
	assert.Equal(t, "25", cap.query.Get("limit"))
	assert.True(t, cap.query.Has("role"), "role viaja siempre, vacío incluido")
	assert.True(t, cap.query.Has("search"), "search viaja siempre, vacío incluido")
}

func TestAuthClient_DeleteUserVaComoFormulario(t *testing.T) {
	var cap capture
	srv := newTestServer(t, http.StatusOK, `{}`, &cap)
	defer srv.Close()

	c := NewAuthClient(srv.URL+"/", testLogger())
	err := c.DeleteUser(context.Background(), "tok", dto.DeleteUserRequest{Username: "bob", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, cap.method)
	assert.Equal(t, "/users/delete", cap.path)
	assert.Contains(t, cap.header.Get("Content-Type"), "application/x-www-form-urlencoded")

	form, err := url.ParseQuery(string(cap.body))
	require.NoError(t, err)
	assert.Equal(t, "bob", form.Get("username"))
	assert.Equal(t, "pw", form.Get("password"))
}

func TestAuthClient_UpdateUserConFotoVaComoMultipart(t *testing.T) {
	var cap capture
	srv := newTestServer(t, http.StatusOK, `{}`, &cap)
	defer srv.Close()

	c := NewAuthClient(srv.URL+"/", testLogger())
	err := c.UpdateUser(context.Background(), "tok", "u1", dto.UpdateUserRequest{
		Email:       "a@b.pt",
		Picture:     []byte{1, 2, 3},
		PictureName: "foto.png",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, cap.method)
	assert.Equal(t, "/users/u1", cap.path)
	assert.Contains(t, cap.header.Get("Content-Type"), "multipart/form-data")
}

func TestAuthClient_UpdateUserSinFotoVaComoJSON(t *testing.T) {
	var cap capture
	srv := newTestServer(t, http.StatusOK, `{}`, &cap)
	defer srv.Close()

	c := NewAuthClient(srv.URL+"/", testLogger())
	err := c.UpdateUser(context.Background(), "tok", "u1", dto.UpdateUserRequest{Email: "a@b.pt"})
	require.NoError(t, err)

	assert.Contains(t, cap.header.Get("Content-Type"), "application/json")
}

func TestAuthClient_ProfilePictureDecodificaElBuffer(t *testing.T) {
	var cap capture
	srv := newTestServer(t, http.StatusOK, `{"data":{"type":"Buffer","data":[137,80,78,71]}}`, &cap)
	defer srv.Close()

	c := NewAuthClient(srv.URL+"/", testLogger())
	pic, err := c.ProfilePicture(context.Background(), "tok", "u1")
	require.NoError(t, err)

	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, pic)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequisitionClient — tri-estado del filtro approved
// ──────────────────────────────────────────────────────────────────────────────

func TestRequisitionClient_ApprovedNilOmiteElParametro(t *testing.T) {
	var cap capture
	srv := newTestServer(t, http.StatusOK, `{"data":[],"totalPages":1}`, &cap)
	defer srv.Close()

	c := NewRequisitionClient(srv.URL+"/", testLogger())
	_, _, err := c.Requisitions(context.Background(), "tok", dto.PageQuery{Page: 1, Limit: 10}, "", nil)
	require.NoError(t, err)

	assert.False(t, cap.query.Has("approved"), "sin filtro el parámetro no debe viajar")
}

func TestRequisitionClient_ApprovedVacioViajaVacio(t *testing.T) {
	var cap capture
	srv := newTestServer(t, http.StatusOK, `{"data":[],"totalPages":1}`, &cap)
	defer srv.Close()

	pending := ApprovedPending
	c := NewRequisitionClient(srv.URL+"/", testLogger())
	_, _, err := c.Requisitions(context.Background(), "tok", dto.PageQuery{Page: 1, Limit: 10}, "", &pending)
	require.NoError(t, err)

	// El backend distingue approved= (pendientes) de la ausencia (todas).
	assert.True(t, cap.query.Has("approved"))
	assert.Equal(t, "", cap.query.Get("approved"))
}

func TestRequisitionClient_ApprovedTrueFalse(t *testing.T) {
	for _, v := range []string{ApprovedYes, ApprovedNo} {
		var cap capture
		srv := newTestServer(t, http.StatusOK, `{"data":[],"totalPages":1}`, &cap)

		val := v
		c := NewRequisitionClient(srv.URL+"/", testLogger())
		_, _, err := c.Requisitions(context.Background(), "tok", dto.PageQuery{Page: 1, Limit: 10}, "", &val)
		require.NoError(t, err)
		assert.Equal(t, v, cap.query.Get("approved"))

		srv.Close()
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests InventoryClient
// ──────────────────────────────────────────────────────────────────────────────

func TestInventoryClient_ProductsOmiteParametrosVacios(t *testing.T) {
	var cap capture
	srv := newTestServer(t, http.StatusOK, `{"data":[],"totalPages":1}`, &cap)
	defer srv.Close()

	c := NewInventoryClient(srv.URL+"/", testLogger())
	_, _, err := c.Products(context.Background(), "tok", dto.PageQuery{Page: 1, Limit: 10}, "", "")
	require.NoError(t, err)

	assert.False(t, cap.query.Has("search"))
	assert.False(t, cap.query.Has("product_type_id"))
}

func TestInventoryClient_DeleteStockVaPorPatch(t *testing.T) {
	var cap capture
	srv := newTestServer(t, http.StatusOK, `{}`, &cap)
	defer srv.Close()

	c := NewInventoryClient(srv.URL+"/", testLogger())
	err := c.DeleteStock(context.Background(), "tok", dto.DeleteStockRequest{ProductID: "p1", WarehouseID: "w1"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, cap.method)
	assert.Equal(t, "/stocks/delete", cap.path)
}
