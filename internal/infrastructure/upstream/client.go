// Package upstream implementa los clientes HTTP de las tres APIs que consume
// el cliente de administración: auth, inventario y requisiciones. Todas las
// llamadas autenticadas llevan el bearer token en la cabecera propia "token"
// (el backend no usa el esquema Authorization estándar).
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/scheduler-admin/internal/application/dto"
	"github.com/jhoicas/scheduler-admin/internal/domain"
	"github.com/jhoicas/scheduler-admin/pkg/logger"
)

// TokenHeader cabecera propia que transporta el bearer token upstream.
const TokenHeader = "token"

// Client base HTTP compartido por los tres clientes tipados.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente base sobre una URL base (con "/" final).
func NewClient(baseURL string, log *logger.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

// endpoint resuelve path + query contra la URL base.
func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// doJSON ejecuta una petición con cuerpo JSON (o sin cuerpo) y decodifica la
// respuesta 2xx en out (si out no es nil).
func (c *Client) doJSON(ctx context.Context, method, path, token string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("upstream: serializar cuerpo: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return fmt.Errorf("upstream: construir petición: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, token, out)
}

// doForm ejecuta una petición x-www-form-urlencoded. Algunos endpoints del
// backend de auth (users/delete, roles/assign) solo aceptan este formato.
func (c *Client) doForm(ctx context.Context, method, path, token string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, nil), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("upstream: construir petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.send(req, token, out)
}

// doMultipart ejecuta una petición multipart/form-data con campos de texto y
// un archivo opcional (subida de foto de perfil).
func (c *Client) doMultipart(ctx context.Context, method, path, token string, fields map[string]string, fileField, fileName string, file []byte, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("upstream: campo multipart %s: %w", k, err)
		}
	}
	if file != nil {
		part, err := w.CreateFormFile(fileField, fileName)
		if err != nil {
			return fmt.Errorf("upstream: archivo multipart: %w", err)
		}
		if _, err := part.Write(file); err != nil {
			return fmt.Errorf("upstream: escribir archivo multipart: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("upstream: cerrar multipart: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, nil), &buf)
	if err != nil {
		return fmt.Errorf("upstream: construir petición: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.send(req, token, out)
}

func (c *Client) send(req *http.Request, token string, out any) error {
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrUnavailable, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFrom(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("upstream: decodificar respuesta de %s: %w", req.URL.Path, err)
	}
	return nil
}

// errorFrom mapea una respuesta no-2xx. 401 y 403 se señalizan además como
// domain.ErrUnauthorized para que el interceptor central cierre la sesión.
func (c *Client) errorFrom(resp *http.Response) error {
	var body dto.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body) // un cuerpo no parseable deja Message vacío

	ue := &domain.UpstreamError{Status: resp.StatusCode, Message: body.Message}
	c.log.Debug().
		Int("status", resp.StatusCode).
		Str("path", resp.Request.URL.Path).
		Str("message", body.Message).
		Msg("respuesta de error upstream")

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: %w", domain.ErrUnauthorized, ue)
	}
	return ue
}
