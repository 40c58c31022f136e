package rest

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

	"github.com/jhoicas/Tienda-Funkos-api/internal/domain"
	"github.com/jhoicas/Tienda-Funkos-api/pkg/config"
	"github.com/jhoicas/Tienda-Funkos-api/pkg/logger"
)

const maxResponseBytes = 4 << 20

// Client cliente HTTP del backend de la tienda (catálogo y cuentas).
// Un fallo de red se reporta como domain.ErrUnavailable; una respuesta >= 400
// como *domain.BackendError con el mensaje que envió el backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente. Un timeout 0 usa 10 s.
func NewClient(cfg config.BackendConfig, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.Component("backend"),
	}
}

// backendMessage cuerpo de error habitual del backend.
type backendMessage struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Detail  string `json:"detail"`
}

// do ejecuta la petición y devuelve el cuerpo de una respuesta 2xx.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("backend: crear request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("backend no disponible")
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: leer respuesta: %v", domain.ErrUnavailable, err)
	}
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("backend")

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &domain.BackendError{Status: resp.StatusCode, Message: errorMessage(raw, resp.StatusCode)}
	}
	return raw, nil
}

func errorMessage(raw []byte, status int) string {
	var m backendMessage
	if json.Unmarshal(raw, &m) == nil {
		for _, s := range []string{m.Message, m.Error, m.Detail} {
			if s != "" {
				return s
			}
		}
	}
	return fmt.Sprintf("el backend respondió %d", status)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	raw, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	return decode(raw, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("backend: serializar request: %w", err)
	}
	raw, err := c.do(ctx, method, path, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	return decode(raw, out)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	raw, err := c.do(ctx, http.MethodPost, path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	return decode(raw, out)
}

// postMultipart envía los campos como multipart/form-data (los formularios con imagen del backend).
func (c *Client) postMultipart(ctx context.Context, path string, fields [][2]string, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return fmt.Errorf("backend: armar formulario: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("backend: armar formulario: %w", err)
	}
	raw, err := c.do(ctx, http.MethodPost, path, w.FormDataContentType(), &buf)
	if err != nil {
		return err
	}
	return decode(raw, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, "", nil)
	return err
}

// decode interpreta el cuerpo JSON. out nil o cuerpo vacío no decodifican nada.
func decode(raw []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("backend: respuesta inválida: %w", err)
	}
	return nil
}
