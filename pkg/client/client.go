// Package client - типизированный клиент HTTP API ElkaRec.
//
// Клиент не хранит состояние сессии: Login и Register возвращают Session,
// которую вызывающий передаёт в каждый защищённый метод.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"elkarec/internal/dto"
	"elkarec/pkg/constants"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New принимает адрес сервера без суффикса /api, например http://localhost:8080.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session - результат входа. Нулевое значение означает "не авторизован".
type Session struct {
	AccessToken  string
	RefreshToken string
	User         dto.UserPublicDTO
}

func (s Session) IsAdmin() bool { return s.User.Role == constants.RoleAdmin }

// APIError - ответ сервера с status=false.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("elkarec: %d %s", e.Status, e.Message)
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Body    json.RawMessage `json:"body"`
}

func (c *Client) do(ctx context.Context, sess *Session, method, path string, query url.Values, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("elkarec: кодирование запроса: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess != nil && sess.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	if resp.StatusCode >= http.StatusBadRequest || !env.Status {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if out != nil && len(env.Body) > 0 {
		if err := json.Unmarshal(env.Body, out); err != nil {
			return fmt.Errorf("elkarec: разбор ответа: %w", err)
		}
	}
	return nil
}

func sessionFrom(res dto.AuthResponseDTO) Session {
	return Session{AccessToken: res.AccessToken, RefreshToken: res.RefreshToken, User: res.User}
}

func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var res dto.AuthResponseDTO
	err := c.do(ctx, nil, http.MethodPost, "/api/auth/login", nil, dto.LoginDTO{Email: email, Password: password}, &res)
	if err != nil {
		return Session{}, err
	}
	return sessionFrom(res), nil
}

func (c *Client) Register(ctx context.Context, payload dto.RegisterDTO) (Session, error) {
	var res dto.AuthResponseDTO
	if err := c.do(ctx, nil, http.MethodPost, "/api/auth/register", nil, payload, &res); err != nil {
		return Session{}, err
	}
	return sessionFrom(res), nil
}

// Refresh возвращает новую сессию, старая остаётся у вызывающего без изменений.
func (c *Client) Refresh(ctx context.Context, sess Session) (Session, error) {
	var res dto.AuthResponseDTO
	err := c.do(ctx, nil, http.MethodPost, "/api/auth/refresh", nil, dto.RefreshTokenDTO{RefreshToken: sess.RefreshToken}, &res)
	if err != nil {
		return Session{}, err
	}
	return sessionFrom(res), nil
}

func (c *Client) Me(ctx context.Context, sess Session) (*dto.UserPublicDTO, error) {
	var user dto.UserPublicDTO
	if err := c.do(ctx, &sess, http.MethodGet, "/api/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListEquipments(ctx context.Context, sess Session, filter dto.EquipmentFilterDTO) ([]dto.EquipmentDTO, error) {
	query := url.Values{}
	if filter.Sector != "" {
		query.Set("sector", filter.Sector)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}

	list := make([]dto.EquipmentDTO, 0)
	if err := c.do(ctx, &sess, http.MethodGet, "/api/equipments", query, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) GetEquipment(ctx context.Context, sess Session, id string) (*dto.EquipmentWithHistoryDTO, error) {
	var res dto.EquipmentWithHistoryDTO
	if err := c.do(ctx, &sess, http.MethodGet, "/api/equipments/"+url.PathEscape(id), nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreateEquipment(ctx context.Context, sess Session, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	var res dto.EquipmentDTO
	if err := c.do(ctx, &sess, http.MethodPost, "/api/equipments", nil, payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) UpdateEquipment(ctx context.Context, sess Session, id string, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	var res dto.EquipmentDTO
	if err := c.do(ctx, &sess, http.MethodPut, "/api/equipments/"+url.PathEscape(id), nil, payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) UpdateStatus(ctx context.Context, sess Session, id, status, description string) (*dto.EquipmentDTO, error) {
	var res dto.EquipmentDTO
	payload := dto.UpdateEquipmentStatusDTO{Status: status, Description: description}
	if err := c.do(ctx, &sess, http.MethodPatch, "/api/equipments/"+url.PathEscape(id)+"/status", nil, payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeleteEquipment(ctx context.Context, sess Session, id string) error {
	return c.do(ctx, &sess, http.MethodDelete, "/api/equipments/"+url.PathEscape(id), nil, nil, nil)
}
