package employeeservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-ClassReservation/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент справочника сотрудников
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента справочника сотрудников
func NewClient(baseURL string, token string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// FindEmployeeByEmail ищет сотрудника по рабочему email
func (c *Client) FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	endpoint := fmt.Sprintf("%s/internal/employees/by-email?email=%s", c.baseURL, url.QueryEscape(email))

	var employee Employee
	if err := c.get(ctx, endpoint, &employee); err != nil {
		return nil, err
	}

	result := employee.ToDomain()
	return &result, nil
}

// FetchAllEmployees получает полный справочник сотрудников
func (c *Client) FetchAllEmployees(ctx context.Context) ([]domain.Employee, error) {
	endpoint := fmt.Sprintf("%s/internal/employees", c.baseURL)

	var employees []Employee
	if err := c.get(ctx, endpoint, &employees); err != nil {
		return nil, err
	}

	result := make([]domain.Employee, 0, len(employees))
	for _, e := range employees {
		result = append(result, e.ToDomain())
	}

	c.log.Info("EmployeeService: fetched %d employees", len(result))
	return result, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrEmployeeNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
