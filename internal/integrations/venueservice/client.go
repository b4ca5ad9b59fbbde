package venueservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с VenueService (каталог площадок и процедур)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента VenueService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetVenue получает площадку по ID
func (c *Client) GetVenue(ctx context.Context, venueID int64) (*Venue, error) {
	url := fmt.Sprintf("%s/internal/venues/%d", c.baseURL, venueID)

	var venue Venue
	if err := c.doGet(ctx, url, &venue, ErrVenueNotFound); err != nil {
		return nil, err
	}

	return &venue, nil
}

// GetTreatment получает процедуру площадки по ID
func (c *Client) GetTreatment(ctx context.Context, venueID, treatmentID int64) (*Treatment, error) {
	url := fmt.Sprintf("%s/internal/venues/%d/treatments/%d", c.baseURL, venueID, treatmentID)

	var treatment Treatment
	if err := c.doGet(ctx, url, &treatment, ErrTreatmentNotFound); err != nil {
		return nil, err
	}

	return &treatment, nil
}

// GetTreatments получает набор процедур площадки одним запросом
// Если хотя бы одна из запрошенных процедур не найдена, возвращает ErrTreatmentNotFound
func (c *Client) GetTreatments(ctx context.Context, venueID int64, treatmentIDs []int64) ([]*Treatment, error) {
	if len(treatmentIDs) == 0 {
		return []*Treatment{}, nil
	}

	ids := make([]string, len(treatmentIDs))
	for i, id := range treatmentIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}

	url := fmt.Sprintf("%s/internal/venues/%d/treatments?ids=%s", c.baseURL, venueID, strings.Join(ids, ","))

	var treatments []*Treatment
	if err := c.doGet(ctx, url, &treatments, ErrTreatmentNotFound); err != nil {
		return nil, err
	}

	// Сервис возвращает только найденные процедуры - проверяем, что нашлись все
	if len(treatments) != len(treatmentIDs) {
		c.log.Warn("GetTreatments: requested %d treatments for venue=%d, got %d",
			len(treatmentIDs), venueID, len(treatments))
		return nil, ErrTreatmentNotFound
	}

	return treatments, nil
}

// doGet выполняет GET запрос и декодирует ответ в out
// notFoundErr возвращается для статуса 404
func (c *Client) doGet(ctx context.Context, url string, out interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
