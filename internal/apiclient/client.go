package apiclient

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

	"github.com/Freeeeeet/portal_bot/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client - клиент HTTP API студенческого портала.
// Потребляет три endpoint'а: список слотов учителя, список сессий студента
// и бронирование слота.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// FetchError - сетевая ошибка или нечитаемый ответ на чтении.
// Повторных попыток нет: вызывающий показывает ошибку и пустое состояние.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// APIError - ответ бэкенда с кодом не 2xx. Message берётся из поля
// {"message": ...} тела ответа, если оно есть.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// TeacherSlots получает слоты доступности учителя.
func (c *Client) TeacherSlots(ctx context.Context, teacherID string) ([]model.Slot, error) {
	u := c.baseURL + "/availability/" + url.PathEscape(teacherID)

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var slots []model.Slot
	if err := json.Unmarshal(body, &slots); err != nil {
		return nil, &FetchError{URL: u, Err: fmt.Errorf("decode slots: %w", err)}
	}

	// Бэкенд не кладёт teacher_id в каждый слот - дописываем сами
	for i := range slots {
		if slots[i].TeacherID == "" {
			slots[i].TeacherID = teacherID
		}
	}

	c.logger.Debug("Fetched teacher slots",
		zap.String("teacher_id", teacherID),
		zap.Int("count", len(slots)))

	return slots, nil
}

// StudentSessions получает сессии текущего студента.
// Форма ответа нормализуется здесь же, наружу уходит только []model.Session.
func (c *Client) StudentSessions(ctx context.Context, studentID string) ([]model.Session, error) {
	u := c.baseURL + "/availability/student/" + url.PathEscape(studentID)

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	sessions, err := decodeSessions(body)
	if err != nil {
		// Неожиданная форма - не ошибка всего экрана
		c.logger.Warn("Unexpected sessions response shape, treating as empty",
			zap.String("student_id", studentID),
			zap.Error(err))
		return nil, nil
	}

	c.logger.Debug("Fetched student sessions",
		zap.String("student_id", studentID),
		zap.Int("count", len(sessions)))

	return sessions, nil
}

// BookingRequest - тело PUT /availability/book/{slotId}.
type BookingRequest struct {
	StudentID     string `json:"student_id"`
	TeacherID     string `json:"teacher_id"`
	Duration      int    `json:"duration"`
	RequestedTime string `json:"requested_time"` // ISO-8601
}

type bookingResponse struct {
	Session *model.Session `json:"session"`
}

// BookSlot бронирует слот. Отказ сервера возвращается как *APIError
// с сообщением бэкенда, транспортная ошибка - как *FetchError.
func (c *Client) BookSlot(ctx context.Context, slotID string, req BookingRequest) (*model.Session, error) {
	u := c.baseURL + "/availability/book/" + url.PathEscape(slotID)
	requestID := uuid.NewString()

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode booking request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build booking request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	c.logger.Info("Submitting booking",
		zap.String("slot_id", slotID),
		zap.String("student_id", req.StudentID),
		zap.String("request_id", requestID))

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &FetchError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: u, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: extractMessage(body)}
		c.logger.Warn("Booking rejected by backend",
			zap.String("slot_id", slotID),
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return nil, apiErr
	}

	var result bookingResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &FetchError{URL: u, Err: fmt.Errorf("decode booking response: %w", err)}
	}
	if result.Session == nil {
		return nil, &FetchError{URL: u, Err: fmt.Errorf("booking response without session")}
	}

	return result.Session, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &FetchError{URL: u, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: u, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: u, Err: err}
	}
	return body, nil
}

func extractMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
