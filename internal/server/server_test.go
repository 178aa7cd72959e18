package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"bikerental/internal/audit"
	mock_server "bikerental/internal/server/mocks"
	"bikerental/internal/store"
)

func newTestServer(t *testing.T) (*Server, *mock_server.MockStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockStore := mock_server.NewMockStore(ctrl)
	return New(mockStore, nil, zap.NewNop()), mockStore
}

func TestHandleAddBike(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    string
		setupMocks     func(mockStore *mock_server.MockStore)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "successful bike creation",
			requestBody: `{"color":"red"}`,
			setupMocks: func(mockStore *mock_server.MockStore) {
				mockStore.EXPECT().
					AddBike("red").
					Return(store.Bike{ID: 1, Color: "red", Available: true}, nil)
				mockStore.EXPECT().
					ListBikes().
					Return([]store.Bike{{ID: 1, Color: "red", Available: true}})
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"id":1,"color":"red","available":true}`,
		},
		{
			name:           "invalid request body",
			requestBody:    `{"color":`,
			setupMocks:     func(mockStore *mock_server.MockStore) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid request body"}`,
		},
		{
			name:        "missing color",
			requestBody: `{}`,
			setupMocks: func(mockStore *mock_server.MockStore) {
				mockStore.EXPECT().
					AddBike("").
					Return(store.Bike{}, store.NewError(store.InvalidFormat, "bike color must be provided"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"bike color must be provided"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server, mockStore := newTestServer(t)
			tc.setupMocks(mockStore)

			req := httptest.NewRequest(http.MethodPost, "/bikes", bytes.NewBufferString(tc.requestBody))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			server.handleAddBike(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func TestHandleListBikes(t *testing.T) {
	server, mockStore := newTestServer(t)

	mockStore.EXPECT().
		ListBikes().
		Return([]store.Bike{
			{ID: 1, Color: "red", Available: false},
			{ID: 2, Color: "blue", Available: true},
		})

	req := httptest.NewRequest(http.MethodGet, "/bikes", nil)
	rr := httptest.NewRecorder()

	server.handleListBikes(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var bikes []store.Bike
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &bikes))
	require.Len(t, bikes, 2)
	assert.Equal(t, "red", bikes[0].Color)
	assert.True(t, bikes[1].Available)
}

func TestHandleAddClient(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    string
		setupMocks     func(mockStore *mock_server.MockStore)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "successful registration",
			requestBody: `{"name":"Alice","email":"alice@mail.com","cpf":"111.222.333-44"}`,
			setupMocks: func(mockStore *mock_server.MockStore) {
				mockStore.EXPECT().
					AddClient("Alice", "alice@mail.com", "111.222.333-44").
					Return(store.Client{ID: 1, Name: "Alice", Email: "alice@mail.com", CPF: "111.222.333-44"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"id":1,"name":"Alice","email":"alice@mail.com","cpf":"111.222.333-44"}`,
		},
		{
			name:        "duplicate email",
			requestBody: `{"name":"Alice","email":"alice@mail.com","cpf":"111.222.333-44"}`,
			setupMocks: func(mockStore *mock_server.MockStore) {
				mockStore.EXPECT().
					AddClient("Alice", "alice@mail.com", "111.222.333-44").
					Return(store.Client{}, store.NewError(store.DuplicateClient, "client with email alice@mail.com is already registered"))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"client with email alice@mail.com is already registered"}`,
		},
		{
			name:        "invalid email",
			requestBody: `{"name":"Alice","email":"alicemail.com","cpf":"111.222.333-44"}`,
			setupMocks: func(mockStore *mock_server.MockStore) {
				mockStore.EXPECT().
					AddClient("Alice", "alicemail.com", "111.222.333-44").
					Return(store.Client{}, store.NewError(store.InvalidFormat, "invalid email"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid email"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server, mockStore := newTestServer(t)
			tc.setupMocks(mockStore)

			req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewBufferString(tc.requestBody))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			server.handleAddClient(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func TestHandleAddRental(t *testing.T) {
	start := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		requestBody    string
		setupMocks     func(mockStore *mock_server.MockStore)
		expectedStatus int
	}{
		{
			name:        "successful rental",
			requestBody: `{"model":"hourly","email":"alice@mail.com","quantity":2,"family":false}`,
			setupMocks: func(mockStore *mock_server.MockStore) {
				mockStore.EXPECT().
					AddRental("hourly", "alice@mail.com", 2, false).
					Return([]store.Rental{
						{Model: store.Hourly, Start: start, BikeID: 1, ClientID: 1},
						{Model: store.Hourly, Start: start, BikeID: 2, ClientID: 1},
					}, nil)
				mockStore.EXPECT().ListBikes().Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:        "insufficient inventory",
			requestBody: `{"model":"hourly","email":"alice@mail.com","quantity":5}`,
			setupMocks: func(mockStore *mock_server.MockStore) {
				mockStore.EXPECT().
					AddRental("hourly", "alice@mail.com", 5, false).
					Return(nil, store.NewError(store.InsufficientInventory, "only 2 of 5 requested bikes are available"))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:        "unknown client",
			requestBody: `{"model":"hourly","email":"ghost@mail.com","quantity":1}`,
			setupMocks: func(mockStore *mock_server.MockStore) {
				mockStore.EXPECT().
					AddRental("hourly", "ghost@mail.com", 1, false).
					Return(nil, store.NewError(store.UnknownClient, "no client registered with email ghost@mail.com"))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:        "invalid family size",
			requestBody: `{"model":"hourly","email":"alice@mail.com","quantity":2,"family":true}`,
			setupMocks: func(mockStore *mock_server.MockStore) {
				mockStore.EXPECT().
					AddRental("hourly", "alice@mail.com", 2, true).
					Return(nil, store.NewError(store.InvalidFamilySize, "family rentals take 3 to 5 bikes, got 2"))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid request body",
			requestBody:    `{"quantity":"two"}`,
			setupMocks:     func(mockStore *mock_server.MockStore) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server, mockStore := newTestServer(t)
			tc.setupMocks(mockStore)

			req := httptest.NewRequest(http.MethodPost, "/rentals", bytes.NewBufferString(tc.requestBody))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			server.handleAddRental(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}

func TestHandleSettle(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    string
		setupMocks     func(mockStore *mock_server.MockStore)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "successful settlement",
			requestBody: `{"email":"alice@mail.com"}`,
			setupMocks: func(mockStore *mock_server.MockStore) {
				mockStore.EXPECT().
					CalculateRental("alice@mail.com").
					Return(14.0, nil)
				mockStore.EXPECT().ListBikes().Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"amount":14}`,
		},
		{
			name:        "unknown client",
			requestBody: `{"email":"ghost@mail.com"}`,
			setupMocks: func(mockStore *mock_server.MockStore) {
				mockStore.EXPECT().
					CalculateRental("ghost@mail.com").
					Return(0.0, store.NewError(store.UnknownClient, "no client registered with email ghost@mail.com"))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"no client registered with email ghost@mail.com"}`,
		},
		{
			name:           "invalid request body",
			requestBody:    `{"email":`,
			setupMocks:     func(mockStore *mock_server.MockStore) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid request body"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server, mockStore := newTestServer(t)
			tc.setupMocks(mockStore)

			req := httptest.NewRequest(http.MethodPost, "/settlements", bytes.NewBufferString(tc.requestBody))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			server.handleSettle(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

type captureAuditProducer struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (p *captureAuditProducer) Publish(_ context.Context, batch []audit.Entry) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, batch...)
	return nil
}

func (p *captureAuditProducer) Close() error { return nil }

func TestAuditMiddleware_RecordsRequestAndResponse(t *testing.T) {
	producer := &captureAuditProducer{}
	manager := audit.NewManager(producer, zap.NewNop(), 1, 1, 10*time.Millisecond)
	manager.Start(context.Background())

	s := New(nil, manager, zap.NewNop())
	handler := s.auditMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"client with email alice@mail.com is already registered"}`))
	}))

	body := `{"name":"Alice","email":"alice@mail.com","cpf":"111.222.333-44"}`
	req := httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	manager.Shutdown(shutdownCtx)

	require.Len(t, producer.entries, 1)
	entry := producer.entries[0]
	assert.Equal(t, http.MethodPost, entry.Method)
	assert.Equal(t, "/clients", entry.Path)
	assert.Equal(t, "handleAddClient", entry.Handler)
	assert.Equal(t, http.StatusConflict, entry.StatusCode)
	assert.Equal(t, `{"error":"client with email alice@mail.com is already registered"}`, entry.Response)
	assert.Equal(t, "alice@mail.com", entry.Email)
	assert.JSONEq(t, body, entry.Request)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.JSONEq(t, entry.Response, rr.Body.String())
}

func TestAuditMiddleware_DefaultsToStatusOK(t *testing.T) {
	producer := &captureAuditProducer{}
	manager := audit.NewManager(producer, zap.NewNop(), 1, 1, 10*time.Millisecond)
	manager.Start(context.Background())

	s := New(nil, manager, zap.NewNop())
	handler := s.auditMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))

	req := httptest.NewRequest(http.MethodGet, "/bikes", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	manager.Shutdown(shutdownCtx)

	require.Len(t, producer.entries, 1)
	assert.Equal(t, http.StatusOK, producer.entries[0].StatusCode)
	assert.Equal(t, `[]`, producer.entries[0].Response)
}
