package api_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/carteira/internal/http/api"
)

type payload struct {
	Kind   string          `json:"type" validate:"required,oneof=income expense"`
	Amount decimal.Decimal `json:"amount" validate:"gte=0"`
	Date   api.Date        `json:"date" validate:"required"`
}

func decode(body string) (payload, error) {
	var p payload

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	err := api.Decode(r, &p)

	return p, err
}

func TestDecode(t *testing.T) {
	type testCase struct {
		name    string
		body    string
		wantErr string
	}

	tests := []testCase{
		{name: "StringAmount", body: `{"type":"income","amount":"10.50","date":"2024-01-02"}`},
		{name: "NumberAmount", body: `{"type":"expense","amount":3,"date":"2024-01-02T10:00:00Z"}`},
		{name: "NaN", body: `{"type":"income","amount":"NaN","date":"2024-01-02"}`, wantErr: "invalid request body"},
		{name: "Negative", body: `{"type":"income","amount":"-1","date":"2024-01-02"}`, wantErr: "amount must be at least 0"},
		{name: "BadKind", body: `{"type":"transfer","amount":"1","date":"2024-01-02"}`, wantErr: "type must be one of"},
		{name: "MissingDate", body: `{"type":"income","amount":"1"}`, wantErr: "date is required"},
		{name: "BadDate", body: `{"type":"income","amount":"1","date":"02/01/2024"}`, wantErr: "invalid date"},
		{name: "UnknownField", body: `{"type":"income","amount":"1","date":"2024-01-02","x":1}`, wantErr: "unknown field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decode(tt.body)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestDecode_Values(t *testing.T) {
	p, err := decode(`{"type":"income","amount":"10.50","date":"2024-01-02"}`)
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("10.5").Equal(p.Amount))
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), p.Date.Time)
}

func TestDate_Marshal(t *testing.T) {
	b, err := api.Date{Time: time.Date(2024, 3, 4, 15, 0, 0, 0, time.UTC)}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-04"`, string(b))
}

func TestError(t *testing.T) {
	errInvalid := errors.New("invalid")
	errNotFound := errors.New("not found")

	tests := map[error]int{
		errInvalid:            http.StatusBadRequest,
		errNotFound:           http.StatusNotFound,
		errors.New("db down"): http.StatusInternalServerError,
	}

	for err, want := range tests {
		rec := httptest.NewRecorder()
		api.Error(rec, err, errInvalid, errNotFound)
		assert.Equal(t, want, rec.Code, err.Error())
	}
}
