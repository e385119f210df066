package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/carteira/internal/app"
	"github.com/MrJamesThe3rd/carteira/internal/catalog"
	carteiraHttp "github.com/MrJamesThe3rd/carteira/internal/http"
	catalogHandler "github.com/MrJamesThe3rd/carteira/internal/http/catalog"
	categorizeHandler "github.com/MrJamesThe3rd/carteira/internal/http/categorize"
	exportHandler "github.com/MrJamesThe3rd/carteira/internal/http/export"
	goalHandler "github.com/MrJamesThe3rd/carteira/internal/http/goal"
	importHandler "github.com/MrJamesThe3rd/carteira/internal/http/importcsv"
	investmentHandler "github.com/MrJamesThe3rd/carteira/internal/http/investment"
	planHandler "github.com/MrJamesThe3rd/carteira/internal/http/plan"
	summaryHandler "github.com/MrJamesThe3rd/carteira/internal/http/summary"
	txHandler "github.com/MrJamesThe3rd/carteira/internal/http/transaction"
	"github.com/MrJamesThe3rd/carteira/internal/slot"
	"github.com/MrJamesThe3rd/carteira/internal/storage"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	return newRouterOver(t, storage.NewMemory())
}

func newRouterOver(t *testing.T, kv storage.Storage) http.Handler {
	t.Helper()

	a := app.New(kv, catalog.Default(), "BRL")

	return carteiraHttp.New(
		carteiraHttp.Options{AllowedOrigins: []string{"*"}},
		carteiraHttp.Handlers{
			Transactions: txHandler.NewHandler(a.Transactions),
			Import:       importHandler.NewHandler(a.Importer),
			Export:       exportHandler.NewHandler(a.Export),
			Categorize:   categorizeHandler.NewHandler(a.Rules),
			Investments:  investmentHandler.NewHandler(a.Investments, a.Catalog),
			Goals:        goalHandler.NewHandler(a.Goals),
			Summary:      summaryHandler.NewHandler(a, a.Export, a.Catalog),
			Plan:         planHandler.NewHandler(a.Plans),
			Catalog:      catalogHandler.NewHandler(a.Catalog),
		},
	)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

type txBody struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

func TestTransactions_CRUD(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/transactions",
		`{"type":"expense","amount":"400","category":"Moradia","description":"Aluguel","date":"2024-01-10"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created txBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "2024-01-10", created.Date)
	assert.True(t, decimal.NewFromInt(400).Equal(created.Amount))

	rec = do(t, h, http.MethodGet, "/api/v1/transactions?month=2024-01&type=expense", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []txBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rec = do(t, h, http.MethodGet, "/api/v1/transactions?month=2024-02", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list)

	rec = do(t, h, http.MethodPut, "/api/v1/transactions/"+created.ID,
		`{"type":"expense","amount":450.5,"category":"Moradia","description":"Aluguel","date":"2024-01-10"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated txBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, decimal.RequireFromString("450.5").Equal(updated.Amount))

	rec = do(t, h, http.MethodDelete, "/api/v1/transactions/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/transactions/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTransactions_TimestampIDs(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(ctx, slot.Transactions,
		`[{"id":"1700000000000","type":"income","amount":1000,"category":"Salário","description":"Janeiro","date":"2024-01-05T00:00:00.000Z"}]`))

	h := newRouterOver(t, kv)

	rec := do(t, h, http.MethodGet, "/api/v1/transactions/1700000000000", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got txBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "1700000000000", got.ID)
	assert.Equal(t, "2024-01-05", got.Date)

	rec = do(t, h, http.MethodPut, "/api/v1/transactions/1700000000000",
		`{"type":"income","amount":"1200","category":"Salário","description":"Janeiro","date":"2024-01-05"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPut, "/api/v1/transactions/1700000000001",
		`{"type":"income","amount":"1","category":"Salário","date":"2024-01-05"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/transactions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []txBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.True(t, decimal.RequireFromString("1200").Equal(list[0].Amount))
}

func TestTransactions_BadRequests(t *testing.T) {
	h := newRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{
			name:   "MissingCategory",
			method: http.MethodPost,
			path:   "/api/v1/transactions",
			body:   `{"type":"expense","amount":"10","date":"2024-01-10"}`,
			want:   http.StatusBadRequest,
		},
		{
			name:   "NegativeAmount",
			method: http.MethodPost,
			path:   "/api/v1/transactions",
			body:   `{"type":"expense","amount":"-10","category":"Moradia","date":"2024-01-10"}`,
			want:   http.StatusBadRequest,
		},
		{
			name:   "CategoryOfOtherKind",
			method: http.MethodPost,
			path:   "/api/v1/transactions",
			body:   `{"type":"income","amount":"10","category":"Moradia","date":"2024-01-10"}`,
			want:   http.StatusBadRequest,
		},
		{
			name:   "UnknownField",
			method: http.MethodPost,
			path:   "/api/v1/transactions",
			body:   `{"type":"expense","amount":"10","category":"Moradia","date":"2024-01-10","tag":"x"}`,
			want:   http.StatusBadRequest,
		},
		{
			name:   "MissingID",
			method: http.MethodGet,
			path:   "/api/v1/transactions/%20",
			want:   http.StatusBadRequest,
		},
		{
			name:   "BadMonth",
			method: http.MethodGet,
			path:   "/api/v1/transactions?month=2024-13",
			want:   http.StatusBadRequest,
		},
		{
			name:   "UnknownID",
			method: http.MethodPut,
			path:   "/api/v1/transactions/5b0c2c8e-8f0e-4a4e-9d38-7b1c6c1f2a10",
			body:   `{"type":"expense","amount":"10","category":"Moradia","date":"2024-01-10"}`,
			want:   http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestPlanGate(t *testing.T) {
	h := newRouter(t)

	investment := `{"name":"Tesouro","type":"bonds","amount":"1000","currentValue":"1100","purchaseDate":"2024-01-02"}`

	rec := do(t, h, http.MethodGet, "/api/v1/investments", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/goals", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/v1/plan", `{"name":"gold"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/v1/plan", `{"name":"pro"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/goals", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/investments", investment)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/v1/plan", `{"name":"premium"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/investments", investment)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/v1/investments/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"gain":"100"`)

	rec = do(t, h, http.MethodGet, "/api/v1/plan", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"premium"`)
}

func TestSummary(t *testing.T) {
	h := newRouter(t)

	for _, body := range []string{
		`{"type":"income","amount":"3000","category":"Salário","description":"Salário","date":"2024-01-05"}`,
		`{"type":"expense","amount":"1200","category":"Moradia","description":"Aluguel","date":"2024-01-10"}`,
		`{"type":"expense","amount":"300","category":"Alimentação","description":"Mercado","date":"2024-02-03"}`,
	} {
		rec := do(t, h, http.MethodPost, "/api/v1/transactions", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := do(t, h, http.MethodGet, "/api/v1/summary?month=2024-01", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Month  string `json:"month"`
		Totals struct {
			Income   decimal.Decimal `json:"income"`
			Expenses decimal.Decimal `json:"expenses"`
			Balance  decimal.Decimal `json:"balance"`
		} `json:"totals"`
		Series      []json.RawMessage `json:"series"`
		Investments json.RawMessage   `json:"investments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "2024-01", resp.Month)
	assert.True(t, decimal.NewFromInt(3000).Equal(resp.Totals.Income))
	assert.True(t, decimal.NewFromInt(1200).Equal(resp.Totals.Expenses))
	assert.True(t, decimal.NewFromInt(1800).Equal(resp.Totals.Balance))
	assert.Len(t, resp.Series, 2)
	assert.Nil(t, resp.Investments)

	rec = do(t, h, http.MethodGet, "/api/v1/summary?month=2024-01&format=markdown", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "# Resumo de jan 2024")

	rec = do(t, h, http.MethodGet, "/api/v1/summary?type=transfer", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportAndExport(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/categorize",
		`{"pattern":"padaria","type":"expense","category":"Alimentação","description":"Padaria"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	upload := func(dryRun bool) *httptest.ResponseRecorder {
		var buf bytes.Buffer

		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("bank", "nubank"))

		if dryRun {
			require.NoError(t, mw.WriteField("dry_run", "true"))
		}

		fw, err := mw.CreateFormFile("file", "nubank.csv")
		require.NoError(t, err)

		_, err = fw.Write([]byte("date,title,amount\n2024-01-05,PADARIA PAO QUENTE,12.50\n2024-01-07,Uber *Trip,30.00\n"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/import", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		return rec
	}

	rec = upload(true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"parsed":2`)

	rec = do(t, h, http.MethodGet, "/api/v1/transactions", "")
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = upload(false)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var res struct {
		Parsed      int      `json:"parsed"`
		Categorized int      `json:"categorized"`
		Imported    []txBody `json:"imported"`
		Skipped     []txBody `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 2, res.Parsed)
	assert.Equal(t, 1, res.Categorized)
	assert.Len(t, res.Imported, 2)
	assert.Empty(t, res.Skipped)

	rec = upload(false)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Empty(t, res.Imported)
	assert.Len(t, res.Skipped, 2)

	rec = do(t, h, http.MethodGet, "/api/v1/transactions/export?month=2024-01&type=expense", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, `attachment; filename="transacoes_2024-01_expense.csv"`, rec.Header().Get("Content-Disposition"))

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "data;tipo;categoria;descrição;valor\n"), body)
	assert.Contains(t, body, "2024-01-05;expense;Alimentação;Padaria;-12.50")

	rec = do(t, h, http.MethodGet, "/api/v1/transactions/export?charset=klingon", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/categorize/suggest?description=Padaria+Central", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"category":"Alimentação"`)
}
