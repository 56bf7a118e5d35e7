package http_test

import (
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	savvyHttp "github.com/MrJamesThe3rd/savvy/internal/http"
	"github.com/MrJamesThe3rd/savvy/internal/http/analytics"
	"github.com/MrJamesThe3rd/savvy/internal/http/auth"
	"github.com/MrJamesThe3rd/savvy/internal/http/budget"
	"github.com/MrJamesThe3rd/savvy/internal/http/chart"
	"github.com/MrJamesThe3rd/savvy/internal/http/export"
	"github.com/MrJamesThe3rd/savvy/internal/http/goal"
	"github.com/MrJamesThe3rd/savvy/internal/http/importcsv"
	"github.com/MrJamesThe3rd/savvy/internal/http/matching"
	"github.com/MrJamesThe3rd/savvy/internal/http/obligation"
	"github.com/MrJamesThe3rd/savvy/internal/http/transaction"
	"github.com/MrJamesThe3rd/savvy/internal/importer"
	obligationSvc "github.com/MrJamesThe3rd/savvy/internal/obligation"
)

var userID = uuid.MustParse("0a1b2c3d-4e5f-4061-8728-394a5b6c7d8e")

func handlers(obligations *obligationSvc.Service) savvyHttp.Handlers {
	return savvyHttp.Handlers{
		Transactions: transaction.NewHandler(nil),
		Import:       importcsv.NewHandler(importer.NewService(nil), nil),
		Budgets:      budget.NewHandler(nil, nil),
		Goals:        goal.NewHandler(nil),
		Analytics:    analytics.NewHandler(nil, nil, nil),
		Charts:       chart.NewHandler(nil, nil),
		Export:       export.NewHandler(nil),
		Rules:        matching.NewHandler(nil),
		Obligations:  obligation.NewHandler(obligations),
	}
}

func TestRouter_RequiresToken(t *testing.T) {
	router := savvyHttp.New(handlers(nil), savvyHttp.Options{
		Authenticate:   auth.JWT([]byte("secret")),
		AllowedOrigins: []string{"http://localhost:5173"},
	})

	for _, path := range []string{"/api/v1/transactions/", "/api/v1/goals/", "/api/v1/bills/upcoming", "/api/v1/charts/monthly.png"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, path, nil))

			assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRouter_PublicEndpoints(t *testing.T) {
	router := savvyHttp.New(handlers(nil), savvyHttp.Options{Authenticate: auth.JWT([]byte("secret"))})

	for _, path := range []string{"/healthz", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, path, nil))

			assert.Equal(t, nethttp.StatusOK, rec.Code)
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := savvyHttp.New(handlers(nil), savvyHttp.Options{
		Authenticate:   auth.JWT([]byte("secret")),
		AllowedOrigins: []string{"http://localhost:5173"},
	})

	req := httptest.NewRequest(nethttp.MethodOptions, "/api/v1/goals/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_JSONOnly(t *testing.T) {
	router := savvyHttp.New(handlers(nil), savvyHttp.Options{Authenticate: auth.Static(userID)})

	req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/goals/", strings.NewReader("name=car"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, nethttp.StatusUnsupportedMediaType, rec.Code)
}

func TestRouter_Obligations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := obligationSvc.NewMockRepository(ctrl)
	repo.EXPECT().ListBills(gomock.Any(), userID).Return(nil, nil)

	router := savvyHttp.New(handlers(obligationSvc.NewService(repo)), savvyHttp.Options{Authenticate: auth.Static(userID)})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/api/v1/bills/upcoming", nil))

	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
