package debt

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ledgerline/finance-server/internal/apperrors"
	"github.com/ledgerline/finance-server/internal/service"
)

func newListTestAPI(t *testing.T, owner uuid.UUID, svc debtLister) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(ownerMiddleware(owner))
	NewListDebtsHandler(svc).Register(api)
	return api
}

func TestHTTP_ListDebts_Success(t *testing.T) {
	owner := uuid.Must(uuid.NewV4())

	mockSvc := new(mockDebtService)
	mockSvc.On("ListDebts", mock.Anything, owner, service.DebtFilter{}).
		Return([]*service.Debt{
			serviceDebt(owner, "500", "0"),
			serviceDebt(owner, "100", "100"),
		}, nil)

	resp := newListTestAPI(t, owner, mockSvc).Get("/v1/debts")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListDebtsResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Debts, 2)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListDebts_PassesFilter(t *testing.T) {
	owner := uuid.Must(uuid.NewV4())

	mockSvc := new(mockDebtService)
	mockSvc.On("ListDebts", mock.Anything, owner, service.DebtFilter{
		Type:   "lent",
		Status: "pending",
	}).Return([]*service.Debt{}, nil)

	resp := newListTestAPI(t, owner, mockSvc).Get("/v1/debts?type=lent&status=pending")

	assert.Equal(t, http.StatusOK, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListDebts_BadFilterMapsTo400(t *testing.T) {
	owner := uuid.Must(uuid.NewV4())

	mockSvc := new(mockDebtService)
	mockSvc.On("ListDebts", mock.Anything, owner, mock.Anything).
		Return(nil, apperrors.Validation("type must be lent or borrowed"))

	resp := newListTestAPI(t, owner, mockSvc).Get("/v1/debts?type=loaned")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
