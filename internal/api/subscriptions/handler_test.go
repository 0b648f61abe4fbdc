package subscriptionsapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	subscriptionsapi "creatorhub/internal/api/subscriptions"
	"creatorhub/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	memberID  = "aaaaaaaa-1111-4111-8111-aaaaaaaaaaaa"
	creatorID = "bbbbbbbb-2222-4222-8222-bbbbbbbbbbbb"
	tierID    = "cccccccc-3333-4333-8333-cccccccccccc"
	subID     = "dddddddd-4444-4444-8444-dddddddddddd"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()
	m.Run()
}

func subscriptionRouter(userID string) *gin.Engine {
	r := testutils.SetupTestRouter()
	identity := func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	}
	r.POST("/subscriptions", identity, subscriptionsapi.Subscribe)
	r.DELETE("/subscriptions/:id", identity, subscriptionsapi.Cancel)
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubscribeRejectsMalformedIDs(t *testing.T) {
	_, _, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	w := doJSON(subscriptionRouter(memberID), http.MethodPost, "/subscriptions",
		gin.H{"creator_id": "not-a-uuid", "tier_id": tierID})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscribeCreatesLedgerEntry(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tiers" WHERE id = $1`)).
		WithArgs(tierID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "creator_id", "monthly_price", "rank"}).
			AddRow(tierID, creatorID, 1500, 2))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "subscriptions" WHERE member_id = $1 AND creator_id = $2 AND status = $3 FOR UPDATE`)).
		WithArgs(memberID, creatorID, "active").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "subscriptions"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(subID))
	mock.ExpectCommit()

	w := doJSON(subscriptionRouter(memberID), http.MethodPost, "/subscriptions",
		gin.H{"creator_id": creatorID, "tier_id": tierID})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "active", resp["status"])
	assert.Equal(t, tierID, resp["tier_id"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscribeDuplicateReturnsConflict(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tiers" WHERE id = $1`)).
		WithArgs(tierID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "creator_id", "monthly_price", "rank"}).
			AddRow(tierID, creatorID, 1500, 2))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "subscriptions" WHERE member_id = $1 AND creator_id = $2 AND status = $3 FOR UPDATE`)).
		WithArgs(memberID, creatorID, "active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "member_id", "creator_id", "tier_id", "status"}).
			AddRow(subID, memberID, creatorID, tierID, "active"))
	mock.ExpectRollback()

	w := doJSON(subscriptionRouter(memberID), http.MethodPost, "/subscriptions",
		gin.H{"creator_id": creatorID, "tier_id": tierID})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Upgrade")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelRejectsNonHolder(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	otherMember := "eeeeeeee-5555-4555-8555-eeeeeeeeeeee"
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "subscriptions" WHERE id = $1`)).
		WithArgs(subID, 1).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "member_id", "creator_id", "tier_id", "status", "start_date", "renewal_date",
		}).AddRow(subID, otherMember, creatorID, tierID, "active", now, now.AddDate(0, 1, 0)))

	w := doJSON(subscriptionRouter(memberID), http.MethodDelete, "/subscriptions/"+subID, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelUnknownSubscription(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "subscriptions" WHERE id = $1`)).
		WithArgs(subID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := doJSON(subscriptionRouter(memberID), http.MethodDelete, "/subscriptions/"+subID, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
