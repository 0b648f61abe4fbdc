package tiers_test

import (
	"regexp"
	"testing"

	domainerrors "creatorhub/internal/domain/errors"
	"creatorhub/internal/domain/tiers"
	"creatorhub/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const creatorID = "bbbbbbbb-2222-4222-8222-bbbbbbbbbbbb"

func TestCreateTierRejectsBadSpecs(t *testing.T) {
	tests := []struct {
		name string
		spec tiers.Spec
	}{
		{"empty name", tiers.Spec{Name: "   ", MonthlyPrice: 500, Rank: 1}},
		{"zero price", tiers.Spec{Name: "Bronze", MonthlyPrice: 0, Rank: 1}},
		{"negative price", tiers.Spec{Name: "Bronze", MonthlyPrice: -100, Rank: 1}},
		{"zero rank", tiers.Spec{Name: "Bronze", MonthlyPrice: 500, Rank: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Validation fails before any query is issued.
			_, err := tiers.CreateTier(nil, creatorID, tt.spec)
			assert.True(t, domainerrors.IsValidation(err))
		})
	}
}

func TestCreateTierDefaultsBenefitsToEmptyList(t *testing.T) {
	db, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "tiers"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("cccccccc-3333-4333-8333-cccccccccccc"))
	mock.ExpectCommit()

	tier, err := tiers.CreateTier(db, creatorID, tiers.Spec{
		Name:         "  Gold  ",
		MonthlyPrice: 1500,
		Rank:         2,
	})
	require.NoError(t, err)

	assert.Equal(t, "Gold", tier.Name)
	assert.Equal(t, creatorID, tier.CreatorID)
	assert.JSONEq(t, `[]`, string(tier.Benefits))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTiersOrdersByRank(t *testing.T) {
	db, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "creator_id", "name", "monthly_price", "rank"}).
		AddRow("t1", creatorID, "Bronze", 500, 1).
		AddRow("t2", creatorID, "Silver", 1000, 2).
		AddRow("t3", creatorID, "Gold", 1500, 3)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tiers" WHERE creator_id = $1 ORDER BY rank ASC,created_at ASC`)).
		WithArgs(creatorID).
		WillReturnRows(rows)

	list, err := tiers.ListTiers(db, creatorID)
	require.NoError(t, err)

	require.Len(t, list, 3)
	assert.Equal(t, []string{"Bronze", "Silver", "Gold"},
		[]string{list[0].Name, list[1].Name, list[2].Name})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTierRank(t *testing.T) {
	db, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "rank" FROM "tiers" WHERE id = $1`)).
		WithArgs("t2", 1).
		WillReturnRows(sqlmock.NewRows([]string{"rank"}).AddRow(2))

	rank, err := tiers.GetTierRank(db, "t2")
	require.NoError(t, err)
	assert.Equal(t, 2, rank)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTierRankNotFound(t *testing.T) {
	db, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "rank" FROM "tiers" WHERE id = $1`)).
		WithArgs("missing", 1).
		WillReturnRows(sqlmock.NewRows([]string{"rank"}))

	_, err := tiers.GetTierRank(db, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
