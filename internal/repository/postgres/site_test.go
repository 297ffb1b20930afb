package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/domain"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestSiteRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewSiteRepository(db)

	s := &domain.Site{SiteID: 4, Location: "Dock", ContactDetails: "dock@example.com"}
	mock.ExpectQuery("INSERT INTO site_info").
		WithArgs(int32(4), nil, "Dock", "dock@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(1, time.Now()))

	assert.NoError(t, repo.Create(context.Background(), s))
	assert.Equal(t, int64(1), s.ID)
}

func TestSiteRepository_ContactFor(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewSiteRepository(db)
	ctx := context.Background()

	t.Run("First Contact", func(t *testing.T) {
		mock.ExpectQuery("SELECT contact_details FROM site_info").
			WithArgs(int32(4)).
			WillReturnRows(sqlmock.NewRows([]string{"contact_details"}).AddRow("dock@example.com"))

		contact, err := repo.ContactFor(ctx, 4)
		assert.NoError(t, err)
		assert.Equal(t, "dock@example.com", contact)
	})

	t.Run("No Contact", func(t *testing.T) {
		mock.ExpectQuery("SELECT contact_details FROM site_info").
			WillReturnError(sql.ErrNoRows)

		contact, err := repo.ContactFor(ctx, 5)
		assert.NoError(t, err)
		assert.Empty(t, contact)
	})
}

func TestEnsureSchema(t *testing.T) {
	db, mock := newMock(t)
	mock.MatchExpectationsInOrder(true)

	for i := 0; i < 6; i++ {
		mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	assert.NoError(t, postgres.EnsureSchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
