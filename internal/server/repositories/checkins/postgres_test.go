package checkins

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestRecord_InsertsOrBumps(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"user_id", "date", "letters_learned", "created_at"}).
		AddRow("u1", "2026-08-31", 2, time.Now())
	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+checkins.*ON\s+CONFLICT\s*\(user_id,\s*date\)\s*DO\s+UPDATE`).
		WithArgs("u1", "2026-08-31").
		WillReturnRows(rows)

	c, err := repo.Record(context.Background(), "u1", "2026-08-31")
	if err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if c.Date != "2026-08-31" || c.LettersLearned != 2 {
		t.Fatalf("unexpected checkin: %+v", c)
	}
}

func TestListByUser_NewestFirstWithLimit(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"user_id", "date", "letters_learned", "created_at"}).
		AddRow("u1", "2026-08-31", 1, time.Now()).
		AddRow("u1", "2026-08-30", 3, time.Now())
	mock.ExpectQuery(`(?s)SELECT.*FROM\s+checkins.*ORDER\s+BY\s+date\s+DESC.*LIMIT\s+\$2`).
		WithArgs("u1", 30).
		WillReturnRows(rows)

	list, err := repo.ListByUser(context.Background(), "u1", 30)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(list) != 2 || list[0].Date != "2026-08-31" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestListByUser_NoLimit(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT.*FROM\s+checkins.*ORDER\s+BY\s+date\s+DESC\s*$`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "date", "letters_learned", "created_at"}))

	list, err := repo.ListByUser(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %+v", list)
	}
}
