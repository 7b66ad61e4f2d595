package gorm

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	gormpkg "gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/doodlesbykumbi/lecture-eval/pkg/server/store"
)

func newMockDB(t *testing.T) (*gormpkg.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	db, err := gormpkg.Open(
		postgres.New(postgres.Config{
			Conn:                 mockDB,
			PreferSimpleProtocol: true,
		}),
		&gormpkg.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	require.NoError(t, err)
	return db, mock
}

func TestRegisterUser(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewUsersStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`LOCK TABLE users IN SHARE ROW EXCLUSIVE MODE`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1`).
		WithArgs("ada@example.edu").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	user, err := s.RegisterUser(context.Background(), "Ada", "ada@example.edu")
	require.NoError(t, err)
	assert.Equal(t, &store.User{Index: "0003", Name: "Ada", Email: "ada@example.edu"}, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewUsersStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`LOCK TABLE users`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1`).
		WithArgs("ada@example.edu").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := s.RegisterUser(context.Background(), "Ada", "ada@example.edu")
	assert.ErrorIs(t, err, store.ErrUserExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterUserLockFailure(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewUsersStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`LOCK TABLE users`).WillReturnError(errors.New("lock timeout"))
	mock.ExpectRollback()

	_, err := s.RegisterUser(context.Background(), "Ada", "ada@example.edu")
	assert.ErrorContains(t, err, "lock timeout")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserExists(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewUsersStore(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE user_index = \$1`).
		WithArgs("0001").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE user_index = \$1`).
		WithArgs("0404").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := s.UserExists(context.Background(), "0001")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.UserExists(context.Background(), "0404")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddLecturer(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewLecturersStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`LOCK TABLE lecturers IN SHARE ROW EXCLUSIVE MODE`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "lecturers"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "lecturers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	lecturer, err := s.AddLecturer(context.Background(), "Dr. Turing", "Computer Science")
	require.NoError(t, err)
	assert.Equal(t, &store.Lecturer{ID: "L0001", Name: "Dr. Turing", Department: "Computer Science"}, lecturer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLecturer(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewLecturersStore(db)

	mock.ExpectQuery(`SELECT \* FROM "lecturers" WHERE lecturer_id = \$1`).
		WithArgs("L0001").
		WillReturnRows(sqlmock.NewRows([]string{"id", "lecturer_id", "name", "department"}).
			AddRow(1, "L0001", "Dr. Turing", "Computer Science"))
	mock.ExpectQuery(`SELECT \* FROM "lecturers" WHERE lecturer_id = \$1`).
		WithArgs("L0404").
		WillReturnRows(sqlmock.NewRows([]string{"id", "lecturer_id", "name", "department"}))

	lecturer, err := s.GetLecturer(context.Background(), "L0001")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Turing", lecturer.Name)

	_, err = s.GetLecturer(context.Background(), "L0404")
	assert.ErrorIs(t, err, store.ErrLecturerNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListLecturers(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewLecturersStore(db)

	mock.ExpectQuery(`SELECT \* FROM "lecturers" ORDER BY id LIMIT 2 OFFSET 1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "lecturer_id", "name", "department"}).
			AddRow(2, "L0002", "Dr. Noether", "Mathematics"))

	lecturers, err := s.ListLecturers(context.Background(), store.Page{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, []store.Lecturer{{ID: "L0002", Name: "Dr. Noether", Department: "Mathematics"}}, lecturers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitAndListEvaluations(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewEvaluationsStore(db)
	comment := "clear explanations"

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "evaluations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	require.NoError(t, s.SubmitEvaluation(context.Background(), store.Evaluation{
		UserIndex:  "0001",
		LecturerID: "L0001",
		Rating:     5,
		Comments:   &comment,
	}))

	mock.ExpectQuery(`SELECT \* FROM "evaluations" WHERE user_index = \$1 AND lecturer_id = \$2 ORDER BY id`).
		WithArgs("0001", "L0001").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_index", "lecturer_id", "rating", "comments"}).
			AddRow(1, "0001", "L0001", 5, comment).
			AddRow(2, "0001", "L0001", 3, nil))

	evaluations, err := s.ListEvaluations(context.Background(), store.EvaluationFilter{UserIndex: "0001", LecturerID: "L0001"})
	require.NoError(t, err)
	require.Len(t, evaluations, 2)
	assert.Equal(t, comment, *evaluations[0].Comments)
	assert.Nil(t, evaluations[1].Comments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummarizeLecturer(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewEvaluationsStore(db)

	mock.ExpectQuery(`SELECT rating, count\(\*\) AS count FROM "evaluations" WHERE lecturer_id = \$1 GROUP BY`).
		WithArgs("L0001").
		WillReturnRows(sqlmock.NewRows([]string{"rating", "count"}).
			AddRow(2, 1).
			AddRow(5, 3))

	summary, err := s.SummarizeLecturer(context.Background(), "L0001")
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Count)
	assert.InDelta(t, 4.25, summary.Average, 1e-9)
	assert.Equal(t, map[int]int{2: 1, 5: 3}, summary.Distribution)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckConnectivity(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewHealthStore(db)

	mock.ExpectExec(`SELECT 1`).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.NoError(t, s.CheckConnectivity(context.Background()))

	mock.ExpectExec(`SELECT 1`).WillReturnError(errors.New("connection refused"))
	assert.Error(t, s.CheckConnectivity(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
