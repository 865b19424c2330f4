package crud

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"warbler/domain"
)

// testDB opens a private in-memory sqlite database for one test, with
// foreign keys enforced so the cascade behavior matches postgres.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		domain.User{},
		domain.Message{},
		domain.Follow{},
		domain.Like{},
	))
	return db
}

func testServices(t *testing.T) *Services {
	t.Helper()
	s, err := NewServices(testDB(t),
		WithUser("test-pepper"),
		WithMessage(),
		WithFollow(),
		WithLike(),
		WithProfile(),
	)
	require.NoError(t, err)
	return s
}

func signupUser(t *testing.T, s *Services, username, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		Username: username,
		Email:    email,
		Password: "correct horse",
	}
	require.NoError(t, s.User.Signup(context.Background(), user))
	return user
}

func postMessage(t *testing.T, s *Services, user *domain.User, text string) *domain.Message {
	t.Helper()
	message := &domain.Message{
		UserID: user.ID,
		Text:   text,
	}
	require.NoError(t, s.Message.Create(context.Background(), message))
	return message
}

func countRows(t *testing.T, s *Services, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	tx := s.db.Model(model)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	require.NoError(t, tx.Count(&count).Error)
	return count
}
