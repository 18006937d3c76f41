package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lifelessonsapp/lifelessons-backend/internal/access"
	"github.com/lifelessonsapp/lifelessons-backend/internal/database"
	"github.com/lifelessonsapp/lifelessons-backend/internal/models"
)

// newTestDB opens a per-test in-memory database. The DSN is keyed by test
// name so parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, role string, premium bool) models.User {
	t.Helper()
	user := models.User{
		ID:          uuid.New(),
		Email:       email,
		Password:    "x",
		DisplayName: strings.Split(email, "@")[0],
		Role:        role,
		IsPremium:   premium,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedLesson(t *testing.T, db *gorm.DB, creator, privacy, level string) models.Lesson {
	t.Helper()
	lesson := models.Lesson{
		ID:           uuid.New(),
		Title:        "Listen more than you speak",
		Description:  "The hardest lessons come from the conversations you almost skipped.",
		Category:     string(access.CategoryPersonalGrowth),
		Tone:         string(access.ToneRealization),
		Privacy:      privacy,
		AccessLevel:  level,
		CreatorEmail: creator,
	}
	require.NoError(t, db.Create(&lesson).Error)
	return lesson
}

func asViewer(email, role string, premium bool) access.Viewer {
	return access.Viewer{Email: email, Role: access.Role(role), IsPremium: premium}
}
