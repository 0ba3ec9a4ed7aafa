package cli

import (
	"bytes"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/naatacademy/naat-api/internal/auth"
	"github.com/naatacademy/naat-api/internal/database"
	"github.com/naatacademy/naat-api/internal/entities"
)

func TestAdminTokenCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := NewAdminTokenCommand()
	cmd.out = &out

	require.NoError(t, cmd.ParseFlags([]string{"-cost", "4"}))
	require.NoError(t, cmd.Run())

	token := regexp.MustCompile(`(?m)^  ([0-9a-f]{64})$`).FindStringSubmatch(out.String())
	require.Len(t, token, 2, out.String())
	hash := regexp.MustCompile(`ADMIN_TOKEN_HASH='([^']+)'`).FindStringSubmatch(out.String())
	require.Len(t, hash, 2, out.String())

	assert.NoError(t, auth.CheckAdminToken(token[1], hash[1]))
}

func TestAdminTokenCommand_InvalidCost(t *testing.T) {
	cmd := NewAdminTokenCommand()
	assert.Error(t, cmd.ParseFlags([]string{"-cost", "1"}))
	assert.Error(t, cmd.ParseFlags([]string{"-cost", "99"}))
	assert.NoError(t, cmd.ParseFlags([]string{"-cost", "10"}))
	assert.GreaterOrEqual(t, cmd.Cost, bcrypt.MinCost)
}

func TestReindexCommand_ParseFlags(t *testing.T) {
	cmd := NewReindexCommand()
	require.NoError(t, cmd.ParseFlags(nil))
	assert.Empty(t, cmd.Entity)
	assert.Equal(t, 200, cmd.BatchSize)

	cmd = NewReindexCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-entity", "kalaam", "-batch", "50"}))
	assert.Equal(t, "kalaam", cmd.Entity)
	assert.Equal(t, 50, cmd.BatchSize)

	assert.Error(t, NewReindexCommand().ParseFlags([]string{"-entity", "books"}))
	assert.Error(t, NewReindexCommand().ParseFlags([]string{"-batch", "0"}))
}

func TestMigrateAndReindex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "naat.db")

	migrate := NewMigrateCommand()
	require.NoError(t, migrate.ParseFlags([]string{"-sqlite", path}))
	require.NoError(t, migrate.Run())

	db, err := database.NewDatabase(database.Config{Driver: database.DriverSQLite, Path: path, LogLevel: "silent"})
	require.NoError(t, err)
	stale := entities.Article{Title: "Madina", WriterID: 1, CategoryID: 1, SearchKeys: "stale"}
	require.NoError(t, db.DB.Create(&stale).Error)
	require.NoError(t, db.Close())

	reindex := NewReindexCommand()
	require.NoError(t, reindex.ParseFlags([]string{"-sqlite", path, "-entity", "article"}))
	require.NoError(t, reindex.Run())

	db, err = database.NewDatabase(database.Config{Driver: database.DriverSQLite, Path: path, LogLevel: "silent"})
	require.NoError(t, err)
	defer db.Close()

	var got entities.Article
	require.NoError(t, db.DB.First(&got, stale.ArticleID).Error)
	assert.NotEqual(t, "stale", got.SearchKeys)
	assert.Contains(t, got.SearchKeys, "madina")
}
