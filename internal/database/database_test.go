package database_test

import (
	"testing"

	"storefront/internal/database"
	"storefront/internal/models"

	"github.com/google/uuid"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOpen_LogsThroughLogrus(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	db, err := database.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared", log)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Ping(db))
	hook.Reset()

	var product models.Product
	err = db.First(&product, 42).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, hook.AllEntries(), "missing records are not logged")

	assert.Error(t, db.Exec("SELECT * FROM no_such_table").Error)
	assert.NotEmpty(t, hook.AllEntries(), "query errors are logged")
}

func TestOpen_UnknownDriver(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	_, err := database.Open("oracle", "dsn", log)
	assert.Error(t, err)
}
