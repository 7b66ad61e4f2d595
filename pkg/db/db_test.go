package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func TestConnectRequiresURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Connect(Config{})
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://eval@localhost/eval")
	assert.Equal(t, "postgres://eval@localhost/eval", URL())
}

func TestLogMode(t *testing.T) {
	assert.Equal(t, logger.Info, LogMode("debug"))
	assert.Equal(t, logger.Error, LogMode("info"))
	assert.Equal(t, logger.Error, LogMode(""))
	assert.Equal(t, logger.Silent, LogMode("none"))
}
