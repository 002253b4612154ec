package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGormConfig_KeepsDriverErrors(t *testing.T) {
	conf := gormConfig()

	assert.False(t, conf.TranslateError)
	assert.NotNil(t, conf.Logger)
}
