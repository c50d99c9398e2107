package cmd

import (
	"testing"

	"github.com/magiconair/properties/assert"
	"github.com/sirupsen/logrus"
)

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logLevel(false), logrus.WarnLevel)
	assert.Equal(t, logLevel(true), logrus.DebugLevel)
}
