package usecase_test

import (
	"os"
	"testing"

	"go-jobsearch-agent/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}
