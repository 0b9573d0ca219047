package memstore

import (
	"testing"

	"fittrack/api/internal/repository"
	"fittrack/api/internal/repository/repotest"
)

func TestStore(t *testing.T) {
	repotest.Run(t, func(*testing.T) repository.Store { return New() })
}
