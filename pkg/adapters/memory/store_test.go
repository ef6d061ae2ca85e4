package memory_test

import (
	"testing"

	"github.com/aretw0/scormkit/pkg/adapters/memory"
	"github.com/aretw0/scormkit/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunStorageContract(t, store)
}
