package memory_test

import (
	"testing"

	"github.com/aretw0/patchbay/pkg/adapters/memory"
	"github.com/aretw0/patchbay/pkg/snapshot"
)

func TestStoreContract(t *testing.T) {
	snapshot.RunStoreContract(t, memory.NewStore())
}
