package pokemon

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/pokedex-backend/internal/domain"
)

const baseURL = "https://pokeapi.co/api/v2"

func TestRepo_PutAndGet(t *testing.T) {
	t.Parallel()

	repo := New()
	p := domain.MakePokemon(baseURL, "pikachu")

	stored := repo.Put("pikachu", p)

	assert.Same(t, p, stored)
	assert.True(t, repo.Exists("pikachu"))

	got, err := repo.Get("pikachu")
	require.NoError(t, err)
	assert.Same(t, p, got)
}

func TestRepo_Get_NotFound(t *testing.T) {
	t.Parallel()

	repo := New()
	_, err := repo.Get("missingno")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.False(t, repo.Exists("missingno"))
}

func TestRepo_Put_FirstWriterWins(t *testing.T) {
	t.Parallel()

	repo := New()
	first := domain.MakePokemon(baseURL, "eevee")
	second := domain.MakePokemon(baseURL, "eevee")

	repo.Put("eevee", first)
	stored := repo.Put("eevee", second)

	assert.Same(t, first, stored)
	got, err := repo.Get("eevee")
	require.NoError(t, err)
	assert.Same(t, first, got)
	assert.Equal(t, 1, repo.Len())
}

func TestRepo_All_InsertionOrder(t *testing.T) {
	t.Parallel()

	repo := New()
	names := []string{"squirtle", "bulbasaur", "charmander"}
	for _, n := range names {
		repo.Put(n, domain.MakePokemon(baseURL, n))
	}
	repo.Put("bulbasaur", domain.MakePokemon(baseURL, "bulbasaur"))

	all := repo.All()
	require.Len(t, all, 3)
	for i, p := range all {
		assert.Equal(t, names[i], p.Name())
	}
}

func TestRepo_ConcurrentPut(t *testing.T) {
	t.Parallel()

	repo := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("p%d", i%10)
			repo.Put(name, domain.MakePokemon(baseURL, name))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, repo.Len())
}
