package memory

import (
	"time"

	"studynotes-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ProfileCache keeps recently resolved users in process memory so the
// profile endpoint does not hit the database on every request. It is
// invalidated on any profile mutation; correctness never depends on
// it.
type ProfileCache struct {
	cache *cache.Cache
}

func NewProfileCache() *ProfileCache {
	// 10 minute default expiration, purge sweep every 5 minutes
	c := cache.New(10*time.Minute, 5*time.Minute)
	return &ProfileCache{
		cache: c,
	}
}

func (r *ProfileCache) Save(user *entity.User) {
	r.cache.Set(user.Id.String(), user, cache.DefaultExpiration)
}

func (r *ProfileCache) Get(userId uuid.UUID) (*entity.User, bool) {
	if x, found := r.cache.Get(userId.String()); found {
		return x.(*entity.User), true
	}
	return nil, false
}

func (r *ProfileCache) Invalidate(userId uuid.UUID) {
	r.cache.Delete(userId.String())
}
