package cache

import (
	"context"
	"errors"
	"time"

	pkgcache "DugoutEdge/pkg/cache"
)

// ServiceBytes adapts a pkg/cache Service to the BytesCache the HTTP
// handlers use. Payloads are stored as raw strings so replayed bodies
// stay byte-identical.
type ServiceBytes struct {
	svc pkgcache.Service
}

func NewServiceBytes(svc pkgcache.Service) *ServiceBytes {
	return &ServiceBytes{svc: svc}
}

func (s *ServiceBytes) GetBytes(key string) ([]byte, bool, error) {
	var raw string
	if err := s.svc.Get(context.Background(), key, &raw); err != nil {
		if errors.Is(err, pkgcache.ErrCacheMiss) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(raw), true, nil
}

func (s *ServiceBytes) SetBytes(key string, value []byte, ttl time.Duration) error {
	return s.svc.Set(context.Background(), key, string(value), ttl)
}
