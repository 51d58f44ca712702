package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// TingkatanCatalogKey returns the cache key for the full tingkatan list
func (r *CacheKeyStruct) TingkatanCatalogKey() string {
	return "catalog:tingkatan"
}

// JenisPenyakitCatalogKey returns the cache key for the full jenis penyakit list
func (r *CacheKeyStruct) JenisPenyakitCatalogKey() string {
	return "catalog:jenis_penyakit"
}

// RevokedTokenKey returns the cache key marking a JWT (by jti) as logged out
func (r *CacheKeyStruct) RevokedTokenKey(jti string) string {
	return fmt.Sprintf("revoked:%s", jti)
}

// UserRevokedKey returns the cache key holding the unix second up to which
// every token issued to the user is invalid
func (r *CacheKeyStruct) UserRevokedKey(uid string) string {
	return fmt.Sprintf("user_revoked:%s", uid)
}

var CacheKey = NewCacheKeyStruct()
