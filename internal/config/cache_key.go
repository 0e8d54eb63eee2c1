package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SessionKey returns the cache key resolving a session token to its identity.
func (r *CacheKeyStruct) SessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// UploadTicketKey returns the cache key registering a single-use upload ticket.
func (r *CacheKeyStruct) UploadTicketKey(jti string) string {
	return fmt.Sprintf("ticket:%s", jti)
}

// StudentProgressKey returns the cache key for a student's progress snapshot.
func (r *CacheKeyStruct) StudentProgressKey(studentID int) string {
	return fmt.Sprintf("student:%d:progress", studentID)
}

var CacheKey = NewCacheKeyStruct()
