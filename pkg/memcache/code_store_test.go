package memcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeekDoesNotConsume(t *testing.T) {
	s := NewCodeStore()
	s.Set("otp:a@example.com", "123456", time.Minute)

	for i := 0; i < 3; i++ {
		v, ok := s.Peek("otp:a@example.com")
		assert.True(t, ok)
		assert.Equal(t, "123456", v)
	}
}

func TestConsumeIsSingleUse(t *testing.T) {
	s := NewCodeStore()
	s.Set("reset:token", "user-id", time.Minute)

	v, ok := s.Consume("reset:token")
	assert.True(t, ok)
	assert.Equal(t, "user-id", v)

	_, ok = s.Consume("reset:token")
	assert.False(t, ok)
	_, ok = s.Peek("reset:token")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	s := NewCodeStore()
	s.Set("otp:a@example.com", "123456", 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)

	_, ok := s.Peek("otp:a@example.com")
	assert.False(t, ok)
	_, ok = s.Consume("otp:a@example.com")
	assert.False(t, ok)
}

func TestSetOverwrites(t *testing.T) {
	s := NewCodeStore()
	s.Set("otp:a@example.com", "111111", time.Minute)
	s.Set("otp:a@example.com", "222222", time.Minute)

	v, ok := s.Peek("otp:a@example.com")
	assert.True(t, ok)
	assert.Equal(t, "222222", v)
}

func TestDelete(t *testing.T) {
	s := NewCodeStore()
	s.Set("otp:a@example.com", "123456", time.Minute)
	s.Delete("otp:a@example.com")

	_, ok := s.Peek("otp:a@example.com")
	assert.False(t, ok)
}

func TestMissingKey(t *testing.T) {
	s := NewCodeStore()

	_, ok := s.Peek("nope")
	assert.False(t, ok)
	_, ok = s.Consume("nope")
	assert.False(t, ok)
}
