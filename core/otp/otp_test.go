package otp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	token := "SUPERADMIN2024KEY"
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	code := Generate(token, at)
	require.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9', "code must be numeric, got %q", code)
	}

	// same second bucket yields the same code
	assert.Equal(t, code, Generate(token, at.Add(500*time.Millisecond)))

	// next bucket yields a different code for this token
	assert.NotEqual(t, code, Generate(token, at.Add(time.Second)))

	// different tokens yield different codes within the same bucket
	assert.NotEqual(t, code, Generate("other-token", at))
}

func TestGenerate_negativeHashIsFolded(t *testing.T) {
	// scan a range of buckets; every code must stay within 6 digits
	token := "SUPERADMIN2024KEY"
	at := time.Unix(1_700_000_000, 0)
	for i := 0; i < 100; i++ {
		code := Generate(token, at.Add(time.Duration(i)*time.Second))
		require.Len(t, code, 6)
	}
}

func TestCountdown_expiry(t *testing.T) {
	c := NewCountdown(20 * time.Millisecond)

	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("countdown did not expire")
	}

	assert.Equal(t, time.Duration(0), c.Remaining())
	assert.False(t, c.Reset(time.Minute), "Reset must fail after expiry")

	// Done stays closed; a second receive must not block
	select {
	case <-c.Done():
	default:
		t.Fatal("Done must remain closed after expiry")
	}
}

func TestCountdown_reset(t *testing.T) {
	c := NewCountdown(30 * time.Millisecond)
	require.True(t, c.Reset(200*time.Millisecond))

	select {
	case <-c.Done():
		t.Fatal("countdown expired before the re-armed window")
	case <-time.After(60 * time.Millisecond):
	}

	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("re-armed countdown did not expire")
	}
}

func TestCountdown_stop(t *testing.T) {
	c := NewCountdown(20 * time.Millisecond)
	c.Stop()

	select {
	case <-c.Done():
		t.Fatal("Done must never fire after Stop")
	case <-time.After(60 * time.Millisecond):
	}
	assert.False(t, c.Reset(time.Minute), "Reset must fail after Stop")
}

func TestCountdown_remaining(t *testing.T) {
	c := NewCountdown(time.Minute)
	defer c.Stop()

	left := c.Remaining()
	assert.Greater(t, left, 50*time.Second)
	assert.LessOrEqual(t, left, time.Minute)
}
