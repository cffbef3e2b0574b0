package domain

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSession_DefaultsToLoopback(t *testing.T) {
	s := NewSession("  ")
	assert.Equal(t, DefaultBaseURL, s.BaseURL())
	assert.Empty(t, s.Token())
}

func TestSession_SetBaseURL(t *testing.T) {
	s := NewSession("")

	assert.False(t, s.SetBaseURL("   "))
	assert.Equal(t, DefaultBaseURL, s.BaseURL())

	assert.True(t, s.SetBaseURL(" http://backend:8000/ "))
	assert.Equal(t, "http://backend:8000", s.BaseURL())
}

func TestSession_SignInAndOut(t *testing.T) {
	s := NewSession("http://x")
	s.SignIn("T1", "student")

	snap := s.Snapshot()
	assert.Equal(t, SessionSnapshot{BaseURL: "http://x", Token: "T1", UserType: "student"}, snap)

	s.SignOut()
	snap = s.Snapshot()
	assert.Empty(t, snap.Token)
	assert.Empty(t, snap.UserType)
	assert.Equal(t, "http://x", snap.BaseURL)
}

func TestSession_ConcurrentAccess(t *testing.T) {
	s := NewSession("")
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SignIn("tok", "企业")
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
		}()
	}
	wg.Wait()
	assert.Equal(t, "tok", s.Token())
}
