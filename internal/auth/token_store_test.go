package auth

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/hitoshi/chatcount/internal/model"
)

func TestFileTokenStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kakao_token.json")
	store := NewFileTokenStore(path)

	saved := &Token{
		AccessToken:  "at-123",
		TokenType:    "bearer",
		ExpiresIn:    21599,
		RefreshToken: "rt-456",
		ObtainedAt:   time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := store.Save(saved); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.AccessToken != saved.AccessToken {
		t.Errorf("AccessToken = %q, want %q", loaded.AccessToken, saved.AccessToken)
	}
	if !loaded.ObtainedAt.Equal(saved.ObtainedAt) {
		t.Errorf("ObtainedAt = %v, want %v", loaded.ObtainedAt, saved.ObtainedAt)
	}
}

func TestFileTokenStore_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file permissions are not enforced on windows")
	}

	path := filepath.Join(t.TempDir(), "kakao_token.json")
	store := NewFileTokenStore(path)

	if err := store.Save(&Token{AccessToken: "at"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("token file permission = %o, want 600", perm)
	}
}

func TestFileTokenStore_LoadMissing(t *testing.T) {
	store := NewFileTokenStore(filepath.Join(t.TempDir(), "missing.json"))

	_, err := store.Load()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	apiErr, ok := err.(*model.APIError)
	if !ok {
		t.Fatalf("expected *model.APIError, got %T", err)
	}
	if apiErr.Code != model.ErrCodeTokenNotFound {
		t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodeTokenNotFound)
	}
}

func TestFileTokenStore_LoadEmptyToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kakao_token.json")
	if err := os.WriteFile(path, []byte(`{"token_type":"bearer"}`), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	_, err := NewFileTokenStore(path).Load()
	if err == nil {
		t.Fatal("expected error for token file without access_token, got nil")
	}
}
