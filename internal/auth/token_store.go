package auth

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hitoshi/chatcount/internal/model"
)

// TokenStore はアクセストークンの保存と読み出しのインターフェース。
type TokenStore interface {
	Save(token *Token) error
	Load() (*Token, error)
}

// FileTokenStore はトークンをJSONファイルに保存する実装。
// 単一ユーザー運用のため、ファイル1つで十分とする。
type FileTokenStore struct {
	path string
}

// NewFileTokenStore はFileTokenStoreを生成する。
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Save はトークンをJSONとして書き出す。トークンは秘匿情報なので0600で保存する。
func (s *FileTokenStore) Save(token *Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Load は保存済みトークンを読み出す。ファイルが存在しない場合は
// TOKEN_NOT_FOUNDエラーを返す。
func (s *FileTokenStore) Load() (*Token, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.NewTokenNotFoundError(s.path)
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	if token.AccessToken == "" {
		return nil, model.NewTokenNotFoundError(s.path)
	}
	return &token, nil
}

// compile-time interface check
var _ TokenStore = (*FileTokenStore)(nil)
