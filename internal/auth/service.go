package auth

import (
	"context"
	"fmt"
	"log/slog"
)

// OAuthProvider はOAuth認証プロバイダーのインターフェース。
type OAuthProvider interface {
	// GetLoginURL はOAuth認証URLを生成する。
	GetLoginURL(state string) string
	// ExchangeCode は認可コードをアクセストークンに交換する。
	ExchangeCode(ctx context.Context, code string) (*Token, error)
}

// Service は認証フローのビジネスロジックを提供する。
// コールバックで得たトークンをストアに保存し、送信処理から参照させる。
type Service struct {
	oauth  OAuthProvider
	store  TokenStore
	logger *slog.Logger
}

// NewService はServiceを生成する。
func NewService(oauth OAuthProvider, store TokenStore, logger *slog.Logger) *Service {
	return &Service{
		oauth:  oauth,
		store:  store,
		logger: logger,
	}
}

// GetLoginURL はOAuth認証URLを生成する。
func (s *Service) GetLoginURL(state string) string {
	return s.oauth.GetLoginURL(state)
}

// HandleCallback はOAuthコールバックを処理し、トークンを保存する。
func (s *Service) HandleCallback(ctx context.Context, code string) error {
	token, err := s.oauth.ExchangeCode(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	if err := s.store.Save(token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	s.logger.Info("kakao token saved",
		slog.Int("expires_in", token.ExpiresIn),
	)
	return nil
}

// LoadToken は保存済みトークンを読み出す。
func (s *Service) LoadToken() (*Token, error) {
	return s.store.Load()
}
