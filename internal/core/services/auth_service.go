package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPassphrase = errors.New("invalid passphrase")
	ErrAuthDisabled      = errors.New("authentication is not configured")
)

// AuthService exchanges the owner passphrase for a session token.
type AuthService struct {
	passphraseHash []byte
	tokens         *TokenService
}

// NewAuthService accepts either a bcrypt hash or a plain passphrase, which
// is hashed once at startup. With neither, Unlock always fails.
func NewAuthService(passphrase, passphraseHash string, tokens *TokenService) (*AuthService, error) {
	s := &AuthService{tokens: tokens}

	switch {
	case passphraseHash != "":
		if _, err := bcrypt.Cost([]byte(passphraseHash)); err != nil {
			return nil, fmt.Errorf("auth service: invalid passphrase hash: %w", err)
		}
		s.passphraseHash = []byte(passphraseHash)
	case passphrase != "":
		hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("auth service: failed to hash passphrase: %w", err)
		}
		s.passphraseHash = hash
	}

	return s, nil
}

func (s *AuthService) Unlock(passphrase string) (string, error) {
	if len(s.passphraseHash) == 0 || s.tokens == nil {
		return "", ErrAuthDisabled
	}
	if err := bcrypt.CompareHashAndPassword(s.passphraseHash, []byte(passphrase)); err != nil {
		return "", ErrInvalidPassphrase
	}
	return s.tokens.GenerateToken(OwnerSubject)
}
