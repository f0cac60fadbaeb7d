//go:build unit

package fake

import (
	"context"
	"time"
)

// VerificationStore keeps verification state in plain maps. TTLs are
// ignored; a test that needs expiry deletes the entry itself.
type VerificationStore struct {
	SendCounts map[string]int
	CodeHashes map[string]string
	ResetJTIs  map[string]bool

	IncrementErr error
	SaveErr      error
	LookupErr    error
	ConsumeErr   error
}

func NewVerificationStore() *VerificationStore {
	return &VerificationStore{
		SendCounts: make(map[string]int),
		CodeHashes: make(map[string]string),
		ResetJTIs:  make(map[string]bool),
	}
}

func (s *VerificationStore) IncrementSendCount(_ context.Context, phone string, _ time.Duration) (int, error) {
	if s.IncrementErr != nil {
		return 0, s.IncrementErr
	}
	s.SendCounts[phone]++
	return s.SendCounts[phone], nil
}

func (s *VerificationStore) SaveCodeHash(_ context.Context, phone, kind, hash string, _ time.Duration) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.CodeHashes[phone+"|"+kind] = hash
	return nil
}

func (s *VerificationStore) CodeHash(_ context.Context, phone, kind string) (string, error) {
	if s.LookupErr != nil {
		return "", s.LookupErr
	}
	return s.CodeHashes[phone+"|"+kind], nil
}

func (s *VerificationStore) DeleteCode(_ context.Context, phone, kind string) error {
	delete(s.CodeHashes, phone+"|"+kind)
	return nil
}

func (s *VerificationStore) PutResetToken(_ context.Context, jti string, _ time.Duration) error {
	s.ResetJTIs[jti] = true
	return nil
}

func (s *VerificationStore) ConsumeResetToken(_ context.Context, jti string) (bool, error) {
	if s.ConsumeErr != nil {
		return false, s.ConsumeErr
	}
	live := s.ResetJTIs[jti]
	delete(s.ResetJTIs, jti)
	return live, nil
}

type SentCode struct {
	Phone string
	Code  string
}

type CodeSender struct {
	Sent []SentCode
	Err  error
}

func NewCodeSender() *CodeSender {
	return &CodeSender{}
}

func (s *CodeSender) SendCode(_ context.Context, phone, code string) error {
	if s.Err != nil {
		return s.Err
	}
	s.Sent = append(s.Sent, SentCode{Phone: phone, Code: code})
	return nil
}
