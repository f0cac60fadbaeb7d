package commands

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"grocery-api/internal/domain/user"
	reqdto "grocery-api/internal/handler/dto/request"
	"grocery-api/internal/infra"
	"grocery-api/internal/pkg/clock"
	"grocery-api/internal/pkg/errs"
	"grocery-api/internal/pkg/jwt"
	"grocery-api/internal/pkg/password"
	"grocery-api/internal/usecase/shared"
)

var (
	ErrInvalidPhone       = errs.New("phone number must be E.164")
	ErrTooManyCodes       = errs.New("verification code request limit reached")
	ErrSMSDeliveryFailed  = errs.New("sms provider failed to deliver the code")
	ErrCodeExpired        = errs.New("verification code expired or never sent")
	ErrCodeMismatch       = errs.New("verification code does not match")
	ErrResetTokenInvalid  = errs.New("reset token invalid")
	ErrResetTokenExpired  = errs.New("reset token expired or already used")
	ErrVerificationFailed = errs.New("verification state operation failed")
)

const (
	codeTTL        = 30 * time.Minute
	sendWindow     = time.Hour
	maxSendsPerWin = 3
)

type SendCodeResult struct {
	ExpiresAt         time.Time
	AttemptsRemaining int
}

type VerifyCodeResult struct {
	// CustomToken is set for registration verifications.
	CustomToken string
	// ResetToken is set for password_reset verifications.
	ResetToken string
}

type VerificationCommands interface {
	SendVerificationCode(ctx context.Context, req reqdto.SendVerificationCodeRequest) (*SendCodeResult, error)
	VerifyCode(ctx context.Context, req reqdto.VerifyCodeRequest) (*VerifyCodeResult, error)
	ResetPassword(ctx context.Context, req reqdto.ResetPasswordRequest) error
}

type verificationCommandsImpl struct {
	uow    shared.UnitOfWork
	users  shared.UserRepository
	store  VerificationStore
	sender CodeSender
	jwt    *jwt.Service
	clock  clock.Clock
}

func NewVerificationCommands(
	uow shared.UnitOfWork,
	users shared.UserRepository,
	store VerificationStore,
	sender CodeSender,
	jwtService *jwt.Service,
	clock clock.Clock,
) VerificationCommands {
	return &verificationCommandsImpl{
		uow:    uow,
		users:  users,
		store:  store,
		sender: sender,
		jwt:    jwtService,
		clock:  clock,
	}
}

// SendVerificationCode issues a fresh 6-digit code over SMS. At most
// three sends per phone per hour; the window slides, resetting only
// after an hour without a send.
func (v *verificationCommandsImpl) SendVerificationCode(ctx context.Context, req reqdto.SendVerificationCodeRequest) (*SendCodeResult, error) {
	phone, err := user.NewPhone(req.PhoneNumber)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidPhone)
	}

	count, err := v.store.IncrementSendCount(ctx, phone.Value(), sendWindow)
	if err != nil {
		return nil, errs.Mark(err, ErrVerificationFailed)
	}
	if count > maxSendsPerWin {
		return nil, ErrTooManyCodes
	}

	code, err := generateCode()
	if err != nil {
		return nil, errs.Mark(err, ErrVerificationFailed)
	}
	hash, err := password.HashPassword(code)
	if err != nil {
		return nil, errs.Mark(err, ErrVerificationFailed)
	}

	if err := v.store.SaveCodeHash(ctx, phone.Value(), req.Type, hash, codeTTL); err != nil {
		return nil, errs.Mark(err, ErrVerificationFailed)
	}

	if err := v.sender.SendCode(ctx, phone.Value(), code); err != nil {
		return nil, errs.Mark(err, ErrSMSDeliveryFailed)
	}

	return &SendCodeResult{
		ExpiresAt:         v.clock.Now().Add(codeTTL),
		AttemptsRemaining: maxSendsPerWin - count,
	}, nil
}

func (v *verificationCommandsImpl) VerifyCode(ctx context.Context, req reqdto.VerifyCodeRequest) (*VerifyCodeResult, error) {
	phone, err := user.NewPhone(req.PhoneNumber)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidPhone)
	}

	hash, err := v.store.CodeHash(ctx, phone.Value(), req.Type)
	if err != nil {
		return nil, errs.Mark(err, ErrVerificationFailed)
	}
	if hash == "" {
		return nil, ErrCodeExpired
	}
	if err := password.ComparePassword(hash, req.Code); err != nil {
		return nil, ErrCodeMismatch
	}

	if err := v.store.DeleteCode(ctx, phone.Value(), req.Type); err != nil {
		return nil, errs.Mark(err, ErrVerificationFailed)
	}

	switch req.Type {
	case "registration":
		return v.finishRegistration(ctx, phone)
	default:
		return v.issueResetToken(ctx, phone)
	}
}

// finishRegistration ensures the phone has a user record and hands back a
// custom token the client exchanges for a session.
func (v *verificationCommandsImpl) finishRegistration(ctx context.Context, phone user.Phone) (*VerifyCodeResult, error) {
	var account *user.User

	err := v.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := tx.Users().FindByPhone(ctx, tx.DB(), phone.Value())
		if err == nil {
			account = existing
			return nil
		}
		if !infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrVerificationFailed)
		}

		account = user.NewCustomer(phone, v.clock.Now())
		if err := tx.Users().Create(ctx, tx.DB(), account); err != nil {
			return errs.Mark(err, ErrVerificationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := v.jwt.GenerateCustomToken(account.ID, account.Role, account.Phone)
	if err != nil {
		return nil, errs.Mark(err, ErrVerificationFailed)
	}
	return &VerifyCodeResult{CustomToken: token}, nil
}

func (v *verificationCommandsImpl) issueResetToken(ctx context.Context, phone user.Phone) (*VerifyCodeResult, error) {
	token, jti, err := v.jwt.GenerateResetToken(phone.Value())
	if err != nil {
		return nil, errs.Mark(err, ErrVerificationFailed)
	}
	if err := v.store.PutResetToken(ctx, jti, jwt.ResetTokenDuration); err != nil {
		return nil, errs.Mark(err, ErrVerificationFailed)
	}
	return &VerifyCodeResult{ResetToken: token}, nil
}

// ResetPassword consumes a reset token and re-hashes the password. The
// token id is one-shot; replays are rejected even inside the window.
func (v *verificationCommandsImpl) ResetPassword(ctx context.Context, req reqdto.ResetPasswordRequest) error {
	phone, err := user.NewPhone(req.PhoneNumber)
	if err != nil {
		return errs.Mark(err, ErrInvalidPhone)
	}

	claims, err := v.jwt.ValidateTokenWithPurpose(req.VerificationToken, jwt.PurposePasswordReset)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return ErrResetTokenExpired
		}
		return ErrResetTokenInvalid
	}
	if claims.Phone != phone.Value() {
		return ErrResetTokenInvalid
	}

	live, err := v.store.ConsumeResetToken(ctx, claims.ID)
	if err != nil {
		return errs.Mark(err, ErrVerificationFailed)
	}
	if !live {
		return ErrResetTokenExpired
	}

	pw, err := user.NewPassword(req.NewPassword)
	if err != nil {
		return err
	}
	hash, err := password.HashPassword(pw.Value())
	if err != nil {
		return errs.Mark(err, ErrVerificationFailed)
	}

	return v.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		account, err := tx.Users().FindByPhone(ctx, tx.DB(), phone.Value())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrUserNotFound
			}
			return errs.Mark(err, ErrVerificationFailed)
		}
		if err := tx.Users().UpdatePasswordHash(ctx, tx.DB(), account.ID, hash); err != nil {
			return errs.Mark(err, ErrVerificationFailed)
		}
		return nil
	})
}

// generateCode draws six crypto-random decimal digits.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
