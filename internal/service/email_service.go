package service

import (
	"context"

	"Connect_Hub/internal/pkg"
	"Connect_Hub/internal/repository/redis"
)

// EmailCodeStore 验证码两阶段存储接口
type EmailCodeStore interface {
	SetCodePending(ctx context.Context, scope, email, code string) error
	PromoteCode(ctx context.Context, scope, email string) error
	DeleteCodePending(ctx context.Context, scope, email string) error
	GetConfirmedCode(ctx context.Context, scope, email string) (string, error)
	DeleteCode(ctx context.Context, scope, email string) error
}

type EmailService struct {
	emailCfg pkg.SMTPConfig
	codes    EmailCodeStore
}

func NewEmailService(cfg pkg.SMTPConfig, codes EmailCodeStore) *EmailService {
	return &EmailService{emailCfg: cfg, codes: codes}
}

// SendRegisterCode 发送注册验证码：先写 pending，邮件发出后转 confirmed
func (s *EmailService) SendRegisterCode(ctx context.Context, email string) error {
	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}

	if err = s.codes.SetCodePending(ctx, "register", email, code); err != nil {
		return err
	}

	html := pkg.EmailCodeHTML("sign up", code, redis.DefaultEmailCodeTTL)
	if err = pkg.SendEmail(s.emailCfg, email, "Connect Hub signup code", html); err != nil {
		// 发信失败回收 pending 键
		_ = s.codes.DeleteCodePending(ctx, "register", email)
		return err
	}

	return s.codes.PromoteCode(ctx, "register", email)
}

// VerifyCode 校验验证码，命中后一次性删除
func (s *EmailService) VerifyCode(ctx context.Context, scope, email, code string) (bool, error) {
	val, err := s.codes.GetConfirmedCode(ctx, scope, email)
	if err != nil {
		// 不存在或已过期
		return false, err
	}
	if val != code {
		return false, nil
	}
	if err = s.codes.DeleteCode(ctx, scope, email); err != nil {
		return false, err
	}
	return true, nil
}
