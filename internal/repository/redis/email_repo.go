package redis

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	DefaultEmailCodeTTL = 5 * time.Minute
	EmailCodePrefix     = "email:code"

	// 两阶段键：先写 pending，邮件发出后用 lua 原子转成 confirmed
	PendingSuffix   = "pending"
	ConfirmedSuffix = "confirmed"
)

var (
	ErrEmailNotFound       = errors.New("email code not found")
	ErrEmailCodeDelFailed  = errors.New("email code delete failed")
	ErrCodePendingFailed   = errors.New("code pending failed")
	ErrCodeConfirmedFailed = errors.New("code confirmed failed")
)

type EmailRepository struct{}

func codeKey(scope, stage, email string) string {
	return fmt.Sprintf("%s:%s:%s:%s", EmailCodePrefix, scope, stage, email)
}

// SetCodePending 写入 pending 键，带 TTL
func (e *EmailRepository) SetCodePending(ctx context.Context, scope, email, code string) error {
	key := codeKey(scope, PendingSuffix, email)
	if err := Client.Set(ctx, key, code, DefaultEmailCodeTTL).Err(); err != nil {
		return ErrCodePendingFailed
	}
	return nil
}

// PromoteCode 将 pending 转为 confirmed（重置 TTL），lua 保证原子性
func (e *EmailRepository) PromoteCode(ctx context.Context, scope, email string) error {
	srcKey := codeKey(scope, PendingSuffix, email)
	dstKey := codeKey(scope, ConfirmedSuffix, email)

	script := `
local val = redis.call("GET", KEYS[1])
if not val then
  return 0
end
redis.call("SET", KEYS[2], val, "PX", ARGV[1])
redis.call("DEL", KEYS[1])
return 1
`
	px := int64(DefaultEmailCodeTTL / time.Millisecond)
	res := Client.Eval(ctx, script, []string{srcKey, dstKey}, px)
	if err := res.Err(); err != nil {
		return ErrCodeConfirmedFailed
	}
	ok, _ := res.Int()
	if ok != 1 {
		return ErrCodeConfirmedFailed
	}
	return nil
}

// DeleteCodePending 删除 pending 键（幂等），发信失败时回收
func (e *EmailRepository) DeleteCodePending(ctx context.Context, scope, email string) error {
	key := codeKey(scope, PendingSuffix, email)
	if err := Client.Del(ctx, key).Err(); err != nil {
		return ErrEmailCodeDelFailed
	}
	return nil
}

// GetConfirmedCode 校验时读取 confirmed 的验证码
func (e *EmailRepository) GetConfirmedCode(ctx context.Context, scope, email string) (string, error) {
	key := codeKey(scope, ConfirmedSuffix, email)
	val, err := Client.Get(ctx, key).Result()
	if err != nil {
		return "", ErrEmailNotFound
	}
	return val, nil
}

// DeleteCode 验证通过后一次性删除
func (e *EmailRepository) DeleteCode(ctx context.Context, scope, email string) error {
	key := codeKey(scope, ConfirmedSuffix, email)
	if err := Client.Del(ctx, key).Err(); err != nil {
		return ErrEmailCodeDelFailed
	}
	return nil
}
