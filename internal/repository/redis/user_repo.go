package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"Connect_Hub/internal/model"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCredentialNotFound = errors.New("credential not found")
	ErrCredentialExists   = errors.New("credential already exists")
	ErrSessionNotFound    = errors.New("session not found")
	ErrTokenNotFound      = errors.New("token not found")
	ErrRedisUnavailable   = errors.New("redis unavailable")
	ErrExtendFailed       = errors.New("token extend failed")
	ErrTokenDeleted       = errors.New("token delete failed")
)

const (
	CredentialPrefix = "user:cred"
	SessionPrefix    = "session"
	UserTokenPrefix  = "login:user:token"
	UserTokenExpire  = 60 * 30
	SessionExpire    = 60 * 60 * 24
)

type UserRepository struct{} // 凭证、会话与登录 token

/*
凭证记录：user:cred:<email> -> {name, password}
*/

// CreateCredential 只在不存在时写入，重复注册返回 ErrCredentialExists
func (r *UserRepository) CreateCredential(ctx context.Context, email string, cred *model.Credential) error {
	key := fmt.Sprintf("%s:%s", CredentialPrefix, email)
	data, err := json.Marshal(cred)
	if err != nil {
		return err
	}
	ok, err := Client.SetNX(ctx, key, data, 0).Result()
	if err != nil {
		return ErrRedisUnavailable
	}
	if !ok {
		return ErrCredentialExists
	}
	return nil
}

func (r *UserRepository) GetCredential(ctx context.Context, email string) (*model.Credential, error) {
	key := fmt.Sprintf("%s:%s", CredentialPrefix, email)
	data, err := Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCredentialNotFound
	}
	if err != nil {
		return nil, ErrRedisUnavailable
	}
	var cred model.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, err
	}
	return &cred, nil
}

// UpdateCredential 覆盖写，修改密码时使用
func (r *UserRepository) UpdateCredential(ctx context.Context, email string, cred *model.Credential) error {
	key := fmt.Sprintf("%s:%s", CredentialPrefix, email)
	data, err := json.Marshal(cred)
	if err != nil {
		return err
	}
	if err := Client.Set(ctx, key, data, 0).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

/*
会话记录：session:<userID> -> User JSON，登出时删除
*/

func (r *UserRepository) SaveSession(ctx context.Context, user *model.User) error {
	key := fmt.Sprintf("%s:%s", SessionPrefix, user.ID)
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := Client.Set(ctx, key, data, time.Second*SessionExpire).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

// GetSession 损坏的会话记录按不存在处理并顺手清除
func (r *UserRepository) GetSession(ctx context.Context, userID string) (*model.User, error) {
	key := fmt.Sprintf("%s:%s", SessionPrefix, userID)
	data, err := Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, ErrRedisUnavailable
	}
	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		_ = Client.Del(ctx, key).Err()
		return nil, ErrSessionNotFound
	}
	return &user, nil
}

func (r *UserRepository) DeleteSession(ctx context.Context, userID string) error {
	key := fmt.Sprintf("%s:%s", SessionPrefix, userID)
	if err := Client.Del(ctx, key).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

/*
登录 token：login:user:token:<userID>，单点登录校验用
*/

func (r *UserRepository) AddUserToken(ctx context.Context, userID, token string) error {
	key := fmt.Sprintf("%s:%s", UserTokenPrefix, userID)
	if err := Client.Set(ctx, key, token, time.Second*UserTokenExpire).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *UserRepository) GetUserToken(ctx context.Context, userID string) (string, error) {
	key := fmt.Sprintf("%s:%s", UserTokenPrefix, userID)
	token, err := Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

func (r *UserRepository) ExtendUserToken(ctx context.Context, userID string) error {
	key := fmt.Sprintf("%s:%s", UserTokenPrefix, userID)
	_, err := Client.Expire(ctx, key, time.Second*UserTokenExpire).Result()
	if err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *UserRepository) DeleteUserToken(ctx context.Context, userID string) error {
	key := fmt.Sprintf("%s:%s", UserTokenPrefix, userID)
	err := Client.Del(ctx, key).Err()
	if err != nil {
		return ErrTokenDeleted
	}
	return nil
}
