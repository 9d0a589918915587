package model

// User 当前会话的用户记录，登录/注册时构建，登出时销毁
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
}

// Credential 注册凭证记录，按邮箱存储，Password 为 bcrypt 哈希
type Credential struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}
