package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/micropost/internal/auth"
	"github.com/d60-Lab/micropost/internal/model"
	"github.com/d60-Lab/micropost/internal/service"
	"github.com/d60-Lab/micropost/pkg/response"
)

var ErrMalformedHeader = errors.New("authorization header is malformed")

const userKey = "currentUser"

// Auth 解析 Authorization: Bearer 令牌并在每个请求上解析出当前用户。
// 头格式错误回 400，其余认证失败一律 401 + WWW-Authenticate: Bearer。
func Auth(tokens *auth.TokenService, users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolve(c, tokens, users)
		if err != nil {
			switch {
			case errors.Is(err, ErrMalformedHeader):
				response.BadRequest(c, err.Error())
			case errors.Is(err, auth.ErrTokenExpired):
				response.Unauthorized(c, "token expired")
			case errors.Is(err, auth.ErrTokenInvalid):
				response.Unauthorized(c, "invalid token")
			case errors.Is(err, service.ErrInvalidCredentials):
				response.Unauthorized(c, "invalid credentials")
			default:
				response.InternalError(c, err)
			}
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

func resolve(c *gin.Context, tokens *auth.TokenService, users service.UserService) (*model.User, error) {
	// 必须恰好拆成 "Bearer <token>" 两段
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return nil, ErrMalformedHeader
	}

	claims, err := tokens.Verify(parts[1])
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, service.ErrInvalidCredentials
	}
	// 每个请求查一次库，令牌对应的账号可能已不存在
	return users.GetByEmail(c.Request.Context(), claims.Subject)
}

// CurrentUser 取出 Auth 中间件解析好的用户
func CurrentUser(c *gin.Context) *model.User {
	u, _ := c.Get(userKey)
	user, _ := u.(*model.User)
	return user
}
