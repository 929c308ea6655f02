package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body 统一响应结构
type Body struct {
	Success   bool        `json:"success"`
	Error     string      `json:"error,omitempty"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Extra     gin.H       `json:"-"`
}

// requestID 从上下文取出请求 ID
func requestID(c *gin.Context) string {
	if v, ok := c.Get("request_id"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func write(c *gin.Context, status int, body Body) {
	body.RequestID = requestID(c)
	if len(body.Extra) == 0 {
		c.JSON(status, body)
		return
	}
	// 合并顶层附加字段（例如 locked_until / remaining_minutes）
	out := gin.H{
		"success": body.Success,
	}
	if body.Error != "" {
		out["error"] = body.Error
	}
	if body.Message != "" {
		out["message"] = body.Message
	}
	if body.Data != nil {
		out["data"] = body.Data
	}
	if body.RequestID != "" {
		out["request_id"] = body.RequestID
	}
	for k, v := range body.Extra {
		out[k] = v
	}
	c.JSON(status, out)
}

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	write(c, http.StatusOK, Body{Success: true, Data: data})
}

// OKMessage 200 成功响应（带提示消息）
func OKMessage(c *gin.Context, message string, data interface{}) {
	write(c, http.StatusOK, Body{Success: true, Message: message, Data: data})
}

// Created 201 创建成功
func Created(c *gin.Context, data interface{}) {
	write(c, http.StatusCreated, Body{Success: true, Data: data})
}

// Raw 200 自定义顶层字段的成功响应（商品列表等）
func Raw(c *gin.Context, payload gin.H) {
	payload["success"] = true
	if id := requestID(c); id != "" {
		payload["request_id"] = id
	}
	c.JSON(http.StatusOK, payload)
}

// BadRequest 400 参数错误
func BadRequest(c *gin.Context, msg string) {
	write(c, http.StatusBadRequest, Body{Success: false, Error: msg})
}

// Unauthorized 401 未认证
func Unauthorized(c *gin.Context, msg string) {
	write(c, http.StatusUnauthorized, Body{Success: false, Error: msg})
}

// UnauthorizedWith 401 未认证（附带顶层字段，例如 attempts_remaining）
func UnauthorizedWith(c *gin.Context, msg string, extra gin.H) {
	write(c, http.StatusUnauthorized, Body{Success: false, Error: msg, Extra: extra})
}

// Forbidden 403 无权限
func Forbidden(c *gin.Context, msg string) {
	write(c, http.StatusForbidden, Body{Success: false, Error: msg})
}

// NotFound 404 资源不存在
func NotFound(c *gin.Context, msg string) {
	write(c, http.StatusNotFound, Body{Success: false, Error: msg})
}

// Conflict 409 资源冲突
func Conflict(c *gin.Context, msg string) {
	write(c, http.StatusConflict, Body{Success: false, Error: msg})
}

// Locked 423 账号锁定
func Locked(c *gin.Context, msg string, extra gin.H) {
	write(c, http.StatusLocked, Body{Success: false, Error: msg, Extra: extra})
}

// TooManyRequests 429 触发限流
func TooManyRequests(c *gin.Context, msg string) {
	write(c, http.StatusTooManyRequests, Body{Success: false, Error: msg})
}

// Internal 500 服务器内部错误
func Internal(c *gin.Context, msg string) {
	write(c, http.StatusInternalServerError, Body{Success: false, Error: msg})
}
